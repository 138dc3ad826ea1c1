package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.org"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{"", "plain", "user@", "@example.com", "user @example.com", "user@example"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+20 100 123-4567", "201001234567"},
		{"201001234567", "201001234567"},
		{" (20) 100-1234567 ", "201001234567"},
		{"+14155550100", "14155550100"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), tc.in)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+201001234567", "201001234567", "14155550100"}
	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), phone)
	}

	invalid := []string{"", "1234567", "phone", "+20-100", "12345678901234567"}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), phone)
	}
}
