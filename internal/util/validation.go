package util

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizePhone strips spaces, dashes and a leading plus so the number can be
// used as a channel key and as a transport address.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return strings.TrimPrefix(phone, "+")
}

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}
