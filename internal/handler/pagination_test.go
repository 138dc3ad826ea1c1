package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults when absent", "", DefaultLimit, 0},
		{"explicit values", "?limit=20&offset=40", 20, 40},
		{"zero limit falls back", "?limit=0", DefaultLimit, 0},
		{"negative limit falls back", "?limit=-5", DefaultLimit, 0},
		{"limit over max falls back", "?limit=500", DefaultLimit, 0},
		{"max limit accepted", "?limit=100", MaxLimit, 0},
		{"negative offset clamped", "?offset=-10", DefaultLimit, 0},
		{"garbage values fall back", "?limit=abc&offset=xyz", DefaultLimit, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/"+tc.query, nil)
			page := ParsePagination(r)
			assert.Equal(t, tc.wantLimit, page.Limit)
			assert.Equal(t, tc.wantOffset, page.Offset)
		})
	}
}
