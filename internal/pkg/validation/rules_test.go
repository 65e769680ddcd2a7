package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"tumi@cmcs.ac.za", true},
		{"kholo.hr@cmcs.local", true},
		{"first.last+tag@sub.domain.example", true},
		{"a@b.co", true},
		{"no-at-sign.example", false},
		{"user@domain", false},
		{"user@domain.x", false},
		{"@domain.com", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestIsValidMonth(t *testing.T) {
	tests := []struct {
		month string
		valid bool
	}{
		{"2025-09", true},
		{"2025-12", true},
		{"2025-13", false},
		{"2025-00", false},
		{"September 2025", false},
		{"2025-9", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidMonth(tt.month), "month %q", tt.month)
	}
}
