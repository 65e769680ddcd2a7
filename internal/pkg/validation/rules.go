package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Claim month pattern, YYYY-MM
	MonthPattern = `^\d{4}-(0[1-9]|1[0-2])$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Month *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Month: regexp.MustCompile(MonthPattern),
}

// IsValidEmail reports whether the value is a well-formed email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidMonth reports whether the value is a well-formed YYYY-MM claim month.
func IsValidMonth(value string) bool {
	return CompiledPatterns.Month.MatchString(value)
}
