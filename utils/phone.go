package utils

import (
	"fmt"
	"strings"
)

// NormalizePhone strips formatting characters from a phone number and validates
// it against E.164: a leading plus followed by 8 to 15 digits, the first of
// which must not be zero. Returns the canonical "+<digits>" form.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// formatting only; the plus is re-applied below
		default:
			return "", fmt.Errorf("phone number contains invalid character %q", r)
		}
	}
	digits := b.String()
	if !strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return "", fmt.Errorf("phone number must include a country code (e.g. +15551234567)")
	}
	if len(digits) < 8 || len(digits) > 15 {
		return "", fmt.Errorf("phone number must have between 8 and 15 digits")
	}
	if digits[0] == '0' {
		return "", fmt.Errorf("country code cannot start with zero")
	}
	return "+" + digits, nil
}
