package domain

import (
	"regexp"
	"strings"
)

// One or more "label." segments, a final alphabetic label of at least two
// characters, then an optional path suffix.
var reDomainName = regexp.MustCompile(`^([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(/\S*)?$`)

// NormalizeDomainName trims surrounding whitespace. No case folding is applied:
// duplicate detection is an exact match.
func NormalizeDomainName(s string) string {
	return strings.TrimSpace(s)
}

// ValidateDomainName checks the trimmed value against the domain syntax rule.
func ValidateDomainName(s string) error {
	n := NormalizeDomainName(s)
	if n == "" {
		return ErrEmptyDomain
	}
	if !reDomainName.MatchString(n) {
		return ErrInvalidDomain
	}
	return nil
}

// IsValidDomainName reports whether ValidateDomainName accepts s.
func IsValidDomainName(s string) bool {
	return ValidateDomainName(s) == nil
}
