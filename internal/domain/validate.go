package domain

import (
	"regexp"
	"strings"
)

// Thresholds enforced by the registries.
const (
	MinDonorAge     = 16
	MinDonationQty  = 100 // ml, per recorded donation
	MinLedgerQty    = 50  // ml, per inventory addition or blood request
	EligibilityDays = 50
	MinPasswordLen  = 4
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsValidPhone reports whether s, trimmed, is exactly ten ASCII digits.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// IsValidEmail reports whether s looks like local@domain.tld. The structural
// checks and the pattern must both pass.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return false
	}
	if !strings.Contains(parts[1], ".") {
		return false
	}
	return emailPattern.MatchString(s)
}

// ParseWhole reads a leading base-10 integer from s the way an HTML number
// field is read: surrounding space is ignored, an optional sign is accepted
// and anything after the digits is dropped. ok is false when no digit is
// present.
func ParseWhole(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	i := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n > (1<<31)/10 {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	if i == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
