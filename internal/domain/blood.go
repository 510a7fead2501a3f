package domain

import "strings"

// BloodType is an ABO/Rh group such as "O+".
type BloodType string

// BloodTypes lists every accepted group in display order.
var BloodTypes = []BloodType{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ParseBloodType normalises s and reports whether it names a known group.
func ParseBloodType(s string) (BloodType, bool) {
	b := BloodType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range BloodTypes {
		if b == known {
			return b, true
		}
	}
	return "", false
}
