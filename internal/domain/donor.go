// Package domain contains the core business entities, validation rules and
// the ports the application layer depends on.
package domain

import "strings"

// Donor is a registered blood donor. Email is the natural key.
type Donor struct {
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email"`
	Age     int       `json:"age"`
	Blood   BloodType `json:"blood"`
	Days    int       `json:"days"`
	Disease string    `json:"disease"`
	Created Millis    `json:"created"`
	// LastDonation is the YYYY-MM-DD date of the most recent recorded
	// donation, empty until one is recorded.
	LastDonation string `json:"lastDonation,omitempty"`
}

// DonorFields holds the raw form values submitted at donor registration.
type DonorFields struct {
	Name    string
	Phone   string
	Email   string
	Age     string
	Blood   string
	Days    string
	Disease string
}

// SameEmail reports whether a and b name the same mailbox, ignoring case.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
