package domain

import "errors"

// RejectionReason is the closed set of reasons a registry operation can refuse
// a mutation.
type RejectionReason string

const (
	EmptyField               RejectionReason = "EmptyField"
	InvalidPhone             RejectionReason = "InvalidPhone"
	InvalidEmail             RejectionReason = "InvalidEmail"
	BelowMinimumAge          RejectionReason = "BelowMinimumAge"
	MissingBloodType         RejectionReason = "MissingBloodType"
	InvalidQuantity          RejectionReason = "InvalidQuantity"
	IneligibleDonationWindow RejectionReason = "IneligibleDonationWindow"
	DuplicateEmail           RejectionReason = "DuplicateEmail"
	DuplicateLicense         RejectionReason = "DuplicateLicense"
	WeakPassword             RejectionReason = "WeakPassword"
	NotFound                 RejectionReason = "NotFound"
	BadCredential            RejectionReason = "BadCredential"
)

// ErrLoginRequired signals that a protected action was attempted without a
// session descriptor for the expected portal. Callers redirect to login.
var ErrLoginRequired = errors.New("login required")

// Rejection is the error returned when input is refused. Message is meant
// for the end user.
type Rejection struct {
	Reason  RejectionReason
	Message string
}

// Reject builds a Rejection for reason with a user-facing message.
func Reject(reason RejectionReason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}

func (r *Rejection) Error() string {
	if r.Message == "" {
		return string(r.Reason)
	}
	return r.Message
}

// Is reports whether target is a Rejection with the same reason, so that
// errors.Is(err, domain.Reject(domain.NotFound, "")) matches any NotFound.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == r.Reason
}

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (RejectionReason, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason, true
	}
	return "", false
}
