package domain

import (
	"context"
	"strings"
	"time"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 24 * time.Hour

// Portal is one of the three actor roles.
type Portal string

const (
	PortalDonor    Portal = "donor"
	PortalHospital Portal = "hospital"
	PortalAdmin    Portal = "admin"
)

// ParsePortal reports whether s names a portal.
func ParsePortal(s string) (Portal, bool) {
	switch p := Portal(strings.ToLower(strings.TrimSpace(s))); p {
	case PortalDonor, PortalHospital, PortalAdmin:
		return p, true
	}
	return "", false
}

// Session identifies the authenticated actor. License is set for the
// hospital portal only. A zero ExpiresAt never expires.
type Session struct {
	Portal    Portal `json:"portal"`
	Email     string `json:"email"`
	License   string `json:"license,omitempty"`
	ExpiresAt Millis `json:"expires_at,omitzero"`
}

// Expired reports whether s has lapsed at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt.Time)
}

// SessionStore holds at most one descriptor per slot. The empty slot is the
// process-wide default.
type SessionStore interface {
	Get(ctx context.Context, slot string) (*Session, error)
	Put(ctx context.Context, slot string, s Session) error
	Clear(ctx context.Context, slot string) error
	// DeleteExpired removes every descriptor that has lapsed at now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
