package app

import (
	"context"
	"errors"
	"strings"

	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

// ErrUnknownPortal indicates a login for a portal that does not exist.
var ErrUnknownPortal = errors.New("unknown portal")

// AuthService handles login, logout and the session guard for protected
// actions. It never keeps a current session itself; descriptors live in the
// injected SessionStore under a caller-chosen slot.
type AuthService struct {
	c        *Collections
	sessions domain.SessionStore
	creds    domain.CredentialScheme
	log      *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(c *Collections, sessions domain.SessionStore, creds domain.CredentialScheme) *AuthService {
	if creds == nil {
		creds = PlainCredentials{}
	}
	return &AuthService{
		c:        c,
		sessions: sessions,
		creds:    creds,
		log:      c.log.Named("auth"),
	}
}

// Login authenticates against the given portal and replaces the descriptor in
// slot with the new session.
//
// Donors are looked up by email alone; they have no stored secret. Hospitals
// sign in with email or license and must present the license as the secret.
// Admins need email and password together.
func (s *AuthService) Login(ctx context.Context, slot string, portal domain.Portal, identity, secret string) (domain.Session, error) {
	identity = strings.TrimSpace(identity)
	secret = strings.TrimSpace(secret)

	if portal != domain.PortalHospital && !domain.IsValidEmail(identity) {
		return domain.Session{}, domain.Reject(domain.InvalidEmail, "Enter a valid email.")
	}
	if secret == "" {
		return domain.Session{}, domain.Reject(domain.EmptyField, "Enter password.")
	}

	var (
		sess domain.Session
		err  error
	)
	switch portal {
	case domain.PortalDonor:
		sess, err = s.loginDonor(ctx, identity)
	case domain.PortalHospital:
		sess, err = s.loginHospital(ctx, identity, secret)
	case domain.PortalAdmin:
		sess, err = s.loginAdmin(ctx, identity, secret)
	default:
		return domain.Session{}, ErrUnknownPortal
	}
	if err != nil {
		reason, _ := domain.ReasonOf(err)
		s.log.Info("login rejected", zap.String("portal", string(portal)), zap.String("reason", string(reason)))
		return domain.Session{}, err
	}

	if sess, err = s.open(ctx, slot, sess); err != nil {
		return domain.Session{}, err
	}
	s.log.Info("login", zap.String("portal", string(sess.Portal)), zap.String("email", sess.Email))
	return sess, nil
}

// open stamps sess with its expiry and stores it in slot. Lapsed slots are
// swept on the way; a failed sweep does not fail the login.
func (s *AuthService) open(ctx context.Context, slot string, sess domain.Session) (domain.Session, error) {
	sess.ExpiresAt = domain.At(s.c.now().Add(domain.SessionTTL))
	if err := s.sessions.Put(ctx, slot, sess); err != nil {
		return domain.Session{}, err
	}
	if _, err := s.SweepSessions(ctx); err != nil {
		s.log.Warn("sweep sessions", zap.Error(err))
	}
	return sess, nil
}

// SweepSessions deletes every stored session that has expired.
func (s *AuthService) SweepSessions(ctx context.Context) (int, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.c.now())
	if n > 0 {
		s.log.Debug("expired sessions removed", zap.Int("count", n))
	}
	return n, err
}

func (s *AuthService) loginDonor(ctx context.Context, email string) (domain.Session, error) {
	donors, err := s.c.donors(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, d := range donors {
		if domain.SameEmail(d.Email, email) {
			return domain.Session{Portal: domain.PortalDonor, Email: d.Email}, nil
		}
	}
	return domain.Session{}, domain.Reject(domain.NotFound, "Donor not found. Register first.")
}

func (s *AuthService) loginHospital(ctx context.Context, key, secret string) (domain.Session, error) {
	hospitals, err := s.c.hospitals(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	// Several hospitals may share an email; the secret picks the one.
	matched := false
	for _, h := range hospitals {
		if !domain.SameEmail(h.Email, key) && !domain.SameLicense(h.License, key) {
			continue
		}
		matched = true
		if ConstantTimeCompare(h.License, secret) {
			return domain.Session{Portal: domain.PortalHospital, Email: h.Email, License: h.License}, nil
		}
	}
	if matched {
		return domain.Session{}, domain.Reject(domain.BadCredential, "For demo: hospital password must equal license number.")
	}
	return domain.Session{}, domain.Reject(domain.NotFound, "Hospital not found. Use email or license to login.")
}

func (s *AuthService) loginAdmin(ctx context.Context, email, password string) (domain.Session, error) {
	admins, err := s.c.admins(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, a := range admins {
		if domain.SameEmail(a.Email, email) && s.creds.Verify(a.Password, password) {
			return domain.Session{Portal: domain.PortalAdmin, Email: a.Email}, nil
		}
	}
	return domain.Session{}, domain.Reject(domain.BadCredential, "Invalid admin credentials.")
}

// LoginAdminSSO opens an admin session for an email already verified by an
// identity provider. Only existing admins are admitted.
func (s *AuthService) LoginAdminSSO(ctx context.Context, slot, email string) (domain.Session, error) {
	admins, err := s.c.admins(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, a := range admins {
		if domain.SameEmail(a.Email, email) {
			sess, err := s.open(ctx, slot, domain.Session{Portal: domain.PortalAdmin, Email: a.Email})
			if err != nil {
				return domain.Session{}, err
			}
			s.log.Info("sso login", zap.String("email", a.Email))
			return sess, nil
		}
	}
	return domain.Session{}, domain.Reject(domain.NotFound, "No admin registered for this account.")
}

// Logout clears slot unconditionally.
func (s *AuthService) Logout(ctx context.Context, slot string) error {
	return s.sessions.Clear(ctx, slot)
}

// Current returns the descriptor in slot, or nil. An expired descriptor is
// cleared and reported as nil.
func (s *AuthService) Current(ctx context.Context, slot string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, slot)
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.Expired(s.c.now()) {
		if err := s.sessions.Clear(ctx, slot); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return sess, nil
}

// Require returns the descriptor in slot when it belongs to portal and
// domain.ErrLoginRequired otherwise.
func (s *AuthService) Require(ctx context.Context, slot string, portal domain.Portal) (domain.Session, error) {
	sess, err := s.Current(ctx, slot)
	if err != nil {
		return domain.Session{}, err
	}
	if sess == nil || sess.Portal != portal {
		return domain.Session{}, domain.ErrLoginRequired
	}
	return *sess, nil
}
