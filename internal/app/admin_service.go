package app

import (
	"context"
	"strings"

	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

// AdminService is the admin registry.
type AdminService struct {
	c     *Collections
	creds domain.CredentialScheme
	log   *zap.Logger
}

// NewAdminService creates an AdminService. A nil scheme stores passwords as
// plain text.
func NewAdminService(c *Collections, creds domain.CredentialScheme) *AdminService {
	if creds == nil {
		creds = PlainCredentials{}
	}
	return &AdminService{c: c, creds: creds, log: c.log.Named("admins")}
}

// SeedDefault inserts the bootstrap admin when the admin collection is absent
// or empty. It reports whether a record was inserted and is a no-op otherwise.
func (s *AdminService) SeedDefault(ctx context.Context) (bool, error) {
	seeded := false
	err := s.c.update(func() error {
		admins, err := s.c.admins(ctx)
		if err != nil {
			return err
		}
		if len(admins) > 0 {
			return nil
		}
		pw, err := s.creds.Hash(domain.SeedAdminPassword)
		if err != nil {
			return err
		}
		seeded = true
		return s.c.saveAdmins(ctx, []domain.Admin{{
			Name:     domain.SeedAdminName,
			Email:    domain.SeedAdminEmail,
			Password: pw,
		}})
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.log.Info("seeded bootstrap admin", zap.String("email", domain.SeedAdminEmail))
	}
	return seeded, nil
}

// Register validates in and appends a new admin.
func (s *AdminService) Register(ctx context.Context, in domain.AdminFields) (domain.Admin, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	pass := strings.TrimSpace(in.Password)

	if name == "" {
		return domain.Admin{}, domain.Reject(domain.EmptyField, "Enter admin name.")
	}
	if !domain.IsValidEmail(email) {
		return domain.Admin{}, domain.Reject(domain.InvalidEmail, "Enter a valid email.")
	}
	if len(pass) < domain.MinPasswordLen {
		return domain.Admin{}, domain.Reject(domain.WeakPassword, "Password at least 4 chars.")
	}

	var a domain.Admin
	err := s.c.update(func() error {
		admins, err := s.c.admins(ctx)
		if err != nil {
			return err
		}
		for _, existing := range admins {
			if domain.SameEmail(existing.Email, email) {
				return domain.Reject(domain.DuplicateEmail, "Admin with this email exists.")
			}
		}
		pw, err := s.creds.Hash(pass)
		if err != nil {
			return err
		}
		a = domain.Admin{Name: name, Email: email, Password: pw}
		return s.c.saveAdmins(ctx, append(admins, a))
	})
	if err != nil {
		return domain.Admin{}, err
	}
	s.log.Info("admin registered", zap.String("email", a.Email))
	return a, nil
}

// FindByEmail returns the admin registered under email, ignoring case, or nil.
func (s *AdminService) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	admins, err := s.c.admins(ctx)
	if err != nil {
		return nil, err
	}
	for i := range admins {
		if domain.SameEmail(admins[i].Email, email) {
			return &admins[i], nil
		}
	}
	return nil, nil
}

// Count returns the number of admin records.
func (s *AdminService) Count(ctx context.Context) (int, error) {
	admins, err := s.c.admins(ctx)
	return len(admins), err
}
