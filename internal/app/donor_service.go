package app

import (
	"context"
	"strings"
	"time"

	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

// DonorService is the donor registry.
type DonorService struct {
	c   *Collections
	log *zap.Logger
}

// NewDonorService creates a DonorService over the given collections.
func NewDonorService(c *Collections) *DonorService {
	return &DonorService{c: c, log: c.log.Named("donors")}
}

// Register validates in and appends a new donor. Checks run in a fixed order
// and the first failure is returned.
func (s *DonorService) Register(ctx context.Context, in domain.DonorFields) (domain.Donor, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)

	if name == "" {
		return domain.Donor{}, domain.Reject(domain.EmptyField, "Please enter name.")
	}
	if !domain.IsValidPhone(phone) {
		return domain.Donor{}, domain.Reject(domain.InvalidPhone, "Phone must be exactly 10 digits.")
	}
	if !domain.IsValidEmail(email) {
		return domain.Donor{}, domain.Reject(domain.InvalidEmail, "Please enter a valid email.")
	}
	age, ok := domain.ParseWhole(in.Age)
	if !ok || age < domain.MinDonorAge {
		return domain.Donor{}, domain.Reject(domain.BelowMinimumAge, "Age must be at least 16.")
	}
	blood, ok := domain.ParseBloodType(in.Blood)
	if !ok {
		return domain.Donor{}, domain.Reject(domain.MissingBloodType, "Select blood type.")
	}
	days, ok := domain.ParseWhole(in.Days)
	if !ok || days < 0 {
		return domain.Donor{}, domain.Reject(domain.EmptyField, "Enter days since last donation.")
	}
	if days < domain.EligibilityDays {
		return domain.Donor{}, domain.Reject(domain.IneligibleDonationWindow, "Not eligible: minimum 50 days since last donation.")
	}

	var donor domain.Donor
	err := s.c.update(func() error {
		donors, err := s.c.donors(ctx)
		if err != nil {
			return err
		}
		for _, d := range donors {
			if domain.SameEmail(d.Email, email) {
				return domain.Reject(domain.DuplicateEmail, "Donor with this email already exists.")
			}
		}
		donor = domain.Donor{
			Name:    name,
			Phone:   phone,
			Email:   email,
			Age:     age,
			Blood:   blood,
			Days:    days,
			Disease: strings.TrimSpace(in.Disease),
			Created: domain.At(s.c.now()),
		}
		return s.c.saveDonors(ctx, append(donors, donor))
	})
	if err != nil {
		return domain.Donor{}, err
	}
	s.log.Info("donor registered", zap.String("email", donor.Email), zap.String("blood", string(donor.Blood)))
	return donor, nil
}

// RecordDonation records a donation by the donor in sess. The day count is
// recomputed from date and the whole collection is rewritten.
func (s *DonorService) RecordDonation(ctx context.Context, sess domain.Session, qtyRaw, date string) (domain.Donor, error) {
	if sess.Portal != domain.PortalDonor {
		return domain.Donor{}, domain.ErrLoginRequired
	}
	qty, ok := domain.ParseWhole(qtyRaw)
	if !ok || qty < domain.MinDonationQty {
		return domain.Donor{}, domain.Reject(domain.InvalidQuantity, "Quantity must be ≥100 ml.")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return domain.Donor{}, domain.Reject(domain.EmptyField, "Choose donation date.")
	}
	donated, ok := parseDonationDate(date)
	if !ok {
		return domain.Donor{}, domain.Reject(domain.EmptyField, "Choose donation date.")
	}

	var donor domain.Donor
	err := s.c.update(func() error {
		donors, err := s.c.donors(ctx)
		if err != nil {
			return err
		}
		i := indexDonor(donors, sess.Email)
		if i < 0 {
			return domain.Reject(domain.NotFound, "Donor not found.")
		}
		donors[i].LastDonation = date
		donors[i].Days = daysSince(s.c.now(), donated)
		donor = donors[i]
		return s.c.saveDonors(ctx, donors)
	})
	if err != nil {
		return domain.Donor{}, err
	}
	s.log.Info("donation recorded",
		zap.String("email", donor.Email),
		zap.Int("qty", qty),
		zap.String("date", date))
	return donor, nil
}

// FindByEmail returns the donor registered under email, ignoring case, or nil.
func (s *DonorService) FindByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	donors, err := s.c.donors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range donors {
		if domain.SameEmail(donors[i].Email, email) {
			return &donors[i], nil
		}
	}
	return nil, nil
}

// Profile returns the record of the donor in sess.
func (s *DonorService) Profile(ctx context.Context, sess domain.Session) (domain.Donor, error) {
	if sess.Portal != domain.PortalDonor {
		return domain.Donor{}, domain.ErrLoginRequired
	}
	donors, err := s.c.donors(ctx)
	if err != nil {
		return domain.Donor{}, err
	}
	i := indexDonor(donors, sess.Email)
	if i < 0 {
		return domain.Donor{}, domain.Reject(domain.NotFound, "Donor not found.")
	}
	return donors[i], nil
}

// indexDonor matches the session email exactly; sessions carry the stored
// spelling of the address.
func indexDonor(donors []domain.Donor, email string) int {
	for i := range donors {
		if donors[i].Email == email {
			return i
		}
	}
	return -1
}

// parseDonationDate accepts a calendar date, read as UTC midnight, or a full
// RFC 3339 timestamp.
func parseDonationDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// daysSince is the number of whole days from then to now, never negative.
func daysSince(now, then time.Time) int {
	if now.Before(then) {
		return 0
	}
	return int(now.Sub(then) / (24 * time.Hour))
}
