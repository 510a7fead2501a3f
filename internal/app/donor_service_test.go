package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloodbank/internal/domain"
)

func TestDonorRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *domain.DonorFields)
		want   domain.RejectionReason
	}{
		{"empty name", func(f *domain.DonorFields) { f.Name = "  " }, domain.EmptyField},
		{"short phone", func(f *domain.DonorFields) { f.Phone = "12345" }, domain.InvalidPhone},
		{"bad email", func(f *domain.DonorFields) { f.Email = "a@b" }, domain.InvalidEmail},
		{"too young", func(f *domain.DonorFields) { f.Age = "15" }, domain.BelowMinimumAge},
		{"age missing", func(f *domain.DonorFields) { f.Age = "" }, domain.BelowMinimumAge},
		{"no blood type", func(f *domain.DonorFields) { f.Blood = "" }, domain.MissingBloodType},
		{"unknown blood type", func(f *domain.DonorFields) { f.Blood = "Z+" }, domain.MissingBloodType},
		{"days missing", func(f *domain.DonorFields) { f.Days = "" }, domain.EmptyField},
		{"days negative", func(f *domain.DonorFields) { f.Days = "-3" }, domain.EmptyField},
		{"days 49", func(f *domain.DonorFields) { f.Days = "49" }, domain.IneligibleDonationWindow},
		// first failure wins
		{"name and phone bad", func(f *domain.DonorFields) { f.Name = ""; f.Phone = "x" }, domain.EmptyField},
		{"phone and email bad", func(f *domain.DonorFields) { f.Phone = "x"; f.Email = "x" }, domain.InvalidPhone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture(t)
			in := validDonor()
			tc.mutate(&in)
			_, err := fx.donors.Register(context.Background(), in)
			wantReason(t, err, tc.want)

			// nothing is written on rejection
			if v, _ := fx.store.Load(context.Background(), domain.CollectionDonors); v != nil {
				t.Fatalf("expected no write, got %s", v)
			}
		})
	}
}

func TestDonorRegister_EligibilityBoundary(t *testing.T) {
	fx := newFixture(t)
	in := validDonor()
	in.Days = "50"

	d, err := fx.donors.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Days != 50 || d.Age != 29 || d.Blood != "O+" {
		t.Fatalf("unexpected donor: %+v", d)
	}
	if !d.Created.Equal(fixedNow) {
		t.Errorf("created = %v; want %v", d.Created, fixedNow)
	}
	if d.LastDonation != "" {
		t.Errorf("lastDonation should be empty, got %q", d.LastDonation)
	}
}

func TestDonorRegister_DuplicateEmailIgnoresCase(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	first := validDonor()
	first.Email = "A@x.com"
	if _, err := fx.donors.Register(ctx, first); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := validDonor()
	second.Email = "a@x.com"
	second.Name = "Someone Else"
	_, err := fx.donors.Register(ctx, second)
	wantReason(t, err, domain.DuplicateEmail)

	stats, _ := fx.stats.Counts(ctx)
	if stats.Donors != 1 {
		t.Fatalf("expected 1 donor, got %d", stats.Donors)
	}
}

func TestDonorRegister_TrimsFields(t *testing.T) {
	fx := newFixture(t)
	in := validDonor()
	in.Name = "  Asha  "
	in.Email = " asha@example.com "
	in.Disease = " none "

	d, err := fx.donors.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Asha" || d.Email != "asha@example.com" || d.Disease != "none" {
		t.Fatalf("fields not trimmed: %+v", d)
	}
}

func TestFindByEmail(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	if _, err := fx.donors.Register(ctx, validDonor()); err != nil {
		t.Fatal(err)
	}

	d, err := fx.donors.FindByEmail(ctx, "ASHA@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || d.Name != "Asha Rao" {
		t.Fatalf("expected donor, got %+v", d)
	}

	d, _ = fx.donors.FindByEmail(ctx, "nobody@example.com")
	if d != nil {
		t.Fatalf("expected nil, got %+v", d)
	}
}

func TestRecordDonation_UpdatesDaysOnly(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	before, err := fx.donors.Register(ctx, validDonor())
	if err != nil {
		t.Fatal(err)
	}
	sess := domain.Session{Portal: domain.PortalDonor, Email: before.Email}

	date := fixedNow.AddDate(0, 0, -50).Format(time.DateOnly)
	after, err := fx.donors.RecordDonation(ctx, sess, "350", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.Days != 50 {
		t.Errorf("days = %d; want 50", after.Days)
	}
	if after.LastDonation != date {
		t.Errorf("lastDonation = %q; want %q", after.LastDonation, date)
	}

	stored, _ := fx.donors.FindByEmail(ctx, before.Email)
	want := before
	want.Days = 50
	want.LastDonation = date
	if stored.Name != want.Name || stored.Phone != want.Phone || stored.Email != want.Email ||
		stored.Age != want.Age || stored.Blood != want.Blood || stored.Disease != want.Disease ||
		!stored.Created.Equal(want.Created.Time) || stored.Days != want.Days || stored.LastDonation != want.LastDonation {
		t.Fatalf("stored donor = %+v; want %+v", *stored, want)
	}
}

func TestRecordDonation_FutureDateFloorsAtZero(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	d, _ := fx.donors.Register(ctx, validDonor())
	sess := domain.Session{Portal: domain.PortalDonor, Email: d.Email}

	got, err := fx.donors.RecordDonation(ctx, sess, "100", fixedNow.AddDate(0, 0, 3).Format(time.DateOnly))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Days != 0 {
		t.Fatalf("days = %d; want 0", got.Days)
	}
}

func TestRecordDonation_Validation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	d, _ := fx.donors.Register(ctx, validDonor())
	sess := domain.Session{Portal: domain.PortalDonor, Email: d.Email}

	tests := []struct {
		name string
		sess domain.Session
		qty  string
		date string
		want domain.RejectionReason
	}{
		{"qty below 100", sess, "99", "2026-01-01", domain.InvalidQuantity},
		{"qty missing", sess, "", "2026-01-01", domain.InvalidQuantity},
		{"date missing", sess, "200", "", domain.EmptyField},
		{"date garbage", sess, "200", "yesterday", domain.EmptyField},
		{"unknown donor", domain.Session{Portal: domain.PortalDonor, Email: "ghost@example.com"}, "200", "2026-01-01", domain.NotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.donors.RecordDonation(ctx, tc.sess, tc.qty, tc.date)
			wantReason(t, err, tc.want)
		})
	}
}

func TestRecordDonation_RequiresDonorSession(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.donors.RecordDonation(context.Background(), domain.Session{Portal: domain.PortalAdmin}, "200", "2026-01-01")
	if !errors.Is(err, domain.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}

func TestDonorProfile(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	d, _ := fx.donors.Register(ctx, validDonor())

	got, err := fx.donors.Profile(ctx, domain.Session{Portal: domain.PortalDonor, Email: d.Email})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != d.Email {
		t.Fatalf("unexpected profile %+v", got)
	}

	_, err = fx.donors.Profile(ctx, domain.Session{Portal: domain.PortalDonor, Email: "ghost@example.com"})
	wantReason(t, err, domain.NotFound)

	_, err = fx.donors.Profile(ctx, domain.Session{})
	if !errors.Is(err, domain.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}
