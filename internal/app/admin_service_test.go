package app_test

import (
	"context"
	"testing"

	"bloodbank/internal/domain"
)

func TestSeedDefault_Idempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	seeded, err := fx.admins.SeedDefault(ctx)
	if err != nil || !seeded {
		t.Fatalf("first seed = %v, %v", seeded, err)
	}
	seeded, err = fx.admins.SeedDefault(ctx)
	if err != nil || seeded {
		t.Fatalf("second seed = %v, %v", seeded, err)
	}

	n, _ := fx.admins.Count(ctx)
	if n != 1 {
		t.Fatalf("expected 1 admin, got %d", n)
	}
	a, _ := fx.admins.FindByEmail(ctx, domain.SeedAdminEmail)
	if a == nil || a.Name != "System Admin" || a.Password != "admin123" {
		t.Fatalf("unexpected seed admin %+v", a)
	}
}

func TestSeedDefault_SkipsPopulatedCollection(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	if _, err := fx.admins.Register(ctx, domain.AdminFields{Name: "Ops", Email: "ops@bank.org", Password: "abcd"}); err != nil {
		t.Fatal(err)
	}

	seeded, err := fx.admins.SeedDefault(ctx)
	if err != nil || seeded {
		t.Fatalf("seed = %v, %v", seeded, err)
	}
	if a, _ := fx.admins.FindByEmail(ctx, domain.SeedAdminEmail); a != nil {
		t.Fatalf("seed admin inserted into populated collection: %+v", a)
	}
}

func TestAdminRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   domain.AdminFields
		want domain.RejectionReason
	}{
		{"empty name", domain.AdminFields{Email: "a@b.com", Password: "abcd"}, domain.EmptyField},
		{"bad email", domain.AdminFields{Name: "A", Email: "a.b.com", Password: "abcd"}, domain.InvalidEmail},
		{"short password", domain.AdminFields{Name: "A", Email: "a@b.com", Password: "abc"}, domain.WeakPassword},
		{"padded short password", domain.AdminFields{Name: "A", Email: "a@b.com", Password: "  ab  "}, domain.WeakPassword},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture(t)
			_, err := fx.admins.Register(context.Background(), tc.in)
			wantReason(t, err, tc.want)
		})
	}
}

func TestAdminRegister_DuplicateEmail(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, _ = fx.admins.SeedDefault(ctx)

	_, err := fx.admins.Register(ctx, domain.AdminFields{Name: "Dup", Email: "Admin@System.com", Password: "abcd"})
	wantReason(t, err, domain.DuplicateEmail)

	a, err := fx.admins.Register(ctx, domain.AdminFields{Name: "Ops", Email: "ops@bank.org", Password: "abcd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Password != "abcd" {
		t.Fatalf("plain scheme should store the secret as given, got %q", a.Password)
	}
	if n, _ := fx.admins.Count(ctx); n != 2 {
		t.Fatalf("expected 2 admins, got %d", n)
	}
}
