package app

import (
	"crypto/subtle"
	"fmt"

	"bloodbank/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// PlainCredentials stores secrets verbatim. This is the default scheme and
// keeps stores written by the browser demo readable.
type PlainCredentials struct{}

// Hash returns secret unchanged.
func (PlainCredentials) Hash(secret string) (string, error) { return secret, nil }

// Verify compares in constant time.
func (PlainCredentials) Verify(stored, supplied string) bool {
	return ConstantTimeCompare(stored, supplied)
}

// BcryptCredentials stores bcrypt hashes.
type BcryptCredentials struct {
	Cost int
}

// Hash returns the bcrypt hash of secret.
func (b BcryptCredentials) Hash(secret string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether supplied matches the stored hash.
func (BcryptCredentials) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// CredentialSchemeByName resolves "plain" (or "") and "bcrypt".
func CredentialSchemeByName(name string) (domain.CredentialScheme, error) {
	switch name {
	case "", "plain":
		return PlainCredentials{}, nil
	case "bcrypt":
		return BcryptCredentials{}, nil
	}
	return nil, fmt.Errorf("unknown credential scheme %q", name)
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
