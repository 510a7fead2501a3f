package domain

// Admin is an administrative account. Password holds whatever the configured
// CredentialScheme produced; with the default scheme that is the plain text.
type Admin struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminFields holds the raw form values submitted at admin registration.
type AdminFields struct {
	Name     string
	Email    string
	Password string
}

// Bootstrap admin inserted when no admin exists.
const (
	SeedAdminName     = "System Admin"
	SeedAdminEmail    = "admin@system.com"
	SeedAdminPassword = "admin123"
)

// CredentialScheme turns secrets into their stored form and checks supplied
// secrets against it.
type CredentialScheme interface {
	Hash(secret string) (string, error)
	Verify(stored, supplied string) bool
}
