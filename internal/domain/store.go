package domain

import "context"

// Names of the persisted collections, the session scalar and the index of
// expiring session slots.
const (
	CollectionDonors    = "donors"
	CollectionHospitals = "hospitals"
	CollectionAdmins    = "admin"
	CollectionRequests  = "requests"
	KeyCurrent          = "current"
	KeySessionIndex     = "session_index"
)

// Store is the key-value persistence port. Payloads are opaque to the store.
// Load returns a nil payload and no error when name has never been saved.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, payload []byte) error
	Delete(ctx context.Context, name string) error
}
