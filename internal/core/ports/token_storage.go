package ports

import "github.com/mawa3id/booking-client/internal/core/domain"

// TokenStorage is the durable home of the credential pair. It is the single
// source of truth for the authenticated/anonymous distinction: callers
// re-read it on every check instead of caching a boolean that could drift.
type TokenStorage interface {
	// Load returns the stored credentials. An empty pair (not an error)
	// means anonymous.
	Load() (domain.Credentials, error)
	// Store persists both tokens, replacing any previous pair.
	Store(creds domain.Credentials) error
	// Clear removes both tokens. Clearing an empty store is a no-op.
	Clear() error
}
