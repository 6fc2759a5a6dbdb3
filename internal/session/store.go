// internal/session/store.go
package session

import "context"

// Store is a key-value mirror for serialized session profiles, keyed by
// session token. Presence of a key is the sole signal that a session exists.
type Store interface {
	// Save persists the serialized profile under the token.
	Save(ctx context.Context, token string, profile []byte) error

	// Load returns the serialized profile, or (nil, false, nil) if absent.
	Load(ctx context.Context, token string) ([]byte, bool, error)

	// Delete removes the session key.
	Delete(ctx context.Context, token string) error
}
