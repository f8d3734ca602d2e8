// Package session persists the bearer token issued by the backend. It is
// the only durable state the client keeps: exactly one key holding the raw
// token string, or nothing at all.
package session

// TokenStorage is the narrow interface through which the auth slice and
// the logout orchestration reach durable storage. Nothing else touches the
// persisted token directly.
type TokenStorage interface {
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)
	// Save stores the token, replacing any previous one.
	Save(token string) error
	// Clear evicts the persisted token. Clearing an empty storage is a no-op.
	Clear() error
}
