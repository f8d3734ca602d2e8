package entity

// Alert is a transient user-facing notification. The ID is an opaque
// unique token supplied by the caller (a UUID in practice); collisions are
// the caller's responsibility.
type Alert struct {
	ID      string
	Message string
}
