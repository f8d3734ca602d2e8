// Package api is the thin HTTP wrapper around the VocabTreasury REST
// backend. It knows endpoints, payload shapes and how failure bodies are
// turned into messages; it holds no application state of its own.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
)

// fallbackErrorMessage stands in for backends that reject a request
// without a message field in the body.
const fallbackErrorMessage = "the server did not provide an error message"

// Error is a request the backend rejected with a non-2xx status. The
// message is taken from the response body's "message" field when present.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

// IsUnauthorized reports whether err is a backend rejection with status
// 401. Callers use this to map expired sessions to a forced logout; the
// state container itself never branches on status codes.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client is the backend surface consumed by the state container. All
// methods issue exactly one HTTP request.
type Client interface {
	// CreateUser registers a new account.
	CreateUser(ctx context.Context, reg entity.Registration) error
	// ConfirmEmailAddress confirms a pending registration and returns the
	// backend's human-readable confirmation message.
	ConfirmEmailAddress(ctx context.Context, confirmationToken string) (string, error)
	// IssueToken exchanges credentials for a bearer token.
	IssueToken(ctx context.Context, email, password string) (string, error)
	// FetchProfile returns the account behind the stored bearer token.
	FetchProfile(ctx context.Context) (*entity.Profile, error)
	// RequestPasswordReset asks the backend to mail a reset link.
	RequestPasswordReset(ctx context.Context, email string) error

	// FetchExamples retrieves one page envelope from an arbitrary
	// fully-qualified pagination URL (first/next/prev/last/search alike).
	FetchExamples(ctx context.Context, pageURL string) (*entity.ExamplePage, error)
	// CreateExample stores a new example and returns it with its
	// backend-assigned identity.
	CreateExample(ctx context.Context, draft entity.ExampleDraft) (*entity.Example, error)
	// DeleteExample removes the example with the given id.
	DeleteExample(ctx context.Context, id int64) error
	// EditExample applies a partial update and returns the full updated
	// example as echoed by the backend.
	EditExample(ctx context.Context, id int64, patch entity.ExamplePatch) (*entity.Example, error)
}
