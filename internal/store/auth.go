package store

import (
	"context"

	"github.com/samber/lo"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
)

// AuthState tracks the authentication lifecycle. HasValidToken is
// tri-state: nil until the stored token has been checked against the
// backend, then confirmed true or false.
type AuthState struct {
	RequestStatus RequestStatus
	RequestError  string
	Token         string
	HasValidToken *bool
	Profile       *entity.Profile
}

// newAuthState seeds the slice from the token found in durable storage at
// process start. Validity stays unknown until an operation confirms it.
func newAuthState(token string) AuthState {
	return AuthState{
		RequestStatus: StatusIdle,
		Token:         token,
	}
}

// AuthPending marks the start of any auth operation.
type AuthPending struct{}

// AuthRejected records a failed auth operation. InvalidateToken is set by
// the two operations that establish session validity.
type AuthRejected struct {
	Message         string
	InvalidateToken bool
}

// UserCreated signals a successful registration; success is carried by
// status alone.
type UserCreated struct{}

// EmailConfirmed signals a successful email confirmation. The backend's
// confirmation message is consumed by the caller, not stored here.
type EmailConfirmed struct{}

// TokenIssued stores a freshly issued bearer token.
type TokenIssued struct {
	Token string
}

// ProfileFetched stores the logged-in user's profile and confirms the
// token.
type ProfileFetched struct {
	Profile entity.Profile
}

// PasswordResetRequested signals a successful reset request; no payload.
type PasswordResetRequested struct{}

// AuthCleared ends the session. RequestStatus and RequestError survive so
// the last request outcome remains inspectable after logout.
type AuthCleared struct{}

type authAction interface {
	Action
	isAuthAction()
}

func (AuthPending) isAction()                {}
func (AuthPending) isAuthAction()            {}
func (AuthRejected) isAction()               {}
func (AuthRejected) isAuthAction()           {}
func (UserCreated) isAction()                {}
func (UserCreated) isAuthAction()            {}
func (EmailConfirmed) isAction()             {}
func (EmailConfirmed) isAuthAction()         {}
func (TokenIssued) isAction()                {}
func (TokenIssued) isAuthAction()            {}
func (ProfileFetched) isAction()             {}
func (ProfileFetched) isAuthAction()         {}
func (PasswordResetRequested) isAction()     {}
func (PasswordResetRequested) isAuthAction() {}
func (AuthCleared) isAction()                {}
func (AuthCleared) isAuthAction()            {}

func reduceAuth(state AuthState, action Action) AuthState {
	switch a := action.(type) {
	case AuthPending:
		state.RequestStatus = StatusLoading
		state.RequestError = ""
		return state

	case AuthRejected:
		state.RequestStatus = StatusFailed
		state.RequestError = a.Message
		if a.InvalidateToken {
			state.HasValidToken = lo.ToPtr(false)
		}
		return state

	case UserCreated, EmailConfirmed, PasswordResetRequested:
		state.RequestStatus = StatusSucceeded
		state.RequestError = ""
		return state

	case TokenIssued:
		state.RequestStatus = StatusSucceeded
		state.RequestError = ""
		state.Token = a.Token
		state.HasValidToken = lo.ToPtr(true)
		return state

	case ProfileFetched:
		state.RequestStatus = StatusSucceeded
		state.RequestError = ""
		state.HasValidToken = lo.ToPtr(true)
		profile := a.Profile
		state.Profile = &profile
		return state

	case AuthCleared:
		state.Token = ""
		state.HasValidToken = lo.ToPtr(false)
		state.Profile = nil
		return state
	}
	return state
}

// CreateUser registers a new account.
func (s *Store) CreateUser(ctx context.Context, reg entity.Registration) error {
	seq := s.beginAuth()
	if err := s.apiClient.CreateUser(ctx, reg); err != nil {
		s.finishAuth(seq, AuthRejected{Message: messageOf(err)})
		return err
	}
	s.finishAuth(seq, UserCreated{})
	return nil
}

// ConfirmEmailAddress confirms a pending registration and returns the
// backend's confirmation message for the caller's alert.
func (s *Store) ConfirmEmailAddress(ctx context.Context, confirmationToken string) (string, error) {
	seq := s.beginAuth()
	message, err := s.apiClient.ConfirmEmailAddress(ctx, confirmationToken)
	if err != nil {
		s.finishAuth(seq, AuthRejected{Message: messageOf(err)})
		return "", err
	}
	s.finishAuth(seq, EmailConfirmed{})
	return message, nil
}

// IssueToken exchanges credentials for a bearer token, persists it and
// marks the session valid. A rejection marks the session invalid.
func (s *Store) IssueToken(ctx context.Context, email, password string) error {
	seq := s.beginAuth()
	token, err := s.apiClient.IssueToken(ctx, email, password)
	if err != nil {
		s.finishAuth(seq, AuthRejected{Message: messageOf(err), InvalidateToken: true})
		return err
	}
	if err := s.tokens.Save(token); err != nil {
		// The in-memory session still works; only restarts lose it.
		s.logger.WithError(err).Warn("failed to persist session token")
	}
	s.finishAuth(seq, TokenIssued{Token: token})
	return nil
}

// FetchProfile loads the logged-in user's account, confirming the stored
// token along the way. A rejection marks the session invalid.
func (s *Store) FetchProfile(ctx context.Context) error {
	seq := s.beginAuth()
	profile, err := s.apiClient.FetchProfile(ctx)
	if err != nil {
		s.finishAuth(seq, AuthRejected{Message: messageOf(err), InvalidateToken: true})
		return err
	}
	s.finishAuth(seq, ProfileFetched{Profile: *profile})
	return nil
}

// RequestPasswordReset asks the backend to mail a reset link.
func (s *Store) RequestPasswordReset(ctx context.Context, email string) error {
	seq := s.beginAuth()
	if err := s.apiClient.RequestPasswordReset(ctx, email); err != nil {
		s.finishAuth(seq, AuthRejected{Message: messageOf(err)})
		return err
	}
	s.finishAuth(seq, PasswordResetRequested{})
	return nil
}
