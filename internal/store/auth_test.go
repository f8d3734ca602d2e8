package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabtreasury/vocabtreasury/internal/api"
	"github.com/vocabtreasury/vocabtreasury/internal/entity"
)

func TestCreateUserLifecycle(t *testing.T) {
	s, _ := newTestStore(t, &fakeClient{})

	err := s.CreateUser(context.Background(), entity.Registration{
		Username: "jakob", Email: "jakob@example.com", Password: "pw",
	})
	require.NoError(t, err)

	state := s.State()
	assert.Equal(t, StatusSucceeded, state.Auth.RequestStatus)
	assert.Empty(t, state.Auth.RequestError)
	// Registration success carries no payload.
	assert.Empty(t, state.Auth.Token)
	assert.Nil(t, state.Auth.HasValidToken)
	assert.Nil(t, state.Auth.Profile)
}

func TestCreateUserRejectedRecordsMessage(t *testing.T) {
	client := &fakeClient{
		createUserErr: &api.Error{StatusCode: 400, Message: "there already exists a user with the provided email"},
	}
	s, _ := newTestStore(t, client)

	err := s.CreateUser(context.Background(), entity.Registration{
		Username: "jakob", Email: "jakob@example.com", Password: "pw",
	})
	require.Error(t, err)

	state := s.State()
	assert.Equal(t, StatusFailed, state.Auth.RequestStatus)
	assert.Equal(t, "there already exists a user with the provided email", state.Auth.RequestError)
	assert.Nil(t, state.Auth.HasValidToken, "registration failures do not touch token validity")
}

func TestPendingClearsPreviousError(t *testing.T) {
	client := &fakeClient{
		createUserErr: &api.Error{StatusCode: 400, Message: "boom"},
	}
	s, _ := newTestStore(t, client)

	require.Error(t, s.CreateUser(context.Background(), entity.Registration{Username: "u", Email: "e", Password: "p"}))
	require.Equal(t, "boom", s.State().Auth.RequestError)

	client.createUserErr = nil
	require.NoError(t, s.CreateUser(context.Background(), entity.Registration{Username: "u", Email: "e", Password: "p"}))

	state := s.State()
	assert.Equal(t, StatusSucceeded, state.Auth.RequestStatus)
	assert.Empty(t, state.Auth.RequestError)
}

func TestConfirmEmailAddressReturnsMessageWithoutStoringIt(t *testing.T) {
	client := &fakeClient{confirmMessage: "you have confirmed your email address successfully"}
	s, _ := newTestStore(t, client)

	message, err := s.ConfirmEmailAddress(context.Background(), "confirmation-token")
	require.NoError(t, err)
	assert.Equal(t, "you have confirmed your email address successfully", message)

	state := s.State()
	assert.Equal(t, StatusSucceeded, state.Auth.RequestStatus)
	assert.Empty(t, state.Auth.RequestError)
}

func TestIssueTokenFulfilled(t *testing.T) {
	client := &fakeClient{token: "fresh-token"}
	s, tokens := newTestStore(t, client)

	require.NoError(t, s.IssueToken(context.Background(), "jakob@example.com", "pw"))

	state := s.State()
	assert.Equal(t, StatusSucceeded, state.Auth.RequestStatus)
	assert.Equal(t, "fresh-token", state.Auth.Token)
	require.NotNil(t, state.Auth.HasValidToken)
	assert.True(t, *state.Auth.HasValidToken)

	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", persisted, "the issued token is persisted")
}

func TestIssueTokenRejectedInvalidatesToken(t *testing.T) {
	client := &fakeClient{token: "fresh-token"}
	s, _ := newTestStore(t, client)

	// Establish a valid session first, then fail a re-login.
	require.NoError(t, s.IssueToken(context.Background(), "jakob@example.com", "pw"))
	require.True(t, *s.State().Auth.HasValidToken)

	client.issueErr = &api.Error{StatusCode: 401, Message: "wrong email or password"}
	require.Error(t, s.IssueToken(context.Background(), "jakob@example.com", "wrong"))

	state := s.State()
	assert.Equal(t, StatusFailed, state.Auth.RequestStatus)
	assert.Equal(t, "wrong email or password", state.Auth.RequestError)
	require.NotNil(t, state.Auth.HasValidToken)
	assert.False(t, *state.Auth.HasValidToken, "a rejected issuance invalidates the session regardless of prior value")
}

func TestFetchProfileFulfilled(t *testing.T) {
	client := &fakeClient{profile: &entity.Profile{ID: 7, Username: "mira", Email: "mira@example.com"}}
	s, _ := newTestStore(t, client)

	require.NoError(t, s.FetchProfile(context.Background()))

	state := s.State()
	assert.Equal(t, StatusSucceeded, state.Auth.RequestStatus)
	require.NotNil(t, state.Auth.HasValidToken)
	assert.True(t, *state.Auth.HasValidToken)
	require.NotNil(t, state.Auth.Profile)
	assert.Equal(t, entity.Profile{ID: 7, Username: "mira", Email: "mira@example.com"}, *state.Auth.Profile)
}

func TestFetchProfileRejectedInvalidatesToken(t *testing.T) {
	client := &fakeClient{profileErr: &api.Error{StatusCode: 401, Message: "missing or invalid bearer token"}}
	s, _ := newTestStore(t, client)

	require.Error(t, s.FetchProfile(context.Background()))

	state := s.State()
	assert.Equal(t, StatusFailed, state.Auth.RequestStatus)
	assert.Equal(t, "missing or invalid bearer token", state.Auth.RequestError)
	require.NotNil(t, state.Auth.HasValidToken)
	assert.False(t, *state.Auth.HasValidToken)
	assert.Nil(t, state.Auth.Profile)
}

func TestRequestPasswordResetLifecycle(t *testing.T) {
	s, _ := newTestStore(t, &fakeClient{})

	require.NoError(t, s.RequestPasswordReset(context.Background(), "jakob@example.com"))
	assert.Equal(t, StatusSucceeded, s.State().Auth.RequestStatus)

	client := &fakeClient{resetErr: &api.Error{StatusCode: 400, Message: "the provided email does not correspond to any registered user"}}
	s, _ = newTestStore(t, client)
	require.Error(t, s.RequestPasswordReset(context.Background(), "nobody@example.com"))

	state := s.State()
	assert.Equal(t, StatusFailed, state.Auth.RequestStatus)
	assert.Equal(t, "the provided email does not correspond to any registered user", state.Auth.RequestError)
	assert.Nil(t, state.Auth.HasValidToken, "reset failures do not touch token validity")
}

func TestNetworkErrorMessagePropagates(t *testing.T) {
	client := &fakeClient{issueErr: errors.New("dial tcp: connection refused")}
	s, _ := newTestStore(t, client)

	require.Error(t, s.IssueToken(context.Background(), "jakob@example.com", "pw"))

	state := s.State()
	assert.Equal(t, StatusFailed, state.Auth.RequestStatus)
	assert.Equal(t, "dial tcp: connection refused", state.Auth.RequestError)
}

func TestSupersededAuthCompletionIsDropped(t *testing.T) {
	s, _ := newTestStore(t, &fakeClient{})

	// Two overlapping requests: the older one resolves after the newer one
	// has been issued, so its completion must not win.
	seqOld := s.beginAuth()
	seqNew := s.beginAuth()

	s.finishAuth(seqOld, TokenIssued{Token: "stale-token"})
	state := s.State()
	assert.Equal(t, StatusLoading, state.Auth.RequestStatus, "a superseded completion is ignored")
	assert.Empty(t, state.Auth.Token)

	s.finishAuth(seqNew, TokenIssued{Token: "current-token"})
	state = s.State()
	assert.Equal(t, StatusSucceeded, state.Auth.RequestStatus)
	assert.Equal(t, "current-token", state.Auth.Token)
}
