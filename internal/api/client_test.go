package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
	"github.com/vocabtreasury/vocabtreasury/internal/infrastructure/session"
	"github.com/vocabtreasury/vocabtreasury/internal/mockapi"
)

func newTestClient(t *testing.T, backend *mockapi.Server) (*HTTPClient, *session.MemoryStorage) {
	t.Helper()
	server := httptest.NewServer(backend.Handler())
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens := session.NewMemoryStorage()
	return NewHTTPClient(server.URL, 5*time.Second, tokens, logger), tokens
}

func logIn(t *testing.T, client *HTTPClient, tokens *session.MemoryStorage, email, password string) {
	t.Helper()
	token, err := client.IssueToken(context.Background(), email, password)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NoError(t, tokens.Save(token))
}

func TestCreateUserAndIssueToken(t *testing.T) {
	backend := mockapi.New()
	client, _ := newTestClient(t, backend)
	ctx := context.Background()

	err := client.CreateUser(ctx, entity.Registration{
		Username: "jakob", Email: "jakob@example.com", Password: "pw",
	})
	require.NoError(t, err)

	token, err := client.IssueToken(ctx, "jakob@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	backend := mockapi.New()
	backend.AddUser("jakob", "jakob@example.com", "pw")
	client, _ := newTestClient(t, backend)

	err := client.CreateUser(context.Background(), entity.Registration{
		Username: "someone-else", Email: "jakob@example.com", Password: "pw",
	})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "there already exists a user with the provided email", apiErr.Message)
}

func TestIssueTokenWrongPassword(t *testing.T) {
	backend := mockapi.New()
	backend.AddUser("jakob", "jakob@example.com", "pw")
	client, _ := newTestClient(t, backend)

	_, err := client.IssueToken(context.Background(), "jakob@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.EqualError(t, err, "wrong email or password")
}

func TestConfirmEmailAddressFlow(t *testing.T) {
	backend := mockapi.New()
	userID := backend.AddUser("jakob", "jakob@example.com", "pw")
	confirmationToken := backend.PendConfirmation(userID)
	client, _ := newTestClient(t, backend)
	ctx := context.Background()

	// Unconfirmed accounts cannot log in yet.
	_, err := client.IssueToken(ctx, "jakob@example.com", "pw")
	require.Error(t, err)

	message, err := client.ConfirmEmailAddress(ctx, confirmationToken)
	require.NoError(t, err)
	assert.Equal(t, "you have confirmed your email address successfully", message)

	_, err = client.IssueToken(ctx, "jakob@example.com", "pw")
	assert.NoError(t, err)

	// The token is single-use.
	_, err = client.ConfirmEmailAddress(ctx, confirmationToken)
	require.Error(t, err)
	assert.EqualError(t, err, "the provided confirmation token is invalid or expired")
}

func TestFetchProfileReadsTokenFreshFromStorage(t *testing.T) {
	backend := mockapi.New()
	backend.AddUser("mira", "mira@example.com", "pw")
	client, tokens := newTestClient(t, backend)
	ctx := context.Background()

	// No token stored yet: the backend rejects the call.
	_, err := client.FetchProfile(ctx)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	// The same client picks up a token stored after its construction.
	logIn(t, client, tokens, "mira@example.com", "pw")
	profile, err := client.FetchProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mira", profile.Username)
	assert.Equal(t, "mira@example.com", profile.Email)
	assert.Positive(t, profile.ID)
}

func TestRequestPasswordReset(t *testing.T) {
	backend := mockapi.New()
	backend.AddUser("mira", "mira@example.com", "pw")
	client, _ := newTestClient(t, backend)
	ctx := context.Background()

	require.NoError(t, client.RequestPasswordReset(ctx, "mira@example.com"))

	err := client.RequestPasswordReset(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.EqualError(t, err, "the provided email does not correspond to any registered user")
}

func TestFetchExamplesPaginationEnvelope(t *testing.T) {
	backend := mockapi.New()
	userID := backend.AddUser("mira", "mira@example.com", "pw")
	for i := 1; i <= 11; i++ {
		backend.AddExample(userID, "Finnish", fmt.Sprintf("sana-%02d", i), fmt.Sprintf("Lause numero %d.", i), "")
	}
	client, tokens := newTestClient(t, backend)
	logIn(t, client, tokens, "mira@example.com", "pw")
	ctx := context.Background()

	query := url.Values{}
	query.Set("page", "1")
	query.Set("per_page", "2")
	page, err := client.FetchExamples(ctx, client.ExamplesURL(query))
	require.NoError(t, err)

	require.NotNil(t, page.Meta.TotalItems)
	assert.Equal(t, int64(11), *page.Meta.TotalItems)
	assert.Equal(t, int64(2), *page.Meta.PerPage)
	assert.Equal(t, int64(6), *page.Meta.TotalPages)
	assert.Equal(t, int64(1), *page.Meta.Page)
	assert.Empty(t, page.Links.Prev, "no prev link on the first page")
	assert.Contains(t, page.Links.Next, "page=2")
	require.Len(t, page.Items, 2)
	assert.Equal(t, "sana-01", page.Items[0].NewWord)
	assert.Equal(t, "sana-02", page.Items[1].NewWord)

	// Follow the envelope's own backend-relative next link.
	page, err = client.FetchExamples(ctx, page.Links.Next)
	require.NoError(t, err)
	assert.Equal(t, int64(2), *page.Meta.Page)
	assert.Equal(t, "sana-03", page.Items[0].NewWord)
	assert.Contains(t, page.Links.Prev, "page=1")

	// The last page has one item and no next link.
	page, err = client.FetchExamples(ctx, page.Links.Last)
	require.NoError(t, err)
	assert.Equal(t, int64(6), *page.Meta.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "sana-11", page.Items[0].NewWord)
	assert.Empty(t, page.Links.Next)
}

func TestFetchExamplesSearchFilters(t *testing.T) {
	backend := mockapi.New()
	userID := backend.AddUser("mira", "mira@example.com", "pw")
	backend.AddExample(userID, "Finnish", "sataa", "Ulkona sataa lunta.", "It is snowing outside.")
	backend.AddExample(userID, "German", "der Igel", "Der Igel schläft.", "The hedgehog sleeps.")
	client, tokens := newTestClient(t, backend)
	logIn(t, client, tokens, "mira@example.com", "pw")

	query := url.Values{}
	query.Set("new_word", "igel")
	page, err := client.FetchExamples(context.Background(), client.ExamplesURL(query))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "der Igel", page.Items[0].NewWord)
}

func TestExamplesAreScopedToTheirOwner(t *testing.T) {
	backend := mockapi.New()
	miraID := backend.AddUser("mira", "mira@example.com", "pw")
	jakobID := backend.AddUser("jakob", "jakob@example.com", "pw")
	backend.AddExample(miraID, "Finnish", "sataa", "Ulkona sataa.", "")
	exampleID := backend.AddExample(jakobID, "German", "der Igel", "Der Igel schläft.", "")

	client, tokens := newTestClient(t, backend)
	logIn(t, client, tokens, "mira@example.com", "pw")
	ctx := context.Background()

	page, err := client.FetchExamples(ctx, client.ExamplesURL(url.Values{}))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "sataa", page.Items[0].NewWord)

	// Another user's example is invisible to delete and edit alike.
	err = client.DeleteExample(ctx, exampleID)
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestCreateExampleNormalizesEmptyOptionalFields(t *testing.T) {
	backend := mockapi.New()
	backend.AddUser("mira", "mira@example.com", "pw")
	client, tokens := newTestClient(t, backend)
	logIn(t, client, tokens, "mira@example.com", "pw")

	created, err := client.CreateExample(context.Background(), entity.ExampleDraft{
		NewWord: "sisu",
		Content: "Sisu vie perille.",
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "sisu", created.NewWord)
	assert.Empty(t, created.SourceLanguage)
	assert.Empty(t, created.ContentTranslation)
}

func TestEditExampleSendsOnlyPatchedFields(t *testing.T) {
	backend := mockapi.New()
	userID := backend.AddUser("mira", "mira@example.com", "pw")
	exampleID := backend.AddExample(userID, "Finnish", "sataa", "Ulkona sataa lunta.", "It is snowing outside.")
	client, tokens := newTestClient(t, backend)
	logIn(t, client, tokens, "mira@example.com", "pw")

	content := "Eilen satoi koko päivän."
	updated, err := client.EditExample(context.Background(), exampleID, entity.ExamplePatch{Content: &content})
	require.NoError(t, err)

	assert.Equal(t, content, updated.Content)
	assert.Equal(t, "sataa", updated.NewWord, "unpatched fields survive")
	assert.Equal(t, "Finnish", updated.SourceLanguage)
	assert.Equal(t, "It is snowing outside.", updated.ContentTranslation)
}

func TestDeleteExample(t *testing.T) {
	backend := mockapi.New()
	userID := backend.AddUser("mira", "mira@example.com", "pw")
	exampleID := backend.AddExample(userID, "Finnish", "sataa", "Ulkona sataa.", "")
	client, tokens := newTestClient(t, backend)
	logIn(t, client, tokens, "mira@example.com", "pw")
	ctx := context.Background()

	require.NoError(t, client.DeleteExample(ctx, exampleID))

	page, err := client.FetchExamples(ctx, client.ExamplesURL(url.Values{}))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestErrorFallbackWhenBodyHasNoMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := NewHTTPClient(server.URL, 5*time.Second, session.NewMemoryStorage(), logger)

	_, err := client.FetchProfile(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, fallbackErrorMessage, apiErr.Message)
}
