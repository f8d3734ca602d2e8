package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
	"github.com/vocabtreasury/vocabtreasury/internal/infrastructure/session"
)

// HTTPClient is the production Client implementation. The bearer token is
// read fresh from session storage on every authenticated call, so a token
// refreshed by another operation is picked up on the next request.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  session.TokenStorage
	logger  *logrus.Logger
}

// NewHTTPClient builds a Client against the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens session.TokenStorage, logger *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// ExamplesURL builds the first-page URL for the examples collection from
// the given query values (page, per_page and search filters). Navigation
// past the first page follows the envelope's own links instead.
func (c *HTTPClient) ExamplesURL(query url.Values) string {
	target := c.baseURL + "/api/examples"
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

func (c *HTTPClient) CreateUser(ctx context.Context, reg entity.Registration) error {
	body := registrationSchema{
		Username: reg.Username,
		Email:    reg.Email,
		Password: reg.Password,
	}
	return c.do(ctx, http.MethodPost, c.baseURL+"/api/users", body, nil, authNone)
}

func (c *HTTPClient) ConfirmEmailAddress(ctx context.Context, confirmationToken string) (string, error) {
	var out messageSchema
	target := c.baseURL + "/api/confirm-email-address/" + url.PathEscape(confirmationToken)
	if err := c.do(ctx, http.MethodPost, target, nil, &out, authNone); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) IssueToken(ctx context.Context, email, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/api/tokens", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(email, password)

	var out tokenSchema
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *HTTPClient) FetchProfile(ctx context.Context) (*entity.Profile, error) {
	var out profileSchema
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/user-profile", nil, &out, authBearer); err != nil {
		return nil, err
	}
	return toProfile(out), nil
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/api/request-password-reset", emailSchema{Email: email}, nil, authNone)
}

func (c *HTTPClient) FetchExamples(ctx context.Context, pageURL string) (*entity.ExamplePage, error) {
	// The backend's _links are backend-relative paths; absolute URLs pass
	// through untouched.
	if strings.HasPrefix(pageURL, "/") {
		pageURL = c.baseURL + pageURL
	}
	var out pageSchema
	if err := c.do(ctx, http.MethodGet, pageURL, nil, &out, authBearer); err != nil {
		return nil, err
	}
	return toExamplePage(out), nil
}

func (c *HTTPClient) CreateExample(ctx context.Context, draft entity.ExampleDraft) (*entity.Example, error) {
	var out exampleSchema
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/examples", fromDraft(draft), &out, authBearer); err != nil {
		return nil, err
	}
	created := toExample(out)
	return &created, nil
}

func (c *HTTPClient) DeleteExample(ctx context.Context, id int64) error {
	target := fmt.Sprintf("%s/api/examples/%d", c.baseURL, id)
	return c.do(ctx, http.MethodDelete, target, nil, nil, authBearer)
}

func (c *HTTPClient) EditExample(ctx context.Context, id int64, patch entity.ExamplePatch) (*entity.Example, error) {
	target := fmt.Sprintf("%s/api/examples/%d", c.baseURL, id)
	var out exampleSchema
	if err := c.do(ctx, http.MethodPut, target, fromPatch(patch), &out, authBearer); err != nil {
		return nil, err
	}
	updated := toExample(out)
	return &updated, nil
}

type authMode int

const (
	authNone authMode = iota
	authBearer
)

func (c *HTTPClient) do(ctx context.Context, method, target string, in, out any, mode authMode) error {
	req, err := c.newRequest(ctx, method, target, in)
	if err != nil {
		return err
	}
	if mode == authBearer {
		token, err := c.tokens.Load()
		if err != nil {
			return fmt.Errorf("load session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return c.send(req, out)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, target string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// decodeError extracts the backend's message field from a failure body,
// falling back to a fixed sentinel when the body carries none.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Message: fallbackErrorMessage}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var body messageSchema
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
