// Package mockapi is an in-process VocabTreasury backend: the same REST
// contract the real service exposes, backed by seedable in-memory data.
// Tests run the client against it through httptest, and the mock-serve
// command hosts it for local development.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const defaultPerPage = 10

type user struct {
	id        int64
	username  string
	email     string
	password  string
	confirmed bool
}

type example struct {
	id                 int64
	ownerID            int64
	sourceLanguage     string
	newWord            string
	content            string
	contentTranslation string
}

// Server holds the fake backend's state. The zero value is not usable;
// construct with New.
type Server struct {
	mu            sync.Mutex
	users         map[int64]*user
	confirmations map[string]int64
	tokens        map[string]int64
	examples      map[int64]*example
	order         []int64
	userSeq       int64
	exampleSeq    int64
}

// New returns an empty fake backend.
func New() *Server {
	return &Server{
		users:         map[int64]*user{},
		confirmations: map[string]int64{},
		tokens:        map[string]int64{},
		examples:      map[int64]*example{},
	}
}

// Handler returns the REST surface as an http.Handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleCreateUser)
		r.Post("/confirm-email-address/{token}", s.handleConfirmEmail)
		r.Post("/tokens", s.handleIssueToken)
		r.Get("/user-profile", s.handleUserProfile)
		r.Post("/request-password-reset", s.handleRequestPasswordReset)
		r.Route("/examples", func(r chi.Router) {
			r.Get("/", s.handleListExamples)
			r.Post("/", s.handleCreateExample)
			r.Put("/{id}", s.handleEditExample)
			r.Delete("/{id}", s.handleDeleteExample)
		})
	})
	return r
}

// AddUser seeds a confirmed account and returns its id.
func (s *Server) AddUser(username, email, password string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userSeq++
	s.users[s.userSeq] = &user{
		id:        s.userSeq,
		username:  username,
		email:     email,
		password:  password,
		confirmed: true,
	}
	return s.userSeq
}

// PendConfirmation marks the account as unconfirmed and returns the
// confirmation token that completes the registration.
func (s *Server) PendConfirmation(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	if u, ok := s.users[userID]; ok {
		u.confirmed = false
		s.confirmations[token] = userID
	}
	return token
}

// AddExample seeds one example owned by userID and returns its id.
func (s *Server) AddExample(userID int64, sourceLanguage, newWord, content, contentTranslation string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exampleSeq++
	s.examples[s.exampleSeq] = &example{
		id:                 s.exampleSeq,
		ownerID:            userID,
		sourceLanguage:     sourceLanguage,
		newWord:            newWord,
		content:            content,
		contentTranslation: contentTranslation,
	}
	s.order = append(s.order, s.exampleSeq)
	return s.exampleSeq
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "the request body is not valid JSON")
		return
	}
	if body.Username == "" || body.Email == "" || body.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username, email and password are all required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.email == body.Email {
			writeMessage(w, http.StatusBadRequest, "there already exists a user with the provided email")
			return
		}
		if u.username == body.Username {
			writeMessage(w, http.StatusBadRequest, "there already exists a user with the provided username")
			return
		}
	}
	s.userSeq++
	u := &user{
		id:        s.userSeq,
		username:  body.Username,
		email:     body.Email,
		password:  body.Password,
		confirmed: true,
	}
	s.users[u.id] = u
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       u.id,
		"username": u.username,
		"email":    u.email,
	})
}

func (s *Server) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.confirmations[token]
	if !ok {
		writeMessage(w, http.StatusBadRequest, "the provided confirmation token is invalid or expired")
		return
	}
	delete(s.confirmations, token)
	s.users[userID].confirmed = true
	writeMessage(w, http.StatusOK, "you have confirmed your email address successfully")
}

func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "basic auth credentials are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.email == email && u.password == password && u.confirmed {
			token := uuid.NewString()
			s.tokens[token] = u.id
			writeJSON(w, http.StatusOK, map[string]any{"token": token})
			return
		}
	}
	writeMessage(w, http.StatusUnauthorized, "wrong email or password")
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       u.id,
		"username": u.username,
		"email":    u.email,
	})
}

func (s *Server) handleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeMessage(w, http.StatusBadRequest, "an email address is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.email == body.Email {
			writeMessage(w, http.StatusOK, "a password-reset link is on its way to your email address")
			return
		}
	}
	writeMessage(w, http.StatusBadRequest, "the provided email does not correspond to any registered user")
}

func (s *Server) authenticate(r *http.Request) (*user, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	return s.users[userID], true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

func parsePositiveInt(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid example id %q", raw)
	}
	return id, nil
}
