// Package store is the client's state container: three independently
// reduced slices (alerts, auth, examples), asynchronous operations that
// drive them through a pending/rejected/fulfilled lifecycle, and the
// cross-slice logout orchestration. Consumers read state through snapshot
// selectors and never mutate it directly.
package store

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vocabtreasury/vocabtreasury/internal/api"
	"github.com/vocabtreasury/vocabtreasury/internal/entity"
	"github.com/vocabtreasury/vocabtreasury/internal/infrastructure/session"
)

// RequestStatus tracks the lifecycle of the most recent asynchronous
// operation of a slice.
type RequestStatus string

const (
	StatusIdle      RequestStatus = "idle"
	StatusLoading   RequestStatus = "loading"
	StatusFailed    RequestStatus = "failed"
	StatusSucceeded RequestStatus = "succeeded"
)

// Action is one state transition applied to a single slice. Subscribers
// observe actions in dispatch order.
type Action interface {
	isAction()
}

// State is an immutable snapshot of the whole state tree. The contained
// maps and slices are never mutated after a snapshot is taken; reducers
// replace them instead.
type State struct {
	Alerts   AlertsState
	Auth     AuthState
	Examples ExamplesState
}

// Deps carries the collaborators a Store is built from. Stores are
// explicit instances, so tests construct as many isolated ones as they
// need.
type Deps struct {
	API    api.Client
	Tokens session.TokenStorage
	Logger *logrus.Logger
	// NewAlertID generates alert identifiers; defaults to uuid.NewString.
	NewAlertID func() string
}

// Store composes the three slices into one addressable state tree.
type Store struct {
	mu          sync.Mutex
	alerts      AlertsState
	auth        AuthState
	examples    ExamplesState
	authSeq     uint64
	examplesSeq uint64
	subscribers []func(Action)

	apiClient  api.Client
	tokens     session.TokenStorage
	logger     *logrus.Logger
	newAlertID func() string
}

// New builds a Store, initializing the auth slice from the token found in
// durable storage. A present token starts the session in the "unverified"
// state; only a profile fetch or token issuance confirms validity.
func New(deps Deps) (*Store, error) {
	if deps.NewAlertID == nil {
		deps.NewAlertID = uuid.NewString
	}
	token, err := deps.Tokens.Load()
	if err != nil {
		return nil, err
	}
	return &Store{
		alerts:     newAlertsState(),
		auth:       newAuthState(token),
		examples:   newExamplesState(),
		apiClient:  deps.API,
		tokens:     deps.Tokens,
		logger:     deps.Logger,
		newAlertID: deps.NewAlertID,
	}, nil
}

// State returns a snapshot of the state tree.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Alerts: s.alerts, Auth: s.auth, Examples: s.examples}
}

// Subscribe registers fn to observe every dispatched action, in dispatch
// order. Intended for the view layer and for tests asserting orchestration
// order.
func (s *Store) Subscribe(fn func(Action)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// LogOut ends the session: it evicts the persisted token, clears the auth
// slice, clears the examples slice and raises an alert carrying message,
// in exactly that order. It never fails.
func (s *Store) LogOut(message string) {
	if err := s.tokens.Clear(); err != nil {
		s.logger.WithError(err).Warn("failed to evict persisted token")
	}
	s.dispatch(AuthCleared{})
	s.dispatch(ExamplesCleared{})
	s.dispatch(AlertCreated{Alert: entity.Alert{ID: s.newAlertID(), Message: message}})
}

// CreateAlert raises a notification with the caller-supplied unique id.
func (s *Store) CreateAlert(id, message string) {
	s.dispatch(AlertCreated{Alert: entity.Alert{ID: id, Message: message}})
}

// NotifyUser raises a notification with a generated id and returns that id.
func (s *Store) NotifyUser(message string) string {
	id := s.newAlertID()
	s.CreateAlert(id, message)
	return id
}

// RemoveAlert dismisses the alert with the given id; unknown ids are a
// no-op.
func (s *Store) RemoveAlert(id string) {
	s.dispatch(AlertRemoved{ID: id})
}

func (s *Store) dispatch(action Action) {
	s.mu.Lock()
	s.apply(action)
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()
	notify(subs, action)
}

func notify(subs []func(Action), action Action) {
	for _, fn := range subs {
		fn(action)
	}
}

// apply routes an action to its slice's reducer. Callers hold s.mu.
func (s *Store) apply(action Action) {
	switch action.(type) {
	case alertsAction:
		s.alerts = reduceAlerts(s.alerts, action)
	case authAction:
		s.auth = reduceAuth(s.auth, action)
	case examplesAction:
		s.examples = reduceExamples(s.examples, action)
	}
}

// beginAuth dispatches the pending phase and hands back the request
// sequence number used to fence its completion.
func (s *Store) beginAuth() uint64 {
	s.mu.Lock()
	s.authSeq++
	seq := s.authSeq
	s.apply(AuthPending{})
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()
	notify(subs, AuthPending{})
	return seq
}

// finishAuth applies a completion action unless a newer auth request has
// been issued since seq was taken. The backing request order is otherwise
// uncoordinated, so without this guard a slow early request could
// overwrite the outcome of a later one.
func (s *Store) finishAuth(seq uint64, action Action) {
	s.mu.Lock()
	if seq != s.authSeq {
		s.mu.Unlock()
		s.logger.WithField("seq", seq).Debug("dropping superseded auth completion")
		return
	}
	s.apply(action)
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()
	notify(subs, action)
}

func (s *Store) beginExamples() uint64 {
	s.mu.Lock()
	s.examplesSeq++
	seq := s.examplesSeq
	s.apply(ExamplesPending{})
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()
	notify(subs, ExamplesPending{})
	return seq
}

func (s *Store) finishExamples(seq uint64, action Action) {
	s.mu.Lock()
	if seq != s.examplesSeq {
		s.mu.Unlock()
		s.logger.WithField("seq", seq).Debug("dropping superseded examples completion")
		return
	}
	s.apply(action)
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()
	notify(subs, action)
}

// messageOf extracts the user-facing message from an operation failure:
// the backend's message for request rejections, the error text otherwise.
func messageOf(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
