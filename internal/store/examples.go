package store

import (
	"context"

	"github.com/samber/lo"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
)

// ExamplesState holds exactly one page of the user's example collection in
// normalized form: ids in server order plus an id-keyed entity map. A
// successful fetch replaces the page wholesale, so Entities never carries
// stale entries from a previous page.
type ExamplesState struct {
	RequestStatus RequestStatus
	RequestError  string
	Meta          entity.PaginationMeta
	Links         entity.PaginationLinks
	IDs           []int64
	Entities      map[int64]entity.Example
}

func newExamplesState() ExamplesState {
	return ExamplesState{
		RequestStatus: StatusIdle,
		IDs:           []int64{},
		Entities:      map[int64]entity.Example{},
	}
}

// ExamplesPending marks the start of any examples operation.
type ExamplesPending struct{}

// ExamplesRejected records a failed examples operation.
type ExamplesRejected struct {
	Message string
}

// PageFetched replaces the displayed page with one server response.
type PageFetched struct {
	Page entity.ExamplePage
}

// ExampleCreated records a newly stored example. The displayed page is
// replaced by the single created item; callers re-fetch the first page
// right afterwards to restore full page content.
type ExampleCreated struct {
	Example entity.Example
}

// ExampleDeleted evicts one example locally, leaving meta and links stale
// until the caller re-fetches.
type ExampleDeleted struct {
	ID int64
}

// ExampleEdited overwrites an example in place with the server-echoed
// update.
type ExampleEdited struct {
	Example entity.Example
}

// ExamplesCleared resets the collection to the unfetched state, preserving
// RequestStatus and RequestError.
type ExamplesCleared struct{}

type examplesAction interface {
	Action
	isExamplesAction()
}

func (ExamplesPending) isAction()          {}
func (ExamplesPending) isExamplesAction()  {}
func (ExamplesRejected) isAction()         {}
func (ExamplesRejected) isExamplesAction() {}
func (PageFetched) isAction()              {}
func (PageFetched) isExamplesAction()      {}
func (ExampleCreated) isAction()           {}
func (ExampleCreated) isExamplesAction()   {}
func (ExampleDeleted) isAction()           {}
func (ExampleDeleted) isExamplesAction()   {}
func (ExampleEdited) isAction()            {}
func (ExampleEdited) isExamplesAction()    {}
func (ExamplesCleared) isAction()          {}
func (ExamplesCleared) isExamplesAction()  {}

func reduceExamples(state ExamplesState, action Action) ExamplesState {
	switch a := action.(type) {
	case ExamplesPending:
		state.RequestStatus = StatusLoading
		state.RequestError = ""
		return state

	case ExamplesRejected:
		state.RequestStatus = StatusFailed
		state.RequestError = a.Message
		return state

	case PageFetched:
		state.RequestStatus = StatusSucceeded
		state.RequestError = ""
		state.Meta = a.Page.Meta
		state.Links = a.Page.Links
		state.IDs = lo.Map(a.Page.Items, func(item entity.Example, _ int) int64 {
			return item.ID
		})
		state.Entities = lo.SliceToMap(a.Page.Items, func(item entity.Example) (int64, entity.Example) {
			return item.ID, item
		})
		return state

	case ExampleCreated:
		state.RequestStatus = StatusSucceeded
		state.RequestError = ""
		if state.Meta.TotalItems != nil {
			state.Meta.TotalItems = lo.ToPtr(*state.Meta.TotalItems + 1)
		}
		// The created item's position in any page ordering is unknown, so
		// the navigation links no longer describe a real page.
		state.Links = entity.PaginationLinks{}
		state.IDs = []int64{a.Example.ID}
		state.Entities = map[int64]entity.Example{a.Example.ID: a.Example}
		return state

	case ExampleDeleted:
		state.RequestStatus = StatusSucceeded
		state.RequestError = ""
		ids := make([]int64, 0, len(state.IDs))
		for _, id := range state.IDs {
			if id != a.ID {
				ids = append(ids, id)
			}
		}
		entities := make(map[int64]entity.Example, len(state.Entities))
		for id, item := range state.Entities {
			if id != a.ID {
				entities[id] = item
			}
		}
		state.IDs = ids
		state.Entities = entities
		return state

	case ExampleEdited:
		state.RequestStatus = StatusSucceeded
		state.RequestError = ""
		if _, ok := state.Entities[a.Example.ID]; !ok {
			// Edits assume the id is on the displayed page; don't grow IDs.
			return state
		}
		entities := make(map[int64]entity.Example, len(state.Entities))
		for id, item := range state.Entities {
			entities[id] = item
		}
		entities[a.Example.ID] = a.Example
		state.Entities = entities
		return state

	case ExamplesCleared:
		state.Meta = entity.PaginationMeta{}
		state.Links = entity.PaginationLinks{}
		state.IDs = []int64{}
		state.Entities = map[int64]entity.Example{}
		return state
	}
	return state
}

// FetchExamples loads one page envelope from an arbitrary fully-qualified
// pagination URL; the slice has no opinion on query construction.
func (s *Store) FetchExamples(ctx context.Context, pageURL string) error {
	seq := s.beginExamples()
	page, err := s.apiClient.FetchExamples(ctx, pageURL)
	if err != nil {
		s.finishExamples(seq, ExamplesRejected{Message: messageOf(err)})
		return err
	}
	s.finishExamples(seq, PageFetched{Page: *page})
	return nil
}

// CreateExample stores a new example for the logged-in user.
func (s *Store) CreateExample(ctx context.Context, draft entity.ExampleDraft) error {
	seq := s.beginExamples()
	created, err := s.apiClient.CreateExample(ctx, draft)
	if err != nil {
		s.finishExamples(seq, ExamplesRejected{Message: messageOf(err)})
		return err
	}
	s.finishExamples(seq, ExampleCreated{Example: *created})
	return nil
}

// DeleteExample removes an example and evicts it from the displayed page.
func (s *Store) DeleteExample(ctx context.Context, id int64) error {
	seq := s.beginExamples()
	if err := s.apiClient.DeleteExample(ctx, id); err != nil {
		s.finishExamples(seq, ExamplesRejected{Message: messageOf(err)})
		return err
	}
	s.finishExamples(seq, ExampleDeleted{ID: id})
	return nil
}

// EditExample applies a partial update; only fields the patch carries are
// transmitted.
func (s *Store) EditExample(ctx context.Context, id int64, patch entity.ExamplePatch) error {
	seq := s.beginExamples()
	updated, err := s.apiClient.EditExample(ctx, id, patch)
	if err != nil {
		s.finishExamples(seq, ExamplesRejected{Message: messageOf(err)})
		return err
	}
	s.finishExamples(seq, ExampleEdited{Example: *updated})
	return nil
}

// ClearExamples resets the collection without ending the session, e.g.
// when switching accounts.
func (s *Store) ClearExamples() {
	s.dispatch(ExamplesCleared{})
}
