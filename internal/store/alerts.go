package store

import (
	"maps"
	"slices"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
)

// AlertsState is a normalized queue of user-facing notifications: ids in
// newest-first order plus an id-keyed entity map. Every id in IDs has a
// matching entry in Entities and vice versa.
type AlertsState struct {
	IDs      []string
	Entities map[string]entity.Alert
}

func newAlertsState() AlertsState {
	return AlertsState{
		IDs:      []string{},
		Entities: map[string]entity.Alert{},
	}
}

// AlertCreated prepends a new alert so the newest notification is
// foremost.
type AlertCreated struct {
	Alert entity.Alert
}

// AlertRemoved dismisses an alert; removing an unknown id is a no-op.
type AlertRemoved struct {
	ID string
}

type alertsAction interface {
	Action
	isAlertsAction()
}

func (AlertCreated) isAction()       {}
func (AlertCreated) isAlertsAction() {}
func (AlertRemoved) isAction()       {}
func (AlertRemoved) isAlertsAction() {}

func reduceAlerts(state AlertsState, action Action) AlertsState {
	switch a := action.(type) {
	case AlertCreated:
		if _, ok := state.Entities[a.Alert.ID]; ok {
			// Callers guarantee unique ids; refuse to break the no-duplicate
			// invariant if one slips through.
			return state
		}
		ids := make([]string, 0, len(state.IDs)+1)
		ids = append(ids, a.Alert.ID)
		ids = append(ids, state.IDs...)
		entities := maps.Clone(state.Entities)
		entities[a.Alert.ID] = a.Alert
		return AlertsState{IDs: ids, Entities: entities}

	case AlertRemoved:
		if _, ok := state.Entities[a.ID]; !ok {
			return state
		}
		ids := slices.DeleteFunc(slices.Clone(state.IDs), func(id string) bool {
			return id == a.ID
		})
		entities := maps.Clone(state.Entities)
		delete(entities, a.ID)
		return AlertsState{IDs: ids, Entities: entities}
	}
	return state
}
