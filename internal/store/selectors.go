package store

import "github.com/vocabtreasury/vocabtreasury/internal/entity"

// Selectors are pure field projections from a state snapshot. They keep
// consumers away from the state tree's internal shape and perform no
// derived computation.

func SelectAlertIDs(state State) []string {
	return state.Alerts.IDs
}

func SelectAlertEntities(state State) map[string]entity.Alert {
	return state.Alerts.Entities
}

func SelectAuthRequestStatus(state State) RequestStatus {
	return state.Auth.RequestStatus
}

func SelectAuthRequestError(state State) string {
	return state.Auth.RequestError
}

func SelectHasValidToken(state State) *bool {
	return state.Auth.HasValidToken
}

func SelectLoggedInProfile(state State) *entity.Profile {
	return state.Auth.Profile
}

func SelectExamplesRequestStatus(state State) RequestStatus {
	return state.Examples.RequestStatus
}

func SelectExamplesRequestError(state State) string {
	return state.Examples.RequestError
}

func SelectExamplesMeta(state State) entity.PaginationMeta {
	return state.Examples.Meta
}

func SelectExamplesLinks(state State) entity.PaginationLinks {
	return state.Examples.Links
}

func SelectExampleIDs(state State) []int64 {
	return state.Examples.IDs
}

func SelectExampleEntities(state State) map[int64]entity.Example {
	return state.Examples.Entities
}
