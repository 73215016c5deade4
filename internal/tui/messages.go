package tui

import "github.com/MKhiriev/study-marks/models"

// NavigateTo switches the active page. Payload, if set, is delivered to the
// new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload any
}

type authResultMsg struct {
	login string
	err   error
}

type storeStateMsg struct {
	state models.StoreState
}

type notificationMsg struct {
	notification models.Notification
}

type clearToastMsg struct {
	seq int
}

type catalogLoadedMsg struct {
	query string
	items []models.CatalogItem
	err   error
}

// opDoneMsg ends a store operation started by a page. Results reach the
// user through notifications and state updates.
type opDoneMsg struct {
	page string
	err  error
}

type copiedMsg struct {
	err error
}
