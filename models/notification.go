package models

// Severity grades a user visible notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

// String returns a lower-case label suitable for logs and the UI.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a short-lived, dismissable status message emitted after a
// store operation. It is a side channel and never part of a return value.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}
