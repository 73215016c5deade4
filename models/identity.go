package models

// IdentityEvent is published whenever the signed-in user changes. An empty
// UserID means the user signed out.
type IdentityEvent struct {
	UserID string
}

// SignedIn reports whether the event carries a user.
func (e IdentityEvent) SignedIn() bool {
	return e.UserID != ""
}
