package models

import "time"

// User represents an account that owns bookmarks and tags.
type User struct {
	// ID is the server assigned identifier. Every bookmark and tag row
	// carries it as user_id.
	ID string `json:"user_id"`

	// Login is the unique user login identifier.
	Login string `json:"login" validate:"required,min=3,max=64"`

	// Password is only ever populated on the way in (register, login).
	Password string `json:"password,omitempty" validate:"required,min=6,max=72"`

	// PasswordHash is the bcrypt hash kept by the server.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// AuthResponse is the JSON body returned by register and login. The bearer
// token itself travels in the Authorization header.
type AuthResponse struct {
	UserID string `json:"user_id"`
	Login  string `json:"login"`
}
