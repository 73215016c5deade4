package models

import "time"

// Tag is a user defined label attachable to any number of bookmarks.
// Names are unique per user on a best-effort basis only.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTag is the payload used to create a tag.
type NewTag struct {
	Name string `json:"name" validate:"required,notblank,max=64"`
}
