// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// ContentType names the kind of catalog content a bookmark points at.
// Together with a content id it forms the content identity of an item.
type ContentType string

const (
	Article  ContentType = "article"
	Video    ContentType = "video"
	Chapter  ContentType = "chapter"
	Question ContentType = "question"
	Note     ContentType = "note"
	PYQ      ContentType = "pyq" // past-year question paper
	Resource ContentType = "resource"
)

// ContentTypes lists every supported [ContentType] in display order.
var ContentTypes = []ContentType{Article, Video, Chapter, Question, Note, PYQ, Resource}

// Valid reports whether c is one of the known content types.
func (c ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if c == known {
			return true
		}
	}
	return false
}

// ParseContentType converts user input (any case, surrounding spaces) into a
// [ContentType]. The boolean is false for unknown values.
func ParseContentType(s string) (ContentType, bool) {
	c := ContentType(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Bookmark is a user's saved reference to a piece of catalog content.
//
// Title, Description and URL are copied from the catalog when the bookmark
// is created and are not kept in sync with the source afterwards.
// Tags is hydrated from the bookmark_tags join and is never stored on the
// bookmark row itself.
type Bookmark struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	ContentType ContentType `json:"content_type"`
	ContentID   string      `json:"content_id"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	URL         *string     `json:"url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Tags        []Tag       `json:"tags"`
}

// Matches reports whether the bookmark references the given content identity.
func (b Bookmark) Matches(contentType ContentType, contentID string) bool {
	return b.ContentType == contentType && b.ContentID == contentID
}

// HasTag reports whether tagID is among the hydrated tags of the bookmark.
func (b Bookmark) HasTag(tagID string) bool {
	for _, t := range b.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// NewBookmark is the payload sent to the remote store to create a bookmark
// row. The owner is never part of the payload: the server takes it from the
// authenticated request.
type NewBookmark struct {
	ContentType ContentType `json:"content_type" validate:"required,content_type"`
	ContentID   string      `json:"content_id" validate:"required,max=255"`
	Title       string      `json:"title" validate:"required,max=500"`
	Description *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	URL         *string     `json:"url,omitempty" validate:"omitempty,max=2048"`
}

// AddBookmarkInput is what a caller hands to the bookmark store to save a
// content item. TagIDs reference already existing tags; NewTags are names
// that are looked up and created on demand before being attached.
type AddBookmarkInput struct {
	ContentType ContentType
	ContentID   string
	Title       string
	Description *string
	URL         *string
	TagIDs      []string
	NewTags     []string
}

// NewBookmark strips the tag related fields off the input.
func (in AddBookmarkInput) NewBookmark() NewBookmark {
	return NewBookmark{
		ContentType: in.ContentType,
		ContentID:   in.ContentID,
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
	}
}

// BookmarkTag is a single row of the many-to-many join between bookmarks
// and tags.
type BookmarkTag struct {
	BookmarkID string `json:"bookmark_id"`
	TagID      string `json:"tag_id"`
}
