// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side transport to the study-marks
// server.
//
// [ServerAdapter] decouples the bookmark store and the identity session from
// the wire protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of transport
// (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/study-marks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the server. Every bookmark and tag
// call is scoped to the user behind the bearer token set with SetToken.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to subsequent requests.
	SetToken(token string)
	// Token returns the current bearer token, or "" if none is set.
	Token() string

	// Register creates an account and stores the issued token.
	Register(ctx context.Context, user models.User) (models.AuthResponse, error)
	// Login authenticates and stores the issued token.
	Login(ctx context.Context, user models.User) (models.AuthResponse, error)

	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)
	InsertBookmark(ctx context.Context, bookmark models.NewBookmark) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, bookmarkID string) error

	ListTags(ctx context.Context) ([]models.Tag, error)
	// FindTagByName returns [ErrNotFound] when the user has no such tag.
	FindTagByName(ctx context.Context, name string) (models.Tag, error)
	InsertTag(ctx context.Context, name string) (models.Tag, error)
	DeleteTag(ctx context.Context, tagID string) error

	AttachTag(ctx context.Context, bookmarkID, tagID string) error
	DetachTag(ctx context.Context, bookmarkID, tagID string) error

	// Catalog searches the server's content catalog. It needs no token.
	Catalog(ctx context.Context, query string) ([]models.CatalogItem, error)
	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
