package tui

import (
	"context"

	"github.com/MKhiriev/study-marks/models"
)

// bookmarkStore is the part of service.BookmarkStore the screens use.
type bookmarkStore interface {
	State() models.StoreState
	Subscribe() (<-chan models.StoreState, func())

	AddBookmark(ctx context.Context, input models.AddBookmarkInput) (*models.Bookmark, error)
	RemoveBookmark(ctx context.Context, bookmarkID string) bool
	IsBookmarked(contentType models.ContentType, contentID string) bool
	GetBookmark(contentID string, contentType models.ContentType) (models.Bookmark, bool)

	CreateTag(ctx context.Context, name string) (*models.Tag, error)
	DeleteTag(ctx context.Context, tagID string) bool
	AddTagToBookmark(ctx context.Context, bookmarkID, tagID string) bool
	RemoveTagFromBookmark(ctx context.Context, bookmarkID, tagID string) bool
}

// authenticator is the part of identity.Session the screens use.
type authenticator interface {
	Login(ctx context.Context, login, password string) error
	Register(ctx context.Context, login, password string) error
	Logout()
	UserLogin() string
}

// serverInfo reaches the public, unauthenticated part of the server.
type serverInfo interface {
	Catalog(ctx context.Context, query string) ([]models.CatalogItem, error)
	Version(ctx context.Context) (string, error)
}
