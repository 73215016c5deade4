package service

import (
	"context"

	"github.com/MKhiriev/study-marks/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// RemoteStore is the authoritative bookmark and tag storage as seen from the
// client. Every call is scoped to the signed-in user.
type RemoteStore interface {
	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)
	InsertBookmark(ctx context.Context, bookmark models.NewBookmark) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, bookmarkID string) error

	ListTags(ctx context.Context) ([]models.Tag, error)
	// FindTagByName returns an error wrapping adapter.ErrNotFound when the
	// user has no tag with exactly that name.
	FindTagByName(ctx context.Context, name string) (models.Tag, error)
	InsertTag(ctx context.Context, name string) (models.Tag, error)
	DeleteTag(ctx context.Context, tagID string) error

	AttachTag(ctx context.Context, bookmarkID, tagID string) error
	DetachTag(ctx context.Context, bookmarkID, tagID string) error
}

// IdentityProvider reports the signed-in user and announces changes.
type IdentityProvider interface {
	CurrentUserID() (string, bool)
	Subscribe() (<-chan models.IdentityEvent, func())
}

// Notifier receives user visible status messages.
type Notifier interface {
	Notify(n models.Notification)
}
