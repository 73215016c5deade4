package store

import (
	"context"

	"github.com/MKhiriev/study-marks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator maps driver specific errors to storage level meaning.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
}

// IDGenerator produces primary keys for new rows.
type IDGenerator interface {
	Generate() string
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// BookmarkRepository persists bookmarks and their tag associations. Every
// method is scoped to a single user.
type BookmarkRepository interface {
	ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error)
	CreateBookmark(ctx context.Context, userID string, bookmark models.NewBookmark) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, bookmarkID string) error
	AttachTag(ctx context.Context, userID, bookmarkID, tagID string) error
	DetachTag(ctx context.Context, userID, bookmarkID, tagID string) error
}

// TagRepository persists tags of a single user.
type TagRepository interface {
	ListTags(ctx context.Context, userID string) ([]models.Tag, error)
	FindTagByName(ctx context.Context, userID, name string) (models.Tag, error)
	CreateTag(ctx context.Context, userID, name string) (models.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID string) error
}
