package service

import (
	"context"

	"github.com/MKhiriev/study-marks/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// BookmarkService serves the bookmarks of the user found in the request
// context (see utils.WithUserID).
type BookmarkService interface {
	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)
	CreateBookmark(ctx context.Context, bookmark models.NewBookmark) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, bookmarkID string) error
	AttachTag(ctx context.Context, bookmarkID, tagID string) error
	DetachTag(ctx context.Context, bookmarkID, tagID string) error
}

// TagService serves the tags of the user found in the request context.
type TagService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	FindTagByName(ctx context.Context, name string) (models.Tag, error)
	CreateTag(ctx context.Context, tag models.NewTag) (models.Tag, error)
	DeleteTag(ctx context.Context, tagID string) error
}

// CatalogService exposes the static content catalog. It needs no user.
type CatalogService interface {
	Search(ctx context.Context, query string) []models.CatalogItem
	Subjects(ctx context.Context) []models.Subject
}

// AppInfoService describes the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetServerInfo(ctx context.Context) models.ServerInfo
}
