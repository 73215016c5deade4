package store

import (
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/utils"
)

// Repositories groups the repositories the server services depend on.
type Repositories struct {
	UserRepository     UserRepository
	BookmarkRepository BookmarkRepository
	TagRepository      TagRepository
}

// NewRepositories builds all repositories on top of db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	ids := utils.NewUUIDGenerator()
	return &Repositories{
		UserRepository:     NewUserRepository(db, ids, log),
		BookmarkRepository: NewBookmarkRepository(db, ids, log),
		TagRepository:      NewTagRepository(db, ids, log),
	}
}
