package service

import (
	"github.com/MKhiriev/study-marks/internal/catalog"
	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/store"
	"github.com/MKhiriev/study-marks/internal/validators"
)

// Services groups the server side services used by the HTTP handlers.
type Services struct {
	AuthService     AuthService
	BookmarkService BookmarkService
	TagService      TagService
	CatalogService  CatalogService
	AppInfoService  AppInfoService
}

func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	content := catalog.Default()
	appInfo, err := NewAppInfoService(cfg.App, content, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewStructValidator()

	return &Services{
		AuthService:     NewAuthService(repositories.UserRepository, validator, cfg.App, logger),
		BookmarkService: NewBookmarkService(repositories.BookmarkRepository, validator, logger),
		TagService:      NewTagService(repositories.TagRepository, validator, logger),
		CatalogService:  NewCatalogService(content, logger),
		AppInfoService:  appInfo,
	}, nil
}
