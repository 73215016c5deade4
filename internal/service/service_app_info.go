package service

import (
	"context"
	"time"

	"github.com/MKhiriev/study-marks/internal/catalog"
	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/models"
)

// appInfoService answers what the server is and what it serves. The catalog
// is static, so its counts are taken once at construction.
type appInfoService struct {
	info models.ServerInfo

	logger *logger.Logger
}

// NewAppInfoService requires a configured version. A nil catalog is served
// as an empty one.
func NewAppInfoService(cfg config.App, content *catalog.Catalog, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	info := models.ServerInfo{
		Version:   cfg.Version,
		StartedAt: time.Now().UTC(),
	}
	if content != nil {
		info.Subjects = len(content.Subjects())
		info.CatalogItems = len(content.Items())
		info.Notes = len(content.Notes())
	}

	logger.Info().
		Str("version", info.Version).
		Int("subjects", info.Subjects).
		Int("catalog_items", info.CatalogItems).
		Msg("app info service created")

	return &appInfoService{
		info:   info,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetServerInfo(ctx context.Context) models.ServerInfo {
	return s.info
}
