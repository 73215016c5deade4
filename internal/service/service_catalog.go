package service

import (
	"context"

	"github.com/MKhiriev/study-marks/internal/catalog"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/models"
)

type catalogService struct {
	catalog *catalog.Catalog
	logger  *logger.Logger
}

func NewCatalogService(c *catalog.Catalog, logger *logger.Logger) CatalogService {
	return &catalogService{catalog: c, logger: logger}
}

func (s *catalogService) Search(ctx context.Context, query string) []models.CatalogItem {
	items := s.catalog.Search(query)
	logger.FromContext(ctx).Debug().Str("query", query).Int("found", len(items)).Msg("catalog search")
	return items
}

func (s *catalogService) Subjects(ctx context.Context) []models.Subject {
	return s.catalog.Subjects()
}
