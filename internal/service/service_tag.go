package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/store"
	"github.com/MKhiriev/study-marks/internal/utils"
	"github.com/MKhiriev/study-marks/internal/validators"
	"github.com/MKhiriev/study-marks/models"
)

type tagService struct {
	repository store.TagRepository
	validator  validators.Validator
	logger     *logger.Logger
}

func NewTagService(repository store.TagRepository, validator validators.Validator, logger *logger.Logger) TagService {
	return &tagService{
		repository: repository,
		validator:  validator,
		logger:     logger,
	}
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	return s.repository.ListTags(ctx, userID)
}

// FindTagByName looks up a tag by its exact (case sensitive) name.
func (s *tagService) FindTagByName(ctx context.Context, name string) (models.Tag, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.Tag{}, ErrUnauthenticated
	}
	if name == "" {
		return models.Tag{}, ErrInvalidDataProvided
	}

	return s.repository.FindTagByName(ctx, userID, name)
}

// CreateTag stores a new tag. The name is trimmed; an existing tag with the
// same name is not reused here, that lookup belongs to the caller.
func (s *tagService) CreateTag(ctx context.Context, tag models.NewTag) (models.Tag, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.Tag{}, ErrUnauthenticated
	}

	tag.Name = strings.TrimSpace(tag.Name)
	if err := s.validator.Validate(ctx, tag); err != nil {
		logger.FromContext(ctx).Info().Err(err).Msg("tag rejected by validation")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.repository.CreateTag(ctx, userID, tag.Name)
}

func (s *tagService) DeleteTag(ctx context.Context, tagID string) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	return s.repository.DeleteTag(ctx, userID, tagID)
}
