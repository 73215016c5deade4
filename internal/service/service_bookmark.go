// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/store"
	"github.com/MKhiriev/study-marks/internal/utils"
	"github.com/MKhiriev/study-marks/internal/validators"
	"github.com/MKhiriev/study-marks/models"
)

type bookmarkService struct {
	repository store.BookmarkRepository
	validator  validators.Validator
	logger     *logger.Logger
}

func NewBookmarkService(repository store.BookmarkRepository, validator validators.Validator, logger *logger.Logger) BookmarkService {
	return &bookmarkService{
		repository: repository,
		validator:  validator,
		logger:     logger,
	}
}

func (s *bookmarkService) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	return s.repository.ListBookmarks(ctx, userID)
}

func (s *bookmarkService) CreateBookmark(ctx context.Context, bookmark models.NewBookmark) (models.Bookmark, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.Bookmark{}, ErrUnauthenticated
	}

	if err := s.validator.Validate(ctx, bookmark); err != nil {
		logger.FromContext(ctx).Info().Err(err).Msg("bookmark rejected by validation")
		return models.Bookmark{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.repository.CreateBookmark(ctx, userID, bookmark)
}

func (s *bookmarkService) DeleteBookmark(ctx context.Context, bookmarkID string) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	return s.repository.DeleteBookmark(ctx, userID, bookmarkID)
}

func (s *bookmarkService) AttachTag(ctx context.Context, bookmarkID, tagID string) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	return s.repository.AttachTag(ctx, userID, bookmarkID, tagID)
}

func (s *bookmarkService) DetachTag(ctx context.Context, bookmarkID, tagID string) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	return s.repository.DetachTag(ctx, userID, bookmarkID, tagID)
}
