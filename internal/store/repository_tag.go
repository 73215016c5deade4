package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/models"
)

type tagRepository struct {
	logger *logger.Logger
	db     *DB
	ids    IDGenerator
}

// NewTagRepository constructs the SQL [TagRepository].
func NewTagRepository(db *DB, ids IDGenerator, logger *logger.Logger) TagRepository {
	logger.Debug().Msg("creating tag repository")
	return &tagRepository{
		db:     db,
		ids:    ids,
		logger: logger,
	}
}

func (r *tagRepository) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	log := logger.FromContext(ctx).WithUser(userID)

	query, args, err := listTagsQuery(r.db.builder(), userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.ListTags").Msg("error selecting tags")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var t models.Tag
		if err = rows.Scan(&t.ID, &t.Name, &t.UserID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tags = append(tags, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tags, nil
}

// FindTagByName returns the user's tag with exactly this name, or
// [ErrTagNotFound].
func (r *tagRepository) FindTagByName(ctx context.Context, userID, name string) (models.Tag, error) {
	query, args, err := findTagByNameQuery(r.db.builder(), userID, name).ToSql()
	if err != nil {
		return models.Tag{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var t models.Tag
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.Name, &t.UserID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tag{}, ErrTagNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tagRepository.FindTagByName").Msg("error finding tag")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return t, nil
}

func (r *tagRepository) CreateTag(ctx context.Context, userID, name string) (models.Tag, error) {
	t := models.Tag{
		ID:        r.ids.Generate(),
		Name:      name,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := insertTagQuery(r.db.builder(), t.ID, t.Name, t.UserID, t.CreatedAt).ToSql()
	if err != nil {
		return models.Tag{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).WithUser(userID).Err(err).Str("func", "*tagRepository.CreateTag").Msg("error inserting tag")
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return models.Tag{}, ErrNoUserWasFound
		}
		return models.Tag{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return t, nil
}

// DeleteTag removes the tag (id, userID); its associations cascade.
func (r *tagRepository) DeleteTag(ctx context.Context, userID, tagID string) error {
	query, args, err := deleteTagQuery(r.db.builder(), userID, tagID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).WithUser(userID).Err(err).Str("func", "*tagRepository.DeleteTag").Msg("error deleting tag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res, ErrTagNotFound)
}
