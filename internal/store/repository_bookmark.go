// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

type bookmarkRepository struct {
	logger *logger.Logger
	db     *DB
	ids    IDGenerator
}

// NewBookmarkRepository constructs the SQL [BookmarkRepository].
func NewBookmarkRepository(db *DB, ids IDGenerator, logger *logger.Logger) BookmarkRepository {
	logger.Debug().Msg("creating bookmark repository")
	return &bookmarkRepository{
		db:     db,
		ids:    ids,
		logger: logger,
	}
}

// ListBookmarks returns the user's bookmarks newest first with their tags
// hydrated. Tags are loaded by a second query over the association table so
// the number of round trips does not depend on the number of bookmarks.
func (r *bookmarkRepository) ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	log := logger.FromContext(ctx).WithUser(userID)

	query, args, err := listBookmarksQuery(r.db.builder(), userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookmarkRepository.ListBookmarks").Msg("error selecting bookmarks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bookmarks := make([]models.Bookmark, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			b                models.Bookmark
			contentType      string
			description, url sql.NullString
		)
		if err = rows.Scan(&b.ID, &b.UserID, &contentType, &b.ContentID, &b.Title, &description, &url, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		b.ContentType = models.ContentType(contentType)
		b.Description = nullableString(description)
		b.URL = nullableString(url)
		b.Tags = []models.Tag{}

		index[b.ID] = len(bookmarks)
		bookmarks = append(bookmarks, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(bookmarks) == 0 {
		return bookmarks, nil
	}

	if err = r.hydrateTags(ctx, userID, bookmarks, index); err != nil {
		log.Err(err).Str("func", "*bookmarkRepository.ListBookmarks").Msg("error hydrating tags")
		return nil, err
	}

	return bookmarks, nil
}

func (r *bookmarkRepository) hydrateTags(ctx context.Context, userID string, bookmarks []models.Bookmark, index map[string]int) error {
	query, args, err := listBookmarkTagsQuery(r.db.builder(), userID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookmarkID string
			t          models.Tag
		)
		if err = rows.Scan(&bookmarkID, &t.ID, &t.Name, &t.UserID, &t.CreatedAt); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if i, ok := index[bookmarkID]; ok {
			bookmarks[i].Tags = append(bookmarks[i].Tags, t)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return nil
}

// CreateBookmark inserts a bookmark owned by userID. Duplicate content
// identities are not rejected here.
func (r *bookmarkRepository) CreateBookmark(ctx context.Context, userID string, nb models.NewBookmark) (models.Bookmark, error) {
	log := logger.FromContext(ctx).WithUser(userID)

	b := models.Bookmark{
		ID:          r.ids.Generate(),
		UserID:      userID,
		ContentType: nb.ContentType,
		ContentID:   nb.ContentID,
		Title:       nb.Title,
		Description: nb.Description,
		URL:         nb.URL,
		CreatedAt:   time.Now().UTC(),
		Tags:        []models.Tag{},
	}

	query, args, err := insertBookmarkQuery(r.db.builder(), b.ID, b.UserID, string(b.ContentType), b.ContentID, b.Title, b.Description, b.URL, b.CreatedAt).ToSql()
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*bookmarkRepository.CreateBookmark").Msg("error inserting bookmark")
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return models.Bookmark{}, ErrNoUserWasFound
		}
		return models.Bookmark{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Str("bookmark_id", b.ID).Msg("bookmark created")
	return b, nil
}

// DeleteBookmark removes the bookmark (id, userID). Associations go with it
// through ON DELETE CASCADE. Zero affected rows yields [ErrBookmarkNotFound].
func (r *bookmarkRepository) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	log := logger.FromContext(ctx).WithUser(userID)

	query, args, err := deleteBookmarkQuery(r.db.builder(), userID, bookmarkID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookmarkRepository.DeleteBookmark").Msg("error deleting bookmark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res, ErrBookmarkNotFound)
}

// AttachTag links tagID to bookmarkID. Both rows must belong to userID.
// Attaching an already attached tag is a no-op. The transaction is replayed
// on serialization failures and other transient errors.
func (r *bookmarkRepository) AttachTag(ctx context.Context, userID, bookmarkID, tagID string) error {
	return r.db.withRetry(ctx, func() error {
		return r.attachTag(ctx, userID, bookmarkID, tagID)
	})
}

func (r *bookmarkRepository) attachTag(ctx context.Context, userID, bookmarkID, tagID string) error {
	log := logger.FromContext(ctx).WithUser(userID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err = r.requireOwned(ctx, tx, "bookmarks", userID, bookmarkID, ErrBookmarkNotFound); err != nil {
		return err
	}
	if err = r.requireOwned(ctx, tx, "tags", userID, tagID, ErrTagNotFound); err != nil {
		return err
	}

	query, args, err := attachTagQuery(r.db.builder(), bookmarkID, tagID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*bookmarkRepository.AttachTag").Msg("error attaching tag")
		// a row checked above was deleted concurrently
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return ErrTagNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// DetachTag removes the association between bookmarkID and tagID if the
// bookmark belongs to userID.
func (r *bookmarkRepository) DetachTag(ctx context.Context, userID, bookmarkID, tagID string) error {
	log := logger.FromContext(ctx).WithUser(userID)

	query, args, err := detachTagQuery(r.db.builder(), userID, bookmarkID, tagID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookmarkRepository.DetachTag").Msg("error detaching tag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res, ErrBookmarkTagNotFound)
}

func (r *bookmarkRepository) requireOwned(ctx context.Context, tx *sql.Tx, table, userID, id string, notFound error) error {
	query, args, err := ownedRowQuery(r.db.builder(), table, userID, id).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
