package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/mock"
	"github.com/MKhiriev/study-marks/internal/store"
	"github.com/MKhiriev/study-marks/internal/utils"
	"github.com/MKhiriev/study-marks/internal/validators"
	"github.com/MKhiriev/study-marks/models"
)

func newTestBookmarkService(ctrl *gomock.Controller) (BookmarkService, *mock.MockBookmarkRepository) {
	repo := mock.NewMockBookmarkRepository(ctrl)
	return NewBookmarkService(repo, validators.NewStructValidator(), logger.Nop()), repo
}

func TestBookmarkService_RequiresUserInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestBookmarkService(ctrl)
	ctx := context.Background()

	_, err := svc.ListBookmarks(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.CreateBookmark(ctx, models.NewBookmark{ContentType: models.Note, ContentID: "n-1", Title: "t"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.ErrorIs(t, svc.DeleteBookmark(ctx, "b-1"), ErrUnauthenticated)
	assert.ErrorIs(t, svc.AttachTag(ctx, "b-1", "t-1"), ErrUnauthenticated)
	assert.ErrorIs(t, svc.DetachTag(ctx, "b-1", "t-1"), ErrUnauthenticated)
}

func TestBookmarkService_ListBookmarks_ScopedToUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestBookmarkService(ctrl)
	ctx := utils.WithUserID(context.Background(), "u-1")

	want := []models.Bookmark{{ID: "b-1", UserID: "u-1", Tags: []models.Tag{}}}
	repo.EXPECT().ListBookmarks(ctx, "u-1").Return(want, nil)

	got, err := svc.ListBookmarks(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBookmarkService_CreateBookmark(t *testing.T) {
	desc := "Units and dimensions"

	tests := []struct {
		name      string
		input     models.NewBookmark
		expectErr bool
	}{
		{
			name:  "valid note",
			input: models.NewBookmark{ContentType: models.Note, ContentID: "phys-note-1", Title: "Physical Quantities", Description: &desc},
		},
		{
			name:      "unknown content type",
			input:     models.NewBookmark{ContentType: "podcast", ContentID: "p-1", Title: "Episode"},
			expectErr: true,
		},
		{
			name:      "missing title",
			input:     models.NewBookmark{ContentType: models.PYQ, ContentID: "pyq-2021"},
			expectErr: true,
		},
		{
			name:      "missing content id",
			input:     models.NewBookmark{ContentType: models.Video, Title: "Lecture"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo := newTestBookmarkService(ctrl)
			ctx := utils.WithUserID(context.Background(), "u-1")

			if !tt.expectErr {
				repo.EXPECT().CreateBookmark(ctx, "u-1", tt.input).Return(models.Bookmark{
					ID:          "b-1",
					UserID:      "u-1",
					ContentType: tt.input.ContentType,
					ContentID:   tt.input.ContentID,
					Title:       tt.input.Title,
					CreatedAt:   time.Now(),
					Tags:        []models.Tag{},
				}, nil)
			}

			got, err := svc.CreateBookmark(ctx, tt.input)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidDataProvided)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "b-1", got.ID)
			assert.Equal(t, tt.input.ContentID, got.ContentID)
		})
	}
}

func TestBookmarkService_DeleteBookmark_PassesNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestBookmarkService(ctrl)
	ctx := utils.WithUserID(context.Background(), "u-1")

	repo.EXPECT().DeleteBookmark(ctx, "u-1", "someone-elses").Return(store.ErrBookmarkNotFound)

	assert.ErrorIs(t, svc.DeleteBookmark(ctx, "someone-elses"), store.ErrBookmarkNotFound)
}

func TestBookmarkService_TagAssociations(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestBookmarkService(ctrl)
	ctx := utils.WithUserID(context.Background(), "u-1")

	gomock.InOrder(
		repo.EXPECT().AttachTag(ctx, "u-1", "b-1", "t-1").Return(nil),
		repo.EXPECT().DetachTag(ctx, "u-1", "b-1", "t-1").Return(store.ErrBookmarkTagNotFound),
	)

	require.NoError(t, svc.AttachTag(ctx, "b-1", "t-1"))
	assert.ErrorIs(t, svc.DetachTag(ctx, "b-1", "t-1"), store.ErrBookmarkTagNotFound)
}
