package http

import (
	"context"
	"testing"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/service"
	"github.com/MKhiriev/study-marks/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService. Each method field can be
// overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn == nil {
		return models.Token{SignedString: "token-for-" + user.ID, UserID: user.ID}, nil
	}
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn == nil {
		if tokenString == validToken {
			return models.Token{SignedString: tokenString, UserID: testUserID}, nil
		}
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return m.parseTokenFn(ctx, tokenString)
}

type mockBookmarkService struct {
	listFn   func(ctx context.Context) ([]models.Bookmark, error)
	createFn func(ctx context.Context, b models.NewBookmark) (models.Bookmark, error)
	deleteFn func(ctx context.Context, bookmarkID string) error
	attachFn func(ctx context.Context, bookmarkID, tagID string) error
	detachFn func(ctx context.Context, bookmarkID, tagID string) error
}

func (m *mockBookmarkService) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	return m.listFn(ctx)
}

func (m *mockBookmarkService) CreateBookmark(ctx context.Context, b models.NewBookmark) (models.Bookmark, error) {
	return m.createFn(ctx, b)
}

func (m *mockBookmarkService) DeleteBookmark(ctx context.Context, bookmarkID string) error {
	return m.deleteFn(ctx, bookmarkID)
}

func (m *mockBookmarkService) AttachTag(ctx context.Context, bookmarkID, tagID string) error {
	return m.attachFn(ctx, bookmarkID, tagID)
}

func (m *mockBookmarkService) DetachTag(ctx context.Context, bookmarkID, tagID string) error {
	return m.detachFn(ctx, bookmarkID, tagID)
}

type mockTagService struct {
	listFn   func(ctx context.Context) ([]models.Tag, error)
	findFn   func(ctx context.Context, name string) (models.Tag, error)
	createFn func(ctx context.Context, tag models.NewTag) (models.Tag, error)
	deleteFn func(ctx context.Context, tagID string) error
}

func (m *mockTagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return m.listFn(ctx)
}

func (m *mockTagService) FindTagByName(ctx context.Context, name string) (models.Tag, error) {
	return m.findFn(ctx, name)
}

func (m *mockTagService) CreateTag(ctx context.Context, tag models.NewTag) (models.Tag, error) {
	return m.createFn(ctx, tag)
}

func (m *mockTagService) DeleteTag(ctx context.Context, tagID string) error {
	return m.deleteFn(ctx, tagID)
}

type mockCatalogService struct {
	items    []models.CatalogItem
	subjects []models.Subject
	lastQ    string
}

func (m *mockCatalogService) Search(_ context.Context, query string) []models.CatalogItem {
	m.lastQ = query
	return m.items
}

func (m *mockCatalogService) Subjects(_ context.Context) []models.Subject {
	return m.subjects
}

type mockAppInfoService struct {
	version string
	info    models.ServerInfo
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetServerInfo(_ context.Context) models.ServerInfo {
	return m.info
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	validToken = "valid-token"
	testUserID = "u-1"
)

// newTestHandler builds a Handler over svcs, filling unset services with
// harmless defaults.
func newTestHandler(t *testing.T, svcs *service.Services, opts ...Option) *Handler {
	t.Helper()
	if svcs == nil {
		svcs = &service.Services{}
	}
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	if svcs.CatalogService == nil {
		svcs.CatalogService = &mockCatalogService{}
	}
	return NewHandler(svcs, logger.Nop(), opts...)
}
