package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/utils"
	"github.com/MKhiriev/study-marks/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. The base URL comes from cfg.HTTPAddress; a missing scheme
// defaults to http. Returns an error if the address is empty or unparsable.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs the credentials to /api/auth/register and keeps the token
// from the Authorization response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/register", user)
}

// Login POSTs the credentials to /api/auth/login and keeps the token from
// the Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.User{Login: user.Login, Password: user.Password}).
		SetResult(&out).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return out, nil
}

func (h *httpServerAdapter) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	var out []models.Bookmark

	resp, err := h.authedRequest(ctx).SetResult(&out).Get("/api/bookmarks")
	if err != nil {
		return nil, fmt.Errorf("list bookmarks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return nonNil(out), nil
}

func (h *httpServerAdapter) InsertBookmark(ctx context.Context, bookmark models.NewBookmark) (models.Bookmark, error) {
	var out models.Bookmark

	resp, err := h.authedRequest(ctx).
		SetBody(bookmark).
		SetResult(&out).
		Post("/api/bookmarks")
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("insert bookmark request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Bookmark{}, err
	}

	if out.Tags == nil {
		out.Tags = []models.Tag{}
	}
	return out, nil
}

func (h *httpServerAdapter) DeleteBookmark(ctx context.Context, bookmarkID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("bookmarkID", bookmarkID).
		Delete("/api/bookmarks/{bookmarkID}")
	if err != nil {
		return fmt.Errorf("delete bookmark request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListTags(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag

	resp, err := h.authedRequest(ctx).SetResult(&out).Get("/api/tags")
	if err != nil {
		return nil, fmt.Errorf("list tags request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return nonNil(out), nil
}

func (h *httpServerAdapter) FindTagByName(ctx context.Context, name string) (models.Tag, error) {
	var out models.Tag

	resp, err := h.authedRequest(ctx).
		SetQueryParam("name", name).
		SetResult(&out).
		Get("/api/tags")
	if err != nil {
		return models.Tag{}, fmt.Errorf("find tag request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Tag{}, err
	}

	return out, nil
}

func (h *httpServerAdapter) InsertTag(ctx context.Context, name string) (models.Tag, error) {
	var out models.Tag

	resp, err := h.authedRequest(ctx).
		SetBody(models.NewTag{Name: name}).
		SetResult(&out).
		Post("/api/tags")
	if err != nil {
		return models.Tag{}, fmt.Errorf("insert tag request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Tag{}, err
	}

	return out, nil
}

func (h *httpServerAdapter) DeleteTag(ctx context.Context, tagID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("tagID", tagID).
		Delete("/api/tags/{tagID}")
	if err != nil {
		return fmt.Errorf("delete tag request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) AttachTag(ctx context.Context, bookmarkID, tagID string) error {
	resp, err := h.bookmarkTagRequest(ctx, bookmarkID, tagID).Post("/api/bookmarks/{bookmarkID}/tags/{tagID}")
	if err != nil {
		return fmt.Errorf("attach tag request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DetachTag(ctx context.Context, bookmarkID, tagID string) error {
	resp, err := h.bookmarkTagRequest(ctx, bookmarkID, tagID).Delete("/api/bookmarks/{bookmarkID}/tags/{tagID}")
	if err != nil {
		return fmt.Errorf("detach tag request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Catalog(ctx context.Context, query string) ([]models.CatalogItem, error) {
	var out []models.CatalogItem

	req := h.client.R().SetContext(ctx).SetResult(&out)
	if query != "" {
		req.SetQueryParam("q", query)
	}

	resp, err := req.Get("/api/catalog")
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return nonNil(out), nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) bookmarkTagRequest(ctx context.Context, bookmarkID, tagID string) *resty.Request {
	return h.authedRequest(ctx).SetPathParams(map[string]string{
		"bookmarkID": bookmarkID,
		"tagID":      tagID,
	})
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
