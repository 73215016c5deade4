package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/utils"
	"github.com/MKhiriev/study-marks/models"
)

func newTestApp(t *testing.T, login, password string, handler http.HandlerFunc) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	app, err := NewApp(&config.ClientConfig{
		Adapter:  config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second},
		Login:    login,
		Password: password,
	}, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), logger.Nop())
	require.NoError(t, err)
	return app
}

func TestApp_SignInLoadsBookmarks(t *testing.T) {
	app := newTestApp(t, "alice", "secret1", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Header().Set("Authorization", "Bearer tok-1")
			utils.WriteJSON(w, models.AuthResponse{UserID: "u-1", Login: "alice"}, http.StatusOK)
		case "/api/bookmarks":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			utils.WriteJSON(w, []models.Bookmark{{ID: "b-1", UserID: "u-1", ContentType: models.Note, ContentID: "phys-note-1", Title: "Physical Quantities"}}, http.StatusOK)
		case "/api/tags":
			utils.WriteJSON(w, []models.Tag{}, http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	})

	require.NoError(t, app.SignIn(context.Background()))

	userID, ok := app.Session().CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, "u-1", userID)

	state := app.Store().State()
	assert.Equal(t, models.PhaseReady, state.Phase)
	require.Len(t, state.Bookmarks, 1)
	assert.True(t, app.Store().IsBookmarked(models.Note, "phys-note-1"))
	assert.Equal(t, "1.2.3", app.BuildInfo().BuildVersion())
}

func TestApp_SignInWithoutCredentials(t *testing.T) {
	app := newTestApp(t, "", "", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})

	assert.ErrorIs(t, app.SignIn(context.Background()), ErrNoCredentials)
}

func TestApp_SignInRejected(t *testing.T) {
	app := newTestApp(t, "alice", "wrong", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "invalid login or password", http.StatusUnauthorized)
	})

	err := app.SignIn(context.Background())
	require.Error(t, err)
	_, ok := app.Session().CurrentUserID()
	assert.False(t, ok)
}

func TestApp_SignInFetchFailure(t *testing.T) {
	app := newTestApp(t, "alice", "secret1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/login" {
			w.Header().Set("Authorization", "Bearer tok-1")
			utils.WriteJSON(w, models.AuthResponse{UserID: "u-1", Login: "alice"}, http.StatusOK)
			return
		}
		utils.WriteError(w, "boom", http.StatusInternalServerError)
	})

	err := app.SignIn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load bookmarks")

	select {
	case n := <-app.Notifications():
		assert.Equal(t, models.SeverityError, n.Severity)
	default:
		t.Fatal("expected a notification about the failed load")
	}
}
