// Package tui is the terminal user interface of the study-marks client:
// a catalog browser, the bookmark list and tag management on top of
// the client bookmark store.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/models"
)

type TUI struct {
	session       authenticator
	store         bookmarkStore
	server        serverInfo
	notifications <-chan models.Notification
	buildInfo     models.AppBuildInfo
	logger        *logger.Logger
}

func New(
	session authenticator,
	store bookmarkStore,
	server serverInfo,
	notifications <-chan models.Notification,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *TUI {
	return &TUI{
		session:       session,
		store:         store,
		server:        server,
		notifications: notifications,
		buildInfo:     buildInfo,
		logger:        logger,
	}
}

// Run shows the UI until the user quits. It returns [ErrUserQuit] when the
// user left on purpose.
func (t *TUI) Run(ctx context.Context) error {
	root := t.newRootModel(ctx)
	defer root.unsubscribe()

	finalModel, err := tea.NewProgram(root.model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

type rootWithCancel struct {
	model       RootModel
	unsubscribe func()
}

func (t *TUI) newRootModel(ctx context.Context) rootWithCancel {
	stateCh, unsubscribe := t.store.Subscribe()

	pages := map[string]tea.Model{
		pageMenu:      NewMenuModel(),
		pageLogin:     NewAuthModel(ctx, t.session, modeLogin),
		pageRegister:  NewAuthModel(ctx, t.session, modeRegister),
		pageCatalog:   NewCatalogModel(ctx, t.store, t.server),
		pageBookmarks: NewBookmarksModel(ctx, t.store),
		pageTags:      NewTagsModel(ctx, t.store),
	}

	start := pageMenu
	if t.session.UserLogin() != "" {
		start = pageCatalog
	}

	t.logger.Debug().Str("page", start).Msg("starting tui")

	return rootWithCancel{
		model:       NewRootModel(ctx, t.session, t.server, pages, start, t.store.State(), stateCh, t.notifications, t.buildInfo),
		unsubscribe: unsubscribe,
	}
}
