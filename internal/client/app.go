package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/study-marks/internal/adapter"
	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/identity"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/notify"
	"github.com/MKhiriev/study-marks/internal/service"
	"github.com/MKhiriev/study-marks/internal/tui"
	"github.com/MKhiriev/study-marks/internal/workers"
	"github.com/MKhiriev/study-marks/models"
)

// ErrNoCredentials is returned by SignIn when neither the config nor the
// flags carry a login and password.
var ErrNoCredentials = errors.New("login and password are required")

const notificationBuffer = 16

// App owns the client object graph: the server adapter, the identity
// session and the bookmark store. The TUI and the one-shot CLI commands
// both run on top of it.
type App struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo

	adapter  adapter.ServerAdapter
	session  *identity.Session
	store    *service.BookmarkStore
	notifier *notify.ChannelNotifier

	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(config.Adapter{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	session := identity.NewSession(serverAdapter, logger)
	channel := notify.NewChannelNotifier(notificationBuffer)
	store := service.NewBookmarkStore(
		serverAdapter,
		session,
		notify.Multi{notify.NewLogNotifier(logger), channel},
		logger,
	)

	return &App{
		cfg:       cfg,
		buildInfo: buildInfo,
		adapter:   serverAdapter,
		session:   session,
		store:     store,
		notifier:  channel,
		logger:    logger,
	}, nil
}

func (a *App) Store() *service.BookmarkStore { return a.store }

func (a *App) Session() *identity.Session { return a.session }

func (a *App) Adapter() adapter.ServerAdapter { return a.adapter }

func (a *App) BuildInfo() models.AppBuildInfo { return a.buildInfo }

// Notifications delivers the store's status messages. Nobody has to read
// them: once the buffer is full new ones are dropped.
func (a *App) Notifications() <-chan models.Notification { return a.notifier.C() }

// SignIn logs in with the configured credentials and loads the user's
// bookmarks and tags.
func (a *App) SignIn(ctx context.Context) error {
	if a.cfg.Login == "" || a.cfg.Password == "" {
		return ErrNoCredentials
	}
	if err := a.session.Login(ctx, a.cfg.Login, a.cfg.Password); err != nil {
		return err
	}
	if !a.store.FetchAll(ctx) {
		return fmt.Errorf("load bookmarks: %w", a.store.State().Err)
	}
	return nil
}

// Run starts the bookmark store loop and the TUI and blocks until the user
// quits or ctx is done. Configured credentials sign the user in up front;
// a failure there only lands them on the login screen.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.Login != "" && a.cfg.Password != "" {
		if err := a.session.Login(ctx, a.cfg.Login, a.cfg.Password); err != nil {
			a.logger.Warn().Err(err).Str("login", a.cfg.Login).Msg("auto login failed")
		}
	}

	ui := tui.New(a.session, a.store, a.adapter, a.notifier.C(), a.buildInfo, a.logger)

	w := workers.NewWorkers(a.logger,
		workers.WorkerFunc(a.store.Run),
		workers.WorkerFunc(func(ctx context.Context) error {
			defer cancel()
			err := ui.Run(ctx)
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}),
	)

	return w.Run(ctx)
}
