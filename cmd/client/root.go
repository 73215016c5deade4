package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/study-marks/internal/client"
	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/models"
)

type rootOptions struct {
	configPath string
	login      string
	password   string
	logPath    string

	buildInfo models.AppBuildInfo
}

func newRootCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	opts := &rootOptions{buildInfo: buildInfo}

	root := &cobra.Command{
		Use:           "study-marks",
		Short:         "Bookmark study content and organise it with tags",
		Long:          "study-marks keeps your bookmarks of notes, chapters, videos and past-year papers on a server and lets you tag them.\nWithout a subcommand the terminal UI is started.",
		Version:       buildInfo.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a JSON config file")
	flags.StringVarP(&opts.login, "login", "l", "", "login for signing in (env CLIENT_LOGIN)")
	flags.StringVarP(&opts.password, "password", "p", "", "password for signing in (env CLIENT_PASSWORD)")
	flags.StringVar(&opts.logPath, "log", "", "log file (env CLIENT_LOG_PATH)")

	root.AddCommand(
		newTUICmd(opts),
		newBookmarksCmd(opts),
		newTagsCmd(opts),
		newCatalogCmd(opts),
		newVersionCmd(opts),
	)

	return root
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	app, err := opts.newApp()
	if err != nil {
		return err
	}
	return app.Run(cmd.Context())
}

// newApp reads the client config and lets non-empty flags override it.
func (o *rootOptions) newApp() (*client.App, error) {
	cfg, err := config.GetClientConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if o.login != "" {
		cfg.Login = o.login
	}
	if o.password != "" {
		cfg.Password = o.password
	}
	if o.logPath != "" {
		cfg.LogPath = o.logPath
	}

	log := logger.NewClientLogger("study-marks-client", cfg.LogPath)
	return client.NewApp(cfg, o.buildInfo, log)
}

// signedInApp is the starting point of every command that touches the
// user's bookmarks.
func (o *rootOptions) signedInApp(cmd *cobra.Command) (*client.App, error) {
	app, err := o.newApp()
	if err != nil {
		return nil, err
	}
	if err = app.SignIn(cmd.Context()); err != nil {
		if errors.Is(err, client.ErrNoCredentials) {
			return nil, fmt.Errorf("%w: pass --login and --password or set CLIENT_LOGIN and CLIENT_PASSWORD", err)
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return app, nil
}

// operationError turns the store's last error notification into an error.
// The store reports failures only through notifications.
func operationError(app *client.App, fallback string) error {
	var last *models.Notification
drain:
	for {
		select {
		case n := <-app.Notifications():
			if n.Severity == models.SeverityError {
				last = &n
			}
		default:
			break drain
		}
	}

	if last == nil {
		return errors.New(fallback)
	}
	if last.Description == "" {
		return errors.New(last.Title)
	}
	return fmt.Errorf("%s: %s", last.Title, last.Description)
}
