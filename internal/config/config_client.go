package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the server API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// LogPath is the client log file. Empty means "logs" next to the binary.
	LogPath string
	// Login and Password are the credentials of non-interactive commands.
	Login    string
	Password string
}

// GetClientConfig builds and validates the client configuration from
// environment variables, the JSON file at jsonPath (if any) and defaults.
//
// Command-line flags are not read here: the client CLI defines its own flags
// and passes the config path explicitly.
func GetClientConfig(jsonPath string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSONFile(jsonPath).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		LogPath:  cfg.Client.LogPath,
		Login:    cfg.Client.Login,
		Password: cfg.Client.Password,
	}

	return clientCfg, clientCfg.validate()
}
