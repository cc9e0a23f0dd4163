package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied before the config file and environment are consulted.
const (
	DefaultSSHPort       = 22
	DefaultCheckInterval = 300
	DefaultMaxLogLines   = 1000
)

// DefaultConfig returns a configuration populated from defaults and
// SENTRY_* environment variables. Values from a loaded file override these.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Server: ServerConfig{
			Host:           envOr("SENTRY_SERVER_HOST", "localhost"),
			Port:           envIntOr("SENTRY_SERVER_PORT", DefaultSSHPort),
			Username:       envOr("SENTRY_SERVER_USER", envOr("USER", "ubuntu")),
			PrivateKeyPath: envOr("SENTRY_SSH_KEY", filepath.Join(home, ".ssh", "id_rsa")),
			Password:       os.Getenv("SENTRY_SSH_PASSWORD"),
		},
		App: AppConfig{
			Name:        envOr("SENTRY_APP_NAME", "application"),
			Environment: envOr("SENTRY_APP_ENV", "production"),
			Source:      envOr("SENTRY_LOG_SOURCE", SourceLocal),
			LogPath:     envOr("SENTRY_LOG_PATH", "/var/log/app/app.log"),
			Container:   os.Getenv("SENTRY_CONTAINER"),
		},
		Monitoring: MonitoringConfig{
			CheckIntervalSeconds: envIntOr("SENTRY_CHECK_INTERVAL", DefaultCheckInterval),
			MaxLogLines:          envIntOr("SENTRY_MAX_LOG_LINES", DefaultMaxLogLines),
			HistoryPath:          os.Getenv("SENTRY_HISTORY_PATH"),
		},
		Alerts: AlertsConfig{
			Enabled:      os.Getenv("SENTRY_ALERTS_ENABLED") == "true",
			Email:        os.Getenv("SENTRY_ALERT_EMAIL"),
			WebhookURL:   os.Getenv("SENTRY_ALERT_WEBHOOK"),
			WebhookToken: os.Getenv("SENTRY_ALERT_WEBHOOK_TOKEN"),
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fend-sentry", "config.yaml")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
