package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. Defaults and SENTRY_*
// environment variables fill any field the file leaves unset.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration with owner-only permissions, creating the
// parent directory if needed. The file may hold SSH credentials.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks a configuration for errors and expands environment
// variable references in secrets.
func Validate(cfg *Config) error {
	if cfg.App.Name == "" {
		return errors.New("app.name is required")
	}

	switch cfg.App.Source {
	case SourceLocal:
		if cfg.App.LogPath == "" {
			return errors.New("app.log_path is required for local sources")
		}
	case SourceSSH:
		if cfg.App.LogPath == "" {
			return errors.New("app.log_path is required for ssh sources")
		}
		if err := validateServer(&cfg.Server); err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case SourceDocker:
		if cfg.App.Container == "" {
			return errors.New("app.container is required for docker sources")
		}
	default:
		return fmt.Errorf("invalid app.source %q (must be local, ssh, or docker)", cfg.App.Source)
	}

	if cfg.Monitoring.MaxLogLines <= 0 {
		cfg.Monitoring.MaxLogLines = DefaultMaxLogLines
	}
	if cfg.Monitoring.CheckIntervalSeconds <= 0 {
		cfg.Monitoring.CheckIntervalSeconds = DefaultCheckInterval
	}

	if cfg.Alerts.WebhookURL != "" {
		if err := validateWebhookURL(cfg.Alerts.WebhookURL); err != nil {
			return fmt.Errorf("alerts.webhook_url: %w", err)
		}
		cfg.Alerts.WebhookToken = expandEnvVar(cfg.Alerts.WebhookToken)
	}

	return nil
}

func validateServer(s *ServerConfig) error {
	if s.Host == "" {
		return errors.New("host is required")
	}
	if s.Username == "" {
		return errors.New("username is required")
	}
	if s.Port == 0 {
		s.Port = DefaultSSHPort
	}
	if s.PrivateKeyPath == "" && s.Password == "" {
		return errors.New("either private_key_path or password is required")
	}
	return nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must have a host")
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}
