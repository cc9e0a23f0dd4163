// Package config provides configuration loading, saving and validation for
// Fend Sentry.
package config

// Source types for log retrieval.
const (
	SourceLocal  = "local"
	SourceSSH    = "ssh"
	SourceDocker = "docker"
)

// Config is the root configuration structure stored as YAML.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	App        AppConfig        `yaml:"app"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Alerts     AlertsConfig     `yaml:"alerts,omitempty"`
}

// ServerConfig describes the remote host for SSH log retrieval.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	PrivateKeyPath string `yaml:"private_key_path,omitempty"`
	Password       string `yaml:"password,omitempty"`
}

// AppConfig describes the monitored application and where its logs live.
type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`

	// Source selects the retrieval mechanism: local, ssh, or docker.
	Source string `yaml:"source"`

	// LogPath is the log file path (local and ssh sources). Globs are
	// allowed for local sources.
	LogPath string `yaml:"log_path,omitempty"`

	// Container is the container name or id (docker source).
	Container string `yaml:"container,omitempty"`
}

// MonitoringConfig bounds how much log data a check examines.
type MonitoringConfig struct {
	// CheckIntervalSeconds is the suggested period between checks for
	// callers that schedule them.
	CheckIntervalSeconds int `yaml:"check_interval"`

	// MaxLogLines caps the trailing lines retrieved per check.
	MaxLogLines int `yaml:"max_log_lines"`

	// HistoryPath is the SQLite file recording check runs. Empty disables
	// history.
	HistoryPath string `yaml:"history_path,omitempty"`
}

// AlertsConfig configures outbound notification of check results.
type AlertsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Email        string `yaml:"email,omitempty"`
	WebhookURL   string `yaml:"webhook_url,omitempty"`
	WebhookToken string `yaml:"webhook_token,omitempty"`
}
