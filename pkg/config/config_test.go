package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_LocalSource(t *testing.T) {
	path := writeConfig(t, `
app:
  name: shop
  environment: staging
  source: local
  log_path: /var/log/shop/app.log
monitoring:
  max_log_lines: 500
`)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "shop" {
		t.Errorf("App.Name = %q, want shop", cfg.App.Name)
	}
	if cfg.App.Source != SourceLocal {
		t.Errorf("App.Source = %q, want local", cfg.App.Source)
	}
	if cfg.Monitoring.MaxLogLines != 500 {
		t.Errorf("MaxLogLines = %d, want 500", cfg.Monitoring.MaxLogLines)
	}
	// Unset fields fall back to defaults.
	if cfg.Monitoring.CheckIntervalSeconds != DefaultCheckInterval {
		t.Errorf("CheckIntervalSeconds = %d, want default %d",
			cfg.Monitoring.CheckIntervalSeconds, DefaultCheckInterval)
	}
}

func TestLoad_SSHSourceRequiresServer(t *testing.T) {
	path := writeConfig(t, `
server:
  host: ""
  username: deploy
  password: hunter2
app:
  name: shop
  source: ssh
  log_path: /var/log/shop/app.log
`)

	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load() expected error for missing ssh host")
	}
}

func TestLoad_DockerSourceRequiresContainer(t *testing.T) {
	path := writeConfig(t, `
app:
  name: shop
  source: docker
`)

	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load() expected error for missing container")
	}
}

func TestLoad_InvalidSource(t *testing.T) {
	path := writeConfig(t, `
app:
  name: shop
  source: carrier-pigeon
  log_path: /var/log/app.log
`)

	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load() expected error for invalid source")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "app: [unclosed")
	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load() expected error for malformed yaml")
	}
}

func TestValidate_WebhookURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https url", "https://hooks.example.com/T123", false},
		{"http url", "http://hooks.internal/alert", false},
		{"bad scheme", "ftp://hooks.example.com", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.App.Source = SourceLocal
			cfg.App.LogPath = "/var/log/app.log"
			cfg.Alerts.WebhookURL = tt.url

			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ExpandsWebhookToken(t *testing.T) {
	t.Setenv("FS_TEST_TOKEN", "s3cret")

	cfg := DefaultConfig()
	cfg.App.Source = SourceLocal
	cfg.App.LogPath = "/var/log/app.log"
	cfg.Alerts.WebhookURL = "https://hooks.example.com/x"
	cfg.Alerts.WebhookToken = "${FS_TEST_TOKEN}"

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Alerts.WebhookToken != "s3cret" {
		t.Errorf("WebhookToken = %q, want expanded value", cfg.Alerts.WebhookToken)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.App.Name = "shop"
	cfg.App.Source = SourceLocal
	cfg.App.LogPath = "/var/log/shop/app.log"
	cfg.Monitoring.HistoryPath = "/tmp/history.db"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}

	loaded, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.App.Name != "shop" || loaded.Monitoring.HistoryPath != "/tmp/history.db" {
		t.Errorf("round trip lost fields: %+v", loaded.App)
	}
}
