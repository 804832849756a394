package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/requester"
)

// useTempSettings points the user settings at a temporary directory.
func useTempSettings(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	original := UserShhhSettings
	UserShhhSettings = &UserSettings{
		UserConfigsPath: filepath.Join(tempDir, "config"),
		UserDataPath:    filepath.Join(tempDir, "data"),
	}
	t.Cleanup(func() {
		UserShhhSettings = original
	})
	t.Setenv("SHHH_HOST", "")
	t.Setenv("SHHH_RETRIES", "")
	return tempDir
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	useTempSettings(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Server.URL != DefaultServerURL {
		t.Errorf("Expected default URL, got %q", config.Server.URL)
	}
	if config.Server.Retries != requester.DefaultRetries {
		t.Errorf("Expected %d retries, got %d", requester.DefaultRetries, config.Server.Retries)
	}
	if config.Secrets.Days != DefaultDays || config.Secrets.Tries != DefaultTries {
		t.Errorf("Unexpected secret defaults: %+v", config.Secrets)
	}
	if ConfigExists() {
		t.Error("LoadConfig must not create the file")
	}
}

func TestDefaultPolicyMatchesRequester(t *testing.T) {
	if got, want := Default().Policy(), requester.DefaultPolicy(); got != want {
		t.Errorf("Default().Policy() = %+v, want %+v", got, want)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	useTempSettings(t)

	config := Default()
	config.Server.URL = "https://shhh.example.com"
	config.Server.Retries = 4
	config.Server.BackoffMs = 300
	config.Secrets.Days = 7

	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if !ConfigExists() {
		t.Fatal("Expected config file to exist")
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Server.URL != "https://shhh.example.com" {
		t.Errorf("Expected saved URL, got %q", loaded.Server.URL)
	}
	policy := loaded.Policy()
	if policy.RetriesRemaining != 4 || policy.Backoff != 300*time.Millisecond {
		t.Errorf("Unexpected policy: %+v", policy)
	}
	if loaded.Secrets.Days != 7 {
		t.Errorf("Expected 7 days, got %d", loaded.Secrets.Days)
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	useTempSettings(t)
	t.Setenv("SHHH_HOST", "https://env.example.com")
	t.Setenv("SHHH_RETRIES", "2")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Server.URL != "https://env.example.com" {
		t.Errorf("Expected env URL, got %q", config.Server.URL)
	}
	if config.Server.Retries != 2 {
		t.Errorf("Expected 2 retries, got %d", config.Server.Retries)
	}
}

func TestLoadConfigRejectsBadRetriesEnv(t *testing.T) {
	useTempSettings(t)
	t.Setenv("SHHH_RETRIES", "many")

	if _, err := LoadConfig(); !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	useTempSettings(t)

	tests := []struct {
		name    string
		content string
	}{
		{"broken syntax", "[server\nurl = "},
		{"unknown key", "[server]\nurl = \"http://a.b\"\nport = 3\n"},
		{"out of range days", "[secrets]\ndays = 30\n"},
		{"relative url", "[server]\nurl = \"/api\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.MkdirAll(filepath.Dir(ConfigPath()), 0700); err != nil {
				t.Fatalf("Failed to create config dir: %v", err)
			}
			if err := os.WriteFile(ConfigPath(), []byte(tt.content), 0600); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			if _, err := LoadConfig(); !errors.Is(err, kerrors.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero retries allowed", func(c *Config) { c.Server.Retries = 0 }, true},
		{"negative retries", func(c *Config) { c.Server.Retries = -1 }, false},
		{"zero backoff", func(c *Config) { c.Server.BackoffMs = 0 }, false},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSeconds = 0 }, false},
		{"too few tries", func(c *Config) { c.Secrets.Tries = 2 }, false},
		{"too many tries", func(c *Config) { c.Secrets.Tries = 11 }, false},
		{"zero days", func(c *Config) { c.Secrets.Days = 0 }, false},
		{"empty url", func(c *Config) { c.Server.URL = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modify(config)
			err := config.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid config, got %v", err)
			}
			if !tt.valid && !errors.Is(err, kerrors.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	config := Default()
	config.Server.TimeoutSeconds = 12
	if got := config.Timeout(); got != 12*time.Second {
		t.Errorf("Expected 12s, got %s", got)
	}
}
