package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muurk/fritz-profiles/internal/fritzbox"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvURL, EnvUser, EnvPassword, EnvTimeout} {
		t.Setenv(key, "")
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	if !strings.Contains(configPath, "fritz-profiles") {
		t.Errorf("GetConfigPath() = %v, should contain 'fritz-profiles'", configPath)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != CurrentVersion {
		t.Errorf("Default().Version = %v, want %v", cfg.Version, CurrentVersion)
	}
	if cfg.Router.URL != "http://fritz.box" {
		t.Errorf("Default().Router.URL = %v, want http://fritz.box", cfg.Router.URL)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("Default().RequestTimeout() = %v, want 10s", cfg.RequestTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Router.URL != fritzbox.DefaultURL {
		t.Errorf("Router.URL = %v, want %v", cfg.Router.URL, fritzbox.DefaultURL)
	}
	if cfg.Presets == nil {
		t.Error("Presets should be initialized")
	}
}

func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `version: 1
router:
  url: http://192.168.178.1
  username: parent
  timeout: 5
presets:
  bedtime:
    description: lights out
    assignments:
      - device: landevice1
        profile: filtprof3
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv(EnvUser, "admin")
	t.Setenv(EnvPassword, "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Router.URL != "http://192.168.178.1" {
		t.Errorf("Router.URL = %v, want file value", cfg.Router.URL)
	}
	if cfg.Router.Username != "admin" {
		t.Errorf("Router.Username = %v, want env override 'admin'", cfg.Router.Username)
	}
	if cfg.Password != "secret" {
		t.Errorf("Password = %v, want env value", cfg.Password)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("RequestTimeout() = %v, want 5s", cfg.RequestTimeout())
	}

	preset, err := cfg.Preset("bedtime")
	if err != nil {
		t.Fatalf("Preset() error = %v", err)
	}
	want := fritzbox.Assignment{DeviceKey: "landevice1", ProfileKey: "filtprof3"}
	if len(preset.Assignments) != 1 || preset.Assignments[0] != want {
		t.Errorf("Preset assignments = %+v, want [%+v]", preset.Assignments, want)
	}
}

func TestLoad_InvalidTimeoutEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTimeout, "soon")

	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("Load() should fail for a non-numeric FRITZ_TIMEOUT")
	}
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 2\n"), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "unsupported config version") {
		t.Errorf("Validate() error = %v, want unsupported version error", err)
	}
}

func TestLoad_DoesNotValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvURL, "fritz.box")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, later overrides must get a chance to fix the URL", err)
	}
	if cfg.Router.URL != "fritz.box" {
		t.Errorf("Router.URL = %v, want env value", cfg.Router.URL)
	}
	if cfg.Validate() == nil {
		t.Error("Validate() should reject a URL without scheme")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"bad scheme", func(c *Config) { c.Router.URL = "ftp://fritz.box" }, true},
		{"no host", func(c *Config) { c.Router.URL = "http://" }, true},
		{"zero timeout", func(c *Config) { c.Router.Timeout = 0 }, true},
		{"empty preset", func(c *Config) { c.SetPreset("empty", "", nil) }, true},
		{"preset missing profile", func(c *Config) {
			c.SetPreset("half", "", []fritzbox.Assignment{{DeviceKey: "dev"}})
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Example()
	cfg.Password = "must-not-be-saved"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	if strings.Contains(string(data), "must-not-be-saved") {
		t.Error("Saved config must not contain the password")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file should be renamed away")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.PresetNames(); len(got) != 1 || got[0] != "bedtime" {
		t.Errorf("PresetNames() = %v, want [bedtime]", got)
	}
	if len(loaded.Presets["bedtime"].Assignments) != 2 {
		t.Errorf("bedtime assignments = %d, want 2", len(loaded.Presets["bedtime"].Assignments))
	}
}

func TestPresetUnknown(t *testing.T) {
	cfg := Example()
	if _, err := cfg.Preset("weekend"); err == nil {
		t.Error("Preset() should fail for an unknown preset")
	}
}
