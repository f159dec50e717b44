package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/hashview/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func errorCode(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if cfg.Page.File != DefaultPage {
		t.Errorf("Page.File = %q, want %q", cfg.Page.File, DefaultPage)
	}
	if !cfg.Dev.HotReload {
		t.Error("HotReload should default to true")
	}
	if cfg.Publish.Region != DefaultRegion {
		t.Errorf("Publish.Region = %q, want %q", cfg.Publish.Region, DefaultRegion)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if code := errorCode(err); code != "H141" {
		t.Errorf("missing config: code = %q, want H141", code)
	}

	writeConfig(t, tmpDir, `{
  "name": "shop",
  "page": {"file": "src/shop.page", "lang": "lang/en.lang", "collapse": true},
  "dev": {"port": 8080, "debounce": "250ms"},
  "publish": {"bucket": "shop-www", "prefix": "v2/"},
  "log": {"level": "debug"}
}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "shop" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Dev.Port != 8080 {
		t.Errorf("Dev.Port = %d, want 8080", cfg.Dev.Port)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want default %q", cfg.Dev.Host, DefaultHost)
	}
	if !cfg.Page.Collapse {
		t.Error("Page.Collapse should be true")
	}
	if got, want := cfg.PagePath(), filepath.Join(tmpDir, "src", "shop.page"); got != want {
		t.Errorf("PagePath() = %q, want %q", got, want)
	}
	if got, want := cfg.LangPath(), filepath.Join(tmpDir, "lang", "en.lang"); got != want {
		t.Errorf("LangPath() = %q, want %q", got, want)
	}
	if cfg.DebounceDuration() != 250*time.Millisecond {
		t.Errorf("DebounceDuration() = %v", cfg.DebounceDuration())
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
	if cfg.Publish.Region != DefaultRegion {
		t.Errorf("Publish.Region = %q", cfg.Publish.Region)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"page": `)

	_, err := Load(tmpDir)
	if code := errorCode(err); code != "H120" {
		t.Errorf("code = %q, want H120", code)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"port too large", func(c *Config) { c.Dev.Port = 70000 }, false},
		{"negative port", func(c *Config) { c.Dev.Port = -1 }, false},
		{"bad debounce", func(c *Config) { c.Dev.Debounce = "soon" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"warning level", func(c *Config) { c.Log.Level = "WARNING" }, true},
		{"bad ignore", func(c *Config) { c.Dev.Ignore = []string{"["} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && errorCode(err) != "H121" {
				t.Errorf("Validate() = %v, want H121", err)
			}
		})
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"dev": {"port": 99999}}`)
	if _, err := Load(tmpDir); errorCode(err) != "H121" {
		t.Errorf("Load() = %v, want H121", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := New()
	if err := cfg.Save(); err == nil {
		t.Error("Save without path should fail")
	}

	cfg.Name = "saved"
	cfg.Publish.Bucket = "b"
	path := filepath.Join(tmpDir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Name != "saved" || loaded.Publish.Bucket != "b" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "src", "widgets")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
}

func TestDevAddress(t *testing.T) {
	cfg := New()
	cfg.Dev.Host = "0.0.0.0"
	cfg.Dev.Port = 8080
	if cfg.DevAddress() != "0.0.0.0:8080" {
		t.Errorf("DevAddress() = %q", cfg.DevAddress())
	}
	if cfg.DevURL() != "http://0.0.0.0:8080" {
		t.Errorf("DevURL() = %q", cfg.DevURL())
	}
}

func TestWatchPaths(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"dev": {"watch": ["src", "/abs"]}}`)
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	paths := cfg.WatchPaths()
	if len(paths) != 2 || paths[0] != filepath.Join(tmpDir, "src") || paths[1] != "/abs" {
		t.Errorf("WatchPaths() = %v", paths)
	}
	if cfg.DepFilePath() != "" {
		t.Errorf("DepFilePath() = %q, want empty", cfg.DepFilePath())
	}
}
