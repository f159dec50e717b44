package templates

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hashview/internal/build"
	"github.com/vango-dev/hashview/internal/config"
	"github.com/vango-dev/hashview/internal/errors"
)

func errorCode(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"lang", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if code := errorCode(err); code != "H180" {
					t.Errorf("code = %q, want H180", code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
		})
	}
}

func TestList(t *testing.T) {
	names := List()
	if strings.Join(names, ",") != "lang,minimal" {
		t.Errorf("List() = %v", names)
	}
}

// Every template must produce a project that loads and builds.
func TestCreate_Builds(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "shop")
			tmpl, _ := Get(name)

			files, err := tmpl.Create(dir, Config{Title: "Shop"})
			if err != nil {
				t.Fatalf("Create error: %v", err)
			}
			if len(files) != len(tmpl.Files) {
				t.Errorf("wrote %d files, want %d", len(files), len(tmpl.Files))
			}

			cfg, err := config.Load(dir)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if cfg.Name != "shop" {
				t.Errorf("Name = %q, want the directory name", cfg.Name)
			}

			result, err := build.New(cfg, build.Options{}).Build(context.Background())
			if err != nil {
				t.Fatalf("Build error: %v", err)
			}
			html, err := os.ReadFile(result.HTML)
			if err != nil {
				t.Fatal(err)
			}
			page := string(html)
			if !strings.Contains(page, "<h1>Shop</h1>") {
				t.Errorf("page misses the title:\n%s", page)
			}
			if strings.Index(page, "util.js") > strings.Index(page, "main.js") {
				t.Errorf("util.js should be linked before main.js:\n%s", page)
			}
			if !strings.Contains(page, `onload="main()"`) {
				t.Errorf("page misses the entry point:\n%s", page)
			}
		})
	}
}

func TestCreate_ExistingProject(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	tmpl, _ := Get("minimal")
	if _, err := tmpl.Create(dir, Config{}); errorCode(err) != "H181" {
		t.Errorf("err = %v, want H181", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "app.page")); !os.IsNotExist(err) {
		t.Error("Create should not write into an existing project")
	}
}
