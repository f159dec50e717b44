package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hashview/internal/errors"
	"github.com/vango-dev/hashview/pkg/router"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func errorCode(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"hashview.json": `{"name": "shop", "page": {"file": "app.page"}}`,
		"app.page":      "main\n",
		"main.html":     `<template id="list"></template>`,
		"main.css":      "body{}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRouteEncodeDecode(t *testing.T) {
	out, err := run(t, "route", "encode", "showItem", "42", "red shoes", `{"page":2}`)
	if err != nil {
		t.Fatal(err)
	}
	token := strings.TrimSpace(out)

	want, _ := router.Encode("showItem", float64(42), "red shoes", map[string]any{"page": float64(2)})
	if token != want {
		t.Errorf("token = %q, want %q", token, want)
	}

	out, err = run(t, "route", "decode", "#"+token)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != `{"args":[42,"red shoes",{"page":2}],"name":"showItem"}` {
		t.Errorf("decode = %s", got)
	}
}

func TestRouteEncode_Link(t *testing.T) {
	out, err := run(t, "route", "encode", "--link", "home")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "#") {
		t.Errorf("out = %q, want a fragment", out)
	}
}

func TestRouteDecode_Invalid(t *testing.T) {
	_, err := run(t, "route", "decode", "not base64!")
	if code := errorCode(err); code != "H001" {
		t.Errorf("code = %q, want H001", code)
	}
}

func TestBuildCommand(t *testing.T) {
	dir := writeProject(t)

	out, err := run(t, "build", "--config", filepath.Join(dir, "hashview.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Built in") || !strings.Contains(out, "app.html") {
		t.Errorf("output = %q", out)
	}
	html, err := os.ReadFile(filepath.Join(dir, "app.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), `<template id="list">`) {
		t.Errorf("page = %s", html)
	}
}

func TestBuildCommand_NoConfig(t *testing.T) {
	_, err := run(t, "build", "--config", filepath.Join(t.TempDir(), "hashview.json"))
	if code := errorCode(err); code != "H141" {
		t.Errorf("code = %q, want H141", code)
	}
}

func TestDepsCommand(t *testing.T) {
	dir := writeProject(t)

	out, err := run(t, "deps", "--config", filepath.Join(dir, "hashview.json"), "--target", "dist/app.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "dist/app.html :") {
		t.Errorf("rule = %q", out)
	}
	if !strings.Contains(out, filepath.Join(dir, "main.html")) {
		t.Errorf("rule misses main.html: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "app.html")); !os.IsNotExist(err) {
		t.Error("deps wrote the page")
	}
}

func TestPublishCommand_NoBucket(t *testing.T) {
	dir := writeProject(t)

	_, err := run(t, "publish", "--config", filepath.Join(dir, "hashview.json"))
	if code := errorCode(err); code != "H161" {
		t.Errorf("code = %q, want H161", code)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 << 20, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shop")

	out, err := run(t, "init", dir, "--template", "lang", "--title", "My Shop")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Created lang project") {
		t.Errorf("output = %q", out)
	}
	if _, err := run(t, "build", "--config", filepath.Join(dir, "hashview.json")); err != nil {
		t.Fatalf("build of the new project: %v", err)
	}

	if _, err := run(t, "init", dir); errorCode(err) != "H181" {
		t.Errorf("second init err = %v, want H181", err)
	}
	if _, err := run(t, "init", t.TempDir(), "--template", "nope"); errorCode(err) != "H180" {
		t.Errorf("unknown template err = %v, want H180", err)
	}
}
