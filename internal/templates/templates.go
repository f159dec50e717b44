package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/hashview/internal/config"
	"github.com/vango-dev/hashview/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Title is the page title. Defaults to ProjectName.
	Title string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of slash-separated relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"lang":    langTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("H180").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: " + strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template into dir and returns the files written, in
// sorted order. It refuses to overwrite an existing project.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	if config.Exists(dir) {
		return nil, errors.New("H181").WithDetail(filepath.Join(dir, config.ConfigFileName) + " exists")
	}
	if cfg.ProjectName == "" {
		cfg.ProjectName = filepath.Base(dir)
	}
	if cfg.Title == "" {
		cfg.Title = cfg.ProjectName
	}

	paths := make([]string, 0, len(t.Files))
	for relPath := range t.Files {
		paths = append(paths, relPath)
	}
	sort.Strings(paths)

	written := make([]string, 0, len(paths))
	for _, relPath := range paths {
		tmpl, err := template.New(relPath).Delims("[[", "]]").Parse(t.Files[relPath])
		if err != nil {
			return written, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return written, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return written, errors.New("H182").WithDetail(fullPath).Wrap(err)
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return written, errors.New("H182").WithDetail(fullPath).Wrap(err)
		}
		written = append(written, fullPath)
	}
	return written, nil
}

const mainCSS = `body {
	font-family: system-ui, sans-serif;
	max-width: 800px;
	margin: 0 auto;
	padding: 2rem;
}

.mark {
	background: #fef3c7;
}
`

// main.js requires util.js, so the bundler links util.js first.
const mainJS = `//!require util.js

function main() {
	window.addEventListener("hashchange", show);
	show();
}

function show() {
	var page = document.getElementById("page");
	page.textContent = routeName(location.hash) || "home";
}
`

const utilJS = `function routeName(hash) {
	if (hash.length < 2) {
		return "";
	}
	try {
		return JSON.parse(atob(hash.slice(1)))[0];
	} catch (e) {
		return "";
	}
}
`

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A page with one module",
		Files: map[string]string{
			"hashview.json": `{
  "name": "[[.ProjectName]]",
  "page": {
    "file": "app.page"
  }
}
`,
			"app.page": `# [[.ProjectName]]
!charset utf-8
!entry_point main()

main
`,
			"main.html": `<template id="item" data-tag="li"><span data-name="name"></span></template>
<h1>[[.Title]]</h1>
<div id="page"></div>
`,
			"main.css": mainCSS,
			"main.js":  mainJS,
			"util.js":  utilJS,
		},
	}
}

func langTemplate() *Template {
	return &Template{
		Name:        "lang",
		Description: "A page with its text in a lang file",
		Files: map[string]string{
			"hashview.json": `{
  "name": "[[.ProjectName]]",
  "page": {
    "file": "app.page",
    "lang": "lang/en.lang"
  }
}
`,
			"app.page": `# {{title}}
!charset utf-8
!entry_point main()

main
`,
			"lang/en.lang": `# English
title=[[.Title]]
empty=Nothing here yet
`,
			"main.html": `<h1>{{title}}</h1>
<div id="page">{{empty}}</div>
`,
			"main.css": mainCSS,
			"main.js":  mainJS,
			"util.js":  utilJS,
		},
	}
}
