package build

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/vango-dev/hashview/internal/errors"
)

// Module file extensions in probe order, with the section each one feeds.
var moduleExts = []struct {
	ext     string
	section section
}{
	{".html", sectionTemplates},
	{".htm", sectionTemplates},
	{".css", sectionStyles},
	{".js", sectionScripts},
	{".hdr", sectionHeaders},
}

type section int

const (
	sectionTemplates section = iota
	sectionStyles
	sectionScripts
	sectionHeaders
)

// Page is a parsed page file.
type Page struct {
	// RootDir holds the outputs; links are relative to it.
	RootDir string

	// Output names, relative to RootDir.
	HTMLName string
	CSSName  string
	JSName   string

	Charset    string
	EntryPoint string

	// Source files per section, in inclusion order.
	Templates []string
	Styles    []string
	Scripts   []string
	Headers   []string

	// Inputs lists the page files and lang files that were read.
	Inputs []string

	lang     Lang
	included map[string]bool
	active   map[string]bool
}

// ParsePage reads the page file at path. lang may be nil.
func ParsePage(ctx context.Context, path string, lang Lang) (*Page, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.New("H100").Wrap(err)
	}
	base := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	p := &Page{
		RootDir:  filepath.Dir(abs),
		HTMLName: base + ".html",
		CSSName:  base + ".css",
		JSName:   base + ".js",
		lang:     lang,
		included: map[string]bool{},
		active:   map[string]bool{},
	}
	if err := p.parseFile(ctx, abs); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Page) list(s section) *[]string {
	switch s {
	case sectionStyles:
		return &p.Styles
	case sectionScripts:
		return &p.Scripts
	case sectionHeaders:
		return &p.Headers
	}
	return &p.Templates
}

// Sources returns every module file in section order.
func (p *Page) Sources() []string {
	out := make([]string, 0, len(p.Templates)+len(p.Styles)+len(p.Scripts)+len(p.Headers))
	out = append(out, p.Templates...)
	out = append(out, p.Styles...)
	out = append(out, p.Scripts...)
	return append(out, p.Headers...)
}

func (p *Page) parseFile(ctx context.Context, path string) error {
	if p.active[path] {
		return nil
	}
	p.active[path] = true
	defer delete(p.active, path)

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("H100").WithDetail("cannot open " + path).Wrap(err)
	}
	p.Inputs = append(p.Inputs, path)

	dir := filepath.Dir(path)
	scanner := bufio.NewScanner(strings.NewReader(p.lang.Translate(string(data))))
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if line[0] == '!' {
			if err := p.directive(ctx, path, dir, lineNo, line); err != nil {
				return err
			}
			continue
		}
		if err := p.module(path, lineNo, relTo(dir, line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (p *Page) directive(ctx context.Context, file, dir string, lineNo int, line string) error {
	name, arg := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, arg = line[:i], strings.TrimSpace(line[i:])
	}
	if arg == "" {
		return errors.New("H102").
			WithLocation(file, lineNo, 1).
			WithDetail(name + " needs an argument")
	}
	switch name {
	case "!include":
		return p.parseFile(ctx, relTo(dir, arg))
	case "!html":
		p.HTMLName = arg
	case "!css":
		p.CSSName = arg
	case "!js":
		p.JSName = arg
	case "!dir":
		p.RootDir = relTo(p.RootDir, arg)
	case "!charset":
		p.Charset = arg
	case "!entry_point":
		p.EntryPoint = arg
	default:
		return errors.New("H102").
			WithLocation(file, lineNo, 1).
			WithDetail("unknown directive " + name)
	}
	return nil
}

func (p *Page) module(file string, lineNo int, base string) error {
	found := false
	for _, m := range moduleExts {
		name := base + m.ext
		if !isFile(name) {
			continue
		}
		found = true
		if err := p.walk(m.section, name); err != nil {
			return err
		}
	}
	if !found {
		return errors.New("H101").
			WithLocation(file, lineNo, 1).
			WithDetail("no file found for module " + base).
			WithSuggestion("Create " + filepath.Base(base) + ".html, .css, .js or .hdr, or fix the path")
	}
	return nil
}

// walk adds name to the section after the files it requires. Each file is
// added at most once, which also breaks require cycles.
func (p *Page) walk(s section, name string) error {
	if p.included[name] {
		return nil
	}
	p.included[name] = true

	f, err := os.Open(name)
	if err != nil {
		return errors.New("H100").WithDetail("cannot open " + name).Wrap(err)
	}
	var required []requirement
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if req, ok := requireTarget(strings.TrimSpace(scanner.Text())); ok {
			required = append(required, requirement{relTo(filepath.Dir(name), req), lineNo})
		}
	}
	err = scanner.Err()
	f.Close()
	if err != nil {
		return errors.New("H100").WithDetail("cannot read " + name).Wrap(err)
	}

	for _, r := range required {
		if !isFile(r.path) {
			return errors.New("H105").
				WithLocation(name, r.line, 1).
				WithDetail("required file " + r.path + " does not exist")
		}
		if err := p.walk(s, r.path); err != nil {
			return err
		}
	}

	list := p.list(s)
	*list = append(*list, name)
	return nil
}

type requirement struct {
	path string
	line int
}

// requireTarget extracts the path of a require comment in JS, CSS or HTML
// form.
func requireTarget(line string) (string, bool) {
	if arg, ok := keyword(line, "//!require"); ok {
		return arg, true
	}
	if arg, ok := keyword(line, "/*!require"); ok {
		arg = strings.TrimSpace(strings.TrimSuffix(arg, "*/"))
		return arg, arg != ""
	}
	if arg, ok := keyword(line, "<!--!require"); ok {
		arg = strings.TrimSpace(strings.TrimSuffix(arg, "-->"))
		return arg, arg != ""
	}
	return "", false
}

// keyword reports whether line starts with kw followed by whitespace and
// returns the trimmed remainder.
func keyword(line, kw string) (string, bool) {
	if !strings.HasPrefix(line, kw) || len(line) == len(kw) {
		return "", false
	}
	rest := line[len(kw):]
	if !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func relTo(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, filepath.FromSlash(path))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
