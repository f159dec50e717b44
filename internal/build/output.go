package build

import (
	"bytes"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/hashview/internal/errors"
)

// Render writes the HTML document for p.
func (p *Page) Render() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html><html><head>\n")
	for _, s := range p.Styles {
		b.WriteString(`<link href="` + html.EscapeString(p.Link(s)) + `" rel="stylesheet" type="text/css" />` + "\n")
	}
	for _, h := range p.Headers {
		if err := p.inline(&b, h); err != nil {
			return nil, err
		}
		b.WriteByte('\n')
	}
	if p.Charset != "" {
		b.WriteString(`<meta charset="` + html.EscapeString(p.Charset) + `" />` + "\n")
	}
	b.WriteString("</head>\n")

	if p.EntryPoint == "" {
		b.WriteString("<body>\n")
	} else {
		b.WriteString(`<body onload="` + html.EscapeString(p.EntryPoint) + `">` + "\n")
	}
	for _, t := range p.Templates {
		if err := p.inline(&b, t); err != nil {
			return nil, err
		}
		b.WriteByte('\n')
	}
	for _, s := range p.Scripts {
		b.WriteString(`<script src="` + html.EscapeString(p.Link(s)) + `" type="text/javascript"></script>` + "\n")
	}
	b.WriteString("</body></html>\n")
	return b.Bytes(), nil
}

// inline appends the translated content of name.
func (p *Page) inline(b *bytes.Buffer, name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return errors.New("H100").WithDetail("cannot open " + name).Wrap(err)
	}
	b.WriteString(p.lang.Translate(string(data)))
	return nil
}

// Link returns the URL of a source file relative to the root directory.
func (p *Page) Link(path string) string {
	rel, err := filepath.Rel(p.RootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Output paths.
func (p *Page) HTMLPath() string { return relTo(p.RootDir, p.HTMLName) }
func (p *Page) CSSPath() string  { return relTo(p.RootDir, p.CSSName) }
func (p *Page) JSPath() string   { return relTo(p.RootDir, p.JSName) }

// Collapse concatenates styles into CSSPath and scripts into JSPath and
// replaces each list with the single output. Empty lists are left alone.
// It returns the files written.
func (p *Page) Collapse() ([]string, error) {
	var written []string
	for _, c := range []struct {
		list *[]string
		out  string
	}{
		{&p.Styles, p.CSSPath()},
		{&p.Scripts, p.JSPath()},
	} {
		if len(*c.list) == 0 {
			continue
		}
		var b bytes.Buffer
		for _, src := range *c.list {
			if err := p.inline(&b, src); err != nil {
				return written, err
			}
		}
		b.WriteByte('\n')
		if err := writeFile(c.out, b.Bytes()); err != nil {
			return written, err
		}
		*c.list = []string{c.out}
		written = append(written, c.out)
	}
	return written, nil
}

// DepFile returns a make rule listing what target depends on. Styles and
// scripts are only listed when collapsed, since otherwise they are linked
// rather than copied into the output.
func (p *Page) DepFile(target, depfile string, collapsed bool) []byte {
	if target == "" {
		target = p.HTMLPath()
	}
	lists := [][]string{p.Inputs, p.Templates, p.Headers}
	if collapsed {
		lists = [][]string{p.Inputs, p.Templates, p.Styles, p.Scripts, p.Headers}
	}
	var b strings.Builder
	b.WriteString(target)
	if depfile != "" {
		b.WriteString(" " + depfile)
	}
	b.WriteString(" :")
	for _, list := range lists {
		for _, f := range list {
			b.WriteString("\\\n" + f)
		}
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("H103").WithDetail("cannot create " + filepath.Dir(path)).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("H103").WithDetail("cannot write " + path).Wrap(err)
	}
	return nil
}
