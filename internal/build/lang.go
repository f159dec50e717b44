package build

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/hashview/internal/errors"
)

// Lang maps translation keys to values.
type Lang map[string]string

// LoadLang reads a lang file and the files it includes. Later keys win.
func LoadLang(path string) (Lang, []string, error) {
	l := Lang{}
	var files []string
	if err := l.load(path, map[string]bool{}, &files); err != nil {
		return nil, nil, err
	}
	return l, files, nil
}

func (l Lang) load(path string, active map[string]bool, files *[]string) error {
	if active[path] {
		return nil
	}
	active[path] = true
	defer delete(active, path)

	f, err := os.Open(path)
	if err != nil {
		return errors.New("H104").WithDetail("cannot open " + path).Wrap(err)
	}
	defer f.Close()
	*files = append(*files, path)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if arg, ok := keyword(line, "!include"); ok {
			if err := l.load(relTo(filepath.Dir(path), arg), active, files); err != nil {
				return err
			}
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		l[key] = value
	}
	if err := scanner.Err(); err != nil {
		return errors.New("H104").WithDetail("cannot read " + path).Wrap(err)
	}
	return nil
}

// Translate replaces every {{key}} in s. Unknown keys are replaced by the
// key itself. An unterminated or malformed placeholder is kept verbatim.
func (l Lang) Translate(s string) string {
	if len(l) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, "{{")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		rest := s[start+2:]
		end := strings.IndexByte(rest, '}')
		if end < 0 || end+1 >= len(rest) || rest[end+1] != '}' {
			// no closing "}}" right after the name
			if end < 0 {
				b.WriteString(s[start:])
				return b.String()
			}
			b.WriteString(s[start : start+2+end+1])
			s = rest[end+1:]
			continue
		}
		key := rest[:end]
		if v, ok := l[key]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(key)
		}
		s = rest[end+2:]
	}
}
