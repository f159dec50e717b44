package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hashview/pkg/dom"
	"github.com/vango-dev/hashview/pkg/router"
	"github.com/vango-dev/hashview/pkg/template"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "route error",
			code:    "H001",
			wantMsg: "Route token decode failed",
			wantCat: CategoryRoute,
		},
		{
			name:    "build error",
			code:    "H101",
			wantMsg: "Module not found",
			wantCat: CategoryBuild,
		},
		{
			name:    "config error",
			code:    "H141",
			wantMsg: "Not a hashview project",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "H999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown flag %q", "--x")
	if err.Message != `unknown flag "--x"` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestError_Error(t *testing.T) {
	if got, want := New("H002").Error(), "H002: Handler not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err := &Error{Message: "plain"}
	if err.Error() != "plain" {
		t.Errorf("Error() = %q, want %q", err.Error(), "plain")
	}

	wrapped := New("H103").Wrap(fmt.Errorf("disk full"))
	if got, want := wrapped.Error(), "H103: Cannot write output: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_WithLocation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "app.page")
	content := "!charset utf-8\n!css main.css\n\nwidgets/list\nmain\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("H101").WithLocation(tmpFile, 4, 1)
	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.Line != 4 || err.Location.Column != 1 {
		t.Errorf("Location = %v", err.Location)
	}
	if len(err.Context) != 4 {
		t.Fatalf("Context = %q, want 4 lines", err.Context)
	}
	if err.Context[2] != "widgets/list" {
		t.Errorf("Context[2] = %q, want the located line", err.Context[2])
	}
}

func TestError_Wrap(t *testing.T) {
	inner := New("H100")
	outer := New("H101").Wrap(inner)
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "H100") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New("H101")
	if FromError(fmt.Errorf("ctx: %w", e), "H100") != e {
		t.Error("FromError should return an *Error in the chain as is")
	}

	std := fmt.Errorf("boom")
	result := FromError(std, "H100")
	if result.Wrapped != std || result.Code != "H100" {
		t.Errorf("FromError = %+v", result)
	}
}

func TestClassify(t *testing.T) {
	_, decodeErr := router.Decode("%%%")
	if decodeErr == nil {
		t.Fatal("expected decode error")
	}
	doc := dom.NewDocument()
	_, tmplErr := template.Load(doc, "missing", "")

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"decode", decodeErr, "H001"},
		{"handler", &router.HandlerNotFoundError{Route: router.Route{Name: "x"}}, "H002"},
		{"template", tmplErr, "H010"},
		{"coded", New("H160"), "H160"},
		{"other", fmt.Errorf("other"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Code != tt.code {
				t.Errorf("Code = %q, want %q", got.Code, tt.code)
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) should return nil")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{"nil location", nil, ""},
		{"with column", &Location{File: "a.page", Line: 10, Column: 5}, "a.page:10:5"},
		{"without column", &Location{File: "a.page", Line: 10}, "a.page:10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpFile := filepath.Join(t.TempDir(), "app.page")
	if err := os.WriteFile(tmpFile, []byte("a\nb\n!bogus x\nc\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("H102").
		WithLocation(tmpFile, 3, 1).
		WithSuggestion("Use !include").
		Wrap(fmt.Errorf("unknown"))

	formatted := err.Format()
	for _, want := range []string{"H102", "Unknown directive", tmpFile, "→    3 │ !bogus x", "Hint: Use !include", "Cause: unknown"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("H101")
	err.Location = &Location{File: "app.page", Line: 10, Column: 5}
	want := "app.page:10:5: H101: Module not found"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("H001")
	err.Location = &Location{File: "app.page", Line: 10, Column: 5}

	var got map[string]any
	if e := json.Unmarshal([]byte(err.FormatJSON()), &got); e != nil {
		t.Fatalf("invalid JSON: %v", e)
	}
	if got["code"] != "H001" || got["category"] != "route" {
		t.Errorf("JSON = %v", got)
	}
	loc, ok := got["location"].(map[string]any)
	if !ok || loc["line"] != float64(10) {
		t.Errorf("location = %v", got["location"])
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("wrap: %w", New("H161")))
	if !strings.Contains(buf.String(), "ERROR H161: No bucket configured") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, fmt.Errorf("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 || codes[0] != "H001" {
		t.Errorf("GetAllCodes() = %v", codes)
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if tmpl.Category == "" || tmpl.Message == "" {
			t.Errorf("%s: incomplete template", code)
		}
	}

	Register("H999", ErrorTemplate{Category: CategoryCLI, Message: "Custom"})
	defer delete(registry, "H999")
	if New("H999").Message != "Custom" {
		t.Error("registered template not used")
	}
	if _, ok := GetTemplate("H998"); ok {
		t.Error("H998 should not exist")
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("short text", 100); len(got) != 1 || got[0] != "short text" {
		t.Errorf("short text: got %v", got)
	}
	if got := wrapText("this is a longer text that should be wrapped", 20); len(got) != 3 {
		t.Errorf("expected 3 lines, got %d: %v", len(got), got)
	}
	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("empty: got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}
	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
