package template

import (
	"errors"
	"testing"

	"github.com/vango-dev/hashview/pkg/dom"
)

func TestStampUsesTemplateMetadata(t *testing.T) {
	src := dom.Template(
		dom.Data("tag", "li"),
		dom.Data("class", "row"),
		dom.Data("style", "color: red"),
		dom.Span(dom.Bind("label")),
	)

	n := Stamp(src, "")
	if n.Tag() != "li" {
		t.Errorf("Tag() = %q, want li", n.Tag())
	}
	if n.Attribute("class") != "row" {
		t.Errorf("class = %q, want row", n.Attribute("class"))
	}
	if n.Attribute("style") != "color: red" {
		t.Errorf("style = %q, want %q", n.Attribute("style"), "color: red")
	}
	if n.ChildCount() != 1 || n.FirstChild().Attribute(dom.AttrBind) != "label" {
		t.Errorf("content not copied: %s", n.OuterHTML())
	}
	if src.Content().ChildCount() != 1 {
		t.Error("stamping must not consume template content")
	}
}

func TestStampTagOverride(t *testing.T) {
	src := dom.Template(dom.Data("tag", "li"))
	if got := Stamp(src, "tr").Tag(); got != "tr" {
		t.Errorf("Tag() = %q, want tr", got)
	}
	if got := Stamp(dom.Template(), "").Tag(); got != DefaultTag {
		t.Errorf("Tag() = %q, want %q", got, DefaultTag)
	}
}

func TestStampFromPlainElement(t *testing.T) {
	src := dom.Div(dom.Span("a"), dom.Span("b"))
	n := Stamp(src, "")
	if n.ChildCount() != 2 || src.ChildCount() != 2 {
		t.Errorf("children: stamped=%d source=%d, want 2 and 2", n.ChildCount(), src.ChildCount())
	}
}

func TestLoad(t *testing.T) {
	doc := dom.NewDocument()
	doc.Body().AppendChild(dom.Template(dom.ID("card"), dom.P("hi")))

	n, err := Load(doc, "card", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !n.HasClass("templ_card") {
		t.Errorf("class = %q, want templ_card", n.Attribute("class"))
	}
	if n.OwnerDocument() != doc {
		t.Error("stamped node should belong to the document")
	}

	_, err = Load(doc, "missing", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLoadDeclaredClassWins(t *testing.T) {
	doc := dom.NewDocument()
	doc.Body().AppendChild(dom.Template(dom.ID("card"), dom.Data("class", "custom")))

	n, err := Load(doc, "card", "")
	if err != nil {
		t.Fatal(err)
	}
	if n.Attribute("class") != "custom" {
		t.Errorf("class = %q, want custom", n.Attribute("class"))
	}
}
