package router

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{"home", []any{}},
		{"user", []any{42.0, "edit"}},
		{"search", []any{"a&b <c>", true, nil}},
		{"nested", []any{[]any{1.0, 2.0}, map[string]any{"k": "v", "n": 1.5}}},
		{"unicode", []any{"žluťoučký kůň", "日本"}},
		{"", []any{""}},
	}
	for _, tt := range tests {
		token, err := EncodeValues(tt.name, tt.args)
		if err != nil {
			t.Fatalf("EncodeValues(%q) error = %v", tt.name, err)
		}
		got, err := Decode(token)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", token, err)
		}
		want := Route{Name: tt.name, Args: tt.args}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip = %#v, want %#v", got, want)
		}
	}
}

func TestEncodeFormat(t *testing.T) {
	token, err := Encode("user", 42, "edit")
	if err != nil {
		t.Fatal(err)
	}
	if token != "WyJ1c2VyIixbNDIsImVkaXQiXV0=" {
		t.Errorf("Encode() = %q", token)
	}

	again, _ := Encode("user", 42, "edit")
	if again != token {
		t.Error("encoding is not deterministic")
	}

	empty, _ := EncodeValues("x", nil)
	raw, _ := base64.StdEncoding.DecodeString(empty)
	if string(raw) != `["x",[]]` {
		t.Errorf("nil args payload = %s, want [\"x\",[]]", raw)
	}
}

func TestEncodeUnsupportedValue(t *testing.T) {
	if _, err := Encode("bad", make(chan int)); err == nil {
		t.Error("expected error for unencodable argument")
	}
}

func TestDecodeAcceptsURLAlphabet(t *testing.T) {
	payload := []byte(`["q",["??>>"]]`)
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawURLEncoding, base64.RawStdEncoding} {
		got, err := Decode(enc.EncodeToString(payload))
		if err != nil {
			t.Errorf("Decode() error = %v", err)
			continue
		}
		if got.Name != "q" || got.Args[0] != "??>>" {
			t.Errorf("Decode() = %#v", got)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
	tests := []struct {
		token  string
		reason string
	}{
		{"not-valid-token!!", "invalid base64"},
		{b64(`["a",[1]`), "invalid JSON"},
		{b64(`{"a":[]}`), "not an array"},
		{b64(`["a"]`), "1 elements"},
		{b64(`["a",[],3]`), "3 elements"},
		{b64(`[1,[]]`), "name is not a string"},
		{b64(`["a",1]`), "arguments are not an array"},
		{b64(`["a",{"x":1}]`), "arguments are not an array"},
	}
	for _, tt := range tests {
		_, err := Decode(tt.token)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("Decode(%q) error = %v, want ErrDecode", tt.token, err)
			continue
		}
		var de *DecodeError
		if !errors.As(err, &de) || !strings.Contains(de.Reason, tt.reason) {
			t.Errorf("Decode(%q) reason = %q, want %q", tt.token, de.Reason, tt.reason)
		}
	}
}

func TestDecodeNumbersKeepsLargeIntegers(t *testing.T) {
	const big = int64(1)<<53 + 1
	token, err := Encode("item", big, 1.5, map[string]any{"id": big})
	if err != nil {
		t.Fatal(err)
	}

	lossy, _ := Decode(token)
	if f := lossy.Args[0].(float64); int64(f) == big {
		t.Errorf("Decode kept %d exactly; expected float64 rounding", big)
	}

	route, err := DecodeNumbers(token)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := route.Args[0].(json.Number)
	if !ok {
		t.Fatalf("Args[0] is %T, want json.Number", route.Args[0])
	}
	if got, _ := n.Int64(); got != big {
		t.Errorf("Args[0] = %d, want %d", got, big)
	}
	if route.Args[1] != json.Number("1.5") {
		t.Errorf("Args[1] = %v, want 1.5", route.Args[1])
	}
	if id := route.Args[2].(map[string]any)["id"]; id != json.Number("9007199254740993") {
		t.Errorf("nested id = %v", id)
	}

	if _, err := DecodeNumbers("not base64!"); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeNumbers error = %v, want ErrDecode", err)
	}
}
