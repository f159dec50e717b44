package router

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Encode returns the token for the route name(args...).
func Encode(name string, args ...any) (string, error) {
	return EncodeValues(name, args)
}

// EncodeValues returns the token for a route with the given argument list.
// A nil list encodes as an empty array. Encoding is deterministic; map
// arguments are serialized with sorted keys.
func EncodeValues(name string, args []any) (string, error) {
	if args == nil {
		args = []any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]any{name, args}); err != nil {
		return "", fmt.Errorf("router: encode %q: %w", name, err)
	}
	payload := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return base64.StdEncoding.EncodeToString(payload), nil
}

var tokenEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// Decode parses a token produced by Encode. Numbers decode as float64,
// objects as map[string]any and arrays as []any, so integers beyond 2^53
// lose precision; use DecodeNumbers for those. Any structural problem
// yields a *DecodeError and no partial result.
func Decode(token string) (Route, error) {
	payload, err := decodeBase64(token)
	if err != nil {
		return Route{}, &DecodeError{Token: token, Reason: "invalid base64", Err: err}
	}
	if !gjson.ValidBytes(payload) {
		return Route{}, &DecodeError{Token: token, Reason: "invalid JSON"}
	}

	doc := gjson.ParseBytes(payload)
	if !doc.IsArray() {
		return Route{}, &DecodeError{Token: token, Reason: "payload is not an array"}
	}
	parts := doc.Array()
	if len(parts) != 2 {
		return Route{}, &DecodeError{Token: token, Reason: fmt.Sprintf("payload has %d elements, want 2", len(parts))}
	}
	if parts[0].Type != gjson.String {
		return Route{}, &DecodeError{Token: token, Reason: "route name is not a string"}
	}
	if !parts[1].IsArray() {
		return Route{}, &DecodeError{Token: token, Reason: "route arguments are not an array"}
	}

	args, _ := parts[1].Value().([]any)
	if args == nil {
		args = []any{}
	}
	return Route{Name: parts[0].String(), Args: args}, nil
}

// DecodeNumbers is Decode with numbers kept as json.Number, preserving
// integers of any size.
func DecodeNumbers(token string) (Route, error) {
	route, err := Decode(token)
	if err != nil {
		return Route{}, err
	}
	payload, _ := decodeBase64(token)
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var parts []json.RawMessage
	if err := dec.Decode(&parts); err != nil {
		return Route{}, &DecodeError{Token: token, Reason: "invalid JSON", Err: err}
	}
	dec = json.NewDecoder(bytes.NewReader(parts[1]))
	dec.UseNumber()
	var args []any
	if err := dec.Decode(&args); err != nil {
		return Route{}, &DecodeError{Token: token, Reason: "route arguments are not an array", Err: err}
	}
	if args == nil {
		args = []any{}
	}
	route.Args = args
	return route, nil
}

func decodeBase64(token string) ([]byte, error) {
	var firstErr error
	for _, enc := range tokenEncodings {
		b, err := enc.DecodeString(token)
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
