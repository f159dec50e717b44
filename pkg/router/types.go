package router

import (
	"context"
	"math"
)

// Route is a decoded route token.
type Route struct {
	Name string
	Args []any
}

// Handler handles a dispatched route.
type Handler func(c *Call)

// Call describes one dispatch to a handler.
type Call struct {
	Route

	// Static is set when the handler was found in the static registry. Args
	// is then empty.
	Static bool

	// Target is the value passed to Init.
	Target any

	ctx context.Context
}

// Context returns the dispatch context, carrying the dispatch span.
func (c *Call) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Arg returns argument i, or nil if out of range.
func (c *Call) Arg(i int) any {
	if i < 0 || i >= len(c.Args) {
		return nil
	}
	return c.Args[i]
}

// ArgString returns argument i if it is a string.
func (c *Call) ArgString(i int) (string, bool) {
	s, ok := c.Arg(i).(string)
	return s, ok
}

// ArgFloat returns argument i if it is a number.
func (c *Call) ArgFloat(i int) (float64, bool) {
	switch x := c.Arg(i).(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

// ArgInt returns argument i if it is an integral number.
func (c *Call) ArgInt(i int) (int, bool) {
	switch x := c.Arg(i).(type) {
	case int:
		return x, true
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt || x < math.MinInt {
			return 0, false
		}
		return int(x), true
	}
	return 0, false
}

// ArgBool returns argument i if it is a boolean.
func (c *Call) ArgBool(i int) (bool, bool) {
	b, ok := c.Arg(i).(bool)
	return b, ok
}
