package view

import (
	"reflect"
	"strings"

	"github.com/vango-dev/hashview/pkg/dom"
)

// Directives is a directive object. Any other map with string keys is
// treated the same way.
type Directives map[string]any

// Reserved directive keys.
const (
	DirectiveValue     = "value"
	DirectiveClassList = "classList"
)

func asDirectives(val any) (map[string]any, bool) {
	return asMap(val)
}

// asMap converts any map whose key kind is string into map[string]any.
func asMap(val any) (map[string]any, bool) {
	switch x := val.(type) {
	case Directives:
		return x, true
	case map[string]any:
		return x, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// applyDirectives applies every key of d except "value" to n.
func (v *View) applyDirectives(n *dom.Node, d map[string]any) {
	for _, key := range sortedKeys(d) {
		val := d[key]
		switch {
		case key == DirectiveValue:
		case key == DirectiveClassList && applyClassList(n, val):
		case strings.HasPrefix(key, "!"):
			v.setHandler(n, key[1:], val)
		case strings.HasPrefix(key, "."):
			if val == nil {
				n.DeleteProperty(key[1:])
			} else {
				n.SetProperty(key[1:], val)
			}
		case val == nil:
			n.RemoveAttribute(key)
		default:
			n.SetAttribute(key, dom.Stringify(val))
		}
	}
}

// applyClassList adds or removes classes from a map of class name to flag.
// It reports false when val is not such a map.
func applyClassList(n *dom.Node, val any) bool {
	classes, ok := asMap(val)
	if !ok {
		return false
	}
	for _, class := range sortedKeys(classes) {
		toggleClass(n, class, truthy(classes[class]))
	}
	return true
}

func toggleClass(n *dom.Node, class string, on bool) {
	if on {
		n.AddClass(class)
	} else {
		n.RemoveClass(class)
	}
}

// setHandler registers fn for event on n, releasing the listener a previous
// directive registered for the same event. A nil fn only releases.
func (v *View) setHandler(n *dom.Node, event string, fn any) {
	if prev, ok := v.handlers[n][event]; ok {
		prev()
		delete(v.handlers[n], event)
	}

	var l dom.Listener
	switch f := fn.(type) {
	case nil:
		return
	case dom.Listener:
		l = f
	case func(*dom.Event):
		l = f
	case func():
		l = func(*dom.Event) { f() }
	default:
		v.logger.Warn("ignoring non-function event directive",
			"event", event,
			"type", reflect.TypeOf(fn).String())
		return
	}

	if v.handlers == nil {
		v.handlers = make(map[*dom.Node]map[string]func())
	}
	if v.handlers[n] == nil {
		v.handlers[n] = make(map[string]func())
	}
	v.handlers[n][event] = n.AddEventListener(event, l)
}

func truthy(val any) bool {
	switch x := val.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	}
	return true
}
