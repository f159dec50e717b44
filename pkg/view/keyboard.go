package view

import "github.com/vango-dev/hashview/pkg/dom"

// SetDefaultAction sets the callback run when Enter is pressed inside the
// root. When fn returns true the key event is consumed.
func (v *View) SetDefaultAction(fn func(*View) bool) {
	v.defaultAction = fn
	v.installKeyHandler()
}

// SetCancelAction sets the callback run when Escape is pressed inside the
// root. When fn returns true the key event is consumed.
func (v *View) SetCancelAction(fn func(*View) bool) {
	v.cancelAction = fn
	v.installKeyHandler()
}

func (v *View) installKeyHandler() {
	if v.kbdInstalled {
		return
	}
	v.kbdInstalled = true
	v.root.AddEventListener(dom.EventKeyDown, func(e *dom.Event) {
		var action func(*View) bool
		switch e.Key {
		case dom.KeyEnter:
			action = v.defaultAction
		case dom.KeyEscape:
			action = v.cancelAction
		}
		if action != nil && action(v) {
			e.PreventDefault()
			e.StopPropagation()
		}
	})
}
