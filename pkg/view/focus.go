package view

import (
	"time"

	"github.com/vango-dev/hashview/pkg/dom"
)

// focusRecheckDelay is how long focus containment waits after a focusout
// before checking where focus went.
const focusRecheckDelay = time.Millisecond

// SetFirstTabElement focuses n and keeps focus inside the root: whenever
// focus moves outside of it, n is focused again.
func (v *View) SetFirstTabElement(n *dom.Node) {
	v.firstTab = n
	n.Focus()
	v.installFocusHandler()
}

func (v *View) installFocusHandler() {
	if v.focusInstalled {
		return
	}
	v.focusInstalled = true
	v.root.AddEventListener(dom.EventFocusOut, func(*dom.Event) {
		if v.firstTab == nil {
			return
		}
		// The new focus target is only known after focusout returns.
		v.after(focusRecheckDelay, v.containFocus)
	})
}

func (v *View) containFocus() {
	doc := v.root.OwnerDocument()
	if doc == nil || v.firstTab == nil {
		return
	}
	if v.root.Contains(doc.ActiveElement()) {
		return
	}
	v.logger.Debug("focus left view, restoring", "tag", v.firstTab.Tag())
	v.firstTab.Focus()
}
