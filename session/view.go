package session

import (
	"github.com/odvcencio/scribe/diagnostics"
	"github.com/odvcencio/scribe/editor"
)

// Tab is one entry of the tab strip as the registry sees it.
type Tab struct {
	Label string
	Path  string
	Dirty bool
}

// View is a read-only projection of the session for status surfaces. It
// is computed on demand and never stored.
type View struct {
	Tabs   []Tab
	Active int

	Name     string
	Path     string
	Dirty    bool
	Untitled bool

	// Cursor belongs to the focused pane.
	Cursor    editor.Cursor
	Pane      editor.Pane
	Split     bool
	Direction editor.Direction

	Diagnostics         []diagnostics.Diagnostic
	DiagnosticsExpanded bool

	Status string
	Recent []string
}

// Snapshot returns the current view.
func (s *Session) Snapshot() View {
	v := View{
		Active:    s.reg.Active(),
		Pane:      s.split.Focused(),
		Split:     s.split.Active(),
		Direction: s.split.Direction(),
		Status:    s.status.Text(),
		Recent:    s.recent.List(),
	}
	for _, b := range s.reg.Buffers() {
		v.Tabs = append(v.Tabs, Tab{Label: s.reg.Label(b), Path: b.SaveTarget(), Dirty: b.Dirty()})
	}
	b := s.reg.ActiveBuffer()
	if b == nil {
		return v
	}
	v.Name = b.DisplayName()
	v.Path = b.SaveTarget()
	v.Dirty = b.Dirty()
	v.Untitled = b.Untitled()
	v.Cursor = b.Cursor()
	if v.Pane == editor.PaneSecondary {
		v.Cursor = b.SplitCursor()
	}
	v.Diagnostics = b.Diagnostics()
	v.DiagnosticsExpanded = b.DiagnosticsExpanded()
	return v
}
