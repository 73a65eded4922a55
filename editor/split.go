package editor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoBuffer is returned when an operation needs an open buffer.
var ErrNoBuffer = errors.New("no buffer open")

// Pane identifies one of the two editing surfaces.
type Pane int

const (
	PanePrimary Pane = iota
	PaneSecondary
)

func (p Pane) String() string {
	if p == PaneSecondary {
		return "secondary"
	}
	return "primary"
}

// Direction is the split layout. Vertical places the panes side by side,
// Horizontal stacks them.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseDirection parses "vertical" or "horizontal".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown split direction %q", s)
}

// Split shows the active buffer in a second surface. Both panes always hold
// the same text; each keeps its own cursor.
type Split struct {
	reg       *Registry
	secondary Surface
	focused   Pane
	direction Direction
}

// NewSplit creates a split coordinator for reg using secondary as the
// second pane. The split starts disabled.
func NewSplit(reg *Registry, secondary Surface) *Split {
	return &Split{reg: reg, secondary: secondary}
}

// Active reports whether the secondary pane is shown.
func (s *Split) Active() bool {
	return s.reg.secondary != nil
}

// Enable shows the active buffer in the secondary pane, restoring that
// pane's last cursor for the buffer.
func (s *Split) Enable() error {
	b := s.reg.ActiveBuffer()
	if b == nil {
		return ErrNoBuffer
	}
	if s.Active() {
		return nil
	}
	s.reg.secondary = s.secondary
	s.reg.guard.run(func() {
		bind(s.secondary, b.Text(), b.SplitCursor())
	})
	return nil
}

// Disable hides the secondary pane. Its cursor stays with the buffer so a
// later Enable restores it. Focus returns to the primary pane.
func (s *Split) Disable() {
	if !s.Active() {
		s.focused = PanePrimary
		return
	}
	if b := s.reg.ActiveBuffer(); b != nil {
		b.SetSplitCursor(s.secondary.Cursor())
	}
	s.reg.secondary = nil
	s.focused = PanePrimary
}

// Mirror copies text edited in pane from into the other pane, keeping the
// other pane's cursor where it was (clamped into the new text).
func (s *Split) Mirror(from Pane, text string) {
	if !s.Active() {
		return
	}
	target := s.Surface(from.other())
	if target == nil || target.Text() == text {
		return
	}
	cur := target.Cursor()
	s.reg.guard.run(func() {
		bind(target, text, cur)
	})
}

// Suppressing reports whether an internal write is in progress.
func (s *Split) Suppressing() bool {
	return s.reg.Writing()
}

// Focus moves input focus to pane. Focusing the secondary pane while the
// split is off is ignored.
func (s *Split) Focus(p Pane) bool {
	if p == PaneSecondary && !s.Active() {
		return false
	}
	s.focused = p
	return true
}

func (s *Split) Focused() Pane {
	return s.focused
}

// Surface returns the surface for pane, or nil for the secondary pane while
// the split is off.
func (s *Split) Surface(p Pane) Surface {
	if p == PaneSecondary {
		if !s.Active() {
			return nil
		}
		return s.secondary
	}
	return s.reg.primary
}

func (s *Split) Direction() Direction {
	return s.direction
}

func (s *Split) SetDirection(d Direction) {
	s.direction = d
}

func (p Pane) other() Pane {
	if p == PanePrimary {
		return PaneSecondary
	}
	return PanePrimary
}
