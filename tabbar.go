package main

import (
	"github.com/odvcencio/fluffyui/backend"
	"github.com/odvcencio/fluffyui/runtime"
	"github.com/odvcencio/fluffyui/widgets"
)

// tabBar renders a horizontal row of tab labels with the active tab
// highlighted. It implements session.TabStrip; labels arrive with the dirty
// marker already applied. Clicking a tab fires onClick with its index.
type tabBar struct {
	widgets.Base
	labels  []string
	active  int
	onClick func(index int)

	normalStyle backend.Style
	activeStyle backend.Style
}

func newTabBar() *tabBar {
	return &tabBar{
		active:      -1,
		normalStyle: backend.DefaultStyle(),
		activeStyle: backend.DefaultStyle().Reverse(true),
	}
}

func (t *tabBar) AddTab(label string) {
	t.labels = append(t.labels, label)
}

func (t *tabBar) RemoveTab(index int) {
	if index < 0 || index >= len(t.labels) {
		return
	}
	t.labels = append(t.labels[:index], t.labels[index+1:]...)
	if t.active >= len(t.labels) {
		t.active = len(t.labels) - 1
	}
}

func (t *tabBar) SelectTab(index int) {
	if index < -1 || index >= len(t.labels) {
		return
	}
	t.active = index
}

func (t *tabBar) RelabelTab(index int, label string) {
	if index < 0 || index >= len(t.labels) {
		return
	}
	t.labels[index] = label
}

func (t *tabBar) Measure(constraints runtime.Constraints) runtime.Size {
	return runtime.Size{Width: constraints.MaxWidth, Height: 1}
}

func (t *tabBar) Render(ctx runtime.RenderContext) {
	bounds := ctx.Bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	buf := ctx.Buffer
	x := 0
	for i, label := range t.labels {
		if x >= bounds.Width {
			break
		}
		s := t.normalStyle
		if i == t.active {
			s = t.activeStyle
		}
		for _, r := range " " + label + " " {
			if x >= bounds.Width {
				break
			}
			buf.Set(bounds.X+x, bounds.Y, r, s)
			x++
		}
		if i < len(t.labels)-1 && x < bounds.Width {
			buf.Set(bounds.X+x, bounds.Y, '│', t.normalStyle)
			x++
		}
	}
	for x < bounds.Width {
		buf.Set(bounds.X+x, bounds.Y, ' ', t.normalStyle)
		x++
	}
}

func (t *tabBar) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if mouse, ok := msg.(runtime.MouseMsg); ok {
		if mouse.Action == runtime.MousePress && mouse.Button == runtime.MouseLeft {
			idx := t.tabAtX(mouse.X)
			if idx >= 0 && t.onClick != nil {
				t.onClick(idx)
				return runtime.Handled()
			}
		}
	}
	return runtime.Unhandled()
}

// tabAtX returns the tab index at the given x coordinate, or -1.
func (t *tabBar) tabAtX(px int) int {
	x := t.Bounds().X
	for i, label := range t.labels {
		width := len([]rune(label)) + 2
		if px >= x && px < x+width {
			return i
		}
		x += width
		if i < len(t.labels)-1 {
			x++
		}
	}
	return -1
}
