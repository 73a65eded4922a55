package main

import (
	"sync"

	"github.com/odvcencio/fluffyui/backend"
	"github.com/odvcencio/fluffyui/runtime"
	"github.com/odvcencio/fluffyui/widgets"

	"github.com/odvcencio/scribe/editor"
)

type focusable interface {
	Focus()
	Blur()
}

// paneView lays out the primary editor alone, or both editors split by
// direction with a one-cell border. Keys go to the focused pane; a click
// focuses the pane under the pointer.
type paneView struct {
	widgets.Base
	panes     [2]runtime.Widget
	split     bool
	direction editor.Direction
	focused   editor.Pane

	// onFocus fires when a click moves focus to another pane.
	onFocus func(editor.Pane)
	// after runs once a message has been delivered to a pane.
	after func(editor.Pane)

	borderStyle backend.Style
}

func newPaneView(primary, secondary runtime.Widget) *paneView {
	return &paneView{
		panes:       [2]runtime.Widget{primary, secondary},
		borderStyle: backend.DefaultStyle().Foreground(backend.ColorRGB(0x55, 0x55, 0x55)),
	}
}

// sync copies the split layout from the session view.
func (p *paneView) sync(split bool, d editor.Direction, focused editor.Pane) {
	p.split = split
	p.direction = d
	p.focused = focused
	for i, w := range p.panes {
		f, ok := w.(focusable)
		if !ok {
			continue
		}
		if editor.Pane(i) == focused {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

func (p *paneView) Measure(constraints runtime.Constraints) runtime.Size {
	return runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight}
}

// rects splits bounds in two. Vertical places the panes side by side.
func (p *paneView) rects(r runtime.Rect) (runtime.Rect, runtime.Rect, runtime.Rect) {
	r1, r2 := r, r
	var border runtime.Rect
	if p.direction == editor.Vertical {
		r1.Width = r.Width / 2
		r2.Width = r.Width - r1.Width - 1
		r2.X += r1.Width + 1
		border = runtime.Rect{X: r.X + r1.Width, Y: r.Y, Width: 1, Height: r.Height}
	} else {
		r1.Height = r.Height / 2
		r2.Height = r.Height - r1.Height - 1
		r2.Y += r1.Height + 1
		border = runtime.Rect{X: r.X, Y: r.Y + r1.Height, Width: r.Width, Height: 1}
	}
	if r2.Width < 0 {
		r2.Width = 0
	}
	if r2.Height < 0 {
		r2.Height = 0
	}
	return r1, r2, border
}

func (p *paneView) Layout(bounds runtime.Rect) {
	p.Base.Layout(bounds)
	if !p.split {
		p.panes[0].Layout(bounds)
		return
	}
	r1, r2, _ := p.rects(bounds)
	p.panes[0].Layout(r1)
	p.panes[1].Layout(r2)
}

func (p *paneView) Render(ctx runtime.RenderContext) {
	p.panes[0].Render(ctx)
	if !p.split {
		return
	}
	p.panes[1].Render(ctx)

	_, _, border := p.rects(p.Bounds())
	r := '│'
	if p.direction == editor.Horizontal {
		r = '─'
	}
	for y := border.Y; y < border.Y+border.Height; y++ {
		for x := border.X; x < border.X+border.Width; x++ {
			ctx.Buffer.Set(x, y, r, p.borderStyle)
		}
	}
}

func (p *paneView) HandleMessage(msg runtime.Message) runtime.HandleResult {
	target := p.focused
	if !p.split {
		target = editor.PanePrimary
	}
	if mouse, ok := msg.(runtime.MouseMsg); ok && p.split && mouse.Action == runtime.MousePress {
		r1, _, _ := p.rects(p.Bounds())
		hit := editor.PaneSecondary
		if mouse.X < r1.X+r1.Width && mouse.Y < r1.Y+r1.Height {
			hit = editor.PanePrimary
		}
		if hit != p.focused && p.onFocus != nil {
			p.onFocus(hit)
		}
		target = hit
	}
	result := p.panes[target].HandleMessage(msg)
	if p.after != nil {
		p.after(target)
	}
	return result
}

func (p *paneView) ChildWidgets() []runtime.Widget {
	if p.split {
		return []runtime.Widget{p.panes[0], p.panes[1]}
	}
	return []runtime.Widget{p.panes[0]}
}

// gatedRoot holds the event gate while the UI measures, draws or handles a
// message, so timer and bridge callbacks run between UI turns.
type gatedRoot struct {
	widgets.Base
	mu    *sync.Mutex
	child runtime.Widget
}

func (g *gatedRoot) Measure(constraints runtime.Constraints) runtime.Size {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.child.Measure(constraints)
}

func (g *gatedRoot) Layout(bounds runtime.Rect) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Base.Layout(bounds)
	g.child.Layout(bounds)
}

func (g *gatedRoot) Render(ctx runtime.RenderContext) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.child.Render(ctx)
}

func (g *gatedRoot) HandleMessage(msg runtime.Message) runtime.HandleResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.child.HandleMessage(msg)
}

func (g *gatedRoot) ChildWidgets() []runtime.Widget {
	return []runtime.Widget{g.child}
}

// eventGate serializes callbacks from timers and the web bridge with UI
// turns.
type eventGate struct {
	mu sync.Mutex
}

func (g *eventGate) Run(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}
