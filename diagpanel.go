package main

import (
	"github.com/odvcencio/fluffyui/backend"
	"github.com/odvcencio/fluffyui/runtime"
	"github.com/odvcencio/fluffyui/widgets"

	"github.com/odvcencio/scribe/diagnostics"
)

const maxPanelLines = 6

// diagnosticsPanel lists the active buffer's diagnostics above the status
// bar while expanded. It takes no rows when collapsed.
type diagnosticsPanel struct {
	widgets.Base
	lines    []string
	expanded bool

	headerStyle backend.Style
	errorStyle  backend.Style
	okStyle     backend.Style
}

func newDiagnosticsPanel() *diagnosticsPanel {
	return &diagnosticsPanel{
		headerStyle: backend.DefaultStyle().Reverse(true),
		errorStyle:  backend.DefaultStyle().Foreground(backend.ColorRed),
		okStyle:     backend.DefaultStyle().Foreground(backend.ColorRGB(0x88, 0x88, 0x88)),
	}
}

func (p *diagnosticsPanel) set(diags []diagnostics.Diagnostic, expanded bool) {
	p.expanded = expanded
	p.lines = p.lines[:0]
	for _, d := range diags {
		p.lines = append(p.lines, d.String())
	}
}

func (p *diagnosticsPanel) Measure(constraints runtime.Constraints) runtime.Size {
	if !p.expanded {
		return runtime.Size{Width: constraints.MaxWidth}
	}
	h := 1 + max(len(p.lines), 1)
	h = min(h, maxPanelLines)
	return runtime.Size{Width: constraints.MaxWidth, Height: h}
}

func (p *diagnosticsPanel) Render(ctx runtime.RenderContext) {
	b := ctx.Bounds
	if !p.expanded || b.Width <= 0 || b.Height <= 0 {
		return
	}
	ctx.Buffer.Fill(runtime.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: 1}, ' ', p.headerStyle)
	ctx.Buffer.SetString(b.X, b.Y, " Diagnostics", p.headerStyle)

	if len(p.lines) == 0 {
		if b.Height > 1 {
			ctx.Buffer.SetString(b.X+1, b.Y+1, "No problems", p.okStyle)
		}
		return
	}
	for i, line := range p.lines {
		y := b.Y + 1 + i
		if y >= b.Y+b.Height {
			break
		}
		ctx.Buffer.SetString(b.X+1, y, line, p.errorStyle)
	}
}

func (p *diagnosticsPanel) HandleMessage(runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}
