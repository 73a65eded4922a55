package main

import (
	"strings"
	"unicode"

	"github.com/odvcencio/fluffyui/backend"
	"github.com/odvcencio/fluffyui/runtime"
	"github.com/odvcencio/fluffyui/terminal"
	"github.com/odvcencio/fluffyui/widgets"
)

// dialog is one pending question. Choosing option i calls onChoose(i);
// Escape chooses cancel.
type dialog struct {
	title    string
	message  string
	options  []string
	cancel   int
	onChoose func(int)
}

// confirmWidget is a modal one-line question pinned to the bottom of the
// screen. It stays mounted and swallows all input while a dialog is shown.
// Dialogs asked while one is open wait their turn.
type confirmWidget struct {
	widgets.Base

	current  *dialog
	queue    []dialog
	selected int

	bgStyle       backend.Style
	titleStyle    backend.Style
	optionStyle   backend.Style
	selectedStyle backend.Style
}

func newConfirmWidget() *confirmWidget {
	return &confirmWidget{
		bgStyle:       backend.DefaultStyle(),
		titleStyle:    backend.DefaultStyle().Foreground(backend.ColorYellow),
		optionStyle:   backend.DefaultStyle().Foreground(backend.ColorRGB(0x88, 0x88, 0x88)),
		selectedStyle: backend.DefaultStyle().Reverse(true),
	}
}

func (w *confirmWidget) ask(d dialog) {
	if w.current != nil {
		w.queue = append(w.queue, d)
		return
	}
	w.current = &d
	w.selected = 0
}

func (w *confirmWidget) visible() bool {
	return w.current != nil
}

// choose closes the current dialog before running its callback, so the
// callback may ask again.
func (w *confirmWidget) choose(i int) {
	d := w.current
	w.current = nil
	if len(w.queue) > 0 {
		next := w.queue[0]
		w.queue = w.queue[1:]
		w.current = &next
		w.selected = 0
	}
	if d != nil && d.onChoose != nil {
		d.onChoose(i)
	}
}

func (w *confirmWidget) Measure(constraints runtime.Constraints) runtime.Size {
	return runtime.Size{Width: constraints.MaxWidth, Height: 1}
}

// Layout positions the widget at the bottom of the screen.
func (w *confirmWidget) Layout(bounds runtime.Rect) {
	height := 1
	if bounds.Height < height {
		height = bounds.Height
	}
	w.Base.Layout(runtime.Rect{
		X:      bounds.X,
		Y:      bounds.Y + bounds.Height - height,
		Width:  bounds.Width,
		Height: height,
	})
}

func (w *confirmWidget) Render(ctx runtime.RenderContext) {
	if w.current == nil {
		return
	}
	b := w.Bounds()
	if b.Width <= 0 || b.Height < 1 {
		return
	}
	ctx.Buffer.Fill(b, ' ', w.bgStyle)

	x := b.X
	put := func(s string, st backend.Style) {
		for _, r := range s {
			if x >= b.X+b.Width {
				return
			}
			ctx.Buffer.Set(x, b.Y, r, st)
			x++
		}
	}
	d := w.current
	if d.title != "" {
		put(d.title+": ", w.titleStyle)
	}
	put(d.message+"  ", w.bgStyle)
	for i, opt := range d.options {
		st := w.optionStyle
		if i == w.selected {
			st = w.selectedStyle
		}
		put("["+opt+"]", st)
		put(" ", w.bgStyle)
	}
}

// HandleMessage answers the open dialog. Letters pick the option they
// start, arrows and Tab move the selection.
func (w *confirmWidget) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if w.current == nil {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Handled()
	}
	n := len(w.current.options)
	switch key.Key {
	case terminal.KeyEscape:
		w.choose(w.current.cancel)
	case terminal.KeyEnter:
		w.choose(w.selected)
	case terminal.KeyLeft:
		if n > 0 {
			w.selected = (w.selected + n - 1) % n
		}
	case terminal.KeyRight, terminal.KeyTab:
		if n > 0 {
			w.selected = (w.selected + 1) % n
		}
	case terminal.KeyRune:
		if key.Ctrl || key.Alt {
			break
		}
		r := unicode.ToLower(key.Rune)
		for i, opt := range w.current.options {
			if strings.HasPrefix(strings.ToLower(opt), string(r)) {
				w.choose(i)
				break
			}
		}
	}
	return runtime.Handled()
}
