package main

import (
	"strings"
	"unicode/utf8"

	"github.com/odvcencio/fluffyui/backend"
	"github.com/odvcencio/fluffyui/runtime"
	"github.com/odvcencio/fluffyui/terminal"
	"github.com/odvcencio/fluffyui/widgets"
)

// promptWidget asks for a path on the bottom line. It backs the save picker.
type promptWidget struct {
	widgets.Base

	label   string
	query   string
	focused bool

	onSubmit func(text string)
	onClose  func()

	bgStyle      backend.Style
	labelStyle   backend.Style
	inputStyle   backend.Style
	counterStyle backend.Style
}

func newPromptWidget() *promptWidget {
	return &promptWidget{
		bgStyle:      backend.DefaultStyle(),
		labelStyle:   backend.DefaultStyle().Foreground(backend.ColorRGB(0x88, 0x88, 0x88)),
		inputStyle:   backend.DefaultStyle(),
		counterStyle: backend.DefaultStyle().Foreground(backend.ColorYellow),
	}
}

// open shows the prompt with an initial value.
func (w *promptWidget) open(label, text string, submit func(string), closed func()) {
	w.label = label
	w.query = text
	w.onSubmit = submit
	w.onClose = closed
	w.focused = true
}

func (w *promptWidget) Query() string {
	return w.query
}

func (w *promptWidget) Measure(constraints runtime.Constraints) runtime.Size {
	return runtime.Size{Width: constraints.MaxWidth, Height: 1}
}

// Layout positions the widget at the bottom of the screen.
func (w *promptWidget) Layout(bounds runtime.Rect) {
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

func (w *promptWidget) Render(ctx runtime.RenderContext) {
	if w == nil || !w.focused {
		return
	}
	b := w.Bounds()
	if b.Width <= 0 || b.Height < 1 {
		return
	}

	ctx.Buffer.Fill(b, ' ', w.bgStyle)

	prefix := w.label + ": "
	x := b.X
	ctx.Buffer.SetString(x, b.Y, prefix, w.labelStyle)
	x += utf8.RuneCountInString(prefix)

	maxValue := b.Width - utf8.RuneCountInString(prefix) - 2
	if maxValue < 1 {
		maxValue = 1
	}
	text := w.query
	if utf8.RuneCountInString(text) > maxValue {
		runes := []rune(text)
		text = string(runes[len(runes)-maxValue:])
	}
	ctx.Buffer.SetString(x, b.Y, text, w.inputStyle)

	cursorX := x + utf8.RuneCountInString(text)
	if cursorX < b.X+b.Width {
		ctx.Buffer.Set(cursorX, b.Y, '█', w.inputStyle)
	}

	if w.query == "" {
		msg := "Enter a file path"
		available := b.Width - len(prefix) - 1
		if available <= 0 {
			return
		}
		if len(msg) > available {
			msg = msg[:available]
		}
		ctx.Buffer.SetString(b.X+b.Width-len(msg), b.Y, msg, w.counterStyle)
	}
}

// HandleMessage edits the query while the prompt is open. Submitting or
// dismissing hides the prompt before the callback runs.
func (w *promptWidget) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if w == nil || !w.focused {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Handled()
	}

	switch key.Key {
	case terminal.KeyEscape:
		w.focused = false
		if w.onClose != nil {
			w.onClose()
		}
	case terminal.KeyEnter:
		w.focused = false
		if w.onSubmit != nil {
			w.onSubmit(strings.TrimSpace(w.query))
		}
	case terminal.KeyBackspace:
		if len(w.query) > 0 {
			_, size := utf8.DecodeLastRuneInString(w.query)
			w.query = w.query[:len(w.query)-size]
		}
	case terminal.KeyRune:
		if !key.Ctrl && key.Rune != 0 {
			w.query += string(key.Rune)
		}
	}
	return runtime.Handled()
}
