package main

import (
	"github.com/odvcencio/fluffyui/widgets"

	"github.com/odvcencio/scribe/editor"
)

// textSurface adapts a TextArea to editor.Surface. TextArea offsets are rune
// offsets, which is what the editor position helpers use.
type textSurface struct {
	ta   *widgets.TextArea
	last editor.Cursor
}

func newTextSurface(ta *widgets.TextArea) *textSurface {
	return &textSurface{ta: ta, last: editor.Origin}
}

func (s *textSurface) Text() string {
	return s.ta.Text()
}

func (s *textSurface) SetText(text string) {
	s.ta.SetText(text)
}

func (s *textSurface) Cursor() editor.Cursor {
	text := s.ta.Text()
	c := editor.OffsetToCursor(text, s.ta.CursorOffset())
	sel := s.ta.GetSelection()
	if n := sel.End - sel.Start; n > 0 {
		c.Selection = n
	} else if n < 0 {
		c.Selection = -n
	}
	return c
}

func (s *textSurface) SetCursor(c editor.Cursor) {
	text := s.ta.Text()
	off := editor.CursorToOffset(text, c)
	s.ta.SetCursorOffset(off)
	if c.Selection > 0 {
		s.ta.SetSelection(widgets.Selection{Start: off, End: off + c.Selection})
	} else {
		s.ta.SelectNone()
	}
	s.last = s.Cursor()
}

// moved reports the cursor if it changed since the last call.
func (s *textSurface) moved() (editor.Cursor, bool) {
	c := s.Cursor()
	if c == s.last {
		return c, false
	}
	s.last = c
	return c, true
}

func newEditorArea(label string) *widgets.TextArea {
	ta := widgets.NewTextArea()
	ta.SetLabel(label)
	ta.SetShowLineNumbers(true)
	ta.SetTabMode(true)
	ta.SetWordWrap(false)
	return ta
}
