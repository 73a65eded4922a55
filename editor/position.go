package editor

import "strings"

// Cursor is a caret position on an editing surface. Line and Col are
// 1-based and count runes; Selection is the selected rune count starting
// at the caret.
type Cursor struct {
	Line, Col int
	Selection int
}

// Origin is the cursor at the start of a document.
var Origin = Cursor{Line: 1, Col: 1}

// Valid reports whether c has 1-based coordinates.
func (c Cursor) Valid() bool {
	return c.Line >= 1 && c.Col >= 1
}

// OffsetToCursor converts a rune offset into text to a 1-based line/column.
// Offsets past the end clamp to the end of text.
func OffsetToCursor(text string, offset int) Cursor {
	c := Origin
	if offset <= 0 {
		return c
	}
	i := 0
	for _, r := range text {
		if i == offset {
			break
		}
		if r == '\n' {
			c.Line++
			c.Col = 1
		} else {
			c.Col++
		}
		i++
	}
	return c
}

// CursorToOffset converts a 1-based line/column into a rune offset. The
// cursor is clamped into text first.
func CursorToOffset(text string, c Cursor) int {
	c = ClampCursor(text, c)
	offset := 0
	line := 1
	for _, r := range text {
		if line == c.Line {
			break
		}
		if r == '\n' {
			line++
		}
		offset++
	}
	return offset + c.Col - 1
}

// ClampCursor moves c onto the nearest valid position in text. A cursor that
// is already valid is returned unchanged, selection included. A cursor whose
// line no longer exists moves to the end of the text and loses its
// selection; otherwise only the column is clamped.
func ClampCursor(text string, c Cursor) Cursor {
	lines := strings.Split(text, "\n")
	if c.Line < 1 {
		c.Line = 1
	}
	if c.Line > len(lines) {
		c.Line = len(lines)
		c.Col = len([]rune(lines[c.Line-1])) + 1
		c.Selection = 0
	}
	maxCol := len([]rune(lines[c.Line-1])) + 1
	if c.Col < 1 {
		c.Col = 1
	}
	if c.Col > maxCol {
		c.Col = maxCol
	}
	if c.Selection < 0 {
		c.Selection = 0
	}
	return c
}
