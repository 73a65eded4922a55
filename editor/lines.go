package editor

import "strings"

// LineOp is a whole-line edit applied at a cursor.
type LineOp int

const (
	DeleteLine LineOp = iota
	DuplicateLine
	MoveLineUp
	MoveLineDown
)

func (op LineOp) String() string {
	switch op {
	case DeleteLine:
		return "delete line"
	case DuplicateLine:
		return "duplicate line"
	case MoveLineUp:
		return "move line up"
	case MoveLineDown:
		return "move line down"
	}
	return "line op"
}

// LineCount returns the number of lines in the text.
// An empty string is considered to have 1 line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// ApplyLineOp applies op to the line under c and returns the new text and
// where the cursor lands. ok is false when the edit does not apply, such as
// moving the first line up; text and cursor are then returned unchanged.
func ApplyLineOp(text string, c Cursor, op LineOp) (string, Cursor, bool) {
	c = ClampCursor(text, c)
	lines := strings.Split(text, "\n")
	i := c.Line - 1

	switch op {
	case DeleteLine:
		if len(lines) == 1 {
			if text == "" {
				return text, c, false
			}
			return "", Origin, true
		}
		lines = append(lines[:i], lines[i+1:]...)
		if i >= len(lines) {
			i = len(lines) - 1
		}
		out := strings.Join(lines, "\n")
		return out, ClampCursor(out, Cursor{Line: i + 1, Col: c.Col}), true

	case DuplicateLine:
		lines = append(lines[:i+1], append([]string{lines[i]}, lines[i+1:]...)...)
		return strings.Join(lines, "\n"), Cursor{Line: c.Line + 1, Col: c.Col}, true

	case MoveLineUp, MoveLineDown:
		target := i - 1
		if op == MoveLineDown {
			target = i + 1
		}
		if target < 0 || target >= len(lines) {
			return text, c, false
		}
		lines[i], lines[target] = lines[target], lines[i]
		return strings.Join(lines, "\n"), Cursor{Line: target + 1, Col: c.Col}, true
	}
	return text, c, false
}
