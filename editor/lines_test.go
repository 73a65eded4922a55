package editor

import "testing"

func TestLineCount(t *testing.T) {
	cases := map[string]int{
		"":        1,
		"hello":   1,
		"a\nb\nc": 3,
		"a\nb\n":  3,
	}
	for text, want := range cases {
		if got := LineCount(text); got != want {
			t.Errorf("LineCount(%q) = %d, want %d", text, got, want)
		}
	}
}

func TestApplyLineOp(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		cursor  Cursor
		op      LineOp
		want    string
		wantCur Cursor
		wantOK  bool
	}{
		{"delete single", "hello", Cursor{Line: 1, Col: 3}, DeleteLine, "", Origin, true},
		{"delete empty", "", Origin, DeleteLine, "", Origin, false},
		{"delete first", "first\nsecond", Cursor{Line: 1, Col: 2}, DeleteLine, "second", Cursor{Line: 1, Col: 2}, true},
		{"delete last clamps", "a\nlonger", Cursor{Line: 2, Col: 6}, DeleteLine, "a", Cursor{Line: 1, Col: 2}, true},
		{"duplicate", "a\nb", Cursor{Line: 1, Col: 2}, DuplicateLine, "a\na\nb", Cursor{Line: 2, Col: 2}, true},
		{"duplicate last", "a\nb", Cursor{Line: 2, Col: 1}, DuplicateLine, "a\nb\nb", Cursor{Line: 3, Col: 1}, true},
		{"move up", "a\nb\nc", Cursor{Line: 2, Col: 1}, MoveLineUp, "b\na\nc", Cursor{Line: 1, Col: 1}, true},
		{"move down", "a\nb\nc", Cursor{Line: 2, Col: 2}, MoveLineDown, "a\nc\nb", Cursor{Line: 3, Col: 2}, true},
		{"move first up", "a\nb", Origin, MoveLineUp, "a\nb", Origin, false},
		{"move last down", "a\nb", Cursor{Line: 2, Col: 1}, MoveLineDown, "a\nb", Cursor{Line: 2, Col: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, cur, ok := ApplyLineOp(tc.text, tc.cursor, tc.op)
			if got != tc.want || cur != tc.wantCur || ok != tc.wantOK {
				t.Errorf("ApplyLineOp = %q, %+v, %v; want %q, %+v, %v",
					got, cur, ok, tc.want, tc.wantCur, tc.wantOK)
			}
		})
	}
}
