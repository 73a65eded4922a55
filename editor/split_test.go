package editor

import (
	"errors"
	"testing"
)

func newSplitFixture(text string) (*Registry, *Split, *fakeSurface, *fakeSurface) {
	r := NewRegistry()
	primary := newFakeSurface()
	secondary := newFakeSurface()
	r.Bind(primary)
	r.Add(NewFileBuffer("/doc.txt", text), true)
	return r, NewSplit(r, secondary), primary, secondary
}

func TestSplitEnableRequiresBuffer(t *testing.T) {
	r := NewRegistry()
	s := NewSplit(r, newFakeSurface())
	if err := s.Enable(); !errors.Is(err, ErrNoBuffer) {
		t.Errorf("Enable err = %v, want ErrNoBuffer", err)
	}
	if s.Active() {
		t.Error("split should stay off")
	}
}

func TestSplitEnableCopiesText(t *testing.T) {
	_, s, _, secondary := newSplitFixture("one\ntwo")
	if err := s.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if !s.Active() {
		t.Fatal("split should be active")
	}
	if secondary.Text() != "one\ntwo" {
		t.Errorf("secondary text = %q", secondary.Text())
	}
	if secondary.Cursor() != Origin {
		t.Errorf("secondary cursor = %+v, want origin", secondary.Cursor())
	}
}

func TestSplitMirrorPreservesOtherCursor(t *testing.T) {
	r, s, primary, secondary := newSplitFixture("hello world")
	s.Enable()
	secondary.SetCursor(Cursor{Line: 1, Col: 3})

	echoes := 0
	secondary.onChange = func(string) {
		if !s.Suppressing() {
			echoes++
		}
	}

	primary.typeText("hello brave world", Cursor{Line: 1, Col: 12})
	s.Mirror(PanePrimary, primary.Text())

	if secondary.Text() != "hello brave world" {
		t.Errorf("secondary text = %q", secondary.Text())
	}
	if secondary.Cursor() != (Cursor{Line: 1, Col: 3}) {
		t.Errorf("secondary cursor = %+v, want 1:3", secondary.Cursor())
	}
	if echoes != 0 {
		t.Errorf("%d echo events", echoes)
	}
	if r.Writing() {
		t.Error("guard left open")
	}
}

func TestSplitMirrorClampsCursor(t *testing.T) {
	_, s, primary, secondary := newSplitFixture("a long line\nsecond")
	s.Enable()
	secondary.SetCursor(Cursor{Line: 2, Col: 5})

	primary.typeText("short", Cursor{Line: 1, Col: 6})
	s.Mirror(PanePrimary, "short")
	if secondary.Cursor() != (Cursor{Line: 1, Col: 6}) {
		t.Errorf("secondary cursor = %+v, want 1:6", secondary.Cursor())
	}
}

func TestSplitMirrorFromSecondary(t *testing.T) {
	_, s, primary, secondary := newSplitFixture("abc")
	s.Enable()
	primary.SetCursor(Cursor{Line: 1, Col: 2})
	secondary.typeText("abcd", Cursor{Line: 1, Col: 5})
	s.Mirror(PaneSecondary, "abcd")
	if primary.Text() != "abcd" || primary.Cursor() != (Cursor{Line: 1, Col: 2}) {
		t.Errorf("primary = %q at %+v", primary.Text(), primary.Cursor())
	}
}

func TestSplitMirrorWhileOffIsNoop(t *testing.T) {
	_, s, _, secondary := newSplitFixture("abc")
	s.Mirror(PanePrimary, "xyz")
	if secondary.writes != 0 {
		t.Errorf("secondary written %d times", secondary.writes)
	}
}

func TestSplitDisableKeepsCursorForNextEnable(t *testing.T) {
	r, s, _, secondary := newSplitFixture("line one\nline two")
	s.Enable()
	s.Focus(PaneSecondary)
	secondary.SetCursor(Cursor{Line: 2, Col: 4})

	s.Disable()
	if s.Active() {
		t.Fatal("split should be off")
	}
	if s.Focused() != PanePrimary {
		t.Errorf("focus = %v, want primary", s.Focused())
	}
	if got := r.ActiveBuffer().SplitCursor(); got != (Cursor{Line: 2, Col: 4}) {
		t.Errorf("SplitCursor = %+v", got)
	}

	secondary.SetCursor(Origin)
	s.Enable()
	if secondary.Cursor() != (Cursor{Line: 2, Col: 4}) {
		t.Errorf("restored cursor = %+v", secondary.Cursor())
	}
}

func TestSplitFollowsActivate(t *testing.T) {
	r, s, _, secondary := newSplitFixture("first")
	r.Add(NewFileBuffer("/second.txt", "second\ntext"), false)
	s.Enable()
	secondary.SetCursor(Cursor{Line: 1, Col: 4})

	r.Activate(1, false)
	if secondary.Text() != "second\ntext" || secondary.Cursor() != Origin {
		t.Errorf("secondary = %q at %+v", secondary.Text(), secondary.Cursor())
	}
	if got := r.Buffer(0).SplitCursor(); got != (Cursor{Line: 1, Col: 4}) {
		t.Errorf("buffer 0 SplitCursor = %+v", got)
	}

	r.Activate(0, false)
	if secondary.Cursor() != (Cursor{Line: 1, Col: 4}) {
		t.Errorf("secondary cursor = %+v", secondary.Cursor())
	}
}

func TestSplitFocus(t *testing.T) {
	_, s, _, _ := newSplitFixture("x")
	if s.Focus(PaneSecondary) {
		t.Error("focusing secondary while off should fail")
	}
	s.Enable()
	if !s.Focus(PaneSecondary) || s.Focused() != PaneSecondary {
		t.Error("focus secondary failed")
	}
	if s.Surface(PaneSecondary) == nil {
		t.Error("Surface(secondary) nil while on")
	}
}

func TestRemoveLastTurnsSplitOff(t *testing.T) {
	r, s, _, _ := newSplitFixture("x")
	s.Enable()
	r.Remove(0)
	if s.Active() {
		t.Error("split should be off with no buffers")
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
		err  bool
	}{
		{"vertical", Vertical, false},
		{"Horizontal", Horizontal, false},
		{"", Vertical, false},
		{"diagonal", Vertical, true},
	}
	for _, tc := range cases {
		got, err := ParseDirection(tc.in)
		if (err != nil) != tc.err || got != tc.want {
			t.Errorf("ParseDirection(%q) = %v, %v", tc.in, got, err)
		}
	}
	if Horizontal.String() != "horizontal" || Vertical.String() != "vertical" {
		t.Error("Direction.String wrong")
	}
}
