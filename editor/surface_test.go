package editor

// fakeSurface is an in-memory Surface that records how often it was written.
type fakeSurface struct {
	text   string
	cursor Cursor
	writes int

	// onChange runs after every SetText, like a widget's change callback.
	onChange func(text string)
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{cursor: Origin}
}

func (f *fakeSurface) Text() string { return f.text }

func (f *fakeSurface) SetText(text string) {
	f.text = text
	f.writes++
	if f.onChange != nil {
		f.onChange(text)
	}
}

func (f *fakeSurface) Cursor() Cursor { return f.cursor }

func (f *fakeSurface) SetCursor(c Cursor) { f.cursor = c }

// typeText simulates a user edit: the text changes and the change callback
// fires.
func (f *fakeSurface) typeText(text string, c Cursor) {
	f.cursor = c
	f.SetText(text)
	f.writes--
}
