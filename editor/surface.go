package editor

// Surface is an editing widget the registry binds buffers into. Text and
// cursor writes made by the registry or the split coordinator are internal
// writes: any change event they raise must be ignored by the caller while
// Registry.Writing reports true.
type Surface interface {
	Text() string
	SetText(text string)
	Cursor() Cursor
	SetCursor(c Cursor)
}

// writeGuard counts nested internal writes.
type writeGuard struct {
	depth int
}

func (g *writeGuard) run(fn func()) {
	g.depth++
	defer func() { g.depth-- }()
	fn()
}

func (g *writeGuard) active() bool {
	return g.depth > 0
}

// bind loads text and a clamped cursor into s.
func bind(s Surface, text string, c Cursor) {
	s.SetText(text)
	s.SetCursor(ClampCursor(text, c))
}
