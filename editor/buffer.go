package editor

import (
	"github.com/odvcencio/scribe/diagnostics"
)

// Buffer holds the full edit state of one open document: its text, the last
// persisted snapshot, both panes' cursors, and the latest diagnostics.
type Buffer struct {
	id          int
	path        string // canonical path, or "" if never saved or loaded
	pendingPath string // path the buffer was created for but not yet written
	displayName string
	text        string // current text content
	savedText   string // text at last save/open (for dirty comparison)
	hasSaved    bool   // false until the buffer has a persisted snapshot
	dirty       bool

	cursor      Cursor
	splitCursor Cursor

	diagnostics         []diagnostics.Diagnostic
	diagnosticsExpanded bool
}

// NewBuffer creates a new empty, untitled buffer named name.
func NewBuffer(name string) *Buffer {
	return &Buffer{
		displayName: name,
		cursor:      Origin,
		splitCursor: Origin,
	}
}

// NewFileBuffer creates a buffer for a file that was read from path.
func NewFileBuffer(path, text string) *Buffer {
	b := NewBuffer(DisplayName(path))
	b.path = path
	b.text = text
	b.savedText = text
	b.hasSaved = true
	return b
}

// NewPendingBuffer creates an empty buffer for a path that does not exist
// yet. The first save writes to that path.
func NewPendingBuffer(path string) *Buffer {
	b := NewBuffer(DisplayName(path))
	b.pendingPath = path
	return b
}

// ID returns the registry-assigned identity, or 0 if the buffer was never
// added to a registry.
func (b *Buffer) ID() int {
	return b.id
}

// Path returns the canonical file path, or "" if the buffer has never been
// written or read.
func (b *Buffer) Path() string {
	return b.path
}

// PendingPath returns the path the buffer was created for, if it has not
// been written yet.
func (b *Buffer) PendingPath() string {
	return b.pendingPath
}

// SaveTarget returns where a plain save writes: the path, then the pending
// path, then "" for untitled buffers.
func (b *Buffer) SaveTarget() string {
	if b.path != "" {
		return b.path
	}
	return b.pendingPath
}

// DisplayName returns the user-facing name.
func (b *Buffer) DisplayName() string {
	return b.displayName
}

// Name identifies the document for checkers: the save target when there is
// one, otherwise the display name.
func (b *Buffer) Name() string {
	if target := b.SaveTarget(); target != "" {
		return target
	}
	return b.displayName
}

// Untitled reports whether the buffer has neither a path nor a pending path.
func (b *Buffer) Untitled() bool {
	return b.path == "" && b.pendingPath == ""
}

// Text returns the current text content of the buffer.
func (b *Buffer) Text() string {
	return b.text
}

// SetText updates the buffer's text content and the cached dirty flag.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.dirty = b.text != b.savedText
}

// SavedText returns the last persisted snapshot and whether there is one.
func (b *Buffer) SavedText() (string, bool) {
	return b.savedText, b.hasSaved
}

// Dirty reports whether the buffer's text differs from the last saved or
// opened text. A buffer without a snapshot compares against "".
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// MarkSaved records that the current text was written to path.
func (b *Buffer) MarkSaved(path string) {
	b.path = path
	b.pendingPath = ""
	b.displayName = DisplayName(path)
	b.savedText = b.text
	b.hasSaved = true
	b.dirty = false
}

// Reload replaces both the text and the snapshot, as after re-reading the
// file from disk.
func (b *Buffer) Reload(text string) {
	b.text = text
	b.savedText = text
	b.hasSaved = b.path != ""
	b.dirty = false
}

// Discard drops unsaved edits by restoring the last snapshot.
func (b *Buffer) Discard() {
	b.SetText(b.savedText)
}

// Cursor returns the primary pane's cursor as of the last sync-out.
func (b *Buffer) Cursor() Cursor {
	return b.cursor
}

// SetCursor stores the primary pane's cursor.
func (b *Buffer) SetCursor(c Cursor) {
	b.cursor = c
}

// SplitCursor returns the secondary pane's cursor as of the last sync-out.
func (b *Buffer) SplitCursor() Cursor {
	return b.splitCursor
}

// SetSplitCursor stores the secondary pane's cursor.
func (b *Buffer) SetSplitCursor(c Cursor) {
	b.splitCursor = c
}

// Diagnostics returns the result of the last completed syntax check.
func (b *Buffer) Diagnostics() []diagnostics.Diagnostic {
	return b.diagnostics
}

// SetDiagnostics replaces the buffer's diagnostics.
func (b *Buffer) SetDiagnostics(d []diagnostics.Diagnostic) {
	b.diagnostics = d
}

// DiagnosticsExpanded reports whether the diagnostics panel is open for
// this buffer.
func (b *Buffer) DiagnosticsExpanded() bool {
	return b.diagnosticsExpanded
}

// SetDiagnosticsExpanded opens or closes the diagnostics panel for this
// buffer.
func (b *Buffer) SetDiagnosticsExpanded(expanded bool) {
	b.diagnosticsExpanded = expanded
}
