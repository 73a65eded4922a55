package editor

import "fmt"

// Registry tracks open buffers in tab order, which one is active, and binds
// the active buffer into the editing surfaces. It is the single source of
// truth for the session's documents.
type Registry struct {
	buffers      []*Buffer
	active       int // index of active buffer, or -1 if none
	nextID       int
	nextUntitled int

	primary   Surface
	secondary Surface // non-nil only while the split view is on
	guard     writeGuard
}

// NewRegistry creates a Registry with no open buffers.
func NewRegistry() *Registry {
	return &Registry{active: -1}
}

// Bind attaches the primary editing surface and loads the active buffer
// into it.
func (r *Registry) Bind(primary Surface) {
	r.primary = primary
	r.syncIn()
}

// Writing reports whether the registry or the split coordinator is writing
// into a surface. Change events raised meanwhile are echoes.
func (r *Registry) Writing() bool {
	return r.guard.active()
}

// Count returns the number of open buffers.
func (r *Registry) Count() int {
	return len(r.buffers)
}

// Active returns the index of the active buffer, or -1 if there are no open
// buffers.
func (r *Registry) Active() int {
	return r.active
}

// ActiveBuffer returns the currently active buffer, or nil if there are no
// open buffers.
func (r *Registry) ActiveBuffer() *Buffer {
	return r.Buffer(r.active)
}

// Buffer returns the buffer at the given index, or nil if the index is out
// of range.
func (r *Registry) Buffer(index int) *Buffer {
	if index < 0 || index >= len(r.buffers) {
		return nil
	}
	return r.buffers[index]
}

// Buffers returns all open buffers in tab order.
func (r *Registry) Buffers() []*Buffer {
	return r.buffers
}

// Index returns the tab index of b, or -1.
func (r *Registry) Index(b *Buffer) int {
	for i, buf := range r.buffers {
		if buf == b {
			return i
		}
	}
	return -1
}

// FindByPath returns the index of the buffer whose canonical path or
// pending path equals path, or -1.
func (r *Registry) FindByPath(path string) int {
	if path == "" {
		return -1
	}
	for i, buf := range r.buffers {
		if buf.SaveTarget() == path {
			return i
		}
	}
	return -1
}

// Label is the tab title for b.
func (r *Registry) Label(b *Buffer) string {
	if b.Dirty() {
		return "* " + b.DisplayName()
	}
	return b.DisplayName()
}

// Add appends b, assigns its identity and returns its index. The buffer
// becomes active when selected or when it is the only one.
func (r *Registry) Add(b *Buffer, selected bool) int {
	r.nextID++
	b.id = r.nextID
	r.buffers = append(r.buffers, b)
	index := len(r.buffers) - 1
	if selected || r.active < 0 {
		r.Activate(index, true)
	}
	return index
}

// NewUntitled appends an empty buffer named "untitled-N", activates it and
// returns its index.
func (r *Registry) NewUntitled() int {
	r.nextUntitled++
	return r.Add(NewBuffer(fmt.Sprintf("untitled-%d", r.nextUntitled)), true)
}

// Activate makes the buffer at index active. The outgoing buffer receives
// the surfaces' text and cursors first; the incoming one is then bound into
// them. Activating the already active buffer is a no-op unless forced.
// Returns false if index is out of range.
func (r *Registry) Activate(index int, force bool) bool {
	if index < 0 || index >= len(r.buffers) {
		return false
	}
	if index == r.active && !force {
		return true
	}
	if index != r.active {
		r.SyncOut()
	}
	r.active = index
	r.syncIn()
	return true
}

// SyncOut copies the surfaces' state into the active buffer.
func (r *Registry) SyncOut() {
	b := r.ActiveBuffer()
	if b == nil {
		return
	}
	if r.primary != nil {
		if text := r.primary.Text(); text != b.Text() {
			b.SetText(text)
		}
		b.SetCursor(r.primary.Cursor())
	}
	if r.secondary != nil {
		b.SetSplitCursor(r.secondary.Cursor())
	}
}

// Reload rebinds the active buffer after its text changed outside the
// surfaces, as on revert or an external write. The surfaces keep their
// cursors, clamped into the new text.
func (r *Registry) Reload() {
	if b := r.ActiveBuffer(); b != nil {
		if r.primary != nil {
			b.SetCursor(r.primary.Cursor())
		}
		if r.secondary != nil {
			b.SetSplitCursor(r.secondary.Cursor())
		}
	}
	r.syncIn()
}

func (r *Registry) syncIn() {
	b := r.ActiveBuffer()
	r.guard.run(func() {
		if b == nil {
			if r.primary != nil {
				bind(r.primary, "", Origin)
			}
			return
		}
		if r.primary != nil {
			bind(r.primary, b.Text(), b.Cursor())
		}
		if r.secondary != nil {
			bind(r.secondary, b.Text(), b.SplitCursor())
		}
	})
}

// Remove removes the buffer at index and returns it, or nil if the index is
// out of range. After removal the active index is adjusted:
//   - If the removed buffer was before the active one, active shifts down.
//   - If the removed buffer was active, the buffer now at its index (or the
//     last one) becomes active and is bound into the surfaces.
//   - If no buffers remain, active becomes -1 and the surface is cleared.
func (r *Registry) Remove(index int) *Buffer {
	if index < 0 || index >= len(r.buffers) {
		return nil
	}
	removed := r.buffers[index]
	r.buffers = append(r.buffers[:index], r.buffers[index+1:]...)

	if len(r.buffers) == 0 {
		r.active = -1
		r.secondary = nil
		r.syncIn()
		return removed
	}

	switch {
	case index < r.active:
		r.active--
	case index == r.active:
		if r.active >= len(r.buffers) {
			r.active = len(r.buffers) - 1
		}
		r.syncIn()
	}
	return removed
}
