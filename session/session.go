// Package session coordinates an editing session: the buffer registry, the
// split view, syntax diagnostics and the unsaved-changes workflow that gates
// every destructive action.
//
// A Session is single-threaded. Callers must deliver UI events and the
// callbacks passed to WithDispatch on one goroutine at a time.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/odvcencio/scribe/clock"
	"github.com/odvcencio/scribe/diagnostics"
	"github.com/odvcencio/scribe/editor"
	"github.com/odvcencio/scribe/storage"
)

// Session is the facade presentation code talks to.
type Session struct {
	reg      *editor.Registry
	split    *editor.Split
	recent   editor.RecentFiles
	engine   *diagnostics.Engine
	store    storage.Gateway
	ui       Presenter
	tabs     TabStrip
	status   *Status
	workflow *Workflow
	exit     exitSequence

	clock       clock.Clock
	dispatch    func(func())
	engineOpts  []diagnostics.Option
	statusDelay time.Duration
	cwd         string
	quit        func()
	onChange    func()
	logger      *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock driving the debounce and status timers.
func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithDispatch routes timer callbacks through fn, which must run them
// serialized with UI events.
func WithDispatch(fn func(func())) Option {
	return func(s *Session) {
		if fn != nil {
			s.dispatch = fn
		}
	}
}

// WithDiagnostics passes options to the diagnostics engine.
func WithDiagnostics(opts ...diagnostics.Option) Option {
	return func(s *Session) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithTabs attaches a tab strip.
func WithTabs(t TabStrip) Option {
	return func(s *Session) {
		if t != nil {
			s.tabs = t
		}
	}
}

// WithStatusDelay sets how long status messages stay up. Zero keeps them
// until replaced.
func WithStatusDelay(d time.Duration) Option {
	return func(s *Session) {
		s.statusDelay = d
	}
}

// WithWorkingDir sets the directory relative paths resolve against.
func WithWorkingDir(dir string) Option {
	return func(s *Session) {
		s.cwd = dir
	}
}

// WithQuit sets the hook called when the exit sequence completes.
func WithQuit(fn func()) Option {
	return func(s *Session) {
		s.quit = fn
	}
}

// WithOnChange sets a hook called after any state change visible to the
// presentation layer.
func WithOnChange(fn func()) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// WithLogger sets the session's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a session editing through the given surfaces and persisting
// through store.
func New(store storage.Gateway, ui Presenter, primary, secondary editor.Surface, opts ...Option) *Session {
	s := &Session{
		store:       store,
		ui:          ui,
		tabs:        noTabs{},
		clock:       clock.Real(),
		dispatch:    func(fn func()) { fn() },
		statusDelay: DefaultStatusDelay,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cwd, err := editor.Canonicalize(s.cwd, "/"); err == nil {
		s.cwd = cwd
	} else {
		s.cwd = "/"
	}

	s.reg = editor.NewRegistry()
	s.reg.Bind(primary)
	s.split = editor.NewSplit(s.reg, secondary)

	engineOpts := append([]diagnostics.Option{
		diagnostics.WithDispatch(s.dispatch),
		diagnostics.WithLogger(s.logger),
	}, s.engineOpts...)
	s.engine = diagnostics.NewEngine(s.clock, engineOpts...)
	s.engine.OnUpdate(func(diagnostics.Document) { s.changed() })

	s.status = newStatus(s.clock, s.statusDelay, s.dispatch, func(text string) {
		s.ui.SetStatus(text)
		s.changed()
	})
	s.workflow = newWorkflow(ui, s.SaveBuffer, s.logger)
	s.exit = exitSequence{s: s}
	return s
}

func (s *Session) Registry() *editor.Registry    { return s.reg }
func (s *Session) Split() *editor.Split          { return s.split }
func (s *Session) Engine() *diagnostics.Engine   { return s.engine }
func (s *Session) Status() *Status               { return s.status }
func (s *Session) Workflow() *Workflow           { return s.workflow }
func (s *Session) ActiveBuffer() *editor.Buffer  { return s.reg.ActiveBuffer() }
func (s *Session) WorkingDir() string            { return s.cwd }
func (s *Session) Recent() []string              { return s.recent.List() }
func (s *Session) Label(b *editor.Buffer) string { return s.reg.Label(b) }
func (s *Session) Buffers() []*editor.Buffer     { return s.reg.Buffers() }
func (s *Session) Exiting() bool                 { return s.exit.state != exitIdle }

// Start opens paths, or a fresh untitled buffer when there are none.
func (s *Session) Start(paths []string) {
	for _, p := range paths {
		s.OpenPath(p)
	}
	if s.reg.Count() == 0 {
		s.New()
	}
}

// New appends an untitled buffer and makes it active once the current
// buffer's changes are resolved.
func (s *Session) New() {
	cur := s.reg.ActiveBuffer()
	s.workflow.Guard(GuardRequest{
		Buffer: cur,
		Dirty:  cur != nil && cur.Dirty(),
		OnCancel: func() {
			s.tabs.SelectTab(s.reg.Active())
			s.status.Set("New file cancelled")
		},
		OnContinue: func() {
			idx := s.reg.NewUntitled()
			s.tabAdded(idx)
			s.engine.Refresh(s.reg.Buffer(idx))
			s.logger.Debug("new buffer", "name", s.reg.Buffer(idx).DisplayName())
			s.changed()
		},
	})
}

// Open asks for a file and opens it.
func (s *Session) Open() {
	start := s.cwd
	if b := s.reg.ActiveBuffer(); b != nil && b.SaveTarget() != "" {
		start = editor.ParentDir(b.SaveTarget())
	}
	s.ui.PickFile(PickerConfig{Mode: PickOpen, StartPath: start}, func(p string, ok bool) {
		if !ok {
			return
		}
		s.OpenPath(p)
	})
}

// OpenPath opens p, or switches to it if it is already open. A path that
// does not exist yet opens as an empty buffer that the first save creates.
// Errors are shown to the user and returned.
func (s *Session) OpenPath(p string) error {
	b, err := s.load(p)
	if err != nil {
		s.logger.Warn("open failed", "path", p, "err", err)
		s.ui.Notify(err)
		return err
	}
	if i := s.reg.Index(b); i >= 0 {
		s.touchRecent(b)
		s.Switch(i)
		return nil
	}

	replace := s.pristine()
	cur := s.reg.ActiveBuffer()
	s.workflow.Guard(GuardRequest{
		Buffer: cur,
		Dirty:  cur != nil && cur.Dirty(),
		OnCancel: func() {
			s.tabs.SelectTab(s.reg.Active())
			s.status.Set("Open cancelled")
		},
		OnContinue: func() {
			if replace != nil {
				s.remove(replace)
			}
			idx := s.reg.Add(b, true)
			s.tabAdded(idx)
			s.touchRecent(b)
			s.engine.Refresh(b)
			s.logger.Info("opened", "path", b.SaveTarget(), "new", b.Path() == "")
			s.status.Set("Opened " + b.DisplayName())
			s.changed()
		},
	})
	return nil
}

// touchRecent records b in the recent list once it exists on disk. Pending
// buffers are recorded by their first save.
func (s *Session) touchRecent(b *editor.Buffer) {
	if p := b.Path(); p != "" {
		s.recent.Touch(p)
	}
}

// load resolves p to an open buffer or a new, unregistered one.
func (s *Session) load(p string) (*editor.Buffer, error) {
	if strings.TrimSpace(p) == "" {
		return nil, fmt.Errorf("open: %w", ErrInvalidPath)
	}
	path, err := editor.Canonicalize(p, s.cwd)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", p, err)
	}
	if i := s.reg.FindByPath(path); i >= 0 {
		return s.reg.Buffer(i), nil
	}
	if s.store.IsDir(path) {
		return nil, fmt.Errorf("open %s: %w", path, ErrDirectoryConflict)
	}
	if !s.store.Exists(path) {
		return editor.NewPendingBuffer(path), nil
	}
	text, err := s.store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, ErrIO, err)
	}
	return editor.NewFileBuffer(path, text), nil
}

// pristine returns the active buffer when it is an untouched untitled
// buffer that opening a file may replace.
func (s *Session) pristine() *editor.Buffer {
	b := s.reg.ActiveBuffer()
	if b == nil || !b.Untitled() || b.Dirty() || b.Text() != "" {
		return nil
	}
	return b
}

// Save writes the active buffer, asking for a path if it has none.
func (s *Session) Save() {
	if b := s.reg.ActiveBuffer(); b != nil {
		s.SaveBuffer(b, nil)
	}
}

// SaveAs writes the active buffer to a newly chosen path.
func (s *Session) SaveAs() {
	if b := s.reg.ActiveBuffer(); b != nil {
		s.saveAs(b, nil)
	}
}

// SaveBuffer writes b to its path, or asks for one when it is untitled.
// done, if set, receives nil once the buffer is written, ErrCancelled when
// the path picker was dismissed, or the write error, which has already
// been shown to the user.
func (s *Session) SaveBuffer(b *editor.Buffer, done func(error)) {
	if target := b.SaveTarget(); target != "" {
		finish(done, s.writeBuffer(b, target))
		return
	}
	s.saveAs(b, done)
}

func (s *Session) saveAs(b *editor.Buffer, done func(error)) {
	start := s.cwd
	if t := b.SaveTarget(); t != "" {
		start = editor.ParentDir(t)
	}
	s.ui.PickFile(PickerConfig{Mode: PickSave, StartPath: start, DefaultName: b.DisplayName()}, func(p string, ok bool) {
		if !ok {
			s.logger.Debug("save cancelled", "buffer", b.DisplayName())
			finish(done, fmt.Errorf("save %s: %w", b.DisplayName(), ErrCancelled))
			return
		}
		if path, err := editor.Canonicalize(p, start); err == nil && strings.TrimSpace(p) != "" {
			p = path
		}
		finish(done, s.writeBuffer(b, p))
	})
}

// SaveTo writes b to p and reports failures to the caller instead of the
// user.
func (s *Session) SaveTo(b *editor.Buffer, p string) error {
	return s.write(b, p)
}

func (s *Session) writeBuffer(b *editor.Buffer, p string) error {
	err := s.write(b, p)
	if err != nil {
		s.logger.Warn("save failed", "path", p, "err", err)
		s.ui.Notify(err)
	}
	return err
}

// write persists b at p. Nothing about b changes unless the write succeeds.
func (s *Session) write(b *editor.Buffer, p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("save: %w", ErrInvalidPath)
	}
	path, err := editor.Canonicalize(p, s.cwd)
	if err != nil {
		return fmt.Errorf("save %q: %w", p, err)
	}
	if i := s.reg.FindByPath(path); i >= 0 && s.reg.Buffer(i) != b {
		return fmt.Errorf("save %s: %w", path, ErrAlreadyOpen)
	}
	if s.store.IsDir(path) {
		return fmt.Errorf("save %s: %w", path, ErrDirectoryConflict)
	}
	if dir := editor.ParentDir(path); !s.store.IsDir(dir) {
		if err := s.store.MakeDir(dir); err != nil {
			return fmt.Errorf("save %s: %w: %w", path, ErrIO, err)
		}
	}
	if err := s.store.Write(path, b.Text()); err != nil {
		return fmt.Errorf("save %s: %w: %w", path, ErrIO, err)
	}

	renamed := b.Path() != path
	b.MarkSaved(path)
	s.recent.Touch(path)
	s.relabel(b)
	if renamed {
		s.engine.Refresh(b)
	}
	s.logger.Info("saved", "path", path, "bytes", len(b.Text()))
	s.status.Set("Saved " + b.DisplayName())
	s.changed()
	return nil
}

// Close removes the buffer at index once its changes are resolved.
func (s *Session) Close(index int) {
	b := s.reg.Buffer(index)
	if b == nil {
		return
	}
	s.workflow.Guard(GuardRequest{
		Buffer:     b,
		Dirty:      b.Dirty(),
		OnContinue: func() { s.remove(b) },
		OnCancel: func() {
			s.tabs.SelectTab(s.reg.Active())
			s.status.Set("Close cancelled")
		},
	})
}

// CloseActive closes the active buffer.
func (s *Session) CloseActive() {
	s.Close(s.reg.Active())
}

func (s *Session) remove(b *editor.Buffer) {
	i := s.reg.Index(b)
	if i < 0 {
		return
	}
	s.engine.Forget(b)
	s.reg.Remove(i)
	s.tabs.RemoveTab(i)
	if s.reg.Count() == 0 {
		s.split.Disable()
	} else {
		s.tabs.SelectTab(s.reg.Active())
	}
	s.logger.Debug("closed", "name", b.DisplayName(), "remaining", s.reg.Count())
	s.changed()
}

// Switch makes the buffer at index active once the current buffer's
// changes are resolved. The tab strip shows the target immediately and
// reverts if the switch is cancelled.
func (s *Session) Switch(index int) {
	target := s.reg.Buffer(index)
	prev := s.reg.Active()
	if target == nil || index == prev {
		return
	}
	cur := s.reg.ActiveBuffer()
	s.tabs.SelectTab(index)
	s.workflow.Guard(GuardRequest{
		Buffer: cur,
		Dirty:  cur != nil && cur.Dirty(),
		OnContinue: func() {
			s.activate(s.reg.Index(target))
		},
		OnCancel: func() {
			s.tabs.SelectTab(s.reg.Active())
		},
	})
}

// Next switches to the following tab, wrapping around.
func (s *Session) Next() {
	if n := s.reg.Count(); n > 1 {
		s.Switch((s.reg.Active() + 1) % n)
	}
}

// Prev switches to the preceding tab, wrapping around.
func (s *Session) Prev() {
	if n := s.reg.Count(); n > 1 {
		s.Switch((s.reg.Active() - 1 + n) % n)
	}
}

func (s *Session) activate(index int) {
	if !s.reg.Activate(index, false) {
		return
	}
	s.tabs.SelectTab(index)
	s.changed()
}

// Revert restores the active buffer from disk, or empties an unsaved one.
func (s *Session) Revert() {
	b := s.reg.ActiveBuffer()
	if b == nil {
		return
	}
	s.workflow.Guard(GuardRequest{
		Buffer: b,
		Dirty:  b.Dirty(),
		OnContinue: func() {
			if p := b.Path(); p != "" {
				text, err := s.store.Read(p)
				if err != nil {
					err = fmt.Errorf("revert %s: %w: %w", p, ErrIO, err)
					s.logger.Warn("revert failed", "err", err)
					s.ui.Notify(err)
					return
				}
				b.Reload(text)
			} else {
				b.Discard()
			}
			s.afterTextReset(b)
			s.status.Set("Reverted " + b.DisplayName())
		},
	})
}

// afterTextReset rebinds and rechecks b after its text was replaced
// wholesale.
func (s *Session) afterTextReset(b *editor.Buffer) {
	if b == s.reg.ActiveBuffer() {
		s.reg.Reload()
	}
	s.engine.Refresh(b)
	s.relabel(b)
	s.changed()
}

// Exit resolves every dirty buffer in tab order and then calls the quit
// hook. Cancelling any prompt aborts the exit.
func (s *Session) Exit() {
	s.exit.start()
}

// ToggleSplit shows or hides the secondary pane.
func (s *Session) ToggleSplit() {
	if s.split.Active() {
		s.split.Disable()
	} else if err := s.split.Enable(); err != nil {
		s.status.Set("Nothing to split")
		return
	}
	s.changed()
}

// SetSplitDirection changes the split layout.
func (s *Session) SetSplitDirection(d editor.Direction) {
	s.split.SetDirection(d)
	s.changed()
}

// FocusPane moves input focus to pane.
func (s *Session) FocusPane(p editor.Pane) {
	if s.split.Focus(p) {
		s.changed()
	}
}

// ToggleDiagnostics opens or closes the active buffer's diagnostics panel.
func (s *Session) ToggleDiagnostics() {
	b := s.reg.ActiveBuffer()
	if b == nil {
		return
	}
	b.SetDiagnosticsExpanded(!b.DiagnosticsExpanded())
	s.changed()
}

// TextChanged handles a change event from a surface. Events raised by the
// session's own surface writes are ignored.
func (s *Session) TextChanged(pane editor.Pane, text string) {
	if s.reg.Writing() || s.split.Suppressing() {
		return
	}
	b := s.reg.ActiveBuffer()
	if b == nil || b.Text() == text {
		return
	}
	b.SetText(text)
	s.split.Mirror(pane, text)
	s.engine.Schedule(b)
	s.relabel(b)
	s.changed()
}

// CursorMoved handles a cursor-move event from a surface.
func (s *Session) CursorMoved(pane editor.Pane, c editor.Cursor) {
	if s.reg.Writing() {
		return
	}
	b := s.reg.ActiveBuffer()
	if b == nil {
		return
	}
	if pane == editor.PaneSecondary {
		if !s.split.Active() {
			return
		}
		b.SetSplitCursor(c)
	} else {
		b.SetCursor(c)
	}
	s.changed()
}

// SetBufferText replaces b's text from outside the surfaces.
func (s *Session) SetBufferText(b *editor.Buffer, text string) {
	if s.reg.Index(b) < 0 {
		return
	}
	b.SetText(text)
	if b == s.reg.ActiveBuffer() {
		s.reg.Reload()
	}
	s.engine.Schedule(b)
	s.relabel(b)
	s.changed()
}

// ApplyLineOp edits the line under the focused pane's cursor.
func (s *Session) ApplyLineOp(op editor.LineOp) {
	b := s.reg.ActiveBuffer()
	if b == nil {
		return
	}
	pane := s.split.Focused()
	surface := s.split.Surface(pane)
	if surface == nil {
		return
	}
	text, c, ok := editor.ApplyLineOp(b.Text(), surface.Cursor(), op)
	if !ok {
		return
	}
	b.SetText(text)
	s.reg.Reload()
	surface.SetCursor(c)
	if pane == editor.PaneSecondary {
		b.SetSplitCursor(c)
	} else {
		b.SetCursor(c)
	}
	s.engine.Schedule(b)
	s.relabel(b)
	s.changed()
}

func (s *Session) tabAdded(index int) {
	s.tabs.AddTab(s.reg.Label(s.reg.Buffer(index)))
	s.tabs.SelectTab(s.reg.Active())
}

func (s *Session) relabel(b *editor.Buffer) {
	if i := s.reg.Index(b); i >= 0 {
		s.tabs.RelabelTab(i, s.reg.Label(b))
	}
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func finish(done func(error), err error) {
	if done != nil {
		done(err)
	}
}
