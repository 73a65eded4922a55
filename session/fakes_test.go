package session

import (
	"testing"
	"time"

	"github.com/odvcencio/scribe/clock"
	"github.com/odvcencio/scribe/diagnostics"
	"github.com/odvcencio/scribe/editor"
	"github.com/odvcencio/scribe/storage"
)

// fakeSurface behaves like a text widget: every SetText raises a change
// event, whoever made it.
type fakeSurface struct {
	text     string
	cursor   editor.Cursor
	onChange func(string)
}

func (f *fakeSurface) Text() string { return f.text }

func (f *fakeSurface) SetText(text string) {
	f.text = text
	if f.onChange != nil {
		f.onChange(text)
	}
}

func (f *fakeSurface) Cursor() editor.Cursor { return f.cursor }

func (f *fakeSurface) SetCursor(c editor.Cursor) { f.cursor = c }

// fakeUI records prompts and leaves them open until the test answers.
type fakeUI struct {
	confirms []ConfirmRequest
	pending  func(Choice)

	picks      []PickerConfig
	pickPath   string
	pickOK     bool
	pickScript bool

	errs   []error
	status string
}

func (u *fakeUI) Confirm(req ConfirmRequest, done func(Choice)) {
	u.confirms = append(u.confirms, req)
	u.pending = done
}

func (u *fakeUI) PickFile(cfg PickerConfig, done func(string, bool)) {
	u.picks = append(u.picks, cfg)
	if u.pickScript {
		done(u.pickPath, u.pickOK)
	}
}

func (u *fakeUI) Notify(err error) { u.errs = append(u.errs, err) }

func (u *fakeUI) SetStatus(text string) { u.status = text }

// answer resolves the open prompt.
func (u *fakeUI) answer(t *testing.T, c Choice) {
	t.Helper()
	if u.pending == nil {
		t.Fatalf("no prompt open to answer %v", c)
	}
	done := u.pending
	u.pending = nil
	done(c)
}

// scriptPick makes every picker answer immediately.
func (u *fakeUI) scriptPick(path string, ok bool) {
	u.pickScript = true
	u.pickPath = path
	u.pickOK = ok
}

type fakeTabs struct {
	labels   []string
	selected int
}

func (f *fakeTabs) AddTab(label string) { f.labels = append(f.labels, label) }

func (f *fakeTabs) RemoveTab(i int) { f.labels = append(f.labels[:i], f.labels[i+1:]...) }

func (f *fakeTabs) SelectTab(i int) { f.selected = i }

func (f *fakeTabs) RelabelTab(i int, label string) { f.labels[i] = label }

type fixture struct {
	s         *Session
	ui        *fakeUI
	tabs      *fakeTabs
	store     *storage.Memory
	clock     *clock.FakeClock
	primary   *fakeSurface
	secondary *fakeSurface
	quits     int
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		ui:        &fakeUI{},
		tabs:      &fakeTabs{},
		store:     storage.NewMemory(),
		clock:     clock.Fake(time.Unix(0, 0)),
		primary:   &fakeSurface{cursor: editor.Origin},
		secondary: &fakeSurface{cursor: editor.Origin},
	}
	f.store.AddDir("/proj")
	base := []Option{
		WithClock(f.clock),
		WithTabs(f.tabs),
		WithWorkingDir("/proj"),
		WithQuit(func() { f.quits++ }),
		WithDiagnostics(diagnostics.WithSelector(&diagnostics.Selector{TreeSitter: false})),
	}
	f.s = New(f.store, f.ui, f.primary, f.secondary, append(base, opts...)...)
	f.primary.onChange = func(text string) { f.s.TextChanged(editor.PanePrimary, text) }
	f.secondary.onChange = func(text string) { f.s.TextChanged(editor.PaneSecondary, text) }
	return f
}

// typeInto simulates the user editing pane.
func (f *fixture) typeInto(pane editor.Pane, text string) {
	s := f.primary
	if pane == editor.PaneSecondary {
		s = f.secondary
	}
	s.SetText(text)
}

func (f *fixture) open(t *testing.T, path string) *editor.Buffer {
	t.Helper()
	if err := f.s.OpenPath(path); err != nil {
		t.Fatalf("OpenPath(%s): %v", path, err)
	}
	b := f.s.ActiveBuffer()
	if b == nil || b.SaveTarget() != path {
		t.Fatalf("active buffer after open = %+v", b)
	}
	return b
}
