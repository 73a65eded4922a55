package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/odvcencio/fluffyui/fluffy"
	"github.com/odvcencio/fluffyui/runtime"
	"github.com/odvcencio/fluffyui/state"
	"github.com/odvcencio/fluffyui/style"
	"github.com/odvcencio/fluffyui/terminal"
	"github.com/odvcencio/fluffyui/widgets"

	"github.com/odvcencio/scribe/commands"
	"github.com/odvcencio/scribe/config"
	"github.com/odvcencio/scribe/diagnostics"
	"github.com/odvcencio/scribe/editor"
	"github.com/odvcencio/scribe/session"
	"github.com/odvcencio/scribe/storage"
	"github.com/odvcencio/scribe/web"
)

// contentSlot is a simple wrapper widget whose child can be swapped at runtime.
type contentSlot struct {
	widgets.Base
	child runtime.Widget
}

func (c *contentSlot) Measure(constraints runtime.Constraints) runtime.Size {
	if c.child != nil {
		return c.child.Measure(constraints)
	}
	return runtime.Size{}
}

func (c *contentSlot) Layout(bounds runtime.Rect) {
	c.Base.Layout(bounds)
	if c.child != nil {
		c.child.Layout(bounds)
	}
}

func (c *contentSlot) Render(ctx runtime.RenderContext) {
	if c.child != nil {
		c.child.Render(ctx)
	}
}

func (c *contentSlot) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if c.child != nil {
		return c.child.HandleMessage(msg)
	}
	return runtime.Unhandled()
}

func (c *contentSlot) ChildWidgets() []runtime.Widget {
	if c.child != nil {
		return []runtime.Widget{c.child}
	}
	return nil
}

// globalKeys is an invisible widget that intercepts global key shortcuts.
type globalKeys struct {
	widgets.Base
	onKey func(key runtime.KeyMsg) runtime.HandleResult
}

func (g *globalKeys) Measure(runtime.Constraints) runtime.Size { return runtime.Size{} }
func (g *globalKeys) Render(runtime.RenderContext)             {}

func (g *globalKeys) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if key, ok := msg.(runtime.KeyMsg); ok && g.onKey != nil {
		return g.onKey(key)
	}
	return runtime.Unhandled()
}

// scribeApp wires the editing session to fluffyui widgets. Everything it
// holds is touched only under the event gate.
type scribeApp struct {
	sess   *session.Session
	store  storage.Gateway
	gate   *eventGate
	logger *slog.Logger
	theme  *style.Stylesheet
	root   string
	cancel context.CancelFunc

	areas    [2]*widgets.TextArea
	surfaces [2]*textSurface
	panes    *paneView
	tabBar   *tabBar
	panel    *diagnosticsPanel
	palette  *widgets.CommandPalette
	finder   *fileFinderWidget
	prompt   *promptWidget
	confirm  *confirmWidget
	status   *state.Signal[string]

	highlight highlightState
	syntax    []widgets.TextAreaHighlight
}

// runOptions carries everything the root command resolved.
type runOptions struct {
	cfg        config.Config
	paths      []string
	split      bool
	bridgeAddr string
	logger     *slog.Logger
	appOpts    []fluffy.AppOption
}

func newScribeApp(store storage.Gateway, root string, logger *slog.Logger) *scribeApp {
	a := &scribeApp{
		store:   store,
		gate:    &eventGate{},
		logger:  logger,
		root:    root,
		tabBar:  newTabBar(),
		panel:   newDiagnosticsPanel(),
		palette: widgets.NewCommandPalette(),
		finder:  newFileFinderWidget(),
		prompt:  newPromptWidget(),
		confirm: newConfirmWidget(),
		status:  state.NewSignal[string](" untitled"),
		cancel:  func() {},
	}
	a.areas[0] = newEditorArea("Editor")
	a.areas[1] = newEditorArea("Split")
	a.surfaces[0] = newTextSurface(a.areas[0])
	a.surfaces[1] = newTextSurface(a.areas[1])
	a.panes = newPaneView(a.areas[0], a.areas[1])
	return a
}

// attach creates the session and routes widget events into it.
func (a *scribeApp) attach(cfg config.Config, opts ...session.Option) {
	base := []session.Option{
		session.WithDispatch(a.gate.Run),
		session.WithTabs(a.tabBar),
		session.WithWorkingDir(a.root),
		session.WithStatusDelay(cfg.Status.ClearAfter.Duration),
		session.WithQuit(func() { a.cancel() }),
		session.WithOnChange(a.refresh),
		session.WithLogger(a.logger),
		session.WithDiagnostics(
			diagnostics.WithDelay(cfg.Diagnostics.Debounce.Duration),
			diagnostics.WithSelector(&diagnostics.Selector{TreeSitter: cfg.Diagnostics.TreeSitter}),
		),
	}
	a.sess = session.New(a.store, a, a.surfaces[0], a.surfaces[1], append(base, opts...)...)

	a.areas[0].SetOnChange(func(text string) { a.sess.TextChanged(editor.PanePrimary, text) })
	a.areas[1].SetOnChange(func(text string) { a.sess.TextChanged(editor.PaneSecondary, text) })
	a.panes.onFocus = a.sess.FocusPane
	a.panes.after = a.cursorCheck
	a.tabBar.onClick = a.sess.Switch
}

func (a *scribeApp) cursorCheck(p editor.Pane) {
	if c, ok := a.surfaces[p].moved(); ok {
		a.sess.CursorMoved(p, c)
	}
}

// refresh pushes the session view into the widgets.
func (a *scribeApp) refresh() {
	v := a.sess.Snapshot()
	a.panes.sync(v.Split, v.Direction, v.Pane)
	a.panel.set(v.Diagnostics, v.DiagnosticsExpanded)
	a.applyHighlights(v)
	a.status.Set(statusLine(v))
}

func (a *scribeApp) applyHighlights(v session.View) {
	b := a.sess.ActiveBuffer()
	if b == nil {
		a.highlight.setup("")
		a.syntax = nil
		for _, ta := range a.areas {
			ta.SetHighlights(nil)
		}
		return
	}
	text := b.Text()
	if a.highlight.setup(b.Name()) {
		if text != a.highlight.lastText || a.syntax == nil {
			a.syntax = syntaxHighlights(a.theme, text, a.highlight.highlight(text))
		}
	} else {
		a.syntax = nil
	}
	merged := append(append([]widgets.TextAreaHighlight(nil), a.syntax...), diagnosticHighlights(text, v.Diagnostics)...)
	for _, ta := range a.areas {
		ta.SetHighlights(merged)
	}
}

// statusLine renders the status bar text for v.
func statusLine(v session.View) string {
	if v.Active < 0 {
		return joinStatus(" no buffers", v.Status)
	}
	var sb strings.Builder
	sb.WriteString(" " + v.Name)
	if v.Dirty {
		sb.WriteString(" [modified]")
	}
	if lang := diagnostics.Language(v.Path); lang != "" {
		sb.WriteString("  " + strings.ToUpper(lang))
	}
	fmt.Fprintf(&sb, "  Ln %d, Col %d", v.Cursor.Line, v.Cursor.Col)
	if v.Cursor.Selection > 0 {
		fmt.Fprintf(&sb, "  Sel %d", v.Cursor.Selection)
	}
	if v.Split {
		fmt.Fprintf(&sb, "  split:%s [%s]", v.Direction, v.Pane)
	}
	switch n := len(v.Diagnostics); n {
	case 0:
	case 1:
		sb.WriteString("  1 problem")
	default:
		fmt.Fprintf(&sb, "  %d problems", n)
	}
	return joinStatus(sb.String(), v.Status)
}

func joinStatus(line, msg string) string {
	if msg == "" {
		return line
	}
	return line + "  │ " + msg
}

// Confirm shows a modal question. Escape answers Cancel.
func (a *scribeApp) Confirm(req session.ConfirmRequest, done func(session.Choice)) {
	labels := make([]string, len(req.Options))
	cancel := len(req.Options) - 1
	for i, c := range req.Options {
		labels[i] = c.String()
		if c == session.ChoiceCancel {
			cancel = i
		}
	}
	a.confirm.ask(dialog{
		title:   req.Title,
		message: req.Message,
		options: labels,
		cancel:  cancel,
		onChoose: func(i int) {
			if i < 0 || i >= len(req.Options) {
				done(session.ChoiceCancel)
				return
			}
			done(req.Options[i])
		},
	})
}

// PickFile shows the file finder for opens and the path prompt for saves.
// done runs exactly once.
func (a *scribeApp) PickFile(cfg session.PickerConfig, done func(string, bool)) {
	answered := false
	answer := func(p string, ok bool) {
		if answered {
			return
		}
		answered = true
		done(p, ok)
	}
	start := cfg.StartPath
	if start == "" {
		start = a.root
	}

	if cfg.Mode == session.PickSave {
		initial := start + "/"
		if cfg.DefaultName != "" {
			initial = path.Join(start, cfg.DefaultName)
		}
		a.prompt.open("Save as", initial,
			func(text string) { answer(text, text != "") },
			func() { answer("", false) })
		return
	}

	a.finder.onOpen = func(p string) { answer(p, p != "") }
	a.finder.onClose = func() { answer("", false) }
	a.finder.SetFiles(collectFinderFiles(a.store, start))
	a.finder.Show()
	a.finder.Focus()
}

// Notify reports an error in a modal alert.
func (a *scribeApp) Notify(err error) {
	if err == nil || errors.Is(err, session.ErrCancelled) {
		return
	}
	a.logger.Error("operation failed", "err", err)
	a.confirm.ask(dialog{title: "Error", message: err.Error(), options: []string{"OK"}})
}

// SetStatus is satisfied by refresh, which the session triggers after
// every status change.
func (a *scribeApp) SetStatus(string) {}

func (a *scribeApp) actions() commands.Actions {
	s := a.sess
	return commands.Actions{
		NewFile:         s.New,
		OpenFile:        s.Open,
		SaveFile:        s.Save,
		SaveFileAs:      s.SaveAs,
		CloseTab:        s.CloseActive,
		NextTab:         s.Next,
		PrevTab:         s.Prev,
		Revert:          s.Revert,
		ToggleSplit:     s.ToggleSplit,
		SplitVertical:   func() { a.splitAs(editor.Vertical) },
		SplitHorizontal: func() { a.splitAs(editor.Horizontal) },
		FocusOtherPane:  a.focusOther,
		Diagnostics:     s.ToggleDiagnostics,
		DeleteLine:      func() { s.ApplyLineOp(editor.DeleteLine) },
		DuplicateLine:   func() { s.ApplyLineOp(editor.DuplicateLine) },
		MoveLineUp:      func() { s.ApplyLineOp(editor.MoveLineUp) },
		MoveLineDown:    func() { s.ApplyLineOp(editor.MoveLineDown) },
		Quit:            s.Exit,
		OpenRecent:      func(p string) { _ = s.OpenPath(p) },
	}
}

func (a *scribeApp) splitAs(d editor.Direction) {
	a.sess.SetSplitDirection(d)
	if !a.sess.Split().Active() {
		a.sess.ToggleSplit()
	}
}

func (a *scribeApp) focusOther() {
	if !a.sess.Split().Active() {
		return
	}
	if a.sess.Split().Focused() == editor.PanePrimary {
		a.sess.FocusPane(editor.PaneSecondary)
	} else {
		a.sess.FocusPane(editor.PanePrimary)
	}
}

// showPalette rebuilds the palette so recent files stay current.
func (a *scribeApp) showPalette() {
	acts := a.actions()
	cmds := commands.AllCommands(acts)
	cmds = append(cmds, commands.RecentCommands(a.sess.Recent(), acts.OpenRecent)...)
	a.palette.SetCommands(cmds)
	a.palette.Show()
	a.palette.Focus()
}

func ctrlRune(key runtime.KeyMsg, r rune) bool {
	return key.Key == terminal.KeyRune && key.Ctrl && (key.Rune == r || key.Rune == r-'a'+'A')
}

func (a *scribeApp) handleKey(key runtime.KeyMsg) runtime.HandleResult {
	s := a.sess
	switch key.Key {
	case terminal.KeyCtrlS:
		s.Save()
		return runtime.Handled()
	case terminal.KeyCtrlN:
		s.New()
		return runtime.Handled()
	case terminal.KeyCtrlW:
		s.CloseActive()
		return runtime.Handled()
	case terminal.KeyCtrlQ:
		s.Exit()
		return runtime.Handled()
	case terminal.KeyCtrlP:
		s.Open()
		return runtime.Handled()
	case terminal.KeyUp:
		if key.Alt && !key.Shift {
			s.ApplyLineOp(editor.MoveLineUp)
			return runtime.Handled()
		}
	case terminal.KeyDown:
		if key.Alt && !key.Shift {
			s.ApplyLineOp(editor.MoveLineDown)
			return runtime.Handled()
		}
	case terminal.KeyPageUp:
		if key.Ctrl {
			s.Prev()
			return runtime.Handled()
		}
	case terminal.KeyPageDown:
		if key.Ctrl {
			s.Next()
			return runtime.Handled()
		}
	case terminal.KeyRune:
		switch {
		case key.Shift && ctrlRune(key, 'p'):
			a.showPalette()
		case key.Shift && ctrlRune(key, 's'):
			s.SaveAs()
		case key.Shift && ctrlRune(key, 'k'):
			s.ApplyLineOp(editor.DeleteLine)
		case key.Shift && ctrlRune(key, 'd'):
			s.ApplyLineOp(editor.DuplicateLine)
		case ctrlRune(key, 'o'):
			s.Open()
		case ctrlRune(key, 'e'):
			s.ToggleDiagnostics()
		case ctrlRune(key, 'k'):
			a.focusOther()
		case ctrlRune(key, 'r'):
			s.Revert()
		case key.Ctrl && key.Rune == '\\':
			s.ToggleSplit()
		default:
			return runtime.Unhandled()
		}
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

// build assembles the widget tree. The gated root holds the event gate for
// every UI turn.
func (a *scribeApp) build() runtime.Widget {
	statusBar := fluffy.ReactiveText(func() string {
		return a.status.Get()
	}, a.status)

	layout := fluffy.VFlex(
		fluffy.Fixed(a.tabBar),
		fluffy.Expanded(&contentSlot{child: a.panes}),
		fluffy.Fixed(a.panel),
		fluffy.Fixed(statusBar),
	)
	keys := &globalKeys{onKey: a.handleKey}

	// Modal widgets sit above the key interceptor so they see input first.
	stack := widgets.NewStack(layout, a.palette, a.finder, keys, a.prompt, a.confirm)
	return &gatedRoot{mu: &a.gate.mu, child: stack}
}

// startBridge serves the web bridge until ctx ends.
func (a *scribeApp) startBridge(ctx context.Context, addr string) {
	st := web.NewSessionState(a.sess, a.store, a.root, a.gate.Run)
	srv := &http.Server{Addr: addr, Handler: web.NewServer(st, a.logger)}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	go func() {
		a.logger.Info("web bridge listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("web bridge stopped", "err", err)
		}
	}()
}

// loadTheme reads and parses an FSS stylesheet through the gateway.
func loadTheme(store storage.Gateway, p, cwd string) (*style.Stylesheet, error) {
	if p == "" {
		return nil, nil
	}
	canon, err := editor.Canonicalize(p, cwd)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", p, err)
	}
	data, err := store.Read(canon)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", canon, err)
	}
	sheet, err := style.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", canon, err)
	}
	return sheet, nil
}

// run constructs the editor layout and starts the FluffyUI app.
func run(ctx context.Context, store storage.Gateway, root string, opts runOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := newScribeApp(store, root, opts.logger)
	a.cancel = cancel

	sheet, err := loadTheme(store, opts.cfg.Theme, root)
	if err != nil {
		a.logger.Warn("theme not loaded", "err", err)
	}
	appOpts := opts.appOpts
	if sheet != nil {
		a.theme = sheet
		appOpts = append(appOpts, fluffy.WithStylesheet(sheet))
		if gutter := sheet.ResolveClass("comment"); !gutter.IsZero() {
			for _, ta := range a.areas {
				ta.SetGutterStyle(gutter.ToBackend())
			}
		}
	}

	a.attach(opts.cfg)
	a.gate.Run(func() {
		if d, err := editor.ParseDirection(opts.cfg.Split.Direction); err == nil {
			a.sess.SetSplitDirection(d)
		}
		a.sess.Start(opts.paths)
		if opts.split {
			a.sess.ToggleSplit()
		}
		a.refresh()
	})

	if opts.bridgeAddr != "" {
		a.startBridge(ctx, opts.bridgeAddr)
	}

	setMCPActiveEditor(a)
	defer setMCPActiveEditor(nil)

	a.logger.Info("session started", "root", root, "files", len(opts.paths))
	defer a.logger.Info("session ended")
	return fluffy.RunContext(ctx, a.build(), appOpts...)
}
