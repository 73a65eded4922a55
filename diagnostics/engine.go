package diagnostics

import (
	"io"
	"log/slog"
	"time"

	"github.com/odvcencio/scribe/clock"
)

// DefaultDelay is the debounce window between the last edit and a check.
const DefaultDelay = 200 * time.Millisecond

// Engine debounces syntax checks. It holds a single pending timer: a new
// Schedule call replaces whatever was pending, so a burst of edits results
// in one computation after the last edit.
//
// Engine is not safe for concurrent use. Timer callbacks are routed through
// the dispatch function so that they run on the same event turn discipline
// as UI callbacks.
type Engine struct {
	clock    clock.Clock
	delay    time.Duration
	selector *Selector
	checker  Checker
	dispatch func(func())
	onUpdate func(Document)
	logger   *slog.Logger

	timer      *clock.Timer
	generation uint64
	pending    Document
}

// Option configures an Engine.
type Option func(*Engine)

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithSelector sets the checker selector.
func WithSelector(s *Selector) Option {
	return func(e *Engine) {
		if s != nil {
			e.selector = s
		}
	}
}

// WithChecker forces every document through c, bypassing the selector.
func WithChecker(c Checker) Option {
	return func(e *Engine) {
		e.checker = c
	}
}

// WithDispatch routes timer callbacks through fn instead of running them
// on the timer's goroutine.
func WithDispatch(fn func(func())) Option {
	return func(e *Engine) {
		if fn != nil {
			e.dispatch = fn
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine driven by c.
func NewEngine(c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		clock:    c,
		delay:    DefaultDelay,
		selector: DefaultSelector(),
		dispatch: func(fn func()) { fn() },
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnUpdate registers a callback invoked after every computation.
func (e *Engine) OnUpdate(fn func(Document)) {
	e.onUpdate = fn
}

// Delay returns the debounce window.
func (e *Engine) Delay() time.Duration {
	return e.delay
}

// Schedule cancels any pending computation and arms a new one for doc.
// The document's text is read when the timer fires, not now.
func (e *Engine) Schedule(doc Document) {
	if doc == nil {
		return
	}
	e.stop()
	e.generation++
	gen := e.generation
	e.pending = doc
	e.timer = e.clock.AfterFunc(e.delay, func() {
		e.dispatch(func() { e.fire(gen) })
	})
}

func (e *Engine) fire(gen uint64) {
	if gen != e.generation || e.pending == nil {
		return
	}
	doc := e.pending
	e.pending = nil
	e.timer = nil
	e.Compute(doc)
}

// Pending reports whether a computation is armed.
func (e *Engine) Pending() bool {
	return e.pending != nil
}

// Cancel drops any pending computation.
func (e *Engine) Cancel() {
	e.stop()
	e.generation++
}

// Forget cancels the pending computation if it targets doc.
func (e *Engine) Forget(doc Document) {
	if e.pending != nil && e.pending == doc {
		e.Cancel()
	}
}

// Refresh cancels any pending computation and checks doc immediately.
func (e *Engine) Refresh(doc Document) []Diagnostic {
	e.Cancel()
	return e.Compute(doc)
}

// Compute checks doc's current text and stores the result on doc. It never
// returns more than one diagnostic.
func (e *Engine) Compute(doc Document) []Diagnostic {
	if doc == nil {
		return nil
	}
	name := doc.Name()
	checker := e.checker
	if checker == nil {
		checker = e.selector.For(name)
	}
	err := checker.Check(name, []byte(doc.Text()))

	diags := []Diagnostic{}
	if err != nil {
		d := ParseError(err.Error())
		diags = append(diags, d)
		e.logger.Debug("syntax check failed", "doc", name, "line", d.Line, "message", d.Message)
	}
	doc.SetDiagnostics(diags)
	if e.onUpdate != nil {
		e.onUpdate(doc)
	}
	return diags
}

func (e *Engine) stop() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.pending = nil
}
