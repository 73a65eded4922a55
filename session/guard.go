package session

import (
	"fmt"
	"log/slog"

	"github.com/odvcencio/scribe/editor"
)

// GuardRequest describes a destructive action waiting on a buffer's unsaved
// changes.
type GuardRequest struct {
	Buffer *editor.Buffer
	Dirty  bool

	// OnContinue runs once the changes are saved or discarded.
	OnContinue func()
	// OnCancel runs when the action is dropped. It should undo any
	// selection change made in anticipation of the action.
	OnCancel func()
}

// Workflow gates destructive actions behind a Save/Discard/Cancel prompt.
// Only one prompt is open at a time; requests arriving while one is open
// are cancelled.
type Workflow struct {
	ui     Presenter
	save   func(b *editor.Buffer, done func(error))
	logger *slog.Logger
	busy   bool
}

func newWorkflow(ui Presenter, save func(*editor.Buffer, func(error)), logger *slog.Logger) *Workflow {
	return &Workflow{ui: ui, save: save, logger: logger}
}

// Busy reports whether a prompt is waiting for an answer.
func (w *Workflow) Busy() bool {
	return w.busy
}

// Guard runs req.OnContinue immediately when the buffer is clean and
// otherwise asks the user first.
func (w *Workflow) Guard(req GuardRequest) {
	if !req.Dirty {
		call(req.OnContinue)
		return
	}
	if w.busy {
		w.logger.Debug("guard: prompt already open")
		call(req.OnCancel)
		return
	}

	w.busy = true
	name := "this buffer"
	if req.Buffer != nil {
		name = req.Buffer.DisplayName()
	}
	w.ui.Confirm(ConfirmRequest{
		Title:   "Unsaved changes",
		Message: fmt.Sprintf("Save changes to %s?", name),
		Options: []Choice{ChoiceSave, ChoiceDiscard, ChoiceCancel},
	}, func(choice Choice) {
		w.busy = false
		w.logger.Debug("guard resolved", "buffer", name, "choice", choice.String())
		switch choice {
		case ChoiceSave:
			w.save(req.Buffer, func(err error) {
				if err != nil {
					w.logger.Debug("guard: save did not complete", "buffer", name, "err", err)
					call(req.OnCancel)
					return
				}
				call(req.OnContinue)
			})
		case ChoiceDiscard:
			call(req.OnContinue)
		default:
			call(req.OnCancel)
		}
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
