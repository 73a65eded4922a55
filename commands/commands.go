// Package commands maps editor intents to command palette entries.
package commands

import (
	"errors"
	"fmt"

	"github.com/odvcencio/fluffyui/widgets"
)

// Actions holds callbacks for all editor commands. Nil callbacks leave
// their command out of the palette.
type Actions struct {
	NewFile         func()
	OpenFile        func()
	SaveFile        func()
	SaveFileAs      func()
	CloseTab        func()
	NextTab         func()
	PrevTab         func()
	Revert          func()
	ToggleSplit     func()
	SplitVertical   func()
	SplitHorizontal func()
	FocusOtherPane  func()
	Diagnostics     func()
	DeleteLine      func()
	DuplicateLine   func()
	MoveLineUp      func()
	MoveLineDown    func()
	Quit            func()

	// OpenRecent opens one of the recent files.
	OpenRecent func(path string)
}

// AllCommands returns the full command list for the palette.
func AllCommands(a Actions) []widgets.PaletteCommand {
	all := []widgets.PaletteCommand{
		{ID: "file.new", Label: "New File", Shortcut: "Ctrl+N", Category: "File", OnExecute: a.NewFile},
		{ID: "file.open", Label: "Open File", Shortcut: "Ctrl+O", Category: "File", OnExecute: a.OpenFile},
		{ID: "file.save", Label: "Save File", Shortcut: "Ctrl+S", Category: "File", OnExecute: a.SaveFile},
		{ID: "file.saveAs", Label: "Save File As", Shortcut: "Ctrl+Shift+S", Category: "File", OnExecute: a.SaveFileAs},
		{ID: "file.revert", Label: "Revert File", Category: "File", OnExecute: a.Revert},
		{ID: "file.close", Label: "Close Tab", Shortcut: "Ctrl+W", Category: "File", OnExecute: a.CloseTab},
		{ID: "tab.next", Label: "Next Tab", Shortcut: "Ctrl+PgDn", Category: "Tabs", OnExecute: a.NextTab},
		{ID: "tab.prev", Label: "Previous Tab", Shortcut: "Ctrl+PgUp", Category: "Tabs", OnExecute: a.PrevTab},
		{ID: "view.split", Label: "Toggle Split", Shortcut: "Ctrl+\\", Category: "View", OnExecute: a.ToggleSplit},
		{ID: "view.splitVertical", Label: "Split Side by Side", Category: "View", OnExecute: a.SplitVertical},
		{ID: "view.splitHorizontal", Label: "Split Top and Bottom", Category: "View", OnExecute: a.SplitHorizontal},
		{ID: "view.focusPane", Label: "Focus Other Pane", Shortcut: "Ctrl+K", Category: "View", OnExecute: a.FocusOtherPane},
		{ID: "view.diagnostics", Label: "Toggle Diagnostics", Shortcut: "Ctrl+E", Category: "View", OnExecute: a.Diagnostics},
		{ID: "edit.deleteLine", Label: "Delete Line", Shortcut: "Ctrl+Shift+K", Category: "Edit", OnExecute: a.DeleteLine},
		{ID: "edit.duplicateLine", Label: "Duplicate Line", Shortcut: "Ctrl+Shift+D", Category: "Edit", OnExecute: a.DuplicateLine},
		{ID: "edit.moveLineUp", Label: "Move Line Up", Shortcut: "Alt+Up", Category: "Edit", OnExecute: a.MoveLineUp},
		{ID: "edit.moveLineDown", Label: "Move Line Down", Shortcut: "Alt+Down", Category: "Edit", OnExecute: a.MoveLineDown},
		{ID: "app.quit", Label: "Quit", Shortcut: "Ctrl+Q", Category: "App", OnExecute: a.Quit},
	}
	out := all[:0]
	for _, c := range all {
		if c.OnExecute != nil {
			out = append(out, c)
		}
	}
	return out
}

// ErrUnknownCommand is returned by Run for an ID with no enabled command.
var ErrUnknownCommand = errors.New("unknown command")

// Run executes the command with the given ID.
func Run(a Actions, id string) error {
	for _, c := range AllCommands(a) {
		if c.ID == id {
			c.OnExecute()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
}

// RecentCommands returns one palette entry per recent file, most recent
// first.
func RecentCommands(recent []string, open func(path string)) []widgets.PaletteCommand {
	if open == nil {
		return nil
	}
	out := make([]widgets.PaletteCommand, 0, len(recent))
	for i, p := range recent {
		out = append(out, widgets.PaletteCommand{
			ID:        fmt.Sprintf("recent.%d", i),
			Label:     "Open Recent: " + p,
			Category:  "Recent",
			OnExecute: func() { open(p) },
		})
	}
	return out
}
