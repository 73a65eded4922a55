package commands

import (
	"errors"
	"testing"
)

func TestAllCommandsSkipsNilActions(t *testing.T) {
	var saved bool
	cmds := AllCommands(Actions{
		SaveFile: func() { saved = true },
		Quit:     func() {},
	})
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	if cmds[0].ID != "file.save" || cmds[1].ID != "app.quit" {
		t.Errorf("ids = %q, %q", cmds[0].ID, cmds[1].ID)
	}
	cmds[0].OnExecute()
	if !saved {
		t.Error("save action not invoked")
	}
}

func TestAllCommandsUniqueIDs(t *testing.T) {
	noop := func() {}
	cmds := AllCommands(Actions{
		NewFile: noop, OpenFile: noop, SaveFile: noop, SaveFileAs: noop,
		CloseTab: noop, NextTab: noop, PrevTab: noop, Revert: noop,
		ToggleSplit: noop, SplitVertical: noop, SplitHorizontal: noop,
		FocusOtherPane: noop, Diagnostics: noop, DeleteLine: noop,
		DuplicateLine: noop, MoveLineUp: noop, MoveLineDown: noop, Quit: noop,
	})
	seen := map[string]bool{}
	for _, c := range cmds {
		if seen[c.ID] {
			t.Errorf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
	if len(cmds) != 18 {
		t.Errorf("got %d commands, want 18", len(cmds))
	}
}

func TestRecentCommands(t *testing.T) {
	var opened string
	cmds := RecentCommands([]string{"/a.go", "/b.go"}, func(p string) { opened = p })
	if len(cmds) != 2 {
		t.Fatalf("got %d commands", len(cmds))
	}
	cmds[1].OnExecute()
	if opened != "/b.go" {
		t.Errorf("opened %q, want /b.go", opened)
	}
	if RecentCommands([]string{"/a.go"}, nil) != nil {
		t.Error("nil opener should yield no commands")
	}
}

func TestRun(t *testing.T) {
	var next int
	a := Actions{NextTab: func() { next++ }}
	if err := Run(a, "tab.next"); err != nil {
		t.Fatalf("Run(tab.next) = %v", err)
	}
	if next != 1 {
		t.Errorf("next called %d times", next)
	}
	if err := Run(a, "tab.prev"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Run(tab.prev) = %v, want ErrUnknownCommand", err)
	}
}
