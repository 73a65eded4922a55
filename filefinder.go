package main

import (
	"github.com/odvcencio/fluffyui/runtime"
	"github.com/odvcencio/fluffyui/terminal"
	"github.com/odvcencio/fluffyui/widgets"

	"github.com/odvcencio/scribe/storage"
)

// fileFinderWidget is a palette over the files below a root. It backs the
// open picker: choosing an entry submits its absolute path.
type fileFinderWidget struct {
	*widgets.CommandPalette
	onOpen  func(path string)
	onClose func()
}

func newFileFinderWidget() *fileFinderWidget {
	f := &fileFinderWidget{
		CommandPalette: widgets.NewCommandPalette(),
	}
	f.SetOnExecute(func(cmd widgets.PaletteCommand) {
		f.Hide()
		if f.onOpen != nil {
			f.onOpen(cmd.ID)
		}
	})
	return f
}

// finderItems turns a file listing into palette entries keyed by absolute
// path.
func finderItems(files []storage.File) []widgets.PaletteCommand {
	items := make([]widgets.PaletteCommand, 0, len(files))
	for _, file := range files {
		label := file.Rel
		if label == "" {
			label = file.Abs
		}
		items = append(items, widgets.PaletteCommand{
			ID:          file.Abs,
			Label:       label,
			Description: file.Abs,
			Category:    "Files",
		})
	}
	return items
}

func (f *fileFinderWidget) SetFiles(files []storage.File) {
	if f == nil || f.CommandPalette == nil {
		return
	}
	f.SetCommands(finderItems(files))
}

// collectFinderFiles lists the files below root, leaving out tool and
// dependency directories.
func collectFinderFiles(g storage.Gateway, root string) []storage.File {
	return storage.Walk(g, root, storage.SkipDir)
}

func (f *fileFinderWidget) dismiss() {
	f.Hide()
	if f.onClose != nil {
		f.onClose()
	}
}

func (f *fileFinderWidget) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if f == nil || f.CommandPalette == nil {
		return runtime.Unhandled()
	}
	if key, ok := msg.(runtime.KeyMsg); ok {
		if key.Key == terminal.KeyEscape {
			f.dismiss()
			return runtime.Handled()
		}
		if key.Key == terminal.KeyBackspace && f.Query() == "" {
			f.dismiss()
			return runtime.Handled()
		}
	}
	return f.CommandPalette.HandleMessage(msg)
}
