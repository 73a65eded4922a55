package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	fluffymcp "github.com/odvcencio/fluffyui/agent/mcp"
	"github.com/odvcencio/fluffyui/runtime"
	"github.com/odvcencio/scribe/commands"
	"github.com/odvcencio/scribe/mcptools"
	"github.com/odvcencio/scribe/web"
)

var (
	mcpEditorMu sync.RWMutex
	mcpEditor   *scribeApp
)

func init() {
	runtime.RegisterMCPEnabler(enableMCPWithEditorTools)
}

func setMCPActiveEditor(app *scribeApp) {
	mcpEditorMu.Lock()
	defer mcpEditorMu.Unlock()
	mcpEditor = app
}

func activeMCPEditor() *scribeApp {
	mcpEditorMu.RLock()
	defer mcpEditorMu.RUnlock()
	return mcpEditor
}

// enableMCPWithEditorTools starts the stock widget-level MCP server and adds
// the buffer tools when an editor is running.
func enableMCPWithEditorTools(app *runtime.App, opts runtime.MCPOptions) (io.Closer, error) {
	if app == nil {
		return nil, fmt.Errorf("mcp server requires app")
	}

	srv, err := fluffymcp.NewServer(app, opts)
	if err != nil {
		return nil, err
	}
	if editor := activeMCPEditor(); editor != nil {
		if err := registerMCPRegistry(app, srv, editor.mcpRegistry()); err != nil {
			return nil, err
		}
	}
	if err := srv.Start(); err != nil {
		return nil, err
	}
	return srv, nil
}

// mcpRegistry exposes the session through the same serialized state the web
// bridge uses.
func (a *scribeApp) mcpRegistry() *mcptools.Registry {
	st := web.NewSessionState(a.sess, a.store, a.root, a.gate.Run)
	return mcptools.NewRegistry(st, a.runCommand)
}

// runCommand executes a palette command by ID under the event gate.
func (a *scribeApp) runCommand(id string) error {
	var err error
	a.gate.Run(func() {
		err = commands.Run(a.actions(), id)
	})
	return err
}

func registerMCPRegistry(app *runtime.App, srv *fluffymcp.Server, reg *mcptools.Registry) error {
	for _, tool := range reg.Tools() {
		if err := srv.AddJSONTool(
			tool.Name,
			tool.Description,
			tool.InputSchema,
			func(ctx context.Context, params json.RawMessage) (any, error) {
				var out any
				callErr := app.Call(ctx, func(_ *runtime.App) error {
					result, err := tool.Handler(params)
					if err != nil {
						return err
					}
					out = result
					return nil
				})
				if callErr != nil {
					return nil, callErr
				}
				return out, nil
			},
		); err != nil {
			return fmt.Errorf("register tool %s: %w", tool.Name, err)
		}
	}

	for _, resource := range reg.Resources() {
		if err := srv.AddTextResourceTemplate(
			resource.URI,
			resource.Name,
			resource.Description,
			resource.MimeType,
			func(ctx context.Context, uri string) (string, error) {
				var text string
				callErr := app.Call(ctx, func(_ *runtime.App) error {
					content, err := resource.Handler(uri)
					if err != nil {
						return err
					}
					text = content
					return nil
				})
				if callErr != nil {
					return "", callErr
				}
				return text, nil
			},
		); err != nil {
			return fmt.Errorf("register resource %s: %w", resource.URI, err)
		}
	}
	return nil
}
