// Package mcptools exposes editor buffers to MCP clients as tools and
// resources.
package mcptools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/odvcencio/scribe/diagnostics"
)

// EditorAccess is the editor surface the tools operate on. Paths may be
// relative; the implementation resolves them against its project root.
type EditorAccess interface {
	OpenFile(path string) (string, error)
	ReadBuffer(path string) (string, error)
	WriteBuffer(path, text string) error
	SaveFile(path string) error
	ListFiles() []string
	Diagnostics(path string) ([]diagnostics.Diagnostic, error)
	GetLanguage(path string) string
}

// CommandRunner executes a palette command by ID.
type CommandRunner func(id string) error

// DiagnosticInfo is a diagnostic as reported to MCP clients.
type DiagnosticInfo struct {
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ToolDef describes an MCP tool.
type ToolDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	Handler     func(params json.RawMessage) (any, error)
}

// ResourceDef describes an MCP resource template.
type ResourceDef struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
	Handler     func(uri string) (string, error)
}

// Registry holds all MCP tools and resources for the editor.
type Registry struct {
	editor    EditorAccess
	run       CommandRunner
	tools     []ToolDef
	resources []ResourceDef
}

var errPathRequired = errors.New("path is required")

// NewRegistry builds the tool and resource set. A nil run leaves out the
// run_command tool.
func NewRegistry(editor EditorAccess, run CommandRunner) *Registry {
	r := &Registry{editor: editor, run: run}
	r.registerTools()
	r.registerResources()
	return r
}

func (r *Registry) Tools() []ToolDef {
	return r.tools
}

func (r *Registry) Resources() []ResourceDef {
	return r.resources
}

// HandleTool dispatches a tool call by name.
func (r *Registry) HandleTool(name string, params json.RawMessage) (any, error) {
	for _, t := range r.tools {
		if t.Name == name {
			return t.Handler(params)
		}
	}
	return nil, fmt.Errorf("unknown tool: %s", name)
}

// HandleResource dispatches a resource read by URI.
func (r *Registry) HandleResource(uri string) (string, error) {
	for _, res := range r.resources {
		if matchResourceURI(res.URI, uri) {
			return res.Handler(uri)
		}
	}
	return "", fmt.Errorf("unknown resource: %s", uri)
}

// matchResourceURI reports whether uri falls under template. Everything
// after the first {param} placeholder matches any non-empty suffix.
func matchResourceURI(template, uri string) bool {
	idx := strings.Index(template, "{")
	if idx < 0 {
		return template == uri
	}
	return strings.HasPrefix(uri, template[:idx]) && len(uri) > idx
}

func (r *Registry) registerTools() {
	r.tools = []ToolDef{
		r.toolOpenFile(),
		r.toolReadBuffer(),
		r.toolWriteBuffer(),
		r.toolSaveFile(),
		r.toolListFiles(),
		r.toolGetDiagnostics(),
	}
	if r.run != nil {
		r.tools = append(r.tools, r.toolRunCommand())
	}
}

func (r *Registry) registerResources() {
	r.resources = []ResourceDef{
		r.resourceFile(),
		r.resourceDiagnostics(),
	}
}

type pathParams struct {
	Path string `json:"path"`
}

func decodePath(params json.RawMessage) (string, error) {
	var p pathParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return "", fmt.Errorf("invalid params: %w", err)
		}
	}
	if p.Path == "" {
		return "", errPathRequired
	}
	return p.Path, nil
}

const pathSchema = `{
	"type": "object",
	"properties": {
		"path": {"type": "string", "description": "File path. Relative paths resolve against the project root."}
	},
	"required": ["path"]
}`

func (r *Registry) toolOpenFile() ToolDef {
	return ToolDef{
		Name:        "scribe_open_file",
		Description: "Opens a file in the editor, or switches to it if it is already open, and returns its text.",
		InputSchema: json.RawMessage(pathSchema),
		Handler: func(params json.RawMessage) (any, error) {
			path, err := decodePath(params)
			if err != nil {
				return nil, err
			}
			text, err := r.editor.OpenFile(path)
			if err != nil {
				return nil, fmt.Errorf("open file: %w", err)
			}
			return map[string]any{
				"path":     path,
				"language": r.editor.GetLanguage(path),
				"text":     text,
			}, nil
		},
	}
}

func (r *Registry) toolReadBuffer() ToolDef {
	return ToolDef{
		Name:        "scribe_read_buffer",
		Description: "Returns the current, possibly unsaved, text of an open buffer.",
		InputSchema: json.RawMessage(pathSchema),
		Handler: func(params json.RawMessage) (any, error) {
			path, err := decodePath(params)
			if err != nil {
				return nil, err
			}
			text, err := r.editor.ReadBuffer(path)
			if err != nil {
				return nil, fmt.Errorf("read buffer: %w", err)
			}
			return map[string]any{"path": path, "text": text}, nil
		},
	}
}

func (r *Registry) toolWriteBuffer() ToolDef {
	return ToolDef{
		Name:        "scribe_write_buffer",
		Description: "Replaces the text of an open buffer. Nothing is written to disk until scribe_save_file.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {"type": "string", "description": "Path of the open buffer."},
				"text": {"type": "string", "description": "New buffer text."}
			},
			"required": ["path", "text"]
		}`),
		Handler: func(params json.RawMessage) (any, error) {
			var p struct {
				Path string  `json:"path"`
				Text *string `json:"text"`
			}
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("invalid params: %w", err)
			}
			if p.Path == "" {
				return nil, errPathRequired
			}
			if p.Text == nil {
				return nil, errors.New("text is required")
			}
			if err := r.editor.WriteBuffer(p.Path, *p.Text); err != nil {
				return nil, fmt.Errorf("write buffer: %w", err)
			}
			return map[string]any{"path": p.Path, "status": "written", "length": len(*p.Text)}, nil
		},
	}
}

func (r *Registry) toolSaveFile() ToolDef {
	return ToolDef{
		Name:        "scribe_save_file",
		Description: "Writes an open buffer to its file.",
		InputSchema: json.RawMessage(pathSchema),
		Handler: func(params json.RawMessage) (any, error) {
			path, err := decodePath(params)
			if err != nil {
				return nil, err
			}
			if err := r.editor.SaveFile(path); err != nil {
				return nil, fmt.Errorf("save file: %w", err)
			}
			return map[string]any{"path": path, "status": "saved"}, nil
		},
	}
}

func (r *Registry) toolListFiles() ToolDef {
	return ToolDef{
		Name:        "scribe_list_files",
		Description: "Lists the files under the project root, skipping VCS and dependency directories.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
		Handler: func(json.RawMessage) (any, error) {
			files := r.editor.ListFiles()
			return map[string]any{"files": files, "count": len(files)}, nil
		},
	}
}

func (r *Registry) diagnosticInfos(path string) ([]DiagnosticInfo, error) {
	diags, err := r.editor.Diagnostics(path)
	if err != nil {
		return nil, err
	}
	out := make([]DiagnosticInfo, 0, len(diags))
	for _, d := range diags {
		out = append(out, DiagnosticInfo{
			Path:     path,
			Line:     d.Line,
			Col:      d.Column,
			Severity: d.Severity.String(),
			Message:  d.Message,
		})
	}
	return out, nil
}

func (r *Registry) toolGetDiagnostics() ToolDef {
	return ToolDef{
		Name:        "scribe_get_diagnostics",
		Description: "Returns the syntax diagnostics from the last check of an open buffer.",
		InputSchema: json.RawMessage(pathSchema),
		Handler: func(params json.RawMessage) (any, error) {
			path, err := decodePath(params)
			if err != nil {
				return nil, err
			}
			infos, err := r.diagnosticInfos(path)
			if err != nil {
				return nil, fmt.Errorf("diagnostics: %w", err)
			}
			return map[string]any{"path": path, "diagnostics": infos, "count": len(infos)}, nil
		},
	}
}

func (r *Registry) toolRunCommand() ToolDef {
	return ToolDef{
		Name:        "scribe_run_command",
		Description: "Executes a command palette entry by ID, e.g. file.save, tab.next or view.split.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"command": {"type": "string", "description": "The command ID to execute."}
			},
			"required": ["command"]
		}`),
		Handler: func(params json.RawMessage) (any, error) {
			var p struct {
				Command string `json:"command"`
			}
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("invalid params: %w", err)
			}
			if p.Command == "" {
				return nil, errors.New("command is required")
			}
			if err := r.run(p.Command); err != nil {
				return nil, fmt.Errorf("run command %q: %w", p.Command, err)
			}
			return map[string]any{"command": p.Command, "status": "executed"}, nil
		},
	}
}

func (r *Registry) resourceFile() ResourceDef {
	const prefix = "scribe://file/"
	return ResourceDef{
		URI:         prefix + "{path}",
		Name:        "Buffer Contents",
		Description: "The current text of an open buffer.",
		MimeType:    "text/plain",
		Handler: func(uri string) (string, error) {
			path := strings.TrimPrefix(uri, prefix)
			if path == "" {
				return "", errPathRequired
			}
			return r.editor.ReadBuffer(path)
		},
	}
}

func (r *Registry) resourceDiagnostics() ResourceDef {
	const prefix = "scribe://diagnostics/"
	return ResourceDef{
		URI:         prefix + "{path}",
		Name:        "Diagnostics",
		Description: "Syntax diagnostics for an open buffer as JSON.",
		MimeType:    "application/json",
		Handler: func(uri string) (string, error) {
			path := strings.TrimPrefix(uri, prefix)
			if path == "" {
				return "", errPathRequired
			}
			infos, err := r.diagnosticInfos(path)
			if err != nil {
				return "", err
			}
			data, err := json.Marshal(infos)
			if err != nil {
				return "", fmt.Errorf("marshal diagnostics: %w", err)
			}
			return string(data), nil
		},
	}
}
