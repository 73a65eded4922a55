// Package web exposes the editing session to browser clients over a
// websocket JSON-RPC channel.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/odvcencio/scribe/diagnostics"
)

// BufferInfo describes one open buffer.
type BufferInfo struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Dirty  bool   `json:"dirty"`
	Active bool   `json:"active"`
}

// EditorState provides read/write access to the editor's buffer state.
type EditorState interface {
	OpenFile(path string) (string, error)
	ReadBuffer(path string) (string, error)
	WriteBuffer(path string, text string) error
	SaveFile(path string) error
	ListFiles() []string
	ListBuffers() []BufferInfo
	Diagnostics(path string) ([]diagnostics.Diagnostic, error)
	GetLanguage(path string) string
}

// Server provides the HTTP + WebSocket bridge.
type Server struct {
	state    EditorState
	upgrader websocket.Upgrader
	logger   *slog.Logger
	mu       sync.Mutex
	clients  []*wsClient
}

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

type rpcRequest struct {
	ID     any             `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	ID     any       `json:"id"`
	Result any       `json:"result,omitempty"`
	Error  *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeServer         = -32000
)

type diagnosticJSON struct {
	Severity string `json:"severity"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
}

// NewServer creates a web server backed by the given editor state.
func NewServer(state EditorState, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		state:  state,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ws":
		s.handleWebSocket(w, r)
	case "/api/buffers":
		writeJSON(w, s.state.ListBuffers())
	case "/":
		writeJSON(w, map[string]string{"service": "scribe", "rpc": "/ws"})
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "err", err)
		return
	}
	client := &wsClient{conn: conn}
	s.mu.Lock()
	s.clients = append(s.clients, client)
	s.mu.Unlock()
	s.logger.Debug("web client connected", "remote", r.RemoteAddr)

	defer func() {
		conn.Close()
		s.mu.Lock()
		for i, c := range s.clients {
			if c == client {
				s.clients = append(s.clients[:i], s.clients[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req rpcRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.logger.Debug("bad rpc request", "err", err)
			continue
		}
		resp := s.handleRPC(req)
		data, _ := json.Marshal(resp)
		client.mu.Lock()
		_ = conn.WriteMessage(websocket.TextMessage, data)
		client.mu.Unlock()
	}
}

func (s *Server) handleRPC(req rpcRequest) rpcResponse {
	switch req.Method {
	case "openFile":
		return s.withPath(req, func(path string) (any, error) {
			text, err := s.state.OpenFile(path)
			if err != nil {
				return nil, err
			}
			return map[string]string{"text": text, "language": s.state.GetLanguage(path)}, nil
		})
	case "readBuffer":
		return s.withPath(req, func(path string) (any, error) {
			text, err := s.state.ReadBuffer(path)
			if err != nil {
				return nil, err
			}
			return map[string]string{"text": text}, nil
		})
	case "writeBuffer":
		return s.rpcWriteBuffer(req)
	case "saveFile":
		return s.withPath(req, func(path string) (any, error) {
			if err := s.state.SaveFile(path); err != nil {
				return nil, err
			}
			return map[string]string{"status": "saved"}, nil
		})
	case "listFiles":
		return rpcResponse{ID: req.ID, Result: map[string]any{"files": s.state.ListFiles()}}
	case "listBuffers":
		return rpcResponse{ID: req.ID, Result: map[string]any{"buffers": s.state.ListBuffers()}}
	case "getLanguage":
		return s.withPath(req, func(path string) (any, error) {
			return map[string]string{"language": s.state.GetLanguage(path)}, nil
		})
	case "diagnostics":
		return s.withPath(req, func(path string) (any, error) {
			diags, err := s.state.Diagnostics(path)
			if err != nil {
				return nil, err
			}
			out := make([]diagnosticJSON, 0, len(diags))
			for _, d := range diags {
				out = append(out, diagnosticJSON{
					Severity: d.Severity.String(),
					Line:     d.Line,
					Column:   d.Column,
					Message:  d.Message,
				})
			}
			return map[string]any{"diagnostics": out}, nil
		})
	default:
		return rpcResponse{
			ID:    req.ID,
			Error: &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("unknown method: %s", req.Method)},
		}
	}
}

// withPath decodes {"path": ...} params and runs fn.
func (s *Server) withPath(req rpcRequest, fn func(path string) (any, error)) rpcResponse {
	var p struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeInvalidParams, Message: err.Error()}}
	}
	result, err := fn(p.Path)
	if err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeServer, Message: err.Error()}}
	}
	return rpcResponse{ID: req.ID, Result: result}
}

func (s *Server) rpcWriteBuffer(req rpcRequest) rpcResponse {
	var p struct {
		Path string `json:"path"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeInvalidParams, Message: err.Error()}}
	}
	if err := s.state.WriteBuffer(p.Path, p.Text); err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeServer, Message: err.Error()}}
	}
	return rpcResponse{ID: req.ID, Result: map[string]string{"status": "ok"}}
}

// Broadcast sends a notification to all connected WebSocket clients.
func (s *Server) Broadcast(method string, params any) {
	msg, err := json.Marshal(map[string]any{
		"method": method,
		"params": params,
	})
	if err != nil {
		return
	}
	s.mu.Lock()
	clients := append([]*wsClient(nil), s.clients...)
	s.mu.Unlock()

	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
		c.mu.Unlock()
	}
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
