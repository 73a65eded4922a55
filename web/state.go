package web

import (
	"errors"
	"fmt"

	"github.com/odvcencio/scribe/diagnostics"
	"github.com/odvcencio/scribe/editor"
	"github.com/odvcencio/scribe/session"
	"github.com/odvcencio/scribe/storage"
)

var errNotOpen = errors.New("buffer not open")

// SessionState adapts a session for the bridge. Every call runs through
// run so that it is serialized with terminal input.
type SessionState struct {
	sess  *session.Session
	store storage.Gateway
	root  string
	run   func(func())
}

// NewSessionState wraps sess. Relative paths resolve against root.
func NewSessionState(sess *session.Session, store storage.Gateway, root string, run func(func())) *SessionState {
	if run == nil {
		run = func(fn func()) { fn() }
	}
	return &SessionState{sess: sess, store: store, root: root, run: run}
}

func (s *SessionState) canonical(path string) (string, error) {
	return editor.Canonicalize(path, s.root)
}

// buffer finds the open buffer for path. It must be called inside run.
func (s *SessionState) buffer(path string) (*editor.Buffer, error) {
	p, err := s.canonical(path)
	if err != nil {
		return nil, err
	}
	reg := s.sess.Registry()
	if i := reg.FindByPath(p); i >= 0 {
		return reg.Buffer(i), nil
	}
	return nil, fmt.Errorf("%w: %s", errNotOpen, p)
}

func (s *SessionState) OpenFile(path string) (text string, err error) {
	s.run(func() {
		if err = s.sess.OpenPath(path); err != nil {
			return
		}
		var b *editor.Buffer
		if b, err = s.buffer(path); err != nil {
			err = fmt.Errorf("open %s: waiting for confirmation", path)
			return
		}
		text = b.Text()
	})
	return text, err
}

func (s *SessionState) ReadBuffer(path string) (text string, err error) {
	s.run(func() {
		var b *editor.Buffer
		if b, err = s.buffer(path); err == nil {
			text = b.Text()
		}
	})
	return text, err
}

func (s *SessionState) WriteBuffer(path, text string) (err error) {
	s.run(func() {
		var b *editor.Buffer
		if b, err = s.buffer(path); err == nil {
			s.sess.SetBufferText(b, text)
		}
	})
	return err
}

func (s *SessionState) SaveFile(path string) (err error) {
	s.run(func() {
		var b *editor.Buffer
		if b, err = s.buffer(path); err != nil {
			return
		}
		err = s.sess.SaveTo(b, b.SaveTarget())
	})
	return err
}

func (s *SessionState) ListFiles() []string {
	var files []string
	for _, f := range storage.Walk(s.store, s.root, storage.SkipDir) {
		files = append(files, f.Rel)
	}
	return files
}

func (s *SessionState) ListBuffers() []BufferInfo {
	var out []BufferInfo
	s.run(func() {
		active := s.sess.ActiveBuffer()
		for _, b := range s.sess.Buffers() {
			out = append(out, BufferInfo{
				Path:   b.SaveTarget(),
				Name:   b.DisplayName(),
				Dirty:  b.Dirty(),
				Active: b == active,
			})
		}
	})
	return out
}

func (s *SessionState) Diagnostics(path string) (diags []diagnostics.Diagnostic, err error) {
	s.run(func() {
		var b *editor.Buffer
		if b, err = s.buffer(path); err == nil {
			diags = append(diags, b.Diagnostics()...)
		}
	})
	return diags, err
}

func (s *SessionState) GetLanguage(path string) string {
	return diagnostics.Language(path)
}
