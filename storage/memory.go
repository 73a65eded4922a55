package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory Gateway. The zero value is not usable; call
// NewMemory.
type Memory struct {
	mu     sync.Mutex
	files  map[string]memFile
	dirs   map[string]bool
	writes int
	now    func() time.Time

	// FailWrite, when set, is returned by every Write.
	FailWrite error
}

type memFile struct {
	text    string
	modTime time.Time
}

// NewMemory creates an empty file system containing only "/".
func NewMemory() *Memory {
	return &Memory{
		files: map[string]memFile{},
		dirs:  map[string]bool{"/": true},
		now:   time.Now,
	}
}

// AddFile stores text at p, creating parent directories.
func (m *Memory) AddFile(p, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirLocked(path.Dir(p))
	m.files[p] = memFile{text: text, modTime: m.now()}
}

// AddDir creates p and its parents.
func (m *Memory) AddDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirLocked(p)
}

// Writes returns the number of successful Write calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// File returns the stored text at p.
func (m *Memory) File(p string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[p]
	return f.text, ok
}

func (m *Memory) Exists(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[p]
	return ok || m.dirs[p]
}

func (m *Memory) IsDir(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirs[p]
}

func (m *Memory) List(dir string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirs[dir] {
		return nil, fmt.Errorf("list %s: %w", dir, ErrNotFound)
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	seen := map[string]bool{}
	var out []Entry
	add := func(p string, isDir bool) {
		if p == dir || !strings.HasPrefix(p, prefix) {
			return
		}
		name := strings.TrimPrefix(p, prefix)
		if strings.Contains(name, "/") || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, Entry{Name: name, IsDir: isDir})
	}
	for p := range m.dirs {
		add(p, true)
	}
	for p := range m.files {
		add(p, false)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Read(p string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[p]
	if !ok {
		return "", fmt.Errorf("read %s: %w", p, ErrNotFound)
	}
	return f.text, nil
}

func (m *Memory) Write(p, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrite != nil {
		return fmt.Errorf("write %s: %w", p, m.FailWrite)
	}
	if m.dirs[p] {
		return fmt.Errorf("write %s: is a directory", p)
	}
	if !m.dirs[path.Dir(p)] {
		return fmt.Errorf("write %s: %w", p, ErrNotFound)
	}
	m.files[p] = memFile{text: text, modTime: m.now()}
	m.writes++
	return nil
}

func (m *Memory) MakeDir(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[p]; ok {
		return fmt.Errorf("mkdir %s: file exists", p)
	}
	m.mkdirLocked(p)
	return nil
}

func (m *Memory) Stat(p string) (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirs[p] {
		return Info{IsDir: true}, true
	}
	f, ok := m.files[p]
	if !ok {
		return Info{}, false
	}
	return Info{Size: int64(len(f.text)), ModTime: f.modTime}, true
}

func (m *Memory) mkdirLocked(p string) {
	for {
		m.dirs[p] = true
		parent := path.Dir(p)
		if parent == p {
			return
		}
		p = parent
	}
}
