package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// OS is a Gateway backed by the local file system.
type OS struct{}

func (OS) native(p string) string {
	return filepath.FromSlash(p)
}

func (o OS) Exists(p string) bool {
	_, err := os.Stat(o.native(p))
	return err == nil
}

func (o OS) IsDir(p string) bool {
	info, err := os.Stat(o.native(p))
	return err == nil && info.IsDir()
}

// List returns the entries of dir sorted by name.
func (o OS) List(dir string) ([]Entry, error) {
	items, err := os.ReadDir(o.native(dir))
	if err != nil {
		return nil, wrap("list", dir, err)
	}
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		out = append(out, Entry{Name: item.Name(), IsDir: item.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (o OS) Read(p string) (string, error) {
	data, err := os.ReadFile(o.native(p))
	if err != nil {
		return "", wrap("read", p, err)
	}
	return string(data), nil
}

func (o OS) Write(p, text string) error {
	if err := os.WriteFile(o.native(p), []byte(text), 0o644); err != nil {
		return wrap("write", p, err)
	}
	return nil
}

// MakeDir creates p and any missing parents.
func (o OS) MakeDir(p string) error {
	if err := os.MkdirAll(o.native(p), 0o755); err != nil {
		return wrap("mkdir", p, err)
	}
	return nil
}

func (o OS) Stat(p string) (Info, bool) {
	info, err := os.Stat(o.native(p))
	if err != nil {
		return Info{}, false
	}
	return Info{Size: info.Size(), ModTime: info.ModTime(), IsDir: info.IsDir()}, true
}

func wrap(op, p string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s %s: %w", op, p, ErrNotFound)
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return fmt.Errorf("%s %s: %w", op, p, err)
}
