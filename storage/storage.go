// Package storage is the persistence gateway between the editor session and
// the file system. Paths are canonical: absolute with forward slashes.
package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a path does not exist.
var ErrNotFound = errors.New("not found")

// Info describes a file.
type Info struct {
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Entry is one directory listing item.
type Entry struct {
	Name  string
	IsDir bool
}

// Gateway reads and writes whole text files.
type Gateway interface {
	Exists(path string) bool
	IsDir(path string) bool
	List(dir string) ([]Entry, error)
	Read(path string) (string, error)
	Write(path, text string) error
	MakeDir(path string) error
	Stat(path string) (Info, bool)
}
