package session

import (
	"errors"

	"github.com/odvcencio/scribe/editor"
)

var (
	// ErrInvalidPath is returned for empty or unnormalizable paths.
	ErrInvalidPath = editor.ErrInvalidPath

	// ErrIO wraps a failed gateway read, write or mkdir. The gateway's
	// message is kept in the chain.
	ErrIO = errors.New("i/o failure")

	// ErrDirectoryConflict is returned when a save target is a directory.
	// It is detected before any write.
	ErrDirectoryConflict = errors.New("path is a directory")

	// ErrAlreadyOpen is returned when saving to a path another buffer holds.
	ErrAlreadyOpen = errors.New("path is open in another buffer")

	// ErrCancelled marks an operation the user dropped, such as a save
	// whose path picker was dismissed. It is never shown.
	ErrCancelled = errors.New("cancelled")
)
