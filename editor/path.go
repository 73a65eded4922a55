package editor

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalidPath is returned for input that cannot be canonicalized.
var ErrInvalidPath = errors.New("invalid path")

// Canonicalize converts p into the single comparable form used for buffer
// paths: absolute, forward slashes, no duplicate slashes, dot segments
// resolved, and no trailing slash except for the root itself.
//
// Relative paths resolve against base, which is canonicalized the same way.
// An empty p or "." resolves to base; an empty base is "/".
func Canonicalize(p, base string) (string, error) {
	if strings.ContainsRune(p, 0) || strings.ContainsRune(base, 0) {
		return "", ErrInvalidPath
	}
	root := "/"
	if b := toSlash(strings.TrimSpace(base)); b != "" {
		if !isAbs(b) {
			b = "/" + b
		}
		root = clean(b)
	}

	p = toSlash(strings.TrimSpace(p))
	if p == "" || p == "." {
		return root, nil
	}
	if !isAbs(p) {
		p = root + "/" + p
	}
	return clean(p), nil
}

// DisplayName returns the last element of a canonical path.
func DisplayName(p string) string {
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// ParentDir returns the directory containing a canonical path.
func ParentDir(p string) string {
	dir := path.Dir(p)
	if isDriveRoot(dir + "/") {
		return dir + "/"
	}
	return dir
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, "/") || isDriveRoot(p)
}

// isDriveRoot reports whether p starts with a drive letter followed by a
// slash, as in "C:/".
func isDriveRoot(p string) bool {
	if len(p) < 3 || p[1] != ':' || p[2] != '/' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func clean(p string) string {
	if isDriveRoot(p) {
		rest := path.Clean("/" + p[3:])
		if rest == "/" {
			return p[:3]
		}
		return p[:2] + rest
	}
	return path.Clean(p)
}
