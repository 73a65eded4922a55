package storage

import (
	"path"
	"sort"
	"strings"
)

// File is a regular file found by Walk.
type File struct {
	Rel string // path relative to the walk root
	Abs string
}

// Walk lists every regular file under root, skipping directories for which
// skip returns true. Unreadable directories are ignored. Results are sorted
// case-insensitively by relative path.
func Walk(g Gateway, root string, skip func(name string) bool) []File {
	var out []File
	var visit func(dir, rel string)
	visit = func(dir, rel string) {
		entries, err := g.List(dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			abs := path.Join(dir, e.Name)
			r := path.Join(rel, e.Name)
			if e.IsDir {
				if skip != nil && skip(e.Name) {
					continue
				}
				visit(abs, r)
				continue
			}
			out = append(out, File{Rel: r, Abs: abs})
		}
	}
	visit(root, "")

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Rel) < strings.ToLower(out[j].Rel)
	})
	return out
}

// SkipDir reports whether a directory is tool or dependency state that file
// listings leave out.
func SkipDir(name string) bool {
	switch name {
	case ".git", "node_modules", "vendor":
		return true
	default:
		return false
	}
}
