package editor

// MaxRecentFiles bounds the recent-files list.
const MaxRecentFiles = 8

// RecentFiles is a most-recent-first list of canonical paths without
// duplicates.
type RecentFiles struct {
	paths []string
}

// Touch moves path to the front, inserting it if needed and dropping the
// oldest entry past MaxRecentFiles.
func (r *RecentFiles) Touch(path string) {
	if path == "" {
		return
	}
	r.Remove(path)
	r.paths = append([]string{path}, r.paths...)
	if len(r.paths) > MaxRecentFiles {
		r.paths = r.paths[:MaxRecentFiles]
	}
}

// Remove drops path from the list.
func (r *RecentFiles) Remove(path string) {
	for i, p := range r.paths {
		if p == path {
			r.paths = append(r.paths[:i], r.paths[i+1:]...)
			return
		}
	}
}

// List returns a copy of the paths, most recent first.
func (r *RecentFiles) List() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

func (r *RecentFiles) Len() int {
	return len(r.paths)
}
