package editor

import (
	"fmt"
	"reflect"
	"testing"
)

func TestRecentFilesTouch(t *testing.T) {
	var r RecentFiles
	r.Touch("/a")
	r.Touch("/b")
	r.Touch("/a")
	r.Touch("")

	want := []string{"/a", "/b"}
	if got := r.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List = %v, want %v", got, want)
	}
}

func TestRecentFilesBounded(t *testing.T) {
	var r RecentFiles
	for i := 0; i < 12; i++ {
		r.Touch(fmt.Sprintf("/f%d", i))
	}
	if r.Len() != MaxRecentFiles {
		t.Fatalf("Len = %d, want %d", r.Len(), MaxRecentFiles)
	}
	got := r.List()
	if got[0] != "/f11" || got[MaxRecentFiles-1] != "/f4" {
		t.Errorf("List = %v", got)
	}

	seen := map[string]bool{}
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate %q", p)
		}
		seen[p] = true
	}
}

func TestRecentFilesListIsCopy(t *testing.T) {
	var r RecentFiles
	r.Touch("/a")
	l := r.List()
	l[0] = "/mutated"
	if r.List()[0] != "/a" {
		t.Error("List exposed internal slice")
	}
}
