package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/odvcencio/scribe/diagnostics"
	"github.com/odvcencio/scribe/storage"
)

func TestResolvePaths(t *testing.T) {
	g := storage.NewMemory()
	g.AddDir("/work/proj")
	g.AddFile("/work/notes.txt", "hi")

	cases := []struct {
		name     string
		args     []string
		wantRoot string
		want     []string
	}{
		{name: "no args", wantRoot: "/work"},
		{name: "directory", args: []string{"proj"}, wantRoot: "/work/proj"},
		{name: "file", args: []string{"notes.txt"}, wantRoot: "/work", want: []string{"/work/notes.txt"}},
		{name: "new file", args: []string{"proj/new.go"}, wantRoot: "/work/proj", want: []string{"/work/proj/new.go"}},
		{
			name:     "directory wins",
			args:     []string{"/work/notes.txt", "proj"},
			wantRoot: "/work",
			want:     []string{"/work/notes.txt"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, files := resolvePaths(g, tc.args, "/work")
			if root != tc.wantRoot {
				t.Errorf("root = %q, want %q", root, tc.wantRoot)
			}
			if strings.Join(files, ",") != strings.Join(tc.want, ",") {
				t.Errorf("files = %v, want %v", files, tc.want)
			}
		})
	}
}

func TestFormatDiagnostic(t *testing.T) {
	color.NoColor = true
	cases := []struct {
		d    diagnostics.Diagnostic
		want string
	}{
		{diagnostics.Diagnostic{Line: 3, Column: 7, Message: "unmatched '('"}, "/a.c:3:7: error: unmatched '('"},
		{diagnostics.Diagnostic{Line: 3, Message: "boom"}, "/a.c:3: error: boom"},
		{diagnostics.Diagnostic{Message: "bad"}, "/a.c: error: bad"},
		{diagnostics.Diagnostic{Severity: diagnostics.SeverityWarning, Line: 1, Message: "w"}, "/a.c:1: warning: w"},
	}
	for _, tc := range cases {
		if got := formatDiagnostic("/a.c", tc.d); got != tc.want {
			t.Errorf("formatDiagnostic(%+v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestCheckPaths(t *testing.T) {
	color.NoColor = true
	g := storage.NewMemory()
	g.AddDir("/proj")
	g.AddFile("/proj/ok.txt", "(fine)\n")
	g.AddFile("/proj/bad.txt", "one\n(two\n")
	g.AddFile("/proj/empty.txt", "")
	g.AddDir("/proj/.git")
	g.AddFile("/proj/.git/broken.txt", "((((")

	sel := &diagnostics.Selector{TreeSitter: false}
	var out bytes.Buffer
	n, err := checkPaths(&out, g, sel, []string{"."}, "/proj")
	if err != nil {
		t.Fatalf("checkPaths: %v", err)
	}
	if n != 1 {
		t.Errorf("files with problems = %d, want 1\n%s", n, out.String())
	}
	want := "/proj/bad.txt:2:1: error: unmatched '('\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	if _, err := checkPaths(&out, g, sel, []string{"missing.txt"}, "/proj"); err == nil {
		t.Error("checking a missing file should fail")
	}
}
