package diagnostics

import (
	"strings"
	"testing"
)

func TestBracketChecker(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "empty", src: ""},
		{name: "balanced", src: "f(a[1], {b})\n"},
		{name: "brackets in string", src: "print(\"(\")\n"},
		{name: "escaped quote in string", src: "x = \"\\\"(\"\n"},
		{name: "unmatched open", src: "x = 1\ny = f(2\n", wantErr: "2:6: unmatched '('"},
		{name: "unexpected close", src: "a)\n", wantErr: "1:2: unexpected ')'"},
		{name: "mismatch", src: "(\n]", wantErr: "2:1: ']' does not match '(' opened on line 1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := BracketChecker{}.Check("notes.txt", []byte(tc.src))
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Check = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Check = nil, want %q", tc.wantErr)
			}
			if err.Error() != tc.wantErr {
				t.Errorf("Check = %q, want %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestGoChecker(t *testing.T) {
	valid := []struct {
		name string
		src  string
	}{
		{name: "ok", src: "package main\n\nfunc main() {}\n"},
		{name: "empty", src: ""},
		{name: "blank", src: " \n\t\n"},
	}
	for _, tc := range valid {
		if err := (GoChecker{}).Check("/tmp/"+tc.name+".go", []byte(tc.src)); err != nil {
			t.Errorf("%s: %v", tc.name, err)
		}
	}

	err := GoChecker{}.Check("/tmp/bad.go", []byte("package main\n\nfunc main() {\n\tprintln((1)\n}\n"))
	if err == nil {
		t.Fatal("invalid source: got nil error")
	}
	if !strings.HasPrefix(err.Error(), "bad.go:") {
		t.Errorf("error %q does not start with the file name", err)
	}
	d := ParseError(err.Error())
	if d.Line != 4 {
		t.Errorf("line = %d, want 4 (error %q)", d.Line, err)
	}
}

func TestSelectorFor(t *testing.T) {
	s := &Selector{TreeSitter: false}
	if _, ok := s.For("/src/main.go").(GoChecker); !ok {
		t.Error("main.go should use GoChecker")
	}
	if _, ok := s.For("/src/notes.txt").(BracketChecker); !ok {
		t.Error("notes.txt should use BracketChecker")
	}
	if _, ok := s.For("").(BracketChecker); !ok {
		t.Error("untitled should use BracketChecker")
	}
}
