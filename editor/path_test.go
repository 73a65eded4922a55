package editor

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in, base, want string
	}{
		{in: "/a/b", base: "/x", want: "/a/b"},
		{in: "a/b", base: "/x", want: "/x/a/b"},
		{in: `a\b\c.go`, base: "/x", want: "/x/a/b/c.go"},
		{in: "//a///b//", base: "/", want: "/a/b"},
		{in: "/a/b/", base: "/", want: "/a/b"},
		{in: "/", base: "/x", want: "/"},
		{in: "", base: "/proj", want: "/proj"},
		{in: ".", base: "/proj/", want: "/proj"},
		{in: "", base: "", want: "/"},
		{in: "./a/../b", base: "/proj", want: "/proj/b"},
		{in: "../../..", base: "/proj", want: "/"},
		{in: "  /a/b  ", base: "/", want: "/a/b"},
		{in: `C:\src\main.go`, base: "/", want: "C:/src/main.go"},
		{in: `C:\`, base: "/", want: "C:/"},
		{in: "rel", base: "proj", want: "/proj/rel"},
	}

	for _, tc := range cases {
		got, err := Canonicalize(tc.in, tc.base)
		if err != nil {
			t.Errorf("Canonicalize(%q, %q) error: %v", tc.in, tc.base, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Canonicalize(%q, %q) = %q, want %q", tc.in, tc.base, got, tc.want)
		}
	}
}

func TestCanonicalizeRejectsNUL(t *testing.T) {
	if _, err := Canonicalize("a\x00b", "/"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("err = %v, want ErrInvalidPath", err)
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	for _, p := range []string{"/", "/a", "/a/b.txt", "C:/x"} {
		got, err := Canonicalize(p, "/elsewhere")
		if err != nil || got != p {
			t.Errorf("Canonicalize(%q) = %q, %v; want unchanged", p, got, err)
		}
	}
}

func TestDisplayNameAndParentDir(t *testing.T) {
	if got := DisplayName("/a/b/c.go"); got != "c.go" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := ParentDir("/a/b/c.go"); got != "/a/b" {
		t.Errorf("ParentDir = %q", got)
	}
	if got := ParentDir("/c.go"); got != "/" {
		t.Errorf("ParentDir(/c.go) = %q", got)
	}
	if got := ParentDir("C:/c.go"); got != "C:/" {
		t.Errorf("ParentDir(C:/c.go) = %q", got)
	}
}
