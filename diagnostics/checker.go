package diagnostics

import (
	"bytes"
	"go/parser"
	"go/token"
	"path"
	"strings"

	"github.com/odvcencio/gotreesitter/grammars"
)

// Checker performs a syntax-only parse of src. A nil error means the text is
// syntactically valid. A non-nil error's text must follow one of the shapes
// ParseError understands.
type Checker interface {
	Check(name string, src []byte) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(name string, src []byte) error

func (f CheckerFunc) Check(name string, src []byte) error {
	return f(name, src)
}

// GoChecker checks Go source with go/parser.
//
// Error contract: "<name>:<line>:<col>: <message>", with
// " (and N more errors)" appended when the parser found several.
//
// Empty or whitespace-only source is accepted so that a new file does not
// start out with a missing package clause error.
type GoChecker struct{}

func (GoChecker) Check(name string, src []byte) error {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil
	}
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, displayName(name), src, parser.SkipObjectResolution)
	return err
}

// Selector picks the checker for a document name.
type Selector struct {
	// TreeSitter enables tree-sitter checking for languages that have a
	// registered grammar.
	TreeSitter bool
}

// DefaultSelector enables every checker.
func DefaultSelector() *Selector {
	return &Selector{TreeSitter: true}
}

// For returns the checker to use for a document named name. Go files use
// go/parser, languages with a usable grammar use tree-sitter, and everything
// else falls back to bracket balancing.
func (s *Selector) For(name string) Checker {
	base := path.Base(name)
	if strings.HasSuffix(base, ".go") {
		return GoChecker{}
	}
	if s != nil && s.TreeSitter && base != "" && base != "." {
		if entry := grammars.DetectLanguage(base); entry != nil {
			if ts, ok := newTreeSitterChecker(entry); ok {
				return ts
			}
		}
	}
	return BracketChecker{}
}

func displayName(name string) string {
	if name == "" {
		return "untitled"
	}
	return path.Base(name)
}
