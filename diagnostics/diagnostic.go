// Package diagnostics runs debounced syntax checks over open documents.
//
// A check is a compile checkpoint, not a linter: each computation yields
// either no diagnostics or exactly one error extracted from the checker's
// error text.
package diagnostics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// Diagnostic is one problem found in a document. Line and Column are
// 1-based; zero means the position could not be recovered.
type Diagnostic struct {
	Severity Severity
	Line     int
	Column   int
	Message  string
}

// HasLine reports whether the diagnostic carries a line number.
func (d Diagnostic) HasLine() bool {
	return d.Line > 0
}

func (d Diagnostic) String() string {
	switch {
	case d.Line > 0 && d.Column > 0:
		return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
	case d.Line > 0:
		return fmt.Sprintf("%d: %s: %s", d.Line, d.Severity, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
}

// Document is the engine's view of an open buffer.
type Document interface {
	// Name is the file name used to pick a checker and to label errors.
	Name() string
	Text() string
	SetDiagnostics([]Diagnostic)
}

var (
	// <source>:<line>: <message>, with an optional :<col> after the line.
	sourceLinePattern = regexp.MustCompile(`^(.*?):(\d+)(?::(\d+))?: (.*)$`)
	// <line>: <message>
	linePattern = regexp.MustCompile(`^(\d+)(?::(\d+))?: (.*)$`)
)

// ParseError converts a checker error string into a Diagnostic.
//
// Recognized shapes, tried in order:
//
//	<line>[:<col>]: <message>
//	<source>:<line>[:<col>]: <message>
//
// Because the bare form comes first, a source name made only of digits is
// read as a line number: "2024:7: x" is line 2024, column 7. Anything else becomes a Diagnostic with no line
// and the raw text as its message. Only the first line of a multi-line
// error is considered.
func ParseError(text string) Diagnostic {
	first := strings.TrimSpace(text)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = strings.TrimSpace(first[:i])
	}

	if m := linePattern.FindStringSubmatch(first); m != nil {
		return Diagnostic{
			Severity: SeverityError,
			Line:     atoi(m[1]),
			Column:   atoi(m[2]),
			Message:  m[3],
		}
	}
	if m := sourceLinePattern.FindStringSubmatch(first); m != nil {
		return Diagnostic{
			Severity: SeverityError,
			Line:     atoi(m[2]),
			Column:   atoi(m[3]),
			Message:  m[4],
		}
	}
	return Diagnostic{Severity: SeverityError, Message: first}
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
