package main

import (
	"path"
	"unicode/utf8"

	"github.com/odvcencio/fluffyui/backend"
	"github.com/odvcencio/fluffyui/style"
	"github.com/odvcencio/fluffyui/widgets"
	"github.com/odvcencio/gotreesitter"
	"github.com/odvcencio/gotreesitter/grammars"

	"github.com/odvcencio/scribe/diagnostics"
	"github.com/odvcencio/scribe/editor"
)

// highlightState holds the syntax highlighter for the active buffer. It is
// only touched under the event gate.
type highlightState struct {
	name        string
	highlighter *gotreesitter.Highlighter
	tree        *gotreesitter.Tree
	lastText    string
}

// setup prepares a highlighter for name's language. It is a no-op when the
// name has not changed. Returns true if highlighting is available.
func (hs *highlightState) setup(name string) bool {
	if name == hs.name {
		return hs.highlighter != nil
	}
	hs.name = name
	hs.highlighter = nil
	hs.tree = nil
	hs.lastText = ""

	entry := grammars.DetectLanguage(path.Base(name))
	if entry == nil {
		return false
	}
	lang := entry.Language()
	if lang == nil {
		return false
	}
	support := grammars.EvaluateParseSupport(*entry, lang)
	if support.Backend == grammars.ParseBackendUnsupported {
		return false
	}

	var opts []gotreesitter.HighlighterOption
	if entry.TokenSourceFactory != nil {
		factory := entry.TokenSourceFactory
		opts = append(opts, gotreesitter.WithTokenSourceFactory(func(src []byte) gotreesitter.TokenSource {
			return factory(src, lang)
		}))
	}
	h, err := gotreesitter.NewHighlighter(lang, entry.HighlightQuery, opts...)
	if err != nil {
		return false
	}
	hs.highlighter = h
	return true
}

// highlight runs an incremental pass over text.
func (hs *highlightState) highlight(text string) []gotreesitter.HighlightRange {
	if hs.highlighter == nil {
		return nil
	}
	var ranges []gotreesitter.HighlightRange
	ranges, hs.tree = hs.highlighter.HighlightIncremental([]byte(text), hs.tree)
	hs.lastText = text
	return ranges
}

// byteOffsetToRuneOffset builds a byte-to-rune offset lookup for text.
func byteOffsetToRuneOffset(text string) []int {
	mapping := make([]int, len(text)+1)
	runeIdx := 0
	for byteIdx := 0; byteIdx < len(text); {
		mapping[byteIdx] = runeIdx
		_, size := utf8.DecodeRuneInString(text[byteIdx:])
		for j := 1; j < size && byteIdx+j <= len(text); j++ {
			mapping[byteIdx+j] = runeIdx
		}
		byteIdx += size
		runeIdx++
	}
	mapping[len(text)] = runeIdx
	return mapping
}

// syntaxHighlights styles highlight captures with the theme's classes.
func syntaxHighlights(theme *style.Stylesheet, text string, ranges []gotreesitter.HighlightRange) []widgets.TextAreaHighlight {
	if len(ranges) == 0 || theme == nil {
		return nil
	}
	mapping := byteOffsetToRuneOffset(text)
	out := make([]widgets.TextAreaHighlight, 0, len(ranges))
	for _, r := range ranges {
		start := min(int(r.StartByte), len(text))
		end := min(int(r.EndByte), len(text))
		resolved := theme.ResolveClass(r.Capture)
		if resolved.IsZero() {
			continue
		}
		out = append(out, widgets.TextAreaHighlight{
			Start: mapping[start],
			End:   mapping[end],
			Style: resolved.ToBackend(),
		})
	}
	return out
}

var diagnosticStyle = backend.DefaultStyle().Foreground(backend.ColorRed).Reverse(true)

// diagnosticHighlights marks the whole line of each positioned diagnostic.
func diagnosticHighlights(text string, diags []diagnostics.Diagnostic) []widgets.TextAreaHighlight {
	var out []widgets.TextAreaHighlight
	for _, d := range diags {
		if !d.HasLine() || d.Line > editor.LineCount(text) {
			continue
		}
		start := editor.CursorToOffset(text, editor.Cursor{Line: d.Line, Col: 1})
		end := editor.CursorToOffset(text, editor.Cursor{Line: d.Line, Col: 1 << 30})
		if end == start {
			end = start + 1
		}
		out = append(out, widgets.TextAreaHighlight{Start: start, End: end, Style: diagnosticStyle})
	}
	return out
}
