package diagnostics

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gotreesitter"
	"github.com/odvcencio/gotreesitter/grammars"
)

// treeSitterChecker reports the first ERROR or MISSING node of a tree-sitter
// parse.
//
// Error contract: "<name>:<line>: syntax error near <quoted text>" or
// "<name>:<line>: missing <node type>".
type treeSitterChecker struct {
	entry *grammars.LangEntry
	lang  *gotreesitter.Language
}

func newTreeSitterChecker(entry *grammars.LangEntry) (*treeSitterChecker, bool) {
	lang := entry.Language()
	if lang == nil {
		return nil, false
	}
	support := grammars.EvaluateParseSupport(*entry, lang)
	if support.Backend == grammars.ParseBackendUnsupported {
		return nil, false
	}
	return &treeSitterChecker{entry: entry, lang: lang}, true
}

func (c *treeSitterChecker) Check(name string, src []byte) error {
	if len(src) == 0 {
		return nil
	}
	parser := gotreesitter.NewParser(c.lang)
	var tree *gotreesitter.Tree
	if c.entry.TokenSourceFactory != nil {
		tree = parser.ParseWithTokenSource(src, c.entry.TokenSourceFactory(src, c.lang))
	} else {
		tree = parser.Parse(src)
	}
	if tree == nil || tree.RootNode() == nil {
		return fmt.Errorf("%s: unable to parse", displayName(name))
	}
	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	bad := firstErrorNode(root, c.lang)
	if bad == nil {
		return fmt.Errorf("%s:%d: syntax error", displayName(name), int(root.StartPoint().Row)+1)
	}
	line := int(bad.StartPoint().Row) + 1
	if bad.IsMissing() {
		return fmt.Errorf("%s:%d: missing %s", displayName(name), line, bad.Type(c.lang))
	}
	return fmt.Errorf("%s:%d: syntax error near %q", displayName(name), line, excerpt(bad.Text(src)))
}

// firstErrorNode walks the tree in document order and returns the first
// ERROR or MISSING node.
func firstErrorNode(node *gotreesitter.Node, lang *gotreesitter.Language) *gotreesitter.Node {
	if node == nil {
		return nil
	}
	if node.IsMissing() || node.Type(lang) == "ERROR" {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < node.ChildCount(); i++ {
		if found := firstErrorNode(node.Child(i), lang); found != nil {
			return found
		}
	}
	return nil
}

func excerpt(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	const max = 24
	if r := []rune(text); len(r) > max {
		text = string(r[:max]) + "…"
	}
	return text
}

// Language returns the lower-case language id for a document name, or ""
// when no grammar claims it.
func Language(name string) string {
	base := displayName(name)
	if strings.HasSuffix(base, ".go") {
		return "go"
	}
	entry := grammars.DetectLanguage(base)
	if entry == nil {
		return ""
	}
	return strings.ToLower(entry.Name)
}
