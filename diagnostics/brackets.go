package diagnostics

import "fmt"

// bracketPairs maps each closing bracket to its opening partner.
var bracketPairs = map[rune]rune{
	')': '(',
	'}': '{',
	']': '[',
}

// openBrackets is the set of opening bracket characters.
var openBrackets = map[rune]bool{
	'(': true,
	'{': true,
	'[': true,
}

// BracketChecker is the fallback checker for documents without a grammar.
// It verifies that () {} [] are balanced, ignoring brackets inside
// double-quoted strings.
//
// Error contract: "<line>:<col>: <message>".
type BracketChecker struct{}

type openBracket struct {
	ch        rune
	line, col int
}

func (BracketChecker) Check(_ string, src []byte) error {
	var stack []openBracket
	line, col := 1, 0
	inString, escaped := false, false

	for _, r := range string(src) {
		col++
		if r == '\n' {
			line++
			col = 0
			inString, escaped = false, false
			continue
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		if r == '"' {
			inString = true
			continue
		}

		if openBrackets[r] {
			stack = append(stack, openBracket{ch: r, line: line, col: col})
			continue
		}
		partner, isClose := bracketPairs[r]
		if !isClose {
			continue
		}
		if len(stack) == 0 {
			return fmt.Errorf("%d:%d: unexpected '%c'", line, col, r)
		}
		top := stack[len(stack)-1]
		if top.ch != partner {
			return fmt.Errorf("%d:%d: '%c' does not match '%c' opened on line %d", line, col, r, top.ch, top.line)
		}
		stack = stack[:len(stack)-1]
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("%d:%d: unmatched '%c'", top.line, top.col, top.ch)
	}
	return nil
}
