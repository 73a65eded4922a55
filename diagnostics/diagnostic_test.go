package diagnostics

import "testing"

func TestParseError(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Diagnostic
	}{
		{
			name: "source and line",
			text: "init.lua:3: '=' expected near 'x'",
			want: Diagnostic{Line: 3, Message: "'=' expected near 'x'"},
		},
		{
			name: "source line and column",
			text: "main.go:7:12: expected ')', found newline",
			want: Diagnostic{Line: 7, Column: 12, Message: "expected ')', found newline"},
		},
		{
			name: "path with drive letter",
			text: "C:/src/main.go:4:1: expected declaration",
			want: Diagnostic{Line: 4, Column: 1, Message: "expected declaration"},
		},
		{
			name: "line only",
			text: "12: unmatched '('",
			want: Diagnostic{Line: 12, Message: "unmatched '('"},
		},
		{
			name: "line and column without source",
			text: "2:5: unexpected ')'",
			want: Diagnostic{Line: 2, Column: 5, Message: "unexpected ')'"},
		},
		{
			name: "numeric source name reads as line",
			text: "2024:7: unexpected symbol",
			want: Diagnostic{Line: 2024, Column: 7, Message: "unexpected symbol"},
		},
		{
			name: "numeric source name with line and column",
			text: "10:3:1: unexpected symbol",
			want: Diagnostic{Line: 3, Column: 1, Message: "unexpected symbol"},
		},
		{
			name: "no position",
			text: "unexpected end of input",
			want: Diagnostic{Message: "unexpected end of input"},
		},
		{
			name: "multi-line keeps first line",
			text: "a.go:1:1: first\nsecond",
			want: Diagnostic{Line: 1, Column: 1, Message: "first"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseError(tc.text)
			if got.Severity != SeverityError {
				t.Errorf("Severity = %v, want error", got.Severity)
			}
			if got.Line != tc.want.Line || got.Column != tc.want.Column || got.Message != tc.want.Message {
				t.Errorf("ParseError(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Line: 3, Column: 2, Message: "bad"}
	if got := d.String(); got != "3:2: error: bad" {
		t.Errorf("String = %q", got)
	}
	d = Diagnostic{Severity: SeverityWarning, Message: "meh"}
	if got := d.String(); got != "warning: meh" {
		t.Errorf("String = %q", got)
	}
	if d.HasLine() {
		t.Error("HasLine = true for diagnostic without line")
	}
}
