package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/odvcencio/scribe/clock"
	"github.com/odvcencio/scribe/diagnostics"
	"github.com/odvcencio/scribe/editor"
	"github.com/odvcencio/scribe/storage"
)

// errProblems makes the process exit 1 without printing anything more.
var errProblems = errors.New("problems found")

var (
	locationColor = color.New(color.Bold)
	severityColor = color.New(color.FgRed, color.Bold)
	summaryColor  = color.New(color.FgYellow)
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report syntax diagnostics without opening the editor",
	Long:  `check runs the editor's syntax checkers over files, or over every file below a directory, and prints one line per problem.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-tree-sitter", false, "use the bracket checker for languages without a Go parser")
}

func runCheck(cmd *cobra.Command, args []string) error {
	setupColor(cmd)
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	noTS, _ := cmd.Flags().GetBool("no-tree-sitter")
	sel := &diagnostics.Selector{TreeSitter: cfg.Diagnostics.TreeSitter && !noTS}

	cwd, err := editorCwd()
	if err != nil {
		return err
	}
	n, err := checkPaths(cmd.OutOrStdout(), storage.OS{}, sel, args, cwd)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), summaryColor.Sprintf("%d file(s) with problems", n))
		return errProblems
	}
	return nil
}

// checkPaths checks files and directory trees, printing each diagnostic.
// It returns how many files had one.
func checkPaths(w io.Writer, g storage.Gateway, sel *diagnostics.Selector, args []string, cwd string) (int, error) {
	engine := diagnostics.NewEngine(clock.Real(), diagnostics.WithSelector(sel))
	bad := 0
	for _, arg := range args {
		p, err := editor.Canonicalize(arg, cwd)
		if err != nil {
			return bad, fmt.Errorf("%s: %w", arg, err)
		}
		targets := []string{p}
		if g.IsDir(p) {
			targets = targets[:0]
			for _, f := range storage.Walk(g, p, storage.SkipDir) {
				targets = append(targets, f.Abs)
			}
		}
		for _, t := range targets {
			text, err := g.Read(t)
			if err != nil {
				return bad, fmt.Errorf("%s: %w", t, err)
			}
			diags := engine.Compute(editor.NewFileBuffer(t, text))
			for _, d := range diags {
				fmt.Fprintln(w, formatDiagnostic(t, d))
			}
			if len(diags) > 0 {
				bad++
			}
		}
	}
	return bad, nil
}

// formatDiagnostic renders "path:line:col: severity: message", leaving out
// the position parts the diagnostic lacks.
func formatDiagnostic(p string, d diagnostics.Diagnostic) string {
	loc := []string{p}
	if d.HasLine() {
		loc = append(loc, fmt.Sprint(d.Line))
		if d.Column > 0 {
			loc = append(loc, fmt.Sprint(d.Column))
		}
	}
	return fmt.Sprintf("%s: %s: %s",
		locationColor.Sprint(strings.Join(loc, ":")),
		severityColor.Sprint(d.Severity.String()),
		d.Message)
}
