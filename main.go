package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/odvcencio/fluffyui/fluffy"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/odvcencio/scribe/config"
	"github.com/odvcencio/scribe/editor"
	"github.com/odvcencio/scribe/storage"
)

var rootCmd = &cobra.Command{
	Use:           "scribe [paths...]",
	Short:         "Terminal source-code editor",
	Long:          `scribe edits files in the terminal with tabs, a split view and live syntax diagnostics.`,
	RunE:          runEditor,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/scribe/config.toml)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.Flags().String("theme", "", "FSS stylesheet path")
	rootCmd.Flags().String("web", "", "serve the terminal UI in a browser at this address (e.g. :8080)")
	rootCmd.Flags().String("mcp", "", "serve MCP editor tools at this address")
	rootCmd.Flags().String("bridge", "", "serve the JSON-RPC web bridge at this address")
	rootCmd.Flags().Bool("split", false, "start with the split view open")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errProblems) {
			fmt.Fprintf(os.Stderr, "scribe: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// setupColor applies the --color flag.
func setupColor(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
		cfg.Theme = theme
	}
	if addr, _ := cmd.Flags().GetString("bridge"); addr != "" {
		cfg.Web.Addr = addr
	}
	split, _ := cmd.Flags().GetBool("split")

	logger, closer, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	cwd, err := editorCwd()
	if err != nil {
		return err
	}
	store := storage.OS{}
	root, files := resolvePaths(store, args, cwd)

	var appOpts []fluffy.AppOption
	if addr, _ := cmd.Flags().GetString("web"); addr != "" {
		appOpts = append(appOpts, fluffy.WithWebServer(addr))
	}

	if addr, _ := cmd.Flags().GetString("mcp"); addr != "" {
		appOpts = append(appOpts, fluffy.WithMCP(addr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, store, root, runOptions{
		cfg:        cfg,
		paths:      files,
		split:      split,
		bridgeAddr: cfg.Web.Addr,
		logger:     logger,
		appOpts:    appOpts,
	})
}

// resolvePaths splits command-line paths into files to open and a project
// root: the first directory given, else the parent of the first file, else
// cwd. Paths that do not exist are files to create.
func resolvePaths(g storage.Gateway, args []string, cwd string) (string, []string) {
	root := ""
	var files []string
	for _, arg := range args {
		p, err := editor.Canonicalize(arg, cwd)
		if err != nil {
			continue
		}
		if g.IsDir(p) {
			if root == "" {
				root = p
			}
			continue
		}
		files = append(files, p)
		if root == "" {
			root = editor.ParentDir(p)
		}
	}
	if root == "" {
		root = cwd
	}
	return root, files
}

func editorCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	return editor.Canonicalize(cwd, "/")
}
