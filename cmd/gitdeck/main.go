// Package main is the entry point for the gitdeck application.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gitdeck/gitdeck/internal/buildinfo"
	"github.com/gitdeck/gitdeck/internal/config"
	"github.com/gitdeck/gitdeck/internal/git"
	"github.com/gitdeck/gitdeck/internal/log"
	"github.com/gitdeck/gitdeck/internal/repo"
	"github.com/gitdeck/gitdeck/internal/run"
	"github.com/gitdeck/gitdeck/internal/theme"
	"github.com/gitdeck/gitdeck/internal/tui"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	urfavecli.VersionPrinter = func(_ *urfavecli.Context) {
		info := buildinfo.Get()
		commit := info.Commit
		if info.Dirty {
			commit += " (modified)"
		}
		fmt.Printf("gitdeck version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s\n",
			info.Version, commit, info.Date, info.BuiltBy)
	}

	cliApp := &urfavecli.App{
		Name:                 "gitdeck",
		Usage:                "A TUI front-end for git repositories",
		ArgsUsage:            "[repository-path]",
		Version:              buildinfo.Get().Version,
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			completionCommand(),
		},

		Before: func(c *urfavecli.Context) error {
			// Handle early exit flags
			// Note: --version is handled automatically by urfave/cli
			if c.Bool("show-themes") {
				printThemes()
				os.Exit(0)
			}
			return nil
		},

		Action: runTUI,

		BashComplete: completeGlobalFlags,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(c *urfavecli.Context) error {
	// Set up debug logging before loading config
	if debugLog := c.String("debug-log"); debugLog != "" {
		openDebugLog(debugLog)
	}

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// If debug log wasn't set via flag, check if it's in the config
	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			openDebugLog(cfg.DebugLog)
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	}

	if err := applyThemeConfig(cfg, c.String("theme")); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	// Apply CLI config overrides (highest precedence)
	if configOverrides := c.StringSlice("config"); len(configOverrides) > 0 {
		if err := cfg.ApplyCLIOverrides(configOverrides); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying config overrides: %v\n", err)
			_ = log.Close()
			return err
		}
	}

	repoPath, err := resolveRepoPath(c.Args().First())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	// The TUI needs the terminal; refuse to start when stdout is a pipe.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		err := fmt.Errorf("stdout is not a terminal; gitdeck needs an interactive session")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	if _, err := exec.LookPath(cfg.GitExecutable); err != nil {
		err := fmt.Errorf("git executable %q not found: %w", cfg.GitExecutable, err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	runner := run.NewExecRunner()
	service := git.NewService(git.NewRunner(runner, cfg.GitExecutable))
	ctrl := repo.NewController(service, repo.Options{
		LogLimit: cfg.LogLimit,
		Logf:     log.Printf,
	})

	model := tui.New(cfg, ctrl, repoPath)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()
	ctrl.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = log.Close()
		return err
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}

	return nil
}

// openDebugLog points the debug logger at path, expanding ~ and env vars.
func openDebugLog(path string) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		expanded = path
	}
	if err := log.SetFile(expanded); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", expanded, err)
	}
}

// resolveRepoPath turns the optional positional argument into an absolute
// directory path, defaulting to the current working directory.
func resolveRepoPath(arg string) (string, error) {
	if arg == "" {
		return os.Getwd()
	}

	expanded, err := config.ExpandPath(arg)
	if err != nil {
		return "", fmt.Errorf("error expanding repository path: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("error resolving repository path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("repository path %q: %w", arg, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("repository path %q is not a directory", arg)
	}
	return abs, nil
}

// applyThemeConfig applies theme configuration from command line flag.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}

	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q", themeName)
	}

	cfg.Theme = normalized
	return nil
}

// printThemes prints the registered theme names.
func printThemes() {
	names := theme.AvailableThemes()
	sort.Strings(names)
	fmt.Println("Available themes:")
	for _, name := range names {
		if theme.IsLight(name) {
			fmt.Printf("  %-16s (light)\n", name)
			continue
		}
		fmt.Printf("  %s\n", name)
	}
}
