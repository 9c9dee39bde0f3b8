// Package main implements gitdeck-smoke, a headless diagnostic that runs the
// gitdeck engine against a repository without the TUI: it opens the repo,
// lets the full refresh battery finish and prints what the engine loaded.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gitdeck/gitdeck/internal/buildinfo"
	"github.com/gitdeck/gitdeck/internal/config"
	"github.com/gitdeck/gitdeck/internal/git"
	"github.com/gitdeck/gitdeck/internal/log"
	"github.com/gitdeck/gitdeck/internal/repo"
	"github.com/gitdeck/gitdeck/internal/run"
	urfavecli "github.com/urfave/cli/v3"
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

	cmd := &urfavecli.Command{
		Name:    "gitdeck-smoke",
		Usage:   "Exercise the gitdeck engine against a repository and report what it loaded",
		Version: buildinfo.Get().Version,
		Flags:   smokeFlags(),
		Action:  runSmoke,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func smokeFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "repo",
			Usage: "Repository path (defaults to the current directory)",
		},
		&urfavecli.StringFlag{
			Name:  "git-executable",
			Value: "git",
			Usage: "Git binary to run",
		},
		&urfavecli.IntFlag{
			Name:  "log-limit",
			Value: config.DefaultLogLimit,
			Usage: "Number of commits to load",
		},
		&urfavecli.DurationFlag{
			Name:  "timeout",
			Value: 30 * time.Second,
			Usage: "Give up when the engine is still busy after this long",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.BoolFlag{
			Name:  "json",
			Usage: "Output as JSON",
		},
	}
}

func runSmoke(ctx context.Context, cmd *urfavecli.Command) error {
	if debugLog := cmd.String("debug-log"); debugLog != "" {
		expanded, err := config.ExpandPath(debugLog)
		if err != nil {
			expanded = debugLog
		}
		if err := log.SetFile(expanded); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", expanded, err)
		}
	} else {
		_ = log.SetFile("")
	}
	defer func() {
		_ = log.Close()
	}()

	repoPath := cmd.String("repo")
	if repoPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoPath = wd
	}

	runner := run.NewExecRunner()
	service := git.NewService(git.NewRunner(runner, cmd.String("git-executable")))
	ctrl := repo.NewController(service, repo.Options{
		LogLimit: cmd.Int("log-limit"),
		Logf:     log.Printf,
	})
	defer ctrl.Close()

	snap, err := exercise(ctx, ctrl, repoPath, cmd.Duration("timeout"))
	if err != nil {
		return err
	}

	report := buildReport(snap)
	if cmd.Bool("json") {
		if err := outputJSON(report); err != nil {
			return err
		}
	} else {
		if err := outputSummary(report); err != nil {
			return err
		}
	}

	if snap.LastError != nil {
		return fmt.Errorf("engine error: %w", snap.LastError)
	}
	return nil
}

// exercise opens the repository and waits for the engine to go idle: the
// version check, the validation and the whole refresh fan-out have then been
// applied to the snapshot. On timeout the running command is killed.
func exercise(ctx context.Context, ctrl *repo.Controller, repoPath string, timeout time.Duration) (repo.Snapshot, error) {
	notify := ctrl.Subscribe()

	ctrl.CheckGitVersion()
	ctrl.OpenRepo(repoPath)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			ctrl.KillRunning()
			return ctrl.Snapshot(), ctx.Err()
		case <-timer.C:
			ctrl.KillRunning()
			return ctrl.Snapshot(), fmt.Errorf("engine still busy after %s", timeout)
		case <-notify:
			if ctrl.Idle() {
				return ctrl.Snapshot(), nil
			}
		}
	}
}

// smokeReport is the flattened snapshot the diagnostic prints.
type smokeReport struct {
	RepoPath       string   `json:"repo_path"`
	GitVersion     string   `json:"git_version"`
	Branch         string   `json:"branch"`
	Upstream       string   `json:"upstream,omitempty"`
	Ahead          int      `json:"ahead"`
	Behind         int      `json:"behind"`
	Staged         int      `json:"staged"`
	Unstaged       int      `json:"unstaged"`
	Untracked      int      `json:"untracked"`
	Conflicts      int      `json:"conflicts"`
	Commits        int      `json:"commits"`
	Branches       int      `json:"branches"`
	RemoteBranches int      `json:"remote_branches"`
	Stashes        int      `json:"stashes"`
	Tags           int      `json:"tags"`
	Remotes        []string `json:"remotes"`
	Error          string   `json:"error,omitempty"`
}

func buildReport(snap repo.Snapshot) smokeReport {
	report := smokeReport{
		RepoPath:       snap.RepoPath,
		GitVersion:     snap.GitVersion,
		Branch:         snap.CurrentBranch(),
		Conflicts:      len(snap.Conflicts),
		Commits:        len(snap.Log),
		Branches:       len(snap.Branches),
		RemoteBranches: len(snap.RemoteBranches),
		Stashes:        len(snap.Stashes),
		Tags:           len(snap.Tags),
		Remotes:        make([]string, 0, len(snap.Remotes)),
	}

	if snap.Status != nil {
		report.Staged = len(snap.Status.Staged)
		report.Unstaged = len(snap.Status.Unstaged)
		report.Untracked = len(snap.Status.Untracked)
		if snap.Status.Branch != nil {
			report.Upstream = snap.Status.Branch.Upstream
			report.Ahead = snap.Status.Branch.Ahead
			report.Behind = snap.Status.Branch.Behind
		}
	}
	for _, remote := range snap.Remotes {
		report.Remotes = append(report.Remotes, remote.Name)
	}
	if snap.LastError != nil {
		report.Error = snap.LastError.Error()
	}
	return report
}

// outputJSON outputs the report as indented JSON.
func outputJSON(report smokeReport) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// outputSummary outputs the report as a formatted table.
func outputSummary(report smokeReport) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	branch := report.Branch
	if branch == "" {
		branch = "(detached)"
	}
	if report.Upstream != "" {
		branch += fmt.Sprintf(" -> %s", report.Upstream)
	}
	if report.Ahead > 0 || report.Behind > 0 {
		branch += fmt.Sprintf(" (ahead %d, behind %d)", report.Ahead, report.Behind)
	}

	fmt.Fprintf(w, "REPO\t%s\n", report.RepoPath)
	fmt.Fprintf(w, "GIT\t%s\n", report.GitVersion)
	fmt.Fprintf(w, "BRANCH\t%s\n", branch)
	fmt.Fprintf(w, "STAGED\t%d\n", report.Staged)
	fmt.Fprintf(w, "UNSTAGED\t%d\n", report.Unstaged)
	fmt.Fprintf(w, "UNTRACKED\t%d\n", report.Untracked)
	fmt.Fprintf(w, "CONFLICTS\t%d\n", report.Conflicts)
	fmt.Fprintf(w, "COMMITS\t%d\n", report.Commits)
	fmt.Fprintf(w, "BRANCHES\t%d local, %d remote\n", report.Branches, report.RemoteBranches)
	fmt.Fprintf(w, "STASHES\t%d\n", report.Stashes)
	fmt.Fprintf(w, "TAGS\t%d\n", report.Tags)
	fmt.Fprintf(w, "REMOTES\t%s\n", strings.Join(report.Remotes, ", "))
	if report.Error != "" {
		fmt.Fprintf(w, "ERROR\t%s\n", report.Error)
	}

	return w.Flush()
}
