package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitdeck/gitdeck/internal/completion"
	"github.com/gitdeck/gitdeck/internal/config"
	urfavecli "github.com/urfave/cli/v2"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = writer

	fn()

	_ = writer.Close()
	os.Stdout = orig

	out, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return string(out)
}

func TestGlobalFlagParsing(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		theme     string
		debugLog  string
		overrides []string
	}{
		{
			name: "no flags",
			args: []string{"gitdeck"},
		},
		{
			name:  "theme long",
			args:  []string{"gitdeck", "--theme", "nord"},
			theme: "nord",
		},
		{
			name:  "theme alias",
			args:  []string{"gitdeck", "-t", "dracula"},
			theme: "dracula",
		},
		{
			name:     "debug log",
			args:     []string{"gitdeck", "--debug-log", "/tmp/gd.log"},
			debugLog: "/tmp/gd.log",
		},
		{
			name:      "repeated config overrides",
			args:      []string{"gitdeck", "-C", "gd.theme=nord", "-C", "gd.log_limit=10"},
			overrides: []string{"gd.theme=nord", "gd.log_limit=10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotTheme, gotDebugLog string
			var gotOverrides []string

			app := &urfavecli.App{
				Name:  "gitdeck",
				Flags: globalFlags(),
				Action: func(c *urfavecli.Context) error {
					gotTheme = c.String("theme")
					gotDebugLog = c.String("debug-log")
					gotOverrides = c.StringSlice("config")
					return nil
				},
			}

			if err := app.Run(tt.args); err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if gotTheme != tt.theme {
				t.Errorf("theme = %q, want %q", gotTheme, tt.theme)
			}
			if gotDebugLog != tt.debugLog {
				t.Errorf("debug-log = %q, want %q", gotDebugLog, tt.debugLog)
			}
			if len(gotOverrides) != len(tt.overrides) {
				t.Fatalf("config overrides = %v, want %v", gotOverrides, tt.overrides)
			}
			for i, want := range tt.overrides {
				if gotOverrides[i] != want {
					t.Errorf("config override %d = %q, want %q", i, gotOverrides[i], want)
				}
			}
		})
	}
}

func TestApplyThemeConfig(t *testing.T) {
	tests := []struct {
		name        string
		themeName   string
		wantTheme   string
		expectError bool
	}{
		{name: "valid theme", themeName: "nord", wantTheme: "nord"},
		{name: "valid theme uppercase", themeName: "NORD", wantTheme: "nord"},
		{name: "invalid theme", themeName: "nonexistent-theme", expectError: true},
		{name: "empty theme keeps config", themeName: "", wantTheme: "dracula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Theme = "dracula"

			err := applyThemeConfig(cfg, tt.themeName)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Theme != tt.wantTheme {
				t.Errorf("theme = %q, want %q", cfg.Theme, tt.wantTheme)
			}
		})
	}
}

func TestResolveRepoPath(t *testing.T) {
	t.Run("empty arg uses working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}

		got, err := resolveRepoPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != wd {
			t.Errorf("path = %q, want %q", got, wd)
		}
	})

	t.Run("directory arg is made absolute", func(t *testing.T) {
		dir := t.TempDir()

		got, err := resolveRepoPath(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("path %q is not absolute", got)
		}
	})

	t.Run("missing directory errors", func(t *testing.T) {
		if _, err := resolveRepoPath(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Fatal("expected error for missing directory")
		}
	})

	t.Run("regular file errors", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "f")
		if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, err := resolveRepoPath(file); err == nil {
			t.Fatal("expected error for regular file")
		}
	})
}

func TestPrintThemes(t *testing.T) {
	out := captureStdout(t, func() {
		printThemes()
	})

	if !strings.Contains(out, "Available themes") {
		t.Fatalf("expected header to be printed, got %q", out)
	}
	for _, name := range []string{"dracula", "nord", "solarized-light"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected theme list to include %q, got %q", name, out)
		}
	}
}

func TestCompletionMetadataMatchesFlags(t *testing.T) {
	defined := map[string]bool{
		"version": true, // provided by urfave/cli via App.Version
	}
	for _, flag := range globalFlags() {
		defined[flag.Names()[0]] = true
	}

	for _, meta := range completion.GetFlags() {
		if !defined[meta.Name] {
			t.Errorf("completion metadata lists unknown flag %q", meta.Name)
		}
	}
}
