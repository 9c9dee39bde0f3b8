package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdeck/gitdeck/internal/theme"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "git", cfg.GitExecutable)
	assert.Equal(t, 300, cfg.LogLimit)
	assert.Equal(t, 200000, cfg.MaxDiffChars)
	assert.Equal(t, 600, cfg.WatchDebounceMS)
	assert.True(t, cfg.AutoRefresh)
	assert.True(t, cfg.ShowIcons)
	assert.Empty(t, cfg.Theme)
	assert.Empty(t, cfg.DebugLog)
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal bool
		expected   bool
	}{
		{name: "nil returns default", input: nil, defaultVal: true, expected: true},
		{name: "bool passes through", input: false, defaultVal: true, expected: false},
		{name: "nonzero int is true", input: 2, defaultVal: false, expected: true},
		{name: "zero int is false", input: 0, defaultVal: true, expected: false},
		{name: "yes string", input: "yes", defaultVal: false, expected: true},
		{name: "off string", input: "OFF", defaultVal: true, expected: false},
		{name: "padded string", input: "  true ", defaultVal: false, expected: true},
		{name: "garbage string returns default", input: "maybe", defaultVal: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceBool(tt.input, tt.defaultVal))
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal int
		expected   int
	}{
		{name: "nil returns default", input: nil, defaultVal: 7, expected: 7},
		{name: "int passes through", input: 42, defaultVal: 7, expected: 42},
		{name: "numeric string", input: "150", defaultVal: 7, expected: 150},
		{name: "padded numeric string", input: " 9 ", defaultVal: 7, expected: 9},
		{name: "empty string returns default", input: "", defaultVal: 7, expected: 7},
		{name: "garbage string returns default", input: "lots", defaultVal: 7, expected: 7},
		{name: "bool returns default", input: true, defaultVal: 7, expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceInt(tt.input, tt.defaultVal))
		})
	}
}

func TestNormalizeThemeName(t *testing.T) {
	assert.Equal(t, theme.NordName, NormalizeThemeName("nord"))
	assert.Equal(t, theme.DraculaName, NormalizeThemeName("  Dracula "))
	assert.Equal(t, "", NormalizeThemeName("midnight-commander"))
	assert.Equal(t, "", NormalizeThemeName(""))
}

func TestParseConfig(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"git_executable":    "/opt/git/bin/git",
		"log_limit":         "150",
		"max_diff_chars":    50000,
		"theme":             "Gruvbox-Dark",
		"debug_log":         "/tmp/gitdeck.log",
		"auto_refresh":      "off",
		"watch_debounce_ms": 250,
		"show_icons":        false,
	})

	assert.Equal(t, "/opt/git/bin/git", cfg.GitExecutable)
	assert.Equal(t, 150, cfg.LogLimit)
	assert.Equal(t, 50000, cfg.MaxDiffChars)
	assert.Equal(t, theme.GruvboxDarkName, cfg.Theme)
	assert.Equal(t, "/tmp/gitdeck.log", cfg.DebugLog)
	assert.False(t, cfg.AutoRefresh)
	assert.Equal(t, 250, cfg.WatchDebounceMS)
	assert.False(t, cfg.ShowIcons)
}

func TestParseConfigClampsAndFallsBack(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"git_executable":    "   ",
		"log_limit":         -5,
		"max_diff_chars":    -1,
		"watch_debounce_ms": -100,
		"theme":             "no-such-palette",
	})

	assert.Equal(t, "git", cfg.GitExecutable)
	assert.Equal(t, DefaultLogLimit, cfg.LogLimit)
	assert.Equal(t, 0, cfg.MaxDiffChars)
	assert.Equal(t, 0, cfg.WatchDebounceMS)
	assert.Empty(t, cfg.Theme)
}

func TestLoadConfigReadsDefaultLocation(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, "gitdeck")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	content := "theme: nord\nlog_limit: 99\nauto_refresh: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, theme.NordName, cfg.Theme)
	assert.Equal(t, 99, cfg.LogLimit)
	assert.False(t, cfg.AutoRefresh)
}

func TestLoadConfigFallsBackToYmlExtension(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, "gitdeck")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("theme: monokai\n"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, theme.MonokaiName, cfg.Theme)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, "gitdeck")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, "work.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: solarized-light\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, theme.SolarizedLightName, cfg.Theme)
}

func TestLoadConfigRejectsPathOutsideConfigDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	outside := filepath.Join(t.TempDir(), "evil.yaml")
	require.NoError(t, os.WriteFile(outside, []byte("theme: nord\n"), 0o600))

	cfg, err := LoadConfig(outside)
	require.Error(t, err)
	assert.Equal(t, "git", cfg.GitExecutable)
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "git", cfg.GitExecutable)
	assert.Equal(t, DefaultLogLimit, cfg.LogLimit)
	// Theme detection ran, so some registered palette must be picked.
	assert.Contains(t, theme.AvailableThemes(), cfg.Theme)
}

func TestLoadConfigMalformedYAMLYieldsDefaults(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, "gitdeck")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n\t- not yaml"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLimit, cfg.LogLimit)
}

func TestIsPathWithin(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   bool
	}{
		{name: "direct child", base: "/cfg/gitdeck", target: "/cfg/gitdeck/config.yaml", want: true},
		{name: "base itself", base: "/cfg/gitdeck", target: "/cfg/gitdeck", want: true},
		{name: "nested child", base: "/cfg/gitdeck", target: "/cfg/gitdeck/sub/file.yaml", want: true},
		{name: "parent escape", base: "/cfg/gitdeck", target: "/cfg/other.yaml", want: false},
		{name: "dot dot traversal", base: "/cfg/gitdeck", target: "/cfg/gitdeck/../secrets.yaml", want: false},
		{name: "sibling prefix", base: "/cfg/gitdeck", target: "/cfg/gitdeck-evil/config.yaml", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPathWithin(tt.base, tt.target))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "custom.yaml"), got)

	t.Setenv("GITDECK_TEST_DIR", "/somewhere")
	got, err = ExpandPath("$GITDECK_TEST_DIR/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/somewhere/c.yaml", got)
}

func TestApplyCLIOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLimit = 150

	err := cfg.ApplyCLIOverrides([]string{
		"gd.theme=Nord",
		"gd.log_limit=42",
		"gd.auto_refresh=off",
		"gd.git_executable=/opt/git/bin/git",
	})
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, 42, cfg.LogLimit)
	assert.False(t, cfg.AutoRefresh)
	assert.Equal(t, "/opt/git/bin/git", cfg.GitExecutable)
}

func TestApplyCLIOverridesKeepsCurrentValueOnBadCoercion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLimit = 150

	err := cfg.ApplyCLIOverrides([]string{"gd.log_limit=lots"})
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.LogLimit)
}

func TestApplyCLIOverridesRejectsMalformedExpressions(t *testing.T) {
	tests := []struct {
		name     string
		override string
	}{
		{name: "missing equals", override: "gd.theme"},
		{name: "missing prefix", override: "theme=nord"},
		{name: "wrong prefix", override: "git.theme=nord"},
		{name: "empty key", override: "gd.=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ApplyCLIOverrides([]string{tt.override})
			require.Error(t, err)
		})
	}
}
