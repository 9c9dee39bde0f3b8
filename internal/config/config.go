// Package config loads the application configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gitdeck/gitdeck/internal/theme"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a key is absent or malformed.
const (
	DefaultLogLimit        = 300
	DefaultMaxDiffChars    = 200000
	DefaultWatchDebounceMS = 600
)

// AppConfig defines the global gitdeck configuration options.
type AppConfig struct {
	GitExecutable   string // binary used for every git invocation (default "git")
	LogLimit        int    // commits loaded per history refresh
	MaxDiffChars    int    // diff text is truncated beyond this many characters
	Theme           string // palette name, empty means detect from the terminal
	DebugLog        string // debug log path, empty disables logging
	AutoRefresh     bool   // refresh panes when the repository changes on disk
	WatchDebounceMS int    // quiet period before a filesystem-triggered refresh
	ShowIcons       bool   // render Nerd Font icons next to file paths
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		GitExecutable:   "git",
		LogLimit:        DefaultLogLimit,
		MaxDiffChars:    DefaultMaxDiffChars,
		Theme:           "",
		DebugLog:        "",
		AutoRefresh:     true,
		WatchDebounceMS: DefaultWatchDebounceMS,
		ShowIcons:       true,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyData(cfg, data)
	return cfg
}

// applyData folds data into cfg, keeping the current value for any key
// that is absent or malformed.
func applyData(cfg *AppConfig, data map[string]any) {
	if gitExec, ok := data["git_executable"].(string); ok {
		gitExec = strings.TrimSpace(gitExec)
		if gitExec != "" {
			cfg.GitExecutable = gitExec
		}
	}

	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}

	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	cfg.LogLimit = coerceInt(data["log_limit"], cfg.LogLimit)
	cfg.MaxDiffChars = coerceInt(data["max_diff_chars"], cfg.MaxDiffChars)
	cfg.WatchDebounceMS = coerceInt(data["watch_debounce_ms"], cfg.WatchDebounceMS)
	cfg.AutoRefresh = coerceBool(data["auto_refresh"], cfg.AutoRefresh)
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)

	if cfg.LogLimit <= 0 {
		cfg.LogLimit = DefaultLogLimit
	}
	if cfg.MaxDiffChars < 0 {
		cfg.MaxDiffChars = 0
	}
	if cfg.WatchDebounceMS < 0 {
		cfg.WatchDebounceMS = 0
	}
}

// ApplyCLIOverrides applies --config flags of the form gd.key=value on
// top of the loaded configuration. Keys are the same names the YAML
// file uses; values go through the usual coercion, so a malformed value
// silently keeps the current one, but a malformed override expression
// is an error.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data, err := parseCLIOverrides(overrides)
	if err != nil {
		return err
	}
	applyData(c, data)
	return nil
}

// parseCLIOverrides turns gd.key=value expressions into a config map.
func parseCLIOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any, len(overrides))

	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		if !found {
			return nil, fmt.Errorf("invalid config override %q, expected gd.key=value", override)
		}
		if !strings.HasPrefix(key, "gd.") {
			return nil, fmt.Errorf("config override key must start with %q: %q", "gd.", key)
		}
		key = strings.TrimPrefix(key, "gd.")
		if key == "" {
			return nil, fmt.Errorf("empty config key in override %q", override)
		}
		result[key] = value
	}

	return result, nil
}

// NormalizeThemeName lowercases and validates a theme name, returning
// the empty string when the name is not registered.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range theme.AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file. With
// an empty configPath it looks for config.yaml then config.yml under
// the gitdeck config directory. An explicit path must resolve inside
// that directory. A file that fails to parse yields the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Clean(filepath.Join(getConfigDir(), "gitdeck"))

	var paths []string

	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		if !isPathWithin(configBase, absPath) {
			return DefaultConfig(), fmt.Errorf("config path must reside inside %s", configBase)
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	var cfg *AppConfig

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), nil
		}

		cfg = parseConfig(yamlData)
		break
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.Theme == "" {
		detected, err := theme.DetectBackground(500 * time.Millisecond)
		if err == nil {
			cfg.Theme = detected
		} else {
			cfg.Theme = theme.DefaultDark()
		}
	}

	return cfg, nil
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}
