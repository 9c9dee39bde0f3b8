package completion

import "github.com/gitdeck/gitdeck/internal/theme"

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "DIR", "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

// GetFlags returns metadata for all gitdeck command-line flags.
// This is the single source of truth for shell completion generation.
func GetFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "theme",
			Description: "Override UI theme",
			HasValue:    true,
			ValueHint:   "NAME",
			Values:      theme.AvailableThemes(),
		},
		{
			Name:        "debug-log",
			Description: "Path to debug log file",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "config-file",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
		{
			Name:        "config",
			Description: "Override a configuration value (gd.key=value)",
			HasValue:    true,
			ValueHint:   "KEY=VALUE",
		},
		{
			Name:        "show-themes",
			Description: "List available themes",
			HasValue:    false,
		},
		{
			Name:        "version",
			Description: "Print version information",
			HasValue:    false,
		},
	}
}
