// Package buildinfo holds the version metadata stamped into the gitdeck
// binaries. Release builds inject the values through the linker; source
// builds fall back to what the Go tool recorded in the module build info.
package buildinfo

import "runtime/debug"

// Info identifies one build of the binary.
type Info struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
	Dirty   bool
}

var current = Info{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// Set stores the linker-injected values. main calls it before anything
// reads Get.
func Set(version, commit, date, builtBy string) {
	current = Info{Version: version, Commit: commit, Date: date, BuiltBy: builtBy}
}

// Get returns the current build metadata.
func Get() Info { return current }

// Enrich fills fields the linker left at their defaults from the module
// build info: module version, VCS revision and time, the Go version as
// the builder, and the worktree modification marker.
func Enrich() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if current.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		current.Version = bi.Main.Version
	}
	if current.Commit == "none" && settings["vcs.revision"] != "" {
		current.Commit = settings["vcs.revision"]
	}
	if current.Date == "unknown" && settings["vcs.time"] != "" {
		current.Date = settings["vcs.time"]
	}
	if current.BuiltBy == "unknown" {
		current.BuiltBy = bi.GoVersion
	}
	current.Dirty = settings["vcs.modified"] == "true"
}
