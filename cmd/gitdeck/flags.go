// Package main provides CLI flag definitions for gitdeck.
package main

import (
	"fmt"
	"os"

	"github.com/gitdeck/gitdeck/internal/completion"
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=gd.key=value",
		},
		&urfavecli.BoolFlag{
			Name:  "show-themes",
			Usage: "List available themes",
		},
	}
}

// completeGlobalFlags answers --generate-bash-completion requests for the
// top level: subcommand names, flag names, and enumerated flag values.
func completeGlobalFlags(c *urfavecli.Context) {
	if printFlagValues(os.Args) {
		return
	}

	if c.NArg() == 0 {
		for _, cmd := range c.App.Commands {
			fmt.Println(cmd.Name)
		}
	}
	for _, flag := range completion.GetFlags() {
		fmt.Printf("--%s\n", flag.Name)
	}
}

// printFlagValues checks whether the word before the completion marker is a
// flag with enumerated values and, if so, prints those values.
func printFlagValues(args []string) bool {
	if len(args) < 2 {
		return false
	}
	prev := args[len(args)-2]

	for _, flag := range completion.GetFlags() {
		if len(flag.Values) == 0 || prev != "--"+flag.Name {
			continue
		}
		for _, value := range flag.Values {
			fmt.Println(value)
		}
		return true
	}
	return false
}
