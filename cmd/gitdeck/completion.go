package main

import (
	"fmt"
	"os"

	_ "embed"

	urfavecli "github.com/urfave/cli/v2"
)

//go:embed templates/zsh_completion.zsh
var zshCompletion []byte

//go:embed templates/bash_completion.bash
var bashCompletion []byte

// completionCommand returns the completion subcommand definition.
func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh>",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "code",
				Usage: "Output completion code instead of installation instructions",
			},
		},
		Action: handleCompletion,
		BashComplete: func(c *urfavecli.Context) {
			if c.NArg() == 0 {
				fmt.Println("bash")
				fmt.Println("zsh")
			}
		},
	}
}

// handleCompletion handles the completion subcommand.
func handleCompletion(c *urfavecli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: gitdeck completion <bash|zsh> [--code]")
	}

	shell := c.Args().First()
	var script []byte
	switch shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}

	if c.Bool("code") {
		_, _ = os.Stdout.Write(script)
		return nil
	}

	printInstallInstructions(shell)
	return nil
}

// printInstallInstructions shows how to install completion for the shell.
func printInstallInstructions(shell string) {
	switch shell {
	case "bash":
		fmt.Println("# Load completion for the current bash session:")
		fmt.Println("#   source <(gitdeck completion bash --code)")
		fmt.Println("#")
		fmt.Println("# Install permanently:")
		fmt.Println("#   gitdeck completion bash --code > ~/.local/share/bash-completion/completions/gitdeck")
	case "zsh":
		fmt.Println("# Load completion for the current zsh session:")
		fmt.Println("#   source <(gitdeck completion zsh --code)")
		fmt.Println("#")
		fmt.Println("# Install permanently (pick a directory on your fpath):")
		fmt.Println("#   gitdeck completion zsh --code > ~/.zsh/completions/_gitdeck")
	}
}
