package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deliverly/ordertray/internal/version"
)

func printHelpText(cmd *cobra.Command) {
	// Order of commands as presented in the docs
	commandOrder := []string{
		"listen",
		"list",
		"mark-read",
		"dismiss",
		"clear",
		"status",
		"publish",
		"help",
		"version",
	}

	// Build command descriptions
	var cmdLines []string
	for _, name := range commandOrder {
		// Find command
		var found *cobra.Command
		for _, c := range cmd.Root().Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-18s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`ordertray v%s

A live tray of order events for the delivery back office.

USAGE:
    ordertray [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Print(helpText)
}
