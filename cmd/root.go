// Package cmd wires the ordertray CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deliverly/ordertray/internal/colors"
	"github.com/deliverly/ordertray/internal/config"
	"github.com/deliverly/ordertray/internal/logging"
	"github.com/deliverly/ordertray/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ordertray",
	Short: "A live tray of order events for the delivery back office.",
	Long:  `A live tray of order events for the delivery back office.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
		if err := logging.InitGlobal(); err != nil {
			console.Warning("structured logging unavailable: " + err.Error())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := logging.ShutdownGlobal(); err != nil {
			console.Warning("failed to flush logs: " + err.Error())
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set version for use in help output
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Set custom help function so the overview reads like the docs
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})
}
