package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deliverly/ordertray/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ordertray v%s\n", version.String())
		},
	}
}

func init() {
	rootCmd.AddCommand(NewVersionCmd())
}
