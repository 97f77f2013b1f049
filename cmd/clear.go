package cmd

import (
	"github.com/spf13/cobra"
)

const clearCommandLong = `Remove every notification from the persisted inbox snapshot.

USAGE:
    ordertray clear

OPTIONS:
    -h, --help  Show this help`

// NewClearCmd creates the clear command.
func NewClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every notification from the inbox",
		Long:  clearCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, storage, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer storage.Close()

			st.Clear()
			console.Success("inbox cleared")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewClearCmd())
}
