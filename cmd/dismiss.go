package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const dismissCommandLong = `Remove a notification from the persisted inbox snapshot.

USAGE:
    ordertray dismiss <id>

OPTIONS:
    -h, --help  Show this help`

// NewDismissCmd creates the dismiss command.
func NewDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Remove a notification from the inbox",
		Long:  dismissCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, storage, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer storage.Close()

			id := args[0]
			if _, ok := st.Get(id); !ok {
				return fmt.Errorf("no notification with id %s", id)
			}
			st.Remove(id)
			console.Success("notification dismissed")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewDismissCmd())
}
