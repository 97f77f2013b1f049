package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const markReadCommandLong = `Mark notifications as read in the persisted inbox snapshot.

USAGE:
    ordertray mark-read <id> [OPTIONS]
    ordertray mark-read --all

OPTIONS:
    --all       Mark every notification as read
    -h, --help  Show this help`

// NewMarkReadCmd creates the mark-read command.
func NewMarkReadCmd() *cobra.Command {
	var markAll bool

	markReadCmd := &cobra.Command{
		Use:   "mark-read [id]",
		Short: "Mark notifications as read",
		Long:  markReadCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !markAll && len(args) != 1 {
				return fmt.Errorf("expected a notification id or --all")
			}
			st, storage, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer storage.Close()

			if markAll {
				st.MarkAllRead()
				console.Success("all notifications marked read")
				return nil
			}

			id := args[0]
			if _, ok := st.Get(id); !ok {
				return fmt.Errorf("no notification with id %s", id)
			}
			st.MarkRead(id)
			console.Success("notification marked read")
			return nil
		},
	}

	markReadCmd.Flags().BoolVar(&markAll, "all", false, "Mark every notification as read")
	return markReadCmd
}

func init() {
	rootCmd.AddCommand(NewMarkReadCmd())
}
