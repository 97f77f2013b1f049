package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deliverly/ordertray/internal/format"
)

const statusCommandLong = `Show transport reachability and inbox counts.

The transport check pings the configured redis instance; inbox counts come
from the persisted snapshot.

USAGE:
    ordertray status

OPTIONS:
    -h, --help  Show this help`

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show transport reachability and inbox counts",
		Long:  statusCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, storage, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer storage.Close()

			rdb := newRedisClient()
			defer rdb.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()

			connection := "transport reachable"
			if err := rdb.Ping(ctx).Err(); err != nil {
				connection = "transport unreachable"
			}

			summary := format.Summarize(connection, st.Notifications())
			if err := format.FormatSummary(summary, os.Stdout); err != nil {
				return err
			}
			permission := "denied"
			if st.PermissionGranted() {
				permission = "granted"
			}
			_, err = fmt.Fprintf(os.Stdout, "alert permission: %s\n", permission)
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(NewStatusCmd())
}
