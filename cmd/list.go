package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deliverly/ordertray/internal/config"
	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/format"
)

const listCommandLong = `List notifications from the persisted inbox snapshot.

USAGE:
    ordertray list [OPTIONS]

OPTIONS:
    --type <type>        Filter by type: order, delivery, payment, system
    --priority <level>   Filter by priority: low, normal, high, urgent
    --order <id>         Filter by order id
    --older-than <days>  Show notifications older than N days
    --newer-than <days>  Show notifications newer than N days
    --filter <status>    Filter by read status: read, unread
    --format <format>    Output format: simple (default), table, compact, json
    -h, --help           Show this help`

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		listType      string
		listPriority  string
		listOrder     string
		listOlderThan int
		listNewerThan int
		listFilter    string
		listFormat    string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications from the persisted snapshot",
		Long:  listCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, storage, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer storage.Close()

			opts := domain.FilterOptions{
				Type:       listType,
				Priority:   listPriority,
				OrderID:    listOrder,
				OlderThan:  listOlderThan,
				NewerThan:  listNewerThan,
				ReadFilter: listFilter,
			}
			filter, err := opts.ToFilter()
			if err != nil {
				return err
			}

			outFormat := listFormat
			if outFormat == "" {
				outFormat = config.Get("list_format", "simple")
			}
			formatter := format.NewFormatter(format.FormatterType(outFormat))
			return formatter.FormatNotifications(st.List(filter), os.Stdout)
		},
	}

	listCmd.Flags().StringVar(&listType, "type", "", "Filter by notification type")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority")
	listCmd.Flags().StringVar(&listOrder, "order", "", "Filter by order id")
	listCmd.Flags().IntVar(&listOlderThan, "older-than", 0, "Show notifications older than N days")
	listCmd.Flags().IntVar(&listNewerThan, "newer-than", 0, "Show notifications newer than N days")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Filter by read status: read, unread")
	listCmd.Flags().StringVar(&listFormat, "format", "", "Output format: simple, table, compact, json")
	return listCmd
}

func init() {
	rootCmd.AddCommand(NewListCmd())
}
