package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/deliverly/ordertray/internal/config"
	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/events"
)

const publishCommandLong = `Publish a synthetic order event to the feed. Development helper for
exercising listeners without a backing server.

USAGE:
    ordertray publish --kind order:status-changed --order <id> --status <status>
    ordertray publish --kind delivery:no-riders --orders <id,id> [--message <text>]
    ordertray publish --kind delivery:rider-assigned --order <id>

OPTIONS:
    --kind <kind>      Event kind to publish
    --order <id>       Order id for single-order events
    --orders <ids>     Comma-separated order ids for delivery:no-riders
    --status <status>  Order status for order:status-changed
    --message <text>   Server message for delivery:no-riders
    -h, --help         Show this help`

// NewPublishCmd creates the publish command.
func NewPublishCmd() *cobra.Command {
	var (
		pubKind    string
		pubOrder   string
		pubOrders  string
		pubStatus  string
		pubMessage string
	)

	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a synthetic order event to the feed",
		Long:  publishCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := events.ParseKind(pubKind)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			var ev events.Event
			switch kind {
			case events.KindStatusChanged:
				if pubOrder == "" || pubStatus == "" {
					return fmt.Errorf("%s requires --order and --status", kind)
				}
				ev = events.StatusChanged{
					OrderID:   pubOrder,
					Status:    domain.OrderStatus(strings.ToUpper(pubStatus)),
					Timestamp: now,
				}
			case events.KindNoRiders:
				ids := splitIDs(pubOrders)
				if pubOrder != "" {
					ids = append(ids, pubOrder)
				}
				if len(ids) == 0 {
					return fmt.Errorf("%s requires --orders", kind)
				}
				ev = events.NoRidersAvailable{
					OrderIDs:  ids,
					Message:   pubMessage,
					Timestamp: now,
				}
			case events.KindRiderAssigned:
				if pubOrder == "" {
					return fmt.Errorf("%s requires --order", kind)
				}
				ev = events.RiderAssigned{OrderID: pubOrder, Timestamp: now}
			default:
				return fmt.Errorf("publishing %s is not supported", kind)
			}

			data, err := events.Encode(ev)
			if err != nil {
				return err
			}

			rdb := newRedisClient()
			defer rdb.Close()
			channel := config.Get("channel_prefix", "ordertray") + ":events:all"
			if err := rdb.Publish(cmd.Context(), channel, data).Err(); err != nil {
				return fmt.Errorf("publish event: %w", err)
			}
			console.Success("event published to " + channel)
			return nil
		},
	}

	publishCmd.Flags().StringVar(&pubKind, "kind", "", "Event kind to publish")
	publishCmd.Flags().StringVar(&pubOrder, "order", "", "Order id for single-order events")
	publishCmd.Flags().StringVar(&pubOrders, "orders", "", "Comma-separated order ids")
	publishCmd.Flags().StringVar(&pubStatus, "status", "", "Order status")
	publishCmd.Flags().StringVar(&pubMessage, "message", "", "Server message")
	return publishCmd
}

// splitIDs parses a comma-separated id list, dropping empties.
func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func init() {
	rootCmd.AddCommand(NewPublishCmd())
}
