package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/deliverly/ordertray/internal/domain"
)

// Summary aggregates counts for the status command.
type Summary struct {
	Connection string
	Total      int
	Unread     int
	ByType     map[domain.NotificationType]int
	ByPriority map[domain.Priority]int
}

// Summarize builds a Summary from a notification snapshot.
func Summarize(connection string, notifications []domain.Notification) Summary {
	s := Summary{
		Connection: connection,
		Total:      len(notifications),
		ByType:     make(map[domain.NotificationType]int),
		ByPriority: make(map[domain.Priority]int),
	}
	for _, n := range notifications {
		if !n.Read {
			s.Unread++
		}
		s.ByType[n.Type]++
		s.ByPriority[n.Priority]++
	}
	return s
}

// FormatSummary writes a human-readable status summary.
func FormatSummary(s Summary, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "connection: %s\n", s.Connection); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "notifications: %d total, %d unread\n", s.Total, s.Unread); err != nil {
		return err
	}
	if len(s.ByType) > 0 {
		if _, err := fmt.Fprintf(writer, "by type: %s\n", joinCounts(s.ByType)); err != nil {
			return err
		}
	}
	if len(s.ByPriority) > 0 {
		if _, err := fmt.Fprintf(writer, "by priority: %s\n", joinCounts(s.ByPriority)); err != nil {
			return err
		}
	}
	return nil
}

// joinCounts renders a count map as "key=n" pairs in stable order.
func joinCounts[K ~string](counts map[K]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[K(k)]))
	}
	return strings.Join(parts, ", ")
}
