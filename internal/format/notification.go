package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/deliverly/ordertray/internal/domain"
)

const displayTimeLayout = "2006-01-02 15:04:05"

// readMarker renders the read state as a single glyph.
func readMarker(n domain.Notification) string {
	if n.Read {
		return " "
	}
	return "*"
}

// truncate shortens a message for single-line display.
func truncate(msg string, max int) string {
	if len(msg) <= max {
		return msg
	}
	if max <= 3 {
		return msg[:max]
	}
	return msg[:max-3] + "..."
}

// SimpleFormatter formats notifications with ID, timestamp, and message.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatNotifications formats notifications in simple format.
func (f *SimpleFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		_, err := fmt.Fprintf(writer, "%s %-38s  %s  %s\n",
			readMarker(n),
			n.ID,
			n.Timestamp.Local().Format(displayTimeLayout),
			truncate(n.Message, 50))
		if err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter formats notifications with only messages (one per line).
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatNotifications formats notifications in compact format.
func (f *CompactFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		if _, err := fmt.Fprintln(writer, n.Message); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats notifications as a JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonNotification is the stable JSON shape for CLI output.
type jsonNotification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Priority  string         `json:"priority"`
	Read      bool           `json:"read"`
	Timestamp time.Time      `json:"timestamp"`
	OrderID   string         `json:"orderId,omitempty"`
	Status    string         `json:"status,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// FormatNotifications formats notifications as JSON.
func (f *JSONFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	out := make([]jsonNotification, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, jsonNotification{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Priority:  string(n.Priority),
			Read:      n.Read,
			Timestamp: n.Timestamp,
			OrderID:   n.OrderID(),
			Status:    n.Status().String(),
			Data:      n.Data,
		})
	}
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
