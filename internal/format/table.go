package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/deliverly/ordertray/internal/colors"
	"github.com/deliverly/ordertray/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Extractor extracts the value from a notification.
	Extractor func(domain.Notification) string
}

// TableFormatter renders notifications as a fixed-width table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		config: DefaultTableConfig(),
		columns: []TableColumn{
			{
				Name:  "R",
				Width: 1,
				Extractor: func(n domain.Notification) string {
					return readMarker(n)
				},
			},
			{
				Name:  "Time",
				Width: 19,
				Extractor: func(n domain.Notification) string {
					return n.Timestamp.Local().Format(displayTimeLayout)
				},
			},
			{
				Name:  "Type",
				Width: 8,
				Extractor: func(n domain.Notification) string {
					return string(n.Type)
				},
			},
			{
				Name:  "Priority",
				Width: 8,
				Extractor: func(n domain.Notification) string {
					return string(n.Priority)
				},
			},
			{
				Name:  "Order",
				Width: 12,
				Extractor: func(n domain.Notification) string {
					return n.OrderID()
				},
			},
			{
				Name:  "Message",
				Width: 48,
				Extractor: func(n domain.Notification) string {
					return n.Message
				},
			},
		},
	}
}

// FormatNotifications formats notifications as a table with headers.
func (f *TableFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if f.config.ShowHeaders {
		if err := f.writeHeader(writer); err != nil {
			return err
		}
	}
	for _, n := range notifications {
		cells := make([]string, len(f.columns))
		for i, col := range f.columns {
			cells[i] = pad(truncate(col.Extractor(n), col.Width), col.Width)
		}
		if _, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) writeHeader(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	rules := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = pad(col.Name, col.Width)
		rules[i] = strings.Repeat("-", col.Width)
	}
	header := strings.TrimRight(strings.Join(cells, "  "), " ")
	if f.config.HeaderColor != "" {
		header = f.config.HeaderColor + header + colors.Reset
	}
	if _, err := fmt.Fprintln(writer, header); err != nil {
		return err
	}
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(rules, "  "), " "))
	return err
}

// pad left-aligns a value in a fixed-width cell.
func pad(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}
