package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverly/ordertray/internal/domain"
)

func sampleNotifications() []domain.Notification {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []domain.Notification{
		{
			ID:        "order-status-ord-1-DELIVERED-1700000000000",
			Type:      domain.TypeOrder,
			Title:     "Order update",
			Message:   "Order ord-1 was delivered",
			Priority:  domain.PriorityNormal,
			Timestamp: ts,
			Data:      map[string]any{"orderId": "ord-1", "status": "DELIVERED"},
		},
		{
			ID:        "no-riders-ord-2-1700000001000",
			Type:      domain.TypeDelivery,
			Title:     "No riders available",
			Message:   "No riders are available for order ord-2",
			Priority:  domain.PriorityHigh,
			Timestamp: ts.Add(time.Minute),
			Read:      true,
			Data:      map[string]any{"orderId": "ord-2"},
		},
	}
}

func TestSimpleFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewSimpleFormatter().FormatNotifications(sampleNotifications(), &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "*"), "unread rows carry a marker")
	assert.True(t, strings.HasPrefix(lines[1], " "), "read rows do not")
	assert.Contains(t, lines[0], "Order ord-1 was delivered")
}

func TestCompactFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewCompactFormatter().FormatNotifications(sampleNotifications(), &buf)
	require.NoError(t, err)

	want := "Order ord-1 was delivered\nNo riders are available for order ord-2\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONFormatter().FormatNotifications(sampleNotifications(), &buf)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "order", out[0]["type"])
	assert.Equal(t, "ord-1", out[0]["orderId"])
	assert.Equal(t, "DELIVERED", out[0]["status"])
	assert.Equal(t, true, out[1]["read"])
}

func TestJSONFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONFormatter().FormatNotifications(nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableFormatter().FormatNotifications(sampleNotifications(), &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4, "header, rule, and one line per notification")
	assert.Contains(t, lines[0], "Message")
	assert.Contains(t, lines[2], "ord-1")
	assert.Contains(t, lines[3], "ord-2")
}

func TestNewFormatterSelection(t *testing.T) {
	assert.IsType(t, &SimpleFormatter{}, NewFormatter(FormatterTypeSimple))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatterTypeTable))
	assert.IsType(t, &CompactFormatter{}, NewFormatter(FormatterTypeCompact))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatterTypeJSON))
	assert.IsType(t, &SimpleFormatter{}, NewFormatter("bogus"))
}

func TestSummarize(t *testing.T) {
	s := Summarize("connected", sampleNotifications())

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Unread)
	assert.Equal(t, 1, s.ByType[domain.TypeOrder])
	assert.Equal(t, 1, s.ByType[domain.TypeDelivery])
	assert.Equal(t, 1, s.ByPriority[domain.PriorityHigh])

	var buf bytes.Buffer
	require.NoError(t, FormatSummary(s, &buf))
	out := buf.String()
	assert.Contains(t, out, "connection: connected")
	assert.Contains(t, out, "2 total, 1 unread")
	assert.Contains(t, out, "delivery=1")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly", truncate("exactly", 7))
	assert.Equal(t, "a ve...", truncate("a very long message", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
