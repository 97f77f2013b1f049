package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterOptions_ToFilter(t *testing.T) {
	tests := []struct {
		name    string
		opts    FilterOptions
		wantErr bool
	}{
		{"empty options", FilterOptions{}, false},
		{"valid type and priority", FilterOptions{Type: "order", Priority: "high"}, false},
		{"valid read filter", FilterOptions{ReadFilter: ReadFilterUnread}, false},
		{"invalid type", FilterOptions{Type: "chat"}, true},
		{"invalid priority", FilterOptions{Priority: "loud"}, true},
		{"invalid read filter", FilterOptions{ReadFilter: "seen"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.ToFilter()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFilterOptions_ToFilter_DayCutoffs(t *testing.T) {
	filter, err := FilterOptions{OlderThan: 2, NewerThan: 7}.ToFilter()
	require.NoError(t, err)
	assert.False(t, filter.OlderThan.IsZero())
	assert.False(t, filter.NewerThan.IsZero())
	assert.True(t, filter.NewerThan.Before(filter.OlderThan))
}

func TestNotification_MatchesFilter(t *testing.T) {
	now := time.Now().UTC()
	n := Notification{
		ID:        "n-1",
		Type:      TypeOrder,
		Priority:  PriorityHigh,
		Data:      map[string]any{"orderId": "ord-7"},
		Timestamp: now,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches", Filter{}, true},
		{"type match", Filter{Type: TypeOrder}, true},
		{"type mismatch", Filter{Type: TypePayment}, false},
		{"priority match", Filter{Priority: PriorityHigh}, true},
		{"priority mismatch", Filter{Priority: PriorityLow}, false},
		{"order id match", Filter{OrderID: "ord-7"}, true},
		{"order id mismatch", Filter{OrderID: "ord-8"}, false},
		{"unread matches unread filter", Filter{ReadFilter: ReadFilterUnread}, true},
		{"unread fails read filter", Filter{ReadFilter: ReadFilterRead}, false},
		{"older-than excludes recent", Filter{OlderThan: now.Add(-time.Hour)}, false},
		{"newer-than includes recent", Filter{NewerThan: now.Add(-time.Hour)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.MatchesFilter(tt.filter))
		})
	}
}
