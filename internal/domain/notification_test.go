package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationType_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		ntype NotificationType
		want  bool
	}{
		{"valid order", TypeOrder, true},
		{"valid delivery", TypeDelivery, true},
		{"valid payment", TypePayment, true},
		{"valid system", TypeSystem, true},
		{"invalid empty", NotificationType(""), false},
		{"invalid other", NotificationType("chat"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ntype.IsValid())
		})
	}
}

func TestPriority_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		priority Priority
		want     bool
	}{
		{"valid low", PriorityLow, true},
		{"valid normal", PriorityNormal, true},
		{"valid high", PriorityHigh, true},
		{"valid urgent", PriorityUrgent, true},
		{"invalid empty", Priority(""), false},
		{"invalid other", Priority("severe"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.priority.IsValid())
		})
	}
}

func TestPriority_IsElevated(t *testing.T) {
	assert.False(t, PriorityLow.IsElevated())
	assert.False(t, PriorityNormal.IsElevated())
	assert.True(t, PriorityHigh.IsElevated())
	assert.True(t, PriorityUrgent.IsElevated())
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Priority
		wantErr bool
	}{
		{"empty defaults to normal", "", PriorityNormal, false},
		{"urgent", "urgent", PriorityUrgent, false},
		{"invalid", "loudest", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriority(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotification_IsExpired(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry", nil, false},
		{"future expiry", &future, false},
		{"past expiry", &past, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Notification{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, n.IsExpired(now))
		})
	}
}

func TestNotification_OrderIDAndStatus(t *testing.T) {
	n := Notification{Data: map[string]any{"orderId": "ord-42", "status": "DELIVERED"}}
	assert.Equal(t, "ord-42", n.OrderID())
	assert.Equal(t, StatusDelivered, n.Status())

	empty := Notification{}
	assert.Equal(t, "", empty.OrderID())
	assert.Equal(t, OrderStatus(""), empty.Status())
}

func TestNotification_Validate(t *testing.T) {
	valid := Notification{
		ID:        "n-1",
		Type:      TypeOrder,
		Title:     "Order update",
		Priority:  PriorityNormal,
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Notification)
	}{
		{"empty id", func(n *Notification) { n.ID = "" }},
		{"invalid type", func(n *Notification) { n.Type = "chat" }},
		{"invalid priority", func(n *Notification) { n.Priority = "loud" }},
		{"no title or message", func(n *Notification) { n.Title, n.Message = "", "" }},
		{"zero timestamp", func(n *Notification) { n.Timestamp = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.mutate(&n)
			assert.Error(t, n.Validate())
		})
	}
}

func TestOrderStatus_IsImportant(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusAssigned, true},
		{StatusPickedUp, true},
		{StatusOutForDelivery, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusPreparing, false},
		{StatusReadyForPickup, false},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsImportant())
		})
	}
}
