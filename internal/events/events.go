// Package events defines the wire events delivered over the realtime channel
// and their JSON envelope. Each event kind is a distinct type so routing is an
// exhaustive switch instead of string dispatch.
package events

import (
	"fmt"
	"time"

	"github.com/deliverly/ordertray/internal/domain"
)

// Kind discriminates the event types carried in the envelope.
type Kind string

const (
	KindStatusChanged   Kind = "order:status-changed"
	KindOrderReplaced   Kind = "order:replaced"
	KindNoRiders        Kind = "delivery:no-riders"
	KindRiderAssigned   Kind = "delivery:rider-assigned"
	KindNotification    Kind = "notification:new"
	KindNotificationAck Kind = "notification:ack"
)

// IsValid checks if the kind is a known event kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindStatusChanged, KindOrderReplaced, KindNoRiders,
		KindRiderAssigned, KindNotification, KindNotificationAck:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Event is one inbound transport event.
type Event interface {
	Kind() Kind
	OccurredAt() time.Time
}

// StatusChanged reports a single order moving to a new semantic status.
type StatusChanged struct {
	OrderID   string
	Status    domain.OrderStatus
	Timestamp time.Time
}

func (StatusChanged) Kind() Kind              { return KindStatusChanged }
func (e StatusChanged) OccurredAt() time.Time { return e.Timestamp }

// OrderReplaced carries a full order document that supersedes the cached one.
type OrderReplaced struct {
	OrderID   string
	Order     map[string]any
	Timestamp time.Time
}

func (OrderReplaced) Kind() Kind              { return KindOrderReplaced }
func (e OrderReplaced) OccurredAt() time.Time { return e.Timestamp }

// NoRidersAvailable signals a dispatch-capacity shortage for one or more
// orders. Operationally relevant to every viewer regardless of role.
type NoRidersAvailable struct {
	OrderIDs  []string
	Message   string
	Timestamp time.Time
}

func (NoRidersAvailable) Kind() Kind              { return KindNoRiders }
func (e NoRidersAvailable) OccurredAt() time.Time { return e.Timestamp }

// RiderAssigned reports the rider attached to an order.
type RiderAssigned struct {
	OrderID   string
	Rider     map[string]any
	Timestamp time.Time
}

func (RiderAssigned) Kind() Kind              { return KindRiderAssigned }
func (e RiderAssigned) OccurredAt() time.Time { return e.Timestamp }

// NotificationReceived carries a server-built notification payload.
type NotificationReceived struct {
	Notification domain.Notification
}

func (NotificationReceived) Kind() Kind { return KindNotification }
func (e NotificationReceived) OccurredAt() time.Time {
	return e.Notification.Timestamp
}

// NotificationAcknowledged marks a notification read, possibly from another
// client of the same viewer.
type NotificationAcknowledged struct {
	NotificationID string
	Timestamp      time.Time
}

func (NotificationAcknowledged) Kind() Kind              { return KindNotificationAck }
func (e NotificationAcknowledged) OccurredAt() time.Time { return e.Timestamp }

// ParseKind converts a wire string into a Kind.
func ParseKind(value string) (Kind, error) {
	k := Kind(value)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown event kind: %s", value)
	}
	return k, nil
}
