// Package domain provides the domain layer for order-event notifications.
// It contains the notification entity, value objects, and filtering logic.
package domain

import (
	"fmt"
	"time"
)

// Notification represents one admitted real-time event surfaced to the user.
type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	Data      map[string]any
	Priority  Priority
	Actions   []Action
	Timestamp time.Time
	Read      bool
	ExpiresAt *time.Time
}

// Action is a declarative follow-up operation the user may trigger from a
// notification.
type Action struct {
	Label  string         `json:"label"`
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
}

// NotificationType classifies the event a notification originated from.
type NotificationType string

const (
	TypeOrder    NotificationType = "order"
	TypeDelivery NotificationType = "delivery"
	TypePayment  NotificationType = "payment"
	TypeSystem   NotificationType = "system"
)

// IsValid checks if the notification type is valid.
func (t NotificationType) IsValid() bool {
	switch t {
	case TypeOrder, TypeDelivery, TypePayment, TypeSystem:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t NotificationType) String() string {
	return string(t)
}

// Priority governs toast duration and alert emphasis.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsElevated reports whether the priority warrants a modal alert.
func (p Priority) IsElevated() bool {
	return p == PriorityHigh || p == PriorityUrgent
}

// IsExpired reports whether the notification is inert at the given instant.
// Notifications without an expiry never expire.
func (n *Notification) IsExpired(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}

// OrderID returns the order id carried in the payload, if any.
func (n *Notification) OrderID() string {
	if n.Data == nil {
		return ""
	}
	if id, ok := n.Data["orderId"].(string); ok {
		return id
	}
	return ""
}

// Status returns the semantic order status carried in the payload, if any.
func (n *Notification) Status() OrderStatus {
	if n.Data == nil {
		return ""
	}
	if s, ok := n.Data["status"].(string); ok {
		return OrderStatus(s)
	}
	return ""
}

// Validate validates the notification and returns an error if invalid.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("notification id cannot be empty")
	}
	if !n.Type.IsValid() {
		return fmt.Errorf("invalid notification type: %s", n.Type)
	}
	if !n.Priority.IsValid() {
		return fmt.Errorf("invalid notification priority: %s", n.Priority)
	}
	if n.Title == "" && n.Message == "" {
		return fmt.Errorf("notification must carry a title or a message")
	}
	if n.Timestamp.IsZero() {
		return fmt.Errorf("notification timestamp cannot be zero")
	}
	return nil
}

// ParseNotificationType parses a string into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	t := NotificationType(value)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", value)
	}
	return t, nil
}

// ParsePriority parses a string into a Priority. An empty string maps to
// PriorityNormal.
func ParsePriority(value string) (Priority, error) {
	if value == "" {
		return PriorityNormal, nil
	}
	p := Priority(value)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid notification priority: %s", value)
	}
	return p, nil
}
