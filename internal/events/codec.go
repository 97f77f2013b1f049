package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/deliverly/ordertray/internal/domain"
)

// Envelope is the JSON frame every event travels in.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type statusChangedPayload struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type orderReplacedPayload struct {
	OrderID   string         `json:"orderId"`
	Order     map[string]any `json:"order"`
	Timestamp time.Time      `json:"timestamp"`
}

type noRidersPayload struct {
	OrderIDs  []string  `json:"orderIds,omitempty"`
	OrderID   string    `json:"orderId,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type riderAssignedPayload struct {
	OrderID   string         `json:"orderId"`
	Rider     map[string]any `json:"rider"`
	Timestamp time.Time      `json:"timestamp"`
}

type notificationPayload struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      map[string]any  `json:"data,omitempty"`
	Priority  string          `json:"priority,omitempty"`
	Actions   []domain.Action `json:"actions,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	ExpiresAt *time.Time      `json:"expiresAt,omitempty"`
}

type ackPayload struct {
	NotificationID string    `json:"notificationId"`
	Timestamp      time.Time `json:"timestamp"`
}

// Decode parses an envelope frame into its typed event.
func Decode(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}
	kind, err := ParseKind(env.Type)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindStatusChanged:
		var p statusChangedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return StatusChanged{
			OrderID:   p.OrderID,
			Status:    domain.OrderStatus(p.Status),
			Timestamp: p.Timestamp,
		}, nil
	case KindOrderReplaced:
		var p orderReplacedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return OrderReplaced{OrderID: p.OrderID, Order: p.Order, Timestamp: p.Timestamp}, nil
	case KindNoRiders:
		var p noRidersPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		ids := p.OrderIDs
		if len(ids) == 0 && p.OrderID != "" {
			ids = []string{p.OrderID}
		}
		return NoRidersAvailable{OrderIDs: ids, Message: p.Message, Timestamp: p.Timestamp}, nil
	case KindRiderAssigned:
		var p riderAssignedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return RiderAssigned{OrderID: p.OrderID, Rider: p.Rider, Timestamp: p.Timestamp}, nil
	case KindNotification:
		var p notificationPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		ntype, err := domain.ParseNotificationType(p.Type)
		if err != nil {
			return nil, err
		}
		priority, err := domain.ParsePriority(p.Priority)
		if err != nil {
			return nil, err
		}
		return NotificationReceived{Notification: domain.Notification{
			ID:        p.ID,
			Type:      ntype,
			Title:     p.Title,
			Message:   p.Message,
			Data:      p.Data,
			Priority:  priority,
			Actions:   p.Actions,
			Timestamp: p.Timestamp,
			ExpiresAt: p.ExpiresAt,
		}}, nil
	case KindNotificationAck:
		var p ackPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return NotificationAcknowledged{NotificationID: p.NotificationID, Timestamp: p.Timestamp}, nil
	}
	return nil, fmt.Errorf("unhandled event kind: %s", kind)
}

// Encode marshals an event into its envelope frame. Used by the publishing
// side and by tests.
func Encode(e Event) ([]byte, error) {
	var payload any
	switch ev := e.(type) {
	case StatusChanged:
		payload = statusChangedPayload{
			OrderID:   ev.OrderID,
			Status:    ev.Status.String(),
			Timestamp: ev.Timestamp,
		}
	case OrderReplaced:
		payload = orderReplacedPayload{OrderID: ev.OrderID, Order: ev.Order, Timestamp: ev.Timestamp}
	case NoRidersAvailable:
		payload = noRidersPayload{OrderIDs: ev.OrderIDs, Message: ev.Message, Timestamp: ev.Timestamp}
	case RiderAssigned:
		payload = riderAssignedPayload{OrderID: ev.OrderID, Rider: ev.Rider, Timestamp: ev.Timestamp}
	case NotificationReceived:
		n := ev.Notification
		payload = notificationPayload{
			ID:        n.ID,
			Type:      n.Type.String(),
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			Priority:  n.Priority.String(),
			Actions:   n.Actions,
			Timestamp: n.Timestamp,
			ExpiresAt: n.ExpiresAt,
		}
	case NotificationAcknowledged:
		payload = ackPayload{NotificationID: ev.NotificationID, Timestamp: ev.Timestamp}
	default:
		return nil, fmt.Errorf("unhandled event kind: %s", e.Kind())
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", e.Kind(), err)
	}
	return json.Marshal(Envelope{Type: e.Kind().String(), Payload: raw})
}
