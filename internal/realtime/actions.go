package realtime

import (
	"time"

	"github.com/deliverly/ordertray/internal/events"
	"github.com/deliverly/ordertray/internal/logging"
)

// send forwards an outbound frame on the live channel. While disconnected
// the operation is declined, not queued.
func (m *Manager) send(kind string, payload any) error {
	m.mu.Lock()
	ch := m.ch
	connected := m.status == StatusConnected
	m.mu.Unlock()
	if !connected || ch == nil {
		logging.Warn("declining operation while disconnected", "kind", kind)
		return ErrNotConnected
	}
	return ch.Send(kind, payload)
}

// JoinRoom subscribes the session to a server-side room.
func (m *Manager) JoinRoom(roomID string) error {
	return m.send("room:join", map[string]any{"roomId": roomID})
}

// LeaveRoom unsubscribes the session from a server-side room.
func (m *Manager) LeaveRoom(roomID string) error {
	return m.send("room:leave", map[string]any{"roomId": roomID})
}

// StartTyping signals a typing indicator in a room.
func (m *Manager) StartTyping(roomID, who string) error {
	return m.send("typing:start", map[string]any{"roomId": roomID, "who": who})
}

// StopTyping clears a typing indicator in a room.
func (m *Manager) StopTyping(roomID, who string) error {
	return m.send("typing:stop", map[string]any{"roomId": roomID, "who": who})
}

// Acknowledge marks a notification read locally and propagates the read
// receipt upstream. The local mark happens regardless of channel state.
func (m *Manager) Acknowledge(id string) error {
	m.store.MarkRead(id)
	return m.send(string(events.KindNotificationAck), map[string]any{
		"notificationId": id,
		"timestamp":      time.Now().UTC().Format(time.RFC3339Nano),
	})
}
