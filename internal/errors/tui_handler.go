package errors

import (
	"sync"
	"time"
)

// TUIHandler collects outcome messages for display inside the inbox TUI,
// where writing to the terminal directly would corrupt the screen.
type TUIHandler struct {
	mu       sync.RWMutex
	messages []Message
	onReport func(msg Message)
}

// Message is one reported outcome with its display level.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// NewTUIHandler creates a handler. onReport, when non-nil, runs for every
// recorded message.
func NewTUIHandler(onReport func(msg Message)) *TUIHandler {
	return &TUIHandler{onReport: onReport}
}

func (h *TUIHandler) Error(msg string) {
	h.record(msg, MessageTypeError)
}

func (h *TUIHandler) Warning(msg string) {
	h.record(msg, MessageTypeWarning)
}

func (h *TUIHandler) Info(msg string) {
	h.record(msg, MessageTypeInfo)
}

func (h *TUIHandler) Success(msg string) {
	h.record(msg, MessageTypeSuccess)
}

func (h *TUIHandler) record(msg string, msgType MessageType) {
	h.mu.Lock()
	message := Message{
		Text:      msg,
		Type:      msgType,
		Timestamp: time.Now(),
	}
	h.messages = append(h.messages, message)
	hook := h.onReport
	h.mu.Unlock()

	if hook != nil {
		hook(message)
	}
}

// Latest returns the most recently recorded message.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// History returns a copy of every recorded message in order.
func (h *TUIHandler) History() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	copied := make([]Message, len(h.messages))
	copy(copied, h.messages)
	return copied
}

// Clear drops the recorded messages.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
