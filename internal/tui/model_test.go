package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverly/ordertray/internal/domain"
	apperrors "github.com/deliverly/ordertray/internal/errors"
)

type fakeClient struct {
	notifications []domain.Notification
	connection    string
	ackErr        error

	acked     []string
	dismissed []string
	allRead   bool
}

func (f *fakeClient) Notifications() []domain.Notification {
	out := make([]domain.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out
}

func (f *fakeClient) UnreadCount() int {
	count := 0
	for _, n := range f.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (f *fakeClient) ConnectionStatus() string {
	return f.connection
}

func (f *fakeClient) Acknowledge(id string) error {
	f.acked = append(f.acked, id)
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].Read = true
		}
	}
	return f.ackErr
}

func (f *fakeClient) Dismiss(id string) {
	f.dismissed = append(f.dismissed, id)
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
}

func (f *fakeClient) MarkAllRead() {
	f.allRead = true
	for i := range f.notifications {
		f.notifications[i].Read = true
	}
}

func testClient() *fakeClient {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &fakeClient{
		connection: "connected",
		notifications: []domain.Notification{
			{ID: "n-1", Type: domain.TypeOrder, Message: "Order ord-1 delivered", Priority: domain.PriorityNormal, Timestamp: ts},
			{ID: "n-2", Type: domain.TypeDelivery, Message: "No riders for ord-2", Priority: domain.PriorityHigh, Timestamp: ts.Add(time.Minute)},
			{ID: "n-3", Type: domain.TypeOrder, Message: "Order ord-3 cancelled", Priority: domain.PriorityUrgent, Timestamp: ts.Add(2 * time.Minute), Read: true},
		},
	}
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	panic("unsupported key in test: " + s)
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModelNavigation(t *testing.T) {
	m := NewModel(testClient())
	require.Equal(t, 0, m.cursor)

	m = update(t, m, key("j"), key("j"))
	assert.Equal(t, 2, m.cursor)

	// Does not run off the end.
	m = update(t, m, key("j"))
	assert.Equal(t, 2, m.cursor)

	m = update(t, m, key("k"))
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, key("g"))
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, key("G"))
	assert.Equal(t, 2, m.cursor)
}

func TestModelAcknowledge(t *testing.T) {
	client := testClient()
	m := NewModel(client)

	m = update(t, m, key("enter"))

	require.Equal(t, []string{"n-1"}, client.acked)
	assert.Equal(t, 1, m.unread, "snapshot reloaded after acknowledge")
	assert.True(t, m.hasStatusMessage)

	latest, ok := m.errorHandler.Latest()
	require.True(t, ok)
	assert.Equal(t, apperrors.MessageTypeSuccess, latest.Type)
}

func TestModelAcknowledgeOffline(t *testing.T) {
	client := testClient()
	client.ackErr = errors.New("not connected")
	m := NewModel(client)

	m = update(t, m, key("enter"))

	require.Equal(t, []string{"n-1"}, client.acked)
	assert.Contains(t, m.statusMessage, "server not reachable")

	latest, ok := m.errorHandler.Latest()
	require.True(t, ok)
	assert.Equal(t, apperrors.MessageTypeWarning, latest.Type)
}

func TestModelDismiss(t *testing.T) {
	client := testClient()
	m := NewModel(client)

	m = update(t, m, key("j"), key("d"))

	require.Equal(t, []string{"n-2"}, client.dismissed)
	assert.Len(t, m.notifications, 2)
}

func TestModelDismissLastClampsCursor(t *testing.T) {
	client := testClient()
	m := NewModel(client)

	m = update(t, m, key("G"), key("d"))

	assert.Equal(t, 1, m.cursor)
	assert.Len(t, m.notifications, 2)
}

func TestModelMarkAllRead(t *testing.T) {
	client := testClient()
	m := NewModel(client)

	m = update(t, m, key("a"))

	assert.True(t, client.allRead)
	assert.Equal(t, 0, m.unread)
}

func TestModelRefreshMessage(t *testing.T) {
	client := testClient()
	m := NewModel(client)

	client.notifications = client.notifications[:1]
	m = update(t, m, Refresh())

	assert.Len(t, m.notifications, 1)
}

func TestModelViewRenders(t *testing.T) {
	m := NewModel(testClient())
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	assert.Contains(t, out, "unread")
	assert.Contains(t, out, "Order ord-1 delivered")
	assert.Contains(t, out, "connected")
}

func TestModelViewEmpty(t *testing.T) {
	m := NewModel(&fakeClient{connection: "disconnected"})
	out := m.View()
	assert.Contains(t, out, "No notifications.")
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testClient())
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
