// Package tui implements the interactive notification inbox.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/errors"
)

const (
	headerFooterLines     = 4
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	statusClearDuration   = 5 * time.Second
)

// Client is the slice of the synchronization layer the inbox needs.
type Client interface {
	Notifications() []domain.Notification
	UnreadCount() int
	ConnectionStatus() string
	Acknowledge(id string) error
	Dismiss(id string)
	MarkAllRead()
}

// refreshMsg asks the model to reload its snapshot from the client.
type refreshMsg struct{}

// clearStatusMsg removes a transient status message.
type clearStatusMsg struct{}

// Refresh returns the message that reloads the inbox. Exposed so the
// program can be poked from store subscriptions.
func Refresh() tea.Msg {
	return refreshMsg{}
}

// Model is the bubbletea model for the inbox.
type Model struct {
	client Client

	notifications []domain.Notification
	cursor        int
	unread        int
	connection    string

	viewport viewport.Model
	ready    bool

	errorHandler     *errors.TUIHandler
	statusMessage    string
	statusType       errors.MessageType
	hasStatusMessage bool
}

// NewModel creates an inbox model bound to a client.
func NewModel(client Client) Model {
	m := Model{
		client:   client,
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
	}
	m.errorHandler = errors.NewTUIHandler(nil)
	m.reload()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// reload pulls a fresh snapshot from the client and clamps the cursor.
func (m *Model) reload() {
	m.notifications = m.client.Notifications()
	m.unread = m.client.UnreadCount()
	m.connection = m.client.ConnectionStatus()
	if m.cursor >= len(m.notifications) {
		m.cursor = len(m.notifications) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the notification under the cursor.
func (m *Model) selected() (domain.Notification, bool) {
	if len(m.notifications) == 0 || m.cursor >= len(m.notifications) {
		return domain.Notification{}, false
	}
	return m.notifications[m.cursor], true
}

// setStatus shows a transient message in the footer and records it in the
// handler history.
func (m *Model) setStatus(text string, typ errors.MessageType) tea.Cmd {
	switch typ {
	case errors.MessageTypeError:
		m.errorHandler.Error(text)
	case errors.MessageTypeWarning:
		m.errorHandler.Warning(text)
	case errors.MessageTypeSuccess:
		m.errorHandler.Success(text)
	default:
		m.errorHandler.Info(text)
	}
	m.statusMessage = text
	m.statusType = typ
	m.hasStatusMessage = true
	return tea.Tick(statusClearDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerFooterLines
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.ready = true
		return m, nil

	case refreshMsg:
		m.reload()
		return m, nil

	case clearStatusMsg:
		m.hasStatusMessage = false
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.notifications)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		if len(m.notifications) > 0 {
			m.cursor = len(m.notifications) - 1
		}
		return m, nil

	case "enter":
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		var cmd tea.Cmd
		if err := m.client.Acknowledge(n.ID); err != nil {
			cmd = m.setStatus("marked read locally, server not reachable", errors.MessageTypeWarning)
		} else {
			cmd = m.setStatus("marked read", errors.MessageTypeSuccess)
		}
		m.reload()
		return m, cmd

	case "d", "x":
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.client.Dismiss(n.ID)
		m.reload()
		return m, m.setStatus("dismissed", errors.MessageTypeSuccess)

	case "a":
		m.client.MarkAllRead()
		m.reload()
		return m, m.setStatus("all notifications marked read", errors.MessageTypeSuccess)

	case "r":
		m.reload()
		return m, nil
	}
	return m, nil
}
