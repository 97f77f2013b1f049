package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("236"))

	unreadStyle = lipgloss.NewStyle().Bold(true)
	readStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	priorityHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	priorityUrgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")

	if len(m.notifications) == 0 {
		b.WriteString(readStyle.Render("No notifications."))
		b.WriteString("\n")
	} else {
		start, end := m.visibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.rowView(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	title := titleStyle.Render(fmt.Sprintf(" ordertray  %d unread ", m.unread))
	conn := disconnectedStyle.Render(m.connection)
	if m.connection == "connected" {
		conn = connectedStyle.Render(m.connection)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", conn)
}

// visibleRange windows the notification list to the viewport height.
func (m Model) visibleRange() (int, int) {
	height := m.viewport.Height
	if height < 1 {
		height = defaultViewportHeight
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.notifications) {
		end = len(m.notifications)
	}
	return start, end
}

func (m Model) rowView(i int) string {
	n := m.notifications[i]

	marker := "  "
	if !n.Read {
		marker = "● "
	}
	line := fmt.Sprintf("%s%s  %s  %s",
		marker,
		n.Timestamp.Local().Format("15:04"),
		priorityLabel(n.Priority),
		n.Message)

	if i == m.cursor {
		return selectedStyle.Render(line)
	}
	if !n.Read {
		return unreadStyle.Render(line)
	}
	return readStyle.Render(line)
}

func priorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityUrgent:
		return priorityUrgentStyle.Render("URGENT")
	case domain.PriorityHigh:
		return priorityHighStyle.Render("HIGH  ")
	default:
		return string(p) + strings.Repeat(" ", max(0, 6-len(p)))
	}
}

func (m Model) footerView() string {
	if m.hasStatusMessage {
		switch m.statusType {
		case errors.MessageTypeError:
			return errorStyle.Render(m.statusMessage)
		case errors.MessageTypeWarning:
			return warningStyle.Render(m.statusMessage)
		case errors.MessageTypeSuccess:
			return successStyle.Render(m.statusMessage)
		default:
			return footerStyle.Render(m.statusMessage)
		}
	}
	return footerStyle.Render("j/k move · enter mark read · d dismiss · a mark all · q quit")
}
