package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deliverly/ordertray/internal/colors"
)

// Run starts the inbox program. subscribe registers a callback invoked on
// every store change so the view refreshes without polling.
func Run(client Client, subscribe func(fn func())) error {
	// JSON logs on stderr corrupt the alternate screen.
	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()

	p := tea.NewProgram(NewModel(client), tea.WithAltScreen())
	if subscribe != nil {
		subscribe(func() {
			p.Send(Refresh())
		})
	}
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
