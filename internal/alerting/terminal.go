package alerting

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	passiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("3")).
			Padding(0, 1)
	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)
)

// Terminal renders alerts as styled lines on a writer. It is the default
// Alerter for the foreground listen command.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a Terminal alerter writing to out. A nil writer
// defaults to stdout.
func NewTerminal(out io.Writer) *Terminal {
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{out: out}
}

// RequestPermission always succeeds for a terminal.
func (t *Terminal) RequestPermission() bool { return true }

// Show prints a passive one-line alert.
func (t *Terminal) Show(title, body string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.out, "%s %s\n", passiveStyle.Render("▲ "+title), body)
}

// ConfirmModal prints a bordered block. Terminals have no blocking modal, so
// RequireAck renders an acknowledgement hint instead.
func (t *Terminal) ConfirmModal(title, text string, opts ModalOptions) {
	t.mu.Lock()
	defer t.mu.Unlock()
	body := modalTitleStyle.Render(title) + "\n" + text
	if opts.RequireAck {
		body += "\n(acknowledge with: ordertray mark-read <id>)"
	} else if opts.Timer > 0 {
		body += fmt.Sprintf("\n(auto-dismisses in %s)", opts.Timer)
	}
	_, _ = fmt.Fprintln(t.out, modalStyle.Render(body))
}
