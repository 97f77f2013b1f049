package errors

import (
	"sync"
)

// ErrorHandler reports command outcomes to the user at four levels. The CLI
// and the inbox TUI provide different implementations over the same call
// sites.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ConsoleOutput is the sink a CLIHandler writes through.
type ConsoleOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler reports outcomes on the terminal. Error tracks whether a report
// is already in flight so a failure raised while reporting a failure forwards
// directly instead of recursing.
type CLIHandler struct {
	out       ConsoleOutput
	mu        sync.Mutex
	reporting bool
}

func NewCLIHandler(out ConsoleOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.reporting {
		h.mu.Unlock()
		h.out.Error(msg)
		return
	}
	h.reporting = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.reporting = false
		h.mu.Unlock()
	}()

	h.out.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.out.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.out.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.out.Success(msg)
}
