// Package alerting abstracts the host environment's alert surfaces: passive
// notifications and modal confirmations. Denied permission degrades to no-op.
package alerting

import "time"

// ModalOptions control how a modal alert behaves.
type ModalOptions struct {
	// Timer auto-dismisses the modal after the duration. Zero means no
	// auto-dismiss.
	Timer time.Duration
	// RequireAck keeps the modal up until the user acknowledges it.
	RequireAck bool
}

// Alerter is the host alerting contract.
type Alerter interface {
	// RequestPermission asks the host for alerting permission. Best-effort;
	// a refusal is not an error.
	RequestPermission() bool
	// Show raises a passive alert. Silently ignored when permission was
	// denied.
	Show(title, body string)
	// ConfirmModal raises a modal-style alert.
	ConfirmModal(title, text string, opts ModalOptions)
}

// Noop discards all alerts. Used when the host denies permission outright.
type Noop struct{}

func (Noop) RequestPermission() bool                  { return false }
func (Noop) Show(title, body string)                  {}
func (Noop) ConfirmModal(_, _ string, _ ModalOptions) {}
