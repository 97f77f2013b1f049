package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/deliverly/ordertray/internal/alerting"
	"github.com/deliverly/ordertray/internal/dispatch"
	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/events"
	"github.com/deliverly/ordertray/internal/logging"
	"github.com/deliverly/ordertray/internal/store"
)

// Status is the lifecycle state of the connection.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusReconnecting Status = "reconnecting"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Defaults for the reconnection policy and liveness probing.
const (
	DefaultRetryDelay  = 2 * time.Second
	DefaultMaxAttempts = 5

	heartbeatInterval = 30 * time.Second
	heartbeatTimeout  = 2 * time.Second
)

// ErrNotConnected is returned by action operations declined while the channel
// is down. Callers may safely ignore it; the operation is not queued.
var ErrNotConnected = errors.New("realtime: not connected")

// Signals are the lifecycle callbacks dependents subscribe to. Nil callbacks
// are skipped.
type Signals struct {
	Connected    func()
	Disconnected func(reason string)
	Reconnecting func(attempt int)
}

// Manager maintains at most one live channel for the current viewer and
// recovers from transport or auth failure without duplicating connections.
type Manager struct {
	loop    *dispatch.Loop
	creds   CredentialStore
	factory ChannelFactory
	handle  func(events.Event)
	store   *store.Store
	alerter alerting.Alerter
	signals Signals

	retryDelay  time.Duration
	maxAttempts int
	heartbeat   time.Duration

	permissionOnce sync.Once

	mu             sync.Mutex
	status         Status
	attempt        int
	viewer         domain.Viewer
	ch             Channel
	chGen          int
	explicit       bool
	reconnectTimer *dispatch.Timer
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRetryDelay overrides the fixed reconnection delay.
func WithRetryDelay(d time.Duration) ManagerOption {
	return func(m *Manager) { m.retryDelay = d }
}

// WithMaxAttempts overrides the reconnection attempt cap.
func WithMaxAttempts(n int) ManagerOption {
	return func(m *Manager) { m.maxAttempts = n }
}

// WithHeartbeatInterval overrides the liveness probe interval.
func WithHeartbeatInterval(d time.Duration) ManagerOption {
	return func(m *Manager) { m.heartbeat = d }
}

// WithSignals registers lifecycle callbacks.
func WithSignals(s Signals) ManagerOption {
	return func(m *Manager) { m.signals = s }
}

// NewManager creates a Manager. handle receives every inbound event on the
// dispatch loop.
func NewManager(loop *dispatch.Loop, creds CredentialStore, factory ChannelFactory, handle func(events.Event), st *store.Store, al alerting.Alerter, opts ...ManagerOption) *Manager {
	m := &Manager{
		loop:        loop,
		creds:       creds,
		factory:     factory,
		handle:      handle,
		store:       st,
		alerter:     al,
		status:      StatusDisconnected,
		retryDelay:  DefaultRetryDelay,
		maxAttempts: DefaultMaxAttempts,
		heartbeat:   heartbeatInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Status returns the current connection status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// IsConnected reports whether the channel is live.
func (m *Manager) IsConnected() bool {
	return m.Status() == StatusConnected
}

// Attempt returns the current reconnection attempt counter.
func (m *Manager) Attempt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempt
}

// EnsureConnected is the idempotent external entry point. With no viewer it
// tears down any existing channel and reports disconnected. While a
// connection attempt is in flight, further calls are no-ops.
func (m *Manager) EnsureConnected(viewer domain.Viewer) {
	m.mu.Lock()
	if viewer.Zero() {
		m.teardownLocked()
		m.mu.Unlock()
		m.signalDisconnected("no viewer")
		return
	}
	if m.status == StatusConnecting {
		m.mu.Unlock()
		return
	}
	if m.status == StatusConnected && m.viewer == viewer {
		m.mu.Unlock()
		return
	}
	// A viewer change supersedes whatever channel exists.
	m.closeChannelLocked()
	m.stopReconnectLocked()
	m.viewer = viewer
	m.explicit = false
	m.attempt = 0
	m.status = StatusConnecting
	gen := m.chGen
	m.mu.Unlock()

	m.connect(gen, viewer)
}

// Teardown is the explicit, caller-initiated disconnect. It never triggers
// automatic reconnection.
func (m *Manager) Teardown() {
	m.mu.Lock()
	m.explicit = true
	m.stopReconnectLocked()
	m.closeChannelLocked()
	was := m.status
	m.status = StatusDisconnected
	m.mu.Unlock()
	if was != StatusDisconnected {
		m.signalDisconnected("teardown")
	}
}

// connect performs one channel-creation attempt. gen identifies the attempt
// so a superseding teardown or viewer change makes the result moot.
func (m *Manager) connect(gen int, viewer domain.Viewer) {
	token, err := m.creds.AccessToken()
	if err != nil {
		logging.Warn("not connecting: credential unavailable", "error", err)
		m.mu.Lock()
		if m.chGen == gen && m.status == StatusConnecting {
			m.status = StatusDisconnected
		}
		m.mu.Unlock()
		m.signalDisconnected("no credential")
		return
	}

	ch := m.factory()
	err = ch.Connect(context.Background(), token, viewer)

	m.mu.Lock()
	if m.chGen != gen || m.explicit {
		m.mu.Unlock()
		_ = ch.Close()
		return
	}
	if err != nil {
		m.mu.Unlock()
		_ = ch.Close()
		logging.Warn("connection attempt failed", "error", err)
		// Auth failures share this path: there is no token refresh here,
		// a fresh credential arrives via a later EnsureConnected.
		m.handleDisconnect(err.Error())
		return
	}
	m.ch = ch
	m.status = StatusConnected
	m.attempt = 0
	m.mu.Unlock()

	logging.Info("channel connected", "viewer_id", viewer.ID, "role", viewer.Role)
	if m.signals.Connected != nil {
		m.signals.Connected()
	}
	m.requestPermission()
	go m.pump(ch, gen)
	go m.heartbeatLoop(ch, gen)
}

// pump forwards inbound events to the dispatch loop until the channel dies.
func (m *Manager) pump(ch Channel, gen int) {
	for ev := range ch.Events() {
		ev := ev
		m.loop.Submit(func() { m.handle(ev) })
	}
	if m.stale(gen) {
		return
	}
	m.handleDisconnect("channel closed")
}

// heartbeatLoop probes transport liveness; a failed probe is treated as a
// transport disconnect.
func (m *Manager) heartbeatLoop(ch Channel, gen int) {
	ticker := time.NewTicker(m.heartbeat)
	defer ticker.Stop()
	for range ticker.C {
		if m.stale(gen) {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), heartbeatTimeout)
		err := ch.Ping(ctx)
		cancel()
		if err == nil {
			continue
		}
		if m.stale(gen) {
			return
		}
		logging.Warn("heartbeat failed", "error", err)
		m.handleDisconnect("heartbeat failed")
		return
	}
}

func (m *Manager) stale(gen int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chGen != gen || m.explicit
}

// handleDisconnect reacts to a transport-initiated disconnect: bounded
// reconnection unless the teardown was explicit.
func (m *Manager) handleDisconnect(reason string) {
	m.mu.Lock()
	m.closeChannelLocked()
	if m.explicit {
		m.status = StatusDisconnected
		m.mu.Unlock()
		return
	}
	if m.attempt >= m.maxAttempts {
		m.status = StatusDisconnected
		m.mu.Unlock()
		logging.Warn("reconnection attempts exhausted", "reason", reason)
		m.signalDisconnected(reason)
		return
	}
	m.attempt++
	attempt := m.attempt
	m.status = StatusReconnecting
	m.reconnectTimer = m.loop.After(m.retryDelay, m.retryConnect)
	m.mu.Unlock()

	logging.Info("scheduling reconnection", "attempt", attempt, "reason", reason)
	if m.signals.Reconnecting != nil {
		m.signals.Reconnecting(attempt)
	}
}

// retryConnect runs when the reconnection timer fires.
func (m *Manager) retryConnect() {
	m.mu.Lock()
	if m.explicit || m.viewer.Zero() || m.status != StatusReconnecting {
		m.mu.Unlock()
		return
	}
	m.status = StatusConnecting
	viewer := m.viewer
	gen := m.chGen
	m.mu.Unlock()

	m.connect(gen, viewer)
}

// requestPermission asks the host for alerting permission once per process.
func (m *Manager) requestPermission() {
	m.permissionOnce.Do(func() {
		granted := m.alerter.RequestPermission()
		m.store.SetPermissionGranted(granted)
	})
}

func (m *Manager) closeChannelLocked() {
	if m.ch != nil {
		_ = m.ch.Close()
		m.ch = nil
	}
	m.chGen++
}

func (m *Manager) stopReconnectLocked() {
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
		m.reconnectTimer = nil
	}
}

func (m *Manager) teardownLocked() {
	m.explicit = true
	m.stopReconnectLocked()
	m.closeChannelLocked()
	m.status = StatusDisconnected
}

func (m *Manager) signalDisconnected(reason string) {
	if m.signals.Disconnected != nil {
		m.signals.Disconnected(reason)
	}
}
