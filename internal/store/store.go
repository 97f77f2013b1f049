// Package store holds the user's notification inbox: an ordered, bounded
// collection with read/unread state, expiry, and snapshot persistence.
package store

import (
	"sync"
	"time"

	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/logging"
)

const (
	// MaxHeld is the in-memory retention bound. Insertion evicts beyond it.
	MaxHeld = 50
	// MaxPersisted is how many of the most recent entries survive restart.
	MaxPersisted = 20
)

// Snapshot is the persisted subset of store state.
type Snapshot struct {
	Notifications     []domain.Notification
	UnreadCount       int
	PermissionGranted bool
}

// Persister saves and loads store snapshots.
type Persister interface {
	Save(Snapshot) error
	Load() (Snapshot, bool, error)
}

// Store is the single source of truth for the notification inbox.
// All methods are safe for concurrent use; mutation normally happens on the
// dispatch loop, reads may come from the CLI or TUI.
type Store struct {
	mu                sync.RWMutex
	notifications     []domain.Notification // most-recent-first
	unread            int
	permissionGranted bool
	persister         Persister
	subscribers       []func()
	now               func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithPersister attaches snapshot persistence. The snapshot is loaded
// immediately; expired entries are dropped and the unread count recomputed
// from what survives.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store and rehydrates it from the persister, if any.
func New(opts ...Option) *Store {
	s := &Store{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(s)
	}
	if s.persister != nil {
		s.load()
	}
	return s
}

func (s *Store) load() {
	snap, ok, err := s.persister.Load()
	if err != nil {
		logging.Warn("failed to load notification snapshot", "error", err)
		return
	}
	if !ok {
		return
	}
	now := s.now()
	kept := make([]domain.Notification, 0, len(snap.Notifications))
	unread := 0
	for _, n := range snap.Notifications {
		if n.IsExpired(now) {
			continue
		}
		kept = append(kept, n)
		if !n.Read {
			unread++
		}
	}
	s.notifications = kept
	s.unread = unread
	s.permissionGranted = snap.PermissionGranted
}

// Subscribe registers fn to run after every mutation. Subscribers are invoked
// outside the store lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Add inserts a notification at the front of the inbox. It is a no-op when
// the id is already present or the notification expired before insertion.
func (s *Store) Add(n domain.Notification) {
	s.mu.Lock()
	if n.IsExpired(s.now()) {
		s.mu.Unlock()
		return
	}
	if s.indexOf(n.ID) >= 0 {
		s.mu.Unlock()
		return
	}
	n.Read = false
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	s.unread++
	// Evict beyond the retention bound; evicted unread entries leave the
	// count with them so the invariant holds.
	if len(s.notifications) > MaxHeld {
		for _, evicted := range s.notifications[MaxHeld:] {
			if !evicted.Read {
				s.unread--
			}
		}
		s.notifications = s.notifications[:MaxHeld]
	}
	s.mu.Unlock()
	s.changed()
}

// MarkRead sets read=true on the given id. No-op if absent or already read.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.notifications[i].Read {
		s.mu.Unlock()
		return
	}
	s.notifications[i].Read = true
	if s.unread > 0 {
		s.unread--
	}
	s.mu.Unlock()
	s.changed()
}

// MarkAllRead sets read=true on every entry and zeroes the unread count.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.unread = 0
	s.mu.Unlock()
	s.changed()
}

// Remove deletes the entry with the given id. No-op if absent.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	if !s.notifications[i].Read && s.unread > 0 {
		s.unread--
	}
	s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
	s.mu.Unlock()
	s.changed()
}

// Clear empties the inbox.
func (s *Store) Clear() {
	s.mu.Lock()
	s.notifications = nil
	s.unread = 0
	s.mu.Unlock()
	s.changed()
}

// Notifications returns a copy of the held entries, most-recent-first.
func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount returns the number of held unread entries.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

// Unread returns the displayable unread entries, most-recent-first.
func (s *Store) Unread() []domain.Notification {
	return s.List(domain.Filter{ReadFilter: domain.ReadFilterUnread})
}

// ByType returns the displayable entries of the given type.
func (s *Store) ByType(t domain.NotificationType) []domain.Notification {
	return s.List(domain.Filter{Type: t})
}

// List returns the displayable entries matching the filter. Expired entries
// are inert and never offered for display.
func (s *Store) List(filter domain.Filter) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.IsExpired(now) {
			continue
		}
		if n.MatchesFilter(filter) {
			out = append(out, n)
		}
	}
	return out
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (domain.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.notifications[i], true
	}
	return domain.Notification{}, false
}

// SetPermissionGranted records the host alerting permission decision.
func (s *Store) SetPermissionGranted(granted bool) {
	s.mu.Lock()
	s.permissionGranted = granted
	s.mu.Unlock()
	s.changed()
}

// PermissionGranted reports the recorded host alerting permission.
func (s *Store) PermissionGranted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.permissionGranted
}

// indexOf returns the position of id, or -1. Caller must hold the lock.
func (s *Store) indexOf(id string) int {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			return i
		}
	}
	return -1
}

// changed persists the snapshot and notifies subscribers.
func (s *Store) changed() {
	s.mu.RLock()
	var snap Snapshot
	if s.persister != nil {
		limit := len(s.notifications)
		if limit > MaxPersisted {
			limit = MaxPersisted
		}
		snap = Snapshot{
			Notifications:     append([]domain.Notification(nil), s.notifications[:limit]...),
			UnreadCount:       s.unread,
			PermissionGranted: s.permissionGranted,
		}
	}
	persister := s.persister
	subscribers := append(([]func())(nil), s.subscribers...)
	s.mu.RUnlock()

	if persister != nil {
		if err := persister.Save(snap); err != nil {
			logging.Warn("failed to persist notification snapshot", "error", err)
		}
	}
	for _, fn := range subscribers {
		fn()
	}
}
