// Package toast layers transient, auto-expiring visual alerts on top of the
// notification store. Toast lifetimes are independent of store persistence.
package toast

import (
	"sync"
	"time"

	"github.com/deliverly/ordertray/internal/dispatch"
	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/store"
)

// Dismissal timers by priority.
const (
	DurationElevated = 10 * time.Second
	DurationDefault  = 5 * time.Second
)

// Presenter renders toasts. Implementations must tolerate Hide for ids they
// never showed.
type Presenter interface {
	Show(n domain.Notification)
	Hide(id string)
}

// Queue tracks which notifications currently have a toast on screen.
type Queue struct {
	loop      *dispatch.Loop
	store     *store.Store
	presenter Presenter
	elevated  time.Duration
	standard  time.Duration

	mu        sync.Mutex
	active    map[string]*dispatch.Timer
	processed map[string]bool
}

// Option configures a Queue.
type Option func(*Queue)

// WithDurations overrides the dismissal timers.
func WithDurations(elevated, standard time.Duration) Option {
	return func(q *Queue) {
		if elevated > 0 {
			q.elevated = elevated
		}
		if standard > 0 {
			q.standard = standard
		}
	}
}

// NewQueue creates a Queue and subscribes it to store changes.
func NewQueue(loop *dispatch.Loop, st *store.Store, presenter Presenter, opts ...Option) *Queue {
	q := &Queue{
		loop:      loop,
		store:     st,
		presenter: presenter,
		elevated:  DurationElevated,
		standard:  DurationDefault,
		active:    make(map[string]*dispatch.Timer),
		processed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(q)
	}
	st.Subscribe(q.Sync)
	return q
}

// Duration returns the default dismissal timer for a priority.
func Duration(p domain.Priority) time.Duration {
	if p.IsElevated() {
		return DurationElevated
	}
	return DurationDefault
}

func (q *Queue) duration(p domain.Priority) time.Duration {
	if p.IsElevated() {
		return q.elevated
	}
	return q.standard
}

// Sync reconciles the active toast set with the store: every unread
// notification not yet processed gets a toast exactly once, and toasts whose
// notification left the store are cancelled.
func (q *Queue) Sync() {
	unread := q.store.Unread()

	q.mu.Lock()
	var toShow []domain.Notification
	for _, n := range unread {
		if q.processed[n.ID] {
			continue
		}
		q.processed[n.ID] = true
		n := n
		toShow = append(toShow, n)
		q.active[n.ID] = q.loop.After(q.duration(n.Priority), func() {
			q.expire(n.ID)
		})
	}

	held := make(map[string]bool)
	for _, n := range q.store.Notifications() {
		held[n.ID] = true
	}
	var toHide []string
	for id, timer := range q.active {
		if !held[id] {
			timer.Stop()
			delete(q.active, id)
			toHide = append(toHide, id)
		}
	}
	q.mu.Unlock()

	for _, n := range toShow {
		q.presenter.Show(n)
	}
	for _, id := range toHide {
		q.presenter.Hide(id)
	}
}

// expire handles a toast timer firing: the toast disappears and the
// notification is removed without being marked read. A notification already
// gone from the store makes this a no-op.
func (q *Queue) expire(id string) {
	q.mu.Lock()
	_, ok := q.active[id]
	delete(q.active, id)
	q.mu.Unlock()
	if !ok {
		return
	}
	q.presenter.Hide(id)
	q.store.Remove(id)
}

// Dismiss closes a toast by user action and removes the notification.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	timer, ok := q.active[id]
	if ok {
		timer.Stop()
		delete(q.active, id)
	}
	q.mu.Unlock()
	if ok {
		q.presenter.Hide(id)
	}
	q.store.Remove(id)
}

// TriggerAction runs when the user activates a declared action on a toast.
// Activation always implies the notification was read; the entry stays in the
// inbox.
func (q *Queue) TriggerAction(id string) {
	q.mu.Lock()
	timer, ok := q.active[id]
	if ok {
		timer.Stop()
		delete(q.active, id)
	}
	q.mu.Unlock()
	if ok {
		q.presenter.Hide(id)
	}
	q.store.MarkRead(id)
}

// ActiveIDs returns the ids with a toast currently shown.
func (q *Queue) ActiveIDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]string, 0, len(q.active))
	for id := range q.active {
		ids = append(ids, id)
	}
	return ids
}
