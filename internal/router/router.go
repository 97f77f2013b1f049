// Package router translates inbound transport events into cache mutations,
// inbox insertions, and host alerts, applying the role visibility policy.
package router

import (
	"fmt"
	"strings"
	"time"

	"github.com/deliverly/ordertray/internal/alerting"
	"github.com/deliverly/ordertray/internal/cache"
	"github.com/deliverly/ordertray/internal/dispatch"
	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/events"
	"github.com/deliverly/ordertray/internal/logging"
	"github.com/deliverly/ordertray/internal/policy"
	"github.com/deliverly/ordertray/internal/store"
)

// insertDelay defers router-synthesized notifications so they do not race
// ahead of the UI's own optimistic update of the same transition.
const insertDelay = time.Second

// modalAutoDismiss is how long a high-priority modal stays up on its own.
const modalAutoDismiss = 5 * time.Second

// Router applies per-event-kind semantics. It is driven from the dispatch
// loop, one event at a time.
type Router struct {
	loop    *dispatch.Loop
	store   *store.Store
	cache   cache.OrderCache
	alerter alerting.Alerter
	viewer  func() domain.Viewer
	now     func() time.Time
	delay   time.Duration
}

// Option configures a Router.
type Option func(*Router)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithInsertDelay overrides the synthesized-notification delay. Used by tests.
func WithInsertDelay(d time.Duration) Option {
	return func(r *Router) { r.delay = d }
}

// New creates a Router. The viewer func supplies the current authenticated
// viewer; events arriving with no viewer present are dropped.
func New(loop *dispatch.Loop, st *store.Store, oc cache.OrderCache, al alerting.Alerter, viewer func() domain.Viewer, opts ...Option) *Router {
	r := &Router{
		loop:    loop,
		store:   st,
		cache:   oc,
		alerter: al,
		viewer:  viewer,
		now:     func() time.Time { return time.Now().UTC() },
		delay:   insertDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle applies one inbound event. Faults are absorbed: cache errors are
// logged, rejected events are dropped silently.
func (r *Router) Handle(ev events.Event) {
	switch e := ev.(type) {
	case events.StatusChanged:
		r.handleStatusChanged(e)
	case events.OrderReplaced:
		r.handleOrderReplaced(e)
	case events.NoRidersAvailable:
		r.handleNoRiders(e)
	case events.RiderAssigned:
		r.handleRiderAssigned(e)
	case events.NotificationReceived:
		r.handleNotification(e)
	case events.NotificationAcknowledged:
		r.store.MarkRead(e.NotificationID)
	default:
		logging.Warn("dropping event of unknown kind", "kind", ev.Kind())
	}
}

func (r *Router) handleStatusChanged(e events.StatusChanged) {
	// The cache is always kept current, even when the viewer is not
	// notified about the transition.
	r.invalidateOrders()
	if err := r.cache.PatchOne(e.OrderID, map[string]any{"status": e.Status.String()}); err != nil {
		logging.Warn("failed to patch cached order", "order_id", e.OrderID, "error", err)
	}

	if !e.Status.IsImportant() {
		return
	}
	if !policy.Visible(r.viewer().Role, e.Status) {
		return
	}

	n := domain.Notification{
		ID:       fmt.Sprintf("order-status-%s-%s-%d", e.OrderID, e.Status, r.now().UnixMilli()),
		Type:     domain.TypeOrder,
		Title:    "Order update",
		Message:  fmt.Sprintf("Order %s is now %s", e.OrderID, e.Status),
		Priority: domain.PriorityNormal,
		Data: map[string]any{
			"orderId": e.OrderID,
			"status":  e.Status.String(),
		},
		Actions: []domain.Action{
			{Label: "View order", Action: "open-order", Data: map[string]any{"orderId": e.OrderID}},
		},
		Timestamp: e.Timestamp,
	}
	r.loop.After(r.delay, func() {
		r.store.Add(n)
		r.alerter.Show(n.Title, n.Message)
	})
}

func (r *Router) handleOrderReplaced(e events.OrderReplaced) {
	r.invalidateOrders()
	if err := r.cache.ReplaceOne(e.OrderID, e.Order); err != nil {
		logging.Warn("failed to replace cached order", "order_id", e.OrderID, "error", err)
	}
	// No notification: the matching status-changed event already carries
	// the user-facing signal.
}

func (r *Router) handleNoRiders(e events.NoRidersAvailable) {
	r.invalidateOrders()
	if len(e.OrderIDs) == 0 {
		return
	}

	text := e.Message
	if len(e.OrderIDs) > 1 {
		text = fmt.Sprintf("%d orders have no riders available", len(e.OrderIDs))
	}

	// One notification per invocation, however many orders are batched.
	n := domain.Notification{
		ID:       fmt.Sprintf("no-riders-%s-%d", strings.Join(e.OrderIDs, "-"), r.now().UnixMilli()),
		Type:     domain.TypeDelivery,
		Title:    "No riders available",
		Message:  text,
		Priority: domain.PriorityHigh,
		Data: map[string]any{
			"orderIds": e.OrderIDs,
		},
		Timestamp: e.Timestamp,
	}
	r.store.Add(n)
	r.alerter.ConfirmModal(n.Title, text, alerting.ModalOptions{RequireAck: true})
}

func (r *Router) handleRiderAssigned(e events.RiderAssigned) {
	if err := r.cache.PatchOne(e.OrderID, map[string]any{"rider": e.Rider}); err != nil {
		logging.Warn("failed to patch cached rider", "order_id", e.OrderID, "error", err)
	}
	// The status-changed event for ASSIGNED carries the notification.
}

func (r *Router) handleNotification(e events.NotificationReceived) {
	n := e.Notification
	if !policy.Visible(r.viewer().Role, n.Status()) {
		return
	}

	r.store.Add(n)
	r.alerter.Show(n.Title, n.Message)

	switch n.Priority {
	case domain.PriorityUrgent:
		r.alerter.ConfirmModal(n.Title, n.Message, alerting.ModalOptions{RequireAck: true})
	case domain.PriorityHigh:
		r.alerter.ConfirmModal(n.Title, n.Message, alerting.ModalOptions{Timer: modalAutoDismiss})
	}
}

func (r *Router) invalidateOrders() {
	if err := r.cache.Invalidate(cache.TagOrders); err != nil {
		logging.Warn("failed to invalidate order collections", "error", err)
	}
}
