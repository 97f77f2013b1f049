package router

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverly/ordertray/internal/alerting"
	"github.com/deliverly/ordertray/internal/cache"
	"github.com/deliverly/ordertray/internal/dispatch"
	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/events"
	"github.com/deliverly/ordertray/internal/store"
)

type recordingAlerter struct {
	passive []string
	modals  []string
	opts    []alerting.ModalOptions
}

func (a *recordingAlerter) RequestPermission() bool { return true }
func (a *recordingAlerter) Show(title, body string) {
	a.passive = append(a.passive, title+": "+body)
}
func (a *recordingAlerter) ConfirmModal(title, text string, opts alerting.ModalOptions) {
	a.modals = append(a.modals, title+": "+text)
	a.opts = append(a.opts, opts)
}

type fixture struct {
	loop    *dispatch.Loop
	store   *store.Store
	cache   *cache.MemoryCache
	alerter *recordingAlerter
	router  *Router
	viewer  domain.Viewer
}

func newFixture(t *testing.T, role domain.Role) *fixture {
	t.Helper()
	f := &fixture{
		loop:    dispatch.NewLoop(),
		store:   store.New(),
		cache:   cache.NewMemoryCache(),
		alerter: &recordingAlerter{},
		viewer:  domain.Viewer{ID: "u-1", Role: role},
	}
	t.Cleanup(f.loop.Close)
	f.router = New(f.loop, f.store, f.cache, f.alerter,
		func() domain.Viewer { return f.viewer },
		WithInsertDelay(0))
	return f
}

// settle waits for the dispatch loop to drain scheduled insertions.
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	f.loop.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch loop did not settle")
	}
	// Zero-delay timers still hop through time.AfterFunc; give them a tick.
	time.Sleep(20 * time.Millisecond)
	done = make(chan struct{})
	f.loop.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch loop did not settle")
	}
}

func TestRouter_StatusChanged_ImportantAdmitted(t *testing.T) {
	f := newFixture(t, domain.RoleCustomer)
	f.cache.Seed("ord-1", map[string]any{"status": "PENDING"})

	f.router.Handle(events.StatusChanged{
		OrderID:   "ord-1",
		Status:    domain.StatusOutForDelivery,
		Timestamp: time.Now().UTC(),
	})
	f.settle(t)

	order, ok := f.cache.Order("ord-1")
	require.True(t, ok)
	assert.Equal(t, "OUT_FOR_DELIVERY", order["status"])
	assert.True(t, f.cache.Stale(cache.TagOrders))

	held := f.store.Notifications()
	require.Len(t, held, 1)
	assert.True(t, strings.HasPrefix(held[0].ID, "order-status-ord-1-OUT_FOR_DELIVERY-"))
	assert.Equal(t, domain.TypeOrder, held[0].Type)
	assert.Equal(t, domain.PriorityNormal, held[0].Priority)
	assert.Len(t, f.alerter.passive, 1)
}

func TestRouter_StatusChanged_SuppressedForVendorStillPatchesCache(t *testing.T) {
	f := newFixture(t, domain.RoleVendor)
	f.cache.Seed("ord-1", map[string]any{"status": "PENDING"})

	f.router.Handle(events.StatusChanged{
		OrderID:   "ord-1",
		Status:    domain.StatusPickedUp,
		Timestamp: time.Now().UTC(),
	})
	f.settle(t)

	// Cache mutated regardless of visibility.
	order, _ := f.cache.Order("ord-1")
	assert.Equal(t, "PICKED_UP", order["status"])
	assert.True(t, f.cache.Stale(cache.TagOrders))

	// No notification, no toast trigger, no alert.
	assert.Empty(t, f.store.Notifications())
	assert.Equal(t, 0, f.store.UnreadCount())
	assert.Empty(t, f.alerter.passive)
}

func TestRouter_StatusChanged_UnimportantIsSilent(t *testing.T) {
	f := newFixture(t, domain.RoleCustomer)

	f.router.Handle(events.StatusChanged{
		OrderID:   "ord-1",
		Status:    domain.StatusPending,
		Timestamp: time.Now().UTC(),
	})
	f.settle(t)

	assert.Empty(t, f.store.Notifications())
	assert.True(t, f.cache.Stale(cache.TagOrders))
}

func TestRouter_RedeliveryWithinTickIsDeduplicated(t *testing.T) {
	f := newFixture(t, domain.RoleCustomer)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.router.now = func() time.Time { return fixed }

	ev := events.StatusChanged{OrderID: "ord-1", Status: domain.StatusDelivered, Timestamp: fixed}
	f.router.Handle(ev)
	f.router.Handle(ev)
	f.settle(t)

	assert.Len(t, f.store.Notifications(), 1)
	assert.Equal(t, 1, f.store.UnreadCount())
}

func TestRouter_OrderReplaced_NeverNotifies(t *testing.T) {
	f := newFixture(t, domain.RoleCustomer)

	f.router.Handle(events.OrderReplaced{
		OrderID:   "ord-1",
		Order:     map[string]any{"status": "DELIVERED", "total": 20.0},
		Timestamp: time.Now().UTC(),
	})
	f.settle(t)

	order, ok := f.cache.Order("ord-1")
	require.True(t, ok)
	assert.Equal(t, "DELIVERED", order["status"])
	assert.True(t, f.cache.Stale(cache.TagOrders))
	assert.Empty(t, f.store.Notifications())
}

func TestRouter_NoRiders_BatchedProducesOneNotification(t *testing.T) {
	f := newFixture(t, domain.RoleVendor) // always admitted, role irrelevant

	f.router.Handle(events.NoRidersAvailable{
		OrderIDs:  []string{"a", "b", "c"},
		Message:   "no riders in zone 4",
		Timestamp: time.Now().UTC(),
	})
	f.settle(t)

	held := f.store.Notifications()
	require.Len(t, held, 1)
	assert.Contains(t, held[0].Message, "3")
	assert.True(t, strings.HasPrefix(held[0].ID, "no-riders-a-b-c-"))

	require.Len(t, f.alerter.modals, 1)
	assert.Contains(t, f.alerter.modals[0], "3 orders")
	assert.True(t, f.cache.Stale(cache.TagOrders))
}

func TestRouter_NoRiders_SingleUsesServerMessage(t *testing.T) {
	f := newFixture(t, domain.RoleAdmin)

	f.router.Handle(events.NoRidersAvailable{
		OrderIDs:  []string{"ord-9"},
		Message:   "no riders near Elm Street",
		Timestamp: time.Now().UTC(),
	})
	f.settle(t)

	held := f.store.Notifications()
	require.Len(t, held, 1)
	assert.Equal(t, "no riders near Elm Street", held[0].Message)
	require.Len(t, f.alerter.modals, 1)
	assert.Contains(t, f.alerter.modals[0], "no riders near Elm Street")
}

func TestRouter_RiderAssigned_PatchesWithoutNotification(t *testing.T) {
	f := newFixture(t, domain.RoleCustomer)
	f.cache.Seed("ord-1", map[string]any{"status": "ASSIGNED"})

	f.router.Handle(events.RiderAssigned{
		OrderID:   "ord-1",
		Rider:     map[string]any{"name": "Sam", "phone": "555"},
		Timestamp: time.Now().UTC(),
	})
	f.settle(t)

	order, _ := f.cache.Order("ord-1")
	require.NotNil(t, order["rider"])
	assert.Empty(t, f.store.Notifications())
}

func TestRouter_NotificationReceived_PolicyRejectsSilently(t *testing.T) {
	f := newFixture(t, domain.RoleVendor)

	f.router.Handle(events.NotificationReceived{Notification: domain.Notification{
		ID:        "n-1",
		Type:      domain.TypeOrder,
		Title:     "Preparing",
		Message:   "Order ord-1 is being prepared",
		Priority:  domain.PriorityNormal,
		Data:      map[string]any{"orderId": "ord-1", "status": "PREPARING"},
		Timestamp: time.Now().UTC(),
	}})
	f.settle(t)

	assert.Empty(t, f.store.Notifications())
	assert.Empty(t, f.alerter.passive)
	assert.Empty(t, f.alerter.modals)
}

func TestRouter_NotificationReceived_ModalByPriority(t *testing.T) {
	tests := []struct {
		name       string
		priority   domain.Priority
		wantModal  bool
		requireAck bool
		timer      time.Duration
	}{
		{"normal no modal", domain.PriorityNormal, false, false, 0},
		{"high timed modal", domain.PriorityHigh, true, false, modalAutoDismiss},
		{"urgent ack modal", domain.PriorityUrgent, true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.RoleCustomer)
			f.router.Handle(events.NotificationReceived{Notification: domain.Notification{
				ID:        "n-1",
				Type:      domain.TypeSystem,
				Title:     "Heads up",
				Message:   "something happened",
				Priority:  tt.priority,
				Timestamp: time.Now().UTC(),
			}})
			f.settle(t)

			assert.Len(t, f.store.Notifications(), 1)
			assert.Len(t, f.alerter.passive, 1)
			if !tt.wantModal {
				assert.Empty(t, f.alerter.modals)
				return
			}
			require.Len(t, f.alerter.modals, 1)
			assert.Equal(t, tt.requireAck, f.alerter.opts[0].RequireAck)
			assert.Equal(t, tt.timer, f.alerter.opts[0].Timer)
		})
	}
}

func TestRouter_Acknowledged_MarksRead(t *testing.T) {
	f := newFixture(t, domain.RoleCustomer)
	f.store.Add(domain.Notification{
		ID: "n-1", Type: domain.TypeOrder, Title: "x",
		Priority: domain.PriorityNormal, Timestamp: time.Now().UTC(),
	})
	require.Equal(t, 1, f.store.UnreadCount())

	f.router.Handle(events.NotificationAcknowledged{NotificationID: "n-1", Timestamp: time.Now().UTC()})
	assert.Equal(t, 0, f.store.UnreadCount())

	// Unknown id is a no-op.
	f.router.Handle(events.NotificationAcknowledged{NotificationID: "ghost", Timestamp: time.Now().UTC()})
	assert.Equal(t, 0, f.store.UnreadCount())
}
