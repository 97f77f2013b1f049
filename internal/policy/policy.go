// Package policy decides which order-event statuses are surfaced to a viewer.
package policy

import "github.com/deliverly/ordertray/internal/domain"

// suppressed lists the status transitions vendors and admins already observe
// through their own action flows. Re-notifying them is noise.
var suppressed = map[domain.OrderStatus]bool{
	domain.StatusConfirmed:      true,
	domain.StatusPreparing:      true,
	domain.StatusReadyForPickup: true,
	domain.StatusAssigned:       true,
	domain.StatusPickedUp:       true,
}

// Visible reports whether an event with the given semantic status should be
// surfaced to a viewer with the given role. Events without a status (non-order
// events) are always visible.
func Visible(role domain.Role, status domain.OrderStatus) bool {
	if status == "" {
		return true
	}
	if role == domain.RoleVendor || role == domain.RoleAdmin {
		return !suppressed[status]
	}
	return true
}
