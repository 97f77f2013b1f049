package domain

import (
	"fmt"
	"strings"
)

// Role identifies the kind of authenticated viewer consuming the feed.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleVendor   Role = "VENDOR"
	RoleCustomer Role = "CUSTOMER"
	RoleRider    Role = "RIDER"
)

// IsValid checks if the role is valid.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleCustomer, RoleRider:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string to a Role, accepting any casing.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("domain: invalid role: %q", s)
	}
	return r, nil
}

// OrderStatus is the semantic status of an order as reported by the server.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusAssigned       OrderStatus = "ASSIGNED"
	StatusPickedUp       OrderStatus = "PICKED_UP"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// importantStatuses are the transitions worth a user-facing notification.
var importantStatuses = map[OrderStatus]bool{
	StatusAssigned:       true,
	StatusPickedUp:       true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
	StatusCancelled:      true,
}

// IsImportant reports whether a status change should surface a notification.
func (s OrderStatus) IsImportant() bool {
	return importantStatuses[s]
}

// Viewer is the authenticated user context the feed is bound to.
type Viewer struct {
	ID   string
	Role Role
}

// Zero reports whether no viewer is present.
func (v Viewer) Zero() bool {
	return v.ID == ""
}
