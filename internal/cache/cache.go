// Package cache defines the order read-cache collaborator the router mutates.
// The cache is external to the realtime core: the core only issues invalidate
// and patch instructions and never assumes synchronous consistency.
package cache

// TagOrders is the invalidation tag covering cached order collections.
const TagOrders = "orders"

// OrderCache is the contract the event router drives.
type OrderCache interface {
	// Invalidate marks every cached collection under the tag as stale.
	Invalidate(tag string) error
	// PatchOne overwrites individual fields of a single cached order.
	// Missing orders are skipped, not created.
	PatchOne(orderID string, fields map[string]any) error
	// ReplaceOne replaces a single cached order wholesale.
	ReplaceOne(orderID string, order map[string]any) error
}
