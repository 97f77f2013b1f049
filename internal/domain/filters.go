package domain

import (
	"fmt"
	"time"
)

// Read filter constants.
const (
	ReadFilterRead   = "read"
	ReadFilterUnread = "unread"
)

// Filter holds filter criteria for listing notifications.
type Filter struct {
	Type       NotificationType
	Priority   Priority
	OrderID    string
	OlderThan  time.Time
	NewerThan  time.Time
	ReadFilter string // "read", "unread", or "" (no filter)
}

// FilterOptions holds filter parameters as provided on the CLI.
type FilterOptions struct {
	Type       string
	Priority   string
	OrderID    string
	OlderThan  int // days
	NewerThan  int // days
	ReadFilter string
}

// ToFilter converts FilterOptions to a Filter struct.
func (fo FilterOptions) ToFilter() (Filter, error) {
	var ntype NotificationType
	var err error

	if fo.Type != "" {
		ntype, err = ParseNotificationType(fo.Type)
		if err != nil {
			return Filter{}, err
		}
	}

	var priority Priority
	if fo.Priority != "" {
		priority, err = ParsePriority(fo.Priority)
		if err != nil {
			return Filter{}, err
		}
	}

	if fo.ReadFilter != "" && fo.ReadFilter != ReadFilterRead && fo.ReadFilter != ReadFilterUnread {
		return Filter{}, fmt.Errorf("invalid read filter: %s", fo.ReadFilter)
	}

	var olderThan, newerThan time.Time
	if fo.OlderThan > 0 {
		olderThan = time.Now().UTC().AddDate(0, 0, -fo.OlderThan)
	}
	if fo.NewerThan > 0 {
		newerThan = time.Now().UTC().AddDate(0, 0, -fo.NewerThan)
	}

	return Filter{
		Type:       ntype,
		Priority:   priority,
		OrderID:    fo.OrderID,
		OlderThan:  olderThan,
		NewerThan:  newerThan,
		ReadFilter: fo.ReadFilter,
	}, nil
}

// MatchesFilter checks if the notification matches the given filter criteria.
func (n *Notification) MatchesFilter(filter Filter) bool {
	if filter.Type != "" && n.Type != filter.Type {
		return false
	}
	if filter.Priority != "" && n.Priority != filter.Priority {
		return false
	}
	if filter.OrderID != "" && n.OrderID() != filter.OrderID {
		return false
	}
	if !filter.OlderThan.IsZero() && n.Timestamp.After(filter.OlderThan) {
		return false
	}
	if !filter.NewerThan.IsZero() && n.Timestamp.Before(filter.NewerThan) {
		return false
	}
	if filter.ReadFilter != "" {
		if filter.ReadFilter == ReadFilterRead && !n.Read {
			return false
		}
		if filter.ReadFilter == ReadFilterUnread && n.Read {
			return false
		}
	}
	return true
}
