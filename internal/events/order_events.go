package events

import "github.com/google/uuid"

// OrderStatusChangedEvent is published after a transition commits. One
// event per administrative action; bulk overrides carry ItemID == nil.
type OrderStatusChangedEvent struct {
	OrderID          uint64
	ItemID           *uint64
	OldStatus        string
	NewStatus        string
	ContactName      string
	ContactPhone     string
	NotificationLink string
	ActorID          uint64
	TxID             uuid.UUID
}

func (e OrderStatusChangedEvent) Name() string {
	return "order.status.changed"
}
