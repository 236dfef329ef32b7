package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// OrderHistory is the append-only transition log. TxID groups the rows
// written by one administrative action (a bulk override produces one
// row per item, all sharing the TxID).
type OrderHistory struct {
	ID        uint64      `db:"id" json:"id"`
	OrderID   uint64      `db:"order_id" json:"order_id"`
	ItemID    null.Uint64 `db:"item_id" json:"item_id"`
	ActorID   uint64      `db:"actor_id" json:"actor_id"`
	Action    string      `db:"action" json:"action"`
	OldStatus null.String `db:"old_status" json:"old_status"`
	NewStatus string      `db:"new_status" json:"new_status"`
	TxID      uuid.UUID   `db:"tx_id" json:"tx_id"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

const (
	HistoryActionCreate      = "create"
	HistoryActionItemStatus  = "item_status"
	HistoryActionOrderStatus = "order_status"
	HistoryActionCancelAll   = "cancel_all"
)
