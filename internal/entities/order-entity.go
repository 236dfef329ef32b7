package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Order is a submitted purchase request. The status column is only
// authoritative while the order has no line items; otherwise the
// effective status is derived from the items (internal/workflow).
type Order struct {
	ID           uint64    `db:"id" json:"id"`
	ContactName  string    `db:"contact_name" json:"contact_name"`
	ContactPhone string    `db:"contact_phone" json:"contact_phone"`
	CreatorID    uint64    `db:"creator_id" json:"creator_id"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	DeletedAt    null.Time `db:"deleted_at" json:"-"`

	Items      []OrderItem `db:"-" json:"items"`
	CreatorFio string      `db:"-" json:"-"`
}
