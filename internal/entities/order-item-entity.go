package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// OrderItem is one requested product within an order. Items are created
// together with the order and only ever mutated through the workflow
// engine; they are deleted only when the whole order is deleted.
type OrderItem struct {
	ID               uint64      `db:"id" json:"id"`
	OrderID          uint64      `db:"order_id" json:"order_id"`
	Name             string      `db:"name" json:"name"`
	Quantity         int         `db:"quantity" json:"quantity"`
	Spec             string      `db:"spec" json:"spec"`
	Reason           string      `db:"reason" json:"reason"`
	Status           string      `db:"status" json:"status"`
	DeliveryEstimate null.Time   `db:"delivery_estimate" json:"delivery_estimate"`
	CancelReason     null.String `db:"cancel_reason" json:"cancel_reason"`
	UpdatedBy        null.Uint64 `db:"updated_by" json:"updated_by"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`

	Attachments []Attachment `db:"-" json:"attachments"`
}
