package dto

import (
	"io"

	"github.com/aarondl/null/v8"
)

type CreateOrderDTO struct {
	ContactName  string               `json:"contact_name" validate:"required"`
	ContactPhone string               `json:"contact_phone" validate:"required,e164_phone"`
	Items        []CreateOrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

type CreateOrderItemDTO struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Spec     string `json:"spec"`
	Reason   string `json:"reason"`
}

// AttachmentUpload carries one multipart file from the controller into
// the order service; the service owns persistence and DB bookkeeping.
// ItemIndex binds the file to a line item of the CreateOrderDTO.
type AttachmentUpload struct {
	ItemIndex int
	FileName  string
	FileType  string
	FileSize  int64
	Content   io.Reader
}

type UpdateItemStatusDTO struct {
	Status           string      `json:"status" validate:"required,order_status"`
	DeliveryEstimate null.Time   `json:"delivery_estimate"`
	CancelReason     null.String `json:"cancel_reason"`
}

type UpdateOrderStatusDTO struct {
	Status           string      `json:"status" validate:"required,order_status"`
	DeliveryEstimate null.Time   `json:"delivery_estimate"`
	CancelReason     null.String `json:"cancel_reason"`
}

type CancelOrderDTO struct {
	Reason string `json:"reason" validate:"required"`
}

type OrderDTO struct {
	ID           uint64         `json:"id"`
	ContactName  string         `json:"contact_name"`
	ContactPhone string         `json:"contact_phone"`
	Status       string         `json:"status"`
	Creator      ShortUserDTO   `json:"creator"`
	Items        []OrderItemDTO `json:"items"`
	CreatedAt    string         `json:"created_at"`
}

type OrderItemDTO struct {
	ID               uint64          `json:"id"`
	Name             string          `json:"name"`
	Quantity         int             `json:"quantity"`
	Spec             string          `json:"spec,omitempty"`
	Reason           string          `json:"reason,omitempty"`
	Status           string          `json:"status"`
	DeliveryEstimate null.Time       `json:"delivery_estimate,omitempty"`
	CancelReason     null.String     `json:"cancel_reason,omitempty"`
	Attachments      []AttachmentDTO `json:"attachments,omitempty"`
}

type AttachmentDTO struct {
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	DownloadURL string `json:"download_url"`
}

// StatusChangeResultDTO is returned by every transition endpoint: the
// refreshed order plus the click-to-chat link the UI should open to
// notify the order's contact.
type StatusChangeResultDTO struct {
	Order            *OrderDTO `json:"order"`
	NotificationLink string    `json:"notification_link,omitempty"`
}
