package entities

import "time"

// Attachment is opaque pass-through metadata for a file uploaded with a
// line item. The workflow never inspects it.
type Attachment struct {
	ID          uint64    `db:"id" json:"id"`
	OrderItemID uint64    `db:"order_item_id" json:"order_item_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FileType    string    `db:"file_type" json:"file_type"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	FilePath    string    `db:"file_path" json:"download_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
