package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"procurement-system/internal/entities"
)

type AttachmentRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, attachment entities.Attachment) (uint64, error)
}

type AttachmentRepository struct {
	storage *pgxpool.Pool
}

func NewAttachmentRepository(storage *pgxpool.Pool) AttachmentRepositoryInterface {
	return &AttachmentRepository{storage: storage}
}

func (r *AttachmentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, attachment entities.Attachment) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO attachments (order_item_id, file_name, file_type, file_size, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id`,
		attachment.OrderItemID, attachment.FileName, attachment.FileType,
		attachment.FileSize, attachment.FilePath,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not insert attachment: %w", err)
	}
	return id, nil
}
