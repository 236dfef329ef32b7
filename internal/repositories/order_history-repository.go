package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"procurement-system/internal/entities"
)

type OrderHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, entry entities.OrderHistory) error
	ListByOrder(ctx context.Context, orderID uint64) ([]entities.OrderHistory, error)
}

type OrderHistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderHistoryRepositoryInterface {
	return &OrderHistoryRepository{storage: storage, logger: logger}
}

func (r *OrderHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry entities.OrderHistory) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO order_history (order_id, item_id, actor_id, action, old_status, new_status, tx_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
		entry.OrderID, entry.ItemID, entry.ActorID, entry.Action,
		entry.OldStatus, entry.NewStatus, entry.TxID,
	)
	if err != nil {
		return fmt.Errorf("could not insert history entry: %w", err)
	}
	return nil
}

func (r *OrderHistoryRepository) ListByOrder(ctx context.Context, orderID uint64) ([]entities.OrderHistory, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, order_id, item_id, actor_id, action, old_status, new_status, tx_id, created_at
		FROM order_history
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("could not list order history: %w", err)
	}
	defer rows.Close()

	var entries []entities.OrderHistory
	for rows.Next() {
		var e entities.OrderHistory
		err := rows.Scan(&e.ID, &e.OrderID, &e.ItemID, &e.ActorID, &e.Action,
			&e.OldStatus, &e.NewStatus, &e.TxID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
