package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"procurement-system/internal/dto"
	"procurement-system/internal/entities"
	"procurement-system/internal/infrastructure/db"
	apperrors "procurement-system/pkg/errors"
	"procurement-system/pkg/types"
)

type OrderRepositoryInterface interface {
	CreateOrderInTx(ctx context.Context, tx pgx.Tx, creatorID uint64, orderData dto.CreateOrderDTO) (orderID uint64, itemIDs []uint64, err error)
	GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	FindOrderForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error)
	UpdateItemInTx(ctx context.Context, tx pgx.Tx, item entities.OrderItem) error
	UpdateOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID uint64, status string) error
	DeleteOrder(ctx context.Context, id uint64) error
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// listFilterColumns whitelists the json fields list queries may filter
// and sort on.
var listFilterColumns = map[string]string{
	"status":       "ord.status",
	"creator_id":   "ord.creator_id",
	"contact_name": "ord.contact_name",
	"created_at":   "ord.created_at",
	"id":           "ord.id",
}

// CreateOrderInTx inserts the order and all of its line items in the
// caller's transaction. Items start in the order's initial status.
func (r *OrderRepository) CreateOrderInTx(ctx context.Context, tx pgx.Tx, creatorID uint64, orderData dto.CreateOrderDTO) (uint64, []uint64, error) {
	var orderID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (contact_name, contact_phone, creator_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'pending', NOW(), NOW())
		RETURNING id`,
		orderData.ContactName, orderData.ContactPhone, creatorID,
	).Scan(&orderID)
	if err != nil {
		return 0, nil, fmt.Errorf("could not insert order: %w", err)
	}

	itemIDs := make([]uint64, 0, len(orderData.Items))
	for _, item := range orderData.Items {
		var itemID uint64
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, name, quantity, spec, reason, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 'pending', NOW(), NOW())
			RETURNING id`,
			orderID, item.Name, item.Quantity, item.Spec, item.Reason,
		).Scan(&itemID)
		if err != nil {
			return 0, nil, fmt.Errorf("could not insert order item: %w", err)
		}
		itemIDs = append(itemIDs, itemID)
	}

	return orderID, itemIDs, nil
}

func (r *OrderRepository) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").
		From("orders ord").
		Where("ord.deleted_at IS NULL")
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, listFilterColumns)

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("could not build count query: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("could not count orders: %w", err)
	}

	builder := psql.Select(
		"ord.id", "ord.contact_name", "ord.contact_phone", "ord.creator_id",
		"ord.status", "ord.created_at", "ord.updated_at", "creator.fio",
	).
		From("orders ord").
		LeftJoin("users creator ON ord.creator_id = creator.id").
		Where("ord.deleted_at IS NULL")

	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("ord.created_at DESC")
	}
	builder = db.ApplyListParams(builder, filter, listFilterColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("could not build list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	orderIDs := make([]uint64, 0)
	for rows.Next() {
		var ord entities.Order
		err := rows.Scan(
			&ord.ID, &ord.ContactName, &ord.ContactPhone, &ord.CreatorID,
			&ord.Status, &ord.CreatedAt, &ord.UpdatedAt, &ord.CreatorFio,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("could not scan order: %w", err)
		}
		orders = append(orders, ord)
		orderIDs = append(orderIDs, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	itemsByOrder, err := r.loadItems(ctx, r.storage, orderIDs...)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return orders, total, nil
}

func (r *OrderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	query := `
		SELECT ord.id, ord.contact_name, ord.contact_phone, ord.creator_id,
		       ord.status, ord.created_at, ord.updated_at, creator.fio
		FROM orders ord
		LEFT JOIN users creator ON ord.creator_id = creator.id
		WHERE ord.id = $1 AND ord.deleted_at IS NULL`

	ord, err := r.scanOrder(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	itemsByOrder, err := r.loadItems(ctx, r.storage, ord.ID)
	if err != nil {
		return nil, err
	}
	ord.Items = itemsByOrder[ord.ID]

	if err := r.loadAttachments(ctx, ord); err != nil {
		return nil, err
	}
	return ord, nil
}

// FindOrderForUpdateInTx locks the order row (SELECT ... FOR UPDATE) and
// reads its items inside the caller's transaction. Every status writer
// goes through this lock, which makes the read-check-write cycle atomic
// with respect to concurrent transition attempts on the same order.
func (r *OrderRepository) FindOrderForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error) {
	query := `
		SELECT ord.id, ord.contact_name, ord.contact_phone, ord.creator_id,
		       ord.status, ord.created_at, ord.updated_at, ''
		FROM orders ord
		WHERE ord.id = $1 AND ord.deleted_at IS NULL
		FOR UPDATE`

	ord, err := r.scanOrder(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	itemsByOrder, err := r.loadItems(ctx, tx, ord.ID)
	if err != nil {
		return nil, err
	}
	ord.Items = itemsByOrder[ord.ID]
	return ord, nil
}

func (r *OrderRepository) scanOrder(row pgx.Row) (*entities.Order, error) {
	var ord entities.Order
	err := row.Scan(
		&ord.ID, &ord.ContactName, &ord.ContactPhone, &ord.CreatorID,
		&ord.Status, &ord.CreatedAt, &ord.UpdatedAt, &ord.CreatorFio,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not scan order: %w", err)
	}
	return &ord, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, q querier, orderIDs ...uint64) (map[uint64][]entities.OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, name, quantity, spec, reason, status,
		       delivery_estimate, cancel_reason, updated_by, created_at, updated_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("could not load order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[uint64][]entities.OrderItem, len(orderIDs))
	for rows.Next() {
		var item entities.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.Name, &item.Quantity, &item.Spec,
			&item.Reason, &item.Status, &item.DeliveryEstimate,
			&item.CancelReason, &item.UpdatedBy, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan order item: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	return itemsByOrder, rows.Err()
}

func (r *OrderRepository) loadAttachments(ctx context.Context, ord *entities.Order) error {
	if len(ord.Items) == 0 {
		return nil
	}
	itemIDs := make([]uint64, len(ord.Items))
	index := make(map[uint64]int, len(ord.Items))
	for i, item := range ord.Items {
		itemIDs[i] = item.ID
		index[item.ID] = i
	}

	rows, err := r.storage.Query(ctx, `
		SELECT id, order_item_id, file_name, file_type, file_size, file_path, created_at
		FROM attachments
		WHERE order_item_id = ANY($1)
		ORDER BY id`, itemIDs)
	if err != nil {
		return fmt.Errorf("could not load attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a entities.Attachment
		err := rows.Scan(&a.ID, &a.OrderItemID, &a.FileName, &a.FileType, &a.FileSize, &a.FilePath, &a.CreatedAt)
		if err != nil {
			return fmt.Errorf("could not scan attachment: %w", err)
		}
		if i, ok := index[a.OrderItemID]; ok {
			ord.Items[i].Attachments = append(ord.Items[i].Attachments, a)
		}
	}
	return rows.Err()
}

// UpdateItemInTx persists the workflow-owned fields of one line item.
func (r *OrderRepository) UpdateItemInTx(ctx context.Context, tx pgx.Tx, item entities.OrderItem) error {
	tag, err := tx.Exec(ctx, `
		UPDATE order_items
		SET status = $1, delivery_estimate = $2, cancel_reason = $3,
		    updated_by = $4, updated_at = NOW()
		WHERE id = $5 AND order_id = $6`,
		item.Status, item.DeliveryEstimate, item.CancelReason,
		item.UpdatedBy, item.ID, item.OrderID,
	)
	if err != nil {
		return fmt.Errorf("could not update order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID uint64, status string) error {
	_, err := tx.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, orderID,
	)
	if err != nil {
		return fmt.Errorf("could not update order status: %w", err)
	}
	return nil
}

// DeleteOrder permanently removes the order; items and attachments go
// with it via ON DELETE CASCADE. No status semantics apply here.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("could not delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
