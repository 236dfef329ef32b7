package services_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"procurement-system/internal/dto"
	"procurement-system/internal/entities"
	"procurement-system/internal/repositories"
	"procurement-system/internal/services"
	"procurement-system/internal/workflow"
	apperrors "procurement-system/pkg/errors"
	"procurement-system/pkg/eventbus"
	"procurement-system/pkg/types"
)

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeOrderRepo struct {
	order          *entities.Order
	updatedItems   []entities.OrderItem
	updatedStatus  string
	deletedOrderID uint64
}

func (f *fakeOrderRepo) CreateOrderInTx(ctx context.Context, tx pgx.Tx, creatorID uint64, orderData dto.CreateOrderDTO) (uint64, []uint64, error) {
	itemIDs := make([]uint64, len(orderData.Items))
	items := make([]entities.OrderItem, len(orderData.Items))
	for i, item := range orderData.Items {
		itemIDs[i] = uint64(i + 1)
		items[i] = entities.OrderItem{
			ID: itemIDs[i], OrderID: 1, Name: item.Name,
			Quantity: item.Quantity, Status: "pending",
		}
	}
	f.order = &entities.Order{
		ID: 1, ContactName: orderData.ContactName, ContactPhone: orderData.ContactPhone,
		CreatorID: creatorID, Status: "pending", Items: items,
	}
	return 1, itemIDs, nil
}

func (f *fakeOrderRepo) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	if f.order == nil {
		return nil, 0, nil
	}
	return []entities.Order{*f.order}, 1, nil
}

func (f *fakeOrderRepo) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return f.order, nil
}

func (f *fakeOrderRepo) FindOrderForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error) {
	return f.FindOrder(ctx, id)
}

func (f *fakeOrderRepo) UpdateItemInTx(ctx context.Context, tx pgx.Tx, item entities.OrderItem) error {
	f.updatedItems = append(f.updatedItems, item)
	for i := range f.order.Items {
		if f.order.Items[i].ID == item.ID {
			f.order.Items[i] = item
		}
	}
	return nil
}

func (f *fakeOrderRepo) UpdateOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID uint64, status string) error {
	f.updatedStatus = status
	f.order.Status = status
	return nil
}

func (f *fakeOrderRepo) DeleteOrder(ctx context.Context, id uint64) error {
	f.deletedOrderID = id
	return nil
}

type fakeAttachmentRepo struct {
	created []entities.Attachment
}

func (f *fakeAttachmentRepo) CreateInTx(ctx context.Context, tx pgx.Tx, attachment entities.Attachment) (uint64, error) {
	f.created = append(f.created, attachment)
	return uint64(len(f.created)), nil
}

type fakeHistoryRepo struct {
	entries []entities.OrderHistory
}

func (f *fakeHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, entry entities.OrderHistory) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryRepo) ListByOrder(ctx context.Context, orderID uint64) ([]entities.OrderHistory, error) {
	return f.entries, nil
}

type fakePermissionService struct {
	actors map[uint64]workflow.Actor
}

func (f *fakePermissionService) ResolveActor(ctx context.Context, userID uint64) (workflow.Actor, error) {
	actor, ok := f.actors[userID]
	if !ok {
		return workflow.Actor{}, apperrors.ErrNotFound
	}
	return actor, nil
}

func (f *fakePermissionService) InvalidateActor(ctx context.Context, userID uint64) error {
	return nil
}

const (
	adminUserID    = 1
	reviewerUserID = 2
	strangerUserID = 3
)

type orderFixture struct {
	service   services.OrderServiceInterface
	orderRepo *fakeOrderRepo
	history   *fakeHistoryRepo
}

func newOrderFixture(t *testing.T, itemStatuses ...string) *orderFixture {
	t.Helper()

	items := make([]entities.OrderItem, len(itemStatuses))
	for i, status := range itemStatuses {
		items[i] = entities.OrderItem{
			ID: uint64(i + 1), OrderID: 10, Name: "Item", Quantity: 1, Status: status,
		}
	}
	orderRepo := &fakeOrderRepo{
		order: &entities.Order{
			ID: 10, ContactName: "Dilshod", ContactPhone: "+992901234567",
			CreatorID: adminUserID, Status: "pending", Items: items,
		},
	}
	history := &fakeHistoryRepo{}
	logger := zap.NewNop()

	permissions := &fakePermissionService{actors: map[uint64]workflow.Actor{
		adminUserID:    workflow.NewActor(adminUserID, true),
		reviewerUserID: workflow.NewActor(reviewerUserID, false, workflow.StatusInReview),
		strangerUserID: workflow.NewActor(strangerUserID, false),
	}}

	svc := services.NewOrderService(
		&fakeTxManager{}, orderRepo, &fakeAttachmentRepo{}, history,
		permissions, services.NewNotificationService(logger), nil,
		eventbus.New(logger), logger,
	)
	return &orderFixture{service: svc, orderRepo: orderRepo, history: history}
}

var _ repositories.OrderRepositoryInterface = (*fakeOrderRepo)(nil)
var _ repositories.AttachmentRepositoryInterface = (*fakeAttachmentRepo)(nil)
var _ repositories.OrderHistoryRepositoryInterface = (*fakeHistoryRepo)(nil)
var _ repositories.TxManagerInterface = (*fakeTxManager)(nil)
var _ services.PermissionServiceInterface = (*fakePermissionService)(nil)

func TestOrderService_UpdateItemStatus(t *testing.T) {
	t.Run("admin moves item and order status follows", func(t *testing.T) {
		fx := newOrderFixture(t, "pending", "pending")

		result, err := fx.service.UpdateItemStatus(context.Background(), adminUserID, 10, 1,
			dto.UpdateItemStatusDTO{Status: "in_review"})
		require.NoError(t, err)

		require.Len(t, fx.orderRepo.updatedItems, 1)
		assert.Equal(t, "in_review", fx.orderRepo.updatedItems[0].Status)
		assert.Equal(t, "in_review", fx.orderRepo.updatedStatus)

		require.Len(t, fx.history.entries, 1)
		entry := fx.history.entries[0]
		assert.Equal(t, entities.HistoryActionItemStatus, entry.Action)
		assert.Equal(t, "pending", entry.OldStatus.String)
		assert.Equal(t, "in_review", entry.NewStatus)

		assert.Contains(t, result.NotificationLink, "https://wa.me/992901234567")
		assert.Equal(t, "in_review", result.Order.Status)
	})

	t.Run("actor without allow-list entry is rejected", func(t *testing.T) {
		fx := newOrderFixture(t, "pending")

		_, err := fx.service.UpdateItemStatus(context.Background(), strangerUserID, 10, 1,
			dto.UpdateItemStatusDTO{Status: "in_review"})
		assert.ErrorIs(t, err, workflow.ErrForbidden)
		assert.Empty(t, fx.orderRepo.updatedItems)
		assert.Empty(t, fx.history.entries)
	})

	t.Run("unknown item yields not found", func(t *testing.T) {
		fx := newOrderFixture(t, "pending")

		_, err := fx.service.UpdateItemStatus(context.Background(), adminUserID, 10, 99,
			dto.UpdateItemStatusDTO{Status: "in_review"})
		assert.ErrorIs(t, err, workflow.ErrNotFound)
	})

	t.Run("unknown status yields invalid state", func(t *testing.T) {
		fx := newOrderFixture(t, "pending")

		_, err := fx.service.UpdateItemStatus(context.Background(), adminUserID, 10, 1,
			dto.UpdateItemStatusDTO{Status: "shipped"})
		assert.ErrorIs(t, err, workflow.ErrInvalidState)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	t.Run("bulk override touches every item under one tx id", func(t *testing.T) {
		fx := newOrderFixture(t, "pending", "in_review")

		result, err := fx.service.UpdateOrderStatus(context.Background(), adminUserID, 10,
			dto.UpdateOrderStatusDTO{Status: "canceled"})
		require.NoError(t, err)

		require.Len(t, fx.orderRepo.updatedItems, 2)
		for _, item := range fx.orderRepo.updatedItems {
			assert.Equal(t, "canceled", item.Status)
		}
		assert.Equal(t, "canceled", fx.orderRepo.updatedStatus)

		require.Len(t, fx.history.entries, 2)
		assert.Equal(t, fx.history.entries[0].TxID, fx.history.entries[1].TxID)
		for _, entry := range fx.history.entries {
			assert.Equal(t, entities.HistoryActionOrderStatus, entry.Action)
		}

		assert.Equal(t, "canceled", result.Order.Status)
	})

	t.Run("forbidden bulk override leaves everything untouched", func(t *testing.T) {
		fx := newOrderFixture(t, "pending", "pending")

		_, err := fx.service.UpdateOrderStatus(context.Background(), reviewerUserID, 10,
			dto.UpdateOrderStatusDTO{Status: "canceled"})
		assert.ErrorIs(t, err, workflow.ErrForbidden)
		assert.Empty(t, fx.orderRepo.updatedItems)
		assert.Empty(t, fx.history.entries)
	})
}

func TestOrderService_CancelOrder(t *testing.T) {
	t.Run("only the primary admin may cancel unconditionally", func(t *testing.T) {
		fx := newOrderFixture(t, "delivered")

		_, err := fx.service.CancelOrder(context.Background(), reviewerUserID, 10,
			dto.CancelOrderDTO{Reason: "supplier folded"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, fx.orderRepo.updatedItems)
	})

	t.Run("admin cancels delivered order with reason", func(t *testing.T) {
		fx := newOrderFixture(t, "delivered", "in_progress")

		result, err := fx.service.CancelOrder(context.Background(), adminUserID, 10,
			dto.CancelOrderDTO{Reason: "supplier folded"})
		require.NoError(t, err)

		require.Len(t, fx.orderRepo.updatedItems, 2)
		for _, item := range fx.orderRepo.updatedItems {
			assert.Equal(t, "canceled", item.Status)
			assert.Equal(t, "supplier folded", item.CancelReason.String)
		}
		assert.Equal(t, "canceled", fx.orderRepo.updatedStatus)

		for _, entry := range fx.history.entries {
			assert.Equal(t, entities.HistoryActionCancelAll, entry.Action)
		}
		assert.Equal(t, "canceled", result.Order.Status)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	t.Run("non-admin cannot delete", func(t *testing.T) {
		fx := newOrderFixture(t, "pending")

		err := fx.service.DeleteOrder(context.Background(), reviewerUserID, 10)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Zero(t, fx.orderRepo.deletedOrderID)
	})

	t.Run("admin delete reaches the repository", func(t *testing.T) {
		fx := newOrderFixture(t, "pending")

		require.NoError(t, fx.service.DeleteOrder(context.Background(), adminUserID, 10))
		assert.Equal(t, uint64(10), fx.orderRepo.deletedOrderID)
	})
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Run("writes a create history entry", func(t *testing.T) {
		fx := newOrderFixture(t)

		order, err := fx.service.CreateOrder(context.Background(), adminUserID, dto.CreateOrderDTO{
			ContactName:  "Dilshod",
			ContactPhone: "+992901234567",
			Items: []dto.CreateOrderItemDTO{
				{Name: "Office chairs", Quantity: 4},
			},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, "pending", order.Status)
		require.Len(t, fx.history.entries, 1)
		assert.Equal(t, entities.HistoryActionCreate, fx.history.entries[0].Action)
		assert.Equal(t, "pending", fx.history.entries[0].NewStatus)
	})

	t.Run("attachment bound to a missing item index is rejected", func(t *testing.T) {
		fx := newOrderFixture(t)

		_, err := fx.service.CreateOrder(context.Background(), adminUserID, dto.CreateOrderDTO{
			ContactName:  "Dilshod",
			ContactPhone: "+992901234567",
			Items:        []dto.CreateOrderItemDTO{{Name: "Chair", Quantity: 1}},
		}, []dto.AttachmentUpload{{ItemIndex: 5, FileName: "spec.pdf"}})

		var inputErr *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &inputErr)
	})
}

func TestOrderService_StatusCatalog(t *testing.T) {
	t.Run("next statuses intersect graph and allow-list", func(t *testing.T) {
		fx := newOrderFixture(t, "pending", "pending")

		next, err := fx.service.AllowedNextStatuses(context.Background(), reviewerUserID, 10)
		require.NoError(t, err)
		assert.Equal(t, "pending", next.From)
		assert.Equal(t, []string{"in_review"}, next.Next)
	})

	t.Run("terminal order offers nothing even to the admin", func(t *testing.T) {
		fx := newOrderFixture(t, "delivered", "delivered")

		next, err := fx.service.AllowedNextStatuses(context.Background(), adminUserID, 10)
		require.NoError(t, err)
		assert.Equal(t, "delivered", next.From)
		assert.Empty(t, next.Next)
	})

	t.Run("status catalog reflects the caller's permissions", func(t *testing.T) {
		fx := newOrderFixture(t, "pending")

		statuses, err := fx.service.ListStatuses(context.Background(), reviewerUserID)
		require.NoError(t, err)
		require.Len(t, statuses, 5)

		byCode := make(map[string]dto.StatusDTO, len(statuses))
		for _, s := range statuses {
			byCode[s.Code] = s
		}
		assert.True(t, byCode["in_review"].CanSet)
		assert.False(t, byCode["delivered"].CanSet)
		assert.True(t, byCode["canceled"].Terminal)
		assert.ElementsMatch(t, []string{"in_review", "canceled"}, byCode["pending"].Next)
	})
}
