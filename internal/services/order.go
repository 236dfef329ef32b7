package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"procurement-system/internal/dto"
	"procurement-system/internal/entities"
	"procurement-system/internal/events"
	"procurement-system/internal/repositories"
	"procurement-system/internal/workflow"
	apperrors "procurement-system/pkg/errors"
	"procurement-system/pkg/eventbus"
	"procurement-system/pkg/filestorage"
	"procurement-system/pkg/types"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, creatorID uint64, payload dto.CreateOrderDTO, uploads []dto.AttachmentUpload) (*dto.OrderDTO, error)
	GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, orderID uint64) (*dto.OrderDTO, error)
	UpdateItemStatus(ctx context.Context, userID, orderID, itemID uint64, payload dto.UpdateItemStatusDTO) (*dto.StatusChangeResultDTO, error)
	UpdateOrderStatus(ctx context.Context, userID, orderID uint64, payload dto.UpdateOrderStatusDTO) (*dto.StatusChangeResultDTO, error)
	CancelOrder(ctx context.Context, userID, orderID uint64, payload dto.CancelOrderDTO) (*dto.StatusChangeResultDTO, error)
	DeleteOrder(ctx context.Context, userID, orderID uint64) error
	ListStatuses(ctx context.Context, userID uint64) ([]dto.StatusDTO, error)
	AllowedNextStatuses(ctx context.Context, userID, orderID uint64) (*dto.NextStatusesDTO, error)
}

type OrderService struct {
	txManager           repositories.TxManagerInterface
	orderRepo           repositories.OrderRepositoryInterface
	attachmentRepo      repositories.AttachmentRepositoryInterface
	historyRepo         repositories.OrderHistoryRepositoryInterface
	permissionService   PermissionServiceInterface
	notificationService NotificationServiceInterface
	fileStorage         filestorage.FileStorageInterface
	bus                 *eventbus.Bus
	logger              *zap.Logger
}

func NewOrderService(
	txManager repositories.TxManagerInterface,
	orderRepo repositories.OrderRepositoryInterface,
	attachmentRepo repositories.AttachmentRepositoryInterface,
	historyRepo repositories.OrderHistoryRepositoryInterface,
	permissionService PermissionServiceInterface,
	notificationService NotificationServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		txManager:           txManager,
		orderRepo:           orderRepo,
		attachmentRepo:      attachmentRepo,
		historyRepo:         historyRepo,
		permissionService:   permissionService,
		notificationService: notificationService,
		fileStorage:         fileStorage,
		bus:                 bus,
		logger:              logger,
	}
}

// toWorkflowOrder projects the persisted aggregate into the shape the
// workflow engine operates on. Status strings pass through unparsed so
// the engine's own validation reports corrupt rows as ErrInvalidState.
func toWorkflowOrder(ord *entities.Order) workflow.Order {
	wf := workflow.Order{
		ID:     ord.ID,
		Status: workflow.Status(ord.Status),
		Items:  make([]workflow.Item, len(ord.Items)),
	}
	for i, item := range ord.Items {
		wf.Items[i] = workflow.Item{
			ID:               item.ID,
			Name:             item.Name,
			Quantity:         item.Quantity,
			Spec:             item.Spec,
			Reason:           item.Reason,
			Status:           workflow.Status(item.Status),
			DeliveryEstimate: item.DeliveryEstimate.Ptr(),
			CancelReason:     item.CancelReason.Ptr(),
			UpdatedAt:        item.UpdatedAt,
		}
		if item.UpdatedBy.Valid {
			wf.Items[i].UpdatedBy = item.UpdatedBy.Uint64
		}
	}
	return wf
}

func applyWorkflowItem(dst *entities.OrderItem, src workflow.Item) {
	dst.Status = string(src.Status)
	dst.DeliveryEstimate = null.TimeFromPtr(src.DeliveryEstimate)
	dst.CancelReason = null.StringFromPtr(src.CancelReason)
	dst.UpdatedBy = null.Uint64From(src.UpdatedBy)
	dst.UpdatedAt = src.UpdatedAt
}

func toExtra(deliveryEstimate null.Time, cancelReason null.String) workflow.Extra {
	return workflow.Extra{
		DeliveryEstimate: deliveryEstimate.Ptr(),
		CancelReason:     cancelReason.Ptr(),
	}
}

func mapOrderToDTO(ord *entities.Order) *dto.OrderDTO {
	out := &dto.OrderDTO{
		ID:           ord.ID,
		ContactName:  ord.ContactName,
		ContactPhone: ord.ContactPhone,
		Status:       string(workflow.DeriveOrderStatus(toWorkflowOrder(ord))),
		Creator:      dto.ShortUserDTO{ID: ord.CreatorID, Fio: ord.CreatorFio},
		Items:        make([]dto.OrderItemDTO, len(ord.Items)),
		CreatedAt:    ord.CreatedAt.Format(time.RFC3339),
	}
	for i, item := range ord.Items {
		itemDTO := dto.OrderItemDTO{
			ID:               item.ID,
			Name:             item.Name,
			Quantity:         item.Quantity,
			Spec:             item.Spec,
			Reason:           item.Reason,
			Status:           item.Status,
			DeliveryEstimate: item.DeliveryEstimate,
			CancelReason:     item.CancelReason,
		}
		for _, a := range item.Attachments {
			itemDTO.Attachments = append(itemDTO.Attachments, dto.AttachmentDTO{
				FileName:    a.FileName,
				FileType:    a.FileType,
				FileSize:    a.FileSize,
				DownloadURL: a.FilePath,
			})
		}
		out.Items[i] = itemDTO
	}
	return out
}

func (s *OrderService) CreateOrder(ctx context.Context, creatorID uint64, payload dto.CreateOrderDTO, uploads []dto.AttachmentUpload) (*dto.OrderDTO, error) {
	for _, upload := range uploads {
		if upload.ItemIndex < 0 || upload.ItemIndex >= len(payload.Items) {
			return nil, apperrors.NewInvalidInputError("attachment references item index %d, order has %d items", upload.ItemIndex, len(payload.Items))
		}
	}

	var orderID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var itemIDs []uint64
		var err error
		orderID, itemIDs, err = s.orderRepo.CreateOrderInTx(ctx, tx, creatorID, payload)
		if err != nil {
			return err
		}

		for _, upload := range uploads {
			filePath, err := s.fileStorage.Save(upload.Content, upload.FileName, "attachments")
			if err != nil {
				return err
			}
			_, err = s.attachmentRepo.CreateInTx(ctx, tx, entities.Attachment{
				OrderItemID: itemIDs[upload.ItemIndex],
				FileName:    upload.FileName,
				FileType:    upload.FileType,
				FileSize:    upload.FileSize,
				FilePath:    filePath,
			})
			if err != nil {
				return err
			}
		}

		return s.historyRepo.CreateInTx(ctx, tx, entities.OrderHistory{
			OrderID:   orderID,
			ActorID:   creatorID,
			Action:    entities.HistoryActionCreate,
			NewStatus: string(workflow.StatusPending),
			TxID:      uuid.New(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.Uint64("orderID", orderID), zap.Uint64("creatorID", creatorID))
	return s.FindOrder(ctx, orderID)
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.OrderDTO, len(orders))
	for i := range orders {
		out[i] = *mapOrderToDTO(&orders[i])
	}
	return out, total, nil
}

func (s *OrderService) FindOrder(ctx context.Context, orderID uint64) (*dto.OrderDTO, error) {
	ord, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return mapOrderToDTO(ord), nil
}

func (s *OrderService) UpdateItemStatus(ctx context.Context, userID, orderID, itemID uint64, payload dto.UpdateItemStatusDTO) (*dto.StatusChangeResultDTO, error) {
	newStatus, err := workflow.ParseStatus(payload.Status)
	if err != nil {
		return nil, err
	}
	actor, err := s.permissionService.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		oldStatus string
		itemName  string
		contact   entities.Order
		txID      = uuid.New()
	)
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		ord, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		contact = *ord

		wfOrder := toWorkflowOrder(ord)
		target := wfOrder.Item(itemID)
		if target == nil {
			return workflow.ErrNotFound
		}
		oldStatus = string(target.Status)
		itemName = target.Name

		if err := workflow.ApplyItemStatus(&wfOrder, itemID, newStatus, toExtra(payload.DeliveryEstimate, payload.CancelReason), actor); err != nil {
			return err
		}

		for i := range ord.Items {
			if ord.Items[i].ID != itemID {
				continue
			}
			applyWorkflowItem(&ord.Items[i], *wfOrder.Item(itemID))
			if err := s.orderRepo.UpdateItemInTx(ctx, tx, ord.Items[i]); err != nil {
				return err
			}
		}

		derived := workflow.DeriveOrderStatus(wfOrder)
		if err := s.orderRepo.UpdateOrderStatusInTx(ctx, tx, orderID, string(derived)); err != nil {
			return err
		}

		return s.historyRepo.CreateInTx(ctx, tx, entities.OrderHistory{
			OrderID:   orderID,
			ItemID:    null.Uint64From(itemID),
			ActorID:   userID,
			Action:    entities.HistoryActionItemStatus,
			OldStatus: null.StringFrom(oldStatus),
			NewStatus: string(newStatus),
			TxID:      txID,
		})
	})
	if err != nil {
		return nil, err
	}

	link := s.notificationLink(contact, orderID, itemName, newStatus)
	s.publishStatusChange(ctx, orderID, &itemID, oldStatus, string(newStatus), contact, link, userID, txID)
	return s.statusChangeResult(ctx, orderID, link)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, userID, orderID uint64, payload dto.UpdateOrderStatusDTO) (*dto.StatusChangeResultDTO, error) {
	newStatus, err := workflow.ParseStatus(payload.Status)
	if err != nil {
		return nil, err
	}
	actor, err := s.permissionService.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		oldStatus string
		contact   entities.Order
		txID      = uuid.New()
	)
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		ord, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		contact = *ord

		wfOrder := toWorkflowOrder(ord)
		oldStatus = string(workflow.DeriveOrderStatus(wfOrder))

		if err := workflow.ApplyOrderStatus(&wfOrder, newStatus, toExtra(payload.DeliveryEstimate, payload.CancelReason), actor); err != nil {
			return err
		}

		for i := range ord.Items {
			applyWorkflowItem(&ord.Items[i], wfOrder.Items[i])
			if err := s.orderRepo.UpdateItemInTx(ctx, tx, ord.Items[i]); err != nil {
				return err
			}
			if err := s.historyRepo.CreateInTx(ctx, tx, entities.OrderHistory{
				OrderID:   orderID,
				ItemID:    null.Uint64From(ord.Items[i].ID),
				ActorID:   userID,
				Action:    entities.HistoryActionOrderStatus,
				OldStatus: null.StringFrom(oldStatus),
				NewStatus: string(newStatus),
				TxID:      txID,
			}); err != nil {
				return err
			}
		}

		return s.orderRepo.UpdateOrderStatusInTx(ctx, tx, orderID, string(newStatus))
	})
	if err != nil {
		return nil, err
	}

	link := s.notificationLink(contact, orderID, "", newStatus)
	s.publishStatusChange(ctx, orderID, nil, oldStatus, string(newStatus), contact, link, userID, txID)
	return s.statusChangeResult(ctx, orderID, link)
}

// CancelOrder is the primary admin's escape hatch: it bypasses the
// lifecycle graph entirely, so the admin gate lives here rather than in
// the engine.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uint64, payload dto.CancelOrderDTO) (*dto.StatusChangeResultDTO, error) {
	actor, err := s.permissionService.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsPrimaryAdmin {
		return nil, apperrors.ErrForbidden
	}

	var (
		oldStatus string
		contact   entities.Order
		txID      = uuid.New()
	)
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		ord, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		contact = *ord

		wfOrder := toWorkflowOrder(ord)
		oldStatus = string(workflow.DeriveOrderStatus(wfOrder))

		workflow.CancelOrder(&wfOrder, payload.Reason, actor)

		for i := range ord.Items {
			applyWorkflowItem(&ord.Items[i], wfOrder.Items[i])
			if err := s.orderRepo.UpdateItemInTx(ctx, tx, ord.Items[i]); err != nil {
				return err
			}
			if err := s.historyRepo.CreateInTx(ctx, tx, entities.OrderHistory{
				OrderID:   orderID,
				ItemID:    null.Uint64From(ord.Items[i].ID),
				ActorID:   userID,
				Action:    entities.HistoryActionCancelAll,
				OldStatus: null.StringFrom(oldStatus),
				NewStatus: string(workflow.StatusCanceled),
				TxID:      txID,
			}); err != nil {
				return err
			}
		}

		return s.orderRepo.UpdateOrderStatusInTx(ctx, tx, orderID, string(workflow.StatusCanceled))
	})
	if err != nil {
		return nil, err
	}

	link, linkErr := s.notificationService.CancellationLink(contact.ContactPhone, contact.ContactName, orderID, payload.Reason)
	if linkErr != nil {
		link = ""
	}
	s.publishStatusChange(ctx, orderID, nil, oldStatus, string(workflow.StatusCanceled), contact, link, userID, txID)
	return s.statusChangeResult(ctx, orderID, link)
}

func (s *OrderService) DeleteOrder(ctx context.Context, userID, orderID uint64) error {
	actor, err := s.permissionService.ResolveActor(ctx, userID)
	if err != nil {
		return err
	}
	if !actor.IsPrimaryAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	s.logger.Info("order deleted",
		zap.Uint64("orderID", orderID), zap.Uint64("actorID", userID))
	return nil
}

// ListStatuses describes the full enumeration from the caller's point
// of view, so the UI can render transition controls without hardcoding
// the graph.
func (s *OrderService) ListStatuses(ctx context.Context, userID uint64) ([]dto.StatusDTO, error) {
	actor, err := s.permissionService.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StatusDTO, 0, len(workflow.AllStatuses))
	for _, status := range workflow.AllStatuses {
		next := workflow.NextStatuses(status)
		nextRaw := make([]string, len(next))
		for i, n := range next {
			nextRaw[i] = string(n)
		}
		out = append(out, dto.StatusDTO{
			Code:     string(status),
			Terminal: status.IsTerminal(),
			Next:     nextRaw,
			CanSet:   workflow.CanSetStatus(actor, status),
		})
	}
	return out, nil
}

func (s *OrderService) AllowedNextStatuses(ctx context.Context, userID, orderID uint64) (*dto.NextStatusesDTO, error) {
	actor, err := s.permissionService.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	ord, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := workflow.DeriveOrderStatus(toWorkflowOrder(ord))
	next := workflow.AllowedNextStatuses(actor, from)
	nextRaw := make([]string, len(next))
	for i, n := range next {
		nextRaw[i] = string(n)
	}
	return &dto.NextStatusesDTO{
		OrderID: orderID,
		From:    string(from),
		Next:    nextRaw,
	}, nil
}

func (s *OrderService) notificationLink(ord entities.Order, orderID uint64, itemName string, newStatus workflow.Status) string {
	link, err := s.notificationService.StatusChangeLink(ord.ContactPhone, ord.ContactName, orderID, itemName, newStatus)
	if err != nil {
		return ""
	}
	return link
}

func (s *OrderService) publishStatusChange(ctx context.Context, orderID uint64, itemID *uint64, oldStatus, newStatus string, ord entities.Order, link string, actorID uint64, txID uuid.UUID) {
	s.bus.Publish(ctx, events.OrderStatusChangedEvent{
		OrderID:          orderID,
		ItemID:           itemID,
		OldStatus:        oldStatus,
		NewStatus:        newStatus,
		ContactName:      ord.ContactName,
		ContactPhone:     ord.ContactPhone,
		NotificationLink: link,
		ActorID:          actorID,
		TxID:             txID,
	})
}

func (s *OrderService) statusChangeResult(ctx context.Context, orderID uint64, link string) (*dto.StatusChangeResultDTO, error) {
	refreshed, err := s.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &dto.StatusChangeResultDTO{Order: refreshed, NotificationLink: link}, nil
}
