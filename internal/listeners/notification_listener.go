package listeners

import (
	"context"

	"go.uber.org/zap"

	"procurement-system/internal/events"
	"procurement-system/pkg/eventbus"
)

// NotificationListener records the click-to-chat link for every status
// change so operators can pick notifications up from the log even when
// the API response was discarded.
type NotificationListener struct {
	logger *zap.Logger
}

func NewNotificationListener(logger *zap.Logger) *NotificationListener {
	return &NotificationListener{logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderStatusChangedEvent{}.Name(), l.handleStatusChanged)
}

func (l *NotificationListener) handleStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderStatusChangedEvent)
	if !ok {
		l.logger.Warn("unexpected event payload", zap.String("event", event.Name()))
		return nil
	}

	fields := []zap.Field{
		zap.Uint64("orderID", e.OrderID),
		zap.String("oldStatus", e.OldStatus),
		zap.String("newStatus", e.NewStatus),
		zap.String("contact", e.ContactName),
		zap.Uint64("actorID", e.ActorID),
		zap.String("txID", e.TxID.String()),
	}
	if e.ItemID != nil {
		fields = append(fields, zap.Uint64("itemID", *e.ItemID))
	}
	if e.NotificationLink != "" {
		fields = append(fields, zap.String("notificationLink", e.NotificationLink))
	}

	l.logger.Info("order status changed", fields...)
	return nil
}
