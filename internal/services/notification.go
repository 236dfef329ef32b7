package services

import (
	"fmt"

	"procurement-system/internal/workflow"
	"procurement-system/pkg/whatsapp"

	"go.uber.org/zap"
)

var statusLabels = map[workflow.Status]string{
	workflow.StatusPending:    "pending",
	workflow.StatusInReview:   "in review",
	workflow.StatusInProgress: "in progress",
	workflow.StatusCanceled:   "canceled",
	workflow.StatusDelivered:  "delivered",
}

// NotificationServiceInterface builds contact-facing notification links.
// Delivery itself is manual: the operator opens the link and sends the
// prefilled message from their own WhatsApp account.
type NotificationServiceInterface interface {
	StatusChangeLink(phone, contactName string, orderID uint64, itemName string, newStatus workflow.Status) (string, error)
	CancellationLink(phone, contactName string, orderID uint64, reason string) (string, error)
}

type NotificationService struct {
	logger *zap.Logger
}

func NewNotificationService(logger *zap.Logger) NotificationServiceInterface {
	return &NotificationService{logger: logger}
}

func statusLabel(status workflow.Status) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

func (s *NotificationService) StatusChangeLink(phone, contactName string, orderID uint64, itemName string, newStatus workflow.Status) (string, error) {
	var text string
	if itemName != "" {
		text = fmt.Sprintf("Hello %s! The item %q in your purchase order #%d is now %s.",
			contactName, itemName, orderID, statusLabel(newStatus))
	} else {
		text = fmt.Sprintf("Hello %s! Your purchase order #%d is now %s.",
			contactName, orderID, statusLabel(newStatus))
	}
	link, err := whatsapp.DeepLink(phone, text)
	if err != nil {
		s.logger.Warn("could not build notification link",
			zap.Uint64("orderID", orderID), zap.Error(err))
		return "", err
	}
	return link, nil
}

func (s *NotificationService) CancellationLink(phone, contactName string, orderID uint64, reason string) (string, error) {
	text := fmt.Sprintf("Hello %s! Your purchase order #%d has been canceled. Reason: %s",
		contactName, orderID, reason)
	link, err := whatsapp.DeepLink(phone, text)
	if err != nil {
		s.logger.Warn("could not build cancellation link",
			zap.Uint64("orderID", orderID), zap.Error(err))
		return "", err
	}
	return link, nil
}
