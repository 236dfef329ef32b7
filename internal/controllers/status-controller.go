package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"procurement-system/internal/services"
	apperrors "procurement-system/pkg/errors"
	"procurement-system/pkg/utils"
)

type StatusController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewStatusController(orderService services.OrderServiceInterface, logger *zap.Logger) *StatusController {
	return &StatusController{orderService: orderService, logger: logger}
}

func (c *StatusController) ListStatuses(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	statuses, err := c.orderService.ListStatuses(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, statuses, "Statuses", http.StatusOK)
}

func (c *StatusController) NextStatuses(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	next, err := c.orderService.AllowedNextStatuses(ctx.Request().Context(), userID, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, next, "Next statuses", http.StatusOK)
}
