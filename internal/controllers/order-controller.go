package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"procurement-system/internal/dto"
	"procurement-system/internal/services"
	apperrors "procurement-system/pkg/errors"
	"procurement-system/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

// CreateOrder accepts either a plain JSON body or a multipart form with
// a "payload" JSON part plus file parts named attachments[<itemIndex>].
func (c *OrderController) CreateOrder(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	var payload dto.CreateOrderDTO
	var uploads []dto.AttachmentUpload

	contentType := ctx.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		payload, uploads, err = c.bindMultipart(ctx)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		defer func() {
			for _, u := range uploads {
				if closer, ok := u.Content.(interface{ Close() error }); ok {
					closer.Close()
				}
			}
		}()
	} else if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.orderService.CreateOrder(ctx.Request().Context(), userID, payload, uploads)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, order, "Order created", http.StatusCreated)
}

func (c *OrderController) bindMultipart(ctx echo.Context) (dto.CreateOrderDTO, []dto.AttachmentUpload, error) {
	var payload dto.CreateOrderDTO

	raw := ctx.FormValue("payload")
	if raw == "" {
		return payload, nil, apperrors.NewInvalidInputError("multipart request is missing the payload part")
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, nil, apperrors.NewInvalidInputError("payload part is not valid JSON")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return payload, nil, apperrors.ErrBadRequest
	}

	var uploads []dto.AttachmentUpload
	for field, files := range form.File {
		var itemIndex int
		if _, err := fmt.Sscanf(field, "attachments[%d]", &itemIndex); err != nil {
			continue
		}
		for _, fileHeader := range files {
			src, err := fileHeader.Open()
			if err != nil {
				return payload, nil, err
			}
			uploads = append(uploads, dto.AttachmentUpload{
				ItemIndex: itemIndex,
				FileName:  fileHeader.Filename,
				FileType:  fileHeader.Header.Get("Content-Type"),
				FileSize:  fileHeader.Size,
				Content:   src,
			})
		}
	}
	return payload, uploads, nil
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())
	orders, total, err := c.orderService.GetOrders(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, orders, "Orders", http.StatusOK, total)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	order, err := c.orderService.FindOrder(ctx.Request().Context(), orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, order, "Order", http.StatusOK)
}

func (c *OrderController) UpdateItemStatus(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	itemID, err := parseIDParam(ctx, "itemID")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateItemStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.orderService.UpdateItemStatus(ctx.Request().Context(), userID, orderID, itemID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Item status updated", http.StatusOK)
}

func (c *OrderController) UpdateOrderStatus(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateOrderStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.orderService.UpdateOrderStatus(ctx.Request().Context(), userID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Order status updated", http.StatusOK)
}

func (c *OrderController) CancelOrder(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CancelOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.orderService.CancelOrder(ctx.Request().Context(), userID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Order canceled", http.StatusOK)
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.orderService.DeleteOrder(ctx.Request().Context(), userID, orderID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Order deleted", http.StatusOK)
}

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewInvalidInputError("invalid %s parameter", name)
	}
	return id, nil
}
