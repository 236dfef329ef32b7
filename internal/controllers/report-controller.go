package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"procurement-system/internal/services"
	apperrors "procurement-system/pkg/errors"
	"procurement-system/pkg/utils"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) OrdersReport(ctx echo.Context) error {
	if format := ctx.QueryParam("format"); format != "" && format != "xlsx" {
		return utils.ErrorResponse(ctx,
			apperrors.NewInvalidInputError("unsupported report format %q", format), c.logger)
	}

	filter := utils.ParseFilterFromQuery(ctx.QueryParams())
	buf, fileName, err := c.reportService.OrdersReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
