package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"procurement-system/internal/repositories"
	"procurement-system/internal/workflow"
	"procurement-system/pkg/types"
)

type ReportServiceInterface interface {
	OrdersReport(ctx context.Context, filter types.Filter) (*bytes.Buffer, string, error)
}

type ReportService struct {
	orderRepo repositories.OrderRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(orderRepo repositories.OrderRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{orderRepo: orderRepo, logger: logger}
}

var reportHeaders = []string{
	"Order ID", "Contact", "Phone", "Creator", "Order Status",
	"Item", "Quantity", "Item Status", "Delivery Estimate", "Cancel Reason", "Created At",
}

// OrdersReport renders the filtered order list as an xlsx workbook, one
// row per line item. Pagination is disabled so the export covers the
// whole filtered set.
func (s *ReportService) OrdersReport(ctx context.Context, filter types.Filter) (*bytes.Buffer, string, error) {
	filter.WithPagination = false

	orders, _, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("could not close report workbook", zap.Error(err))
		}
	}()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, "", fmt.Errorf("could not create header style: %w", err)
	}

	for i, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	for i := range orders {
		ord := &orders[i]
		derived := string(workflow.DeriveOrderStatus(toWorkflowOrder(ord)))

		if len(ord.Items) == 0 {
			if err := s.writeRow(f, sheet, row, []interface{}{
				ord.ID, ord.ContactName, ord.ContactPhone, ord.CreatorFio, derived,
				"", "", "", "", "", ord.CreatedAt.Format("2006-01-02 15:04"),
			}); err != nil {
				return nil, "", err
			}
			row++
			continue
		}

		for _, item := range ord.Items {
			estimate := ""
			if item.DeliveryEstimate.Valid {
				estimate = item.DeliveryEstimate.Time.Format("2006-01-02")
			}
			if err := s.writeRow(f, sheet, row, []interface{}{
				ord.ID, ord.ContactName, ord.ContactPhone, ord.CreatorFio, derived,
				item.Name, item.Quantity, item.Status, estimate,
				item.CancelReason.String, ord.CreatedAt.Format("2006-01-02 15:04"),
			}); err != nil {
				return nil, "", err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("could not serialize report: %w", err)
	}

	fileName := fmt.Sprintf("orders_report_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, fileName, nil
}

func (s *ReportService) writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
