package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"procurement-system/internal/entities"
	"procurement-system/internal/services"
	"procurement-system/pkg/types"
)

func TestReportService_OrdersReport(t *testing.T) {
	repo := &fakeOrderRepo{
		order: &entities.Order{
			ID: 10, ContactName: "Dilshod", ContactPhone: "+992901234567",
			CreatorID: 1, CreatorFio: "Primary Administrator", Status: "pending",
			Items: []entities.OrderItem{
				{ID: 1, OrderID: 10, Name: "Office chairs", Quantity: 4, Status: "in_progress"},
				{ID: 2, OrderID: 10, Name: "Desk lamps", Quantity: 2, Status: "pending"},
			},
		},
	}
	svc := services.NewReportService(repo, zap.NewNop())

	buf, fileName, err := svc.OrdersReport(context.Background(), types.DefaultFilter())
	require.NoError(t, err)
	assert.Contains(t, fileName, ".xlsx")

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	// header plus one row per line item
	require.Len(t, rows, 3)
	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "Office chairs", rows[1][5])
	// derived order status, not the stale stored column
	assert.Equal(t, "in_progress", rows[1][4])
	assert.Equal(t, "pending", rows[2][7])
}
