package routes

import "github.com/labstack/echo/v4"

func registerReportRoutes(api *echo.Group, deps Dependencies) {
	reports := api.Group("/reports", deps.AuthMiddleware.Auth)
	reports.GET("/orders", deps.ReportController.OrdersReport)
}
