package routes

import "github.com/labstack/echo/v4"

func registerOrderRoutes(api *echo.Group, deps Dependencies) {
	api.GET("/statuses", deps.StatusController.ListStatuses, deps.AuthMiddleware.Auth)

	orders := api.Group("/orders", deps.AuthMiddleware.Auth)
	orders.POST("", deps.OrderController.CreateOrder)
	orders.GET("", deps.OrderController.GetOrders)
	orders.GET("/:id", deps.OrderController.FindOrder)
	orders.GET("/:id/next-statuses", deps.StatusController.NextStatuses)
	orders.PUT("/:id/items/:itemID/status", deps.OrderController.UpdateItemStatus)
	orders.PUT("/:id/status", deps.OrderController.UpdateOrderStatus)
	orders.POST("/:id/cancel", deps.OrderController.CancelOrder)
	orders.DELETE("/:id", deps.OrderController.DeleteOrder)
}
