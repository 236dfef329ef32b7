package routes

import (
	"github.com/labstack/echo/v4"

	"procurement-system/internal/controllers"
	"procurement-system/pkg/middleware"
)

// Dependencies collects everything the HTTP surface needs. Wiring stays
// in app/main.go; this package only binds paths to handlers.
type Dependencies struct {
	AuthController   *controllers.AuthController
	OrderController  *controllers.OrderController
	StatusController *controllers.StatusController
	ReportController *controllers.ReportController
	AuthMiddleware   *middleware.AuthMiddleware
}

func InitRouter(e *echo.Echo, deps Dependencies) {
	api := e.Group("/api")

	registerAuthRoutes(api, deps)
	registerOrderRoutes(api, deps)
	registerReportRoutes(api, deps)
}
