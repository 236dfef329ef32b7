package routes

import "github.com/labstack/echo/v4"

func registerAuthRoutes(api *echo.Group, deps Dependencies) {
	auth := api.Group("/auth")
	auth.POST("/login", deps.AuthController.Login)
	auth.POST("/refresh", deps.AuthController.Refresh)
	auth.GET("/me", deps.AuthController.Me, deps.AuthMiddleware.Auth)
}
