// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ordering/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler *handler.AuthHandler
	CartHandler *handler.CartHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler *handler.AuthHandler
	cartHandler *handler.CartHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler: params.AuthHandler,
		cartHandler: params.CartHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.GET("/state", r.authHandler.State)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/abandon", r.authHandler.Abandon)
		authGroup.PATCH("/profile", r.authHandler.UpdateProfile)
	}

	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.Get)
		cartGroup.DELETE("", r.cartHandler.Clear)
		cartGroup.GET("/summary", r.cartHandler.Summary)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.DELETE("/items", r.cartHandler.RemoveItem)
		cartGroup.POST("/items/increase", r.cartHandler.IncreaseQty)
		cartGroup.POST("/items/decrease", r.cartHandler.DecreaseQty)
	}
}
