// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"francheasy/internal/delivery/http/middleware"
	"francheasy/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler            *handler.AuthHandler
	FrancheasyHandler      *handler.FrancheasyHandler
	StoreHandler           *handler.StoreHandler
	PovilionHandler        *handler.PovilionHandler
	BusinessHandler        *handler.BusinessHandler
	BusinessRequestHandler *handler.BusinessRequestHandler
	DocsHandler            *handler.DocsHandler
	AuthMiddleware         *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Sign-in flow and session lifecycle
	authGroup := e.Group("/auth")
	{
		authGroup.GET("/vk/login", r.params.AuthHandler.VKLogin)
		authGroup.GET("/vk/login/qr", r.params.AuthHandler.VKLoginQR)
		authGroup.GET("/vk/callback", r.params.AuthHandler.VKCallback)
		authGroup.POST("/refresh", r.params.AuthHandler.Refresh)
	}

	authenticate := r.params.AuthMiddleware.Authenticate

	userGroup := e.Group("/users", authenticate)
	{
		userGroup.GET("/profile", r.params.AuthHandler.GetProfile)
	}

	francheasyGroup := e.Group("/francheasy", authenticate)
	{
		francheasyGroup.POST("", r.params.FrancheasyHandler.Create)
		francheasyGroup.GET("/list", r.params.FrancheasyHandler.List)
		francheasyGroup.GET("/user", r.params.FrancheasyHandler.ListMine)
		francheasyGroup.GET("/:id", r.params.FrancheasyHandler.Get)
		francheasyGroup.PUT("/:id", r.params.FrancheasyHandler.Update)
		francheasyGroup.DELETE("/:id", r.params.FrancheasyHandler.Delete)
		francheasyGroup.POST("/:id/photos", r.params.FrancheasyHandler.AddPhotos)
	}

	storeGroup := e.Group("/stores", authenticate)
	{
		storeGroup.POST("", r.params.StoreHandler.Create)
		storeGroup.GET("/list", r.params.StoreHandler.List)
		storeGroup.GET("/nearby", r.params.StoreHandler.Nearby)
		storeGroup.GET("/:id", r.params.StoreHandler.Get)
		storeGroup.PUT("/:id", r.params.StoreHandler.Update)
		storeGroup.DELETE("/:id", r.params.StoreHandler.Delete)
	}

	povilionGroup := e.Group("/povilions", authenticate)
	{
		povilionGroup.POST("", r.params.PovilionHandler.Create)
		povilionGroup.GET("/store/:store_id", r.params.PovilionHandler.ListByStore)
		povilionGroup.PUT("/:id", r.params.PovilionHandler.Update)
		povilionGroup.DELETE("/:id", r.params.PovilionHandler.Delete)
	}

	businessGroup := e.Group("/businesses", authenticate)
	{
		businessGroup.GET("/my", r.params.BusinessHandler.ListMine)
		businessGroup.GET("/francheasy/:francheasy_id", r.params.BusinessHandler.ListByFrancheasy)
		businessGroup.GET("/:id", r.params.BusinessHandler.Get)
		businessGroup.POST("/:id/transaction", r.params.BusinessHandler.AddTransaction)
		businessGroup.DELETE("/:id", r.params.BusinessHandler.Delete)
	}

	requestGroup := e.Group("/business-requests", authenticate)
	{
		requestGroup.POST("", r.params.BusinessRequestHandler.Submit)
		requestGroup.GET("/my", r.params.BusinessRequestHandler.ListMine)
		requestGroup.GET("/francheasy", r.params.BusinessRequestHandler.ListIncoming)
		requestGroup.GET("/:id", r.params.BusinessRequestHandler.Get)
		requestGroup.PUT("/:id/status", r.params.BusinessRequestHandler.Resolve)
		requestGroup.DELETE("/:id", r.params.BusinessRequestHandler.Delete)
	}

	// API docs behind the shared key
	e.GET("/docs", r.params.DocsHandler.Page)
	e.POST("/docs/auth", r.params.DocsHandler.Login)
	e.POST("/docs/logout", r.params.DocsHandler.Logout)
	e.GET("/openapi.json", r.params.DocsHandler.OpenAPI)
}
