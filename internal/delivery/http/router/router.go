// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	SessionHandler  *handler.SessionHandler
	ShopHandler     *handler.ShopHandler
	ProductHandler  *handler.ProductHandler
	PurchaseHandler *handler.PurchaseHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	sessionHandler  *handler.SessionHandler
	shopHandler     *handler.ShopHandler
	productHandler  *handler.ProductHandler
	purchaseHandler *handler.PurchaseHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		sessionHandler:  params.SessionHandler,
		shopHandler:     params.ShopHandler,
		productHandler:  params.ProductHandler,
		purchaseHandler: params.PurchaseHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Browsing shops and products is public; everything that acts on behalf of an
// account goes through the session token middleware.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public storefront: anyone can browse and register
	e.POST("/users", r.userHandler.Register)
	e.POST("/session", r.sessionHandler.Login)
	e.GET("/shops", r.shopHandler.ListShops)
	e.GET("/shops/:slug", r.shopHandler.GetShop)
	e.GET("/shops/:slug/qrcode", r.shopHandler.ShopQR)
	e.GET("/shops/:slug/products", r.productHandler.ListShopProducts)
	e.GET("/products", r.productHandler.ListProducts)
	e.GET("/products/:slug", r.productHandler.GetProduct)

	// Account routes
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("", r.userHandler.ListUsers)
		userGroup.GET("/:email", r.userHandler.GetUser)
		userGroup.PUT("/:email", r.userHandler.UpdateUser)
		userGroup.DELETE("/:email", r.userHandler.DeleteUser)
	}

	me := e.Group("/me")
	me.Use(r.authMiddleware.Authenticate)
	{
		me.GET("", r.userHandler.Me)
		me.GET("/shops", r.shopHandler.ListMyShops)
		me.GET("/purchases", r.purchaseHandler.ListMyPurchases)
	}

	// Session management
	sessionGroup := e.Group("/sessions")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.GET("", r.sessionHandler.ListSessions)
		sessionGroup.DELETE("", r.sessionHandler.RevokeAllSessions)
		sessionGroup.DELETE("/:id", r.sessionHandler.RevokeSession)
	}

	// Shop and product management
	shopGroup := e.Group("/shops")
	shopGroup.Use(r.authMiddleware.Authenticate)
	{
		shopGroup.POST("", r.shopHandler.CreateShop)
		shopGroup.PATCH("/:slug", r.shopHandler.UpdateShop)
		shopGroup.DELETE("/:slug", r.shopHandler.DeleteShop)
		shopGroup.GET("/:slug/purchases", r.purchaseHandler.ListShopPurchases)
	}

	productGroup := e.Group("/products")
	productGroup.Use(r.authMiddleware.Authenticate)
	{
		productGroup.POST("", r.productHandler.CreateProduct)
		productGroup.PATCH("/:slug", r.productHandler.UpdateProduct)
		productGroup.DELETE("/:slug", r.productHandler.DeleteProduct)
		productGroup.GET("/:slug/purchases", r.purchaseHandler.ListProductPurchases)
	}

	// Purchases
	purchaseGroup := e.Group("/purchases")
	purchaseGroup.Use(r.authMiddleware.Authenticate)
	{
		purchaseGroup.POST("", r.purchaseHandler.CreatePurchase)
		purchaseGroup.GET("", r.purchaseHandler.ListPurchases)
	}
}
