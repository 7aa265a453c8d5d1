package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	appidentity "github.com/stocker/backend/internal/application/identity"
	"github.com/stocker/backend/internal/infrastructure/config"
	"github.com/stocker/backend/internal/infrastructure/telemetry"
	"github.com/stocker/backend/internal/interfaces/http/handler"
	"github.com/stocker/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth           *handler.AuthHandler
	Items          *handler.ItemHandler
	Suppliers      *handler.SupplierHandler
	Clients        *handler.ClientHandler
	SupplierOrders *handler.SupplierOrderHandler
	ClientOrders   *handler.ClientOrderHandler
	Sales          *handler.SaleHandler
	Activities     *handler.ActivityHandler
	References     *handler.ReferenceHandler
	System         *handler.SystemHandler
}

// Dependencies carries the cross-cutting collaborators for middleware
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *telemetry.Metrics
	Registry  *prometheus.Registry
	Tokens    appidentity.TokenService
	Blacklist appidentity.TokenBlacklist
}

// New builds the gin engine with middleware and all routes mounted
func New(deps Dependencies, handlers Handlers) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.Metrics(deps.Metrics),
		middleware.BodyLimit(deps.Config.HTTP.MaxBodySize),
	)

	cors := middleware.DefaultCORSConfig()
	if len(deps.Config.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = deps.Config.HTTP.CORSAllowOrigins
	}
	if len(deps.Config.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = deps.Config.HTTP.CORSAllowMethods
	}
	if len(deps.Config.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = deps.Config.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(cors))

	engine.GET("/health", handlers.System.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	api := engine.Group("/api/v1")
	api.GET("/health", handlers.System.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", handlers.Auth.Signup)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.Refresh)
		auth.POST("/logout", handlers.Auth.Logout)
		auth.POST("/password-reset/request", handlers.Auth.RequestPasswordReset)
		auth.POST("/password-reset/confirm/:uid/:token", handlers.Auth.ConfirmPasswordReset)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Tokens, deps.Blacklist, deps.Logger))
	{
		authed.GET("/auth/me", handlers.Auth.Me)
		authed.POST("/auth/change-password", handlers.Auth.ChangePassword)

		items := authed.Group("/inventory/items")
		{
			items.GET("", handlers.Items.List)
			items.POST("", handlers.Items.Create)
			items.POST("/bulk-delete", handlers.Items.BulkDelete)
			items.GET("/:id", handlers.Items.Get)
			items.PUT("/:id", handlers.Items.Update)
			items.PATCH("/:id", handlers.Items.Update)
			items.DELETE("/:id", handlers.Items.Delete)
		}

		suppliers := authed.Group("/suppliers")
		{
			suppliers.GET("", handlers.Suppliers.List)
			suppliers.POST("", handlers.Suppliers.Create)
			suppliers.POST("/bulk-delete", handlers.Suppliers.BulkDelete)
			suppliers.GET("/:id", handlers.Suppliers.Get)
			suppliers.PUT("/:id", handlers.Suppliers.Update)
			suppliers.DELETE("/:id", handlers.Suppliers.Delete)
		}

		clients := authed.Group("/clients")
		{
			clients.GET("", handlers.Clients.List)
			clients.POST("", handlers.Clients.Create)
			clients.POST("/bulk-delete", handlers.Clients.BulkDelete)
			clients.GET("/:id", handlers.Clients.Get)
			clients.PUT("/:id", handlers.Clients.Update)
			clients.DELETE("/:id", handlers.Clients.Delete)
		}

		supplierOrders := authed.Group("/supplier-orders")
		{
			supplierOrders.GET("", handlers.SupplierOrders.List)
			supplierOrders.POST("", handlers.SupplierOrders.Create)
			supplierOrders.POST("/bulk-delete", handlers.SupplierOrders.BulkDelete)
			supplierOrders.POST("/ordered-items/bulk-delete", handlers.SupplierOrders.BulkDeleteLines)
			supplierOrders.GET("/:id", handlers.SupplierOrders.Get)
			supplierOrders.PUT("/:id", handlers.SupplierOrders.Update)
			supplierOrders.PATCH("/:id", handlers.SupplierOrders.Update)
			supplierOrders.DELETE("/:id", handlers.SupplierOrders.Delete)
			supplierOrders.GET("/:id/ordered-items", handlers.SupplierOrders.ListLines)
			supplierOrders.PUT("/:id/ordered-items/:item_id", handlers.SupplierOrders.UpdateLine)
			supplierOrders.DELETE("/:id/ordered-items/:item_id", handlers.SupplierOrders.DeleteLine)
		}

		clientOrders := authed.Group("/client-orders")
		{
			clientOrders.GET("", handlers.ClientOrders.List)
			clientOrders.POST("", handlers.ClientOrders.Create)
			clientOrders.POST("/bulk-delete", handlers.ClientOrders.BulkDelete)
			clientOrders.POST("/ordered-items/bulk-delete", handlers.ClientOrders.BulkDeleteLines)
			clientOrders.GET("/:id", handlers.ClientOrders.Get)
			clientOrders.PUT("/:id", handlers.ClientOrders.Update)
			clientOrders.PATCH("/:id", handlers.ClientOrders.Update)
			clientOrders.DELETE("/:id", handlers.ClientOrders.Delete)
			clientOrders.GET("/:id/ordered-items", handlers.ClientOrders.ListLines)
			clientOrders.PUT("/:id/ordered-items/:item_id", handlers.ClientOrders.UpdateLine)
			clientOrders.DELETE("/:id/ordered-items/:item_id", handlers.ClientOrders.DeleteLine)
		}

		sales := authed.Group("/sales")
		{
			sales.GET("", handlers.Sales.List)
			sales.POST("/sold-items/bulk-delete", handlers.Sales.BulkDeleteSoldItems)
			sales.GET("/:id", handlers.Sales.Get)
			sales.DELETE("/:id", handlers.Sales.Delete)
		}

		authed.GET("/activities", handlers.Activities.List)

		reference := authed.Group("/reference")
		{
			reference.GET("/countries", handlers.References.ListCountries)
			reference.GET("/countries/:id/cities", handlers.References.ListCities)
			reference.GET("/statuses", handlers.References.ListStatuses)
			reference.POST("/statuses/refresh", handlers.References.RefreshStatuses)
		}
	}

	return engine
}
