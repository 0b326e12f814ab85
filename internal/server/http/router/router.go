package router

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/server/http/handlers"
	"storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(corsMiddleware(cfg.AllowedOrigins))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))

	authorized.POST("/products", productHandler.Create)
	authorized.PUT("/products/:id", productHandler.Update)
	authorized.DELETE("/products/:id", productHandler.Deactivate)

	authorized.GET("/cart", cartHandler.Get)
	authorized.POST("/cart/items", cartHandler.AddItem)
	authorized.PUT("/cart/items/:productID", cartHandler.UpdateItem)
	authorized.DELETE("/cart/items/:productID", cartHandler.RemoveItem)
	authorized.DELETE("/cart", cartHandler.Abandon)

	authorized.POST("/orders", orderHandler.Checkout)
	authorized.GET("/orders", orderHandler.List)
	authorized.GET("/orders/stats", orderHandler.Stats)
	authorized.GET("/orders/:id", orderHandler.Get)
	authorized.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	authorized.POST("/orders/:id/cancel", orderHandler.Cancel)
	authorized.PATCH("/orders/:id/payment-status", orderHandler.UpdatePaymentStatus)

	return engine
}

func corsMiddleware(origins string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if origins == "" || origins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(origins, ",")
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return cors.New(corsCfg)
}
