// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/merchio-backend/internal/config"
	"github.com/javajoker/merchio-backend/internal/handlers"
	"github.com/javajoker/merchio-backend/internal/metrics"
	"github.com/javajoker/merchio-backend/internal/middleware"
	"github.com/javajoker/merchio-backend/internal/services"
	"github.com/javajoker/merchio-backend/internal/utils"
)

const Version = "1.0.0"

// Initialize builds the HTTP engine. Background work started here stops when
// ctx is cancelled.
func Initialize(ctx context.Context, cfg *config.Config, catalog *services.CatalogService, favorites *services.FavoriteService) *gin.Engine {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalog, favorites)
	reviewHandler := handlers.NewReviewHandler(catalog)
	favoriteHandler := handlers.NewFavoriteHandler(favorites)
	statsHandler := handlers.NewStatsHandler(catalog)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		go limiter.Run(ctx.Done(), time.Minute)
		r.Use(limiter.Middleware())
	}
	r.Use(middleware.Identity(cfg.Catalog.DefaultUserID))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/compare", productHandler.CompareProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.GET("/:id/related", productHandler.GetRelatedProducts)
			products.GET("/:id/reviews", reviewHandler.GetReviews)
			products.POST("/:id/reviews", reviewHandler.CreateReview)
		}

		v1.GET("/categories", productHandler.GetCategories)
		v1.POST("/reviews/:id/helpful", reviewHandler.VoteHelpful)

		// Favorite routes
		favoritesGroup := v1.Group("/favorites")
		{
			favoritesGroup.GET("", favoriteHandler.GetFavorites)
			favoritesGroup.POST("/:productId", favoriteHandler.AddFavorite)
			favoritesGroup.DELETE("/:productId", favoriteHandler.RemoveFavorite)
			favoritesGroup.POST("/:productId/toggle", favoriteHandler.ToggleFavorite)
		}

		// Analytics routes
		v1.GET("/stats", statsHandler.GetStats)
		v1.GET("/dashboard", statsHandler.GetDashboard)
	}

	return r
}
