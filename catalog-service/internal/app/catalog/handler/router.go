package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sliceline/catalog-service/internal/app/catalog/entity"
	"sliceline/pkg/logger"
	"sliceline/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Catalog Service
// Чтение публичное (витрина), запись только для admin и manager
func SetupRoutes(categoryHandler *CategoryHandler, productHandler *ProductHandler, toppingHandler *ToppingHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	manageRoles := []string{entity.RoleAdmin, entity.RoleManager}

	categories := router.Group("/categories")
	{
		categories.GET("", categoryHandler.GetAllCategories)
		categories.GET("/:id", categoryHandler.GetCategory)

		categories.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole(manageRoles...), categoryHandler.CreateCategory)
	}

	products := router.Group("/products")
	{
		products.GET("", productHandler.GetAllProducts)
		products.GET("/:id", productHandler.GetProduct)

		products.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole(manageRoles...), productHandler.CreateProduct)
		products.PUT("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole(manageRoles...), productHandler.UpdateProduct)
	}

	toppings := router.Group("/toppings")
	{
		toppings.GET("", toppingHandler.GetAllToppings)
		toppings.GET("/:id", toppingHandler.GetTopping)

		toppings.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole(manageRoles...), toppingHandler.CreateTopping)
		toppings.PUT("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole(manageRoles...), toppingHandler.UpdateTopping)
	}

	return router
}
