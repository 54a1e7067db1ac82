// Package router wires handlers and middleware into the Gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "kakeibo/internal/docs" // Import swagger docs
	"kakeibo/internal/handlers"
	"kakeibo/internal/middleware"
	"kakeibo/internal/services"
)

// Options configures the engine.
type Options struct {
	AllowedOrigins []string
	Categories     []string
}

// New builds the API engine over db.
func New(db *gorm.DB, opts Options) *gin.Engine {
	purchaseService := services.NewPurchaseService(db)
	categoryService := services.NewCategoryService(opts.Categories)
	auditService := services.NewAuditService()

	return NewWithServices(purchaseService, categoryService, auditService, opts)
}

// NewWithServices builds the API engine over the given services.
func NewWithServices(
	purchaseService services.PurchaseServicer,
	categoryService services.CategoryServicer,
	auditService services.AuditServicer,
	opts Options,
) *gin.Engine {
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.AllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	purchases := v1.Group("/purchases")
	purchases.GET("", purchaseHandler.ListPurchases)
	purchases.POST("", purchaseHandler.CreatePurchase)
	purchases.GET("/:id", purchaseHandler.GetPurchase)
	purchases.PATCH("/:id", purchaseHandler.UpdatePurchase)
	purchases.PUT("/:id", purchaseHandler.UpdatePurchase)
	purchases.DELETE("/:id", purchaseHandler.DeletePurchase)

	v1.GET("/categories", categoryHandler.ListCategories)

	return router
}
