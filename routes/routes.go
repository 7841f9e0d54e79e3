package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos-app/controllers"
)

// Handlers bundles everything the router serves.
type Handlers struct {
	Products     *controllers.ProductController
	Purchases    *controllers.PurchaseController
	Transactions *controllers.TransactionController
	DB           controllers.Pinger
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(h Handlers, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRoutes(router, h)
	return router
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/", controllers.Root)
	router.GET("/health", controllers.HealthCheck(h.DB))

	// Product routes
	router.GET("/products", h.Products.ListProducts)
	router.GET("/products/:code", h.Products.GetProductByCode)
	router.POST("/products", h.Products.CreateProduct)

	// Purchase routes
	router.POST("/purchase", h.Purchases.CreatePurchase)

	// Transaction routes
	router.GET("/transactions", h.Transactions.GetTransactionsByDate)
	router.GET("/transactions/:id", h.Transactions.GetTransactionByID)
}
