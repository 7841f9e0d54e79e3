package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos-app/models"
	"pos-app/repository"
)

type ProductController struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewProductController(products repository.ProductRepository, logger *zap.Logger) *ProductController {
	return &ProductController{products: products, logger: logger}
}

// GetProductByCode looks up a product by its barcode. An unknown code is not
// an error: the register gets a JSON null and shows "not found" itself.
func (pc *ProductController) GetProductByCode(c *gin.Context) {
	code := c.Param("code")

	product, err := pc.products.FindByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			pc.logger.Info("product not found", zap.String("code", code))
			c.JSON(http.StatusOK, nil)
			return
		}
		pc.logger.Error("product lookup failed", zap.String("code", code), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts retrieves the whole catalog
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.products.List(c.Request.Context())
	if err != nil {
		pc.logger.Error("product listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct registers a new catalog entry
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pc.products.Create(c.Request.Context(), &product); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			c.JSON(http.StatusConflict, gin.H{"error": "Product code already exists"})
			return
		}
		pc.logger.Error("product create failed", zap.String("code", product.Code), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}
