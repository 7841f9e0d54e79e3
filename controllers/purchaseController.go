package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos-app/models"
	"pos-app/services"
)

// PurchaseRecorder records a purchase atomically.
type PurchaseRecorder interface {
	RecordPurchase(ctx context.Context, pc services.PurchaseContext, items []models.PurchaseItem) (services.Receipt, error)
}

type PurchaseController struct {
	recorder PurchaseRecorder
	logger   *zap.Logger
}

func NewPurchaseController(recorder PurchaseRecorder, logger *zap.Logger) *PurchaseController {
	return &PurchaseController{recorder: recorder, logger: logger}
}

// CreatePurchase records the scanned items as one transaction.
func (pc *PurchaseController) CreatePurchase(c *gin.Context) {
	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase request"})
		return
	}

	items := make([]models.PurchaseItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, item.ToItem())
	}

	receipt, err := pc.recorder.RecordPurchase(c.Request.Context(), services.PurchaseContext{
		StaffCode: req.StaffCode,
		StoreCode: req.StoreCode,
		PosID:     req.PosID,
	}, items)
	switch {
	case errors.Is(err, services.ErrEmptyPurchase):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No items specified for purchase"})
		return
	case errors.Is(err, services.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		// Cause is already logged by the recorder; keep it out of the response.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process purchase"})
		return
	}

	c.JSON(http.StatusOK, models.PurchaseResponse{
		Success:          true,
		TotalAmount:      receipt.TotalAmount,
		TotalAmountExTax: receipt.TotalAmountExTax,
		TaxAmount:        receipt.TaxAmount,
		TransactionID:    receipt.TransactionID,
		Message:          "Purchase completed successfully",
	})
}
