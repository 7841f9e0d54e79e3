package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos-app/repository"
)

type TransactionController struct {
	transactions repository.TransactionRepository
	logger       *zap.Logger
}

func NewTransactionController(transactions repository.TransactionRepository, logger *zap.Logger) *TransactionController {
	return &TransactionController{transactions: transactions, logger: logger}
}

// GetTransactionByID returns a recorded transaction with its lines.
func (tc *TransactionController) GetTransactionByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	trx, err := tc.transactions.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		tc.logger.Error("transaction lookup failed", zap.Int64("transaction_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transaction"})
		return
	}

	c.JSON(http.StatusOK, trx)
}

func (tc *TransactionController) GetTransactionsByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date parameter"})
		return
	}

	// Validate date format
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	transactions, err := tc.transactions.ListByDate(c.Request.Context(), day)
	if err != nil {
		tc.logger.Error("transaction listing failed", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}
