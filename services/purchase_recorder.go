// Package services holds the purchase workflow that sits between the HTTP
// handlers and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"pos-app/models"
	"pos-app/repository"
	"pos-app/tax"
)

// Register defaults used when the request leaves a field blank.
const (
	DefaultStaffCode = "9999999999"
	DefaultStoreCode = "30"
	DefaultPosID     = "90"
)

var (
	ErrEmptyPurchase = errors.New("no items in purchase")
	ErrInvalidItem   = errors.New("invalid purchase item")
	ErrPersistence   = errors.New("purchase could not be recorded")
)

// PurchaseContext identifies who rang up the purchase and where.
type PurchaseContext struct {
	StaffCode string
	StoreCode string
	PosID     string
}

// Receipt is what a recorded purchase reports back to the register.
type Receipt struct {
	TransactionID    int64
	TotalAmount      int64
	TotalAmountExTax int64
	TaxAmount        int64
}

type Recorder struct {
	transactions repository.TransactionRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewRecorder(transactions repository.TransactionRepository, logger *zap.Logger) *Recorder {
	return &Recorder{
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

// RecordPurchase writes one TRD header and one TRD_DTL line per item in a
// single unit of work. Either everything is committed or nothing is.
func (r *Recorder) RecordPurchase(ctx context.Context, pc PurchaseContext, items []models.PurchaseItem) (Receipt, error) {
	if len(items) == 0 {
		return Receipt{}, ErrEmptyPurchase
	}
	var total int64
	for i, item := range items {
		if item.ProductPrice < 0 {
			return Receipt{}, fmt.Errorf("%w: item %d has negative price %d", ErrInvalidItem, i+1, item.ProductPrice)
		}
		if total > math.MaxInt64-item.ProductPrice {
			return Receipt{}, fmt.Errorf("%w: total overflows at item %d", ErrInvalidItem, i+1)
		}
		total += item.ProductPrice
	}

	receipt, err := r.record(ctx, withDefaults(pc), items)
	if err != nil {
		r.logger.Error("purchase rolled back", zap.Int("items", len(items)), zap.Error(err))
		return Receipt{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	r.logger.Info("purchase recorded",
		zap.Int64("transaction_id", receipt.TransactionID),
		zap.Int("items", len(items)),
		zap.Int64("total_amount", receipt.TotalAmount),
		zap.Int64("total_amount_ex_tax", receipt.TotalAmountExTax),
		zap.Int64("tax_amount", receipt.TaxAmount),
	)
	return receipt, nil
}

func (r *Recorder) record(ctx context.Context, pc PurchaseContext, items []models.PurchaseItem) (receipt Receipt, err error) {
	w, err := r.transactions.Begin(ctx)
	if err != nil {
		return Receipt{}, err
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := w.Rollback(); rbErr != nil {
			r.logger.Error("rollback failed", zap.Error(rbErr))
		}
	}()

	header := &models.Transaction{
		CreatedAt: r.now(),
		StaffCode: pc.StaffCode,
		StoreCode: pc.StoreCode,
		PosID:     pc.PosID,
	}
	id, err := w.CreateHeader(ctx, header)
	if err != nil {
		return Receipt{}, err
	}
	r.logger.Debug("transaction header created", zap.Int64("transaction_id", id))

	var total int64
	for i, item := range items {
		line := &models.TransactionLine{
			TransactionID: id,
			LineNo:        i + 1,
			ProductID:     item.ProductID,
			ProductCode:   item.ProductCode,
			ProductName:   item.ProductName,
			ProductPrice:  item.ProductPrice,
			TaxCode:       tax.Standard,
		}
		if err = w.CreateLine(ctx, line); err != nil {
			return Receipt{}, err
		}
		total += item.ProductPrice
	}

	breakdown, err := tax.Decompose(total, tax.Standard)
	if err != nil {
		return Receipt{}, err
	}

	if err = w.UpdateTotals(ctx, id, breakdown.InclusiveAmount, breakdown.ExclusiveAmount); err != nil {
		return Receipt{}, err
	}
	if err = w.Commit(); err != nil {
		return Receipt{}, err
	}

	return Receipt{
		TransactionID:    id,
		TotalAmount:      breakdown.InclusiveAmount,
		TotalAmountExTax: breakdown.ExclusiveAmount,
		TaxAmount:        breakdown.TaxAmount,
	}, nil
}

func withDefaults(pc PurchaseContext) PurchaseContext {
	if pc.StaffCode == "" {
		pc.StaffCode = DefaultStaffCode
	}
	if pc.StoreCode == "" {
		pc.StoreCode = DefaultStoreCode
	}
	if pc.PosID == "" {
		pc.PosID = DefaultPosID
	}
	return pc
}
