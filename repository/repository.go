// Package repository stores the product catalog and purchase transactions
// in SQLite.
package repository

import (
	"context"
	"errors"
	"time"

	"pos-app/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateCode = errors.New("product code already exists")
)

// ProductRepository reads and registers catalog entries.
type ProductRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

// TransactionRepository opens units of work for new purchases and reads
// recorded ones back. Recorded transactions are never updated or deleted.
type TransactionRepository interface {
	Begin(ctx context.Context) (TransactionWriter, error)
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	ListByDate(ctx context.Context, day time.Time) ([]models.Transaction, error)
}

// TransactionWriter is a single open unit of work. Nothing written through
// it is visible to other sessions until Commit; Rollback after Commit is a
// no-op.
type TransactionWriter interface {
	CreateHeader(ctx context.Context, trx *models.Transaction) (int64, error)
	CreateLine(ctx context.Context, line *models.TransactionLine) error
	UpdateTotals(ctx context.Context, id, totalAmount, totalAmountExTax int64) error
	Commit() error
	Rollback() error
}
