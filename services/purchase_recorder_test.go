package services

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pos-app/config"
	"pos-app/models"
	"pos-app/repository"
)

var errDiskFull = errors.New("disk full")

// faultyRepository hands out writers that fail at a chosen step.
type faultyRepository struct {
	repository.TransactionRepository
	beginErr  error
	failLine  int
	failTotal bool
}

func (f *faultyRepository) Begin(ctx context.Context) (repository.TransactionWriter, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	w, err := f.TransactionRepository.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &faultyWriter{TransactionWriter: w, failLine: f.failLine, failTotal: f.failTotal}, nil
}

type faultyWriter struct {
	repository.TransactionWriter
	failLine  int
	failTotal bool
}

func (f *faultyWriter) CreateLine(ctx context.Context, line *models.TransactionLine) error {
	if line.LineNo == f.failLine {
		return errDiskFull
	}
	return f.TransactionWriter.CreateLine(ctx, line)
}

func (f *faultyWriter) UpdateTotals(ctx context.Context, id, total, exTax int64) error {
	if f.failTotal {
		return errDiskFull
	}
	return f.TransactionWriter.UpdateTotals(ctx, id, total, exTax)
}

func setup(t *testing.T) (*sql.DB, *repository.SQLTransactionRepository) {
	t.Helper()
	db, err := config.OpenDB(context.Background(), filepath.Join(t.TempDir(), "pos.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, repository.NewTransactionRepository(db)
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func basket() []models.PurchaseItem {
	return []models.PurchaseItem{
		{ProductID: 1, ProductCode: "4900000000001", ProductName: "Pen", ProductPrice: 100},
		{ProductID: 2, ProductCode: "4900000000002", ProductName: "Notebook", ProductPrice: 200},
		{ProductID: 3, ProductCode: "4900000000003", ProductName: "Eraser", ProductPrice: 50},
	}
}

func TestRecordPurchase(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	recorder := NewRecorder(repo, zap.NewNop())
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	recorder.now = func() time.Time { return fixed }

	receipt, err := recorder.RecordPurchase(ctx, PurchaseContext{StaffCode: "0000000042", StoreCode: "31", PosID: "01"}, basket())
	require.NoError(t, err)
	assert.Equal(t, int64(350), receipt.TotalAmount)
	assert.Equal(t, int64(318), receipt.TotalAmountExTax)
	assert.Equal(t, int64(32), receipt.TaxAmount)
	assert.NotZero(t, receipt.TransactionID)

	trx, err := repo.FindByID(ctx, receipt.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, "0000000042", trx.StaffCode)
	assert.Equal(t, "31", trx.StoreCode)
	assert.Equal(t, "01", trx.PosID)
	assert.Equal(t, int64(350), trx.TotalAmount)
	assert.Equal(t, int64(318), trx.TotalAmountExTax)
	assert.True(t, fixed.Equal(trx.CreatedAt))

	require.Len(t, trx.Lines, 3)
	for i, item := range basket() {
		line := trx.Lines[i]
		assert.Equal(t, i+1, line.LineNo)
		assert.Equal(t, item.ProductID, line.ProductID)
		assert.Equal(t, item.ProductCode, line.ProductCode)
		assert.Equal(t, item.ProductName, line.ProductName)
		assert.Equal(t, item.ProductPrice, line.ProductPrice)
		assert.Equal(t, "10", line.TaxCode)
	}
}

func TestRecordPurchaseDefaults(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)

	receipt, err := NewRecorder(repo, zap.NewNop()).RecordPurchase(ctx, PurchaseContext{}, basket()[:1])
	require.NoError(t, err)

	trx, err := repo.FindByID(ctx, receipt.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, DefaultStaffCode, trx.StaffCode)
	assert.Equal(t, DefaultStoreCode, trx.StoreCode)
	assert.Equal(t, DefaultPosID, trx.PosID)
}

func TestRecordPurchaseConcurrentWritersGetDistinctIDs(t *testing.T) {
	const writers = 20
	db, repo := setup(t)
	recorder := NewRecorder(repo, zap.NewNop())

	var wg sync.WaitGroup
	ids := make(chan int64, writers)
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := recorder.RecordPurchase(context.Background(), PurchaseContext{}, basket())
			if err != nil {
				errs <- err
				return
			}
			ids <- receipt.TransactionID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "transaction id %d allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, writers)
	assert.Equal(t, writers, countRows(t, db, "TRD"))
	assert.Equal(t, writers*len(basket()), countRows(t, db, "TRD_DTL"))

	var badTotals int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM TRD WHERE TOTAL_AMT != 350 OR TTL_AMT_EX_TAX != 318`).Scan(&badTotals))
	assert.Zero(t, badTotals)
}

func TestRecordPurchaseEmpty(t *testing.T) {
	db, repo := setup(t)

	_, err := NewRecorder(repo, zap.NewNop()).RecordPurchase(context.Background(), PurchaseContext{}, nil)
	assert.ErrorIs(t, err, ErrEmptyPurchase)
	assert.NotErrorIs(t, err, ErrPersistence)

	assert.Zero(t, countRows(t, db, "TRD"))
	assert.Zero(t, countRows(t, db, "TRD_DTL"))
}

func TestRecordPurchaseNegativePrice(t *testing.T) {
	db, repo := setup(t)

	items := basket()
	items[1].ProductPrice = -200
	_, err := NewRecorder(repo, zap.NewNop()).RecordPurchase(context.Background(), PurchaseContext{}, items)
	assert.ErrorIs(t, err, ErrInvalidItem)

	assert.Zero(t, countRows(t, db, "TRD"))
}

func TestRecordPurchaseOverflowingTotal(t *testing.T) {
	db, repo := setup(t)

	items := basket()
	items[0].ProductPrice = math.MaxInt64
	_, err := NewRecorder(repo, zap.NewNop()).RecordPurchase(context.Background(), PurchaseContext{}, items)
	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.NotErrorIs(t, err, ErrPersistence)

	assert.Zero(t, countRows(t, db, "TRD"))
	assert.Zero(t, countRows(t, db, "TRD_DTL"))
}

func TestRecordPurchaseSingleMaxPriceItem(t *testing.T) {
	_, repo := setup(t)

	items := []models.PurchaseItem{{ProductID: 1, ProductCode: "X", ProductName: "X", ProductPrice: math.MaxInt64}}
	receipt, err := NewRecorder(repo, zap.NewNop()).RecordPurchase(context.Background(), PurchaseContext{}, items)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), receipt.TotalAmount)
	assert.Equal(t, receipt.TotalAmount, receipt.TotalAmountExTax+receipt.TaxAmount)
}

func TestRecordPurchaseRollsBack(t *testing.T) {
	tests := []struct {
		name string
		repo func(inner repository.TransactionRepository) *faultyRepository
	}{
		{"begin fails", func(inner repository.TransactionRepository) *faultyRepository {
			return &faultyRepository{TransactionRepository: inner, beginErr: errDiskFull}
		}},
		{"first line fails", func(inner repository.TransactionRepository) *faultyRepository {
			return &faultyRepository{TransactionRepository: inner, failLine: 1}
		}},
		{"last line fails", func(inner repository.TransactionRepository) *faultyRepository {
			return &faultyRepository{TransactionRepository: inner, failLine: 3}
		}},
		{"totals update fails", func(inner repository.TransactionRepository) *faultyRepository {
			return &faultyRepository{TransactionRepository: inner, failTotal: true}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, inner := setup(t)

			_, err := NewRecorder(tt.repo(inner), zap.NewNop()).RecordPurchase(context.Background(), PurchaseContext{}, basket())
			assert.ErrorIs(t, err, ErrPersistence)
			assert.ErrorIs(t, err, errDiskFull)

			assert.Zero(t, countRows(t, db, "TRD"))
			assert.Zero(t, countRows(t, db, "TRD_DTL"))
		})
	}
}
