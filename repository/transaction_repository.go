package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pos-app/models"
)

type SQLTransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *SQLTransactionRepository {
	return &SQLTransactionRepository{db: db}
}

func (r *SQLTransactionRepository) Begin(ctx context.Context) (TransactionWriter, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &sqlTransactionWriter{tx: tx}, nil
}

// FindByID loads a header with its lines in line order.
func (r *SQLTransactionRepository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.QueryRowContext(ctx, `
		SELECT TRD_ID, DATETIME, EMP_CD, STORE_CD, POS_NO, TOTAL_AMT, TTL_AMT_EX_TAX
		FROM TRD WHERE TRD_ID = ?`, id).
		Scan(&t.ID, &t.CreatedAt, &t.StaffCode, &t.StoreCode, &t.PosID, &t.TotalAmount, &t.TotalAmountExTax)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find transaction %d: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT TRD_ID, DTL_ID, PRD_ID, PRD_CODE, PRD_NAME, PRD_PRICE, TAX_CD
		FROM TRD_DTL WHERE TRD_ID = ? ORDER BY DTL_ID`, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction lines %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.TransactionLine
		if err := rows.Scan(&l.TransactionID, &l.LineNo, &l.ProductID, &l.ProductCode, &l.ProductName, &l.ProductPrice, &l.TaxCode); err != nil {
			return nil, fmt.Errorf("scan transaction line: %w", err)
		}
		t.Lines = append(t.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByDate returns the headers recorded on the UTC calendar day of day,
// newest first. Lines are not loaded.
func (r *SQLTransactionRepository) ListByDate(ctx context.Context, day time.Time) ([]models.Transaction, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	rows, err := r.db.QueryContext(ctx, `
		SELECT TRD_ID, DATETIME, EMP_CD, STORE_CD, POS_NO, TOTAL_AMT, TTL_AMT_EX_TAX
		FROM TRD
		WHERE DATETIME >= ? AND DATETIME < ?
		ORDER BY DATETIME DESC, TRD_ID DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.CreatedAt, &t.StaffCode, &t.StoreCode, &t.PosID, &t.TotalAmount, &t.TotalAmountExTax); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

type sqlTransactionWriter struct {
	tx *sql.Tx
}

// CreateHeader inserts the header and returns the id SQLite allocated for
// it inside the still-open transaction.
func (w *sqlTransactionWriter) CreateHeader(ctx context.Context, trx *models.Transaction) (int64, error) {
	result, err := w.tx.ExecContext(ctx, `
		INSERT INTO TRD (DATETIME, EMP_CD, STORE_CD, POS_NO, TOTAL_AMT, TTL_AMT_EX_TAX)
		VALUES (?, ?, ?, ?, ?, ?)`,
		trx.CreatedAt.UTC(), trx.StaffCode, trx.StoreCode, trx.PosID, trx.TotalAmount, trx.TotalAmountExTax)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}
	trx.ID = id
	return id, nil
}

func (w *sqlTransactionWriter) CreateLine(ctx context.Context, line *models.TransactionLine) error {
	_, err := w.tx.ExecContext(ctx, `
		INSERT INTO TRD_DTL (TRD_ID, DTL_ID, PRD_ID, PRD_CODE, PRD_NAME, PRD_PRICE, TAX_CD)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		line.TransactionID, line.LineNo, line.ProductID, line.ProductCode, line.ProductName, line.ProductPrice, line.TaxCode)
	if err != nil {
		return fmt.Errorf("insert transaction line %d: %w", line.LineNo, err)
	}
	return nil
}

func (w *sqlTransactionWriter) UpdateTotals(ctx context.Context, id, totalAmount, totalAmountExTax int64) error {
	result, err := w.tx.ExecContext(ctx, `
		UPDATE TRD SET TOTAL_AMT = ?, TTL_AMT_EX_TAX = ? WHERE TRD_ID = ?`,
		totalAmount, totalAmountExTax, id)
	if err != nil {
		return fmt.Errorf("update transaction totals: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction totals %d: rows affected: %w", id, err)
	}
	if n != 1 {
		return fmt.Errorf("update transaction totals %d: %w", id, ErrNotFound)
	}
	return nil
}

func (w *sqlTransactionWriter) Commit() error {
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (w *sqlTransactionWriter) Rollback() error {
	if err := w.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
