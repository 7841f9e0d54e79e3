package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"pos-app/models"
)

type SQLProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *SQLProductRepository {
	return &SQLProductRepository{db: db}
}

// FindByCode returns ErrNotFound when no product carries the code.
func (r *SQLProductRepository) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT PRD_ID, CODE, PRODUCT_NAME, PRICE, COLOR, ITEM_CODE, NAME
		FROM PRD_MASTER WHERE CODE = ?`, code).
		Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Color, &p.ItemCode, &p.FullName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find product %q: %w", code, err)
	}
	return &p, nil
}

func (r *SQLProductRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT PRD_ID, CODE, PRODUCT_NAME, PRICE, COLOR, ITEM_CODE, NAME
		FROM PRD_MASTER ORDER BY CODE`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Color, &p.ItemCode, &p.FullName); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Create inserts the product and sets its ID.
func (r *SQLProductRepository) Create(ctx context.Context, product *models.Product) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO PRD_MASTER (CODE, PRODUCT_NAME, PRICE, COLOR, ITEM_CODE, NAME)
		VALUES (?, ?, ?, ?, ?, ?)`,
		product.Code, product.Name, product.Price, product.Color, product.ItemCode, product.FullName)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, product.Code)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	product.ID = id
	return nil
}
