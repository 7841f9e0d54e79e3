package config

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite database at path and creates the POS tables if
// they do not exist.
func OpenDB(ctx context.Context, path string, logger *zap.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer; one connection keeps each purchase's
	// unit of work from contending with itself.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database ready", zap.String("path", path))
	return db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	// Begin a transaction for the table creation process
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []struct {
		name string
		ddl  string
	}{
		{"PRD_MASTER", `
		CREATE TABLE IF NOT EXISTS PRD_MASTER (
			PRD_ID INTEGER PRIMARY KEY AUTOINCREMENT,
			CODE CHAR(13) NOT NULL UNIQUE,
			PRODUCT_NAME VARCHAR(50) NOT NULL,
			COLOR VARCHAR(30) NOT NULL DEFAULT '',
			ITEM_CODE VARCHAR(20) NOT NULL DEFAULT '',
			NAME VARCHAR(100) NOT NULL DEFAULT '',
			PRICE INTEGER NOT NULL CHECK(PRICE >= 0)
		);`},
		{"TRD", `
		CREATE TABLE IF NOT EXISTS TRD (
			TRD_ID INTEGER PRIMARY KEY AUTOINCREMENT,
			DATETIME TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			EMP_CD CHAR(10) NOT NULL,
			STORE_CD CHAR(5) NOT NULL DEFAULT '30',
			POS_NO CHAR(3) NOT NULL DEFAULT '90',
			TOTAL_AMT INTEGER NOT NULL DEFAULT 0,
			TTL_AMT_EX_TAX INTEGER NOT NULL DEFAULT 0
		);`},
		{"TRD_DTL", `
		CREATE TABLE IF NOT EXISTS TRD_DTL (
			TRD_ID INTEGER NOT NULL,
			DTL_ID INTEGER NOT NULL,
			PRD_ID INTEGER NOT NULL,
			PRD_CODE CHAR(13) NOT NULL,
			PRD_NAME VARCHAR(100) NOT NULL,
			PRD_PRICE INTEGER NOT NULL,
			TAX_CD CHAR(2) NOT NULL DEFAULT '10',
			PRIMARY KEY (TRD_ID, DTL_ID),
			FOREIGN KEY(TRD_ID) REFERENCES TRD(TRD_ID)
		);`},
	}

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, table.ddl); err != nil {
			return fmt.Errorf("create %s table: %w", table.name, err)
		}
	}

	// Commit the transaction once all tables are created successfully
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
