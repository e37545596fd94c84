package pricestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"balance_formatter/internal/domain/entity"

	_ "modernc.org/sqlite"
)

// Store persists the last known quote per currency in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens the SQLite database at dbPath, creating it and its table if needed.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS price_snapshots (
        currency TEXT NOT NULL PRIMARY KEY,
        price REAL NOT NULL,
        price_date TEXT NOT NULL DEFAULT '',
        fetched_at TEXT NOT NULL
    )`)
	if err != nil {
		return fmt.Errorf("failed to create price_snapshots table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SavePrices upserts every quote in a single transaction. Currencies missing
// from prices keep their previous row.
func (s *Store) SavePrices(ctx context.Context, prices []entity.TokenPrice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO price_snapshots(currency, price, price_date, fetched_at)
    VALUES(?, ?, ?, ?)
    ON CONFLICT(currency) DO UPDATE SET
        price = excluded.price,
        price_date = excluded.price_date,
        fetched_at = excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot upsert: %w", err)
	}
	defer stmt.Close()

	fetchedAt := s.now().UTC().Format(time.RFC3339Nano)
	for _, p := range prices {
		if _, err := stmt.ExecContext(ctx, p.Currency, p.Price, formatDate(p.Date), fetchedAt); err != nil {
			return fmt.Errorf("failed to save price for %s: %w", p.Currency, err)
		}
	}
	return tx.Commit()
}

// LoadPrices returns every stored quote ordered by currency.
func (s *Store) LoadPrices(ctx context.Context) ([]entity.TokenPrice, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT currency, price, price_date FROM price_snapshots ORDER BY currency`)
	if err != nil {
		return nil, fmt.Errorf("failed to query price snapshots: %w", err)
	}
	defer rows.Close()

	var prices []entity.TokenPrice
	for rows.Next() {
		var (
			p       entity.TokenPrice
			dateStr string
		)
		if err := rows.Scan(&p.Currency, &p.Price, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan price snapshot: %w", err)
		}
		if dateStr != "" {
			if p.Date, err = time.Parse(time.RFC3339Nano, dateStr); err != nil {
				return nil, fmt.Errorf("bad date %q for %s: %w", dateStr, p.Currency, err)
			}
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
