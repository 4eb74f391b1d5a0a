// Package storage provides calculation history persistence on SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Calculation is one recorded calculator invocation. Operands and result
// are stored in their serialized form so the integer/fractional kind
// survives the round trip.
type Calculation struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	OperandA  string    `json:"a"`
	OperandB  string    `json:"b"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore implements calculation history access on a SQL database
type HistoryStore struct {
	db         *sql.DB
	maxEntries int
}

const historySchema = `
CREATE TABLE IF NOT EXISTS calculations (
	id         TEXT PRIMARY KEY,
	operation  TEXT NOT NULL,
	operand_a  TEXT NOT NULL,
	operand_b  TEXT NOT NULL,
	result     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
`

// NewHistoryStore opens (or creates) the history database at path. A
// maxEntries above zero caps retained rows, oldest dropped first.
func NewHistoryStore(path string, maxEntries int) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &HistoryStore{db: db, maxEntries: maxEntries}, nil
}

// Record stores one calculation, assigning an ID and timestamp when the
// caller left them empty.
func (hs *HistoryStore) Record(ctx context.Context, calc *Calculation) error {
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO calculations (id, operation, operand_a, operand_b, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := hs.db.ExecContext(ctx, query,
		calc.ID, calc.Operation, calc.OperandA, calc.OperandB, calc.Result, calc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record calculation: %w", err)
	}

	return hs.prune(ctx)
}

// prune drops the oldest rows beyond the configured cap.
func (hs *HistoryStore) prune(ctx context.Context) error {
	if hs.maxEntries <= 0 {
		return nil
	}

	query := `
		DELETE FROM calculations WHERE id NOT IN (
			SELECT id FROM calculations ORDER BY created_at DESC, id DESC LIMIT ?
		)`

	if _, err := hs.db.ExecContext(ctx, query, hs.maxEntries); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// List returns the most recent calculations, newest first.
func (hs *HistoryStore) List(ctx context.Context, limit int) ([]Calculation, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, operation, operand_a, operand_b, result, created_at
		FROM calculations
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := hs.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]Calculation, 0, limit)
	for rows.Next() {
		var calc Calculation
		if err := rows.Scan(&calc.ID, &calc.Operation, &calc.OperandA, &calc.OperandB, &calc.Result, &calc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		result = append(result, calc)
	}

	return result, rows.Err()
}

// Count returns the number of stored calculations.
func (hs *HistoryStore) Count(ctx context.Context) (int, error) {
	var count int
	err := hs.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

// Clear removes every stored calculation.
func (hs *HistoryStore) Clear(ctx context.Context) error {
	if _, err := hs.db.ExecContext(ctx, `DELETE FROM calculations`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (hs *HistoryStore) Close() error {
	return hs.db.Close()
}
