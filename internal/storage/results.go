package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/suitwatch/internal/common"
	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/mattn/go-sqlite3"
)

// ListAll returns every stored round in insertion order.
func (s *SQLiteStorage) ListAll(ctx context.Context) ([]model.ResultRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listAllTx(ctx, s.db)
}

func (s *SQLiteStorage) listAllTx(ctx context.Context, q queryable) ([]model.ResultRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT round_number, date, time, first_group_cards, winner, excerpt
		FROM results
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]model.ResultRecord, 0)
	for rows.Next() {
		var r model.ResultRecord
		var winner string
		if err := rows.Scan(&r.RoundNumber, &r.Date, &r.Time, &r.FirstGroupCards, &winner, &r.Excerpt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Winner = model.Winner(winner)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}
	return records, nil
}

// Append stores a new round. Round numbers are unique; a second append for the
// same round fails with common.ErrDuplicateEntry and leaves the first untouched.
func (s *SQLiteStorage) Append(ctx context.Context, record model.ResultRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (round_number, date, time, first_group_cards, winner, excerpt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.RoundNumber, record.Date, record.Time, record.FirstGroupCards, string(record.Winner), record.Excerpt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: round %d", common.ErrDuplicateEntry, record.RoundNumber)
		}
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// Clear removes every stored round.
func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	return tx.Commit()
}

// Count returns the number of stored rounds.
func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
