package audit

import (
	"context"
	"database/sql"
	"fmt"
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists the audit trail in PostgreSQL. Rows are only ever
// inserted; there is no update or delete path.
type PostgresStore struct {
	q querier
}

// NewPostgres constructs a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

// NewPostgresTx binds the store to an open transaction so the audit append
// commits together with the turnout replacement it describes.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

func (s *PostgresStore) Append(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO audit_log (station_id, action, previous_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, CURRENT_TIMESTAMP))
		RETURNING id, created_at
	`
	var createdAt any
	if !entry.CreatedAt.IsZero() {
		createdAt = entry.CreatedAt
	}
	err := s.q.QueryRowContext(ctx, query,
		entry.StationID,
		string(entry.Action),
		entry.PreviousValue,
		entry.NewValue,
		createdAt,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByStation(ctx context.Context, stationID int64) ([]*Entry, error) {
	query := `
		SELECT id, station_id, action, previous_value, new_value, created_at
		FROM audit_log
		WHERE station_id = $1
		ORDER BY id
	`
	rows, err := s.q.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	query := `
		SELECT id, station_id, action, previous_value, new_value, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT $1
	`
	rows, err := s.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *PostgresStore) ListAfter(ctx context.Context, afterID int64, limit int) ([]*Entry, error) {
	query := `
		SELECT id, station_id, action, previous_value, new_value, created_at
		FROM audit_log
		WHERE id > $1
		ORDER BY id
		LIMIT $2
	`
	rows, err := s.q.QueryContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var e Entry
		var prev sql.NullInt64
		if err := rows.Scan(&e.ID, &e.StationID, &e.Action, &prev, &e.NewValue, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if prev.Valid {
			v := int(prev.Int64)
			e.PreviousValue = &v
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
