package turnout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"tallyboard/pkg/platform/sentinel"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same store code
// serves plain reads and the transactional update path.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists turnout observations in PostgreSQL. The store is
// pure I/O; resolution and validation belong in the service.
type PostgresStore struct {
	q querier
}

// NewPostgres constructs a PostgreSQL-backed turnout store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

// NewPostgresTx binds a store to an open transaction so the update path's
// delete, insert, and audit append commit or roll back as a unit.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

const fkViolation = "23503"

func (s *PostgresStore) Insert(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO turnout_records (station_id, voter_count, updated_by, created_at)
		VALUES ($1, $2, NULLIF($3, ''), COALESCE($4, CURRENT_TIMESTAMP))
		RETURNING id, created_at
	`
	var createdAt any
	if !rec.CreatedAt.IsZero() {
		createdAt = rec.CreatedAt
	}
	err := s.q.QueryRowContext(ctx, query, rec.StationID, rec.VoterCount, rec.UpdatedBy, createdAt).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == fkViolation {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert turnout record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByStation(ctx context.Context, stationID int64) ([]*Record, error) {
	query := `
		SELECT id, station_id, voter_count, updated_by, created_at, updated_at
		FROM turnout_records
		WHERE station_id = $1
	`
	rows, err := s.q.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, fmt.Errorf("list turnout records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*Record, error) {
	query := `
		SELECT id, station_id, voter_count, updated_by, created_at, updated_at
		FROM turnout_records
	`
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list turnout records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *PostgresStore) DeleteByStation(ctx context.Context, stationID int64) (int, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM turnout_records WHERE station_id = $1`, stationID)
	if err != nil {
		return 0, fmt.Errorf("delete turnout records: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete turnout records rows affected: %w", err)
	}
	return int(n), nil
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		var rec Record
		var updatedBy sql.NullString
		var updatedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.StationID, &rec.VoterCount, &updatedBy, &rec.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan turnout record: %w", err)
		}
		rec.UpdatedBy = updatedBy.String
		if updatedAt.Valid {
			rec.UpdatedAt = &updatedAt.Time
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turnout records: %w", err)
	}
	return records, nil
}
