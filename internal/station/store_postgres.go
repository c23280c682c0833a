package station

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tallyboard/pkg/platform/sentinel"
)

// PostgresStore persists the station roster in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed station store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, st *Station) error {
	query := `
		INSERT INTO stations (name, location, capacity)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, st.Name, st.Location, st.Capacity).
		Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert station: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Station, error) {
	query := `
		SELECT id, name, location, capacity, created_at, updated_at
		FROM stations
		WHERE id = $1
	`
	st, err := scanStation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find station: %w", err)
	}
	return st, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Station, error) {
	query := `
		SELECT id, name, location, capacity, created_at, updated_at
		FROM stations
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	var stations []*Station
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stations: %w", err)
	}
	return stations, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stations: %w", err)
	}
	return count, nil
}

type stationRow interface {
	Scan(dest ...any) error
}

func scanStation(row stationRow) (*Station, error) {
	var st Station
	var location sql.NullString
	var capacity sql.NullInt64
	var updatedAt sql.NullTime
	if err := row.Scan(&st.ID, &st.Name, &location, &capacity, &st.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	st.Location = location.String
	if capacity.Valid {
		c := int(capacity.Int64)
		st.Capacity = &c
	}
	if updatedAt.Valid {
		st.UpdatedAt = &updatedAt.Time
	}
	return &st, nil
}
