package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"tallyboard/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists staff members in the staff_members table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO staff_members (name, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query, m.Name, m.Username, m.PasswordHash, m.Role).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("creating staff member: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*Member, error) {
	query := `
		SELECT id, name, username, password_hash, role, created_at
		FROM staff_members
		WHERE lower(username) = lower($1)`

	var m Member
	err := s.db.QueryRowContext(ctx, query, username).
		Scan(&m.ID, &m.Name, &m.Username, &m.PasswordHash, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("finding staff member: %w", err)
	}
	return &m, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting staff members: %w", err)
	}
	return count, nil
}
