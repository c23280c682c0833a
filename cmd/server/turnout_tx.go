package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tallyboard/internal/audit"
	"tallyboard/internal/turnout"
	"tallyboard/internal/turnout/service"
	dErrors "tallyboard/pkg/domain-errors"
)

const turnoutTxTimeout = 5 * time.Second

// turnoutPostgresTx runs the turnout update unit of work inside one database
// transaction so the delete, insert, and audit append commit or roll back
// together.
type turnoutPostgresTx struct {
	db *sql.DB
}

func newTurnoutPostgresTx(db *sql.DB) *turnoutPostgresTx {
	return &turnoutPostgresTx{db: db}
}

func (t *turnoutPostgresTx) RunInTx(ctx context.Context, fn func(stores service.Stores) error) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, turnoutTxTimeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
		}
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stores := service.Stores{
		Turnouts: turnout.NewPostgresTx(tx),
		Audit:    audit.NewPostgresTx(tx),
	}
	if err := fn(stores); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
