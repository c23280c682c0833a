package service

import (
	"context"
	"sync"
	"time"

	"tallyboard/internal/audit"
	"tallyboard/internal/turnout"
	dErrors "tallyboard/pkg/domain-errors"
)

// Stores is the transaction-scoped view of everything the update path writes.
// The turnout replacement and its audit entry must commit or roll back as one
// unit, so both stores are handed out together.
type Stores struct {
	Turnouts turnout.Store
	Audit    audit.Store
}

// Tx provides the transactional boundary for turnout updates.
// Implementations may wrap a database transaction or, in-memory, a coarse
// lock with snapshot rollback.
type Tx interface {
	RunInTx(ctx context.Context, fn func(stores Stores) error) error
}

// defaultTxTimeout bounds a turnout update transaction.
const defaultTxTimeout = 5 * time.Second

// InMemoryTx runs fn against in-memory stores under a lock, restoring both
// stores' state when fn fails so tests observe real rollback semantics.
type InMemoryTx struct {
	mu       sync.Mutex
	turnouts *turnout.InMemory
	audits   *audit.InMemory
	timeout  time.Duration
}

func NewInMemoryTx(turnouts *turnout.InMemory, audits *audit.InMemory) *InMemoryTx {
	return &InMemoryTx{turnouts: turnouts, audits: audits}
}

func (t *InMemoryTx) RunInTx(ctx context.Context, fn func(stores Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	turnoutSnap := t.turnouts.Snapshot()
	auditSnap := t.audits.Snapshot()

	if err := fn(Stores{Turnouts: t.turnouts, Audit: t.audits}); err != nil {
		t.turnouts.Restore(turnoutSnap)
		t.audits.Restore(auditSnap)
		return err
	}
	return nil
}
