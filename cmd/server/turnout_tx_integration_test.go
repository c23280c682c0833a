//go:build integration

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tallyboard/internal/audit"
	"tallyboard/internal/turnout"
	"tallyboard/internal/turnout/service"
	"tallyboard/pkg/testutil/containers"
)

func TestTurnoutPostgresTx_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)

	_, err := pg.DB.ExecContext(ctx, `INSERT INTO stations (name, location) VALUES ('Station 1', 'Location 1')`)
	require.NoError(t, err)

	tx := newTurnoutPostgresTx(pg.DB)
	turnouts := turnout.NewPostgres(pg.DB)
	audits := audit.NewPostgres(pg.DB)

	// Committed unit: delete, insert, audit append all land together.
	err = tx.RunInTx(ctx, func(stores service.Stores) error {
		if _, err := stores.Turnouts.DeleteByStation(ctx, 1); err != nil {
			return err
		}
		if err := stores.Turnouts.Insert(ctx, &turnout.Record{StationID: 1, VoterCount: 100}); err != nil {
			return err
		}
		return stores.Audit.Append(ctx, &audit.Entry{StationID: 1, Action: audit.ActionCreate, NewValue: 100})
	})
	require.NoError(t, err)

	records, err := turnouts.ListByStation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Failed unit: nothing of the delete, insert, or append survives.
	failure := errors.New("injected")
	err = tx.RunInTx(ctx, func(stores service.Stores) error {
		if _, err := stores.Turnouts.DeleteByStation(ctx, 1); err != nil {
			return err
		}
		if err := stores.Turnouts.Insert(ctx, &turnout.Record{StationID: 1, VoterCount: 80}); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	records, err = turnouts.ListByStation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 100, records[0].VoterCount, "rolled-back update must leave the prior value")

	entries, err := audits.ListByStation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the committed unit's audit entry exists")
}
