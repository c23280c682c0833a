//go:build integration

package stream

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"tallyboard/internal/audit"
	"tallyboard/pkg/testutil/containers"
)

func TestPublisher_RoundTrip(t *testing.T) {
	ctx := context.Background()
	broker := containers.NewRedpandaContainer(t)

	const topic = "tallyboard.audit.test"
	publisher, err := NewPublisher([]string{broker.Broker}, topic)
	require.NoError(t, err)
	defer publisher.Close()

	require.NoError(t, publisher.EnsureTopic(ctx))
	require.NoError(t, publisher.EnsureTopic(ctx), "existing topic must not be an error")

	prev := 100
	entries := []*audit.Entry{
		{ID: 1, StationID: 7, Action: audit.ActionCreate, NewValue: 100, CreatedAt: time.Now().UTC()},
		{ID: 2, StationID: 7, Action: audit.ActionUpdate, PreviousValue: &prev, NewValue: 80, CreatedAt: time.Now().UTC()},
	}
	require.NoError(t, publisher.Publish(ctx, entries))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var records []*kgo.Record
	for len(records) < len(entries) {
		fetches := consumer.PollFetches(fetchCtx)
		require.NoError(t, fetches.Err())
		records = append(records, fetches.Records()...)
	}

	require.Len(t, records, 2)
	require.Equal(t, "7", string(records[0].Key), "records are keyed by station ID")

	var got audit.Entry
	require.NoError(t, json.Unmarshal(records[1].Value, &got))
	require.Equal(t, audit.ActionUpdate, got.Action)
	require.NotNil(t, got.PreviousValue)
	require.Equal(t, 100, *got.PreviousValue)
	require.Equal(t, 80, got.NewValue)
}
