package syncer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/queue"
)

// Drains a real SQLite-backed queue instead of the fake store.
func TestDrainAgainstDurableQueue(t *testing.T) {
	q, err := queue.Open(":memory:")
	require.NoError(t, err)
	defer q.Close()

	ctx := context.Background()
	for _, name := range []string{"Maria", "João", "Ana"} {
		_, err := q.Enqueue(ctx, models.ServiceRequest{
			Name: name, Phone: "11999998888", Service: "Outros", Message: "ajuda",
			Status: models.StatusPending,
		})
		require.NoError(t, err)
	}

	sink := &fakeSink{fail: func(string) error { return errors.New("offline") }}
	c := New(q, sink, zerolog.Nop())

	// everything stays queued while the remote is down
	res := c.Drain(ctx)
	assert.Zero(t, res.Synced)
	assert.Equal(t, 3, res.Failed)
	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// one pass with a healthy remote delivers all of it, once each
	sink.fail = nil
	res = c.Drain(ctx)
	assert.Equal(t, 3, res.Synced)
	require.Len(t, sink.calls, 3)
	assert.Equal(t, "Maria", sink.calls[0].name)

	n, err = q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
