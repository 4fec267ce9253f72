// Package syncer drains the local durable queue into the hosted database.
// A drain makes one delivery attempt per queued submission; failures stay
// queued for the next pass, so delivery is at-least-once. The remote create
// carries the local id as an idempotency key, which keeps a redelivery
// after a failed local removal from producing a duplicate document.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
)

// Sink is the remote create capability of the hosted database.
type Sink interface {
	Create(ctx context.Context, req *models.ServiceRequest, localRef string) (string, error)
}

// Store is the durable queue side the coordinator consumes.
type Store interface {
	Pending(ctx context.Context) ([]models.QueuedSubmission, error)
	Remove(ctx context.Context, localID string) error
}

type DrainResult struct {
	Synced  int
	Failed  int
	Skipped bool // another drain was already in flight
}

type Coordinator struct {
	store Store
	sink  Sink
	log   zerolog.Logger

	mu sync.Mutex // serializes drains (single-flight)
}

func New(store Store, sink Sink, log zerolog.Logger) *Coordinator {
	return &Coordinator{store: store, sink: sink, log: log}
}

// Drain attempts one remote delivery for every currently queued submission,
// in insertion order. Successfully delivered entries are removed; failed
// ones are left for a future drain without in-pass retries. Overlapping
// triggers coalesce: when a drain is already running the call returns
// immediately with Skipped set.
func (c *Coordinator) Drain(ctx context.Context) DrainResult {
	if !c.mu.TryLock() {
		return DrainResult{Skipped: true}
	}
	defer c.mu.Unlock()

	pending, err := c.store.Pending(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("sync: reading pending queue failed")
		return DrainResult{}
	}
	if len(pending) == 0 {
		return DrainResult{}
	}

	c.log.Info().Int("pending", len(pending)).Msg("sync: draining offline submissions")

	var res DrainResult
	for _, sub := range pending {
		// local bookkeeping fields never reach the remote document
		req := sub.ServiceRequest
		if _, err := c.sink.Create(ctx, &req, sub.LocalID); err != nil {
			res.Failed++
			c.log.Warn().Err(err).Str("local_id", sub.LocalID).Msg("sync: delivery failed, entry stays queued")
			continue
		}
		if err := c.store.Remove(ctx, sub.LocalID); err != nil {
			// delivered but still queued; the idempotency key absorbs
			// the redelivery on the next drain
			res.Failed++
			c.log.Error().Err(err).Str("local_id", sub.LocalID).Msg("sync: removal failed after delivery")
			continue
		}
		res.Synced++
		c.log.Debug().Str("local_id", sub.LocalID).Str("name", sub.Name).Msg("sync: submission delivered")
	}

	if res.Synced > 0 {
		c.log.Info().Int("synced", res.Synced).Int("failed", res.Failed).Msg("sync: drain finished")
	}
	return res
}

// Run wires the drain triggers: one pass shortly after startup when the
// remote is reachable, one on every connectivity-restored event, and an
// opportunistic pass at a fixed period. Blocks until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context, mon *Monitor, startupDelay, interval time.Duration) {
	startup := time.NewTimer(startupDelay)
	defer startup.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-startup.C:
			if mon.Online() {
				c.Drain(ctx)
			}
		case <-mon.Restored():
			c.log.Info().Msg("sync: connectivity restored")
			c.Drain(ctx)
		case <-ticker.C:
			if mon.Online() {
				c.Drain(ctx)
			}
		}
	}
}
