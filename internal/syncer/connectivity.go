package syncer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Monitor turns a reachability probe into an online flag plus
// offline-to-online transition events. The probe is typically the
// database pool ping.
type Monitor struct {
	probe    func(ctx context.Context) error
	interval time.Duration
	log      zerolog.Logger

	online   atomic.Bool
	restored chan struct{}
}

func NewMonitor(probe func(ctx context.Context) error, interval time.Duration, log zerolog.Logger) *Monitor {
	m := &Monitor{
		probe:    probe,
		interval: interval,
		log:      log,
		restored: make(chan struct{}, 1),
	}
	return m
}

func (m *Monitor) Online() bool { return m.online.Load() }

// Restored delivers one signal per offline-to-online transition. The channel
// holds a single pending signal; consumers that lag see transitions coalesced.
func (m *Monitor) Restored() <-chan struct{} { return m.restored }

// Check probes once and updates state, emitting a restored event on the
// offline-to-online edge.
func (m *Monitor) Check(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	up := m.probe(pctx) == nil
	was := m.online.Swap(up)
	if up && !was {
		select {
		case m.restored <- struct{}{}:
		default:
		}
	}
	if !up && was {
		m.log.Warn().Msg("connectivity lost")
	}
	return up
}

// Run polls the probe until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
