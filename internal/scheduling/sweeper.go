package scheduling

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically reclassifies stale appointments as Expired, keeping
// the read paths free of side effects. The sweep is idempotent, so overlap
// with the on-demand admin sweep is harmless.
type Sweeper struct {
	manager  *Manager
	interval time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper ticking at the given interval.
func NewSweeper(manager *Manager, interval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{manager: manager, interval: interval, log: log}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.manager.SweepExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("expiry sweep failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("expired", n).Msg("expiry sweep reclassified appointments")
	}
}
