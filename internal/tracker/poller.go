package tracker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval matches the cadence the tracking page refreshes at.
const DefaultPollInterval = 3 * time.Second

// Poller repeatedly fetches the tracking view for one code. It fetches once
// immediately, then on every tick, and stops itself when a terminal status
// arrives or the context is cancelled. Fetch errors are logged and the loop
// keeps going; a flaky network must not kill the tracking view.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	log      zerolog.Logger
}

func NewPoller(fetcher Fetcher, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{fetcher: fetcher, interval: interval, log: log}
}

// Run starts the loop and returns the snapshot stream. The channel is closed
// when the loop ends, after which no further sends happen; consumers tie
// their own teardown to the channel close.
func (p *Poller) Run(ctx context.Context, code string) <-chan Snapshot {
	out := make(chan Snapshot)

	go func() {
		defer close(out)

		if done := p.poll(ctx, code, out); done {
			return
		}

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if done := p.poll(ctx, code, out); done {
					return
				}
			}
		}
	}()

	return out
}

// poll performs one fetch and forwards the snapshot. It reports true when
// the loop should end.
func (p *Poller) poll(ctx context.Context, code string, out chan<- Snapshot) bool {
	snap, err := p.fetcher.FetchTracking(ctx, code)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		p.log.Warn().Err(err).Str("code", code).Msg("tracking fetch failed")
		return false
	}

	select {
	case out <- snap:
	case <-ctx.Done():
		return true
	}
	return snap.Terminal()
}
