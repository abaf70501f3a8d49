// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run emits one Cycle immediately, then one per interval until ctx is done.
// interval <= 0 means a single cycle. No overlap. No retries.
// The consumer must drain out until it is closed; a cycle interrupted by
// ctx still delivers the outcomes it collected.
func (p *Poller) Run(ctx context.Context, interval time.Duration, out chan<- Cycle) {
	defer close(out)

	if !p.emit(ctx, out) || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.emit(ctx, out) {
				return
			}
		}
	}
}

func (p *Poller) emit(ctx context.Context, out chan<- Cycle) bool {
	c := p.PollOnce(ctx)
	if len(c.Outcomes) > 0 {
		out <- c
	}
	return ctx.Err() == nil
}
