package aggregator

import (
	"context"
	"time"

	"github.com/nerrad567/shellybar/internal/status"
)

// runPoll fetches every configured device once per cycle, then sleeps
// for the configured interval. The first cycle starts immediately so
// the bar fills before the feed delivers anything. Only context
// cancellation ends the loop.
func (a *Aggregator) runPoll(ctx context.Context) error {
	for {
		a.pollCycle(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.interval):
		}
	}
}

// pollCycle makes one pass over the configured devices and publishes a
// snapshot once the whole list has been attempted. A failed fetch is
// logged and skipped; there is no retry within the cycle, the next
// cycle covers it.
func (a *Aggregator) pollCycle(ctx context.Context) {
	for _, spec := range a.devices {
		raw, err := a.fetcher.DeviceStatus(ctx, spec.ID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			a.log.Error("error fetching device status", "device", spec.ID, "error", err)
			continue
		}

		a.table.Upsert(spec.ID, status.Entry{Raw: raw})
		a.fanout(spec.ID, raw)
	}

	a.publish()
}
