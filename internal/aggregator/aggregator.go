package aggregator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/shellybar/internal/device"
	"github.com/nerrad567/shellybar/internal/infrastructure/logging"
	"github.com/nerrad567/shellybar/internal/notify"
	"github.com/nerrad567/shellybar/internal/render"
	"github.com/nerrad567/shellybar/internal/status"
	"github.com/nerrad567/shellybar/internal/waybar"
)

// StatusFetcher performs one status request against the cloud API.
// Satisfied by *shelly.Client.
type StatusFetcher interface {
	DeviceStatus(ctx context.Context, id string) (map[string]any, error)
}

// EventFeed yields push messages for the lifetime of one connection.
// Next must return an error once the stream ends, and Close must
// unblock a pending Next. Satisfied by *shelly.Feed.
type EventFeed interface {
	Next() ([]byte, error)
	Close() error
}

// SnapshotWriter emits one merged payload per update batch.
// Satisfied by *waybar.Writer.
type SnapshotWriter interface {
	Write(p waybar.Payload) error
}

// MetricWriter records one numeric reading for a device. Writes must
// not block; delivery is best effort. Satisfied by *influxdb.Client.
type MetricWriter interface {
	WriteDeviceMetric(deviceID, measurement string, value float64)
}

// StatusRepublisher mirrors raw status payloads onto a message bus.
// Satisfied by *mqtt.Client.
type StatusRepublisher interface {
	PublishStatus(deviceID string, payload []byte) error
}

// Options configures an Aggregator.
//
// Fetcher, Feed, Output and Logger are required. Metrics and Bridge
// are optional side channels and may be nil. A nil Notifier disables
// alerts.
type Options struct {
	// Devices are the configured device specs. Declared kinds and
	// display names are taken from here; devices pushed by the feed
	// but not listed still aggregate, they just render undecorated.
	Devices []device.Spec

	// Interval is the pause between poll cycles.
	Interval time.Duration

	Format    render.Format
	Unit      render.Unit
	Separator string

	Fetcher  StatusFetcher
	Feed     EventFeed
	Output   SnapshotWriter
	Notifier notify.Notifier
	Metrics  MetricWriter
	Bridge   StatusRepublisher
	Logger   *logging.Logger
}

// Aggregator reconciles poll results and push events into one shared
// status table and publishes a merged snapshot after every update
// batch. See the package documentation for the full picture.
type Aggregator struct {
	devices  []device.Spec
	declared map[string]device.Kind
	names    map[string]string
	interval time.Duration

	format    render.Format
	unit      render.Unit
	separator string

	fetcher  StatusFetcher
	feed     EventFeed
	out      SnapshotWriter
	notifier notify.Notifier
	metrics  MetricWriter
	bridge   StatusRepublisher
	log      *logging.Logger

	table *status.Table

	// doors is touched only by the push listener goroutine.
	doors *notify.DoorTracker
}

// New wires an Aggregator from its collaborators.
func New(opts Options) (*Aggregator, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("aggregator: fetcher is required")
	}
	if opts.Feed == nil {
		return nil, fmt.Errorf("aggregator: feed is required")
	}
	if opts.Output == nil {
		return nil, fmt.Errorf("aggregator: output is required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("aggregator: logger is required")
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("aggregator: poll interval must be positive")
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}

	declared := make(map[string]device.Kind, len(opts.Devices))
	names := make(map[string]string, len(opts.Devices))
	for _, spec := range opts.Devices {
		declared[spec.ID] = spec.Kind
		if spec.Name != "" {
			names[spec.ID] = spec.Name
		}
	}

	return &Aggregator{
		devices:   opts.Devices,
		declared:  declared,
		names:     names,
		interval:  opts.Interval,
		format:    opts.Format,
		unit:      opts.Unit,
		separator: opts.Separator,
		fetcher:   opts.Fetcher,
		feed:      opts.Feed,
		out:       opts.Output,
		notifier:  notifier,
		metrics:   opts.Metrics,
		bridge:    opts.Bridge,
		log:       opts.Logger,
		table:     status.New(),
		doors:     notify.NewDoorTracker(),
	}, nil
}

// Run drives both producers until the context is cancelled or either
// one fails. Loss of the push feed is deliberately fatal: the error
// propagates out so the process exits non-zero instead of silently
// degrading to poll-only operation.
func (a *Aggregator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.runPoll(ctx) })
	g.Go(func() error { return a.runListen(ctx) })
	return g.Wait()
}
