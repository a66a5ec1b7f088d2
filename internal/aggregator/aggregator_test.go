package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/shellybar/internal/device"
	"github.com/nerrad567/shellybar/internal/infrastructure/logging"
	"github.com/nerrad567/shellybar/internal/notify"
	"github.com/nerrad567/shellybar/internal/render"
	"github.com/nerrad567/shellybar/internal/waybar"
)

// discardLogger returns a logger whose output goes nowhere.
func discardLogger() *logging.Logger {
	return &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// captureLogger returns a logger writing text lines into buf, for
// tests that assert on diagnostic output.
func captureLogger(buf *bytes.Buffer) *logging.Logger {
	return &logging.Logger{Logger: slog.New(slog.NewTextHandler(buf, nil))}
}

// decode parses a JSON object the way payloads arrive off the wire, so
// numeric fields exercise the float64 paths.
func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return raw
}

func temperaturePayload(t *testing.T) map[string]any {
	t.Helper()
	return decode(t, `{
		"temperature:0": {"tC": 22.5, "tF": 72.5},
		"humidity:0":    {"rh": 50},
		"devicepower:0": {"battery": {"percent": 80}},
		"reporter":      {"rssi": -60}
	}`)
}

func plugPayload(t *testing.T) map[string]any {
	t.Helper()
	return decode(t, `{
		"switch:0": {"apower": 50.0, "voltage": 230.0, "current": 0.217, "output": true},
		"wifi":     {"rssi": -70}
	}`)
}

func doorPayload(t *testing.T, open bool) map[string]any {
	t.Helper()
	state := "false"
	if open {
		state = "true"
	}
	return decode(t, `{
		"window:0":      {"open": `+state+`},
		"illuminance:0": {"lux": 120},
		"devicepower:0": {"battery": {"percent": 95}},
		"reporter":      {"rssi": -55}
	}`)
}

// stubFetcher serves canned status payloads keyed by device id.
type stubFetcher struct {
	mu       sync.Mutex
	statuses map[string]map[string]any
	errs     map[string]error
	calls    []string
}

func (f *stubFetcher) DeviceStatus(ctx context.Context, id string) (map[string]any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	if s, ok := f.statuses[id]; ok {
		return s, nil
	}
	return nil, errors.New("no such device")
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// stubFeed replays a fixed message sequence. Once drained it returns
// its configured error, or blocks until closed the way a healthy idle
// connection would.
type stubFeed struct {
	mu     sync.Mutex
	msgs   [][]byte
	err    error
	closed chan struct{}
	once   sync.Once
}

func newStubFeed(err error, msgs ...string) *stubFeed {
	f := &stubFeed{err: err, closed: make(chan struct{})}
	for _, m := range msgs {
		f.msgs = append(f.msgs, []byte(m))
	}
	return f
}

func (f *stubFeed) Next() ([]byte, error) {
	f.mu.Lock()
	if len(f.msgs) > 0 {
		msg := f.msgs[0]
		f.msgs = f.msgs[1:]
		f.mu.Unlock()
		return msg, nil
	}
	err := f.err
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	<-f.closed
	return nil, errors.New("feed closed")
}

func (f *stubFeed) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

// recordWriter captures every emitted snapshot.
type recordWriter struct {
	mu       sync.Mutex
	payloads []waybar.Payload
	err      error
}

func (w *recordWriter) Write(p waybar.Payload) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.payloads = append(w.payloads, p)
	return nil
}

func (w *recordWriter) all() []waybar.Payload {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]waybar.Payload(nil), w.payloads...)
}

// recordNotifier captures every alert.
type recordNotifier struct {
	mu     sync.Mutex
	alerts []notify.Alert
	err    error
}

func (n *recordNotifier) Notify(a notify.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.alerts = append(n.alerts, a)
	return nil
}

func (n *recordNotifier) all() []notify.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Alert(nil), n.alerts...)
}

type metricPoint struct {
	device      string
	measurement string
	value       float64
}

// recordMetrics captures every metric write.
type recordMetrics struct {
	mu     sync.Mutex
	points []metricPoint
}

func (m *recordMetrics) WriteDeviceMetric(deviceID, measurement string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = append(m.points, metricPoint{deviceID, measurement, value})
}

func (m *recordMetrics) all() []metricPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]metricPoint(nil), m.points...)
}

// recordBridge captures the last republished payload per device.
type recordBridge struct {
	mu        sync.Mutex
	published map[string][]byte
	err       error
}

func (b *recordBridge) PublishStatus(deviceID string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	if b.published == nil {
		b.published = make(map[string][]byte)
	}
	b.published[deviceID] = payload
	return nil
}

func (b *recordBridge) get(deviceID string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published[deviceID]
}

// testOptions returns a working Options around the given
// collaborators. The interval is long enough that only the immediate
// first poll cycle runs within any test.
func testOptions(fetcher StatusFetcher, feed EventFeed, out SnapshotWriter) Options {
	return Options{
		Interval:  time.Hour,
		Format:    render.FormatLong,
		Unit:      render.UnitCelsius,
		Separator: " | ",
		Fetcher:   fetcher,
		Feed:      feed,
		Output:    out,
		Logger:    discardLogger(),
	}
}

// newTestAggregator builds an aggregator with recording collaborators,
// applying mutate to the options first.
func newTestAggregator(t *testing.T, mutate func(*Options)) (*Aggregator, *recordWriter, *recordNotifier) {
	t.Helper()

	out := &recordWriter{}
	notifier := &recordNotifier{}
	opts := testOptions(&stubFetcher{}, newStubFeed(nil), out)
	opts.Notifier = notifier
	if mutate != nil {
		mutate(&opts)
	}

	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a, out, notifier
}

func TestNewRequiresCollaborators(t *testing.T) {
	valid := testOptions(&stubFetcher{}, newStubFeed(nil), &recordWriter{})

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"missing fetcher", func(o *Options) { o.Fetcher = nil }},
		{"missing feed", func(o *Options) { o.Feed = nil }},
		{"missing output", func(o *Options) { o.Output = nil }},
		{"missing logger", func(o *Options) { o.Logger = nil }},
		{"zero interval", func(o *Options) { o.Interval = 0 }},
		{"negative interval", func(o *Options) { o.Interval = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			if _, err := New(opts); err == nil {
				t.Error("New() error = nil, want failure")
			}
		})
	}

	if _, err := New(valid); err != nil {
		t.Errorf("New() with complete options error = %v", err)
	}
}

func TestNewDefaultsNotifierToNoop(t *testing.T) {
	a, err := New(testOptions(&stubFetcher{}, newStubFeed(nil), &recordWriter{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := a.notifier.(notify.Noop); !ok {
		t.Errorf("notifier = %T, want notify.Noop", a.notifier)
	}
}

func TestRunFeedFailureIsFatal(t *testing.T) {
	feedErr := errors.New("stream reset")
	a, err := New(testOptions(&stubFetcher{}, newStubFeed(feedErr), &recordWriter{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := a.Run(context.Background()); !errors.Is(err, feedErr) {
		t.Errorf("Run() error = %v, want %v", err, feedErr)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	a, err := New(testOptions(&stubFetcher{}, newStubFeed(nil), &recordWriter{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestRunEmitsFirstPollPromptly(t *testing.T) {
	fetcher := &stubFetcher{statuses: map[string]map[string]any{
		"plug-1": plugPayload(t),
	}}
	out := &recordWriter{}
	opts := testOptions(fetcher, newStubFeed(nil), out)
	opts.Devices = []device.Spec{{ID: "plug-1", Kind: device.KindPlug}}

	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for len(out.all()) == 0 {
		select {
		case <-deadline:
			t.Fatal("no snapshot emitted before the first interval elapsed")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done

	if got := out.all()[0].Text; got != "Power: 50.0W Voltage: 230.0V" {
		t.Errorf("first snapshot Text = %q", got)
	}
}
