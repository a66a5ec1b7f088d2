package aggregator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nerrad567/shellybar/internal/device"
	"github.com/nerrad567/shellybar/internal/render"
	"github.com/nerrad567/shellybar/internal/status"
)

func TestPublishOrdersFragmentsByDeviceID(t *testing.T) {
	a, out, _ := newTestAggregator(t, nil)
	a.table.Upsert("b-dev", status.Entry{
		Raw:      map[string]any{},
		Fragment: &render.Fragment{Text: "B", Tooltip: "tooltip-b"},
	})
	a.table.Upsert("a-dev", status.Entry{
		Raw:      map[string]any{},
		Fragment: &render.Fragment{Text: "A", Tooltip: "tooltip-a"},
	})

	a.publish()

	payloads := out.all()
	if len(payloads) != 1 {
		t.Fatalf("snapshots emitted = %d, want 1", len(payloads))
	}
	if payloads[0].Text != "A | B" {
		t.Errorf("Text = %q, want %q", payloads[0].Text, "A | B")
	}
	if payloads[0].Tooltip != "tooltip-a\ntooltip-b" {
		t.Errorf("Tooltip = %q", payloads[0].Tooltip)
	}
}

func TestPublishRendersEntriesWithoutFragment(t *testing.T) {
	a, out, _ := newTestAggregator(t, func(o *Options) {
		o.Devices = []device.Spec{{ID: "temp-1", Kind: device.KindTemperature, Name: "Office"}}
	})
	a.table.Upsert("temp-1", status.Entry{Raw: temperaturePayload(t)})

	a.publish()

	payloads := out.all()
	if len(payloads) != 1 {
		t.Fatalf("snapshots emitted = %d, want 1", len(payloads))
	}
	if got := payloads[0].Text; got != "Temp: 22.5°C Humidity: 50% (Office)" {
		t.Errorf("Text = %q", got)
	}
}

func TestPublishPrefersCachedFragment(t *testing.T) {
	// A cached fragment wins even when re-rendering the raw payload
	// would produce something else.
	a, out, _ := newTestAggregator(t, nil)
	a.table.Upsert("temp-1", status.Entry{
		Raw:      temperaturePayload(t),
		Fragment: &render.Fragment{Text: "CACHED", Tooltip: "cached"},
	})

	a.publish()

	if got := out.all()[0].Text; got != "CACHED" {
		t.Errorf("Text = %q, want the cached fragment", got)
	}
}

func TestPublishOmitsUnclassifiableEntries(t *testing.T) {
	var buf bytes.Buffer
	a, out, _ := newTestAggregator(t, func(o *Options) {
		o.Logger = captureLogger(&buf)
		o.Devices = []device.Spec{{ID: "plug-1", Kind: device.KindPlug}}
	})
	a.table.Upsert("plug-1", status.Entry{Raw: plugPayload(t)})
	a.table.Upsert("mystery-1", status.Entry{Raw: decode(t, `{"sys": {"uptime": 3}}`)})

	a.publish()

	payloads := out.all()
	if len(payloads) != 1 {
		t.Fatalf("snapshots emitted = %d, want 1", len(payloads))
	}
	if got := payloads[0].Text; got != "Power: 50.0W Voltage: 230.0V" {
		t.Errorf("Text = %q, want the classifiable device only", got)
	}
	if !strings.Contains(buf.String(), "cannot classify device status") {
		t.Errorf("log output = %q, want classify warning", buf.String())
	}
}

func TestPublishEmptyTableEmitsNothing(t *testing.T) {
	var buf bytes.Buffer
	a, out, _ := newTestAggregator(t, func(o *Options) {
		o.Logger = captureLogger(&buf)
	})

	a.publish()

	if got := len(out.all()); got != 0 {
		t.Errorf("snapshots emitted = %d, want 0", got)
	}
	if !strings.Contains(buf.String(), "no valid device data found") {
		t.Errorf("log output = %q, want no-data error", buf.String())
	}
	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Errorf("log output = %q, want error level", buf.String())
	}
}

func TestPublishWriterFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	out := &recordWriter{err: errors.New("broken pipe")}
	a, _, _ := newTestAggregator(t, func(o *Options) {
		o.Logger = captureLogger(&buf)
		o.Output = out
	})
	a.table.Upsert("a-dev", status.Entry{
		Raw:      map[string]any{},
		Fragment: &render.Fragment{Text: "A", Tooltip: "t"},
	})

	a.publish()

	if !strings.Contains(buf.String(), "writing snapshot") {
		t.Errorf("log output = %q, want write failure", buf.String())
	}
}
