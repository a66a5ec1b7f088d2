package aggregator

import (
	"context"
	"encoding/json"

	"github.com/nerrad567/shellybar/internal/device"
	"github.com/nerrad567/shellybar/internal/notify"
	"github.com/nerrad567/shellybar/internal/render"
	"github.com/nerrad567/shellybar/internal/shelly"
	"github.com/nerrad567/shellybar/internal/status"
)

// runListen consumes the push feed until the stream ends. Every
// message, decoded or not, is followed by a snapshot publish. A read
// error is fatal: the feed has no reconnect policy, so the failure is
// handed straight to Run.
func (a *Aggregator) runListen(ctx context.Context) error {
	// Next has no context parameter; closing the feed is the only way
	// to unblock it when the group shuts down.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.feed.Close()
		case <-done:
		}
	}()

	for {
		msg, err := a.feed.Next()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		a.handleMessage(msg)
		a.publish()
	}
}

// handleMessage dispatches one feed message. Messages that do not
// decode, or decode without an event name, are dropped without
// logging: the feed carries frequent heartbeat and bookkeeping frames
// that would otherwise drown the diagnostic stream. Well-formed events
// with an unrecognised name are worth a log line.
func (a *Aggregator) handleMessage(msg []byte) {
	var ev shelly.Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		return
	}

	switch ev.Event {
	case "":
	case shelly.EventStatusOnChange:
		a.handleStatusChange(ev)
	case shelly.EventOnline:
		a.handleOnline(ev)
	default:
		a.log.Warn("unknown event", "event", ev.Event)
	}
}

// handleStatusChange applies one full status payload pushed for a
// device: classify, render, store, and raise a door alert when a
// contact sensor changed state. An unclassifiable payload is stored
// raw so the data is not lost, but it renders nothing until a
// classifiable update arrives.
func (a *Aggregator) handleStatusChange(ev shelly.Event) {
	id := ev.Device.ID
	if id == "" || ev.Status == nil {
		return
	}

	kind := device.Classify(ev.Status, a.declared[id])
	if kind == device.KindUnknown {
		a.log.Warn("cannot classify device status", "device", id)
		a.table.Upsert(id, status.Entry{Raw: ev.Status})
		return
	}

	frag := render.Render(kind, ev.Status, a.format, a.unit).Decorate(a.names[id])
	a.table.Upsert(id, status.Entry{Raw: ev.Status, Fragment: &frag})

	if kind == device.KindDoor || kind == device.KindWindow {
		open := render.ExtractContact(ev.Status).Open
		if alert, changed := a.doors.Observe(id, a.names[id], open); changed {
			a.alert(alert)
		}
	}

	a.fanout(id, ev.Status)
}

// handleOnline merges the pushed online flag into the device's entry
// and alerts. Online events alert on every observation, repeats
// included; unlike door transitions there is no de-duplication.
func (a *Aggregator) handleOnline(ev shelly.Event) {
	id := ev.Device.ID
	if id == "" || ev.Online == nil {
		return
	}

	online := *ev.Online == 1
	a.table.MergeField(id, "online", online)
	a.alert(notify.OnlineAlert(id, online))
}

// alert hands one alert to the notifier. Presentation failure is
// logged and swallowed.
func (a *Aggregator) alert(al notify.Alert) {
	if err := a.notifier.Notify(al); err != nil {
		a.log.Warn("failed to present notification", "summary", al.Summary, "error", err)
	}
}
