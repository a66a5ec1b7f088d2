package aggregator

import (
	"github.com/nerrad567/shellybar/internal/device"
	"github.com/nerrad567/shellybar/internal/render"
	"github.com/nerrad567/shellybar/internal/waybar"
)

// publish renders the current table contents and emits one merged
// payload. Entries written by the push listener carry a cached
// fragment; poll results are rendered here. Entries that cannot be
// classified are logged and left out.
//
// When nothing renders, nothing is emitted: printing an empty payload
// would blank the bar widget during startup races, so the condition
// goes to the log instead.
func (a *Aggregator) publish() {
	entries := a.table.Snapshot()

	fragments := make([]render.Fragment, 0, len(entries))
	for _, e := range entries {
		if e.Fragment != nil {
			fragments = append(fragments, *e.Fragment)
			continue
		}

		kind := device.Classify(e.Raw, a.declared[e.ID])
		if kind == device.KindUnknown {
			a.log.Warn("cannot classify device status", "device", e.ID)
			continue
		}
		fragments = append(fragments, render.Render(kind, e.Raw, a.format, a.unit).Decorate(a.names[e.ID]))
	}

	if len(fragments) == 0 {
		a.log.Error("no valid device data found")
		return
	}

	if err := a.out.Write(waybar.Merge(fragments, a.separator)); err != nil {
		a.log.Error("writing snapshot", "error", err)
	}
}
