package notify

import "fmt"

// DoorTracker remembers the last observed open state per door so that
// repeated identical observations stay silent. It is owned by a single
// goroutine and is not safe for concurrent use.
type DoorTracker struct {
	last map[string]bool
}

// NewDoorTracker returns a tracker with no history.
func NewDoorTracker() *DoorTracker {
	return &DoorTracker{last: make(map[string]bool)}
}

// Observe records the open state for a door and reports whether the
// transition warrants an alert. The first observation of a door only
// seeds the history. The new state is always written back, so a
// repeated identical observation is idempotent.
func (t *DoorTracker) Observe(id, name string, open bool) (Alert, bool) {
	key := id + ":" + name
	prev, seen := t.last[key]
	t.last[key] = open

	if !seen || prev == open {
		return Alert{}, false
	}

	display := name
	if display == "" {
		display = "Unnamed Door"
	}
	state := "Closed"
	if open {
		state = "Open"
	}
	return Alert{
		Summary: "Door Status Changed: " + display,
		Body:    "The door is now " + state,
	}, true
}

// OnlineAlert builds the alert for an online/offline event. Unlike
// door transitions, online observations are never de-duplicated
// against history: every event alerts, even a repeat of the current
// state.
func OnlineAlert(id string, online bool) Alert {
	state := "Offline"
	if online {
		state = "Online"
	}
	return Alert{
		Summary: fmt.Sprintf("Device %s Status Changed", id),
		Body:    "Device is now " + state,
	}
}
