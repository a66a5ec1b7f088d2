package shelly

// Event names delivered by the push feed.
const (
	// EventStatusOnChange carries a fresh status payload for a device.
	EventStatusOnChange = "Shelly:StatusOnChange"

	// EventOnline signals a device joining or leaving the cloud.
	EventOnline = "Shelly:Online"
)

// Event is one decoded push feed message. Only the fields relevant to
// the matching event name are populated; the rest stay at their zero
// values.
type Event struct {
	Event  string         `json:"event"`
	Device EventDevice    `json:"device"`
	Status map[string]any `json:"status"`
	Online *int64         `json:"online"`
}

// EventDevice identifies the device an event concerns.
type EventDevice struct {
	ID string `json:"id"`
}
