package mqtt

import "fmt"

// DefaultTopicPrefix roots the topic tree when the configuration
// leaves mqtt.topic_prefix empty.
const DefaultTopicPrefix = "shellybar"

// Topics provides builders for the bridge's MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
// The zero value uses the default prefix:
//
//	topic := mqtt.Topics{}.DeviceStatus("a4cf12f45678")
//	// Returns: "shellybar/status/a4cf12f45678"
type Topics struct {
	prefix string
}

// NewTopics returns a Topics rooted at prefix. An empty prefix falls
// back to DefaultTopicPrefix.
func NewTopics(prefix string) Topics {
	return Topics{prefix: prefix}
}

// root returns the effective prefix.
func (t Topics) root() string {
	if t.prefix == "" {
		return DefaultTopicPrefix
	}
	return t.prefix
}

// DeviceStatus returns the retained status mirror topic for one device.
//
// Example: shellybar/status/a4cf12f45678
func (t Topics) DeviceStatus(deviceID string) string {
	return fmt.Sprintf("%s/status/%s", t.root(), deviceID)
}

// Availability returns the bar's availability topic. It carries the
// online/offline announcements and serves as the LWT target.
//
// Example: shellybar/availability
func (t Topics) Availability() string {
	return fmt.Sprintf("%s/availability", t.root())
}

// AllDeviceStatuses returns a pattern matching every device status
// topic, for consumers subscribing to the whole mirror.
//
// Pattern: shellybar/status/+
func (t Topics) AllDeviceStatuses() string {
	return fmt.Sprintf("%s/status/+", t.root())
}
