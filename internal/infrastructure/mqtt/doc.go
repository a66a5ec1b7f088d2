// Package mqtt mirrors aggregated device status onto an MQTT broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Retained per-device status publishing
//   - Last Will and Testament (LWT) for bar availability
//
// # Architecture
//
// The bridge is a one-way side channel. Every raw status payload the
// aggregator accepts, from either the poller or the push feed, is
// republished as retained JSON under shellybar/status/<device-id>.
// Local automation consumers (Home Assistant, Node-RED) subscribe to
// the mirror instead of each holding their own cloud connection.
//
//	Shelly Cloud → shellybar → MQTT broker → automation consumers
//
// # Availability
//
// The bar announces itself on shellybar/availability. A retained
// online message is published on every (re)connect, a graceful offline
// message on Close, and the broker publishes the LWT offline message
// if the connection drops without warning. Consumers can mark the
// whole mirror stale from this one topic.
//
// # Security Considerations
//
//   - TLS is available for brokers beyond the local host (broker.tls)
//   - Credentials are optional; anonymous access suits local brokers
//   - Payloads carry device status only, but can reveal occupancy
//
// # Usage
//
//	bridge, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bridge.Close()
//
//	bridge.PublishStatus("a4cf12f45678", payload)
package mqtt
