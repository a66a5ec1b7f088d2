// Package device defines the closed set of device kinds understood by
// shellybar and the classification rules that map raw Shelly status
// payloads onto them.
//
// # Key Types
//
//   - Spec: one device to aggregate, parsed from a config entry of the
//     form "id", "type:id" or "type:id:name"
//   - Kind: closed enumeration of supported device families
//     (temperature, plug, door, window)
//
// # Classification
//
// A Spec may declare its kind up front; declared kinds always win.
// Without a declaration, Classify autodetects by inspecting the status
// payload for marker keys in a fixed priority order:
//
//	temperature:0 / humidity:0  → Temperature
//	switch:0                    → Plug
//	window:0                    → Door
//	tilt:0                      → Window
//
// The first marker present decides the kind. A payload carrying none
// of them classifies as KindUnknown, and callers are expected to log
// and omit the device from that update.
package device
