// Package notify raises transient desktop alerts for device state
// transitions: door contacts changing between open and closed, and
// devices dropping on or off the cloud.
package notify
