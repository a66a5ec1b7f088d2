// Package shelly talks to the Shelly cloud: a small REST client for
// polling device status, and a websocket feed that delivers change
// events as they happen.
//
// # Status Polling
//
// Client.DeviceStatus performs one POST to /device/status and decodes
// the response envelope:
//
//	{"isok": true, "data": {"device_status": {...}}}
//	{"isok": false, "errors": {...}}
//
// An isok:false envelope surfaces as ErrAPIError carrying the
// service-provided detail. Transport failures, non-200 responses and
// undecodable bodies are all non-fatal to callers; the poll loop logs
// and skips the device for that cycle.
//
// # Push Feed
//
// DialFeed opens the long-lived event socket. Each message is an
// independent JSON document; Event is the decoded shape shared by the
// two event names the aggregator understands, EventStatusOnChange and
// EventOnline. The feed has no reconnect policy: a read error ends the
// stream and the process treats that as fatal.
package shelly
