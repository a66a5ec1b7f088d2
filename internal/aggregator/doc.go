// Package aggregator reconciles the two Shelly status sources into one
// consistent per-device state table and publishes merged snapshots.
//
// # Architecture
//
//	┌──────────────────┐                      ┌──────────────────┐
//	│   Poll Producer  │                      │  Push Listener   │
//	│    (poll.go)     │                      │   (listen.go)    │
//	│                  │                      │                  │
//	│ • One fetch per  │                      │ • Decodes feed   │
//	│   device, then   │                      │   events         │
//	│   sleeps         │                      │ • Renders status │
//	│ • Log and skip   │                      │   changes        │
//	│   on failure     │                      │ • Door alerts    │
//	└────────┬─────────┘                      └────────┬─────────┘
//	         │              upsert /                   │
//	         │             merge_field                 │
//	         ▼                                         ▼
//	       ┌─────────────────────────────────────────────┐
//	       │          Shared Status Table (status)       │
//	       └──────────────────────┬──────────────────────┘
//	                              │ snapshot
//	                              ▼
//	       ┌─────────────────────────────────────────────┐
//	       │        Snapshot Publisher (publish.go)      │
//	       │   render if needed → merge → one JSON line  │
//	       └─────────────────────────────────────────────┘
//
// # Concurrency
//
// Run starts exactly two goroutines, one per producer, joined through
// an errgroup. Both write to the shared table and both trigger the
// publisher after each update batch: the poll producer once per full
// cycle, the push listener after every message. Writes follow
// last-writer-wins; a poll result and a push update for the same
// device may land in either order, and both are valid recent truth.
//
// Failure of the push feed, or of either producer, cancels the group
// and Run returns the error. The process treats that as fatal rather
// than degrading to poll-only operation.
//
// # Side Channels
//
// Beyond the snapshot stream, updates optionally fan out to a metric
// sink (numeric readings per device) and a status republisher (raw
// payloads onto an MQTT bus). Both are best-effort and never block or
// fail an update.
package aggregator
