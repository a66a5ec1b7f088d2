// Package status holds the shared status table that both producers
// write into and the snapshot publisher reads from.
//
// The table is the only mutable state shared between the poll loop and
// the push listener. Every operation takes the table lock for the
// duration of the mutation only, never across I/O. Writers follow a
// last-writer-wins discipline: a poll result and a push update for the
// same device may interleave in any order, and both are valid recent
// truth.
//
// Raw payload maps stored in the table are treated as immutable.
// MergeField copies before modifying, so a map handed out by Snapshot
// is never written again.
package status
