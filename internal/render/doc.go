// Package render turns classified device status payloads into the
// text and tooltip fragments shown in the status bar.
//
// Rendering is pure: identical inputs produce byte-identical output,
// with no locale or timezone dependence. Each device kind has three
// fixed templates selected by Format (Short, Long, Icons); the Icons
// variant substitutes glyphs for labels but carries the same readings.
//
// Field extraction never fails. Absent or wrongly-typed fields degrade
// to zero values, matching what the Shelly cloud omits for sleeping
// battery devices.
package render
