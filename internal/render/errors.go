package render

import "errors"

var (
	// ErrUnknownFormat is returned when an output format token is not recognised.
	ErrUnknownFormat = errors.New("render: unknown format")

	// ErrUnknownUnit is returned when a temperature unit token is not recognised.
	ErrUnknownUnit = errors.New("render: unknown unit")
)
