package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrUnknownKind) {
//	    // handle unrecognised declared type
//	}
var (
	// ErrEmptySpec is returned when a device entry is blank.
	ErrEmptySpec = errors.New("device: empty spec")

	// ErrMissingID is returned when a device entry has no identifier.
	ErrMissingID = errors.New("device: missing id")

	// ErrUnknownKind is returned when a declared device type is not recognised.
	ErrUnknownKind = errors.New("device: unknown kind")
)
