package device

import (
	"fmt"
	"strings"
)

// Kind identifies one of the supported device families. The zero value
// KindUnknown means the kind is undeclared or could not be determined.
type Kind string

// Kind constants.
const (
	KindUnknown     Kind = ""
	KindTemperature Kind = "temperature"
	KindPlug        Kind = "plug"
	KindDoor        Kind = "door"
	KindWindow      Kind = "window"
)

// AllKinds returns all valid device kinds.
func AllKinds() []Kind {
	return []Kind{KindTemperature, KindPlug, KindDoor, KindWindow}
}

// ParseKind maps a declared type token to a Kind. Matching is
// case-insensitive and ignores surrounding whitespace. Unrecognised
// tokens return ErrUnknownKind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindTemperature:
		return KindTemperature, nil
	case KindPlug:
		return KindPlug, nil
	case KindDoor:
		return KindDoor, nil
	case KindWindow:
		return KindWindow, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Spec describes one device to aggregate, as supplied in configuration.
// Specs are immutable for the process lifetime.
type Spec struct {
	// ID is the cloud identifier of the device.
	ID string

	// Kind is the declared device kind. KindUnknown means the kind is
	// autodetected from each status payload instead.
	Kind Kind

	// Name is an optional display name attached to rendered output.
	Name string
}

// ParseSpec parses a single device entry. Three forms are accepted:
//
//	"id"            identifier only, kind autodetected
//	"type:id"       declared kind and identifier
//	"type:id:name"  declared kind, identifier and display name
//
// The name part may itself contain colons. A declared type that fails
// ParseKind invalidates the whole entry.
func ParseSpec(s string) (Spec, error) {
	entry := strings.TrimSpace(s)
	if entry == "" {
		return Spec{}, ErrEmptySpec
	}

	parts := strings.SplitN(entry, ":", 3)
	switch len(parts) {
	case 1:
		return Spec{ID: parts[0]}, nil
	case 2:
		kind, err := ParseKind(parts[0])
		if err != nil {
			return Spec{}, err
		}
		id := strings.TrimSpace(parts[1])
		if id == "" {
			return Spec{}, fmt.Errorf("%w: %q", ErrMissingID, s)
		}
		return Spec{ID: id, Kind: kind}, nil
	default:
		kind, err := ParseKind(parts[0])
		if err != nil {
			return Spec{}, err
		}
		id := strings.TrimSpace(parts[1])
		if id == "" {
			return Spec{}, fmt.Errorf("%w: %q", ErrMissingID, s)
		}
		return Spec{ID: id, Kind: kind, Name: strings.TrimSpace(parts[2])}, nil
	}
}
