package device

// Marker keys checked during autodetection, in priority order. A key's
// presence alone is sufficient evidence of the kind; values are never
// inspected here.
var markers = []struct {
	key  string
	kind Kind
}{
	{"temperature:0", KindTemperature},
	{"humidity:0", KindTemperature},
	{"switch:0", KindPlug},
	{"window:0", KindDoor},
	{"tilt:0", KindWindow},
}

// Classify determines the Kind for a raw status payload. A declared
// kind always wins. Otherwise the payload is inspected for marker keys
// in a fixed priority order and the first match decides; a payload
// with no markers classifies as KindUnknown. Classify has no side
// effects and is safe for concurrent use.
func Classify(raw map[string]any, declared Kind) Kind {
	if declared != KindUnknown {
		return declared
	}
	for _, m := range markers {
		if _, ok := raw[m.key]; ok {
			return m.kind
		}
	}
	return KindUnknown
}
