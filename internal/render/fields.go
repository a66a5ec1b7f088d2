package render

import "math"

// TemperatureStatus holds the readings rendered for a temperature and
// humidity sensor.
type TemperatureStatus struct {
	TempC    float64
	TempF    float64
	Humidity uint64
	Battery  uint64
	RSSI     int64
}

// PlugStatus holds the readings rendered for a metering power plug.
type PlugStatus struct {
	Power   float64
	Voltage float64
	Current float64
	Output  bool
	RSSI    int64
}

// ContactStatus holds the readings rendered for a door or window
// contact sensor. Tilt is only meaningful for window sensors.
type ContactStatus struct {
	Open    bool
	Lux     uint64
	Battery uint64
	RSSI    int64
	Tilt    uint64
}

// ExtractTemperature pulls temperature sensor readings out of a raw
// status payload.
func ExtractTemperature(raw map[string]any) TemperatureStatus {
	temp := section(raw, "temperature:0")
	return TemperatureStatus{
		TempC:    floatField(temp, "tC"),
		TempF:    floatField(temp, "tF"),
		Humidity: uintField(section(raw, "humidity:0"), "rh"),
		Battery:  uintField(section(section(raw, "devicepower:0"), "battery"), "percent"),
		RSSI:     intField(section(raw, "reporter"), "rssi"),
	}
}

// ExtractPlug pulls power plug readings out of a raw status payload.
func ExtractPlug(raw map[string]any) PlugStatus {
	sw := section(raw, "switch:0")
	return PlugStatus{
		Power:   floatField(sw, "apower"),
		Voltage: floatField(sw, "voltage"),
		Current: floatField(sw, "current"),
		Output:  boolField(sw, "output"),
		RSSI:    intField(section(raw, "wifi"), "rssi"),
	}
}

// ExtractContact pulls door/window contact readings out of a raw
// status payload.
func ExtractContact(raw map[string]any) ContactStatus {
	return ContactStatus{
		Open:    boolField(section(raw, "window:0"), "open"),
		Lux:     uintField(section(raw, "illuminance:0"), "lux"),
		Battery: uintField(section(section(raw, "devicepower:0"), "battery"), "percent"),
		RSSI:    intField(section(raw, "reporter"), "rssi"),
		Tilt:    uintField(section(raw, "tilt:0"), "angle"),
	}
}

// section returns a nested object field, or nil when the key is absent
// or not an object. Lookups on a nil map are safe, so sections chain.
func section(m map[string]any, key string) map[string]any {
	s, _ := m[key].(map[string]any)
	return s
}

// The field helpers degrade to zero when a key is absent or carries the
// wrong shape. Integer fields reject fractional values rather than
// truncate them, and unsigned fields additionally reject negatives.

func floatField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func intField(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0
		}
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

func uintField(m map[string]any, key string) uint64 {
	switch v := m[key].(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return 0
		}
		return uint64(v)
	case int:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	default:
		return 0
	}
}

func boolField(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}
