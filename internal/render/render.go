package render

import (
	"fmt"
	"strings"

	"github.com/nerrad567/shellybar/internal/device"
)

// Format selects one of the three output templates per device kind.
type Format string

// Format constants.
const (
	FormatShort Format = "short"
	FormatLong  Format = "long"
	FormatIcons Format = "icons"
)

// Unit selects the temperature scale for temperature sensors.
type Unit string

// Unit constants.
const (
	UnitCelsius    Unit = "C"
	UnitFahrenheit Unit = "F"
)

// ParseFormat maps a config token to a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return FormatShort, nil
	case "long":
		return FormatLong, nil
	case "icons":
		return FormatIcons, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ParseUnit maps a config token to a Unit, case-insensitively.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C":
		return UnitCelsius, nil
	case "F":
		return UnitFahrenheit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// Fragment is one device's rendered contribution to the merged
// status-bar payload.
type Fragment struct {
	Text    string
	Tooltip string
}

// Decorate attaches a display name to the fragment. An empty name
// leaves the fragment unchanged.
func (f Fragment) Decorate(name string) Fragment {
	if name == "" {
		return f
	}
	f.Text += " (" + name + ")"
	f.Tooltip = "Device: " + name + "\n" + f.Tooltip
	return f
}

// Render produces the display fragment for one device. The kind must
// come from Classify; rendering an unknown kind yields an empty
// fragment, and callers are expected to have skipped those already.
func Render(kind device.Kind, raw map[string]any, format Format, unit Unit) Fragment {
	switch kind {
	case device.KindTemperature:
		return renderTemperature(ExtractTemperature(raw), format, unit)
	case device.KindPlug:
		return renderPlug(ExtractPlug(raw), format)
	case device.KindDoor:
		return renderContact(ExtractContact(raw), false, format)
	case device.KindWindow:
		return renderContact(ExtractContact(raw), true, format)
	default:
		return Fragment{}
	}
}

func renderTemperature(s TemperatureStatus, format Format, unit Unit) Fragment {
	temp, label := s.TempC, "°C"
	if unit == UnitFahrenheit {
		temp, label = s.TempF, "°F"
	}

	switch format {
	case FormatShort:
		return Fragment{
			Text:    fmt.Sprintf("T: %.1f%s H: %d%%", temp, label, s.Humidity),
			Tooltip: fmt.Sprintf("B: %d%% RSSI: %ddBm", s.Battery, s.RSSI),
		}
	case FormatIcons:
		return Fragment{
			Text:    fmt.Sprintf("%.1f%s 💧%d%%", temp, label, s.Humidity),
			Tooltip: fmt.Sprintf("🔋%d%% 📶%ddBm", s.Battery, s.RSSI),
		}
	default:
		return Fragment{
			Text:    fmt.Sprintf("Temp: %.1f%s Humidity: %d%%", temp, label, s.Humidity),
			Tooltip: fmt.Sprintf("Battery: %d%% RSSI: %ddBm", s.Battery, s.RSSI),
		}
	}
}

func renderPlug(s PlugStatus, format Format) Fragment {
	state := "OFF"
	if s.Output {
		state = "ON"
	}

	switch format {
	case FormatShort:
		return Fragment{
			Text:    fmt.Sprintf("P: %.1fW V: %.1fV", s.Power, s.Voltage),
			Tooltip: fmt.Sprintf("I: %.3fA RSSI: %ddBm O: %s", s.Current, s.RSSI, state),
		}
	case FormatIcons:
		return Fragment{
			Text:    fmt.Sprintf("⚡%.1fW 🔌%.1fV", s.Power, s.Voltage),
			Tooltip: fmt.Sprintf("🔋%.3fA 📶%ddBm 🔆%s", s.Current, s.RSSI, state),
		}
	default:
		return Fragment{
			Text:    fmt.Sprintf("Power: %.1fW Voltage: %.1fV", s.Power, s.Voltage),
			Tooltip: fmt.Sprintf("Current: %.3fA WiFi RSSI: %ddBm Output: %s", s.Current, s.RSSI, state),
		}
	}
}

func renderContact(s ContactStatus, window bool, format Format) Fragment {
	state, icon := "Closed", "🔴"
	if s.Open {
		state, icon = "Open", "🟢"
	}

	// Window sensors carry a tilt angle in the text of every format.
	// Door sensors never do.
	tilt := ""
	if window {
		tilt = fmt.Sprintf(", Tilt: %d", s.Tilt)
	}

	switch format {
	case FormatShort:
		return Fragment{
			Text:    fmt.Sprintf("%s: L: %d%s", state, s.Lux, tilt),
			Tooltip: fmt.Sprintf("B: %d%% RSSI: %ddBm", s.Battery, s.RSSI),
		}
	case FormatIcons:
		return Fragment{
			Text:    fmt.Sprintf("%s 🔆%d%s", icon, s.Lux, tilt),
			Tooltip: fmt.Sprintf("🔋%d%% 📶%ddBm", s.Battery, s.RSSI),
		}
	default:
		return Fragment{
			Text:    fmt.Sprintf("%s, Lux: %d%s", state, s.Lux, tilt),
			Tooltip: fmt.Sprintf("Battery: %d%% RSSI: %ddBm", s.Battery, s.RSSI),
		}
	}
}
