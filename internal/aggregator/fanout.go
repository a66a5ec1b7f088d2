package aggregator

import (
	"encoding/json"

	"github.com/nerrad567/shellybar/internal/device"
	"github.com/nerrad567/shellybar/internal/render"
)

// fanout forwards a fresh status payload to the optional side
// channels. Both channels are fire-and-forget: a failure is logged and
// the bar pipeline carries on.
func (a *Aggregator) fanout(id string, raw map[string]any) {
	if a.bridge == nil && a.metrics == nil {
		return
	}

	if a.bridge != nil {
		payload, err := json.Marshal(raw)
		if err != nil {
			a.log.Warn("encoding device status", "device", id, "error", err)
		} else if err := a.bridge.PublishStatus(id, payload); err != nil {
			a.log.Warn("republishing device status", "device", id, "error", err)
		}
	}

	if a.metrics != nil {
		a.writeMetrics(id, raw)
	}
}

// writeMetrics extracts the numeric readings for the device's kind and
// hands them to the metric sink. Unclassifiable payloads produce no
// points.
func (a *Aggregator) writeMetrics(id string, raw map[string]any) {
	switch device.Classify(raw, a.declared[id]) {
	case device.KindTemperature:
		s := render.ExtractTemperature(raw)
		a.metrics.WriteDeviceMetric(id, "temperature_c", s.TempC)
		a.metrics.WriteDeviceMetric(id, "humidity_percent", float64(s.Humidity))
		a.metrics.WriteDeviceMetric(id, "battery_percent", float64(s.Battery))
		a.metrics.WriteDeviceMetric(id, "rssi_dbm", float64(s.RSSI))
	case device.KindPlug:
		s := render.ExtractPlug(raw)
		a.metrics.WriteDeviceMetric(id, "power_watts", s.Power)
		a.metrics.WriteDeviceMetric(id, "voltage_volts", s.Voltage)
		a.metrics.WriteDeviceMetric(id, "current_amps", s.Current)
		a.metrics.WriteDeviceMetric(id, "rssi_dbm", float64(s.RSSI))
	case device.KindDoor, device.KindWindow:
		s := render.ExtractContact(raw)
		a.metrics.WriteDeviceMetric(id, "illuminance_lux", float64(s.Lux))
		a.metrics.WriteDeviceMetric(id, "battery_percent", float64(s.Battery))
		a.metrics.WriteDeviceMetric(id, "rssi_dbm", float64(s.RSSI))
	}
}
