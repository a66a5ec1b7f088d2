package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteDeviceMetric records a single device reading.
//
// This is the primary method for recording telemetry. The write is
// non-blocking; data is batched and sent asynchronously. Calls on a
// disconnected client are silently dropped, matching the sink's
// best-effort contract.
//
// Parameters:
//   - deviceID: Cloud identifier of the device (e.g., "2cbcbba12345")
//   - measurement: The metric name (e.g., "temperature_c", "power_watts")
//   - value: The numeric value to record
//
// Example:
//
//	client.WriteDeviceMetric("2cbcbba12345", "temperature_c", 22.5)
//	client.WriteDeviceMetric("b0a73245678", "power_watts", 50.0)
func (c *Client) WriteDeviceMetric(deviceID string, measurement string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"device_metrics",
		map[string]string{
			"device_id":   deviceID,
			"measurement": measurement,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit WriteDeviceMetric, such as
// aggregate statistics about the bar process itself.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("poll_cycle",
//	    map[string]string{"outcome": "partial"},
//	    map[string]interface{}{"devices": 5, "failures": 1})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
