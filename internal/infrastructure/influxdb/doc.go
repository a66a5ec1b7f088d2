// Package influxdb provides the optional telemetry sink for shellybar.
//
// It wraps the official influxdb-client-go v2 library with connection
// management and non-blocking batched metric writing.
//
// # Purpose
//
// The bar itself only shows the latest reading. This package keeps the
// history: every numeric reading the aggregator accepts (temperature,
// humidity, power draw, illuminance, battery, signal strength) is
// recorded as a time-series point, so a dashboard can chart the week
// of values behind the single number on the bar.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "home",
//	    Bucket: "shellybar",
//	}
//
//	client, err := influxdb.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteDeviceMetric("2cbcbba12345", "temperature_c", 22.5)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are surfaced via
// the SetOnError callback. Connection errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size,
// flush_interval). A poll cycle over a handful of devices produces a
// few dozen points; the defaults flush them within a second.
package influxdb
