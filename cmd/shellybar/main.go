// Shellybar - Shelly device status for Waybar
//
// Shellybar aggregates the state of Shelly cloud smart-home devices
// into a single status line. A periodic poll of the cloud REST API and
// a persistent WebSocket push feed both land in one shared status
// table, and every update batch emits one merged {"text","tooltip"}
// JSON line on stdout for Waybar's custom module protocol.
//
// Stdout is reserved for snapshot payloads; all logging goes to stderr
// or a configured file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nerrad567/shellybar/internal/aggregator"
	"github.com/nerrad567/shellybar/internal/device"
	"github.com/nerrad567/shellybar/internal/infrastructure/config"
	"github.com/nerrad567/shellybar/internal/infrastructure/influxdb"
	"github.com/nerrad567/shellybar/internal/infrastructure/logging"
	"github.com/nerrad567/shellybar/internal/infrastructure/mqtt"
	"github.com/nerrad567/shellybar/internal/notify"
	"github.com/nerrad567/shellybar/internal/render"
	"github.com/nerrad567/shellybar/internal/shelly"
	"github.com/nerrad567/shellybar/internal/waybar"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("shellybar %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	// This is the Go pattern for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run the application
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting shellybar",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Validate() has already vetted these values, so failure here
	// means the two lists have drifted apart
	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("parsing output format: %w", err)
	}
	unit, err := render.ParseUnit(cfg.Output.Unit)
	if err != nil {
		return fmt.Errorf("parsing output unit: %w", err)
	}

	// Parse device specs, skipping malformed entries
	specs := make([]device.Spec, 0, len(cfg.Devices))
	for _, raw := range cfg.Devices {
		spec, parseErr := device.ParseSpec(raw)
		if parseErr != nil {
			log.Warn("skipping invalid device spec", "spec", raw, "error", parseErr)
			continue
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return errors.New("no usable device specs in configuration")
	}
	log.Info("devices configured", "count", len(specs))

	// Cloud REST client for the poll loop
	client := shelly.NewClient(cfg.Cloud.Server, cfg.Cloud.AuthKey)

	// Push feed connection. Connection failure is fatal: without the
	// feed the bar would silently show stale data between polls.
	feedURL := shelly.FeedURL(cfg.Cloud.Server, cfg.Cloud.AuthKey)
	log.Info("connecting to websocket", "url", shelly.RedactFeedURL(feedURL, cfg.Cloud.AuthKey))
	feed, err := shelly.DialFeed(ctx, feedURL)
	if err != nil {
		return fmt.Errorf("connecting to push feed: %w", err)
	}
	defer func() {
		log.Info("closing push feed")
		if closeErr := feed.Close(); closeErr != nil {
			log.Error("error closing feed", "error", closeErr)
		}
	}()
	log.Info("connected to websocket")

	// Connect to MQTT broker (optional status mirror)
	var bridge *mqtt.Client
	if cfg.MQTT.Enabled {
		bridge, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := bridge.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", bridge.ClientID(),
		)

		// Set up MQTT logging callbacks
		bridge.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		bridge.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT bridge disabled")
	}

	// Connect to InfluxDB (optional telemetry sink)
	metrics, err := influxdb.Connect(ctx, cfg.InfluxDB)
	switch {
	case errors.Is(err, influxdb.ErrDisabled):
		metrics = nil
		log.Info("InfluxDB disabled")
	case err != nil:
		return fmt.Errorf("connecting to InfluxDB: %w", err)
	default:
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := metrics.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		// Set up InfluxDB error callback
		metrics.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Notifications.Enabled {
		notifier = notify.Desktop{}
	}

	opts := aggregator.Options{
		Devices:   specs,
		Interval:  cfg.PollInterval(),
		Format:    format,
		Unit:      unit,
		Separator: cfg.Output.Separator,
		Fetcher:   client,
		Feed:      feed,
		Output:    waybar.NewWriter(os.Stdout),
		Notifier:  notifier,
		Logger:    log,
	}
	// Leave the side channels nil when disabled; a typed nil stored in
	// the interface would defeat the aggregator's nil checks.
	if bridge != nil {
		opts.Bridge = bridge
	}
	if metrics != nil {
		opts.Metrics = metrics
	}

	agg, err := aggregator.New(opts)
	if err != nil {
		return fmt.Errorf("creating aggregator: %w", err)
	}

	log.Info("initialisation complete, aggregating",
		"poll_interval", cfg.PollInterval(),
		"format", cfg.Output.Format,
		"unit", cfg.Output.Unit,
	)

	// Run blocks until the feed fails or the signal context cancels.
	// Cancellation is the normal shutdown path, not an error.
	if runErr := agg.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("aggregating: %w", runErr)
	}

	log.Info("shellybar stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses the SHELLYBAR_CONFIG environment variable if set, otherwise
// $XDG_CONFIG_HOME/shellybar/config.yaml with the usual ~/.config
// fallback. A missing file is not an error; the environment can carry
// the whole configuration.
func getConfigPath() string {
	if path := os.Getenv("SHELLYBAR_CONFIG"); path != "" {
		return path
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "shellybar", "config.yaml")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "shellybar", "config.yaml")
}
