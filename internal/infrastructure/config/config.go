package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for shellybar.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Cloud         CloudConfig         `yaml:"cloud"`
	Devices       []string            `yaml:"devices"`
	Output        OutputConfig        `yaml:"output"`
	Poll          PollConfig          `yaml:"poll"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
	MQTT          MQTTConfig          `yaml:"mqtt"`
	InfluxDB      InfluxDBConfig      `yaml:"influxdb"`
}

// CloudConfig contains Shelly cloud access settings.
//
// Server and AuthKey each accept either a literal value or the path of
// a file holding the value, so the access key can live outside the
// config file (e.g. in a pass(1) managed export).
type CloudConfig struct {
	Server  string `yaml:"server"`
	AuthKey string `yaml:"auth_key"`
}

// OutputConfig contains snapshot rendering settings.
type OutputConfig struct {
	Separator string `yaml:"separator"`
	Format    string `yaml:"format"`
	Unit      string `yaml:"unit"`
}

// PollConfig contains status polling settings.
type PollConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// NotificationsConfig contains desktop notification settings.
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// MQTTConfig contains settings for the optional MQTT status bridge.
type MQTTConfig struct {
	Enabled     bool                `yaml:"enabled"`
	Broker      MQTTBrokerConfig    `yaml:"broker"`
	Auth        MQTTAuthConfig      `yaml:"auth"`
	QoS         int                 `yaml:"qos"`
	TopicPrefix string              `yaml:"topic_prefix"`
	Reconnect   MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains settings for the optional InfluxDB telemetry sink.
// FlushInterval is in milliseconds.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// A missing config file is not an error; the environment can carry the
// whole configuration. After overrides, the cloud server and access
// key are resolved: a value naming a readable file is replaced by that
// file's trimmed contents.
//
// Environment variables follow the pattern: SHELLYBAR_SECTION_KEY
// For example: SHELLYBAR_CLOUD_AUTH_KEY, SHELLYBAR_DEVICES
// The SHELLY_AUTH_KEY and SHELLY_BASE_URL names are also honoured and
// lose to their SHELLYBAR_ equivalents when both are set.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be parsed, a credential file cannot be
//     read, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file when present
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Resolve file-or-literal cloud credentials
	if err := resolveCloud(cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Cloud: CloudConfig{
			Server: "shelly-001-eu.shelly.cloud",
		},
		Output: OutputConfig{
			Separator: " | ",
			Format:    "long",
			Unit:      "C",
		},
		Poll: PollConfig{
			IntervalSeconds: 30,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "shellybar",
			},
			QoS:         1,
			TopicPrefix: "shellybar",
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		InfluxDB: InfluxDBConfig{
			BatchSize:     20,
			FlushInterval: 1000,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: SHELLYBAR_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Legacy names first, so the SHELLYBAR_ names win when both are set.
	if v := os.Getenv("SHELLY_BASE_URL"); v != "" {
		cfg.Cloud.Server = v
	}
	if v := os.Getenv("SHELLY_AUTH_KEY"); v != "" {
		cfg.Cloud.AuthKey = v
	}

	// Cloud
	if v := os.Getenv("SHELLYBAR_CLOUD_SERVER"); v != "" {
		cfg.Cloud.Server = v
	}
	if v := os.Getenv("SHELLYBAR_CLOUD_AUTH_KEY"); v != "" {
		cfg.Cloud.AuthKey = v
	}

	// Devices, comma-separated
	if v := os.Getenv("SHELLYBAR_DEVICES"); v != "" {
		cfg.Devices = splitDevices(v)
	}

	// Logging
	if v := os.Getenv("SHELLYBAR_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// MQTT
	if v := os.Getenv("SHELLYBAR_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("SHELLYBAR_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("SHELLYBAR_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("SHELLYBAR_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// splitDevices turns a comma-separated device list into entries,
// dropping empty segments.
func splitDevices(v string) []string {
	var devices []string
	for _, entry := range strings.Split(v, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			devices = append(devices, entry)
		}
	}
	return devices
}

// resolveCloud replaces file-path cloud values with file contents.
func resolveCloud(cfg *Config) error {
	server, err := resolveInput(cfg.Cloud.Server)
	if err != nil {
		return fmt.Errorf("resolving cloud.server: %w", err)
	}
	cfg.Cloud.Server = server

	key, err := resolveInput(cfg.Cloud.AuthKey)
	if err != nil {
		return fmt.Errorf("resolving cloud.auth_key: %w", err)
	}
	cfg.Cloud.AuthKey = key

	return nil
}

// resolveInput returns the trimmed contents of the named file when the
// value is the path of one that exists, and the value itself otherwise.
func resolveInput(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if _, err := os.Stat(value); err != nil {
		return value, nil
	}
	data, err := os.ReadFile(value)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Cloud validation
	if c.Cloud.Server == "" {
		errs = append(errs, "cloud.server is required")
	}
	if c.Cloud.AuthKey == "" {
		errs = append(errs, "cloud.auth_key is required (set SHELLYBAR_CLOUD_AUTH_KEY)")
	}

	// Device validation
	if len(c.Devices) == 0 {
		errs = append(errs, "devices is required (at least one entry)")
	}

	// Poll validation
	if c.Poll.IntervalSeconds < 1 {
		errs = append(errs, "poll.interval_seconds must be at least 1")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
		}
		if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
			errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
		}
	}

	// InfluxDB validation
	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// PollInterval returns the poll cycle interval as a Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}
