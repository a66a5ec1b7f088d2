// Package logging provides structured logging for shellybar.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the entire application.
//
// # Features
//
//   - Text output for terminals (human-readable)
//   - JSON output for log collectors (machine-parsable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Output Discipline
//
// Stdout belongs to the snapshot stream the bar widget reads, so all
// diagnostics default to stderr. Configure "stdout" only when running
// without a bar attached.
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # text, json
//	  output: "stderr"   # stderr, stdout, or a file path to append to
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting poll loop", "devices", 3)
//	logger.Error("failed to connect", "error", err)
//
// # Security
//
// Never log secrets, tokens, passwords, or API keys.
// Use field redaction for sensitive data:
//
//	logger.Info("connecting to websocket", "url", shelly.RedactFeedURL(url, key))
package logging
