// Package config handles loading and validating shellybar configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Resolving file-or-literal cloud credentials
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - The cloud access key should be set via environment variable or a
//     key file rather than inline YAML
//   - The config file should have restricted permissions (0600)
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("~/.config/shellybar/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Cloud.Server)
package config
