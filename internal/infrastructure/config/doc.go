// Package config handles loading and validating the ucapi tool configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with UCAPI_* environment variables
//   - Validation of required fields
//   - Default value handling
//
// Tokens (InfluxDB) should be set via environment variables rather than the
// file.
//
// Usage:
//
//	cfg, err := config.Load("ucapi.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Path)
package config
