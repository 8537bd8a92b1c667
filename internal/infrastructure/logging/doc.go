// Package logging provides structured logging for the ucapi tool.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the command line tool and the
// store adapter.
//
// # Features
//
//   - JSON output (machine-parsable) or text output (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("migrations applied", "count", 2)
//
// Never log driver tokens or OAuth2 secrets.
package logging
