// Package logging provides structured logging for fritz-profiles.
//
// This package wraps a global zap logger. The CLI prints its own human
// output; log lines go to stderr and are meant for troubleshooting.
//
// # Log Levels
//
//   - Debug: raw router exchanges, skipped table rows
//   - Info: login, page fetches, submitted changes
//   - Warn: reconciliation and update diagnostics
//   - Error: fatal failures
//
// # Configuration
//
// Logging is silent unless a level is given, either via --log-level or the
// FRITZ_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize(level); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Passwords, challenge responses and full session ids are never logged.
package logging
