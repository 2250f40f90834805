// Package shutdown provides graceful shutdown for VoteLedger.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup hook registration, run in reverse order
//   - Programmatic triggering for tests and admin paths
package shutdown
