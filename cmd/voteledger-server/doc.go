// Package main provides the entry point for voteledger-server.
//
// The server is the core VoteLedger service that provides:
//
//   - HTTP API for weight queries, checkpoints, and token operations
//   - Operator-key protected mint and admin endpoints
//   - Prometheus metrics exposition
//
// Usage:
//
//	voteledger-server [flags]
//	voteledger-server --config /path/to/config.yaml
//
// The server loads configuration, opens the storage engine, and
// serves until interrupted.
package main
