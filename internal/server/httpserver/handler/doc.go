// Package handler provides HTTP request handlers for VoteLedger.
//
// This package implements the HTTP API endpoints for weight queries,
// token mint/transfer, and administrative operations:
//
//   - handler.go: routing, envelope writing, error mapping
//   - weight.go: weight query endpoints
//   - token.go: token ledger endpoints
//   - admin.go: step clock and status endpoints
//   - health.go: liveness/readiness
//   - types.go: request/response bodies
package handler
