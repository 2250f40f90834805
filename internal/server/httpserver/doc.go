// Package httpserver provides the HTTP server for VoteLedger.
//
// This package implements the external API using stdlib net/http:
//
//   - Weight endpoints: /v1/accounts/{id}/weight, /v1/accounts/{id}/weight/at
//   - Token endpoints: /v1/tokens/{id}, /v1/tokens/mint, /v1/tokens/{id}/transfer
//   - Supply endpoint: /v1/supply
//   - Admin endpoints: /admin/v1/*
//   - Health endpoints: /health, /ready, /metrics
//
// Features:
//
//   - Middleware chain: RequestID, Recover, RateLimit, Audit, Auth
//   - Graceful shutdown with configurable timeout
//   - Prometheus metrics integration
package httpserver
