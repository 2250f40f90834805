// Package logger provides structured logging for VoteLedger.
//
// It configures log/slog for JSON (or text) output with automatic
// redaction of sensitive values:
//
//   - logger.go: handler construction and level control
//   - context.go: request ID propagation through context.Context
//   - redact.go: sensitive data masking (vlos_ secrets, credential keys)
package logger
