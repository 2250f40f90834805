// Package main provides the entry point for voteledger-cli.
//
// The CLI tool provides command-line access to a voteledger-server:
//
//   - Weight queries (current, historical, full checkpoint log)
//   - Token operations (mint, transfer, lookup, supply)
//   - Step clock administration
//   - Operator key generation
//
// Usage:
//
//	voteledger-cli [command] [flags]
//	voteledger-cli weight alice --step 40
//	voteledger-cli mint alice -k vlop-... -K vlos_...
//
// The CLI supports both single-command mode and an interactive REPL.
package main
