// Package command provides CLI command definitions for voteledger-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode and an interactive REPL.
package command
