// Package repl provides the interactive mode for voteledger-cli.
//
// Lines read from the terminal are split into arguments and handed to
// the CLI application, so every regular command works unchanged inside
// the session. Command history persists across sessions.
package repl
