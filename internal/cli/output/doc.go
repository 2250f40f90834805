// Package output provides output formatting for voteledger-cli.
//
// Three formats are supported: an aligned text table (the default),
// indented JSON, and YAML. Commands hand their result to a Formatter
// and the user picks the format with the --output flag.
package output
