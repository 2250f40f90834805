// Package config holds the voteledger-cli configuration file.
//
// The file stores the default server address, output format, and the
// operator credential so they do not have to be passed on every
// invocation. It lives at ~/.voteledger/cli.yaml and is written with
// mode 0600. The operator secret is encrypted at rest with a
// machine-local keyring file kept next to the config.
package config
