// Package confloader provides configuration loading mechanism.
//
// It implements a flexible configuration loader on top of koanf.
//
// Features:
//
//   - Multiple sources: files, environment variables, maps
//   - Watch support: automatic reload on config file changes
//   - Type safety: unmarshaling into typed structs
//
// Priority (highest to lowest):
//
//  1. Command-line flags (loaded as maps by the CLI layer)
//  2. Environment variables (VOTELEDGER_*)
//  3. Configuration file (YAML)
//  4. Default values
package confloader
