// Package storage provides persistence for the VoteLedger checkpoint
// ledger and token ownership state.
//
// The package is layered:
//
//   - kv.go: the KVEngine interface, a minimal transactional keyed
//     get/insert abstraction. Any engine providing it suffices.
//   - badger.go: the durable KVEngine built on Badger v3.
//   - checkpoint.go: the CheckpointStore, the append-only per-account
//     checkpoint log with its point-in-time floor search.
//   - token.go: keys and accessors for token ownership and supply.
//   - clock.go: the persisted, forward-only step clock.
//
// The sibling package storage/memory provides an in-memory KVEngine
// used by tests and by the `engine: memory` configuration.
package storage
