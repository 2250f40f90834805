// Package memory provides the in-memory KVEngine for VoteLedger.
//
// It backs the `engine: memory` configuration and the storage and
// service test suites. Data does not survive a restart.
package memory
