// Package service provides the domain services for VoteLedger.
//
// WeightService answers the two weight queries (current, point in
// time) and applies checkpoint appends when balances change.
// TokenService is the token ledger: it owns mint and transfer and
// invokes the weight hook inside the same storage transaction, so
// ownership and weight history always commit together.
// AuthService verifies operator keys for mint and admin calls.
package service
