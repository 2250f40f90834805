// Package domain defines the core domain models for VoteLedger.
//
// The central concept is the checkpoint: an immutable (step, weight)
// record appended to a per-account log whenever the account's token
// balance changes. Past voting weights stay reconstructable because
// the log is append-only and ordered by step.
//
// The package also defines the account and token identifiers, the
// events published after balance changes, the structured DomainError
// taxonomy, and operator keys used to authorize minting.
package domain
