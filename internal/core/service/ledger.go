package service

import (
	"context"
	"log/slog"

	"github.com/yndnr/voteledger-go/internal/core/domain"
	"github.com/yndnr/voteledger-go/internal/storage"
)

// WeightService exposes the voting-weight queries and the update hook
// the token ledger calls when a balance changes.
//
// Queries never fail on absent data: an account with no history, a
// future step, or a step before the first checkpoint all answer 0.
// Storage-consistency faults do propagate; they are not "no data".
type WeightService struct {
	checkpoints *storage.CheckpointStore
	logger      *slog.Logger
}

// NewWeightService creates a WeightService over the checkpoint store.
func NewWeightService(checkpoints *storage.CheckpointStore, logger *slog.Logger) *WeightService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeightService{
		checkpoints: checkpoints,
		logger:      logger,
	}
}

// CurrentWeight returns the account's present voting weight, 0 when
// the account has no checkpoint history.
func (s *WeightService) CurrentWeight(ctx context.Context, account domain.AccountID) (uint32, error) {
	if err := account.Validate(); err != nil {
		return 0, err
	}

	cp, found, err := s.checkpoints.MostRecent(ctx, account)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return cp.Weight, nil
}

// WeightAt returns the account's voting weight as of step, evaluated
// against now (the host's current step). Returns 0 for a future step,
// an account with no history, or a step preceding the first checkpoint.
func (s *WeightService) WeightAt(ctx context.Context, account domain.AccountID, step, now uint32) (uint32, error) {
	if err := account.Validate(); err != nil {
		return 0, err
	}

	cp, found, err := s.checkpoints.AtStep(ctx, account, step, now)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return cp.Weight, nil
}

// History returns the full checkpoint log for an account, oldest
// first. Intended for inspection endpoints, not for weight queries.
func (s *WeightService) History(ctx context.Context, account domain.AccountID) ([]domain.Checkpoint, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}

	count, err := s.checkpoints.Count(ctx, account)
	if err != nil {
		return nil, err
	}

	log := make([]domain.Checkpoint, 0, count)
	err = s.checkpoints.Walk(ctx, account, func(cp domain.Checkpoint) bool {
		log = append(log, cp)
		return true
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

// ApplyMint appends the recipient's weight-increase checkpoint inside
// tx. Called by the token ledger after the mint itself has been staged
// in the same transaction.
func (s *WeightService) ApplyMint(tx storage.Txn, recipient domain.AccountID, step uint32) error {
	return s.checkpoints.Append(tx, recipient, true, step)
}

// ApplyTransfer appends the sender's decrease and the recipient's
// increase inside tx, in that order. The order only fixes the
// insertion order of same-step entries; the floor search tolerates
// ties either way.
func (s *WeightService) ApplyTransfer(tx storage.Txn, from, to domain.AccountID, step uint32) error {
	if err := s.checkpoints.Append(tx, from, false, step); err != nil {
		return err
	}
	return s.checkpoints.Append(tx, to, true, step)
}
