package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// CheckpointStore owns the per-account checkpoint logs and their counts.
//
// The store is the only writer of both mappings; every mutation goes
// through Append, which touches only index count-1 (read) and index
// count (write). That discipline is what keeps the log append-only:
// no existing index is ever rewritten or removed.
type CheckpointStore struct {
	kv     KVEngine
	logger *slog.Logger
}

// NewCheckpointStore creates a checkpoint store over the given engine.
func NewCheckpointStore(kv KVEngine, logger *slog.Logger) *CheckpointStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckpointStore{kv: kv, logger: logger}
}

// Append writes the next checkpoint for account inside tx.
//
// The first append for an account must be an increase; it creates the
// log with entry {step, 1}. Later appends derive the new weight from
// the most recent entry: last+1 on increase, last-1 on decrease. A
// decrease when the last weight is already 0 is a caller contract
// violation and fails with ErrInvalidDecrement; nothing is written.
//
// step must be >= the step of the most recent entry. Callers pass a
// monotonically non-decreasing clock; equal steps are fine (several
// events in one step), regressions are rejected.
func (s *CheckpointStore) Append(tx Txn, account domain.AccountID, increase bool, step uint32) error {
	count, err := getUint64(tx, checkpointCountKey(account))
	if err != nil {
		return err
	}

	if count == 0 {
		if !increase {
			return domain.ErrInvalidDecrement.WithDetails(
				fmt.Sprintf("account %s has no weight history", account))
		}
		cp := domain.Checkpoint{Step: step, Weight: 1}
		if err := tx.Set(checkpointKey(account, 0), cp.Encode()); err != nil {
			return err
		}
		return tx.Set(checkpointCountKey(account), encodeUint64(1))
	}

	last, err := s.readCheckpoint(tx, account, count-1)
	if err != nil {
		return err
	}

	if step < last.Step {
		return domain.ErrStepRegression.WithDetails(
			fmt.Sprintf("step %d precedes last checkpoint step %d", step, last.Step))
	}

	var weight uint32
	if increase {
		weight = last.Weight + 1
	} else {
		if last.Weight == 0 {
			return domain.ErrInvalidDecrement.WithDetails(
				fmt.Sprintf("account %s already has weight 0", account))
		}
		weight = last.Weight - 1
	}

	cp := domain.Checkpoint{Step: step, Weight: weight}
	if err := tx.Set(checkpointKey(account, count), cp.Encode()); err != nil {
		return err
	}
	return tx.Set(checkpointCountKey(account), encodeUint64(count+1))
}

// Record appends a checkpoint in its own transaction.
//
// Balance-changing operations that must commit together with other
// state use Append inside a shared Update instead.
func (s *CheckpointStore) Record(ctx context.Context, account domain.AccountID, increase bool, step uint32) error {
	return s.kv.Update(ctx, func(tx Txn) error {
		return s.Append(tx, account, increase, step)
	})
}

// Count returns the number of checkpoints for account.
func (s *CheckpointStore) Count(ctx context.Context, account domain.AccountID) (uint64, error) {
	var count uint64
	err := s.kv.View(ctx, func(tx Txn) error {
		var err error
		count, err = getUint64(tx, checkpointCountKey(account))
		return err
	})
	return count, err
}

// MostRecent returns the newest checkpoint for account.
// The second return is false when the account has no history.
func (s *CheckpointStore) MostRecent(ctx context.Context, account domain.AccountID) (domain.Checkpoint, bool, error) {
	var (
		cp    domain.Checkpoint
		found bool
	)
	err := s.kv.View(ctx, func(tx Txn) error {
		count, err := getUint64(tx, checkpointCountKey(account))
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		cp, err = s.readCheckpoint(tx, account, count-1)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return cp, found, err
}

// AtStep returns the checkpoint with the greatest step not exceeding
// wanted (the floor query), or found=false when no such checkpoint
// exists: the query is in the future (wanted > current), the account
// has no history, or wanted predates the first checkpoint.
//
// Runs a binary search over [0, count-1] in O(log n). Duplicate steps
// are fine: any entry at the wanted step answers the query.
func (s *CheckpointStore) AtStep(ctx context.Context, account domain.AccountID, wanted, current uint32) (domain.Checkpoint, bool, error) {
	if wanted > current {
		return domain.Checkpoint{}, false, nil
	}

	var (
		cp    domain.Checkpoint
		found bool
	)
	err := s.kv.View(ctx, func(tx Txn) error {
		count, err := getUint64(tx, checkpointCountKey(account))
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}

		first, err := s.readCheckpoint(tx, account, 0)
		if err != nil {
			return err
		}
		if first.Step > wanted {
			return nil
		}

		lower, upper := uint64(0), count-1

		// The midpoint is biased toward upper: when the remaining gap
		// is 1 the probe must land on upper so a single comparison
		// closes the range, otherwise the loop never terminates.
		for upper > lower {
			center := upper - (upper-lower)/2

			probe, err := s.readCheckpoint(tx, account, center)
			if err != nil {
				return err
			}

			switch {
			case probe.Step == wanted:
				cp, found = probe, true
				return nil
			case probe.Step < wanted:
				lower = center
			default:
				upper = center - 1
			}
		}

		cp, err = s.readCheckpoint(tx, account, lower)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return cp, found, err
}

// Walk visits every checkpoint of an account in append order.
// Callback returns false to stop early.
func (s *CheckpointStore) Walk(ctx context.Context, account domain.AccountID, fn func(cp domain.Checkpoint) bool) error {
	return s.kv.View(ctx, func(tx Txn) error {
		count, err := getUint64(tx, checkpointCountKey(account))
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			cp, err := s.readCheckpoint(tx, account, i)
			if err != nil {
				return err
			}
			if !fn(cp) {
				return nil
			}
		}
		return nil
	})
}

// readCheckpoint reads the checkpoint at index, which the count says
// must exist. A missing or undecodable record means the count and the
// log disagree; that is a storage-consistency fault, so the error
// aborts the enclosing operation instead of yielding a default.
func (s *CheckpointStore) readCheckpoint(tx Txn, account domain.AccountID, index uint64) (domain.Checkpoint, error) {
	data, err := tx.Get(checkpointKey(account, index))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			s.logger.Error("checkpoint missing below count",
				"account", account.String(),
				"index", index)
			return domain.Checkpoint{}, domain.ErrCheckpointCorrupt.WithDetails(
				fmt.Sprintf("account %s index %d", account, index))
		}
		return domain.Checkpoint{}, err
	}
	return domain.DecodeCheckpoint(data)
}
