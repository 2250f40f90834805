package storage

import (
	"context"
	"fmt"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// StepClock is the persisted, forward-only time-step counter.
//
// The host environment decides what a step means (a block height, a
// logical tick); the clock only guarantees that the value survives
// restarts and never moves backwards.
type StepClock struct {
	kv KVEngine
}

// NewStepClock creates a step clock over the given engine.
func NewStepClock(kv KVEngine) *StepClock {
	return &StepClock{kv: kv}
}

// Current returns the current step. A fresh store starts at 0.
func (c *StepClock) Current(ctx context.Context) (uint32, error) {
	var step uint32
	err := c.kv.View(ctx, func(tx Txn) error {
		v, err := getUint64(tx, []byte(keyCurrentStep))
		if err != nil {
			return err
		}
		step = uint32(v)
		return nil
	})
	return step, err
}

// Advance moves the clock forward to the given step.
// Setting the current step again is a no-op; regressions are rejected.
func (c *StepClock) Advance(ctx context.Context, to uint32) error {
	return c.kv.Update(ctx, func(tx Txn) error {
		v, err := getUint64(tx, []byte(keyCurrentStep))
		if err != nil {
			return err
		}
		cur := uint32(v)
		if to < cur {
			return domain.ErrStepRegression.WithDetails(
				fmt.Sprintf("current step is %d, refusing to move to %d", cur, to))
		}
		if to == cur {
			return nil
		}
		return tx.Set([]byte(keyCurrentStep), encodeUint64(uint64(to)))
	})
}

// Tick advances the clock by one step and returns the new value.
func (c *StepClock) Tick(ctx context.Context) (uint32, error) {
	var next uint32
	err := c.kv.Update(ctx, func(tx Txn) error {
		v, err := getUint64(tx, []byte(keyCurrentStep))
		if err != nil {
			return err
		}
		next = uint32(v) + 1
		return tx.Set([]byte(keyCurrentStep), encodeUint64(uint64(next)))
	})
	return next, err
}
