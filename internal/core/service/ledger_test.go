package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/yndnr/voteledger-go/internal/core/domain"
	"github.com/yndnr/voteledger-go/internal/core/service"
	"github.com/yndnr/voteledger-go/internal/storage"
	"github.com/yndnr/voteledger-go/internal/storage/memory"
)

func newTestWeights(t *testing.T) (*service.WeightService, *storage.CheckpointStore) {
	t.Helper()

	kv := memory.New()
	t.Cleanup(func() { kv.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checkpoints := storage.NewCheckpointStore(kv, logger)
	return service.NewWeightService(checkpoints, logger), checkpoints
}

func TestWeightServiceNoHistory(t *testing.T) {
	ctx := context.Background()
	weights, _ := newTestWeights(t)

	ghost := domain.AccountID("ghost")

	got, err := weights.CurrentWeight(ctx, ghost)
	if err != nil {
		t.Fatalf("CurrentWeight failed: %v", err)
	}
	if got != 0 {
		t.Errorf("CurrentWeight = %d, want 0", got)
	}

	got, err = weights.WeightAt(ctx, ghost, 5, 10)
	if err != nil {
		t.Fatalf("WeightAt failed: %v", err)
	}
	if got != 0 {
		t.Errorf("WeightAt = %d, want 0", got)
	}
}

func TestWeightServiceFutureStep(t *testing.T) {
	ctx := context.Background()
	weights, checkpoints := newTestWeights(t)

	alice := domain.AccountID("alice")
	if err := checkpoints.Record(ctx, alice, true, 3); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := weights.WeightAt(ctx, alice, 8, 5)
	if err != nil {
		t.Fatalf("WeightAt failed: %v", err)
	}
	if got != 0 {
		t.Errorf("weight for step past current = %d, want 0", got)
	}
}

func TestWeightServiceInvalidAccount(t *testing.T) {
	ctx := context.Background()
	weights, _ := newTestWeights(t)

	for _, bad := range []domain.AccountID{"", "has space", domain.AccountID(string(make([]byte, 200)))} {
		if _, err := weights.CurrentWeight(ctx, bad); !errors.Is(err, domain.ErrInvalidAccount) {
			t.Errorf("CurrentWeight(%q): got %v, want ErrInvalidAccount", bad, err)
		}
		if _, err := weights.WeightAt(ctx, bad, 1, 1); !errors.Is(err, domain.ErrInvalidAccount) {
			t.Errorf("WeightAt(%q): got %v, want ErrInvalidAccount", bad, err)
		}
		if _, err := weights.History(ctx, bad); !errors.Is(err, domain.ErrInvalidAccount) {
			t.Errorf("History(%q): got %v, want ErrInvalidAccount", bad, err)
		}
	}
}

func TestWeightServiceHistory(t *testing.T) {
	ctx := context.Background()
	weights, checkpoints := newTestWeights(t)

	alice := domain.AccountID("alice")
	steps := []uint32{1, 1, 4, 9}
	for _, step := range steps {
		if err := checkpoints.Record(ctx, alice, true, step); err != nil {
			t.Fatalf("Record at step %d failed: %v", step, err)
		}
	}

	log, err := weights.History(ctx, alice)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(log) != len(steps) {
		t.Fatalf("History returned %d entries, want %d", len(log), len(steps))
	}
	for i, cp := range log {
		if cp.Step != steps[i] {
			t.Errorf("entry %d: step %d, want %d", i, cp.Step, steps[i])
		}
		if cp.Weight != uint32(i+1) {
			t.Errorf("entry %d: weight %d, want %d", i, cp.Weight, i+1)
		}
	}

	empty, err := weights.History(ctx, domain.AccountID("nobody"))
	if err != nil {
		t.Fatalf("History for unknown account failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("History for unknown account returned %d entries, want 0", len(empty))
	}
}

func TestWeightServiceDecrementBelowZero(t *testing.T) {
	ctx := context.Background()
	weights, checkpoints := newTestWeights(t)

	alice := domain.AccountID("alice")
	if err := checkpoints.Record(ctx, alice, true, 1); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := checkpoints.Record(ctx, alice, false, 2); err != nil {
		t.Fatalf("decrement to 0 failed: %v", err)
	}

	err := checkpoints.Record(ctx, alice, false, 3)
	if !errors.Is(err, domain.ErrInvalidDecrement) {
		t.Fatalf("decrement below 0: got %v, want ErrInvalidDecrement", err)
	}

	// The failed append must not have extended the log.
	got, err := weights.CurrentWeight(ctx, alice)
	if err != nil {
		t.Fatalf("CurrentWeight failed: %v", err)
	}
	if got != 0 {
		t.Errorf("CurrentWeight after failed decrement = %d, want 0", got)
	}
	log, err := weights.History(ctx, alice)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(log) != 2 {
		t.Errorf("History has %d entries after failed decrement, want 2", len(log))
	}
}
