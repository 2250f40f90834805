package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/yndnr/voteledger-go/internal/core/domain"
	"github.com/yndnr/voteledger-go/internal/core/service"
	"github.com/yndnr/voteledger-go/internal/storage"
	"github.com/yndnr/voteledger-go/internal/storage/memory"
)

// LogSizes defines the per-account checkpoint log sizes for the
// search benchmarks.
var LogSizes = []int{10, 100, 1000, 10000, 100000}

// bench bundles a memory-backed ledger for benchmarking.
type bench struct {
	kv          *memory.Engine
	checkpoints *storage.CheckpointStore
	weights     *service.WeightService
	tokens      *service.TokenService
}

func newBench(b *testing.B) *bench {
	b.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := memory.New()
	b.Cleanup(func() { kv.Close() })

	checkpoints := storage.NewCheckpointStore(kv, logger)
	weights := service.NewWeightService(checkpoints, logger)
	tokens := service.NewTokenService(kv, storage.NewTokenStore(kv), weights,
		&service.TokenServiceConfig{MaxSupply: 1 << 62}, logger)

	return &bench{
		kv:          kv,
		checkpoints: checkpoints,
		weights:     weights,
		tokens:      tokens,
	}
}

// accountName returns a deterministic account ID.
func accountName(i int) domain.AccountID {
	return domain.AccountID(fmt.Sprintf("account-%06d", i))
}

// fillLog appends n increase checkpoints for account, one per step.
func fillLog(b *testing.B, env *bench, account domain.AccountID, n int) {
	b.Helper()
	ctx := context.Background()
	for step := 1; step <= n; step++ {
		if err := env.checkpoints.Record(ctx, account, true, uint32(step)); err != nil {
			b.Fatalf("record checkpoint %d: %v", step, err)
		}
	}
}
