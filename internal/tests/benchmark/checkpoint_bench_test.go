package benchmark

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkCheckpointRecord measures appending checkpoints to a single
// account log. The log grows with b.N, so later iterations append to a
// longer log.
func BenchmarkCheckpointRecord(b *testing.B) {
	env := newBench(b)
	ctx := context.Background()
	account := accountName(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := env.checkpoints.Record(ctx, account, true, uint32(i+1)); err != nil {
			b.Fatalf("record: %v", err)
		}
	}
}

// BenchmarkWeightAt measures the floor binary search over prefilled
// checkpoint logs of varying sizes. Queried steps cycle through the
// full range so every search depth is exercised.
func BenchmarkWeightAt(b *testing.B) {
	for _, size := range LogSizes {
		b.Run(fmt.Sprintf("log-%d", size), func(b *testing.B) {
			env := newBench(b)
			ctx := context.Background()
			account := accountName(0)
			fillLog(b, env, account, size)
			now := uint32(size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				step := uint32(i%size + 1)
				if _, err := env.weights.WeightAt(ctx, account, step, now); err != nil {
					b.Fatalf("weight at %d: %v", step, err)
				}
			}
		})
	}
}

// BenchmarkCurrentWeight measures reading the latest checkpoint.
func BenchmarkCurrentWeight(b *testing.B) {
	for _, size := range LogSizes {
		b.Run(fmt.Sprintf("log-%d", size), func(b *testing.B) {
			env := newBench(b)
			ctx := context.Background()
			account := accountName(0)
			fillLog(b, env, account, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := env.weights.CurrentWeight(ctx, account); err != nil {
					b.Fatalf("current weight: %v", err)
				}
			}
		})
	}
}

// BenchmarkHistory measures a full walk of the checkpoint log.
func BenchmarkHistory(b *testing.B) {
	for _, size := range LogSizes {
		b.Run(fmt.Sprintf("log-%d", size), func(b *testing.B) {
			env := newBench(b)
			ctx := context.Background()
			account := accountName(0)
			fillLog(b, env, account, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				entries, err := env.weights.History(ctx, account)
				if err != nil {
					b.Fatalf("history: %v", err)
				}
				if len(entries) != size {
					b.Fatalf("history returned %d entries, want %d", len(entries), size)
				}
			}
		})
	}
}
