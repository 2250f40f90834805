package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/voteledger-go/internal/storage"
	"github.com/yndnr/voteledger-go/pkg/cmap"
)

// Engine implements storage.KVEngine with a sharded in-memory map.
//
// Reads go straight to the sharded map. Writers are serialized by a
// single mutex, matching the ledger's single-writer execution model;
// an Update stages its writes and applies them only when the
// transaction function succeeds.
type Engine struct {
	data *cmap.Map[string, []byte]

	// writeMu serializes Update transactions.
	writeMu sync.Mutex

	closed atomic.Bool
}

// New creates an empty in-memory engine.
func New() *Engine {
	return &Engine{
		data: cmap.New[string, []byte](),
	}
}

// memTxn is a transaction over the engine.
//
// staged holds pending writes; a nil value marks a delete. staged is
// nil for read-only transactions.
type memTxn struct {
	engine *Engine
	staged map[string][]byte
}

func (t *memTxn) Get(key []byte) ([]byte, error) {
	k := string(key)

	if t.staged != nil {
		if v, ok := t.staged[k]; ok {
			if v == nil {
				return nil, storage.ErrKeyNotFound
			}
			return append([]byte(nil), v...), nil
		}
	}

	v, ok := t.engine.data.Get(k)
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (t *memTxn) Set(key, value []byte) error {
	if t.staged == nil {
		return storage.ErrClosed
	}
	t.staged[string(key)] = append([]byte(nil), value...)
	return nil
}

func (t *memTxn) Delete(key []byte) error {
	if t.staged == nil {
		return storage.ErrClosed
	}
	t.staged[string(key)] = nil
	return nil
}

// View runs a read-only transaction.
func (e *Engine) View(ctx context.Context, fn func(tx storage.Txn) error) error {
	if e.closed.Load() {
		return storage.ErrClosed
	}
	return fn(&memTxn{engine: e})
}

// Update runs a read-write transaction. Writes are staged and applied
// only when fn returns nil.
func (e *Engine) Update(ctx context.Context, fn func(tx storage.Txn) error) error {
	if e.closed.Load() {
		return storage.ErrClosed
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	tx := &memTxn{engine: e, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}

	for k, v := range tx.staged {
		if v == nil {
			e.data.Delete(k)
		} else {
			e.data.Set(k, v)
		}
	}
	return nil
}

// Get retrieves a value by key.
func (e *Engine) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := e.View(ctx, func(tx storage.Txn) error {
		var err error
		value, err = tx.Get(key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a key-value pair.
func (e *Engine) Set(ctx context.Context, key, value []byte) error {
	return e.Update(ctx, func(tx storage.Txn) error {
		return tx.Set(key, value)
	})
}

// Scan iterates over keys with a given prefix in lexicographic order.
func (e *Engine) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	if e.closed.Load() {
		return storage.ErrClosed
	}

	p := string(prefix)
	keys := make([]string, 0)
	e.data.Range(func(k string, _ []byte) bool {
		if strings.HasPrefix(k, p) {
			keys = append(keys, k)
		}
		return true
	})
	sort.Strings(keys)

	for _, k := range keys {
		v, ok := e.data.Get(k)
		if !ok {
			continue
		}
		if !fn([]byte(k), v) {
			break
		}
	}
	return nil
}

// Stats returns storage statistics.
func (e *Engine) Stats(ctx context.Context) (*storage.KVStats, error) {
	var size uint64
	e.data.Range(func(k string, v []byte) bool {
		size += uint64(len(k) + len(v))
		return true
	})
	return &storage.KVStats{
		TotalKeys:  uint64(e.data.Count()),
		TotalSize:  size,
		LastGCTime: time.Now().UnixMilli(),
	}, nil
}

// GC is a no-op for the in-memory engine.
func (e *Engine) GC(ctx context.Context) (uint64, error) {
	return 0, nil
}

// Close shuts down the engine. Further operations fail with ErrClosed.
func (e *Engine) Close() error {
	e.closed.Store(true)
	return nil
}
