package storage

import (
	"encoding/binary"
	"errors"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// Key layout (all keys are versioned under v1/):
//
//	v1/ckpt/<account>/<index BE u64>  -> encoded checkpoint
//	v1/ckptn/<account>                -> checkpoint count (BE u64)
//	v1/tok/owner/<id BE u64>          -> owner account
//	v1/tok/bal/<account>              -> token balance (BE u64)
//	v1/meta/supply                    -> total minted supply (BE u64)
//	v1/meta/step                      -> current step (BE u64, low 32 bits used)
const (
	prefixCheckpoint      = "v1/ckpt/"
	prefixCheckpointCount = "v1/ckptn/"
	prefixTokenOwner      = "v1/tok/owner/"
	prefixBalance         = "v1/tok/bal/"
	keyTotalSupply        = "v1/meta/supply"
	keyCurrentStep        = "v1/meta/step"
)

// checkpointKey returns the key of the checkpoint at index for account.
// The index is big-endian so entries sort in append order under Scan.
func checkpointKey(account domain.AccountID, index uint64) []byte {
	key := make([]byte, 0, len(prefixCheckpoint)+len(account)+1+8)
	key = append(key, prefixCheckpoint...)
	key = append(key, account...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint64(key, index)
}

// checkpointCountKey returns the key of the per-account checkpoint count.
func checkpointCountKey(account domain.AccountID) []byte {
	key := make([]byte, 0, len(prefixCheckpointCount)+len(account))
	key = append(key, prefixCheckpointCount...)
	key = append(key, account...)
	return key
}

// tokenOwnerKey returns the key of a token's owner record.
func tokenOwnerKey(id domain.TokenID) []byte {
	key := make([]byte, 0, len(prefixTokenOwner)+8)
	key = append(key, prefixTokenOwner...)
	return binary.BigEndian.AppendUint64(key, uint64(id))
}

// balanceKey returns the key of an account's token balance.
func balanceKey(account domain.AccountID) []byte {
	key := make([]byte, 0, len(prefixBalance)+len(account))
	key = append(key, prefixBalance...)
	key = append(key, account...)
	return key
}

// encodeUint64 encodes v as 8 big-endian bytes.
func encodeUint64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

// decodeUint64 decodes 8 big-endian bytes.
func decodeUint64(data []byte) (uint64, bool) {
	if len(data) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(data), true
}

// getUint64 reads a BE u64 at key within tx, returning 0 when absent.
func getUint64(tx Txn, key []byte) (uint64, error) {
	data, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	v, ok := decodeUint64(data)
	if !ok {
		return 0, domain.ErrCheckpointCorrupt.WithDetails("counter record has wrong size")
	}
	return v, nil
}
