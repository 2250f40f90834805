package domain

import "encoding/binary"

// EncodedCheckpointSize is the size of a checkpoint on disk:
// step (4 bytes) + weight (4 bytes), both big-endian.
const EncodedCheckpointSize = 8

// Checkpoint is an immutable record stating that, as of Step, the
// account's voting weight became Weight.
//
// A per-account log of checkpoints is ordered by append index with
// non-decreasing Step values. Two entries may share the same Step when
// several balance changes land in one step; the floor search tolerates
// this because it only needs some checkpoint at or before the queried
// step, not a unique one.
type Checkpoint struct {
	// Step is the time step (block height or logical clock tick)
	// at which the weight took effect.
	Step uint32 `json:"step"`

	// Weight is the voting weight as of Step.
	Weight uint32 `json:"weight"`
}

// Encode serializes the checkpoint to its fixed 8-byte form.
func (c Checkpoint) Encode() []byte {
	buf := make([]byte, EncodedCheckpointSize)
	binary.BigEndian.PutUint32(buf[0:4], c.Step)
	binary.BigEndian.PutUint32(buf[4:8], c.Weight)
	return buf
}

// DecodeCheckpoint deserializes a checkpoint from its 8-byte form.
func DecodeCheckpoint(data []byte) (Checkpoint, error) {
	if len(data) != EncodedCheckpointSize {
		return Checkpoint{}, ErrCheckpointCorrupt.WithDetails("checkpoint record has wrong size")
	}
	return Checkpoint{
		Step:   binary.BigEndian.Uint32(data[0:4]),
		Weight: binary.BigEndian.Uint32(data[4:8]),
	}, nil
}
