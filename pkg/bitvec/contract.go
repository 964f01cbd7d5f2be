// Package bitvec provides the succinct bit-vector family: read-only
// contracts (BitVec, MultiBitVec) implemented by Dense, Sparse, RLE, and the
// Multi/OfMulti adapters, plus their builders.
package bitvec

import "github.com/xflash-panda/succinct/pkg/bitutil"

// BitVec is the read-only contract shared by every bit-vector representation
// without multiplicity: each bit position is present 0 or 1 times.
type BitVec interface {
	// Rank1 returns the number of 1-bits at positions strictly less than
	// bitIndex. It is total: indices at or beyond UniverseSize saturate at
	// NumOnes.
	Rank1(bitIndex uint32) uint32
	// Rank0 returns the number of 0-bits at positions strictly less than
	// bitIndex.
	Rank0(bitIndex uint32) uint32
	// Ranks returns (Rank0(bitIndex), Rank1(bitIndex)) together, which some
	// representations can compute more cheaply as a pair.
	Ranks(bitIndex uint32) (rank0, rank1 uint32)
	// Select1 returns the bit index of the n-th (0-indexed) 1-bit, or false
	// if n is at or beyond NumOnes.
	Select1(n uint32) (uint32, bool)
	// Select0 returns the bit index of the n-th (0-indexed) 0-bit, or false
	// if n is at or beyond NumZeros.
	Select0(n uint32) (uint32, bool)
	// Get returns the value (0 or 1) of the bit at bitIndex.
	Get(bitIndex uint32) uint32
	// UniverseSize returns the number of addressable bit positions.
	UniverseSize() uint32
	// NumOnes returns the number of 1-bits.
	NumOnes() uint32
	// NumZeros returns the number of 0-bits.
	NumZeros() uint32
	// Rank1Batch rewrites a slice of sorted bit indices in place with their
	// Rank1 values.
	Rank1Batch(bitIndices []uint32)
}

// MultiBitVec is the read-only contract for representations that allow
// 1-bits to carry a multiplicity (count) greater than one; 0-bits may not
// repeat.
type MultiBitVec interface {
	// Get returns the multiplicity of the bit at bitIndex.
	Get(bitIndex uint32) uint32
	// Rank1 returns the number of 1-bits (counted with multiplicity) at
	// positions strictly less than bitIndex.
	Rank1(bitIndex uint32) uint32
	// Select1 returns the bit index of the n-th (0-indexed) 1-bit, counted
	// with multiplicity, or false if n is at or beyond NumOnes.
	Select1(n uint32) (uint32, bool)
	// UniverseSize returns the number of addressable bit positions.
	UniverseSize() uint32
	// NumOnes returns the total multiplicity of all 1-bits, which may
	// exceed UniverseSize.
	NumOnes() uint32
	// NumZeros returns the number of unoccupied bit positions.
	NumZeros() uint32
	// NumUniqueOnes returns the number of distinct occupied bit positions.
	NumUniqueOnes() uint32
	// Rank1Batch rewrites a slice of sorted bit indices in place with their
	// Rank1 values.
	Rank1Batch(bitIndices []uint32)
}

// Builder constructs a BitVec by accepting 1-bit positions in any order.
type Builder interface {
	// One marks bitIndex as a 1-bit. Idempotent: setting the same index more
	// than once has no additional effect.
	One(bitIndex uint32)
	// Build freezes the builder into an immutable BitVec.
	Build() BitVec
}

// MultiBuilder constructs a MultiBitVec by accepting (position, count) pairs
// in any order.
type MultiBuilder interface {
	// Ones adds count occurrences of a 1-bit at bitIndex.
	Ones(bitIndex uint32, count uint32)
	// Build freezes the builder into an immutable MultiBitVec.
	Build() MultiBitVec
}

// getFromRank1 implements BitVec.Get generically from two Rank1 calls. Every
// concrete BitVec in this package delegates its Get method to this helper
// unless it can do better.
func getFromRank1(v BitVec, bitIndex uint32) uint32 {
	if bitIndex >= v.UniverseSize() {
		panic("bitvec: Get index out of range")
	}
	return v.Rank1(bitIndex+1) - v.Rank1(bitIndex)
}

// multiGetFromRank1 implements MultiBitVec.Get generically from two Rank1
// calls.
func multiGetFromRank1(v MultiBitVec, bitIndex uint32) uint32 {
	if bitIndex >= v.UniverseSize() {
		panic("bitvec: Get index out of range")
	}
	return v.Rank1(bitIndex+1) - v.Rank1(bitIndex)
}

// rank1BatchDefault implements Rank1Batch by calling Rank1 once per index.
// Representations that can exploit sorted adjacency may override this.
func rank1BatchDefault(v BitVec, bitIndices []uint32) {
	for i, idx := range bitIndices {
		bitIndices[i] = v.Rank1(idx)
	}
}

func multiRank1BatchDefault(v MultiBitVec, bitIndices []uint32) {
	for i, idx := range bitIndices {
		bitIndices[i] = v.Rank1(idx)
	}
}

// selectBySearch implements Select1/Select0 generically via PartitionPoint
// over Rank1/Rank0, for representations without a sampled select index.
// pred(i) should be true for all i before the n-th matching bit, in the
// Rust original's `rank <= n` sense.
func selectBySearch(universeSize uint32, count uint32, n uint32, rankAt func(uint32) uint32) (uint32, bool) {
	if n >= count {
		return 0, false
	}
	bitIndex := bitutil.PartitionPoint(universeSize, func(i uint32) bool {
		return rankAt(i) <= n
	})
	return bitIndex - 1, true
}
