// Package proptest is the randomized-equivalence test harness backing
// cmd/proptest: it generates random bit patterns (with optional
// multiplicities), builds every bitvec representation over them, and checks
// that they agree with each other and with an independent baseline on every
// rank/select/get query.
package proptest

import (
	"sort"

	"github.com/xflash-panda/succinct/pkg/bitutil"
)

// SortedArrayBitVec is a deliberately naive sorted-array bit-vector (binary
// search for Rank1 and Get, linear scans for Rank0 and Select0), kept
// entirely independent of the sampled/packed representations in package
// bitvec, so it can serve as an oracle for them. Its ones slice holds one
// entry per occurrence, so a position with multiplicity k appears k times;
// this lets a single type stand in as the equivalence baseline for both
// BitVec and MultiBitVec representations.
type SortedArrayBitVec struct {
	ones             []uint32
	universeSize     uint32
	numUniqueOnes    uint32
	numUniqueZeros   uint32
}

// SortedArrayBitVecBuilder accumulates (position, count) pairs in any order
// and sorts them at Build time.
type SortedArrayBitVecBuilder struct {
	universeSize uint32
	ones         []uint32
}

// NewSortedArrayBitVecBuilder starts a builder over a fixed universe size.
func NewSortedArrayBitVecBuilder(universeSize uint32) *SortedArrayBitVecBuilder {
	return &SortedArrayBitVecBuilder{universeSize: universeSize}
}

// One marks bitIndex as a single-occurrence 1-bit.
func (b *SortedArrayBitVecBuilder) One(bitIndex uint32) {
	b.Ones(bitIndex, 1)
}

// Ones adds count occurrences of a 1-bit at bitIndex.
func (b *SortedArrayBitVecBuilder) Ones(bitIndex uint32, count uint32) {
	if bitIndex >= b.universeSize {
		panic("proptest: SortedArrayBitVecBuilder index out of range")
	}
	for i := uint32(0); i < count; i++ {
		b.ones = append(b.ones, bitIndex)
	}
}

// Build freezes the builder into a SortedArrayBitVec.
func (b *SortedArrayBitVecBuilder) Build() *SortedArrayBitVec {
	sort.Slice(b.ones, func(i, j int) bool { return b.ones[i] < b.ones[j] })

	var numUniqueOnes uint32
	var prev uint32
	hasPrev := false
	for _, cur := range b.ones {
		if !hasPrev || cur != prev {
			numUniqueOnes++
		}
		prev, hasPrev = cur, true
	}

	return &SortedArrayBitVec{
		ones:           b.ones,
		universeSize:   b.universeSize,
		numUniqueOnes:  numUniqueOnes,
		numUniqueZeros: b.universeSize - numUniqueOnes,
	}
}

// Rank1 returns the number of 1-bit occurrences at positions strictly less
// than bitIndex.
func (v *SortedArrayBitVec) Rank1(bitIndex uint32) uint32 {
	return uint32(sort.Search(len(v.ones), func(i int) bool { return v.ones[i] >= bitIndex }))
}

// Rank0 returns the number of 0-bits at positions strictly less than
// bitIndex. Zeros never repeat, so this counts unique non-one positions.
func (v *SortedArrayBitVec) Rank0(bitIndex uint32) uint32 {
	return bitIndex - v.uniqueOnesBelow(bitIndex)
}

// Ranks returns (Rank0(bitIndex), Rank1(bitIndex)); for this baseline they
// only coincide when there is no multiplicity, so Ranks is provided
// honestly rather than reusing Rank1's occurrence count for both.
func (v *SortedArrayBitVec) Ranks(bitIndex uint32) (uint32, uint32) {
	return v.Rank0(bitIndex), v.Rank1(bitIndex)
}

func (v *SortedArrayBitVec) uniqueOnesBelow(bitIndex uint32) uint32 {
	idx := sort.Search(len(v.ones), func(i int) bool { return v.ones[i] >= bitIndex })
	var unique uint32
	var prev uint32
	hasPrev := false
	for _, cur := range v.ones[:idx] {
		if !hasPrev || cur != prev {
			unique++
		}
		prev, hasPrev = cur, true
	}
	return unique
}

// Select1 returns the bit index of the n-th (0-indexed) 1-bit occurrence.
func (v *SortedArrayBitVec) Select1(n uint32) (uint32, bool) {
	if n >= uint32(len(v.ones)) {
		return 0, false
	}
	return v.ones[n], true
}

// Select0 returns the bit index of the n-th (0-indexed) 0-bit, found by
// binary search over the number of unique ones below each candidate.
func (v *SortedArrayBitVec) Select0(n uint32) (uint32, bool) {
	if n >= v.numUniqueZeros {
		return 0, false
	}
	bitIndex := bitutil.PartitionPoint(v.universeSize, func(i uint32) bool {
		return v.Rank0(i) <= n
	})
	return bitIndex - 1, true
}

// Get returns the multiplicity (for MultiBitVec parity) or bit value (for
// BitVec parity, since a non-multiplicity position's multiplicity is 0 or
// 1) of bitIndex.
func (v *SortedArrayBitVec) Get(bitIndex uint32) uint32 {
	if bitIndex >= v.universeSize {
		panic("proptest: SortedArrayBitVec Get index out of range")
	}
	lo := sort.Search(len(v.ones), func(i int) bool { return v.ones[i] >= bitIndex })
	hi := sort.Search(len(v.ones), func(i int) bool { return v.ones[i] > bitIndex })
	return uint32(hi - lo)
}

// UniverseSize returns the number of addressable bit positions.
func (v *SortedArrayBitVec) UniverseSize() uint32 { return v.universeSize }

// NumOnes returns the total occurrence count of 1-bits (with multiplicity).
func (v *SortedArrayBitVec) NumOnes() uint32 { return uint32(len(v.ones)) }

// NumZeros returns the number of unoccupied positions.
func (v *SortedArrayBitVec) NumZeros() uint32 { return v.numUniqueZeros }

// NumUniqueOnes returns the number of distinct occupied positions.
func (v *SortedArrayBitVec) NumUniqueOnes() uint32 { return v.numUniqueOnes }

// Rank1Batch rewrites a slice of sorted bit indices in place with their
// Rank1 values.
func (v *SortedArrayBitVec) Rank1Batch(bitIndices []uint32) {
	for i, idx := range bitIndices {
		bitIndices[i] = v.Rank1(idx)
	}
}
