package bitvec

import (
	"slices"

	"github.com/xflash-panda/succinct/pkg/bitutil"
)

// RLE is a run-length bit-vector: the 1-positions are interpreted as
// alternating (zeros, ones) runs, each run ending in a 1, and coalesced
// per the rules in RLEBuilder. Two uniqueness-checked Sparse bit-vectors (z,
// zo) store cumulative zeros and cumulative (zeros+ones) per run. RLE
// implements BitVec (no multiplicity) and supports universes up to 2^32-2.
type RLE struct {
	z        *OfMulti
	zo       *OfMulti
	numZeros uint32
	numOnes  uint32
}

// AlignedRank0 is a cheaper form of Rank0 valid only when bitIndex falls
// exactly on a 01-run boundary (the start of a run's 1-portion, or the
// universe size).
func (r *RLE) AlignedRank0(bitIndex uint32) uint32 {
	if bitIndex >= r.UniverseSize() {
		return r.numZeros
	}
	j := r.zo.Rank1(bitIndex)
	v, ok := r.z.Select1(j)
	if !ok {
		panic("bitvec: RLE.AlignedRank0 called off a run boundary")
	}
	return v
}

// AlignedRank1 is the Rank1 counterpart of AlignedRank0.
func (r *RLE) AlignedRank1(bitIndex uint32) uint32 {
	if bitIndex >= r.UniverseSize() {
		return r.numOnes
	}
	return bitIndex - r.AlignedRank0(bitIndex)
}

func (r *RLE) Rank1(bitIndex uint32) uint32 {
	if bitIndex >= r.UniverseSize() {
		return r.numOnes
	}

	j := r.zo.Rank1(bitIndex)

	numCumulativeZeros, _ := r.z.Select1(j)
	var numPrecedingZeros uint32
	if j > 0 {
		numPrecedingZeros, _ = r.z.Select1(j - 1)
	}
	numZerosInBlock := numCumulativeZeros - numPrecedingZeros

	var blockStart uint32
	if j > 0 {
		blockStart, _ = r.zo.Select1(j - 1)
	}
	numPrecedingOnes := blockStart - numPrecedingZeros
	onesStart := blockStart + numZerosInBlock

	var adjustment uint32
	if bitIndex > onesStart {
		adjustment = bitIndex - onesStart
	}

	return numPrecedingOnes + adjustment
}

func (r *RLE) Rank0(bitIndex uint32) uint32 {
	if bitIndex >= r.UniverseSize() {
		return r.numZeros
	}
	return bitIndex - r.Rank1(bitIndex)
}

func (r *RLE) Ranks(bitIndex uint32) (uint32, uint32) {
	if bitIndex >= r.UniverseSize() {
		return r.numZeros, r.numOnes
	}
	r1 := r.Rank1(bitIndex)
	return bitIndex - r1, r1
}

func (r *RLE) Select1(n uint32) (uint32, bool) {
	if n >= r.numOnes {
		return 0, false
	}

	numRuns := r.z.NumOnes()
	j := bitutil.PartitionPoint(numRuns, func(i uint32) bool {
		zoV, _ := r.zo.Select1(i)
		zV, _ := r.z.Select1(i)
		return zoV-zV <= n
	})

	numCumulativeZeros, _ := r.z.Select1(j)
	return numCumulativeZeros + n, true
}

func (r *RLE) Select0(n uint32) (uint32, bool) {
	if n >= r.numZeros {
		return 0, false
	}

	j := r.z.Rank1(n + 1)
	if j == 0 {
		return n, true
	}

	blockStart, _ := r.zo.Select1(j - 1)
	numPrecedingZeros, _ := r.z.Select1(j - 1)
	return blockStart + (n - numPrecedingZeros), true
}

func (r *RLE) Get(bitIndex uint32) uint32 { return getFromRank1(r, bitIndex) }

func (r *RLE) UniverseSize() uint32 { return r.numZeros + r.numOnes }

func (r *RLE) NumOnes() uint32 { return r.numOnes }

func (r *RLE) NumZeros() uint32 { return r.numZeros }

func (r *RLE) Rank1Batch(bitIndices []uint32) { rank1BatchDefault(r, bitIndices) }

// RLEBuilder accumulates 1-bit positions and, at Build time, coalesces them
// into runs and constructs the underlying z/zo Sparse bit-vectors.
type RLEBuilder struct {
	universeSize uint32
	ones         map[uint32]struct{}
}

// NewRLEBuilder returns a builder for a universe of universeSize bits.
// universeSize must be at most 2^32-2.
func NewRLEBuilder(universeSize uint32) *RLEBuilder {
	if universeSize == ^uint32(0) {
		panic("bitvec: RLE universe size cannot exceed 2^32-2")
	}
	return &RLEBuilder{universeSize: universeSize, ones: make(map[uint32]struct{})}
}

func (b *RLEBuilder) One(bitIndex uint32) {
	if bitIndex >= b.universeSize {
		panic("bitvec: RLE builder index out of range")
	}
	b.ones[bitIndex] = struct{}{}
}

func (b *RLEBuilder) Build() BitVec {
	ones := make([]uint32, 0, len(b.ones))
	for k := range b.ones {
		ones = append(ones, k)
	}
	slices.Sort(ones)

	rb := newRunBuilder()
	prev := ^uint32(0) // sentinel equivalent to Rust's u32::MAX wraparound arithmetic
	hasPrev := false
	for _, cur := range ones {
		var numPrecedingZeros uint32
		if hasPrev {
			numPrecedingZeros = cur - prev - 1
		} else {
			numPrecedingZeros = cur
		}
		rb.run(numPrecedingZeros, 1)
		prev = cur
		hasPrev = true
	}
	var numZeros uint32
	if hasPrev {
		numZeros = b.universeSize - prev - 1
	} else {
		numZeros = b.universeSize
	}
	rb.run(numZeros, 0)
	return rb.build()
}

type runBuilder struct {
	z, zo              []uint32
	numZeros, numOnes  uint32
}

func newRunBuilder() *runBuilder {
	return &runBuilder{}
}

func (rb *runBuilder) run(numZeros, numOnes uint32) {
	if numZeros == 0 && numOnes == 0 {
		return
	}
	length := len(rb.z)
	rb.numZeros += numZeros
	rb.numOnes += numOnes
	switch {
	case numZeros == 0 && length > 0:
		rb.zo[len(rb.zo)-1] += numOnes
	case numOnes == 0 && rb.lastBlockContainsOnlyZeros():
		rb.z[len(rb.z)-1] += numZeros
		rb.zo[len(rb.zo)-1] += numZeros
	default:
		rb.z = append(rb.z, rb.numZeros)
		rb.zo = append(rb.zo, rb.numZeros+rb.numOnes)
	}
}

func (rb *runBuilder) lastBlockContainsOnlyZeros() bool {
	switch len(rb.z) {
	case 0:
		return false
	case 1:
		return rb.z[0] == rb.zo[0]
	default:
		n := len(rb.z)
		lastBlockLength := rb.zo[n-1] - rb.zo[n-2]
		lastBlockNumZeros := rb.z[n-1] - rb.z[n-2]
		return lastBlockLength == lastBlockNumZeros
	}
}

func (rb *runBuilder) build() *RLE {
	if rb.numZeros+rb.numOnes >= ^uint32(0) {
		panic("bitvec: maximum allowed RLE universe size is 2^32-2")
	}
	z := NewOfMulti(NewSparse(rb.z, rb.numZeros+1, SparseOptions{}))
	zo := NewOfMulti(NewSparse(rb.zo, rb.numZeros+rb.numOnes+1, SparseOptions{}))
	return &RLE{z: z, zo: zo, numZeros: rb.numZeros, numOnes: rb.numOnes}
}
