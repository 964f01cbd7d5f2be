package bitvec

import (
	"math/bits"
	"slices"

	"github.com/xflash-panda/succinct/pkg/bitbuf"
	"github.com/xflash-panda/succinct/pkg/bitutil"
)

// SparseOptions configures a Sparse bit-vector's Elias-Fano split point.
type SparseOptions struct {
	// LowBitWidth overrides the auto-computed split point between the
	// unary-coded high bits and the packed low bits. Zero means "compute
	// automatically"; to force a width of zero explicitly, use
	// LowBitWidthSet.
	LowBitWidth uint32
	// LowBitWidthSet, when true, makes LowBitWidth binding even if it is 0.
	LowBitWidthSet bool
}

// Sparse is an Elias-Fano encoded bit-vector: sorted 1-positions are split
// into unary-coded quotients (stored in a Dense bit-vector) and packed
// remainders (stored in an IntBuffer). It implements MultiBitVec, permitting
// duplicate positions.
type Sparse struct {
	high          *Dense
	low           *bitbuf.IntBuffer
	lowMask       uint32
	lowBitWidth   uint32
	universeSize  uint32
	numOnes       uint32
	numUniqueOnes uint32
}

// NewSparse builds a Sparse bit-vector from a non-decreasing slice of 1-bit
// positions, all strictly less than universeSize.
func NewSparse(ones []uint32, universeSize uint32, opts SparseOptions) *Sparse {
	numOnes := uint32(len(ones))

	lowBitWidth := opts.LowBitWidth
	if !opts.LowBitWidthSet && opts.LowBitWidth == 0 {
		if numOnes == 0 {
			lowBitWidth = 0
		} else {
			ratio := universeSize / numOnes
			if ratio < 1 {
				ratio = 1
			}
			lowBitWidth = uint32(bits.Len32(ratio)) - 1
		}
	}

	highLen := numOnes + (universeSize >> lowBitWidth)
	high := bitbuf.NewBitBuffer(highLen)
	low := bitbuf.NewIntBuffer(numOnes, lowBitWidth)
	lowMask := bitutil.OneMask(lowBitWidth)

	if numOnes > 0 && ones[numOnes-1] >= universeSize {
		panic("bitvec: Sparse 1-bit index cannot exceed universe size")
	}

	var numUniqueOnes uint32
	var prev uint32
	hasPrev := false
	for i, cur := range ones {
		if hasPrev {
			if cur < prev {
				panic("bitvec: Sparse 1-bits must be in ascending order")
			}
			if cur != prev {
				numUniqueOnes++
			}
		} else {
			numUniqueOnes++
		}
		prev = cur
		hasPrev = true

		quotient := cur >> lowBitWidth
		high.SetOne(uint32(i) + quotient)
		remainder := cur & lowMask
		low.Push(remainder)
	}

	return &Sparse{
		high:          NewDense(high, DenseOptions{}),
		low:           low,
		lowMask:       lowMask,
		lowBitWidth:   lowBitWidth,
		universeSize:  universeSize,
		numOnes:       numOnes,
		numUniqueOnes: numUniqueOnes,
	}
}

func (s *Sparse) quotient(x uint32) uint32 { return x >> s.lowBitWidth }
func (s *Sparse) remainder(x uint32) uint32 { return x & s.lowMask }

func (s *Sparse) Rank1(bitIndex uint32) uint32 {
	if bitIndex >= s.universeSize {
		return s.numOnes
	}

	var lowerBound, upperBound uint32
	quotient := s.quotient(bitIndex)
	if quotient == 0 {
		lowerBound = 0
		if pos, ok := s.high.Select0(0); ok {
			upperBound = pos
		} else {
			upperBound = s.numOnes
		}
	} else {
		i := quotient - 1
		if pos, ok := s.high.Select0(i); ok {
			lowerBound = pos - i
		} else {
			lowerBound = 0
		}
		i = quotient
		if pos, ok := s.high.Select0(i); ok {
			upperBound = pos - i
		} else {
			upperBound = s.numOnes
		}
	}

	remainder := s.remainder(bitIndex)
	bucketCount := bitutil.PartitionPoint(upperBound-lowerBound, func(n uint32) bool {
		return s.low.Get(lowerBound+n) < remainder
	})

	return lowerBound + bucketCount
}

func (s *Sparse) Select1(n uint32) (uint32, bool) {
	pos, ok := s.high.Select1(n)
	if !ok {
		return 0, false
	}
	quotient := s.high.Rank0(pos)
	remainder := s.low.Get(n)
	return (quotient << s.lowBitWidth) + remainder, true
}

func (s *Sparse) Get(bitIndex uint32) uint32 { return multiGetFromRank1(s, bitIndex) }

func (s *Sparse) UniverseSize() uint32 { return s.universeSize }

func (s *Sparse) NumOnes() uint32 { return s.numOnes }

func (s *Sparse) NumZeros() uint32 { return s.universeSize - s.numUniqueOnes }

func (s *Sparse) NumUniqueOnes() uint32 { return s.numUniqueOnes }

func (s *Sparse) Rank1Batch(bitIndices []uint32) { multiRank1BatchDefault(s, bitIndices) }

// SparseBuilder accumulates (position, count) pairs and freezes them, sorted
// by position, into a Sparse bit-vector.
type SparseBuilder struct {
	universeSize uint32
	ones         []uint32
	opts         SparseOptions
}

// NewSparseBuilder returns a builder for a universe of universeSize bits.
func NewSparseBuilder(universeSize uint32, opts SparseOptions) *SparseBuilder {
	return &SparseBuilder{universeSize: universeSize, opts: opts}
}

func (b *SparseBuilder) Ones(bitIndex uint32, count uint32) {
	if bitIndex >= b.universeSize {
		panic("bitvec: Sparse builder index out of range")
	}
	for i := uint32(0); i < count; i++ {
		b.ones = append(b.ones, bitIndex)
	}
}

func (b *SparseBuilder) Build() MultiBitVec {
	slices.Sort(b.ones)
	return NewSparse(b.ones, b.universeSize, b.opts)
}

// FromOnesSparse is a convenience constructor: builds a Sparse bit-vector
// directly from a slice of (possibly repeated, possibly unsorted) 1-bit
// positions.
func FromOnesSparse(universeSize uint32, opts SparseOptions, ones []uint32) *Sparse {
	cp := slices.Clone(ones)
	slices.Sort(cp)
	return NewSparse(cp, universeSize, opts)
}
