// Package wavelet implements a wavelet matrix over 32-bit symbols: a
// succinct structure supporting access, rank, select, quantile, majority,
// and range-counting queries over a fixed sequence of symbols, built atop
// the bit-vector family in package bitvec.
package wavelet

import (
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitutil"
	"github.com/xflash-panda/succinct/pkg/bitvec"
)

// Matrix is a wavelet matrix over a fixed sequence of symbols in
// [0, MaxSymbol()].
type Matrix struct {
	lvls      []Level
	maxSymbol uint32
	length    uint32
}

// New builds a Matrix over data, a sequence of symbols each at most
// maxSymbol. opts configures the Dense bit-vector backing each level.
// mortonMasks, if non-nil, supplies one mask per level (most significant
// level first) restricting morton-aware queries (see MortonCounts,
// MortonCountBatch) to individual Z-order dimensions; pass nil for ordinary
// (non-spatial) use.
func New(data []uint32, maxSymbol uint32, opts bitvec.DenseOptions, mortonMasks []uint32) *Matrix {
	numLevels := uint32(32 - bits.LeadingZeros32(maxSymbol))
	if numLevels < 1 {
		numLevels = 1
	}

	n := uint32(len(data))
	var levelVecs []bitvec.BitVec
	switch {
	case n == 0:
		levelVecs = nil
	case numLevels <= uint32(bits.Len32(n))-1:
		levelVecs = buildBitvecs(data, numLevels, opts)
	default:
		levelVecs = buildBitvecsLargeAlphabet(data, numLevels, opts)
	}
	return fromBitvecs(levelVecs, maxSymbol, mortonMasks)
}

func fromBitvecs(levelVecs []bitvec.BitVec, maxSymbol uint32, mortonMasks []uint32) *Matrix {
	var length uint32
	if len(levelVecs) > 0 {
		length = levelVecs[0].UniverseSize()
	}
	maxLevel := uint32(len(levelVecs)) - 1

	levels := make([]Level, len(levelVecs))
	for i, bv := range levelVecs {
		mask := ^uint32(0)
		if mortonMasks != nil {
			mask = mortonMasks[i]
		}
		levels[i] = Level{
			bv:   bv,
			nz:   bv.Rank0(bv.UniverseSize()),
			bit:  1 << (maxLevel - uint32(i)),
			mask: mask,
		}
	}
	return &Matrix{lvls: levels, maxSymbol: maxSymbol, length: length}
}

// Len returns the number of symbols in the sequence.
func (m *Matrix) Len() uint32 { return m.length }

// MaxSymbol returns the maximum representable symbol value.
func (m *Matrix) MaxSymbol() uint32 { return m.maxSymbol }

// NumLevels returns the number of bit-planes, i.e. ceil(log2(MaxSymbol()+1))
// clamped to at least 1, or 0 for a matrix built over an empty sequence.
func (m *Matrix) NumLevels() int { return len(m.lvls) }

// levels returns the levels from the most significant downwards, omitting
// the bottom ignoreBits of them.
func (m *Matrix) levels(ignoreBits int) []Level {
	return m.lvls[:len(m.lvls)-ignoreBits]
}

// Get returns the symbol at index.
func (m *Matrix) Get(index uint32) uint32 {
	var symbol uint32
	for _, level := range m.levels(0) {
		if level.bv.Get(index) == 0 {
			index = level.bv.Rank0(index)
		} else {
			symbol += level.bit
			index = level.nz + level.bv.Rank1(index)
		}
	}
	return symbol
}

// locate tracks symbol down to its range on the virtual bottom level,
// restricted to rangeStart..rangeEnd on the level at depth
// len(levels)-ignoreBits, returning the number of symbols preceding it in
// sorted order (within the query range) and its resulting range.
func (m *Matrix) locate(rangeStart, rangeEnd, symbol uint32, ignoreBits int) (uint32, uint32, uint32) {
	if symbol > m.maxSymbol {
		panic("wavelet: symbol exceeds max symbol")
	}
	var precedingCount uint32
	for _, level := range m.levels(ignoreBits) {
		startR0, startR1 := level.Ranks(rangeStart)
		endR0, endR1 := level.Ranks(rangeEnd)
		if symbol&level.bit == 0 {
			rangeStart, rangeEnd = startR0, endR0
		} else {
			precedingCount += endR0 - startR0
			rangeStart, rangeEnd = level.nz+startR1, level.nz+endR1
		}
	}
	return precedingCount, rangeStart, rangeEnd
}

// Locate is the exported form of locate, for callers (such as package
// spatial) that want the raw bottom-level range of a symbol within a query
// range, e.g. to combine it with a subsequent Select.
func (m *Matrix) Locate(rangeStart, rangeEnd, symbol uint32, ignoreBits int) (precedingCount, lo, hi uint32) {
	return m.locate(rangeStart, rangeEnd, symbol, ignoreBits)
}

// PrecedingCount returns the number of symbols strictly less than symbol
// within [rangeStart, rangeEnd).
func (m *Matrix) PrecedingCount(rangeStart, rangeEnd, symbol uint32) uint32 {
	count, _, _ := m.locate(rangeStart, rangeEnd, symbol, 0)
	return count
}

// Count returns the number of occurrences of symbol within
// [rangeStart, rangeEnd).
func (m *Matrix) Count(rangeStart, rangeEnd, symbol uint32) uint32 {
	_, lo, hi := m.locate(rangeStart, rangeEnd, symbol, 0)
	return hi - lo
}

// Quantile returns the (symbol, count) of the k-th smallest symbol (0
// indexed, with ties broken by symbol value) within [rangeStart, rangeEnd).
func (m *Matrix) Quantile(rangeStart, rangeEnd, k uint32) (uint32, uint32) {
	if k >= rangeEnd-rangeStart {
		panic("wavelet: quantile k out of range")
	}
	var symbol uint32
	for _, level := range m.levels(0) {
		startR0, startR1 := level.Ranks(rangeStart)
		endR0, endR1 := level.Ranks(rangeEnd)
		leftCount := endR0 - startR0
		if k < leftCount {
			rangeStart, rangeEnd = startR0, endR0
		} else {
			k -= leftCount
			symbol += level.bit
			rangeStart, rangeEnd = level.nz+startR1, level.nz+endR1
		}
	}
	return symbol, rangeEnd - rangeStart
}

// SimpleMajority returns the symbol occurring in more than half of
// [rangeStart, rangeEnd), if one exists.
func (m *Matrix) SimpleMajority(rangeStart, rangeEnd uint32) (uint32, bool) {
	length := rangeEnd - rangeStart
	halfLen := length >> 1
	symbol, count := m.Quantile(rangeStart, rangeEnd, halfLen)
	if count > halfLen {
		return symbol, true
	}
	return 0, false
}

// Select returns the index of the k-th (0-indexed) occurrence of symbol
// within [rangeStart, rangeEnd), or false if there is no such occurrence.
// ignoreBits elides the bottom levels of the matrix from the search, useful
// when symbol has already been reduced to a coarser-grained value.
func (m *Matrix) Select(rangeStart, rangeEnd, symbol, k uint32, ignoreBits int) (uint32, bool) {
	if symbol > m.maxSymbol {
		return 0, false
	}
	_, lo, hi := m.locate(rangeStart, rangeEnd, symbol, ignoreBits)
	if hi-lo <= k {
		return 0, false
	}
	return m.SelectUpwards(lo+k, ignoreBits)
}

// SelectLast returns the index of the k-th (0-indexed, counting from the
// end) occurrence of symbol within [rangeStart, rangeEnd).
func (m *Matrix) SelectLast(rangeStart, rangeEnd, symbol, k uint32, ignoreBits int) (uint32, bool) {
	if symbol > m.maxSymbol {
		return 0, false
	}
	_, lo, hi := m.locate(rangeStart, rangeEnd, symbol, ignoreBits)
	if hi-lo <= k {
		return 0, false
	}
	return m.SelectUpwards(hi-k-1, ignoreBits)
}

// SelectUpwards maps index, an index on the virtual level below the bottom
// ignoreBits levels, back up to its index in sequence order. It underlies
// Select and Select Last, and is exposed directly for callers (such as
// SelectFirstLessThan) that have already identified a bottom-level index by
// other means.
func (m *Matrix) SelectUpwards(index uint32, ignoreBits int) (uint32, bool) {
	levels := m.levels(ignoreBits)
	for i := len(levels) - 1; i >= 0; i-- {
		level := levels[i]
		var ok bool
		if index < level.nz {
			index, ok = level.bv.Select0(index)
		} else {
			index, ok = level.bv.Select1(index - level.nz)
		}
		if !ok {
			return 0, false
		}
	}
	return index, true
}

func buildBitvecs(data []uint32, numLevels uint32, opts bitvec.DenseOptions) []bitvec.BitVec {
	n := uint32(len(data))
	builders := make([]*bitvec.DenseBuilder, numLevels)
	for i := range builders {
		builders[i] = bitvec.NewDenseBuilder(n, opts)
	}
	histSize := uint32(1) << numLevels
	hist := make([]uint32, histSize)
	borders := make([]uint32, histSize)
	maxLevel := numLevels - 1

	{
		level := builders[0]
		levelBit := uint32(1) << maxLevel
		for i, d := range data {
			hist[d]++
			if d&levelBit > 0 {
				level.One(uint32(i))
			}
		}
	}

	for l := numLevels - 1; l >= 1; l-- {
		numNodes := uint32(1) << l
		for i := uint32(0); i < numNodes; i++ {
			hist[i] = hist[2*i] + hist[2*i+1]
		}

		borders[0] = 0
		for i := uint32(1); i < numNodes; i++ {
			prevIndex := bitutil.ReverseLowBits(i-1, l)
			borders[bitutil.ReverseLowBits(i, l)] = borders[prevIndex] + hist[prevIndex]
		}

		level := builders[l]
		levelBitIndex := maxLevel - l
		levelBit := uint32(1) << levelBitIndex

		var bitPrefixMask uint32
		if levelBitIndex+1 < 32 {
			bitPrefixMask = ^uint32(0) << (levelBitIndex + 1)
		}
		for _, d := range data {
			nodeIndex := (d & bitPrefixMask) >> (levelBitIndex + 1)
			p := borders[nodeIndex]
			if d&levelBit > 0 {
				level.One(p)
			}
			borders[nodeIndex] = p + 1
		}
	}

	out := make([]bitvec.BitVec, numLevels)
	for i, b := range builders {
		out[i] = b.Build()
	}
	return out
}

func buildBitvecsLargeAlphabet(data []uint32, numLevels uint32, opts bitvec.DenseOptions) []bitvec.BitVec {
	n := uint32(len(data))
	out := make([]bitvec.BitVec, 0, numLevels)
	maxLevel := numLevels - 1

	cur := make([]uint32, len(data))
	copy(cur, data)

	for l := uint32(0); l < maxLevel; l++ {
		levelBit := uint32(1) << (maxLevel - l)
		b := bitvec.NewDenseBuilder(n, opts)

		left := cur[:0]
		var right []uint32
		for index, d := range cur {
			if d&levelBit == 0 {
				left = append(left, d)
			} else {
				b.One(uint32(index))
				right = append(right, d)
			}
		}
		cur = append(left, right...)
		out = append(out, b.Build())
	}

	{
		b := bitvec.NewDenseBuilder(n, opts)
		for index, d := range cur {
			if d&1 > 0 {
				b.One(uint32(index))
			}
		}
		out = append(out, b.Build())
	}

	return out
}
