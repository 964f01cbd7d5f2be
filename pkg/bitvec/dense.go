package bitvec

import (
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitbuf"
	"github.com/xflash-panda/succinct/pkg/bitutil"
)

// DenseOptions configures the rank/select sampling rates of a Dense
// bit-vector. Both exponents must lie in [5, 32); the zero value selects the
// defaults documented on each field.
type DenseOptions struct {
	// Rank1SamplesPow2 is the power of two of the rank-1 sample rate in
	// bits. Zero selects the default of 10.
	Rank1SamplesPow2 uint32
	// SelectSamplesPow2 is the power of two of the select sample rate, used
	// for both select-0 and select-1. Zero selects the default of 10.
	SelectSamplesPow2 uint32
}

// Dense is a bit-vector backed by a packed BitBuffer plus sampled rank-1,
// select-0, and select-1 indices, aligned to block boundaries. It is the
// default bit-vector representation used by wavelet.Matrix.
type Dense struct {
	buf                            *bitbuf.BitBuffer
	numOnes                        uint32
	rank1SamplesPow2               uint32
	selectSamplesPow2              uint32
	rank1Samples                   []uint32
	select0Samples                 []uint32
	select1Samples                 []uint32
	basicBlocksPerRank1SamplePow2  uint32
}

// NewDense builds a Dense bit-vector from a fully populated BitBuffer. opts
// may be the zero value to accept the default sampling rates.
func NewDense(buf *bitbuf.BitBuffer, opts DenseOptions) *Dense {
	rank1SamplesPow2 := opts.Rank1SamplesPow2
	if rank1SamplesPow2 == 0 {
		rank1SamplesPow2 = 10
	}
	selectSamplesPow2 := opts.SelectSamplesPow2
	if selectSamplesPow2 == 0 {
		selectSamplesPow2 = 10
	}
	if rank1SamplesPow2 < 5 || rank1SamplesPow2 >= 32 {
		panic("bitvec: Dense rank1 sample exponent out of range")
	}
	if selectSamplesPow2 < 5 || selectSamplesPow2 >= 32 {
		panic("bitvec: Dense select sample exponent out of range")
	}

	rank1SampleRate := uint32(1) << rank1SamplesPow2
	select1SampleRate := uint32(1) << selectSamplesPow2
	select0SampleRate := select1SampleRate
	basicBlocksPerRank1Sample := rank1SampleRate >> 5

	var rank1Samples, select0Samples, select1Samples []uint32
	var cumulativeOnes, cumulativeBits uint32
	var zerosThreshold, onesThreshold uint32

	numBlocks := buf.NumBlocks()
	var maxBlockIndex uint32
	if numBlocks > 0 {
		maxBlockIndex = numBlocks - 1
	}

	for blockIndex := uint32(0); blockIndex < numBlocks; blockIndex++ {
		block := buf.Block(blockIndex)
		if blockIndex%basicBlocksPerRank1Sample == 0 {
			rank1Samples = append(rank1Samples, cumulativeOnes)
		}

		blockOnes := uint32(bits.OnesCount32(block))
		blockZeros := bitutil.BlockBits - blockOnes

		if blockIndex == maxBlockIndex {
			numNonTrailingBits := uint32(bitutil.BlockBits) - buf.NumTrailingBits()
			trailingBits := block &^ bitutil.OneMask(numNonTrailingBits)
			trailingOnes := uint32(bits.OnesCount32(trailingBits))
			trailingZeros := buf.NumTrailingBits() - trailingOnes
			blockOnes -= trailingOnes
			blockZeros -= trailingZeros
		}

		cumulativeZeros := cumulativeBits - cumulativeOnes

		if cumulativeOnes+blockOnes > onesThreshold {
			correction := onesThreshold - cumulativeOnes
			select1Samples = append(select1Samples, cumulativeBits|correction)
			onesThreshold = saturatingAdd(onesThreshold, select1SampleRate)
		}

		if cumulativeZeros+blockZeros > zerosThreshold {
			correction := zerosThreshold - cumulativeZeros
			select0Samples = append(select0Samples, cumulativeBits|correction)
			zerosThreshold = saturatingAdd(zerosThreshold, select0SampleRate)
		}

		cumulativeOnes += blockOnes
		cumulativeBits = saturatingAdd(cumulativeBits, bitutil.BlockBits)
	}

	return &Dense{
		buf:                           buf,
		numOnes:                       cumulativeOnes,
		rank1SamplesPow2:              rank1SamplesPow2,
		selectSamplesPow2:             selectSamplesPow2,
		rank1Samples:                  rank1Samples,
		select0Samples:                select0Samples,
		select1Samples:                select1Samples,
		basicBlocksPerRank1SamplePow2: rank1SamplesPow2 - 5,
	}
}

func saturatingAdd(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		return ^uint32(0)
	}
	return sum
}

// selectSample decodes a select sample into (precedingCount, basicBlockIndex).
func selectSample(n uint32, samples []uint32, samplesPow2 uint32) (uint32, uint32) {
	sampleIndex := n >> samplesPow2
	sample := samples[sampleIndex]
	mask := bitutil.OneMask(5)
	cumulativeBits := sample &^ mask
	correction := sample & mask
	precedingCount := (sampleIndex << samplesPow2) - correction
	return precedingCount, cumulativeBits >> 5
}

func (d *Dense) Rank1(bitIndex uint32) uint32 {
	if bitIndex >= d.UniverseSize() {
		return d.numOnes
	}

	rankIndex := bitIndex >> d.rank1SamplesPow2
	count := d.rank1Samples[rankIndex]
	rankBasicBlockIndex := rankIndex << d.basicBlocksPerRank1SamplePow2
	lastBasicBlockIndex := bitIndex >> 5

	selectSampleRate := uint32(1) << d.selectSamplesPow2
	selectBasicBlockIndex := rankBasicBlockIndex
	selectCount := count + selectSampleRate
	for selectCount < d.numOnes && selectBasicBlockIndex < lastBasicBlockIndex {
		precedingCount, basicBlockIndex := selectSample(selectCount, d.select1Samples, d.selectSamplesPow2)
		if basicBlockIndex >= lastBasicBlockIndex {
			break
		}
		count = precedingCount
		rankBasicBlockIndex = basicBlockIndex
		selectBasicBlockIndex = basicBlockIndex
		selectCount += selectSampleRate
	}

	for i := rankBasicBlockIndex; i < lastBasicBlockIndex; i++ {
		count += uint32(bits.OnesCount32(d.buf.Block(i)))
	}

	bitOffset := bitIndex & 31
	maskedBlock := d.buf.Block(lastBasicBlockIndex) & bitutil.OneMask(bitOffset)
	count += uint32(bits.OnesCount32(maskedBlock))
	return count
}

func (d *Dense) Rank0(bitIndex uint32) uint32 {
	if bitIndex >= d.UniverseSize() {
		return d.NumZeros()
	}
	return bitIndex - d.Rank1(bitIndex)
}

func (d *Dense) Ranks(bitIndex uint32) (uint32, uint32) {
	if bitIndex >= d.UniverseSize() {
		return d.NumZeros(), d.numOnes
	}
	r1 := d.Rank1(bitIndex)
	return bitIndex - r1, r1
}

func (d *Dense) Select1(n uint32) (uint32, bool) {
	if n >= d.numOnes {
		return 0, false
	}

	count, basicBlockIndex := selectSample(n, d.select1Samples, d.selectSamplesPow2)

	rankIndex := (basicBlockIndex >> d.basicBlocksPerRank1SamplePow2) + 1
	numRankSamples := uint32(len(d.rank1Samples))
	for rankIndex < numRankSamples {
		nextCount := d.rank1Samples[rankIndex]
		if nextCount > n {
			break
		}
		count = nextCount
		basicBlockIndex = rankIndex << d.basicBlocksPerRank1SamplePow2
		rankIndex++
	}

	var basicBlock uint32
	for basicBlockIndex < d.buf.NumBlocks() {
		basicBlock = d.buf.Block(basicBlockIndex)
		nextCount := count + uint32(bits.OnesCount32(basicBlock))
		if nextCount > n {
			break
		}
		count = nextCount
		basicBlockIndex++
	}

	basicBlockBitIndex := basicBlockIndex << 5
	bitOffset, ok := bitutil.SelectInWord(basicBlock, n-count)
	if !ok {
		bitOffset = 0
	}
	return basicBlockBitIndex + bitOffset, true
}

func (d *Dense) Select0(n uint32) (uint32, bool) {
	if n >= d.NumZeros() {
		return 0, false
	}

	count, basicBlockIndex := selectSample(n, d.select0Samples, d.selectSamplesPow2)

	rankIndex := (basicBlockIndex >> d.basicBlocksPerRank1SamplePow2) + 1
	numRankSamples := uint32(len(d.rank1Samples))
	for rankIndex < numRankSamples {
		nextCount := (rankIndex << d.rank1SamplesPow2) - d.rank1Samples[rankIndex]
		if nextCount > n {
			break
		}
		count = nextCount
		basicBlockIndex = rankIndex << d.basicBlocksPerRank1SamplePow2
		rankIndex++
	}

	var basicBlock uint32
	for basicBlockIndex < d.buf.NumBlocks() {
		basicBlock = d.buf.Block(basicBlockIndex)
		nextCount := count + uint32(bits.OnesCount32(^basicBlock))
		if nextCount > n {
			break
		}
		count = nextCount
		basicBlockIndex++
	}

	basicBlockBitIndex := basicBlockIndex << 5
	bitOffset, ok := bitutil.SelectInWord(^basicBlock, n-count)
	if !ok {
		bitOffset = 0
	}
	return basicBlockBitIndex + bitOffset, true
}

func (d *Dense) Get(bitIndex uint32) uint32 { return getFromRank1(d, bitIndex) }

func (d *Dense) UniverseSize() uint32 { return d.buf.UniverseSize() }

func (d *Dense) NumOnes() uint32 { return d.numOnes }

func (d *Dense) NumZeros() uint32 { return d.UniverseSize() - d.numOnes }

func (d *Dense) Rank1Batch(bitIndices []uint32) { rank1BatchDefault(d, bitIndices) }

// DenseBuilder accumulates 1-bit positions into a BitBuffer and freezes it
// into a Dense bit-vector with the configured sampling rates.
type DenseBuilder struct {
	buf  *bitbuf.BitBuffer
	opts DenseOptions
}

// NewDenseBuilder returns a builder for a universe of universeSize bits.
func NewDenseBuilder(universeSize uint32, opts DenseOptions) *DenseBuilder {
	return &DenseBuilder{buf: bitbuf.NewBitBuffer(universeSize), opts: opts}
}

func (b *DenseBuilder) One(bitIndex uint32) { b.buf.SetOne(bitIndex) }

func (b *DenseBuilder) Build() BitVec { return NewDense(b.buf, b.opts) }

// FromOnesDense is a convenience constructor mirroring
// Builder.from_ones/BitVecBuilder::from_ones in the original: it builds a
// Dense bit-vector directly from a slice of 1-bit positions.
func FromOnesDense(universeSize uint32, opts DenseOptions, ones []uint32) *Dense {
	b := NewDenseBuilder(universeSize, opts)
	for _, one := range ones {
		b.One(one)
	}
	return b.Build().(*Dense)
}
