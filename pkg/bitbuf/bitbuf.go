// Package bitbuf provides the two packed storage primitives the rest of this
// module builds on: BitBuffer, a fixed-universe array of single bits, and
// IntBuffer, a write-once array of fixed-width unsigned integers. Neither
// supports rank or select; that is layered on top in package bitvec.
package bitbuf

import "github.com/xflash-panda/succinct/pkg/bitutil"

// BitBuffer is packed storage for a fixed universe of bits, held as 32-bit
// blocks. It has no ranking structures of its own; it is the raw substrate
// a Dense bit-vector is built from.
type BitBuffer struct {
	blocks          []uint32
	universeSize    uint32
	numTrailingBits uint32
}

// NewBitBuffer returns a zeroed BitBuffer over universeSize bits.
func NewBitBuffer(universeSize uint32) *BitBuffer {
	numBlocks := (universeSize + bitutil.BlockBits - 1) / bitutil.BlockBits
	lastBlockOccupancy := universeSize % bitutil.BlockBits
	var numTrailingBits uint32
	if lastBlockOccupancy != 0 {
		numTrailingBits = bitutil.BlockBits - lastBlockOccupancy
	}
	return &BitBuffer{
		blocks:          make([]uint32, numBlocks),
		universeSize:    universeSize,
		numTrailingBits: numTrailingBits,
	}
}

func (b *BitBuffer) checkIndex(bitIndex uint32) {
	if bitIndex >= b.universeSize {
		panic("bitbuf: bit index out of range")
	}
}

// SetOne sets the bit at bitIndex to 1.
func (b *BitBuffer) SetOne(bitIndex uint32) {
	b.checkIndex(bitIndex)
	b.blocks[bitIndex>>5] |= 1 << (bitIndex & 31)
}

// SetZero sets the bit at bitIndex to 0.
func (b *BitBuffer) SetZero(bitIndex uint32) {
	b.checkIndex(bitIndex)
	b.blocks[bitIndex>>5] &^= 1 << (bitIndex & 31)
}

// Get returns the value of the bit at bitIndex.
func (b *BitBuffer) Get(bitIndex uint32) bool {
	b.checkIndex(bitIndex)
	return b.blocks[bitIndex>>5]&(1<<(bitIndex&31)) != 0
}

// Block returns the k-th 32-bit storage block.
func (b *BitBuffer) Block(k uint32) uint32 {
	return b.blocks[k]
}

// NumBlocks returns the number of 32-bit blocks backing this buffer.
func (b *BitBuffer) NumBlocks() uint32 {
	return uint32(len(b.blocks))
}

// NumTrailingBits returns the number of bits in the final block, if any,
// that lie beyond UniverseSize and must be excluded from any popcount.
func (b *BitBuffer) NumTrailingBits() uint32 {
	return b.numTrailingBits
}

// UniverseSize returns the number of addressable bit positions.
func (b *BitBuffer) UniverseSize() uint32 {
	return b.universeSize
}

// IntBuffer is packed, write-once storage for a fixed-length sequence of
// fixed-width unsigned integers, each occupying at most one block's worth of
// bits. Values are appended in order via Push and later read with Get; there
// is no way to overwrite a value once the buffer is full.
type IntBuffer struct {
	blocks      []uint32
	length      uint32
	bitWidth    uint32
	writeCursor uint32
}

// NewIntBuffer returns a zeroed IntBuffer able to hold length values, each of
// bitWidth bits (0 <= bitWidth <= 32).
func NewIntBuffer(length uint32, bitWidth uint32) *IntBuffer {
	if bitWidth > bitutil.BlockBits {
		panic("bitbuf: IntBuffer bit width exceeds block size")
	}
	totalBits := uint64(length) * uint64(bitWidth)
	numBlocks := (totalBits + bitutil.BlockBits - 1) / bitutil.BlockBits
	return &IntBuffer{
		blocks:   make([]uint32, numBlocks),
		length:   length,
		bitWidth: bitWidth,
	}
}

// Push appends v as the next value in the sequence. v must be strictly less
// than 2^bitWidth, and Push may be called at most length times.
func (b *IntBuffer) Push(v uint32) {
	if b.writeCursor >= b.length {
		panic("bitbuf: IntBuffer.Push called beyond declared length")
	}
	if b.bitWidth < 32 && v>>b.bitWidth != 0 {
		panic("bitbuf: IntBuffer.Push value exceeds bit width")
	}
	if b.bitWidth > 0 {
		bitIndex := b.writeCursor * b.bitWidth
		blockIndex := bitIndex >> 5
		offset := bitIndex & 31
		b.blocks[blockIndex] |= v << offset
		if overflow := offset + b.bitWidth; overflow > 32 {
			b.blocks[blockIndex+1] |= v >> (32 - offset)
		}
	}
	b.writeCursor++
}

// Get returns the i-th pushed value. Reading with bitWidth == 0 always
// returns 0.
func (b *IntBuffer) Get(i uint32) uint32 {
	if i >= b.length {
		panic("bitbuf: IntBuffer index out of range")
	}
	if b.bitWidth == 0 {
		return 0
	}
	bitIndex := i * b.bitWidth
	blockIndex := bitIndex >> 5
	offset := bitIndex & 31
	value := b.blocks[blockIndex] >> offset
	if numAvailableBits := 32 - offset; numAvailableBits < b.bitWidth {
		numRemainingBits := b.bitWidth - numAvailableBits
		highBits := b.blocks[blockIndex+1] & bitutil.OneMask(numRemainingBits)
		value |= highBits << numAvailableBits
	}
	if b.bitWidth < 32 {
		value &= bitutil.OneMask(b.bitWidth)
	}
	return value
}

// Len returns the declared length of the sequence.
func (b *IntBuffer) Len() uint32 {
	return b.length
}

// BitWidth returns the per-value width in bits.
func (b *IntBuffer) BitWidth() uint32 {
	return b.bitWidth
}
