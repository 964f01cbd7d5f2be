package wavelet

import "github.com/xflash-panda/succinct/pkg/bitvec"

// Level holds one bit-plane of a wavelet matrix.
type Level struct {
	bv bitvec.BitVec
	// nz is the number of zeros at this level, i.e. bv.Rank0(bv.UniverseSize()).
	nz uint32
	// bit is the power-of-two magnitude this level represents: levels[0].bit
	// == 1 << (len(levels)-1).
	bit uint32
	// mask restricts which bits of a symbol this level's morton-aware
	// queries consider; ^uint32(0) (all bits) unless morton masks were
	// supplied at construction.
	mask uint32
}

// Ranks returns (rank0(index), rank1(index)) together.
func (l *Level) Ranks(index uint32) (uint32, uint32) {
	r0, r1 := l.bv.Ranks(index)
	return r0, r1
}

// Splits returns the value split points covering the children of the node
// whose left child starts at left: (left, mid, right) where mid is the
// start of the right child and right is one past its end.
func (l *Level) Splits(left uint32) (uint32, uint32, uint32) {
	return left, left + l.bit, left + l.bit + l.bit
}

// childSymbolRanges returns the inclusive [lo, hi] symbol ranges covered by
// the left and right children of the node whose left child starts at
// symbol, restricted to the bits named by mask.
func (l *Level) childSymbolRanges(symbol, mask uint32) (lo0, hi0, lo1, hi1 uint32) {
	left, mid, right := l.Splits(symbol)
	return left & mask, (mid - 1) & mask, mid & mask, (right - 1) & mask
}
