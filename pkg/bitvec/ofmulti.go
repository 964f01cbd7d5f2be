package bitvec

// OfMulti adapts a MultiBitVec into a BitVec, asserting at construction that
// every 1-bit occurs exactly once (no multiplicity). This is the uniqueness-
// checked view used, for example, to treat the cumulative-count vectors
// inside RLE and Multi as ordinary bit-vectors.
type OfMulti struct {
	inner MultiBitVec
}

// NewOfMulti wraps inner as a BitVec. It panics if inner contains any bit
// with multiplicity greater than one.
func NewOfMulti(inner MultiBitVec) *OfMulti {
	if inner.NumOnes() != inner.NumUniqueOnes() {
		panic("bitvec: OfMulti requires a MultiBitVec with no duplicate 1-bits")
	}
	return &OfMulti{inner: inner}
}

// Inner returns the wrapped MultiBitVec.
func (o *OfMulti) Inner() MultiBitVec { return o.inner }

func (o *OfMulti) Rank1(bitIndex uint32) uint32 { return o.inner.Rank1(bitIndex) }

func (o *OfMulti) Rank0(bitIndex uint32) uint32 {
	if bitIndex >= o.UniverseSize() {
		return o.NumZeros()
	}
	return bitIndex - o.Rank1(bitIndex)
}

func (o *OfMulti) Ranks(bitIndex uint32) (uint32, uint32) {
	if bitIndex >= o.UniverseSize() {
		return o.NumZeros(), o.NumOnes()
	}
	r1 := o.Rank1(bitIndex)
	return bitIndex - r1, r1
}

func (o *OfMulti) Select1(n uint32) (uint32, bool) { return o.inner.Select1(n) }

func (o *OfMulti) Select0(n uint32) (uint32, bool) {
	return selectBySearch(o.UniverseSize(), o.NumZeros(), n, o.Rank0)
}

func (o *OfMulti) Get(bitIndex uint32) uint32 { return getFromRank1(o, bitIndex) }

func (o *OfMulti) UniverseSize() uint32 { return o.inner.UniverseSize() }

func (o *OfMulti) NumOnes() uint32 { return o.inner.NumOnes() }

func (o *OfMulti) NumZeros() uint32 { return o.inner.UniverseSize() - o.inner.NumUniqueOnes() }

func (o *OfMulti) Rank1Batch(bitIndices []uint32) { rank1BatchDefault(o, bitIndices) }

// BuilderOfMulti adapts a MultiBuilder into a Builder, tracking which bit
// indices have already been set so that One remains idempotent even though
// the underlying MultiBuilder's Ones is not.
type BuilderOfMulti struct {
	inner MultiBuilder
	seen  map[uint32]struct{}
}

// NewBuilderOfMulti wraps inner as a Builder.
func NewBuilderOfMulti(inner MultiBuilder) *BuilderOfMulti {
	return &BuilderOfMulti{inner: inner, seen: make(map[uint32]struct{})}
}

func (b *BuilderOfMulti) One(bitIndex uint32) {
	if _, ok := b.seen[bitIndex]; ok {
		return
	}
	b.seen[bitIndex] = struct{}{}
	b.inner.Ones(bitIndex, 1)
}

func (b *BuilderOfMulti) Build() BitVec {
	return NewOfMulti(b.inner.Build())
}
