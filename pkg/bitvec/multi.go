package bitvec

import "slices"

// Multi adapts any BitVec into a MultiBitVec by pairing it with a Sparse
// bit-vector (wrapped as a uniqueness-checked BitVec) that stores the
// cumulative multiplicity of each occupied position. occupancy marks which
// positions are present at all; multiplicity resolves how many times.
type Multi struct {
	occupancy    BitVec
	multiplicity *OfMulti
	numOnes      uint32
}

// NewMulti composes occupancy with a multiplicity vector built from
// cumulative counts. Exposed for use by MultiVecBuilder; most callers should
// go through NewMultiBuilder instead.
func NewMulti(occupancy BitVec, multiplicity *OfMulti) *Multi {
	var numOnes uint32
	if n := multiplicity.NumOnes(); n > 0 {
		v, _ := multiplicity.Select1(n - 1)
		numOnes = v
	}
	return &Multi{occupancy: occupancy, multiplicity: multiplicity, numOnes: numOnes}
}

// UniqueRank0 returns the rank of unoccupied positions below bitIndex.
func (m *Multi) UniqueRank0(bitIndex uint32) uint32 { return m.occupancy.Rank0(bitIndex) }

// UniqueRank1 returns the rank of distinct occupied positions below
// bitIndex.
func (m *Multi) UniqueRank1(bitIndex uint32) uint32 { return m.occupancy.Rank1(bitIndex) }

// Select0 delegates to the occupancy vector, since the zeros of a Multi are
// exactly the zeros of its occupancy.
func (m *Multi) Select0(n uint32) (uint32, bool) { return m.occupancy.Select0(n) }

func (m *Multi) Rank1(bitIndex uint32) uint32 {
	r := m.occupancy.Rank1(bitIndex)
	if r == 0 {
		return 0
	}
	v, _ := m.multiplicity.Select1(r - 1)
	return v
}

func (m *Multi) Select1(n uint32) (uint32, bool) {
	if n == ^uint32(0) {
		return 0, false
	}
	i := m.multiplicity.Rank1(n + 1)
	return m.occupancy.Select1(i)
}

func (m *Multi) Get(bitIndex uint32) uint32 { return multiGetFromRank1(m, bitIndex) }

func (m *Multi) NumOnes() uint32 { return m.numOnes }

func (m *Multi) NumUniqueOnes() uint32 { return m.occupancy.NumOnes() }

func (m *Multi) NumZeros() uint32 { return m.occupancy.UniverseSize() - m.NumUniqueOnes() }

func (m *Multi) UniverseSize() uint32 { return m.occupancy.UniverseSize() }

func (m *Multi) Rank1Batch(bitIndices []uint32) { multiRank1BatchDefault(m, bitIndices) }

// MultiVecBuilder accumulates (position, count) pairs, using the supplied
// occupancy builder to track distinct positions and tallying cumulative
// multiplicity per distinct position. It implements the MultiBuilder
// interface.
type MultiVecBuilder struct {
	occupancy    Builder
	multiplicity map[uint32]uint32
}

// NewMultiBuilder returns a builder over the universe of occupancyBuilder; the
// occupancy sub-vector is built with occupancyBuilder (typically a
// DenseBuilder, matching the library's default BitVec representation).
func NewMultiBuilder(occupancyBuilder Builder) *MultiVecBuilder {
	return &MultiVecBuilder{occupancy: occupancyBuilder, multiplicity: make(map[uint32]uint32)}
}

func (b *MultiVecBuilder) Ones(bitIndex uint32, count uint32) {
	if count == 0 {
		return
	}
	b.occupancy.One(bitIndex)
	b.multiplicity[bitIndex] += count
}

func (b *MultiVecBuilder) Build() MultiBitVec {
	keys := make([]uint32, 0, len(b.multiplicity))
	for k := range b.multiplicity {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	cumulative := make([]uint32, len(keys))
	var acc uint32
	for i, k := range keys {
		acc += b.multiplicity[k]
		cumulative[i] = acc
	}

	occupancy := b.occupancy.Build()

	var universeSize uint32
	if acc > 0 {
		universeSize = acc + 1
	}
	multiplicity := NewOfMulti(NewSparse(cumulative, universeSize, SparseOptions{}))
	return NewMulti(occupancy, multiplicity)
}
