package proptest

import (
	"fmt"

	"github.com/xflash-panda/succinct/pkg/bitvec"
)

// CheckBitVecEquivalence builds Dense, Sparse, and RLE over the same set of
// 1-bit positions and checks that each agrees with a SortedArrayBitVec
// baseline (and therefore with each other) on Rank0, Rank1, Select0,
// Select1, and Get across the whole universe.
func CheckBitVecEquivalence(universeSize uint32, ones []uint32) error {
	baselineBuilder := NewSortedArrayBitVecBuilder(universeSize)
	denseBuilder := bitvec.NewDenseBuilder(universeSize, bitvec.DenseOptions{})
	sparseBuilder := bitvec.NewSparseBuilder(universeSize, bitvec.SparseOptions{})
	rleBuilder := bitvec.NewRLEBuilder(universeSize)

	for _, pos := range ones {
		baselineBuilder.One(pos)
		denseBuilder.One(pos)
		sparseBuilder.One(pos)
		rleBuilder.One(pos)
	}

	baseline := baselineBuilder.Build()
	reps := []struct {
		name string
		rep  bitvec.BitVec
	}{
		{"dense", denseBuilder.Build()},
		{"sparse", sparseBuilder.Build()},
		{"rle", rleBuilder.Build()},
	}

	for _, r := range reps {
		if err := compareBitVec(r.name, r.rep, baseline); err != nil {
			return err
		}
	}
	return nil
}

func compareBitVec(name string, rep bitvec.BitVec, baseline *SortedArrayBitVec) error {
	if rep.UniverseSize() != baseline.UniverseSize() {
		return fmt.Errorf("%s: UniverseSize = %d, want %d", name, rep.UniverseSize(), baseline.UniverseSize())
	}
	if rep.NumOnes() != baseline.NumOnes() {
		return fmt.Errorf("%s: NumOnes = %d, want %d", name, rep.NumOnes(), baseline.NumOnes())
	}
	if rep.NumZeros() != baseline.NumZeros() {
		return fmt.Errorf("%s: NumZeros = %d, want %d", name, rep.NumZeros(), baseline.NumZeros())
	}

	u := rep.UniverseSize()
	for i := uint32(0); i <= u; i++ {
		if got, want := rep.Rank1(i), baseline.Rank1(i); got != want {
			return fmt.Errorf("%s: Rank1(%d) = %d, want %d", name, i, got, want)
		}
		if got, want := rep.Rank0(i), baseline.Rank0(i); got != want {
			return fmt.Errorf("%s: Rank0(%d) = %d, want %d", name, i, got, want)
		}
	}
	for n := uint32(0); n < u; n++ {
		gotVal, gotOK := rep.Select1(n)
		wantVal, wantOK := baseline.Select1(n)
		if gotOK != wantOK || (gotOK && gotVal != wantVal) {
			return fmt.Errorf("%s: Select1(%d) = (%d,%v), want (%d,%v)", name, n, gotVal, gotOK, wantVal, wantOK)
		}
		gotVal, gotOK = rep.Select0(n)
		wantVal, wantOK = baseline.Select0(n)
		if gotOK != wantOK || (gotOK && gotVal != wantVal) {
			return fmt.Errorf("%s: Select0(%d) = (%d,%v), want (%d,%v)", name, n, gotVal, gotOK, wantVal, wantOK)
		}
	}
	for i := uint32(0); i < u; i++ {
		if got, want := rep.Get(i), baseline.Get(i); got != want {
			return fmt.Errorf("%s: Get(%d) = %d, want %d", name, i, got, want)
		}
	}
	return nil
}

// CheckMultiBitVecEquivalence builds a Multi bit-vector over ones, each
// carrying the multiplicity named in multiplicities (defaulting to 1), and
// checks it against the SortedArrayBitVec baseline.
func CheckMultiBitVecEquivalence(universeSize uint32, ones []uint32, multiplicities map[uint32]uint32) error {
	baselineBuilder := NewSortedArrayBitVecBuilder(universeSize)
	occupancyBuilder := bitvec.NewDenseBuilder(universeSize, bitvec.DenseOptions{})
	multiBuilder := bitvec.NewMultiBuilder(occupancyBuilder)

	for _, pos := range ones {
		count := multiplicities[pos]
		if count == 0 {
			count = 1
		}
		baselineBuilder.Ones(pos, count)
		multiBuilder.Ones(pos, count)
	}

	baseline := baselineBuilder.Build()
	rep := multiBuilder.Build()

	if rep.UniverseSize() != baseline.UniverseSize() {
		return fmt.Errorf("multi: UniverseSize = %d, want %d", rep.UniverseSize(), baseline.UniverseSize())
	}
	if rep.NumOnes() != baseline.NumOnes() {
		return fmt.Errorf("multi: NumOnes = %d, want %d", rep.NumOnes(), baseline.NumOnes())
	}
	if rep.NumUniqueOnes() != baseline.NumUniqueOnes() {
		return fmt.Errorf("multi: NumUniqueOnes = %d, want %d", rep.NumUniqueOnes(), baseline.NumUniqueOnes())
	}

	u := rep.UniverseSize()
	for i := uint32(0); i <= u; i++ {
		if got, want := rep.Rank1(i), baseline.Rank1(i); got != want {
			return fmt.Errorf("multi: Rank1(%d) = %d, want %d", i, got, want)
		}
	}
	for n := uint32(0); n < rep.NumOnes(); n++ {
		gotVal, gotOK := rep.Select1(n)
		wantVal, wantOK := baseline.Select1(n)
		if gotOK != wantOK || (gotOK && gotVal != wantVal) {
			return fmt.Errorf("multi: Select1(%d) = (%d,%v), want (%d,%v)", n, gotVal, gotOK, wantVal, wantOK)
		}
	}
	for i := uint32(0); i < u; i++ {
		if got, want := rep.Get(i), baseline.Get(i); got != want {
			return fmt.Errorf("multi: Get(%d) = %d, want %d", i, got, want)
		}
	}
	return nil
}
