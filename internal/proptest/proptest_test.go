package proptest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitVecEquivalenceAcrossDensities(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, density := range []float64{0, 0.1, 0.5, 0.9, 1} {
		ones := GenerateOnes(rng, 256, density)
		require.NoError(t, CheckBitVecEquivalence(256, ones), "density %v", density)
	}
}

func TestMultiBitVecEquivalenceAcrossDensities(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, density := range []float64{0, 0.2, 0.6, 1} {
		ones := GenerateOnes(rng, 128, density)
		multiplicities := GenerateMultiplicities(rng, ones, 10)
		require.NoError(t, CheckMultiBitVecEquivalence(128, ones, multiplicities), "density %v", density)
	}
}

func TestSortedArrayBitVecEmptyUniverse(t *testing.T) {
	b := NewSortedArrayBitVecBuilder(0)
	v := b.Build()
	require.Equal(t, uint32(0), v.UniverseSize())
	require.Equal(t, uint32(0), v.Rank1(0))
	_, ok := v.Select1(0)
	require.False(t, ok)
}
