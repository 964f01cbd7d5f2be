package proptest

import "math/rand"

// GenerateOnes produces the set of 1-bit positions over [0, universeSize),
// independently including each position with probability density (a value
// in [0, 1]), using rng for randomness.
func GenerateOnes(rng *rand.Rand, universeSize uint32, density float64) []uint32 {
	if density < 0 || density > 1 {
		panic("proptest: density out of range")
	}
	var ones []uint32
	for i := uint32(0); i < universeSize; i++ {
		if rng.Float64() < density {
			ones = append(ones, i)
		}
	}
	return ones
}

// GenerateMultiplicities assigns each position in ones an independent
// random multiplicity in [1, maxMultiplicity], using rng for randomness.
func GenerateMultiplicities(rng *rand.Rand, ones []uint32, maxMultiplicity uint32) map[uint32]uint32 {
	if maxMultiplicity == 0 {
		panic("proptest: maxMultiplicity must be positive")
	}
	multiplicities := make(map[uint32]uint32, len(ones))
	for _, pos := range ones {
		multiplicities[pos] = 1 + uint32(rng.Intn(int(maxMultiplicity)))
	}
	return multiplicities
}
