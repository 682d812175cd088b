package random

import (
	"crypto/rand"
	"math/big"
)

// Random is the source of randomness for shuffles and generated colors.
// Tests swap in mocks.MockRandom to make permutations deterministic.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a uniformly distributed int in [0, n). Non-positive n yields 0.
func (r *CryptoRandom) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		return 0
	}
	return int(result.Int64())
}
