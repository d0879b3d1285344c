package faker

import (
	"math/rand/v2"

	"github.com/speakeasy-api/schemafaker/formats"
)

// Rand is the source of randomness used by a generation call tree.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	formats.Rand
	Shuffle(n int, swap func(i, j int))
}

var _ Rand = (*rand.Rand)(nil)

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func chance(r Rand, p float64) bool {
	return r.Float64() < p
}

func between(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
