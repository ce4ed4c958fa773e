package world

import (
	"math/rand/v2"
)

// Rand is a deterministic random number generator. It is a plain value:
// copying a Rand produces a second generator that yields the same sequence,
// which is what the regression checks and playthrough replays rely on.
type Rand struct {
	pcg rand.PCG
}

func NewRand(seed int64) (r Rand) {
	r.pcg.Seed(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	return
}

// RInt returns a number in [min, max].
func (r *Rand) RInt(min, max int64) int64 {
	Assert(min <= max)
	return min + int64(r.pcg.Uint64()%uint64(max-min+1))
}

// RFloat returns a number in [min, max].
func (r *Rand) RFloat(min, max float64) float64 {
	// 53 random bits, the precision of a float64 mantissa, scaled to [0, 1].
	f := float64(r.pcg.Uint64()>>11) / float64(1<<53-1)
	return min + f*(max-min)
}
