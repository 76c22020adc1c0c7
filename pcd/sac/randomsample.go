package sac

import (
	"math"
	"math/rand"
)

// NewRandomSampler returns a uniform sampler of [0, n) drawing from r.
// r must not be shared with other goroutines.
func NewRandomSampler(n int, r *rand.Rand) Sampler {
	if n <= math.MaxInt32 {
		return &randomSampler31{n: int32(n), r: r}
	}
	return &randomSampler63{n: int64(n), r: r}
}

type randomSampler31 struct {
	n int32
	r *rand.Rand
}

func (s *randomSampler31) Sample() int {
	return int(s.r.Int31n(s.n))
}

type randomSampler63 struct {
	n int64
	r *rand.Rand
}

func (s *randomSampler63) Sample() int {
	return int(s.r.Int63n(s.n))
}
