// Package sac implements sample consensus model fitting.
package sac

import (
	"github.com/seqsense/pcgol/mat"
)

// DefaultMaxResample is the number of draws tried per iteration before the
// iteration is given up as degenerate.
const DefaultMaxResample = 1000

type Sampler interface {
	Sample() int
}

type Model interface {
	NumRange() (min, max int)
	Fit([]int) (ModelCoefficients, bool)
}

type ModelCoefficients interface {
	Evaluate() int
	Inliers(float32) []int
	IsIn(mat.Vec3, float32) bool
}

type SAC struct {
	Sampler Sampler
	Model   Model

	// MaxResample bounds the redraws of a degenerate sample in one iteration.
	// DefaultMaxResample is used if zero.
	MaxResample int

	bestCoeff ModelCoefficients
	bestE     int
}

func New(s Sampler, m Model) *SAC {
	return &SAC{Sampler: s, Model: m}
}

// Compute runs n iterations and keeps the hypothesis with the strictly
// largest evaluation. Degenerate samples are redrawn within the iteration.
func (s *SAC) Compute(n int) bool {
	var bestCoeff ModelCoefficients
	var bestE int

	maxResample := s.MaxResample
	if maxResample <= 0 {
		maxResample = DefaultMaxResample
	}

	num, _ := s.Model.NumRange()
	ids := make([]int, num)

	for i := 0; i < n; i++ {
		var coeff ModelCoefficients
		for k := 0; k < maxResample; k++ {
			for j := 0; j < num; j++ {
				ids[j] = s.Sampler.Sample()
			}
			c, ok := s.Model.Fit(ids)
			if ok {
				coeff = c
				break
			}
		}
		if coeff == nil {
			continue
		}
		e := coeff.Evaluate()
		if e > bestE {
			bestE = e
			bestCoeff = coeff
		}
	}
	if bestCoeff == nil {
		return false
	}
	s.bestCoeff = bestCoeff
	s.bestE = bestE
	return true
}

func (s *SAC) Coefficients() ModelCoefficients {
	return s.bestCoeff
}

// Score returns the evaluation of the best hypothesis.
func (s *SAC) Score() int {
	return s.bestE
}
