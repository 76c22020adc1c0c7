// Package pattern segments a planar calibration pattern in a point cloud
// around a seed point.
package pattern

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"go.uber.org/zap"

	"github.com/seqsense/patternlabel/label"
	"github.com/seqsense/patternlabel/pcd"
	"github.com/seqsense/patternlabel/pcd/sac"
)

var ErrInvalidParams = errors.New("invalid pattern segmentation parameters")

type Params struct {
	// Radius of the neighborhood of the seed point.
	Radius float32
	// Iterations is the number of RANSAC hypotheses.
	Iterations int
	// Threshold is the inlier distance to the plane.
	Threshold float32

	// Rand is the source of the RANSAC sampling.
	// A source seeded with 1 is created per call if nil.
	// It must not be shared by concurrent calls.
	Rand *rand.Rand
	// Refine enables the least squares refinement of the plane on the inliers.
	Refine bool

	Logger *zap.Logger
}

func (p *Params) validate() error {
	switch {
	case !(p.Radius >= 0):
		return errors.Wrapf(ErrInvalidParams, "radius %v", p.Radius)
	case p.Iterations < 1:
		return errors.Wrapf(ErrInvalidParams, "iterations %d", p.Iterations)
	case !(p.Threshold >= 0):
		return errors.Wrapf(ErrInvalidParams, "threshold %v", p.Threshold)
	}
	return nil
}

type Result struct {
	Labels label.Labels
	// Seed is the seed point for the next frame.
	Seed mat.Vec3
	// Plane is the winning RANSAC hypothesis.
	Plane sac.Plane
	// Refined is the least squares plane of the inliers if requested.
	Refined *sac.Plane
	// Inliers are the positions of the points in Labels.Idxs.
	Inliers []mat.Vec3
}

// Segment finds the plane around seed and labels its points.
// A frame without the pattern is not an error; it gives a result with
// Labels.Detected unset.
func Segment(cloud pc.Vec3RandomAccessor, seed mat.Vec3, p Params) (*Result, error) {
	if cloud == nil {
		return nil, errors.Wrap(ErrInvalidParams, "nil cloud")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now()

	indice := pcd.Within(cloud, seed, p.Radius)
	if len(indice) == 0 {
		logger.Debug("no point around seed", zap.Any("seed", seed))
		return &Result{Labels: label.Miss(), Seed: seed}, nil
	}
	near := pc.NewIndiceVec3RandomAccessor(cloud, indice)

	// Track the cluster even if no plane is found.
	next, _ := pcd.Mean(near)
	res := &Result{Labels: label.Miss(), Seed: next}

	if len(indice) < 3 {
		logger.Debug("too few points around seed", zap.Int("points", len(indice)))
		return res, nil
	}

	rnd := p.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	s := sac.New(sac.NewRandomSampler(len(indice), rnd), sac.NewPlaneModel(near, p.Threshold))
	if ok := s.Compute(p.Iterations); !ok {
		logger.Debug("no plane found", zap.Int("points", len(indice)))
		return res, nil
	}
	plane, _ := sac.PlaneOf(s.Coefficients())
	plane.Inliers = s.Score()
	res.Plane = plane

	in := s.Coefficients().Inliers(p.Threshold)
	res.Inliers = make([]mat.Vec3, len(in))
	idxs := make([]int, len(in))
	for j, i := range in {
		idxs[j] = indice[i]
		res.Inliers[j] = near.Vec3At(i)
	}
	logger.Debug("plane found",
		zap.Int("points", len(indice)),
		zap.Int("inliers", len(idxs)),
		zap.Duration("elapsed", time.Since(now)),
	)
	if len(idxs) == 0 {
		return res, nil
	}

	res.Labels = label.Labels{
		Detected:        true,
		Idxs:            idxs,
		IdxsLimitPoints: limitPoints(idxs, res.Inliers),
	}

	if p.Refine {
		if refined, ok := sac.RefinePlane(pcd.Points(res.Inliers)); ok {
			res.Refined = &refined
		}
	}
	return res, nil
}
