// Package floodfill segments a calibration pattern in a depth image by
// region growing over depth continuity from a seed pixel.
package floodfill

import (
	"image"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seqsense/patternlabel/depth"
	"github.com/seqsense/patternlabel/depth/mask"
	"github.com/seqsense/patternlabel/label"
)

const (
	DefaultThreshold     = 0.2
	DefaultScatterRadius = 8
	DefaultScatterCount  = 10
)

var (
	ErrInvalidParams   = errors.New("invalid flood fill parameters")
	ErrSeedOutOfBounds = errors.New("seed is out of the image")
)

// Sink receives intermediate masks for debugging.
type Sink interface {
	Mask(name string, m *mask.Mask)
}

type Params struct {
	// Threshold is the largest depth step in meters between neighbors
	// of the same surface. DefaultThreshold is used if zero.
	Threshold float32

	// Scatter starts the fill from a ring around the seed instead of
	// the seed itself.
	Scatter       bool
	ScatterRadius float64
	ScatterCount  int

	// PyrDown is the number of image halvings before the fill.
	PyrDown int
	// Subsample is the stride of the labeled pixels. 1 is used if zero.
	Subsample int

	Sink   Sink
	Logger *zap.Logger
}

func (p Params) withDefaults() Params {
	if p.Threshold == 0 {
		p.Threshold = DefaultThreshold
	}
	if p.ScatterRadius == 0 {
		p.ScatterRadius = DefaultScatterRadius
	}
	if p.ScatterCount == 0 {
		p.ScatterCount = DefaultScatterCount
	}
	if p.Subsample == 0 {
		p.Subsample = 1
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return p
}

func (p *Params) validate() error {
	switch {
	case !(p.Threshold > 0):
		return errors.Wrapf(ErrInvalidParams, "threshold %v", p.Threshold)
	case p.PyrDown < 0:
		return errors.Wrapf(ErrInvalidParams, "pyrdown %d", p.PyrDown)
	case p.Subsample < 1:
		return errors.Wrapf(ErrInvalidParams, "subsample %d", p.Subsample)
	case p.Scatter && !(p.ScatterRadius >= 0):
		return errors.Wrapf(ErrInvalidParams, "scatter radius %v", p.ScatterRadius)
	case p.Scatter && p.ScatterCount < 1:
		return errors.Wrapf(ErrInvalidParams, "scatter count %d", p.ScatterCount)
	}
	return nil
}

type Result struct {
	// Labels are linear indices in the input image.
	Labels label.Labels
	// Seed is the seed pixel for the next frame in the input image.
	Seed image.Point

	// Filled, Solid and Edges are in the downscaled resolution.
	Filled, Solid, Edges *mask.Mask
	// Scale is the ratio of the input resolution to the mask resolution.
	Scale int
}

// Segment grows the region of continuous depth around seed.
// A frame without the pattern is not an error; it gives a result with
// Labels.Detected unset.
func Segment(img *depth.Image, seed image.Point, p Params) (*Result, error) {
	if err := depth.RequireFloat(img); err != nil {
		return nil, err
	}
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	if !seed.In(image.Rect(0, 0, img.Width, img.Height)) {
		return nil, errors.Wrapf(ErrSeedOutOfBounds, "%v in %dx%d", seed, img.Width, img.Height)
	}
	logger := p.Logger
	now := time.Now()

	src := img
	for i := 0; i < p.PyrDown; i++ {
		var err error
		if src, err = depth.PyrDown(src); err != nil {
			return nil, err
		}
		seed = seed.Div(2)
	}
	scale := 1 << p.PyrDown

	dirs := propagation(src, p.Threshold)
	if p.Sink != nil {
		for d, m := range dirs {
			p.Sink.Mask(direction(d).String(), m)
		}
	}

	var frontier []image.Point
	if p.Scatter {
		frontier = scatter(seed, p.ScatterRadius, p.ScatterCount, src.Width, src.Height)
	} else {
		frontier = []image.Point{seed}
	}
	filled, iterations := fill(dirs, frontier)
	solid := mask.FillHoles(filled)
	edges := mask.Edges(solid, mask.DefaultEdgeLow, mask.DefaultEdgeHigh)
	if p.Sink != nil {
		p.Sink.Mask("filled", filled)
		p.Sink.Mask("solid", solid)
		p.Sink.Mask("edges", edges)
	}

	res := &Result{
		Labels: label.Miss(),
		Filled: filled,
		Solid:  solid,
		Edges:  edges,
		Scale:  scale,
	}
	c, ok := mask.Centroid(solid)
	if !ok {
		res.Seed = image.Pt(src.Width/2, src.Height/2).Mul(scale)
		logger.Debug("no region grown",
			zap.Int("frontier", len(frontier)),
			zap.Duration("elapsed", time.Since(now)),
		)
		return res, nil
	}
	res.Seed = c.Mul(scale)
	res.Labels = label.Labels{
		Detected:        true,
		Idxs:            indices(mask.Sample(solid, p.Subsample), scale, img.Width),
		IdxsLimitPoints: indices(edges, scale, img.Width),
	}
	logger.Debug("region grown",
		zap.Int("iterations", iterations),
		zap.Int("filled", filled.Count()),
		zap.Int("solid", solid.Count()),
		zap.Int("edges", len(res.Labels.IdxsLimitPoints)),
		zap.Duration("elapsed", time.Since(now)),
	)
	return res, nil
}

func indices(m *mask.Mask, scale, width int) []int {
	ps := m.Points()
	idxs := make([]int, len(ps))
	for i, p := range ps {
		idxs[i] = label.LinearIndex(p.X*scale, p.Y*scale, width)
	}
	return idxs
}
