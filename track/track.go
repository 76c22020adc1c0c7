// Package track threads the seed of a segmenter through a frame sequence.
package track

import (
	"image"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/patternlabel/depth"
	"github.com/seqsense/patternlabel/depth/segmentation/floodfill"
	"github.com/seqsense/patternlabel/pcd/segmentation/pattern"
)

// CloudTracker segments point clouds, feeding each returned seed into
// the next frame.
type CloudTracker struct {
	Seed   mat.Vec3
	Params pattern.Params

	// Misses is the number of consecutive frames without the pattern.
	Misses int
}

func (t *CloudTracker) Next(cloud pc.Vec3RandomAccessor) (*pattern.Result, error) {
	res, err := pattern.Segment(cloud, t.Seed, t.Params)
	if err != nil {
		return nil, err
	}
	t.Seed = res.Seed
	if res.Labels.Detected {
		t.Misses = 0
	} else {
		t.Misses++
	}
	return res, nil
}

// DepthTracker segments depth images, feeding each returned seed into
// the next frame.
type DepthTracker struct {
	Seed   image.Point
	Params floodfill.Params

	// Misses is the number of consecutive frames without the pattern.
	Misses int
}

func (t *DepthTracker) Next(img *depth.Image) (*floodfill.Result, error) {
	res, err := floodfill.Segment(img, t.Seed, t.Params)
	if err != nil {
		return nil, err
	}
	t.Seed = res.Seed
	if res.Labels.Detected {
		t.Misses = 0
	} else {
		t.Misses++
	}
	return res, nil
}
