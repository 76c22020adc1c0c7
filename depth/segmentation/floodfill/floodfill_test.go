package floodfill

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/seqsense/patternlabel/depth"
	"github.com/seqsense/patternlabel/depth/mask"
	"github.com/seqsense/patternlabel/label"
)

// blockImage returns a w×h image at far with the block r at near.
func blockImage(w, h int, r image.Rectangle, near, far float32) *depth.Image {
	img := depth.NewFloat(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if image.Pt(x, y).In(r) {
				img.Set(x, y, near)
			} else {
				img.Set(x, y, far)
			}
		}
	}
	return img
}

var testBlock = image.Rect(40, 40, 60, 60)

func TestSegment(t *testing.T) {
	img := blockImage(100, 100, testBlock, 0.5, 1)

	testCases := map[string]Params{
		"Seed":    {Threshold: 0.2},
		"Scatter": {Threshold: 0.2, Scatter: true},
		"Default": {},
	}
	for name, p := range testCases {
		p := p
		t.Run(name, func(t *testing.T) {
			res, err := Segment(img, image.Pt(50, 50), p)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !res.Labels.Detected {
				t.Fatal("Expected detection")
			}
			if n := len(res.Labels.Idxs); n < 300 || n > 400 {
				t.Errorf("Expected about 324 labeled pixels, got %d", n)
			}
			if !res.Seed.In(testBlock) {
				t.Errorf("Seed %v must be in the block", res.Seed)
			}
			if res.Seed != image.Pt(49, 49) {
				t.Errorf("Expected seed (49, 49), got %v", res.Seed)
			}
			for _, i := range res.Labels.Idxs {
				col, row := label.FromLinearIndex(i, img.Width)
				if !image.Pt(col, row).In(testBlock) {
					t.Fatalf("Labeled pixel (%d, %d) is out of the block", col, row)
				}
			}
			if len(res.Labels.IdxsLimitPoints) == 0 {
				t.Error("Expected edge points")
			}
			if err := res.Labels.Check(img.Len(), false); err != nil {
				t.Error(err)
			}
			if res.Scale != 1 {
				t.Errorf("Expected scale 1, got %d", res.Scale)
			}
		})
	}
}

func TestSegment_FixedPoint(t *testing.T) {
	img := blockImage(100, 100, testBlock, 0.5, 2)
	res, err := Segment(img, image.Pt(45, 55), Params{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	res2, err := Segment(img, res.Seed, Params{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Seed != res2.Seed {
		t.Errorf("Seed moved from %v to %v", res.Seed, res2.Seed)
	}
	if diff := cmp.Diff(res.Labels, res2.Labels); diff != "" {
		t.Errorf("Labels differ (-first +second):\n%s", diff)
	}
}

func TestSegment_Miss(t *testing.T) {
	img := blockImage(100, 100, image.Rect(50, 50, 51, 51), 0.5, 2)
	res, err := Segment(img, image.Pt(50, 50), Params{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Labels.Detected {
		t.Error("Expected miss")
	}
	if diff := cmp.Diff(label.Miss(), res.Labels); diff != "" {
		t.Errorf("Unexpected labels (-want +got):\n%s", diff)
	}
	if res.Seed != image.Pt(50, 50) {
		t.Errorf("Expected fallback seed (50, 50), got %v", res.Seed)
	}
	if n := res.Filled.Count(); n != 0 {
		t.Errorf("Expected nothing filled, got %d", n)
	}
}

func TestSegment_Threshold(t *testing.T) {
	img := blockImage(100, 100, testBlock, 0.5, 2)
	var prev *mask.Mask
	for _, th := range []float32{0.05, 0.1, 0.2, 0.5, 1, 1.6} {
		res, err := Segment(img, image.Pt(50, 50), Params{Threshold: th})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if prev != nil {
			for i, v := range prev.Pix {
				if v && !res.Solid.Pix[i] {
					t.Fatalf("Region shrank at threshold %v", th)
				}
			}
		}
		prev = res.Solid
	}
	// The 1.5m step is passable at 1.6.
	if n := prev.Count(); n != 98*98 {
		t.Errorf("Expected whole interior, got %d", n)
	}
}

func TestSegment_Ramp(t *testing.T) {
	img := depth.NewFloat(100, 100)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.Set(x, y, 1+0.01*float32(x))
		}
	}
	res, err := Segment(img, image.Pt(50, 50), Params{Threshold: 0.005})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Horizontal steps block, vertical ones pass.
	if n := len(res.Labels.Idxs); n != 98 {
		t.Errorf("Expected one column of 98 pixels, got %d", n)
	}
	for _, i := range res.Labels.Idxs {
		if col, _ := label.FromLinearIndex(i, img.Width); col != 50 {
			t.Fatalf("Expected column 50, got %d", col)
		}
	}
}

func TestSegment_PyrDown(t *testing.T) {
	img := blockImage(100, 100, testBlock, 0.5, 2)
	res, err := Segment(img, image.Pt(50, 50), Params{PyrDown: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !res.Labels.Detected {
		t.Fatal("Expected detection")
	}
	if res.Scale != 2 {
		t.Errorf("Expected scale 2, got %d", res.Scale)
	}
	if res.Solid.Width != 50 || res.Solid.Height != 50 {
		t.Errorf("Expected 50x50 masks, got %dx%d", res.Solid.Width, res.Solid.Height)
	}
	if !res.Seed.In(testBlock) {
		t.Errorf("Seed %v must be in the block", res.Seed)
	}
	for _, i := range append(res.Labels.Idxs, res.Labels.IdxsLimitPoints...) {
		col, row := label.FromLinearIndex(i, img.Width)
		if col%2 != 0 || row%2 != 0 {
			t.Fatalf("Index (%d, %d) is not on the downscaled grid", col, row)
		}
	}
	if n := len(res.Labels.Idxs); n != res.Solid.Count() {
		t.Errorf("Expected %d labels, got %d", res.Solid.Count(), n)
	}
	if err := res.Labels.Check(img.Len(), false); err != nil {
		t.Error(err)
	}
}

func TestSegment_Subsample(t *testing.T) {
	img := blockImage(100, 100, testBlock, 0.5, 2)
	full, err := Segment(img, image.Pt(50, 50), Params{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	res, err := Segment(img, image.Pt(50, 50), Params{Subsample: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Rows and columns 42, 44, ..., 58 of the 41..58 region.
	if n := len(res.Labels.Idxs); n != 81 {
		t.Errorf("Expected 81 labels, got %d", n)
	}
	for _, i := range res.Labels.Idxs {
		col, row := label.FromLinearIndex(i, img.Width)
		if col%2 != 0 || row%2 != 0 {
			t.Fatalf("Index (%d, %d) is not subsampled", col, row)
		}
	}
	if diff := cmp.Diff(full.Labels.IdxsLimitPoints, res.Labels.IdxsLimitPoints); diff != "" {
		t.Errorf("Edges must not be subsampled (-want +got):\n%s", diff)
	}
	if res.Seed != full.Seed {
		t.Errorf("Expected seed %v, got %v", full.Seed, res.Seed)
	}
}

type recordSink struct {
	names []string
}

func (s *recordSink) Mask(name string, m *mask.Mask) {
	s.names = append(s.names, name)
}

func TestSegment_Sink(t *testing.T) {
	img := blockImage(20, 20, image.Rect(5, 5, 15, 15), 0.5, 2)
	s := &recordSink{}
	if _, err := Segment(img, image.Pt(10, 10), Params{Sink: s}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []string{"up", "down", "left", "right", "filled", "solid", "edges"}
	if diff := cmp.Diff(expected, s.names); diff != "" {
		t.Errorf("Unexpected masks (-want +got):\n%s", diff)
	}
}

func TestSegment_Error(t *testing.T) {
	img := blockImage(10, 10, image.Rect(2, 2, 8, 8), 0.5, 2)
	testCases := map[string]struct {
		img  *depth.Image
		seed image.Point
		p    Params
		err  error
	}{
		"NotFloat": {
			img: depth.NewMillimeters(10, 10),
			err: depth.ErrNotFloat,
		},
		"InvalidImage": {
			img: &depth.Image{Width: 10, Height: 10},
			err: depth.ErrInvalidImage,
		},
		"SeedOutOfBounds": {
			img:  img,
			seed: image.Pt(10, 5),
			err:  ErrSeedOutOfBounds,
		},
		"NegativeSeed": {
			img:  img,
			seed: image.Pt(-1, 5),
			err:  ErrSeedOutOfBounds,
		},
		"NegativeThreshold": {
			img: img,
			p:   Params{Threshold: -0.1},
			err: ErrInvalidParams,
		},
		"NegativePyrDown": {
			img: img,
			p:   Params{PyrDown: -1},
			err: ErrInvalidParams,
		},
		"NegativeSubsample": {
			img: img,
			p:   Params{Subsample: -2},
			err: ErrInvalidParams,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			_, err := Segment(tt.img, tt.seed, tt.p)
			if !errors.Is(err, tt.err) {
				t.Errorf("Expected error %v, got %v", tt.err, err)
			}
		})
	}
	t.Run("EncodingError", func(t *testing.T) {
		_, err := Segment(depth.NewMillimeters(4, 4), image.Point{}, Params{})
		var encErr *depth.EncodingError
		if !errors.As(err, &encErr) {
			t.Errorf("Expected *depth.EncodingError, got %T", err)
		}
	})
}
