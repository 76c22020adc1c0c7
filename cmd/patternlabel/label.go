package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/seqsense/patternlabel/config"
	"github.com/seqsense/patternlabel/depth"
	"github.com/seqsense/patternlabel/label"
	"github.com/seqsense/patternlabel/pcd"
	"github.com/seqsense/patternlabel/track"
)

// record is a line of the output.
type record struct {
	Frame   string       `json:"frame"`
	Seed    []float64    `json:"seed"`
	Labels  label.Labels `json:"labels"`
	Plane   *[4]float64  `json:"plane,omitempty"`
	Refined *[4]float64  `json:"refined_plane,omitempty"`
}

func seedFlag(c *cli.Context, n int) ([]float32, error) {
	vs := c.Float64Slice(flagSeed)
	if len(vs) != n {
		return nil, errors.Errorf("--%s needs %d values, got %v", flagSeed, n, vs)
	}
	seed := make([]float32, n)
	for i, v := range vs {
		seed[i] = float32(v)
	}
	return seed, nil
}

func cloudTrackerFromFlags(c *cli.Context, logger *zap.Logger) (*track.CloudTracker, error) {
	seed, err := seedFlag(c, 3)
	if err != nil {
		return nil, err
	}
	s := config.Sensor{
		Name:     "cloud",
		Modality: config.PointCloud,
		Seed:     seed,
		PointCloud: config.CloudParams{
			Radius:     float32(c.Float64(flagRadius)),
			Iterations: c.Int(flagIterations),
			Threshold:  float32(c.Float64(flagThreshold)),
			RandSeed:   c.Int64(flagRandSeed),
			Refine:     c.Bool(flagRefine),
		},
	}
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	return s.CloudTracker(logger)
}

func depthTrackerFromFlags(c *cli.Context, logger *zap.Logger) (*track.DepthTracker, error) {
	seed, err := seedFlag(c, 2)
	if err != nil {
		return nil, err
	}
	s := config.Sensor{
		Name:     "depth",
		Modality: config.Depth,
		Seed:     seed,
		Depth: config.DepthParams{
			Threshold: float32(c.Float64(flagThreshold)),
			Scatter:   c.Bool(flagScatter),
			PyrDown:   c.Int(flagPyrDown),
			Subsample: c.Int(flagSubsample),
		},
	}
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	return s.DepthTracker(logger)
}

func runConfig(c *cli.Context, logger *zap.Logger) error {
	conf, err := config.LoadFile(c.String(flagConfig))
	if err != nil {
		return err
	}
	s, ok := conf.Sensor(c.String(flagSensor))
	if !ok {
		return errors.Errorf("sensor %q not found in %s", c.String(flagSensor), c.String(flagConfig))
	}
	switch s.Modality {
	case config.PointCloud:
		tr, err := s.CloudTracker(logger)
		if err != nil {
			return err
		}
		return labelClouds(c.App.Writer, tr, c.Args().Slice(), c.String(flagOutDir), logger)
	default:
		tr, err := s.DepthTracker(logger)
		if err != nil {
			return err
		}
		return labelDepths(c.App.Writer, tr, c.Args().Slice(), c.String(flagDebugDir), logger)
	}
}

func labelClouds(w io.Writer, tr *track.CloudTracker, files []string, outDir string, logger *zap.Logger) error {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
	}
	enc := json.NewEncoder(w)
	for _, f := range files {
		pp, err := pcd.LoadFile(f)
		if err != nil {
			return err
		}
		res, err := tr.Next(pp)
		if err != nil {
			return errors.Wrap(err, f)
		}
		rec := record{
			Frame:  f,
			Seed:   []float64{float64(res.Seed[0]), float64(res.Seed[1]), float64(res.Seed[2])},
			Labels: res.Labels,
		}
		if res.Labels.Detected {
			rec.Plane = &[4]float64{res.Plane.A, res.Plane.B, res.Plane.C, res.Plane.D}
		}
		if r := res.Refined; r != nil {
			rec.Refined = &[4]float64{r.A, r.B, r.C, r.D}
		}
		if err := enc.Encode(rec); err != nil {
			return errors.Wrap(err, "writing labels")
		}
		if outDir != "" {
			if err := saveLabeled(filepath.Join(outDir, filepath.Base(f)), pp, res.Labels); err != nil {
				return err
			}
		}
		logger.Info("labeled",
			zap.String("frame", f),
			zap.Bool("detected", res.Labels.Detected),
			zap.Int("points", len(res.Labels.Idxs)),
			zap.Int("misses", tr.Misses),
		)
	}
	return nil
}

func saveLabeled(path string, pp pcd.Points, l label.Labels) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating labeled pcd")
	}
	if err := pcd.SaveLabeled(f, pp, l.Classes(len(pp))); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}

func loadDepth(path string) (*depth.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening depth image")
	}
	defer f.Close()
	mm, err := depth.ReadPNG(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return depth.FromMillimeters(mm)
}

func labelDepths(w io.Writer, tr *track.DepthTracker, files []string, debugDir string, logger *zap.Logger) error {
	var sink *pngSink
	if debugDir != "" {
		if err := os.MkdirAll(debugDir, 0o755); err != nil {
			return errors.Wrap(err, "creating debug directory")
		}
		sink = &pngSink{dir: debugDir, logger: logger}
		tr.Params.Sink = sink
	}

	enc := json.NewEncoder(w)
	for i, f := range files {
		img, err := loadDepth(f)
		if err != nil {
			return err
		}
		if sink != nil {
			sink.frame = i
		}
		res, err := tr.Next(img)
		if err != nil {
			return errors.Wrap(err, f)
		}
		rec := record{
			Frame:  f,
			Seed:   []float64{float64(res.Seed.X), float64(res.Seed.Y)},
			Labels: res.Labels,
		}
		if err := enc.Encode(rec); err != nil {
			return errors.Wrap(err, "writing labels")
		}
		logger.Info("labeled",
			zap.String("frame", f),
			zap.Bool("detected", res.Labels.Detected),
			zap.Int("pixels", len(res.Labels.Idxs)),
			zap.Int("misses", tr.Misses),
			zap.Stringer("seed", res.Seed),
		)
	}
	return nil
}
