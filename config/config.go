// Package config loads the labeling setup of a sensor collection.
package config

import (
	"image"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/patternlabel/depth/segmentation/floodfill"
	"github.com/seqsense/patternlabel/pcd/segmentation/pattern"
	"github.com/seqsense/patternlabel/track"
)

type Modality string

const (
	PointCloud Modality = "pointcloud"
	Depth      Modality = "depth"
)

const (
	DefaultRadius     = 0.2
	DefaultIterations = 100
	DefaultThreshold  = 0.01
	DefaultRandSeed   = 1
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Sensors []Sensor `yaml:"sensors"`
}

type Sensor struct {
	Name     string    `yaml:"name"`
	Modality Modality  `yaml:"modality"`
	Seed     []float32 `yaml:"seed"`

	PointCloud CloudParams `yaml:"pointcloud"`
	Depth      DepthParams `yaml:"depth"`
}

type CloudParams struct {
	Radius     float32 `yaml:"radius"`
	Iterations int     `yaml:"iterations"`
	Threshold  float32 `yaml:"threshold"`
	RandSeed   int64   `yaml:"rand_seed"`
	Refine     bool    `yaml:"refine"`
}

type DepthParams struct {
	Threshold     float32 `yaml:"threshold"`
	Scatter       bool    `yaml:"scatter"`
	ScatterRadius float64 `yaml:"scatter_radius"`
	ScatterCount  int     `yaml:"scatter_count"`
	PyrDown       int     `yaml:"pyrdown"`
	Subsample     int     `yaml:"subsample"`
}

func Load(r io.Reader) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding config")
	}
	for i := range c.Sensors {
		s := &c.Sensors[i]
		if err := s.Normalize(); err != nil {
			return nil, errors.Wrapf(err, "sensor %d (%s)", i, s.Name)
		}
	}
	return c, nil
}

func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening config")
	}
	defer f.Close()
	return Load(f)
}

func (c *Config) Sensor(name string) (*Sensor, bool) {
	for i := range c.Sensors {
		if c.Sensors[i].Name == name {
			return &c.Sensors[i], true
		}
	}
	return nil, false
}

// Normalize fills the unset parameters by the defaults and validates s.
func (s *Sensor) Normalize() error {
	s.setDefaults()
	return s.validate()
}

func (s *Sensor) setDefaults() {
	switch s.Modality {
	case PointCloud:
		p := &s.PointCloud
		if p.Radius == 0 {
			p.Radius = DefaultRadius
		}
		if p.Iterations == 0 {
			p.Iterations = DefaultIterations
		}
		if p.Threshold == 0 {
			p.Threshold = DefaultThreshold
		}
		if p.RandSeed == 0 {
			p.RandSeed = DefaultRandSeed
		}
	case Depth:
		p := &s.Depth
		if p.Threshold == 0 {
			p.Threshold = floodfill.DefaultThreshold
		}
		if p.ScatterRadius == 0 {
			p.ScatterRadius = floodfill.DefaultScatterRadius
		}
		if p.ScatterCount == 0 {
			p.ScatterCount = floodfill.DefaultScatterCount
		}
		if p.Subsample == 0 {
			p.Subsample = 1
		}
	}
}

func (s *Sensor) validate() error {
	if s.Name == "" {
		return errors.Wrap(ErrInvalidConfig, "empty name")
	}
	switch s.Modality {
	case PointCloud:
		if len(s.Seed) != 3 {
			return errors.Wrapf(ErrInvalidConfig, "point cloud seed must be [x, y, z], got %v", s.Seed)
		}
		p := s.PointCloud
		if !(p.Radius > 0) || p.Iterations < 1 || !(p.Threshold > 0) {
			return errors.Wrapf(ErrInvalidConfig, "point cloud params %+v", p)
		}
	case Depth:
		if len(s.Seed) != 2 || s.Seed[0] < 0 || s.Seed[1] < 0 {
			return errors.Wrapf(ErrInvalidConfig, "depth seed must be [col, row], got %v", s.Seed)
		}
		p := s.Depth
		if !(p.Threshold > 0) || p.PyrDown < 0 || p.Subsample < 1 ||
			p.ScatterRadius < 0 || p.ScatterCount < 1 {
			return errors.Wrapf(ErrInvalidConfig, "depth params %+v", p)
		}
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown modality %q", s.Modality)
	}
	return nil
}

// CloudTracker returns the tracker of a point cloud sensor.
func (s *Sensor) CloudTracker(logger *zap.Logger) (*track.CloudTracker, error) {
	if s.Modality != PointCloud {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s is not a point cloud sensor", s.Name)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := s.PointCloud
	return &track.CloudTracker{
		Seed: mat.Vec3{s.Seed[0], s.Seed[1], s.Seed[2]},
		Params: pattern.Params{
			Radius:     p.Radius,
			Iterations: p.Iterations,
			Threshold:  p.Threshold,
			Rand:       rand.New(rand.NewSource(p.RandSeed)),
			Refine:     p.Refine,
			Logger:     logger.With(zap.String("sensor", s.Name)),
		},
	}, nil
}

// DepthTracker returns the tracker of a depth sensor.
func (s *Sensor) DepthTracker(logger *zap.Logger) (*track.DepthTracker, error) {
	if s.Modality != Depth {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s is not a depth sensor", s.Name)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := s.Depth
	return &track.DepthTracker{
		Seed: image.Pt(int(s.Seed[0]), int(s.Seed[1])),
		Params: floodfill.Params{
			Threshold:     p.Threshold,
			Scatter:       p.Scatter,
			ScatterRadius: p.ScatterRadius,
			ScatterCount:  p.ScatterCount,
			PyrDown:       p.PyrDown,
			Subsample:     p.Subsample,
			Logger:        logger.With(zap.String("sensor", s.Name)),
		},
	}, nil
}
