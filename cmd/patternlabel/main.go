// Command patternlabel labels a calibration pattern in sequences of point
// cloud or depth frames and writes one JSON line per frame.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagDebug    = "debug"
	flagDebugDir = "debug-dir"
	flagOutDir   = "output-dir"
	flagConfig   = "config"
	flagSensor   = "sensor"

	flagSeed       = "seed"
	flagRadius     = "radius"
	flagIterations = "iterations"
	flagThreshold  = "threshold"
	flagRandSeed   = "rand-seed"
	flagRefine     = "refine"

	flagScatter   = "scatter"
	flagPyrDown   = "pyrdown"
	flagSubsample = "subsample"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var logger *zap.Logger
	return &cli.App{
		Name:  "patternlabel",
		Usage: "label calibration patterns in sensor frames",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			if c.Bool(flagDebug) {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return errors.Wrap(err, "creating logger")
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "cloud",
				Usage:     "label a planar pattern in PCD files",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:     flagSeed,
						Usage:    "initial seed point `X,Y,Z`",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  flagRadius,
						Usage: "neighborhood radius around the seed",
						Value: 0.2,
					},
					&cli.IntFlag{
						Name:  flagIterations,
						Usage: "number of RANSAC iterations",
						Value: 100,
					},
					&cli.Float64Flag{
						Name:  flagThreshold,
						Usage: "RANSAC inlier distance",
						Value: 0.01,
					},
					&cli.Int64Flag{
						Name:  flagRandSeed,
						Usage: "seed of the RANSAC sampler",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  flagRefine,
						Usage: "refine the plane by least squares",
					},
					&cli.StringFlag{
						Name:  flagOutDir,
						Usage: "write PCD files with a label field to `DIR`",
					},
				},
				Action: func(c *cli.Context) error {
					tr, err := cloudTrackerFromFlags(c, logger)
					if err != nil {
						return err
					}
					return labelClouds(c.App.Writer, tr, c.Args().Slice(), c.String(flagOutDir), logger)
				},
			},
			{
				Name:      "depth",
				Usage:     "label a pattern in 16-bit millimeter depth PNG files",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:     flagSeed,
						Usage:    "initial seed pixel `COL,ROW`",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  flagThreshold,
						Usage: "largest depth step in meters within the pattern",
						Value: 0.2,
					},
					&cli.BoolFlag{
						Name:  flagScatter,
						Usage: "start from a ring around the seed",
					},
					&cli.IntFlag{
						Name:  flagPyrDown,
						Usage: "number of image halvings before labeling",
					},
					&cli.IntFlag{
						Name:  flagSubsample,
						Usage: "stride of the labeled pixels",
						Value: 1,
					},
					&cli.StringFlag{
						Name:  flagDebugDir,
						Usage: "write intermediate masks as PNG to `DIR`",
					},
				},
				Action: func(c *cli.Context) error {
					tr, err := depthTrackerFromFlags(c, logger)
					if err != nil {
						return err
					}
					return labelDepths(c.App.Writer, tr, c.Args().Slice(), c.String(flagDebugDir), logger)
				},
			},
			{
				Name:      "run",
				Usage:     "label frames of a sensor described in a config file",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagConfig,
						Aliases:  []string{"c"},
						Usage:    "load configuration from `FILE`",
						Required: true,
					},
					&cli.StringFlag{
						Name:     flagSensor,
						Usage:    "name of the sensor in the config",
						Required: true,
					},
					&cli.StringFlag{
						Name:  flagDebugDir,
						Usage: "write intermediate masks of depth sensors as PNG to `DIR`",
					},
					&cli.StringFlag{
						Name:  flagOutDir,
						Usage: "write PCD files of point cloud sensors with a label field to `DIR`",
					},
				},
				Action: func(c *cli.Context) error {
					return runConfig(c, logger)
				},
			},
		},
	}
}
