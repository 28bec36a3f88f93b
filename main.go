// Package main provides the entry point for the exposer command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"exposer/internal/exposer"
	"exposer/internal/version"
)

const (
	// Flags.
	flagDebug      = "debug"
	flagData       = "data"
	flagTest       = "test"
	flagSplit      = "split"
	flagSeed       = "seed"
	flagLabelFirst = "label-first"
	flagFromOne    = "labels-from-one"
	flagHeader     = "header"
	flagSeparator  = "separator"
	flagRaw        = "raw"
	flagGrain      = "grain"
	flagRadius     = "radius"
	flagLambda     = "lambda"
	flagMode       = "mode"
	flagWorkers    = "workers"
	flagExperiment = "experiment"
	flagOut        = "out"
	flagModel      = "model"
	flagScale      = "scale"
	flagZoom       = "zoom"
	flagDims       = "dims"
	flagSaveModels = "save-models"
)

var logger = zap.NewNop().Sugar()

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "exposer",
		Usage:           "train and evaluate grid voting density classifiers",
		Version:         version.String(),
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var (
				l   *zap.Logger
				err error
			)
			if c.Bool(flagDebug) {
				l, err = zap.NewDevelopment()
			} else {
				cfg := zap.NewProductionConfig()
				cfg.Encoding = "console"
				l, err = cfg.Build()
			}
			if err != nil {
				return err
			}
			logger = l.Sugar()
			return nil
		},
		After: func(c *cli.Context) error {
			_ = logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "train",
				Usage:     "learn one structure and save the model",
				UsageText: "exposer train --data FILE --lambda 2,3 --out model.json",
				Flags: append(append(dataFlags(), structureFlags()...),
					&cli.StringFlag{
						Name:     flagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "write the model to `FILE`",
					},
				),
				Action: TrainAction,
			},
			{
				Name:      "score",
				Usage:     "learn one or more structures and score their combined vote on test data",
				UsageText: "exposer score --data FILE [--test FILE | --split 0.3] --lambda 0,1 --lambda 2,3",
				Flags: append(append(dataFlags(), structureFlags()...),
					&cli.StringFlag{
						Name:  flagExperiment,
						Usage: "read data paths and structures from experiment `FILE`",
					},
					&cli.BoolFlag{
						Name:  flagSaveModels,
						Usage: "save each trained structure next to the experiment file",
					},
				),
				Action: ScoreAction,
			},
			{
				Name:      "render",
				Usage:     "render saved models to an image",
				UsageText: "exposer render --model model.json [--model other.json] --out grid.png",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     flagModel,
						Aliases:  []string{"m"},
						Required: true,
						Usage:    "model `FILE`; repeat to place several side by side",
					},
					&cli.StringFlag{
						Name:     flagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "image `FILE` (.png, .bmp, .tif)",
					},
					&cli.IntFlag{
						Name:  flagScale,
						Value: exposer.DefaultScale,
						Usage: "guide colour weight in [0,255]",
					},
					&cli.IntFlag{
						Name:  flagZoom,
						Value: 8,
						Usage: "pixels per grid cell",
					},
				},
				Action: RenderAction,
			},
			{
				Name:      "dropvectors",
				Usage:     "list the influence offsets for a grid geometry",
				UsageText: "exposer dropvectors --grain 10 --radius .3 --dims 2",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagGrain, Value: 15, Usage: "quantization steps per dimension"},
					&cli.Float64Flag{Name: flagRadius, Value: 0.5, Usage: "influence reach as a fraction of the grid"},
					&cli.IntFlag{Name: flagDims, Value: 2, Usage: "number of grid dimensions"},
				},
				Action: DropVectorsAction,
			},
		},
	}
}

func dataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagData,
			Aliases: []string{"d"},
			Usage:   "training data `FILE` (CSV)",
		},
		&cli.StringFlag{
			Name:  flagTest,
			Usage: "test data `FILE`; defaults to a split of the training data",
		},
		&cli.Float64Flag{
			Name:  flagSplit,
			Value: 0.3,
			Usage: "fraction of the data held out for testing when no test file is given",
		},
		&cli.Int64Flag{
			Name:  flagSeed,
			Value: 1,
			Usage: "random seed for the split",
		},
		&cli.BoolFlag{
			Name:  flagLabelFirst,
			Usage: "class label is the first column instead of the last",
		},
		&cli.BoolFlag{
			Name:  flagFromOne,
			Usage: "class labels start at 1",
		},
		&cli.BoolFlag{
			Name:  flagHeader,
			Usage: "skip the first line",
		},
		&cli.StringFlag{
			Name:  flagSeparator,
			Value: ",",
			Usage: "field separator",
		},
		&cli.BoolFlag{
			Name:  flagRaw,
			Usage: "features are already in [0,1); skip min-max scaling",
		},
	}
}

func structureFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  flagGrain,
			Value: 15,
			Usage: "quantization steps per dimension",
		},
		&cli.Float64Flag{
			Name:  flagRadius,
			Value: 0.5,
			Usage: "influence reach as a fraction of the grid",
		},
		&cli.GenericFlag{
			Name:    flagLambda,
			Aliases: []string{"l"},
			Value:   &lambdaList{},
			Usage:   "comma separated feature indices spanning one grid; repeat for several structures",
		},
		&cli.StringFlag{
			Name:  flagMode,
			Value: exposer.Lone.String(),
			Usage: "voting mode: lone, theta1, theta2, theta3 or thetas",
		},
		&cli.IntFlag{
			Name:  flagWorkers,
			Value: 1,
			Usage: "goroutines used to build each grid",
		},
	}
}
