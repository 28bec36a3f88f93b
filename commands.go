package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"exposer/internal/dataset"
	"exposer/internal/exposer"
	expimage "exposer/internal/image"
	"exposer/internal/project"
)

// lambdaList collects repeated --lambda values, one structure per value.
type lambdaList struct {
	lambdas [][]int
}

func (l *lambdaList) Set(value string) error {
	lambda, err := exposer.ParseLambda(value)
	if err != nil {
		return err
	}
	l.lambdas = append(l.lambdas, lambda)
	return nil
}

func (l *lambdaList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(lo.Map(l.lambdas, func(lambda []int, _ int) string {
		return formatLambda(lambda)
	}), " ")
}

func formatLambda(lambda []int) string {
	return strings.Trim(strings.Join(strings.Fields(fmt.Sprint(lambda)), ","), "[]")
}

// TrainAction learns a single structure and saves it.
func TrainAction(c *cli.Context) error {
	ds, err := loadData(c, c.String(flagData), "", false)
	if err != nil {
		return err
	}
	configs, err := structuresFromFlags(c)
	if err != nil {
		return err
	}
	if len(configs) != 1 {
		return errors.Errorf("train takes exactly one --%s, got %d", flagLambda, len(configs))
	}

	e, err := learn(configs[0], ds)
	if err != nil {
		return err
	}
	if err := e.Save(c.String(flagOut)); err != nil {
		return err
	}
	printThetas(c, []*exposer.Exposer{e})
	fmt.Fprintf(c.App.Writer, "Saved model to %s\n", c.String(flagOut))
	return nil
}

// ScoreAction learns every structure, sums their votes into the test samples,
// and reports the combined score.
func ScoreAction(c *cli.Context) error {
	var (
		ds      *dataset.DataSet
		configs []exposer.Config
		exp     *project.File
		err     error
	)
	expPath := c.String(flagExperiment)
	if expPath != "" {
		exp, err = project.Load(expPath)
		if err != nil {
			return err
		}
		ds, err = loadExperimentData(exp, expPath)
		if err != nil {
			return err
		}
		configs = exp.Structures
		if err := exp.Validate(ds.ClassesNum, ds.FeaturesNum); err != nil {
			return err
		}
	} else {
		ds, err = loadData(c, c.String(flagData), c.String(flagTest), true)
		if err != nil {
			return err
		}
		configs, err = structuresFromFlags(c)
		if err != nil {
			return err
		}
	}
	if len(configs) == 0 {
		return errors.Errorf("no structures: pass --%s or --%s", flagLambda, flagExperiment)
	}

	ds.ClearSupports()
	trained := make([]*exposer.Exposer, 0, len(configs))
	for i, cfg := range configs {
		e, err := learn(cfg, ds)
		if err != nil {
			return errors.Wrapf(err, "structure %d", i)
		}
		if err := e.Predict(ds.TestQueries()); err != nil {
			return errors.Wrapf(err, "structure %d", i)
		}
		if exp != nil && c.Bool(flagSaveModels) {
			path := exp.GetModelPath(expPath, i)
			if err := e.Save(path); err != nil {
				return err
			}
			logger.Infow("saved model", "structure", i, "path", path)
		}
		trained = append(trained, e)
	}

	score, err := ds.Score()
	if err != nil {
		return err
	}
	printThetas(c, trained)
	printScore(c, ds, score)
	return nil
}

// RenderAction draws one image per model, side by side.
func RenderAction(c *cli.Context) error {
	mosaic := expimage.NewMosaic(c.Int(flagZoom))
	for _, path := range c.StringSlice(flagModel) {
		e, err := exposer.Load(path, exposer.WithLogger(logger))
		if err != nil {
			return err
		}
		pixels, err := e.Render(c.Int(flagScale))
		if err != nil {
			return errors.Wrap(err, path)
		}
		mosaic.Add(expimage.Upscale(pixels.Image(), c.Int(flagZoom)))
	}
	out := c.String(flagOut)
	if err := expimage.Save(out, mosaic.Render()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Rendered %d model(s) to %s\n", mosaic.Len(), out)
	return nil
}

// DropVectorsAction prints the offsets and weights of a grid geometry.
func DropVectorsAction(c *cli.Context) error {
	vectors, err := exposer.DropVectors(c.Int(flagDims), c.Int(flagGrain), c.Float64(flagRadius))
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"#", "Offset", "Norm", "Weight"})
	for i, dv := range vectors {
		t.AppendRow(table.Row{i, formatLambda(dv.Offset), fmt.Sprintf("%.3f", dv.Offset.Norm()), fmt.Sprintf("%.4f", dv.Weight)})
	}
	t.AppendFooter(table.Row{"", "", "total", len(vectors)})
	t.Render()
	return nil
}

func structuresFromFlags(c *cli.Context) ([]exposer.Config, error) {
	mode, err := exposer.ParseVotingMode(c.String(flagMode))
	if err != nil {
		return nil, err
	}
	lambdas, _ := c.Generic(flagLambda).(*lambdaList)
	if lambdas == nil || len(lambdas.lambdas) == 0 {
		return nil, errors.Errorf("at least one --%s is required", flagLambda)
	}
	return lo.Map(lambdas.lambdas, func(lambda []int, _ int) exposer.Config {
		return exposer.Config{
			Grain:        c.Int(flagGrain),
			Radius:       c.Float64(flagRadius),
			ChosenLambda: lambda,
			VotingMode:   mode,
			Workers:      c.Int(flagWorkers),
		}
	}), nil
}

func learn(cfg exposer.Config, ds *dataset.DataSet) (*exposer.Exposer, error) {
	e, err := exposer.New(cfg, ds.ClassesNum, ds.FeaturesNum, exposer.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if err := e.Learn(ds.TrainSamples()); err != nil {
		return nil, err
	}
	logger.Infow("learned structure",
		"lambda", cfg.ChosenLambda,
		"mode", e.Config().VotingMode,
		"theta", e.Theta(),
		"elapsed", time.Since(start))
	return e, nil
}

func loaderParams(c *cli.Context) dataset.LoaderParams {
	params := dataset.LoaderParamsDefaults()
	params.ClassesFirst = c.Bool(flagLabelFirst)
	params.ClassesFromZero = !c.Bool(flagFromOne)
	params.Header = c.Bool(flagHeader)
	for _, r := range c.String(flagSeparator) {
		params.Splitter = r
		break
	}
	return params
}

// loadData reads the training file and, when holdOut is set, either a test file
// or a random split of the training data.
func loadData(c *cli.Context, trainPath, testPath string, holdOut bool) (*dataset.DataSet, error) {
	if trainPath == "" {
		return nil, errors.Errorf("--%s is required", flagData)
	}
	params := loaderParams(c)
	ds, err := dataset.LoadFile(trainPath, params)
	if err != nil {
		return nil, err
	}
	if holdOut {
		if err := attachTest(ds, testPath, params, c.Float64(flagSplit), c.Int64(flagSeed)); err != nil {
			return nil, err
		}
	}
	if !c.Bool(flagRaw) {
		ds.Normalize()
	}
	logger.Infow("loaded data",
		"name", ds.Name,
		"train", len(ds.Samples),
		"test", len(ds.Test),
		"classes", ds.ClassesNum,
		"features", ds.FeaturesNum)
	return ds, nil
}

func loadExperimentData(exp *project.File, expPath string) (*dataset.DataSet, error) {
	params := dataset.LoaderParams{
		ClassesFirst:    exp.Settings.LabelFirst,
		ClassesFromZero: !exp.Settings.LabelsFrom1,
		Header:          exp.Settings.Header,
		Splitter:        exp.Settings.SeparatorRune(),
	}
	trainPath := exp.GetTrainPath(expPath)
	if trainPath == "" {
		return nil, errors.Errorf("%s: no training data", expPath)
	}
	ds, err := dataset.LoadFile(trainPath, params)
	if err != nil {
		return nil, err
	}
	if err := attachTest(ds, exp.GetTestPath(expPath), params, exp.SplitFraction, exp.Seed); err != nil {
		return nil, err
	}
	if !exp.Settings.Raw {
		ds.Normalize()
	}
	return ds, nil
}

func attachTest(ds *dataset.DataSet, testPath string, params dataset.LoaderParams, split float64, seed int64) error {
	if testPath == "" {
		return ds.Split(split, seed)
	}
	testSet, err := dataset.LoadFile(testPath, params)
	if err != nil {
		return err
	}
	return ds.SetTest(testSet)
}

func printThetas(c *cli.Context, trained []*exposer.Exposer) {
	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"#", "Lambda", "Grain", "Radius", "Mode", "Theta", "Theta per class"})
	for i, e := range trained {
		cfg := e.Config()
		perClass := lo.Map(e.ThetaVector(), func(v float64, _ int) string {
			return fmt.Sprintf("%.3f", v)
		})
		t.AppendRow(table.Row{
			i,
			formatLambda(cfg.ChosenLambda),
			cfg.Grain,
			cfg.Radius,
			cfg.VotingMode,
			fmt.Sprintf("%.4f", e.Theta()),
			strings.Join(perClass, " "),
		})
	}
	t.Render()
}

func printScore(c *cli.Context, ds *dataset.DataSet, score dataset.Score) {
	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.SetTitle(fmt.Sprintf("%s: %d/%d correct", ds.Name, score.Correct, score.Samples))
	t.AppendHeader(table.Row{"Class", "Support", "Precision", "Recall", "F1"})
	for _, cs := range score.Classes {
		t.AppendRow(table.Row{cs.Class, cs.Support, pct(cs.Precision), pct(cs.Recall), pct(cs.F1)})
	}
	t.AppendFooter(table.Row{"weighted", score.Samples, pct(score.Precision), pct(score.Recall), pct(score.F1)})
	t.AppendFooter(table.Row{"accuracy", "", "", "", pct(score.Accuracy)})
	t.Render()
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", 100*v)
}
