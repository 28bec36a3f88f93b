// Package exposer implements the Exposer, a weak classifier for ensembles that
// exposes a quantized subspace of the feature space to a beam of training
// samples. Each sample's influence is spread over every grid cell within a
// radius of its location, so a sample may fall into several bins.
//
// Usage:
//
//	ex, err := exposer.New(exposer.Config{
//		Grain:        15,
//		Radius:       .5,
//		ChosenLambda: []int{2, 3},
//	}, ds.ClassesNum, ds.FeaturesNum)
//	if err != nil { ... }
//	if err := ex.Learn(ds.TrainSamples()); err != nil { ... }
//	ds.ClearSupports()
//	if err := ex.Predict(ds.TestQueries()); err != nil { ... }
//	score, err := ds.Score()
//
// Learning and prediction must not run concurrently on one Exposer; concurrent
// predictions against a trained Exposer are safe.
package exposer

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"exposer/pkg/geometry"
)

// Sample is a labelled training example. Features are expected in [0,1) and
// may contain NaN for missing values.
type Sample interface {
	Label() int
	Features() []float64
}

// Query is a sample to classify. Support returns the caller-owned accumulator
// (one value per class) that Predict adds into; DecidePrediction finalizes the
// sample's decision from it.
type Query interface {
	Features() []float64
	Support() []float64
	DecidePrediction()
}

// Exposer is one grid/voting structure over the feature subspace named by its
// configuration.
type Exposer struct {
	cfg         Config
	classes     int
	features    int
	dropVectors []DropVector
	voter       Voter
	params      MeasureParams
	logger      *zap.SugaredLogger

	grid     *Grid
	measures *Measures
}

// Option customizes an Exposer.
type Option func(*Exposer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Exposer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMeasureParams overrides the measure thresholds.
func WithMeasureParams(params MeasureParams) Option {
	return func(e *Exposer) {
		e.params = params
	}
}

// New validates cfg against the dataset shape and precomputes the drop
// vectors. numFeatures is the length of sample feature vectors; <= 0 skips the
// lambda range check.
func New(cfg Config, numClasses, numFeatures int, opts ...Option) (*Exposer, error) {
	if err := cfg.Validate(numClasses, numFeatures); err != nil {
		return nil, errors.Wrap(err, "invalid exposer configuration")
	}
	cfg = cfg.withDefaults()

	voter, err := cfg.VotingMode.Voter()
	if err != nil {
		return nil, err
	}
	dvs, err := DropVectors(cfg.Dimensions(), cfg.Grain, cfg.Radius)
	if err != nil {
		return nil, err
	}

	e := &Exposer{
		cfg:         cfg,
		classes:     numClasses,
		features:    numFeatures,
		dropVectors: dvs,
		voter:       voter,
		params:      DefaultMeasureParams(),
		logger:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Debugw("exposer created",
		"grain", cfg.Grain, "radius", cfg.Radius, "lambda", cfg.ChosenLambda,
		"mode", cfg.VotingMode.String(), "drop_vectors", len(dvs))
	return e, nil
}

// Config returns the effective configuration.
func (e *Exposer) Config() Config {
	cfg := e.cfg
	cfg.ChosenLambda = append([]int(nil), e.cfg.ChosenLambda...)
	return cfg
}

// Classes is the number of classes the structure votes for.
func (e *Exposer) Classes() int {
	return e.classes
}

// DropVectors returns the precomputed influence pattern.
func (e *Exposer) DropVectors() []DropVector {
	return e.dropVectors
}

// Trained reports whether Learn has completed.
func (e *Exposer) Trained() bool {
	return e.grid != nil
}

// Grid returns the normalized grid, or nil before learning. Callers must treat
// it as read-only.
func (e *Exposer) Grid() *Grid {
	return e.grid
}

// Measures returns the derived measures, or nil before learning.
func (e *Exposer) Measures() *Measures {
	return e.measures
}

// Theta is the structure-wide confidence, 0 before learning.
func (e *Exposer) Theta() float64 {
	if e.measures == nil {
		return 0
	}
	return e.measures.Theta
}

// ThetaVector returns a copy of the per-class confidence.
func (e *Exposer) ThetaVector() []float64 {
	if e.measures == nil {
		return nil
	}
	return append([]float64(nil), e.measures.ThetaVector...)
}

// Cell locates a query feature vector on the grid. NaN features are replaced
// by MissingFeature; values at or above 1 land in the last step.
func (e *Exposer) Cell(features []float64) (geometry.Vector, error) {
	loc := geometry.NewVector(e.cfg.Dimensions())
	for i, idx := range e.cfg.ChosenLambda {
		if idx >= len(features) {
			return nil, errors.Wrapf(ErrShortFeatures, "need index %d, have %d features", idx, len(features))
		}
		f := features[idx]
		if math.IsNaN(f) {
			f = MissingFeature
		}
		switch {
		case f >= 1:
			loc[i] = e.cfg.Grain - 1
		case f <= 0:
			loc[i] = 0
		default:
			loc[i] = min(int(f*float64(e.cfg.Grain)), e.cfg.Grain-1)
		}
	}
	return loc, nil
}

// Support returns this structure's contribution for one feature vector,
// weighted according to the voting mode.
func (e *Exposer) Support(features []float64) ([]float64, error) {
	out := make([]float64, e.classes)
	if err := e.supportInto(out, make([]float64, e.classes), features); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Exposer) supportInto(dst, raw, features []float64) error {
	if e.grid == nil {
		return ErrNotTrained
	}
	loc, err := e.Cell(features)
	if err != nil {
		return err
	}
	pos := e.grid.Position(loc)
	e.grid.Row(pos, raw)
	e.voter.Combine(dst, raw, e.measures, e.measures.HSV[pos].S)
	return nil
}

// Predict adds this structure's contribution to every query's support
// accumulator and asks the query to decide its prediction. Earlier
// contributions (from other structures) are kept: supports are summed.
func (e *Exposer) Predict(queries []Query) error {
	if e.grid == nil {
		return ErrNotTrained
	}
	raw := make([]float64, e.classes)
	contribution := make([]float64, e.classes)
	for i, q := range queries {
		acc := q.Support()
		if len(acc) != e.classes {
			return errors.Wrapf(ErrSupportLength, "query %d has %d, want %d", i, len(acc), e.classes)
		}
		if err := e.supportInto(contribution, raw, q.Features()); err != nil {
			return errors.Wrapf(err, "query %d", i)
		}
		floats.Add(acc, contribution)
		q.DecidePrediction()
	}
	return nil
}
