package exposer

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"exposer/pkg/geometry"
)

// Learn rebuilds the grid from scratch: every sample drops its influence around
// its quantized location, the grid is normalized per class and the measures are
// recomputed. Samples with a NaN among the chosen features are skipped. On
// error the previous state is kept.
func (e *Exposer) Learn(samples []Sample) error {
	start := time.Now()

	var (
		grid    *Grid
		skipped int
		err     error
	)
	if e.cfg.Workers > 1 && len(samples) > e.cfg.Workers {
		grid, skipped, err = e.exposeParallel(samples)
	} else {
		grid = e.newGrid()
		skipped, err = e.expose(grid, samples)
	}
	if err != nil {
		return err
	}

	grid.Normalize()
	measures := ComputeMeasures(grid, e.params)

	e.grid = grid
	e.measures = measures
	e.logger.Debugw("exposer learned",
		"samples", len(samples), "skipped", skipped,
		"theta", measures.Theta, "theta_vector", measures.ThetaVector,
		"elapsed", time.Since(start))
	return nil
}

func (e *Exposer) newGrid() *Grid {
	return NewGrid(e.cfg.Grain, e.cfg.Dimensions(), e.classes)
}

// exposeParallel splits the samples into one contiguous partition per worker,
// exposes each onto its own grid and merges the grids additively.
func (e *Exposer) exposeParallel(samples []Sample) (*Grid, int, error) {
	workers := e.cfg.Workers
	grids := make([]*Grid, workers)
	skipped := make([]int, workers)
	chunk := (len(samples) + workers - 1) / workers

	var group errgroup.Group
	for w := 0; w < workers; w++ {
		from := w * chunk
		to := min(from+chunk, len(samples))
		if from >= to {
			continue
		}
		w := w
		group.Go(func() error {
			grids[w] = e.newGrid()
			n, err := e.expose(grids[w], samples[from:to])
			skipped[w] = n
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}

	var (
		merged *Grid
		total  int
	)
	for w, g := range grids {
		total += skipped[w]
		if g == nil {
			continue
		}
		if merged == nil {
			merged = g
			continue
		}
		if err := merged.Merge(g); err != nil {
			return nil, 0, err
		}
	}
	if merged == nil {
		merged = e.newGrid()
	}
	return merged, total, nil
}

// expose accumulates the raw influence of samples into grid and returns how
// many were skipped for missing values.
func (e *Exposer) expose(grid *Grid, samples []Sample) (int, error) {
	dims := e.cfg.Dimensions()
	grain := float64(e.cfg.Grain)
	location := make(geometry.Point, dims)
	cell := geometry.NewVector(dims)
	skipped := 0

	for i, s := range samples {
		label := s.Label()
		if label < 0 || label >= e.classes {
			return 0, errors.Wrapf(ErrBadLabel, "sample %d has label %d, classes %d", i, label, e.classes)
		}
		features := s.Features()

		missing := false
		for axis, idx := range e.cfg.ChosenLambda {
			if idx >= len(features) {
				return 0, errors.Wrapf(ErrShortFeatures, "sample %d: need index %d, have %d", i, idx, len(features))
			}
			f := features[idx]
			if math.IsNaN(f) {
				missing = true
				break
			}
			location[axis] = f * grain
		}
		if missing {
			skipped++
			continue
		}

		// The residual between the exact and the quantized location corrects
		// the influence of every drop vector of this sample.
		quantized := location.Floor()
		factor := ResidualFactorBase - location.Distance(quantized)

		for _, dv := range e.dropVectors {
			quantized.AddInto(dv.Offset, cell)
			if !cell.InRange(e.cfg.Grain) {
				continue
			}
			grid.Accumulate(grid.Position(cell), label, dv.Weight*factor)
		}
	}
	return skipped, nil
}
