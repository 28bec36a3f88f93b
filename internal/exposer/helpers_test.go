package exposer

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

type testSample struct {
	label     int
	features  []float64
	support   []float64
	decided   int
	decisions int
}

func (s *testSample) Label() int          { return s.label }
func (s *testSample) Features() []float64 { return s.features }
func (s *testSample) Support() []float64  { return s.support }

func (s *testSample) DecidePrediction() {
	s.decisions++
	s.decided = floats.MaxIdx(s.support)
}

func newTestSample(label int, classes int, features ...float64) *testSample {
	return &testSample{label: label, features: features, support: make([]float64, classes)}
}

// corners returns the four-sample two-class dataset: class 0 where the second
// feature is low, class 1 where it is high.
func corners() []Sample {
	return []Sample{
		newTestSample(0, 2, 0.1, 0.1),
		newTestSample(1, 2, 0.1, 0.9),
		newTestSample(0, 2, 0.9, 0.1),
		newTestSample(1, 2, 0.9, 0.9),
	}
}

// skewed dominates three corners with class 0 and one with class 1.
func skewed() []Sample {
	return []Sample{
		newTestSample(0, 2, 0.1, 0.1),
		newTestSample(0, 2, 0.1, 0.9),
		newTestSample(0, 2, 0.9, 0.1),
		newTestSample(1, 2, 0.9, 0.9),
	}
}

// blobs draws n samples of three classes around distinct centres in four
// feature dimensions, deterministic for a given seed.
func blobs(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	centres := [][]float64{
		{0.2, 0.2, 0.5, 0.3},
		{0.7, 0.3, 0.5, 0.6},
		{0.5, 0.8, 0.5, 0.8},
	}
	out := make([]Sample, n)
	for i := range out {
		label := i % len(centres)
		f := make([]float64, len(centres[label]))
		for j, c := range centres[label] {
			v := c + rng.NormFloat64()*0.1
			if v < 0 {
				v = 0
			}
			if v >= 1 {
				v = 0.999
			}
			f[j] = v
		}
		out[i] = newTestSample(label, len(centres), f...)
	}
	return out
}

func asQueries(samples []Sample) []Query {
	out := make([]Query, len(samples))
	for i, s := range samples {
		out[i] = s.(*testSample)
	}
	return out
}
