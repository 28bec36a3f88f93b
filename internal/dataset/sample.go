// Package dataset loads labelled samples and keeps the per-sample support
// accumulators that classifiers vote into.
package dataset

import (
	"gonum.org/v1/gonum/floats"
)

// Sample is one labelled feature vector. Missing features are NaN.
type Sample struct {
	label      int
	features   []float64
	support    []float64
	prediction int
}

// NewSample creates a sample with a zeroed support accumulator of classes entries.
func NewSample(label int, features []float64, classes int) *Sample {
	return &Sample{
		label:      label,
		features:   features,
		support:    make([]float64, classes),
		prediction: -1,
	}
}

// Label is the class index, 0-based.
func (s *Sample) Label() int {
	return s.label
}

// Features returns the feature vector. Callers must not modify it.
func (s *Sample) Features() []float64 {
	return s.features
}

// Support returns the accumulator classifiers add their votes to.
func (s *Sample) Support() []float64 {
	return s.support
}

// DecidePrediction picks the class with the highest accumulated support,
// preferring the lowest index on ties.
func (s *Sample) DecidePrediction() {
	if len(s.support) == 0 {
		s.prediction = -1
		return
	}
	s.prediction = floats.MaxIdx(s.support)
}

// Prediction is the last decided class, -1 when undecided.
func (s *Sample) Prediction() int {
	return s.prediction
}

// ClearSupport zeroes the accumulator and forgets the prediction.
func (s *Sample) ClearSupport() {
	for i := range s.support {
		s.support[i] = 0
	}
	s.prediction = -1
}

func (s *Sample) resize(classes int) {
	if len(s.support) != classes {
		s.support = make([]float64, classes)
	}
}
