package dataset

import (
	"github.com/pkg/errors"
)

// ClassScore holds per-class counts and rates.
type ClassScore struct {
	Class     int
	Support   int
	TP        int
	FP        int
	FN        int
	Precision float64
	Recall    float64
	F1        float64
}

// Score summarises predictions on the test set. Averages are weighted by
// class support.
type Score struct {
	Samples   int
	Correct   int
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	Classes   []ClassScore
}

// Score evaluates the last decided prediction of every test sample.
// Undecided samples count as wrong.
func (ds *DataSet) Score() (Score, error) {
	if len(ds.Test) == 0 {
		return Score{}, errors.New("no test samples")
	}
	predicted := make([]int, len(ds.Test))
	actual := make([]int, len(ds.Test))
	for i, s := range ds.Test {
		predicted[i] = s.prediction
		actual[i] = s.label
	}
	return Evaluate(predicted, actual, ds.ClassesNum)
}

// Evaluate compares predicted against actual labels over numClasses classes.
func Evaluate(predicted, actual []int, numClasses int) (Score, error) {
	if len(predicted) != len(actual) {
		return Score{}, errors.Errorf("%d predictions for %d labels", len(predicted), len(actual))
	}
	if len(actual) == 0 {
		return Score{}, errors.New("nothing to evaluate")
	}

	sc := Score{Samples: len(actual), Classes: make([]ClassScore, numClasses)}
	for j := range sc.Classes {
		sc.Classes[j].Class = j
	}
	for i, want := range actual {
		got := predicted[i]
		if want < 0 || want >= numClasses {
			return Score{}, errors.Errorf("label %d out of range [0,%d)", want, numClasses)
		}
		sc.Classes[want].Support++
		if got == want {
			sc.Correct++
			sc.Classes[want].TP++
			continue
		}
		sc.Classes[want].FN++
		if got >= 0 && got < numClasses {
			sc.Classes[got].FP++
		}
	}

	for j := range sc.Classes {
		c := &sc.Classes[j]
		if c.TP+c.FP > 0 {
			c.Precision = float64(c.TP) / float64(c.TP+c.FP)
		}
		if c.TP+c.FN > 0 {
			c.Recall = float64(c.TP) / float64(c.TP+c.FN)
		}
		if c.Precision+c.Recall > 0 {
			c.F1 = 2 * c.Precision * c.Recall / (c.Precision + c.Recall)
		}
		w := float64(c.Support) / float64(sc.Samples)
		sc.Precision += w * c.Precision
		sc.Recall += w * c.Recall
		sc.F1 += w * c.F1
	}
	sc.Accuracy = float64(sc.Correct) / float64(sc.Samples)
	return sc, nil
}
