package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.viam.com/test"

	"exposer/internal/exposer"
)

const cornersCSV = `0.1,0.1,0
0.1,0.9,1
0.9,0.1,0
0.9,0.9,1
`

func load(t *testing.T, text string, params LoaderParams) *DataSet {
	t.Helper()
	ds, err := Load(strings.NewReader(text), params)
	test.That(t, err, test.ShouldBeNil)
	return ds
}

func TestLoadLabelLast(t *testing.T) {
	ds := load(t, cornersCSV, LoaderParamsDefaults())
	test.That(t, len(ds.Samples), test.ShouldEqual, 4)
	test.That(t, ds.FeaturesNum, test.ShouldEqual, 2)
	test.That(t, ds.ClassesNum, test.ShouldEqual, 2)
	test.That(t, ds.Samples[1].Label(), test.ShouldEqual, 1)
	test.That(t, ds.Samples[1].Features(), test.ShouldResemble, []float64{0.1, 0.9})
	test.That(t, len(ds.Samples[1].Support()), test.ShouldEqual, 2)
	test.That(t, ds.Samples[1].Prediction(), test.ShouldEqual, -1)
	test.That(t, ds.ClassCounts(), test.ShouldResemble, []int{2, 2})
}

func TestLoadLabelFirstFromOne(t *testing.T) {
	params := LoaderParams{ClassesFirst: true, Header: true, Splitter: ';'}
	ds := load(t, "class;a;b\n1;0.5;?\n3;;0.25\n", params)
	test.That(t, ds.ClassesNum, test.ShouldEqual, 3)
	test.That(t, ds.Samples[0].Label(), test.ShouldEqual, 0)
	test.That(t, ds.Samples[1].Label(), test.ShouldEqual, 2)
	test.That(t, ds.Samples[0].Features()[0], test.ShouldEqual, 0.5)
	test.That(t, math.IsNaN(ds.Samples[0].Features()[1]), test.ShouldBeTrue)
	test.That(t, math.IsNaN(ds.Samples[1].Features()[0]), test.ShouldBeTrue)
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"label only", "1\n"},
		{"bad label", "0.1,x\n"},
		{"bad feature", "abc,1\n"},
		{"negative label", "0.1,-1\n"},
		{"ragged", "0.1,0.2,0\n0.1,1\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.text), LoaderParamsDefaults())
			test.That(t, err, test.ShouldNotBeNil)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corners.csv")
	test.That(t, os.WriteFile(path, []byte(cornersCSV), 0o644), test.ShouldBeNil)
	ds, err := LoadFile(path, LoaderParamsDefaults())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ds.Name, test.ShouldEqual, "corners")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), LoaderParamsDefaults())
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNormalize(t *testing.T) {
	ds := load(t, "2,10,0\n4,10,1\n6,?,0\n", LoaderParamsDefaults())
	ds.Normalize()
	test.That(t, ds.Samples[0].Features()[0], test.ShouldEqual, 0.0)
	test.That(t, ds.Samples[1].Features()[0], test.ShouldEqual, 0.5)
	test.That(t, ds.Samples[2].Features()[0], test.ShouldBeLessThan, 1.0)
	test.That(t, ds.Samples[2].Features()[0], test.ShouldAlmostEqual, 1.0)
	// Constant column collapses to zero and NaN survives.
	test.That(t, ds.Samples[0].Features()[1], test.ShouldEqual, 0.0)
	test.That(t, math.IsNaN(ds.Samples[2].Features()[1]), test.ShouldBeTrue)
}

func TestSplit(t *testing.T) {
	ds := load(t, cornersCSV+cornersCSV, LoaderParamsDefaults())
	test.That(t, ds.Split(0.25, 1), test.ShouldBeNil)
	test.That(t, len(ds.Test), test.ShouldEqual, 2)
	test.That(t, len(ds.Samples), test.ShouldEqual, 6)

	again := load(t, cornersCSV+cornersCSV, LoaderParamsDefaults())
	test.That(t, again.Split(0.25, 1), test.ShouldBeNil)
	for i := range ds.Test {
		test.That(t, again.Test[i].Features(), test.ShouldResemble, ds.Test[i].Features())
	}

	test.That(t, ds.Split(0, 1), test.ShouldNotBeNil)
	test.That(t, ds.Split(1, 1), test.ShouldNotBeNil)
	test.That(t, ds.Split(0.01, 1), test.ShouldNotBeNil)
}

func TestSetTest(t *testing.T) {
	ds := load(t, cornersCSV, LoaderParamsDefaults())
	other := load(t, "0.5,0.5,2\n", LoaderParamsDefaults())
	test.That(t, ds.SetTest(other), test.ShouldBeNil)
	test.That(t, ds.ClassesNum, test.ShouldEqual, 3)
	test.That(t, len(ds.Samples[0].Support()), test.ShouldEqual, 3)
	test.That(t, len(ds.TestQueries()), test.ShouldEqual, 1)

	wide := load(t, "0.5,0.5,0.5,0\n", LoaderParamsDefaults())
	test.That(t, ds.SetTest(wide), test.ShouldNotBeNil)
}

func TestSampleDecideAndClear(t *testing.T) {
	s := NewSample(0, []float64{0.2}, 3)
	s.DecidePrediction()
	test.That(t, s.Prediction(), test.ShouldEqual, 0)
	s.Support()[2] = 1
	s.Support()[1] = 1
	s.DecidePrediction()
	test.That(t, s.Prediction(), test.ShouldEqual, 1)
	s.ClearSupport()
	test.That(t, s.Support(), test.ShouldResemble, []float64{0, 0, 0})
	test.That(t, s.Prediction(), test.ShouldEqual, -1)
}

func TestTrainAndScoreCorners(t *testing.T) {
	ds := load(t, cornersCSV, LoaderParamsDefaults())
	test.That(t, ds.SetTest(load(t, cornersCSV, LoaderParamsDefaults())), test.ShouldBeNil)

	e, err := exposer.New(
		exposer.Config{Grain: 2, Radius: 0.6, ChosenLambda: []int{0, 1}},
		ds.ClassesNum, ds.FeaturesNum,
		exposer.WithLogger(zap.NewNop().Sugar()),
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, e.Learn(ds.TrainSamples()), test.ShouldBeNil)
	test.That(t, e.Predict(ds.TestQueries()), test.ShouldBeNil)

	sc, err := ds.Score()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sc.Accuracy, test.ShouldEqual, 1.0)
	test.That(t, sc.F1, test.ShouldEqual, 1.0)

	ds.ClearSupports()
	for _, s := range ds.Test {
		test.That(t, s.Prediction(), test.ShouldEqual, -1)
	}
	sc, err = ds.Score()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sc.Accuracy, test.ShouldEqual, 0.0)
}
