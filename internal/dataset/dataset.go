package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"exposer/internal/exposer"
)

// DataSet holds training samples and, optionally, a held-out test set sharing
// the same feature layout and classes.
type DataSet struct {
	Name        string
	Samples     []*Sample
	Test        []*Sample
	ClassesNum  int
	FeaturesNum int
}

// LoaderParams describe the text layout of a dataset file.
type LoaderParams struct {
	ClassesFirst    bool
	ClassesFromZero bool
	Header          bool
	Splitter        rune
}

// LoaderParamsDefaults: label last, labels from zero, comma separated.
func LoaderParamsDefaults() LoaderParams {
	return LoaderParams{
		ClassesFirst:    false,
		ClassesFromZero: true,
		Splitter:        ',',
	}
}

var missingTokens = map[string]bool{"": true, "?": true, "nan": true, "na": true}

// Load reads one sample per record. Missing feature values ("", "?", "NaN",
// "NA") become NaN; labels must be integers.
func Load(r io.Reader, params LoaderParams) (*DataSet, error) {
	reader := csv.NewReader(r)
	if params.Splitter != 0 {
		reader.Comma = params.Splitter
	}
	reader.TrimLeadingSpace = true

	ds := &DataSet{}
	line := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "reading record %d", line)
		}
		if params.Header && line == 1 {
			continue
		}
		if len(rec) < 2 {
			return nil, errors.Errorf("record %d: need a label and at least one feature", line)
		}

		labelCol := len(rec) - 1
		if params.ClassesFirst {
			labelCol = 0
		}
		label, err := strconv.Atoi(strings.TrimSpace(rec[labelCol]))
		if err != nil {
			return nil, errors.Wrapf(err, "record %d: label", line)
		}
		if !params.ClassesFromZero {
			label--
		}
		if label < 0 {
			return nil, errors.Errorf("record %d: negative label %d", line, label)
		}

		features := make([]float64, 0, len(rec)-1)
		for i, field := range rec {
			if i == labelCol {
				continue
			}
			v, err := parseFeature(field)
			if err != nil {
				return nil, errors.Wrapf(err, "record %d, column %d", line, i)
			}
			features = append(features, v)
		}
		ds.Samples = append(ds.Samples, &Sample{label: label, features: features, prediction: -1})
	}
	if len(ds.Samples) == 0 {
		return nil, errors.New("dataset is empty")
	}
	ds.FeaturesNum = len(ds.Samples[0].features)
	ds.ClassesNum = lo.Max(lo.Map(ds.Samples, func(s *Sample, _ int) int { return s.label })) + 1
	ds.resizeSupports()
	return ds, nil
}

// LoadFile reads a dataset from disk; its name is the file's base name.
func LoadFile(path string, params LoaderParams) (*DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Load(f, params)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ds, nil
}

func parseFeature(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if missingTokens[strings.ToLower(field)] {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}

// SetTest installs another dataset's samples as the test set. Class count
// widens to cover both.
func (ds *DataSet) SetTest(other *DataSet) error {
	if other.FeaturesNum != ds.FeaturesNum {
		return errors.Errorf("test set has %d features, training set %d", other.FeaturesNum, ds.FeaturesNum)
	}
	ds.Test = append([]*Sample(nil), other.Samples...)
	ds.ClassesNum = max(ds.ClassesNum, other.ClassesNum)
	ds.resizeSupports()
	return nil
}

// Split moves a random testFraction of the training samples into the test set.
func (ds *DataSet) Split(testFraction float64, seed int64) error {
	if testFraction <= 0 || testFraction >= 1 {
		return errors.Errorf("test fraction must be in (0,1), got %v", testFraction)
	}
	all := append(append([]*Sample(nil), ds.Samples...), ds.Test...)
	perm := rand.New(rand.NewSource(seed)).Perm(len(all))
	nTest := int(float64(len(all)) * testFraction)
	if nTest == 0 || nTest == len(all) {
		return errors.Errorf("cannot split %d samples with fraction %v", len(all), testFraction)
	}
	ds.Test = make([]*Sample, 0, nTest)
	ds.Samples = make([]*Sample, 0, len(all)-nTest)
	for i, idx := range perm {
		if i < nTest {
			ds.Test = append(ds.Test, all[idx])
		} else {
			ds.Samples = append(ds.Samples, all[idx])
		}
	}
	return nil
}

// Normalize min-max scales every feature into [0,1) using the range over the
// training and test samples. NaNs are left alone; a constant feature maps to 0.
func (ds *DataSet) Normalize() {
	all := append(append([]*Sample(nil), ds.Samples...), ds.Test...)
	below1 := math.Nextafter(1, 0)
	column := make([]float64, 0, len(all))
	for j := 0; j < ds.FeaturesNum; j++ {
		column = column[:0]
		for _, s := range all {
			if v := s.features[j]; !math.IsNaN(v) {
				column = append(column, v)
			}
		}
		if len(column) == 0 {
			continue
		}
		low, high := floats.Min(column), floats.Max(column)
		span := high - low
		for _, s := range all {
			v := s.features[j]
			if math.IsNaN(v) {
				continue
			}
			if span == 0 {
				s.features[j] = 0
				continue
			}
			s.features[j] = math.Min((v-low)/span, below1)
		}
	}
}

// ClearSupports zeroes the support accumulators of the test samples.
func (ds *DataSet) ClearSupports() {
	for _, s := range ds.Test {
		s.ClearSupport()
	}
}

// TrainSamples exposes the training set to a classifier.
func (ds *DataSet) TrainSamples() []exposer.Sample {
	out := make([]exposer.Sample, len(ds.Samples))
	for i, s := range ds.Samples {
		out[i] = s
	}
	return out
}

// TestQueries exposes the test set to a classifier.
func (ds *DataSet) TestQueries() []exposer.Query {
	out := make([]exposer.Query, len(ds.Test))
	for i, s := range ds.Test {
		out[i] = s
	}
	return out
}

// ClassCounts returns how many training samples each class has.
func (ds *DataSet) ClassCounts() []int {
	counts := make([]int, ds.ClassesNum)
	for label, n := range lo.CountValuesBy(ds.Samples, func(s *Sample) int { return s.label }) {
		counts[label] = n
	}
	return counts
}

func (ds *DataSet) resizeSupports() {
	for _, s := range ds.Samples {
		s.resize(ds.ClassesNum)
	}
	for _, s := range ds.Test {
		s.resize(ds.ClassesNum)
	}
}
