package exposer

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

const modelVersion = 1

// modelFile is the on-disk form of a trained Exposer. Measures are not stored;
// they are recomputed from the grid on load.
type modelFile struct {
	Version  int           `json:"version"`
	Config   Config        `json:"config"`
	Classes  int           `json:"classes"`
	Features int           `json:"features"`
	Params   MeasureParams `json:"measure_params"`
	Grid     [][]float64   `json:"grid"`
}

// MarshalJSON encodes a trained Exposer.
func (e *Exposer) MarshalJSON() ([]byte, error) {
	if e.grid == nil {
		return nil, ErrNotTrained
	}
	return json.Marshal(modelFile{
		Version:  modelVersion,
		Config:   e.Config(),
		Classes:  e.classes,
		Features: e.features,
		Params:   e.params,
		Grid:     e.grid.Rows(),
	})
}

// Save writes the trained Exposer to a JSON file.
func (e *Exposer) Save(path string) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal exposer")
	}
	return os.WriteFile(path, data, 0644)
}

// Unmarshal rebuilds a trained Exposer from data written by MarshalJSON.
// Options apply as in New; saved measure thresholds win over WithMeasureParams.
func Unmarshal(data []byte, opts ...Option) (*Exposer, error) {
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrap(err, "unmarshal exposer")
	}
	if mf.Version != modelVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "got %d", mf.Version)
	}
	e, err := New(mf.Config, mf.Classes, mf.Features, opts...)
	if err != nil {
		return nil, err
	}
	e.params = mf.Params

	grid := e.newGrid()
	if err := grid.setRows(mf.Grid); err != nil {
		return nil, err
	}
	e.grid = grid
	e.measures = ComputeMeasures(grid, e.params)
	return e, nil
}

// Load reads an Exposer saved with Save.
func Load(path string, opts ...Option) (*Exposer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, opts...)
}
