package exposer

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HSV is the colour-like summary of one cell. Hue encodes the dominant class
// (index/classes), saturation how clearly it dominates and value its support.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// MeasureParams holds the thresholds of the measure calculator.
type MeasureParams struct {
	// PresenceThreshold: a cell counts towards its dominant class when its
	// value exceeds this.
	PresenceThreshold float64 `json:"presence_threshold"`
	// SaturationThreshold: a cell's saturation feeds SaturationThetas when its
	// value exceeds this.
	SaturationThreshold float64 `json:"saturation_threshold"`
}

// DefaultMeasureParams returns the thresholds of the current calculator.
func DefaultMeasureParams() MeasureParams {
	return MeasureParams{
		PresenceThreshold:   PresenceThreshold,
		SaturationThreshold: SaturationThreshold,
	}
}

// Measures are derived once from a normalized grid and are read-only afterwards.
type Measures struct {
	// HSV has one entry per grid cell.
	HSV []HSV
	// Presence counts, per class, the cells it dominates above the threshold.
	Presence []float64
	// ThetaVector[c] = 1 - presence fraction of c. All ones when no cell is
	// above the presence threshold.
	ThetaVector []float64
	// Theta is the mean of ThetaVector.
	Theta float64
	// SaturationThetas is the older per-class measure: mean saturation of the
	// cells a class dominates above SaturationThreshold, with every count
	// starting at one. It does not take part in voting.
	SaturationThetas []float64
}

// ComputeMeasures derives HSV cells and theta measures from a normalized grid.
func ComputeMeasures(g *Grid, params MeasureParams) *Measures {
	classes := g.Classes()
	m := &Measures{
		HSV:              make([]HSV, g.Cells()),
		Presence:         make([]float64, classes),
		ThetaVector:      make([]float64, classes),
		SaturationThetas: make([]float64, classes),
	}
	satCount := make([]float64, classes)
	for c := range satCount {
		satCount[c] = 1
	}

	row := make([]float64, classes)
	for i := range m.HSV {
		g.Row(i, row)
		cell, dominant := cellHSV(row)
		m.HSV[i] = cell

		if cell.V > params.PresenceThreshold {
			m.Presence[dominant]++
		}
		if cell.V > params.SaturationThreshold {
			m.SaturationThetas[dominant] += cell.S
			satCount[dominant]++
		}
	}
	floats.Div(m.SaturationThetas, satCount)

	for c := range m.ThetaVector {
		m.ThetaVector[c] = 1
	}
	if total := floats.Sum(m.Presence); total > 0 {
		for c, p := range m.Presence {
			m.ThetaVector[c] = 1 - p/total
		}
	}
	m.Theta = stat.Mean(m.ThetaVector, nil)
	return m
}

// cellHSV returns the HSV summary of a support row and the index of its
// maximum. Ties resolve to the lowest class index.
func cellHSV(row []float64) (HSV, int) {
	dominant := floats.MaxIdx(row)
	cmax := row[dominant]
	cmin := floats.Min(row)

	cell := HSV{
		H: float64(dominant) / float64(len(row)),
		V: cmax,
	}
	if cmax != 0 {
		cell.S = (cmax - cmin) / cmax
	}
	return cell, dominant
}
