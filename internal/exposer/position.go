package exposer

import "exposer/pkg/geometry"

// Encoder maps grid coordinates to flat cell indices with mixed-radix
// encoding: index = sum(p[i] * grain^i). Axis 0 is the fastest varying.
type Encoder struct {
	grain int
	g     []int
}

// NewEncoder precomputes the per-axis multipliers g[i] = grain^i.
func NewEncoder(grain, dimensions int) Encoder {
	g := make([]int, dimensions)
	if dimensions > 0 {
		g[0] = 1
	}
	for i := 1; i < dimensions; i++ {
		g[i] = g[i-1] * grain
	}
	return Encoder{grain: grain, g: g}
}

// Position encodes p. Every component must already lie in [0, grain).
func (e Encoder) Position(p geometry.Vector) int {
	acc := 0
	for i, m := range e.g {
		acc += p[i] * m
	}
	return acc
}

// Decode is the inverse of Position.
func (e Encoder) Decode(index int) geometry.Vector {
	p := geometry.NewVector(len(e.g))
	for i := range p {
		p[i] = index % e.grain
		index /= e.grain
	}
	return p
}

// Cells is grain^dimensions.
func (e Encoder) Cells() int {
	if len(e.g) == 0 {
		return 0
	}
	return e.g[len(e.g)-1] * e.grain
}

// Dimensions is the number of axes.
func (e Encoder) Dimensions() int {
	return len(e.g)
}

// Grain is the number of steps per axis.
func (e Encoder) Grain() int {
	return e.grain
}
