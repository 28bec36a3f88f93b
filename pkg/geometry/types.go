// Package geometry provides the n-dimensional integer and real vectors used to
// place samples on a quantized grid.
package geometry

import (
	"math"
)

// Vector is an integer coordinate or offset on a quantized grid.
type Vector []int

// NewVector returns a zero vector with the given number of dimensions.
func NewVector(dimensions int) Vector {
	return make(Vector, dimensions)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Add returns the elementwise sum of two vectors of equal length.
func (v Vector) Add(other Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + other[i]
	}
	return out
}

// AddInto writes v+other into dst and returns it. dst must have len(v).
func (v Vector) AddInto(other, dst Vector) Vector {
	for i := range v {
		dst[i] = v[i] + other[i]
	}
	return dst
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = -v[i]
	}
	return out
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var acc float64
	for _, c := range v {
		acc += float64(c * c)
	}
	return math.Sqrt(acc)
}

// Equal reports whether both vectors have identical components.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// InRange reports whether every component lies in [0, limit).
func (v Vector) InRange(limit int) bool {
	for _, c := range v {
		if c < 0 || c >= limit {
			return false
		}
	}
	return true
}

// Point is a real-valued location in the same space as Vector.
type Point []float64

// Scale returns p multiplied by factor.
func (p Point) Scale(factor float64) Point {
	out := make(Point, len(p))
	for i := range p {
		out[i] = p[i] * factor
	}
	return out
}

// Floor truncates every component towards negative infinity.
func (p Point) Floor() Vector {
	out := make(Vector, len(p))
	for i := range p {
		out[i] = int(math.Floor(p[i]))
	}
	return out
}

// Distance returns the Euclidean distance between p and the integer vector v.
func (p Point) Distance(v Vector) float64 {
	var acc float64
	for i := range p {
		d := float64(v[i]) - p[i]
		acc += d * d
	}
	return math.Sqrt(acc)
}
