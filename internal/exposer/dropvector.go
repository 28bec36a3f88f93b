package exposer

import (
	"math"

	"github.com/pkg/errors"

	"exposer/pkg/geometry"
)

// DropVector is an offset from a sample's quantized location together with the
// share of the sample's influence that lands there.
type DropVector struct {
	Offset geometry.Vector `json:"offset"`
	Weight float64         `json:"weight"`
}

// DropVectors enumerates every integer offset strictly inside the quantized
// radius floor(radius*grain), weighted by linear radial falloff:
// (quantizedRadius - |offset|) / quantizedRadius. The centre has weight 1 and
// the weight approaches 0 towards the boundary.
//
// The set depends only on its arguments and is shared by every sample, which
// turns a sample's cost into O(len(set)) instead of a full grid scan.
func DropVectors(dimensions, grain int, radius float64) ([]DropVector, error) {
	if grain < 1 {
		return nil, errors.Wrapf(ErrBadGrain, "got %d", grain)
	}
	if dimensions < 1 {
		return nil, ErrEmptyLambda
	}
	qr := int(math.Floor(radius * float64(grain)))
	if qr < 1 {
		return nil, errors.Wrapf(ErrZeroRadius, "radius %v, grain %d", radius, grain)
	}

	var out []DropVector
	limit := float64(qr)
	geometry.Hypercube(dimensions, -qr, qr, func(v geometry.Vector) {
		d := v.Norm()
		if d < limit {
			out = append(out, DropVector{Offset: v.Clone(), Weight: (limit - d) / limit})
		}
	})
	return out, nil
}
