package geometry

// Hypercube visits every integer vector in [lo, hi]^dimensions.
// Axis 0 varies fastest. The vector passed to visit is reused between calls;
// Clone it to keep it.
func Hypercube(dimensions, lo, hi int, visit func(Vector)) {
	if dimensions <= 0 || hi < lo {
		return
	}
	v := NewVector(dimensions)
	for i := range v {
		v[i] = lo
	}
	for {
		visit(v)

		// Odometer increment
		axis := 0
		for axis < dimensions {
			v[axis]++
			if v[axis] <= hi {
				break
			}
			v[axis] = lo
			axis++
		}
		if axis == dimensions {
			return
		}
	}
}

// HypercubeSize returns the number of vectors Hypercube visits.
func HypercubeSize(dimensions, lo, hi int) int {
	if dimensions <= 0 || hi < lo {
		return 0
	}
	side := hi - lo + 1
	n := 1
	for i := 0; i < dimensions; i++ {
		n *= side
	}
	return n
}
