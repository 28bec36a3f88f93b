package geometry

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestVectorOps(t *testing.T) {
	a := Vector{1, -2, 3}
	b := Vector{4, 5, -6}

	test.That(t, a.Add(b), test.ShouldResemble, Vector{5, 3, -3})
	test.That(t, a.Neg(), test.ShouldResemble, Vector{-1, 2, -3})
	test.That(t, a.Norm(), test.ShouldAlmostEqual, math.Sqrt(14))
	test.That(t, a.Equal(a.Clone()), test.ShouldBeTrue)
	test.That(t, a.Equal(b), test.ShouldBeFalse)

	dst := NewVector(3)
	a.AddInto(b, dst)
	test.That(t, dst, test.ShouldResemble, Vector{5, 3, -3})
}

func TestVectorInRange(t *testing.T) {
	test.That(t, Vector{0, 4}.InRange(5), test.ShouldBeTrue)
	test.That(t, Vector{0, 5}.InRange(5), test.ShouldBeFalse)
	test.That(t, Vector{-1, 0}.InRange(5), test.ShouldBeFalse)
}

func TestPoint(t *testing.T) {
	p := Point{0.25, 0.9}.Scale(10)
	test.That(t, p[0], test.ShouldAlmostEqual, 2.5)
	test.That(t, p.Floor(), test.ShouldResemble, Vector{2, 9})
	test.That(t, p.Distance(p.Floor()), test.ShouldAlmostEqual, 0.5)
}

func TestHypercube(t *testing.T) {
	var seen []Vector
	Hypercube(2, -1, 1, func(v Vector) {
		seen = append(seen, v.Clone())
	})
	test.That(t, len(seen), test.ShouldEqual, HypercubeSize(2, -1, 1))
	test.That(t, len(seen), test.ShouldEqual, 9)
	test.That(t, seen[0], test.ShouldResemble, Vector{-1, -1})
	test.That(t, seen[1], test.ShouldResemble, Vector{0, -1})
	test.That(t, seen[8], test.ShouldResemble, Vector{1, 1})

	count := 0
	Hypercube(3, 0, 0, func(Vector) { count++ })
	test.That(t, count, test.ShouldEqual, 1)

	Hypercube(0, 0, 3, func(Vector) { t.Fatal("visited an empty cube") })
	test.That(t, HypercubeSize(2, 1, 0), test.ShouldEqual, 0)
}
