package sac

import (
	"github.com/golang/geo/r3"
	"github.com/seqsense/pcgol/pc"
	"gonum.org/v1/gonum/mat"
)

// RefinePlane fits a plane to the points of ra by total least squares.
// The normal is the right singular vector of the centered points with the
// smallest singular value.
func RefinePlane(ra pc.Vec3RandomAccessor) (Plane, bool) {
	n := ra.Len()
	if n < 3 {
		return Plane{}, false
	}

	var c r3.Vector
	for i := 0; i < n; i++ {
		c = c.Add(vec(ra.Vec3At(i)))
	}
	c = c.Mul(1 / float64(n))

	a := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		p := vec(ra.Vec3At(i)).Sub(c)
		a.Set(i, 0, p.X)
		a.Set(i, 1, p.Y)
		a.Set(i, 2, p.Z)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return Plane{}, false
	}
	var v mat.Dense
	svd.VTo(&v)
	sv := svd.Values(nil)
	if sv[1] == 0 {
		// All points lie on a line.
		return Plane{}, false
	}

	norm := r3.Vector{X: v.At(0, 2), Y: v.At(1, 2), Z: v.At(2, 2)}
	return Plane{
		A:       norm.X,
		B:       norm.Y,
		C:       norm.Z,
		D:       -norm.Dot(c),
		Inliers: n,
	}, true
}
