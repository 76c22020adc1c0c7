package sac

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// Squared sine of the smallest angle between two edges of a sample
// triangle accepted as non-collinear.
const collinearSinSq = 1e-12

// Plane is A*x + B*y + C*z + D = 0.
type Plane struct {
	A, B, C, D float64
	// Inliers is the number of points which supported the plane.
	Inliers int
}

func (p Plane) Normal() r3.Vector {
	return r3.Vector{X: p.A, Y: p.B, Z: p.C}.Normalize()
}

// Distance returns the perpendicular distance between v and the plane.
func (p Plane) Distance(v mat.Vec3) float64 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	return math.Abs(p.A*x+p.B*y+p.C*z+p.D) / math.Sqrt(p.A*p.A+p.B*p.B+p.C*p.C)
}

type planeModel struct {
	ra        pc.Vec3RandomAccessor
	threshold float32
}

// NewPlaneModel returns a plane model over ra.
// Hypotheses are evaluated by the number of points closer than threshold.
func NewPlaneModel(ra pc.Vec3RandomAccessor, threshold float32) Model {
	return &planeModel{ra: ra, threshold: threshold}
}

func (planeModel) NumRange() (min, max int) {
	return 3, 3
}

func vec(v mat.Vec3) r3.Vector {
	return r3.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func (m *planeModel) Fit(ids []int) (ModelCoefficients, bool) {
	if len(ids) != 3 {
		return nil, false
	}
	if ids[0] == ids[1] || ids[0] == ids[2] || ids[1] == ids[2] {
		return nil, false
	}
	p1, p2, p3 := vec(m.ra.Vec3At(ids[0])), vec(m.ra.Vec3At(ids[1])), vec(m.ra.Vec3At(ids[2]))
	v1, v2 := p2.Sub(p1), p3.Sub(p1)

	n1, n2 := v1.Norm2(), v2.Norm2()
	if n1 == 0 || n2 == 0 {
		// Coincident points
		return nil, false
	}
	norm := v1.Cross(v2)
	if norm.Norm2() <= collinearSinSq*n1*n2 {
		return nil, false
	}

	return &planeCoefficients{
		model: m,
		plane: Plane{
			A: norm.X,
			B: norm.Y,
			C: norm.Z,
			D: -norm.Dot(p1),
		},
	}, true
}

type planeCoefficients struct {
	model *planeModel
	plane Plane
}

func (c *planeCoefficients) Evaluate() int {
	d := float64(c.model.threshold)
	n := c.model.ra.Len()
	var cnt int
	for i := 0; i < n; i++ {
		if c.plane.Distance(c.model.ra.Vec3At(i)) < d {
			cnt++
		}
	}
	return cnt
}

func (c *planeCoefficients) Inliers(d float32) []int {
	n := c.model.ra.Len()
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if c.plane.Distance(c.model.ra.Vec3At(i)) < float64(d) {
			out = append(out, i)
		}
	}
	return out
}

func (c *planeCoefficients) IsIn(p mat.Vec3, d float32) bool {
	return c.plane.Distance(p) < float64(d)
}

// PlaneOf returns the plane held by coefficients fitted by a plane model.
func PlaneOf(c ModelCoefficients) (Plane, bool) {
	pp, ok := c.(*planeCoefficients)
	if !ok {
		return Plane{}, false
	}
	return pp.plane, true
}
