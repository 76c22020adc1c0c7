// Package pcd provides point cloud access helpers for the pattern segmenters.
package pcd

import (
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// Points is an in-memory N×3 coordinate table.
// The position of a point in the slice is its label index.
type Points []mat.Vec3

func (p Points) Vec3At(i int) mat.Vec3 {
	return p[i]
}

func (p Points) Len() int {
	return len(p)
}

// RawIndexAt returns i since the table has no underlying storage.
func (p Points) RawIndexAt(i int) int {
	return i
}

// Copy returns the points of ra as an in-memory table.
func Copy(ra pc.Vec3RandomAccessor) Points {
	n := ra.Len()
	out := make(Points, n)
	for i := 0; i < n; i++ {
		out[i] = ra.Vec3At(i)
	}
	return out
}

// Within returns the indice of the points whose distance from center is
// less than or equal to radius, in ascending order.
func Within(ra pc.Vec3RandomAccessor, center mat.Vec3, radius float32) []int {
	rSq := radius * radius
	n := ra.Len()
	indice := make([]int, 0, n/8)
	for i := 0; i < n; i++ {
		if ra.Vec3At(i).Sub(center).NormSq() <= rSq {
			indice = append(indice, i)
		}
	}
	return indice
}

// Mean returns the arithmetic mean of the points.
// It returns false if ra has no point.
func Mean(ra pc.Vec3RandomAccessor) (mat.Vec3, bool) {
	n := ra.Len()
	if n == 0 {
		return mat.Vec3{}, false
	}
	var sx, sy, sz float64
	for i := 0; i < n; i++ {
		p := ra.Vec3At(i)
		sx += float64(p[0])
		sy += float64(p[1])
		sz += float64(p[2])
	}
	fn := float64(n)
	return mat.Vec3{float32(sx / fn), float32(sy / fn), float32(sz / fn)}, true
}
