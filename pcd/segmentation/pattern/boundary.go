package pattern

import (
	"math"
	"sort"

	"github.com/seqsense/pcgol/mat"
)

// Polar angles are rounded to 1e-4 rad to cluster the points scanned by the
// same laser ring.
const thetaResolution = 1e4

type sphericalPoint struct {
	index int
	pos   mat.Vec3
	r     float64
	phi   float64
	theta int64
	limit bool
}

func toSpherical(index int, p mat.Vec3) sphericalPoint {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	return sphericalPoint{
		index: index,
		pos:   p,
		r:     math.Sqrt(x*x + y*y + z*z),
		phi:   math.Atan2(y, x),
		theta: int64(math.RoundToEven(math.Atan2(math.Sqrt(x*x+y*y), z) * thetaResolution)),
	}
}

// limitPoints returns the indice of the points with minimum and maximum
// azimuth in each ring of the same polar angle.
func limitPoints(indice []int, pos []mat.Vec3) []int {
	ps := make([]sphericalPoint, len(indice))
	for i := range indice {
		ps[i] = toSpherical(indice[i], pos[i])
	}

	order := make([]int, len(ps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ps[order[i]].theta < ps[order[j]].theta
	})

	for begin := 0; begin < len(order); {
		end := begin + 1
		for end < len(order) && ps[order[end]].theta == ps[order[begin]].theta {
			end++
		}
		iMin, iMax := order[begin], order[begin]
		for _, i := range order[begin+1 : end] {
			if ps[i].phi < ps[iMin].phi {
				iMin = i
			}
			if ps[i].phi > ps[iMax].phi {
				iMax = i
			}
		}
		ps[iMin].limit = true
		ps[iMax].limit = true
		begin = end
	}

	out := make([]int, 0, 2*len(ps))
	for _, p := range ps {
		if p.limit {
			out = append(out, p.index)
		}
	}
	return out
}
