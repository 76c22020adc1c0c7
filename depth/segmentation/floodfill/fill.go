package floodfill

import (
	"image"
	"math"

	"github.com/seqsense/patternlabel/depth"
	"github.com/seqsense/patternlabel/depth/mask"
)

type direction int

const (
	up direction = iota
	down
	left
	right
)

var offsets = [4]image.Point{
	up:    {0, -1},
	down:  {0, 1},
	left:  {-1, 0},
	right: {1, 0},
}

func (d direction) String() string {
	return [...]string{"up", "down", "left", "right"}[d]
}

// propagation returns, per direction, the pixels allowed to pass the fill
// to the neighbor on that side. Steps of threshold or more and NaN block.
// The masks are eroded to keep the fill away from depth discontinuities.
func propagation(img *depth.Image, threshold float32) [4]*mask.Mask {
	var dirs [4]*mask.Mask
	for d, o := range offsets {
		m := mask.New(img.Width, img.Height)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				nx, ny := x+o.X, y+o.Y
				if !m.In(nx, ny) {
					continue
				}
				diff := math.Abs(float64(img.At(x, y) - img.At(nx, ny)))
				m.Set(x, y, diff < float64(threshold))
			}
		}
		dirs[d] = mask.Erode(m)
	}
	return dirs
}

// scatter returns n points evenly spaced on the circle around seed.
// Points outside the w×h grid are dropped.
func scatter(seed image.Point, r float64, n, w, h int) []image.Point {
	bounds := image.Rect(0, 0, w, h)
	seen := make(map[image.Point]bool, n)
	ps := make([]image.Point, 0, n)
	for k := 0; k < n; k++ {
		th := 2 * math.Pi * float64(k) / float64(n)
		p := image.Point{
			X: int(float64(seed.X) + r*math.Cos(th)),
			Y: int(float64(seed.Y) + r*math.Sin(th)),
		}
		if !p.In(bounds) || seen[p] {
			continue
		}
		seen[p] = true
		ps = append(ps, p)
	}
	return ps
}

// fill grows the region from frontier breadth first. Each iteration
// shifts the whole frontier in the four directions at once, so the
// result does not depend on the order of the frontier points.
// Frontier points themselves are filled only when reached by a shift.
func fill(dirs [4]*mask.Mask, frontier []image.Point) (*mask.Mask, int) {
	w, h := dirs[0].Width, dirs[0].Height
	visited := mask.New(w, h)
	filled := mask.New(w, h)

	var iterations int
	candidates := make([]image.Point, 0, 4*len(frontier))
	kept := make([]image.Point, 0, 4*len(frontier))
	for len(frontier) > 0 {
		iterations++
		candidates, kept = candidates[:0], kept[:0]
		for _, p := range frontier {
			for d, o := range offsets {
				q := p.Add(o)
				if !visited.In(q.X, q.Y) {
					continue
				}
				candidates = append(candidates, q)
				if dirs[d].At(p.X, p.Y) && !visited.At(q.X, q.Y) {
					kept = append(kept, q)
				}
			}
		}
		for _, q := range candidates {
			visited.Set(q.X, q.Y, true)
		}
		next := make([]image.Point, 0, len(kept))
		for _, q := range kept {
			if filled.At(q.X, q.Y) {
				continue
			}
			filled.Set(q.X, q.Y, true)
			next = append(next, q)
		}
		frontier = next
	}
	return filled, iterations
}
