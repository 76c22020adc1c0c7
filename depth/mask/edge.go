package mask

import (
	"image"
)

const (
	DefaultEdgeLow  = 100
	DefaultEdgeHigh = 200

	tan22_5 = 0.41421356237309503
	tan67_5 = 2.414213562373095
)

// edgesGo follows OpenCV's Canny: Sobel gradients with replicated
// border, L1 magnitude, non-maximum suppression along the quantized
// gradient direction and 8-connected hysteresis.
func edgesGo(m *Mask, low, high float64) *Mask {
	w, h := m.Width, m.Height
	val := func(x, y int) int {
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		if m.Pix[x+y*w] {
			return 0xFF
		}
		return 0
	}

	gx := make([]int, w*h)
	gy := make([]int, w*h)
	mag := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w
			gx[i] = val(x+1, y-1) + 2*val(x+1, y) + val(x+1, y+1) -
				val(x-1, y-1) - 2*val(x-1, y) - val(x-1, y+1)
			gy[i] = val(x-1, y+1) + 2*val(x, y+1) + val(x+1, y+1) -
				val(x-1, y-1) - 2*val(x, y-1) - val(x+1, y-1)
			mag[i] = abs(gx[i]) + abs(gy[i])
		}
	}
	magAt := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[x+y*w]
	}

	const (
		none = iota
		weak
		strong
	)
	class := make([]uint8, w*h)
	var next []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w
			g := mag[i]
			if float64(g) <= low {
				continue
			}
			ax, ay := float64(abs(gx[i])), float64(abs(gy[i]))
			var keep bool
			switch {
			case ay < ax*tan22_5:
				keep = g > magAt(x-1, y) && g >= magAt(x+1, y)
			case ay > ax*tan67_5:
				keep = g > magAt(x, y-1) && g >= magAt(x, y+1)
			default:
				s := 1
				if (gx[i] < 0) != (gy[i] < 0) {
					s = -1
				}
				keep = g > magAt(x-s, y-1) && g > magAt(x+s, y+1)
			}
			if !keep {
				continue
			}
			if float64(g) > high {
				class[i] = strong
				next = append(next, image.Point{X: x, Y: y})
			} else {
				class[i] = weak
			}
		}
	}

	out := New(w, h)
	for _, p := range next {
		out.Pix[p.X+p.Y*w] = true
	}
	for len(next) > 0 {
		var p image.Point
		p, next = next[len(next)-1], next[:len(next)-1]
		for _, d := range neighbors8 {
			q := p.Add(d)
			if !m.In(q.X, q.Y) {
				continue
			}
			j := q.X + q.Y*w
			if class[j] == weak && !out.Pix[j] {
				out.Pix[j] = true
				next = append(next, q)
			}
		}
	}
	return out
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
