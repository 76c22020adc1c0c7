package mask

import (
	"image"
)

var (
	neighbors4 = []image.Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	neighbors8 []image.Point
)

func init() {
	for _, y := range []int{-1, 0, 1} {
		for _, x := range []int{-1, 0, 1} {
			if x == 0 && y == 0 {
				continue
			}
			neighbors8 = append(neighbors8, image.Point{X: x, Y: y})
		}
	}
}

func erodeGo(m *Mask) *Mask {
	out := New(m.Width, m.Height)
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if !m.Pix[x+y*m.Width] {
				continue
			}
			ok := true
			for _, d := range neighbors8 {
				if !m.Pix[x+d.X+(y+d.Y)*m.Width] {
					ok = false
					break
				}
			}
			out.Pix[x+y*m.Width] = ok
		}
	}
	return out
}

// FillHoles sets the background regions which are not 4-connected to
// the grid border.
func FillHoles(m *Mask) *Mask {
	outside := make([]bool, len(m.Pix))
	var next []image.Point
	push := func(x, y int) {
		i := x + y*m.Width
		if m.Pix[i] || outside[i] {
			return
		}
		outside[i] = true
		next = append(next, image.Point{X: x, Y: y})
	}
	for x := 0; x < m.Width; x++ {
		push(x, 0)
		push(x, m.Height-1)
	}
	for y := 0; y < m.Height; y++ {
		push(0, y)
		push(m.Width-1, y)
	}
	for len(next) > 0 {
		var p image.Point
		p, next = next[len(next)-1], next[:len(next)-1]
		for _, d := range neighbors4 {
			q := p.Add(d)
			if m.In(q.X, q.Y) {
				push(q.X, q.Y)
			}
		}
	}

	out := New(m.Width, m.Height)
	for i, o := range outside {
		out.Pix[i] = !o
	}
	return out
}
