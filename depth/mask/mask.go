// Package mask implements binary image operations on row major boolean grids.
package mask

import (
	"image"
)

type Mask struct {
	Width, Height int
	Pix           []bool
}

func New(w, h int) *Mask {
	return &Mask{
		Width:  w,
		Height: h,
		Pix:    make([]bool, w*h),
	}
}

func (m *Mask) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At returns false outside the grid.
func (m *Mask) At(x, y int) bool {
	if !m.In(x, y) {
		return false
	}
	return m.Pix[x+y*m.Width]
}

func (m *Mask) Set(x, y int, v bool) {
	m.Pix[x+y*m.Width] = v
}

func (m *Mask) Clone() *Mask {
	return &Mask{
		Width:  m.Width,
		Height: m.Height,
		Pix:    append([]bool(nil), m.Pix...),
	}
}

func (m *Mask) Count() int {
	var n int
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Points returns positions of the true pixels in row major order.
func (m *Mask) Points() []image.Point {
	ps := make([]image.Point, 0, m.Count())
	for i, v := range m.Pix {
		if v {
			ps = append(ps, image.Point{X: i % m.Width, Y: i / m.Width})
		}
	}
	return ps
}

// Sample keeps the pixels on every stride-th row and column.
func Sample(m *Mask, stride int) *Mask {
	out := New(m.Width, m.Height)
	for y := 0; y < m.Height; y += stride {
		for x := 0; x < m.Width; x += stride {
			i := x + y*m.Width
			out.Pix[i] = m.Pix[i]
		}
	}
	return out
}

// Gray renders the mask as 0/255.
func Gray(m *Mask) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[x+y*m.Width] {
				g.Pix[x+y*g.Stride] = 0xFF
			}
		}
	}
	return g
}
