package mask

import (
	"image"
)

func momentsGo(m *Mask) (m00, m10, m01 float64) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[x+y*m.Width] {
				m00++
				m10 += float64(x)
				m01 += float64(y)
			}
		}
	}
	return
}

// Centroid returns the truncated center of mass of the true pixels.
// ok is false for an empty mask.
func Centroid(m *Mask) (p image.Point, ok bool) {
	m00, m10, m01 := Moments(m)
	if m00 == 0 {
		return image.Point{}, false
	}
	return image.Point{X: int(m10 / m00), Y: int(m01 / m00)}, true
}
