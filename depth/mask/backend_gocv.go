//go:build opencv
// +build opencv

package mask

import (
	"image"

	"gocv.io/x/gocv"
)

// toMat renders the mask as a 0/255 CV_8U matrix with pad false pixels
// on every side.
func toMat(m *Mask, pad int) gocv.Mat {
	w, h := m.Width+2*pad, m.Height+2*pad
	out := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var v uint8
			if m.At(x-pad, y-pad) {
				v = 0xFF
			}
			out.SetUCharAt(y, x, v)
		}
	}
	return out
}

func fromMat(src gocv.Mat, w, h, pad int) *Mask {
	out := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[x+y*w] = src.GetUCharAt(y+pad, x+pad) != 0
		}
	}
	return out
}

// Erode applies a 3x3 erosion. Pixels outside the grid are false,
// so border pixels are always cleared.
func Erode(m *Mask) *Mask {
	// OpenCV treats the outside as foreground while eroding.
	src := toMat(m, 1)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	gocv.Erode(src, &dst, kernel)
	return fromMat(dst, m.Width, m.Height, 1)
}

// Edges detects the outline of the mask by Canny's method on the 0/255
// rendering, with hysteresis thresholds low and high.
func Edges(m *Mask, low, high float64) *Mask {
	src := toMat(m, 0)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Canny(src, &dst, float32(low), float32(high))
	return fromMat(dst, m.Width, m.Height, 0)
}

// Moments returns the raw spatial moments of order 0 and 1.
func Moments(m *Mask) (m00, m10, m01 float64) {
	src := toMat(m, 0)
	defer src.Close()

	mm := gocv.Moments(src, true)
	return mm["m00"], mm["m10"], mm["m01"]
}
