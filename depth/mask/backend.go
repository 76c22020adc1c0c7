//go:build !opencv
// +build !opencv

package mask

// Erode applies a 3x3 erosion. Pixels outside the grid are false,
// so border pixels are always cleared.
func Erode(m *Mask) *Mask {
	return erodeGo(m)
}

// Edges detects the outline of the mask by Canny's method on the 0/255
// rendering, with hysteresis thresholds low and high.
func Edges(m *Mask, low, high float64) *Mask {
	return edgesGo(m, low, high)
}

// Moments returns the raw spatial moments of order 0 and 1.
func Moments(m *Mask) (m00, m10, m01 float64) {
	return momentsGo(m)
}
