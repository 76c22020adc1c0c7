package depth

import (
	"image"
	"math"
)

// ToMillimeters converts a float image in meters to rounded millimeters.
// NaN becomes 0 and out of range values are clamped.
func ToMillimeters(img *Image) (*Image, error) {
	if err := RequireFloat(img); err != nil {
		return nil, err
	}
	out := NewMillimeters(img.Width, img.Height)
	for i, v := range img.Float {
		mm := math.Round(float64(v) * 1000)
		switch {
		case math.IsNaN(mm), mm <= 0:
			out.Millimeters[i] = 0
		case mm >= math.MaxUint16:
			out.Millimeters[i] = math.MaxUint16
		default:
			out.Millimeters[i] = uint16(mm)
		}
	}
	return out, nil
}

// FromMillimeters converts a millimeter image to float meters.
// 0, the missing range, becomes NaN.
func FromMillimeters(img *Image) (*Image, error) {
	if err := requireMillimeters(img); err != nil {
		return nil, err
	}
	out := NewFloat(img.Width, img.Height)
	for i, v := range img.Millimeters {
		if v == 0 {
			out.Float[i] = float32(math.NaN())
			continue
		}
		out.Float[i] = float32(v) / 1000
	}
	return out, nil
}

// Gray scales the image to 8 bits for display.
// maxMillimeters and farther ranges are white.
func Gray(img *Image, maxMillimeters float64) (*image.Gray, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	scale := func(mm float64) uint8 {
		if math.IsNaN(mm) || mm <= 0 {
			return 0
		}
		if mm > maxMillimeters {
			mm = maxMillimeters
		}
		return uint8(mm / maxMillimeters * 255)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := x + y*img.Width
			var mm float64
			if img.Encoding == Float32Meters {
				mm = float64(img.Float[i]) * 1000
			} else {
				mm = float64(img.Millimeters[i])
			}
			out.Pix[x+y*out.Stride] = scale(mm)
		}
	}
	return out, nil
}
