package depth

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
)

// ReadPNG decodes a 16-bit gray PNG of millimeters.
func ReadPNG(r io.Reader) (*Image, error) {
	src, err := png.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding png")
	}
	g, ok := src.(*image.Gray16)
	if !ok {
		return nil, errors.Errorf("depth png must be 16-bit gray, got %T", src)
	}
	b := g.Bounds()
	out := NewMillimeters(b.Dx(), b.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Millimeters[x+y*out.Width] = g.Gray16At(b.Min.X+x, b.Min.Y+y).Y
		}
	}
	return out, nil
}

// WritePNG encodes a millimeter image as a 16-bit gray PNG.
func WritePNG(w io.Writer, img *Image) error {
	if err := requireMillimeters(img); err != nil {
		return err
	}
	g := image.NewGray16(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := img.Millimeters[x+y*img.Width]
			i := 2*x + y*g.Stride
			g.Pix[i] = uint8(v >> 8)
			g.Pix[i+1] = uint8(v)
		}
	}
	return png.Encode(w, g)
}
