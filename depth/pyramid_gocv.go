//go:build opencv
// +build opencv

package depth

import (
	"image"

	"gocv.io/x/gocv"
)

func pyrDown(img *Image) *Image {
	src := gocv.NewMatWithSize(img.Height, img.Width, gocv.MatTypeCV32F)
	defer src.Close()
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			src.SetFloatAt(y, x, img.Float[x+y*img.Width])
		}
	}
	dst := gocv.NewMat()
	defer dst.Close()

	gocv.PyrDown(src, &dst, image.Point{}, gocv.BorderReflect101)

	out := NewFloat(dst.Cols(), dst.Rows())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Float[x+y*out.Width] = dst.GetFloatAt(y, x)
		}
	}
	return out
}
