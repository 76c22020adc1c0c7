package depth

var pyrKernel = [5]float32{1.0 / 16, 4.0 / 16, 6.0 / 16, 4.0 / 16, 1.0 / 16}

func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// PyrDown blurs the image by a 5×5 Gaussian kernel and drops every other
// row and column. The result is ((W+1)/2)×((H+1)/2).
func PyrDown(img *Image) (*Image, error) {
	if err := RequireFloat(img); err != nil {
		return nil, err
	}
	return pyrDown(img), nil
}

func pyrDownGo(img *Image) *Image {
	w, h := (img.Width+1)/2, (img.Height+1)/2

	// Horizontal pass on the kept columns.
	tmp := make([]float32, w*img.Height)
	for y := 0; y < img.Height; y++ {
		row := img.Float[y*img.Width : (y+1)*img.Width]
		for x := 0; x < w; x++ {
			var sum float32
			for k, c := range pyrKernel {
				sum += c * row[reflect101(2*x+k-2, img.Width)]
			}
			tmp[x+y*w] = sum
		}
	}

	out := NewFloat(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k, c := range pyrKernel {
				sum += c * tmp[x+reflect101(2*y+k-2, img.Height)*w]
			}
			out.Float[x+y*w] = sum
		}
	}
	return out
}
