//go:build !opencv
// +build !opencv

package depth

func pyrDown(img *Image) *Image {
	return pyrDownGo(img)
}
