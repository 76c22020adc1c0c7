// Package depth provides depth image containers and the numeric helpers
// shared by the depth segmenters.
package depth

import (
	"fmt"

	"github.com/pkg/errors"
)

type Encoding int

const (
	// Float32Meters is a 32FC1 image of ranges in meters.
	Float32Meters Encoding = iota
	// Uint16Millimeters is a 16UC1 image of ranges in millimeters.
	Uint16Millimeters
)

func (e Encoding) String() string {
	switch e {
	case Float32Meters:
		return "32FC1"
	case Uint16Millimeters:
		return "16UC1"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

var (
	ErrInvalidImage = errors.New("invalid depth image")
	ErrNotFloat     = errors.New("depth image must be float meters")
)

// EncodingError is returned when an image of unexpected encoding is given.
type EncodingError struct {
	Expected, Got Encoding
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("depth image must be %s, got %s", e.Expected, e.Got)
}

func (e *EncodingError) Unwrap() error {
	if e.Expected == Float32Meters {
		return ErrNotFloat
	}
	return nil
}

// Image is a row major H×W grid of depth samples.
// Only the slice of the Encoding is used.
type Image struct {
	Width, Height int
	Encoding      Encoding
	Float         []float32
	Millimeters   []uint16
}

func NewFloat(w, h int) *Image {
	return &Image{
		Width:    w,
		Height:   h,
		Encoding: Float32Meters,
		Float:    make([]float32, w*h),
	}
}

func NewMillimeters(w, h int) *Image {
	return &Image{
		Width:       w,
		Height:      h,
		Encoding:    Uint16Millimeters,
		Millimeters: make([]uint16, w*h),
	}
}

// At returns the range at (x, y) of a float image.
func (img *Image) At(x, y int) float32 {
	return img.Float[x+y*img.Width]
}

func (img *Image) Set(x, y int, v float32) {
	img.Float[x+y*img.Width] = v
}

func (img *Image) Len() int {
	return img.Width * img.Height
}

func (img *Image) Validate() error {
	if img == nil {
		return errors.Wrap(ErrInvalidImage, "nil image")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return errors.Wrapf(ErrInvalidImage, "size %dx%d", img.Width, img.Height)
	}
	var n int
	switch img.Encoding {
	case Float32Meters:
		n = len(img.Float)
	case Uint16Millimeters:
		n = len(img.Millimeters)
	default:
		return errors.Wrapf(ErrInvalidImage, "unknown encoding %s", img.Encoding)
	}
	if n != img.Len() {
		return errors.Wrapf(ErrInvalidImage, "%d samples for %dx%d", n, img.Width, img.Height)
	}
	return nil
}

// RequireFloat validates img and checks that it is in float meters.
func RequireFloat(img *Image) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if img.Encoding != Float32Meters {
		return &EncodingError{Expected: Float32Meters, Got: img.Encoding}
	}
	return nil
}

func requireMillimeters(img *Image) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if img.Encoding != Uint16Millimeters {
		return &EncodingError{Expected: Uint16Millimeters, Got: img.Encoding}
	}
	return nil
}
