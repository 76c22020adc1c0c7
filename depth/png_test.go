package depth

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPNG(t *testing.T) {
	img := &Image{
		Width: 3, Height: 2, Encoding: Uint16Millimeters,
		Millimeters: []uint16{0, 1, 255, 256, 1234, 65535},
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := ReadPNG(&buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(img, got); diff != "" {
		t.Errorf("Unexpected image (-want +got):\n%s", diff)
	}
}

func TestPNG_Error(t *testing.T) {
	t.Run("NotPNG", func(t *testing.T) {
		if _, err := ReadPNG(bytes.NewReader([]byte("not a png"))); err == nil {
			t.Error("Expected error")
		}
	})
	t.Run("8bit", func(t *testing.T) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadPNG(&buf); err == nil {
			t.Error("Expected error")
		}
	})
	t.Run("WriteFloat", func(t *testing.T) {
		if err := WritePNG(&bytes.Buffer{}, NewFloat(2, 2)); err == nil {
			t.Error("Expected error")
		}
	})
}
