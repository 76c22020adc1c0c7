package mask

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fromStrings(rows ...string) *Mask {
	m := New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			m.Set(x, y, c == '#')
		}
	}
	return m
}

func (m *Mask) String() string {
	var s []byte
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				s = append(s, '#')
			} else {
				s = append(s, '.')
			}
		}
		s = append(s, '\n')
	}
	return string(s)
}

func rect(w, h int, r image.Rectangle) *Mask {
	m := New(w, h)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func TestMask(t *testing.T) {
	m := fromStrings(
		"#..",
		".##",
	)
	if n := m.Count(); n != 3 {
		t.Errorf("Expected 3 pixels, got %d", n)
	}
	expected := []image.Point{{0, 0}, {1, 1}, {2, 1}}
	if diff := cmp.Diff(expected, m.Points()); diff != "" {
		t.Errorf("Unexpected points (-want +got):\n%s", diff)
	}
	if m.At(-1, 0) || m.At(3, 1) || m.At(0, 2) {
		t.Error("Outside of the grid must be false")
	}
	c := m.Clone()
	c.Set(0, 0, false)
	if !m.At(0, 0) {
		t.Error("Clone must not share pixels")
	}
}

func TestSample(t *testing.T) {
	m := fromStrings(
		"####",
		"####",
		"####",
	)
	expected := fromStrings(
		"#.#.",
		"....",
		"#.#.",
	)
	if got := Sample(m, 2); !cmp.Equal(expected, got) {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, got)
	}
	if got := Sample(m, 1); !cmp.Equal(m, got) {
		t.Errorf("Stride 1 must keep all pixels, got:\n%s", got)
	}
}

func TestGray(t *testing.T) {
	g := Gray(fromStrings("#.", ".#"))
	if diff := cmp.Diff([]uint8{0xFF, 0, 0, 0xFF}, g.Pix); diff != "" {
		t.Errorf("Unexpected gray (-want +got):\n%s", diff)
	}
}
