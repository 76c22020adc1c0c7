package mask

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestErode(t *testing.T) {
	testCases := map[string]struct {
		in, expected *Mask
	}{
		"Block": {
			in: fromStrings(
				".....",
				".###.",
				".###.",
				".###.",
				".....",
			),
			expected: fromStrings(
				".....",
				".....",
				"..#..",
				".....",
				".....",
			),
		},
		"Border": {
			in: fromStrings(
				"####",
				"####",
				"####",
			),
			expected: fromStrings(
				"....",
				".##.",
				"....",
			),
		},
		"Notch": {
			in: fromStrings(
				"#####",
				"#####",
				"##.##",
				"#####",
				"#####",
			),
			expected: fromStrings(
				".....",
				".....",
				".....",
				".....",
				".....",
			),
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if got := Erode(tt.in); !cmp.Equal(tt.expected, got) {
				t.Errorf("Expected:\n%s\ngot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestFillHoles(t *testing.T) {
	testCases := map[string]struct {
		in, expected *Mask
	}{
		"Ring": {
			in: fromStrings(
				"......",
				".####.",
				".#..#.",
				".####.",
				"......",
			),
			expected: fromStrings(
				"......",
				".####.",
				".####.",
				".####.",
				"......",
			),
		},
		"Open": {
			in: fromStrings(
				"......",
				".####.",
				".#....",
				".####.",
				"......",
			),
			expected: fromStrings(
				"......",
				".####.",
				".#....",
				".####.",
				"......",
			),
		},
		"DiagonalGap": {
			// Background 4-connectivity does not pass the diagonal.
			in: fromStrings(
				".....",
				".###.",
				".#.#.",
				"..##.",
				".....",
			),
			expected: fromStrings(
				".....",
				".###.",
				".###.",
				"..##.",
				".....",
			),
		},
		"TouchingBorder": {
			in: fromStrings(
				"####",
				"#..#",
				"####",
			),
			expected: fromStrings(
				"####",
				"####",
				"####",
			),
		},
		"Empty": {
			in:       New(3, 3),
			expected: New(3, 3),
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if got := FillHoles(tt.in); !cmp.Equal(tt.expected, got) {
				t.Errorf("Expected:\n%s\ngot:\n%s", tt.expected, got)
			}
		})
	}
}
