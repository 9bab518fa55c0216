package engine

import "github.com/Beastly713/matryoshka/pkg/pixel"

// markerPalette is the documented test-mode colour cycle, indexed by
// chain level starting at red for level 1.
var markerPalette = []pixel.RGB{
	{R: 255, G: 0, B: 0},
	{R: 0, G: 255, B: 0},
	{R: 0, G: 0, B: 255},
	{R: 255, G: 255, B: 0},
	{R: 255, G: 0, B: 255},
	{R: 0, G: 255, B: 255},
}

// Marker returns the test-mode colour for a 1-based chain level. Levels
// beyond the palette wrap around.
func Marker(level int) pixel.RGB {
	return markerPalette[(level-1)%len(markerPalette)]
}
