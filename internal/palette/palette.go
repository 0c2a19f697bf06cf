// Package palette implements the output color-reduction policies.
//
// Two policies exist. "Adaptive" keeps full 8-bit-per-channel output: the
// already-dithered float raster is simply truncated to uint8, with no
// palette construction at all. "System" maps every pixel to its nearest
// entry in the fixed 256-color Windows palette, with no additional
// dithering (noise was already injected upstream).
package palette

import (
	"image"
	"image/color"
	"sync"
)

// Mode selects the quantization policy.
type Mode string

const (
	// Adaptive keeps 8-bit per channel (16.7M colors); quantization is
	// plain truncation and no palette is built.
	Adaptive Mode = "adaptive"

	// System reduces to the fixed 256-entry Windows palette.
	System Mode = "system"
)

// Valid reports whether m names a known palette mode.
func (m Mode) Valid() bool {
	return m == Adaptive || m == System
}

var (
	systemOnce    sync.Once
	systemPalette color.Palette
)

// SystemPalette returns the Windows 8bpp system palette: 256 entries, built
// once per process and shared read-only.
//
// Layout: indices 0-9 are the first ten reserved system colors, 10-225 a
// 6×6×6 RGB cube with component values {0,51,102,153,204,255} iterated in
// nested R,G,B order, 226-245 twenty gray shades gray = 8 + i*240/19, and
// 246-255 the last ten reserved system colors. Entry 0 is black, entry 255
// is white.
func SystemPalette() color.Palette {
	systemOnce.Do(func() {
		systemPalette = buildSystemPalette()
	})
	return systemPalette
}

func buildSystemPalette() color.Palette {
	p := make(color.Palette, 0, 256)

	// First ten reserved system colors.
	for _, c := range [][3]uint8{
		{0, 0, 0},       // black
		{128, 0, 0},     // dark red
		{0, 128, 0},     // dark green
		{128, 128, 0},   // dark yellow
		{0, 0, 128},     // dark blue
		{128, 0, 128},   // dark magenta
		{0, 128, 128},   // dark cyan
		{192, 192, 192}, // light grey
		{192, 220, 192}, // money green
		{166, 202, 240}, // sky blue
	} {
		p = append(p, color.NRGBA{c[0], c[1], c[2], 255})
	}

	// 6x6x6 color cube.
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p = append(p, color.NRGBA{uint8(r * 51), uint8(g * 51), uint8(b * 51), 255})
			}
		}
	}

	// Twenty gray shades filling the remaining cube slots.
	for i := 0; i < 20; i++ {
		gray := uint8(8 + i*240/19)
		p = append(p, color.NRGBA{gray, gray, gray, 255})
	}

	// Last ten reserved system colors.
	for _, c := range [][3]uint8{
		{255, 251, 240}, // cream
		{160, 160, 164}, // medium grey
		{128, 128, 128}, // dark grey
		{255, 0, 0},     // red
		{0, 255, 0},     // green
		{255, 255, 0},   // yellow
		{0, 0, 255},     // blue
		{255, 0, 255},   // magenta
		{0, 255, 255},   // cyan
		{255, 255, 255}, // white
	} {
		p = append(p, color.NRGBA{c[0], c[1], c[2], 255})
	}

	return p
}

// Map replaces every pixel of img with its nearest entry in pal, measured
// by squared distance in RGB. No dithering is applied here. Ties between
// equidistant entries resolve to the lower index; that tie-break is an
// implementation detail, not a contract.
//
// The result is a plain RGB image; palette indices are not retained.
func Map(img *image.NRGBA, pal color.Palette) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)

	// Nearest-neighbor search repeats heavily on real images, so memoize
	// per distinct input color.
	cache := make(map[color.NRGBA]color.NRGBA)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			in := color.NRGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], 255}
			nearest, ok := cache[in]
			if !ok {
				nearest = pal.Convert(in).(color.NRGBA)
				cache[in] = nearest
			}
			o := out.PixOffset(x, y)
			out.Pix[o] = nearest.R
			out.Pix[o+1] = nearest.G
			out.Pix[o+2] = nearest.B
			out.Pix[o+3] = 255
		}
	}
	return out
}
