// Package raster provides the floating-point pixel buffer the conversion
// pipeline operates on, plus the conversions in and out of the standard
// library's 8-bit image types.
package raster

import (
	"image"
)

// Image is a width×height RGB raster with float64 channels, interleaved
// R,G,B per pixel, row-major. Channel values are nominally in [0,255] but
// intermediate stages (LAB conversion, normalization) may move outside
// that range; Truncate re-establishes it.
//
// Dimensions are fixed at construction and never change across pipeline
// stages.
type Image struct {
	Width  int
	Height int
	Pix    []float64 // len = Width*Height*3
}

// New allocates a zeroed raster of the given dimensions.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*3),
	}
}

// FromImage converts any image.Image into a float raster.
//
// Alpha is flattened by compositing onto a white background, matching the
// behavior of pasting an RGBA image over white before conversion. Grayscale
// and paletted inputs come out as equal-channel RGB.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := New(width, height)

	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			if a == 0 {
				// Fully transparent composites to pure white.
				out.Pix[i+0] = 255
				out.Pix[i+1] = 255
				out.Pix[i+2] = 255
				i += 3
				continue
			}
			// RGBA() returns alpha-premultiplied 16-bit values. Composite
			// over white: out = fg + (1-alpha)*255, all in 16-bit space.
			af := float64(a) / 65535.0
			out.Pix[i+0] = float64(r)/257.0 + (1-af)*255
			out.Pix[i+1] = float64(g)/257.0 + (1-af)*255
			out.Pix[i+2] = float64(b)/257.0 + (1-af)*255
			i += 3
		}
	}
	return out
}

// Normalize rescales the full buffer so that the global minimum maps to 0
// and the global maximum to 255. All channels are scaled jointly; per the
// pipeline contract this runs before dithering and may be applied to LAB
// values as well as RGB. A constant image is left unchanged.
func (m *Image) Normalize() {
	if len(m.Pix) == 0 {
		return
	}
	min, max := m.Pix[0], m.Pix[0]
	for _, v := range m.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return
	}
	scale := 255 / (max - min)
	for i, v := range m.Pix {
		m.Pix[i] = (v - min) * scale
	}
}

// ToNRGBA truncates the raster to 8-bit output: each channel is clamped to
// [0,255] and floored (not rounded). Alpha is fully opaque.
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	src := 0
	for y := 0; y < m.Height; y++ {
		dst := out.PixOffset(0, y)
		for x := 0; x < m.Width; x++ {
			out.Pix[dst+0] = truncByte(m.Pix[src+0])
			out.Pix[dst+1] = truncByte(m.Pix[src+1])
			out.Pix[dst+2] = truncByte(m.Pix[src+2])
			out.Pix[dst+3] = 255
			src += 3
			dst += 4
		}
	}
	return out
}

// RGBBytes returns an image's pixels as packed 8-bit R,G,B triples in
// row-major order. Used for content hashing, where the alpha byte must not
// participate.
func RGBBytes(img *image.NRGBA) []byte {
	bounds := img.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			out = append(out, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		}
	}
	return out
}

// truncByte clamps v to [0,255] and truncates toward zero.
func truncByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
