// Package dither injects noise into a raster ahead of quantization.
package dither

import (
	"github.com/debandit/igndither/internal/noise"
	"github.com/debandit/igndither/internal/raster"
)

// Apply perturbs img in-place with the given noise field. Each field sample
// n in [0,1) becomes an offset (n-0.5)*2*strength*255, added to all three
// channels of its pixel; sharing one sample across channels dithers
// luminance-correlated structure instead of adding chroma noise. Results are
// clamped to [0,255].
//
// The clamp applies in whatever colorspace the raster currently holds. In
// LAB mode that clips a/b to [0,255] as well, mirroring the RGB path; the
// same numeric strength is used for all channels even though their natural
// ranges differ.
//
// With strength 0 the image is unchanged.
func Apply(img *raster.Image, field *noise.Field, strength float64) {
	amp := 2 * strength * 255
	p := img.Pix
	for i, n := range field.V {
		offset := (n - 0.5) * amp
		j := i * 3
		p[j] = clamp(p[j] + offset)
		p[j+1] = clamp(p[j+1] + offset)
		p[j+2] = clamp(p[j+2] + offset)
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
