// Package colorspace converts rasters between sRGB and CIE LAB.
//
// The conversion uses the D65 illuminant throughout. LAB values are kept in
// their natural ranges (L in [0,100], a/b roughly [-128,127]) inside the
// raster's float channels; callers are expected to convert back to RGB
// before truncating to 8-bit.
package colorspace

import (
	"math"

	"github.com/debandit/igndither/internal/raster"
)

// Linear RGB -> XYZ, D65 illuminant.
var rgbToXYZ = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// XYZ -> linear RGB, inverse of rgbToXYZ.
var xyzToRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

// D65 reference white point.
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

// RGBToLab converts a raster in-place from 8-bit-range sRGB to CIE LAB.
//
// Per pixel: channels are normalized to [0,1], sRGB gamma is removed, the
// linear values are taken through XYZ (D65) and the LAB nonlinearity, and
// L, a, b replace R, G, B in the buffer.
func RGBToLab(img *raster.Image) {
	p := img.Pix
	for i := 0; i < len(p); i += 3 {
		r := srgbToLinear(p[i] / 255)
		g := srgbToLinear(p[i+1] / 255)
		b := srgbToLinear(p[i+2] / 255)

		x := rgbToXYZ[0][0]*r + rgbToXYZ[0][1]*g + rgbToXYZ[0][2]*b
		y := rgbToXYZ[1][0]*r + rgbToXYZ[1][1]*g + rgbToXYZ[1][2]*b
		z := rgbToXYZ[2][0]*r + rgbToXYZ[2][1]*g + rgbToXYZ[2][2]*b

		fx := labF(x / whiteX)
		fy := labF(y / whiteY)
		fz := labF(z / whiteZ)

		p[i] = 116*fy - 16
		p[i+1] = 500 * (fx - fy)
		p[i+2] = 200 * (fy - fz)
	}
}

// LabToRGB converts a raster in-place from CIE LAB back to 8-bit-range sRGB,
// clamping each channel to [0,255]. It inverts RGBToLab step by step;
// LabToRGB(RGBToLab(x)) reproduces x within floating-point tolerance.
func LabToRGB(img *raster.Image) {
	p := img.Pix
	for i := 0; i < len(p); i += 3 {
		fy := (p[i] + 16) / 116
		fx := p[i+1]/500 + fy
		fz := fy - p[i+2]/200

		x := labFInv(fx) * whiteX
		y := labFInv(fy) * whiteY
		z := labFInv(fz) * whiteZ

		r := xyzToRGB[0][0]*x + xyzToRGB[0][1]*y + xyzToRGB[0][2]*z
		g := xyzToRGB[1][0]*x + xyzToRGB[1][1]*y + xyzToRGB[1][2]*z
		b := xyzToRGB[2][0]*x + xyzToRGB[2][1]*y + xyzToRGB[2][2]*z

		p[i] = clamp255(linearToSRGB(r) * 255)
		p[i+1] = clamp255(linearToSRGB(g) * 255)
		p[i+2] = clamp255(linearToSRGB(b) * 255)
	}
}

// srgbToLinear removes the sRGB transfer curve from a [0,1] value.
func srgbToLinear(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// linearToSRGB applies the sRGB transfer curve to a linear value.
func linearToSRGB(v float64) float64 {
	if v > 0.0031308 {
		return 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return 12.92 * v
}

// labF is the LAB forward nonlinearity with the CIE linear-segment cutoff.
func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// labFInv inverts labF. The cutoff 0.2068966 is labF applied to 0.008856.
func labFInv(t float64) float64 {
	if t > 0.2068966 {
		return t * t * t
	}
	return (t - 16.0/116.0) / 7.787
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
