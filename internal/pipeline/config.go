package pipeline

import (
	"fmt"

	"github.com/debandit/igndither/internal/palette"
)

// Colorspace selects the space pixel processing runs in.
type Colorspace string

const (
	// ColorspaceRGB processes pixels as plain sRGB.
	ColorspaceRGB Colorspace = "rgb"

	// ColorspaceLab processes pixels in CIE LAB, a perceptually more
	// uniform space; the image is converted back to sRGB before
	// quantization.
	ColorspaceLab Colorspace = "lab"
)

// Config holds one conversion's settings. It is built once from user input,
// validated, and never mutated afterwards; the same Config is reused
// unchanged across every file of a batch.
type Config struct {
	// NoiseScale is the coarseness of the noise pattern in pixels (1-8).
	NoiseScale int

	// Strength scales the dither amplitude (0.0-1.0; useful values are
	// small, around 0.001-0.01).
	Strength float64

	// BlurRadius is the Gaussian blur applied to the final image
	// (0 disables, max 16).
	BlurRadius float64

	// PaletteMode selects adaptive (full 8-bit) or system (Windows
	// 256-color) quantization.
	PaletteMode palette.Mode

	// Normalize rescales the color range to [0,255] before dithering.
	Normalize bool

	// PreBlur is a Gaussian blur applied before dithering to smooth
	// preexisting artifacts (0 disables, max 2).
	PreBlur float64

	// Seed offsets the noise coordinates (0-1000). noise.RandomSeed (-1)
	// draws a random seed per conversion.
	Seed int

	// TwoPass applies a second, lighter dithering pass with a coarser
	// pattern to further break up banding.
	TwoPass bool

	// Colorspace is the processing space, rgb or lab.
	Colorspace Colorspace

	// UseHash names the output after the MD5 of its final pixel data
	// instead of the input stem.
	UseHash bool
}

// Validate checks every field against its allowed range. It returns the
// first violation found; a Config that passes is safe to run.
func (c *Config) Validate() error {
	if c.NoiseScale < 1 || c.NoiseScale > 8 {
		return fmt.Errorf("noise scale must be between 1 and 8, got %d", c.NoiseScale)
	}
	if c.Strength < 0 || c.Strength > 1 {
		return fmt.Errorf("strength must be between 0.0 and 1.0, got %g", c.Strength)
	}
	if c.BlurRadius < 0 || c.BlurRadius > 16 {
		return fmt.Errorf("blur radius must be between 0.0 and 16.0, got %g", c.BlurRadius)
	}
	if c.PreBlur < 0 || c.PreBlur > 2 {
		return fmt.Errorf("pre-blur must be between 0.0 and 2.0, got %g", c.PreBlur)
	}
	if c.Seed < -1 || c.Seed > 1000 {
		return fmt.Errorf("seed must be between -1 and 1000, got %d", c.Seed)
	}
	if !c.PaletteMode.Valid() {
		return fmt.Errorf("palette mode must be %q or %q, got %q", palette.Adaptive, palette.System, c.PaletteMode)
	}
	if c.Colorspace != ColorspaceRGB && c.Colorspace != ColorspaceLab {
		return fmt.Errorf("colorspace must be %q or %q, got %q", ColorspaceRGB, ColorspaceLab, c.Colorspace)
	}
	return nil
}
