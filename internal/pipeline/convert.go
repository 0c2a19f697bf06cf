package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/debandit/igndither/internal/colorspace"
	"github.com/debandit/igndither/internal/dither"
	"github.com/debandit/igndither/internal/imgio"
	"github.com/debandit/igndither/internal/noise"
	"github.com/debandit/igndither/internal/palette"
	"github.com/debandit/igndither/internal/raster"
)

// OutputSuffix is appended to the input stem for non-hash output names.
const OutputSuffix = "_ignpy"

// Convert runs the full pipeline on one image and writes the resulting PNG.
//
// outputDir selects where the result lands; when empty, the input's own
// directory is used. The final filename is <stem>_ignpy.png, or
// <md5-of-pixels>.png when cfg.UseHash is set. The path actually written is
// returned.
//
// Convert processes exactly one image and holds no state between calls; a
// failure affects only this image.
func Convert(inputPath, outputDir string, cfg *Config) (string, error) {
	src, err := imgio.Load(inputPath)
	if err != nil {
		return "", err
	}

	out := convertImage(src, cfg)

	finalPath, err := outputPath(inputPath, outputDir, cfg, out)
	if err != nil {
		return "", err
	}
	if err := imgio.SavePNG(out, finalPath); err != nil {
		return "", err
	}
	return finalPath, nil
}

// convertImage is the in-memory pixel chain, shared by Convert and tests.
func convertImage(src image.Image, cfg *Config) *image.NRGBA {
	if cfg.PreBlur > 0 {
		// Alpha is flattened first so the blur sees the white-composited
		// image rather than premultiplied channels.
		src = imgio.Gaussian(raster.FromImage(src).ToNRGBA(), cfg.PreBlur)
	}

	img := raster.FromImage(src)
	width, height := img.Width, img.Height

	inLab := cfg.Colorspace == ColorspaceLab
	if inLab {
		colorspace.RGBToLab(img)
	}
	if cfg.Normalize {
		img.Normalize()
	}

	field := noise.Generate(width, height, cfg.NoiseScale, cfg.Seed)
	dither.Apply(img, field, cfg.Strength)

	if inLab {
		colorspace.LabToRGB(img)
	}

	out := img.ToNRGBA()
	if cfg.PaletteMode == palette.System {
		out = palette.Map(out, palette.SystemPalette())
	}

	if cfg.TwoPass {
		// Second pass: coarser pattern, offset seed, 30% strength. With a
		// randomized first-pass seed the offset applies to the sentinel
		// itself, giving a fixed effective seed of 99.
		second := raster.FromImage(out)
		field2 := noise.Generate(width, height, cfg.NoiseScale*2, cfg.Seed+100)
		dither.Apply(second, field2, cfg.Strength*0.3)
		out = second.ToNRGBA()
		if cfg.PaletteMode == palette.System {
			out = palette.Map(out, palette.SystemPalette())
		}
	}

	if cfg.BlurRadius > 0 {
		out = toNRGBA(imgio.Gaussian(out, cfg.BlurRadius))
	}
	return out
}

// outputPath determines the destination file, creating the output directory
// when one was requested.
func outputPath(inputPath, outputDir string, cfg *Config, out *image.NRGBA) (string, error) {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if cfg.UseHash {
		sum := md5.Sum(raster.RGBBytes(out))
		return filepath.Join(dir, hex.EncodeToString(sum[:])+".png"), nil
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+OutputSuffix+".png"), nil
}

// toNRGBA converts any image to NRGBA without copying when it already is one.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			i := out.PixOffset(x, y)
			out.Pix[i] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
			out.Pix[i+3] = uint8(a >> 8)
		}
	}
	return out
}
