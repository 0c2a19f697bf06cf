package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/debandit/igndither/internal/imgio"
)

// Summary reports the outcome of a directory run.
type Summary struct {
	Succeeded int
	Failed    int
}

// OK reports whether every file converted successfully.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// ProcessFile converts a single input file, printing progress to stdout.
// It returns an error for a missing input or a failed conversion.
func ProcessFile(inputPath, outputDir string, cfg *Config) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is not a file: %s", inputPath)
	}

	fmt.Printf("Converting: %s\n", filepath.Base(inputPath))
	printSettings(cfg)

	finalPath, err := Convert(inputPath, outputDir, cfg)
	if err != nil {
		return fmt.Errorf("error converting %s: %w", inputPath, err)
	}
	fmt.Printf("Successfully converted to: %s\n", finalPath)
	return nil
}

// ProcessDirectory converts every supported image directly under inputDir,
// writing results to outputDir. Each file is converted independently: a
// failure is reported, counted and skipped, and the batch continues with the
// next file. The returned Summary carries the success/failure counts; the
// error is non-nil only for problems that prevent the batch from starting
// at all (missing directory, no images found).
func ProcessDirectory(inputDir, outputDir string, cfg *Config) (Summary, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("input directory not found: %s", inputDir)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("input path is not a directory: %s", inputDir)
	}

	files, err := listImages(inputDir)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("no supported images found in %s (supported: %s)",
			inputDir, strings.Join(imgio.SupportedExtensions(), ", "))
	}

	fmt.Printf("Found %d image(s) to convert\n", len(files))
	fmt.Printf("Output directory: %s\n", outputDir)
	printSettings(cfg)
	fmt.Println()

	var sum Summary
	for _, path := range files {
		fmt.Printf("Converting: %s\n", filepath.Base(path))
		finalPath, err := Convert(path, outputDir, cfg)
		if err != nil {
			sum.Failed++
			fmt.Printf("Failed: %v\n\n", err)
			continue
		}
		sum.Succeeded++
		fmt.Printf("Success -> %s\n\n", filepath.Base(finalPath))
	}

	fmt.Printf("Conversion complete: %d succeeded, %d failed\n", sum.Succeeded, sum.Failed)
	return sum, nil
}

// listImages returns the supported image files directly under dir, sorted.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !imgio.IsSupported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func printSettings(cfg *Config) {
	fmt.Printf("Settings: Scale=%dpx, Strength=%g, Blur=%g, Palette=%s\n",
		cfg.NoiseScale, cfg.Strength, cfg.BlurRadius, cfg.PaletteMode)
	fmt.Printf("          Normalize=%t, PreBlur=%g, Seed=%d, TwoPass=%t, ColorSpace=%s, Hash=%t\n",
		cfg.Normalize, cfg.PreBlur, cfg.Seed, cfg.TwoPass, cfg.Colorspace, cfg.UseHash)
}
