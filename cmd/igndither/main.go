package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/debandit/igndither/internal/palette"
	"github.com/debandit/igndither/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Handle --version before flag parsing so it wins over everything else
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("igndither %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return 0
		}
	}

	// Diagnostics go to stderr; conversion progress uses stdout
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	fs := flag.NewFlagSet("igndither", flag.ContinueOnError)

	var (
		inputDir    string
		output      string
		noiseScale  int
		strength    float64
		blurRadius  float64
		useHash     bool
		paletteMode string
		normalize   bool
		preblur     float64
		seed        int
		twopass     bool
		colorSpace  string
	)

	fs.StringVar(&inputDir, "d", "", "input directory (for batch conversion)")
	fs.StringVar(&output, "o", "", "output directory (required for batch conversion)")
	fs.IntVar(&noiseScale, "n", 1, "noise scale/coarseness in pixels (1-8)")
	fs.Float64Var(&strength, "s", 0.005, "noise strength (0.0-1.0, recommended: 0.001-0.01)")
	fs.Float64Var(&blurRadius, "b", 0.0, "gaussian blur radius for final image (0.0-16.0)")
	fs.Float64Var(&blurRadius, "blur", 0.0, "gaussian blur radius for final image (0.0-16.0)")
	fs.BoolVar(&useHash, "m", false, "use MD5 hash of the final image as filename")
	fs.BoolVar(&useHash, "md5filename", false, "use MD5 hash of the final image as filename")
	fs.StringVar(&paletteMode, "p", "adaptive", "palette mode: adaptive (16.7M colors) or system (Windows 256-color)")
	fs.StringVar(&paletteMode, "palette", "adaptive", "palette mode: adaptive (16.7M colors) or system (Windows 256-color)")
	fs.BoolVar(&normalize, "r", false, "normalize image color range before dithering")
	fs.BoolVar(&normalize, "range-normalize", false, "normalize image color range before dithering")
	fs.Float64Var(&preblur, "pb", 0.0, "pre-blur radius before dithering (0.0-2.0)")
	fs.Float64Var(&preblur, "preblur", 0.0, "pre-blur radius before dithering (0.0-2.0)")
	fs.IntVar(&seed, "sd", 0, "noise seed offset (0-1000, -1 for random)")
	fs.IntVar(&seed, "seed", 0, "noise seed offset (0-1000, -1 for random)")
	fs.BoolVar(&twopass, "tp", false, "apply a second lighter dithering pass")
	fs.BoolVar(&twopass, "twopass", false, "apply a second lighter dithering pass")
	fs.StringVar(&colorSpace, "cs", "rgb", "color space for processing: rgb or lab")
	fs.StringVar(&colorSpace, "colorspace", "rgb", "color space for processing: rgb or lab")

	fs.Usage = func() { usage(fs) }

	// Help is a successful outcome, like --version
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			usage(fs)
			return 0
		}
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg := &pipeline.Config{
		NoiseScale:  noiseScale,
		Strength:    strength,
		BlurRadius:  blurRadius,
		PaletteMode: palette.Mode(paletteMode),
		Normalize:   normalize,
		PreBlur:     preblur,
		Seed:        seed,
		TwoPass:     twopass,
		Colorspace:  pipeline.Colorspace(colorSpace),
		UseHash:     useHash,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	inputFile := ""
	switch fs.NArg() {
	case 0:
	case 1:
		inputFile = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: Only one input file may be given")
		return 1
	}

	// Mode selection: positional input file XOR -d directory
	if inputFile != "" && inputDir != "" {
		fmt.Fprintln(os.Stderr, "Error: Cannot specify both input file and -d directory")
		return 1
	}
	if inputFile == "" && inputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: Must specify either an input file or -d directory")
		usage(fs)
		return 1
	}

	if inputFile != "" {
		if err := pipeline.ProcessFile(inputFile, output, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if output == "" {
		fmt.Fprintln(os.Stderr, "Error: Output directory (-o) is required for batch conversion")
		return 1
	}
	sum, err := pipeline.ProcessDirectory(inputDir, output, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !sum.OK() {
		return 1
	}
	return 0
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "igndither - convert images to dithered 8-bit PNG using interleaved gradient noise")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  igndither [options] input_file")
	fmt.Fprintln(os.Stderr, "  igndither [options] -d input_dir -o output_dir")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  igndither photo.jpg")
	fmt.Fprintln(os.Stderr, "  igndither -d ./images -o ./converted")
	fmt.Fprintln(os.Stderr, "  igndither -n 4 -s 0.005 photo.jpg")
	fmt.Fprintln(os.Stderr, "  igndither -p system -b 2.5 photo.jpg")
	fmt.Fprintln(os.Stderr, "  igndither -pb 0.5 -sd 42 -tp -cs lab photo.jpg")
}
