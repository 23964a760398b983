package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"selective-search/internal/imaging"
	"selective-search/internal/regions"
	"selective-search/internal/search"
	"selective-search/internal/texture"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// report is the JSON document written for one image.
type report struct {
	Image     string             `json:"image"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Format    string             `json:"format"`
	Segments  int                `json:"segments"`
	Proposals []regions.Proposal `json:"proposals"`
	Excluded  []regions.Proposal `json:"excluded,omitempty"`
}

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("selective-search %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	defaults := search.DefaultOptions()
	var (
		scale         = flag.Float64("scale", defaults.Scale, "segmentation scale, larger means fewer initial segments")
		sigma         = flag.Float64("sigma", defaults.Sigma, "gaussian smoothing sigma applied before segmentation")
		minSize       = flag.Int("min-size", defaults.MinSize, "minimum segment size in pixels")
		regionPop     = flag.Bool("region-pop", defaults.RegionPop, "drop initial regions whose box already exceeds -max-region-size")
		maxRegionSize = flag.Int("max-region-size", defaults.MaxRegionSize, "bounding box area cap in squared pixels")
		border        = flag.Int("border", defaults.Border, "pixels added around each region's bounding box")
		textureMode   = flag.String("texture", string(defaults.TextureMode), "texture descriptor: lbp or sobel")
		output        = flag.String("output", "-", "report destination, - for stdout")
		patchDir      = flag.String("patch-dir", "", "write one PNG per proposal into this directory")
		patchSide     = flag.Int("patch-side", 0, "warp patches to this square size, 0 keeps native crops")
		patchMinSide  = flag.Int("patch-min-side", 0, "skip patches narrower or shorter than this")
	)
	flag.Parse()

	logger := newLogger()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: selective-search [options] <image>")
		fmt.Fprintln(os.Stderr, "Run 'selective-search --help' for details.")
		os.Exit(2)
	}
	path := flag.Arg(0)

	mode, err := texture.ParseMode(*textureMode)
	if err != nil {
		logger.Fatalf("Invalid -texture value: %v", err)
	}

	img, info, err := imaging.LoadImageInfo(path)
	if err != nil {
		logger.Fatalf("Failed to load image: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"image":    path,
		"format":   info.Format,
		"width":    info.Width,
		"height":   info.Height,
		"channels": info.Channels,
	}).Debug("image loaded")

	opts := search.Options{
		Scale:         *scale,
		Sigma:         *sigma,
		MinSize:       *minSize,
		RegionPop:     *regionPop,
		MaxRegionSize: *maxRegionSize,
		Border:        *border,
		TextureMode:   mode,
	}
	result, err := search.New(opts, logger).Run(img)
	if err != nil {
		logger.Fatalf("Search failed: %v", err)
	}

	rep := report{
		Image:     path,
		Width:     info.Width,
		Height:    info.Height,
		Format:    info.Format,
		Segments:  result.Mask.Count,
		Proposals: result.Proposals,
		Excluded:  result.Excluded,
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to encode report: %v", err)
	}
	data = append(data, '\n')

	if *output == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			logger.Fatalf("Failed to write report: %v", err)
		}
	} else {
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			logger.Fatalf("Failed to write report: %v", err)
		}
	}

	if *patchDir != "" {
		patches, err := search.ExtractPatches(img, result.Proposals, search.PatchOptions{
			Side:    *patchSide,
			MinSide: *patchMinSide,
		})
		if err != nil {
			logger.Fatalf("Failed to extract patches: %v", err)
		}
		if err := search.SavePatches(patches, *patchDir); err != nil {
			logger.Fatalf("Failed to save patches: %v", err)
		}
		logger.WithFields(logrus.Fields{
			"dir":     *patchDir,
			"patches": len(patches),
		}).Info("patches written")
	}
}

// newLogger configures logging to stderr (stdout is for the JSON report).
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logger.SetLevel(logrus.InfoLevel)
	if raw := os.Getenv("SELECTIVE_SEARCH_LOG_LEVEL"); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			logger.Warnf("Ignoring invalid SELECTIVE_SEARCH_LOG_LEVEL=%q", raw)
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}

func printHelp() {
	fmt.Println("selective-search - object proposal generation for images")
	fmt.Println()
	fmt.Println("Usage: selective-search [options] <image>")
	fmt.Println()
	fmt.Println("Reads a PNG, JPEG, GIF, BMP or TIFF image, over-segments it, merges")
	fmt.Println("similar neighboring regions and prints every surviving region as a")
	fmt.Println("JSON object proposal on stdout.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -scale float         segmentation scale (default 1.0)")
	fmt.Println("  -sigma float         gaussian smoothing sigma (default 0.8)")
	fmt.Println("  -min-size int        minimum segment size in pixels (default 50)")
	fmt.Println("  -region-pop          drop oversized initial regions up front")
	fmt.Println("  -max-region-size int bounding box area cap (default 3000)")
	fmt.Println("  -border int          box padding in pixels (default 10)")
	fmt.Println("  -texture string      texture descriptor, lbp or sobel (default lbp)")
	fmt.Println("  -output string       report destination, - for stdout (default -)")
	fmt.Println("  -patch-dir string    write one PNG per proposal into this directory")
	fmt.Println("  -patch-side int      warp patches to this square size, 0 keeps native crops")
	fmt.Println("  -patch-min-side int  skip patches narrower or shorter than this")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SELECTIVE_SEARCH_LOG_LEVEL=debug    Enable debug logging")
}
