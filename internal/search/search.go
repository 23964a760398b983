package search

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"selective-search/internal/imaging"
	"selective-search/internal/regions"
	"selective-search/internal/segment"
	"selective-search/internal/texture"
)

// ErrNotThreeChannel is returned when the input image does not carry exactly
// three color channels. Grayscale and alpha-bearing images are rejected
// rather than silently converted.
var ErrNotThreeChannel = errors.New("image must have exactly three channels")

// Options controls every stage of the proposal pipeline.
type Options struct {
	// Scale, Sigma and MinSize are the graph segmentation parameters.
	// Larger Scale produces fewer, larger initial segments.
	Scale   float64
	Sigma   float64
	MinSize int

	// RegionPop excludes initial regions whose bounding box area already
	// exceeds MaxRegionSize before any merging happens. Excluded regions
	// are reported separately instead of becoming proposals.
	RegionPop bool

	// MaxRegionSize is the bounding box area cap, in squared pixels.
	// A merged region that grows past it is kept as a proposal but frozen:
	// it takes no further part in merging.
	MaxRegionSize int

	// Border is added on every side of each region's tight bounding box,
	// clipped to the image bounds.
	Border int

	// TextureMode selects the texture channel fed to the descriptors.
	TextureMode texture.Mode
}

// DefaultOptions returns the standard parameter set.
func DefaultOptions() Options {
	return Options{
		Scale:         1.0,
		Sigma:         0.8,
		MinSize:       50,
		RegionPop:     false,
		MaxRegionSize: 3000,
		Border:        10,
		TextureMode:   texture.ModeLBP,
	}
}

func (o Options) validate() error {
	if o.Border < 0 {
		return fmt.Errorf("border must be >= 0, got %d", o.Border)
	}
	if o.MaxRegionSize < 0 {
		return fmt.Errorf("max region size must be >= 0, got %d", o.MaxRegionSize)
	}
	switch o.TextureMode {
	case texture.ModeLBP, texture.ModeSobel:
	default:
		return fmt.Errorf("unknown texture mode %q", o.TextureMode)
	}
	return nil
}

// Result is the output of a single search run.
type Result struct {
	// Mask is the initial over-segmentation the proposals were grown from.
	Mask *segment.Mask `json:"mask"`

	// Proposals holds every region that survived merging, primitive and
	// merged alike, ordered by creation.
	Proposals []regions.Proposal `json:"proposals"`

	// Excluded holds the initial regions removed by the RegionPop filter,
	// reported with their tight bounding boxes.
	Excluded []regions.Proposal `json:"excluded,omitempty"`
}

// Searcher runs the proposal pipeline. It is safe to reuse for multiple
// images; each Run is independent.
type Searcher struct {
	opts   Options
	logger *logrus.Logger
}

// New creates a Searcher with the given options. A nil logger falls back to
// a default logrus logger.
func New(opts Options, logger *logrus.Logger) *Searcher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Searcher{opts: opts, logger: logger}
}

// Run generates object proposals for img.
//
// The image must have exactly three color channels. An image that yields no
// segments at all (for example, an empty image) produces an empty Result and
// no error.
func (s *Searcher) Run(img image.Image) (*Result, error) {
	if err := s.opts.validate(); err != nil {
		return nil, err
	}
	if n := imaging.ChannelCount(img); n != 3 {
		return nil, fmt.Errorf("%w, got %d", ErrNotThreeChannel, n)
	}

	bounds := img.Bounds()
	s.logger.WithFields(logrus.Fields{
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
		"scale":  s.opts.Scale,
		"sigma":  s.opts.Sigma,
	}).Debug("starting selective search")

	start := time.Now()
	rgb := imaging.RGBPlanes(img)
	mask, err := segment.Segment(rgb, segment.Settings{
		Scale:   s.opts.Scale,
		Sigma:   s.opts.Sigma,
		MinSize: s.opts.MinSize,
	})
	if err != nil {
		return nil, fmt.Errorf("segmentation failed: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"segments":    mask.Count,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("segmentation complete")

	if mask.Count == 0 {
		return &Result{Mask: mask}, nil
	}

	start = time.Now()
	hsv := imaging.HSVPlanes(img)
	var tex *imaging.Planes
	switch s.opts.TextureMode {
	case texture.ModeSobel:
		tex = texture.Sobel(img)
	default:
		tex = texture.LBP(rgb)
	}

	table, err := regions.FromMask(mask, hsv, tex)
	if err != nil {
		return nil, fmt.Errorf("building region table: %w", err)
	}
	table.ExpandAll(s.opts.Border)
	s.logger.WithFields(logrus.Fields{
		"regions":     len(table.Regions),
		"texture":     string(s.opts.TextureMode),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("region table built")

	start = time.Now()
	stats := regions.Merge(table, regions.MergeConfig{
		MaxRegionSize: s.opts.MaxRegionSize,
		RegionPop:     s.opts.RegionPop,
	})

	result := &Result{
		Mask:      mask,
		Proposals: table.Proposals(),
		Excluded:  table.ExcludedProposals(),
	}
	s.logger.WithFields(logrus.Fields{
		"initial":     stats.Initial,
		"popped":      stats.Popped,
		"edges":       stats.Edges,
		"merges":      stats.Merges,
		"frozen":      stats.Frozen,
		"proposals":   len(result.Proposals),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("merge complete")

	return result, nil
}
