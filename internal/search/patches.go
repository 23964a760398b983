package search

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"selective-search/internal/regions"
)

// PatchOptions controls proposal patch extraction.
type PatchOptions struct {
	// Side is the output square side length in pixels. Patches are warped
	// to Side x Side regardless of aspect ratio, which is what most
	// fixed-input recognizers expect. Zero keeps each crop at its native
	// size.
	Side int

	// MinSide skips proposals whose box is narrower or shorter than this
	// many pixels. Zero keeps everything with a non-empty box.
	MinSide int
}

// Patch is a cropped (and optionally warped) view of one proposal.
type Patch struct {
	Proposal regions.Proposal
	Image    *image.NRGBA
}

// ExtractPatches crops every proposal's box out of img.
//
// Boxes are intersected with the image bounds first; proposals whose box
// ends up empty or smaller than PatchOptions.MinSide are skipped.
func ExtractPatches(img image.Image, proposals []regions.Proposal, opts PatchOptions) ([]Patch, error) {
	if opts.Side < 0 {
		return nil, fmt.Errorf("patch side must be >= 0, got %d", opts.Side)
	}
	if opts.MinSide < 0 {
		return nil, fmt.Errorf("patch min side must be >= 0, got %d", opts.MinSide)
	}

	bounds := img.Bounds()
	patches := make([]Patch, 0, len(proposals))
	for _, p := range proposals {
		box := image.Rect(p.X, p.Y, p.X+p.Width, p.Y+p.Height).Intersect(bounds)
		if box.Empty() {
			continue
		}
		if box.Dx() < opts.MinSide || box.Dy() < opts.MinSide {
			continue
		}
		cropped := imaging.Crop(img, box)
		if opts.Side > 0 {
			cropped = imaging.Resize(cropped, opts.Side, opts.Side, imaging.Lanczos)
		}
		patches = append(patches, Patch{Proposal: p, Image: cropped})
	}
	return patches, nil
}

// SavePatches writes each patch as a PNG file under dir, creating the
// directory if needed. Files are named patch_0000.png, patch_0001.png and
// so on, in patch order.
func SavePatches(patches []Patch, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating patch directory: %w", err)
	}
	for i, p := range patches {
		path := filepath.Join(dir, fmt.Sprintf("patch_%04d.png", i))
		if err := imaging.Save(p.Image, path); err != nil {
			return fmt.Errorf("saving patch %d: %w", i, err)
		}
	}
	return nil
}
