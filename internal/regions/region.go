package regions

import (
	"fmt"
	"sort"

	"selective-search/internal/imaging"
	"selective-search/internal/segment"
)

// Region is one node of the merge hierarchy.
//
// Primitive regions come from the segmentation mask; merged regions are
// created by Merge with fresh ids. A region is immutable once created, apart
// from the bookkeeping flags: merging two regions consumes them and writes a
// new region instead of editing either parent.
type Region struct {
	// ID is the region's index in the table. Primitive regions take
	// 0..n-1 in raster order of first occurrence; merged regions continue
	// the sequence, so ids never repeat within a run.
	ID int

	// BBox is the current bounding box (border-expanded once ExpandAll has
	// run). All geometry during merging uses this box.
	BBox Rect

	// OrigBBox is the tight pre-expansion bounding box, kept for
	// reporting. For merged regions it is the union of the parents'.
	OrigBBox Rect

	// Size is the exact pixel count. Merged size is the sum of the
	// parents' sizes, so pixel accounting is conserved across merges.
	Size int

	// BBoxArea is BBox.Area(), refreshed whenever BBox changes.
	BBoxArea int

	// ColorHist is the L1-normalized color histogram: 25 bins per channel
	// over [0, 255], concatenated in channel order (75 values).
	ColorHist []float64

	// TextureHist is the L1-normalized texture histogram: 10 bins per
	// channel over [0, 1], concatenated in channel order (30 values).
	TextureHist []float64

	// Labels lists the primitive segment labels covered by this region,
	// kept sorted. Merging unions the parents' labels.
	Labels []int

	// consumed marks regions retired by a merge; they stay in the table as
	// hierarchy history but are not proposals.
	consumed bool

	// excluded marks regions dropped up front by the region-pop filter.
	excluded bool
}

// Consumed reports whether the region was retired by a merge.
func (r *Region) Consumed() bool { return r.consumed }

// Excluded reports whether the region was dropped by the region-pop filter.
func (r *Region) Excluded() bool { return r.excluded }

// Table is the region arena for one run.
//
// The slice index of a region always equals its ID. Regions are appended and
// flagged, never removed, so the table doubles as the full merge history.
type Table struct {
	Width   int
	Height  int
	Regions []*Region
}

// ImageSize returns the pixel count of the source image, the denominator of
// the size and fill similarity terms.
func (t *Table) ImageSize() int {
	return t.Width * t.Height
}

// FromMask builds the primitive region table from a segmentation mask.
//
// Parameters:
//   - mask: Dense segmentation labels.
//   - colorPlanes: Per-channel color values in [0, 255] (typically HSV).
//   - texPlanes: Per-channel texture values in [0, 1].
//
// Returns:
//   - *Table: One region per mask label, with ids assigned in raster order
//     of first label occurrence. Histograms are built from the plane values
//     of each region's own pixels and normalized by its pixel count.
//   - error: Non-nil when the plane dimensions do not match the mask.
//
// An empty mask yields an empty table.
func FromMask(mask *segment.Mask, colorPlanes, texPlanes *imaging.Planes) (*Table, error) {
	if colorPlanes.Width != mask.Width || colorPlanes.Height != mask.Height {
		return nil, fmt.Errorf("color planes are %dx%d, mask is %dx%d",
			colorPlanes.Width, colorPlanes.Height, mask.Width, mask.Height)
	}
	if texPlanes.Width != mask.Width || texPlanes.Height != mask.Height {
		return nil, fmt.Errorf("texture planes are %dx%d, mask is %dx%d",
			texPlanes.Width, texPlanes.Height, mask.Width, mask.Height)
	}

	t := &Table{
		Width:   mask.Width,
		Height:  mask.Height,
		Regions: make([]*Region, 0, mask.Count),
	}

	// First raster pass: assign ids by first occurrence, accumulate
	// bounding boxes, collect each region's pixel indices.
	ids := make(map[int]int, mask.Count)
	pixels := make([][]int, 0, mask.Count)

	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			label := mask.Labels[y*mask.Width+x]
			id, ok := ids[label]
			if !ok {
				id = len(t.Regions)
				ids[label] = id
				t.Regions = append(t.Regions, &Region{
					ID:     id,
					BBox:   Rect{MinX: x, MinY: y, MaxX: x, MaxY: y},
					Labels: []int{label},
				})
				pixels = append(pixels, nil)
			}

			r := t.Regions[id]
			if x < r.BBox.MinX {
				r.BBox.MinX = x
			}
			if x > r.BBox.MaxX {
				r.BBox.MaxX = x
			}
			if y < r.BBox.MinY {
				r.BBox.MinY = y
			}
			if y > r.BBox.MaxY {
				r.BBox.MaxY = y
			}
			r.Size++
			pixels[id] = append(pixels[id], y*mask.Width+x)
		}
	}

	for id, r := range t.Regions {
		r.OrigBBox = r.BBox
		r.BBoxArea = r.BBox.Area()
		r.ColorHist = channelHistogram(colorPlanes, pixels[id], colorBins, colorRange)
		r.TextureHist = channelHistogram(texPlanes, pixels[id], textureBins, textureRange)
	}

	return t, nil
}

// ExpandAll pads every region's bounding box by border pixels on each side,
// clipped to the image, keeping the tight box in OrigBBox and refreshing
// BBoxArea from the expanded box.
func (t *Table) ExpandAll(border int) {
	for _, r := range t.Regions {
		r.OrigBBox = r.BBox
		r.BBox = r.BBox.Expand(border, t.Width, t.Height)
		r.BBoxArea = r.BBox.Area()
	}
}

// mergeRegions combines two regions into a new one under the given id.
// Histograms are size-weighted averages of the parents, not renormalized;
// labels are unioned and kept sorted.
func mergeRegions(a, b *Region, id int) *Region {
	bbox := a.BBox.Union(b.BBox)

	labels := make([]int, 0, len(a.Labels)+len(b.Labels))
	labels = append(labels, a.Labels...)
	labels = append(labels, b.Labels...)
	sort.Ints(labels)

	return &Region{
		ID:          id,
		BBox:        bbox,
		OrigBBox:    a.OrigBBox.Union(b.OrigBBox),
		Size:        a.Size + b.Size,
		BBoxArea:    bbox.Area(),
		ColorHist:   weightedAverage(a.ColorHist, b.ColorHist, float64(a.Size), float64(b.Size)),
		TextureHist: weightedAverage(a.TextureHist, b.TextureHist, float64(a.Size), float64(b.Size)),
		Labels:      labels,
	}
}
