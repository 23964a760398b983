package segment

import (
	"fmt"
	"math"
	"sort"

	"selective-search/internal/imaging"
)

// Settings controls the segmentation.
//
// The defaults used by the proposal pipeline are Scale=1.0, Sigma=0.8,
// MinSize=50, which on a unit-range color image yield a fine
// over-segmentation suitable as merge-hierarchy leaves.
type Settings struct {
	// Scale is the merge threshold constant k. The adaptive threshold for a
	// component C is k/|C|, so larger values tolerate more internal
	// variation and produce larger segments.
	Scale float64

	// Sigma is the standard deviation of the Gaussian pre-smoothing applied
	// to each channel. Zero disables smoothing.
	Sigma float64

	// MinSize is the minimum segment size in pixels, enforced by a final
	// merge pass.
	MinSize int
}

func (s Settings) validate() error {
	if s.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", s.Scale)
	}
	if s.Sigma < 0 {
		return fmt.Errorf("sigma must be non-negative, got %v", s.Sigma)
	}
	if s.MinSize < 0 {
		return fmt.Errorf("min size must be non-negative, got %d", s.MinSize)
	}
	return nil
}

// Mask is a dense segmentation result.
//
// Every pixel carries exactly one label in [0, Count). Labels are assigned
// in raster order of first occurrence, so the top-left pixel always carries
// label 0 and label values are stable across runs on the same input.
type Mask struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Count  int   `json:"count"`  // Number of distinct labels
	Labels []int `json:"labels"` // Row-major, Labels[y*Width+x]
}

// Label returns the segment label at pixel (x, y).
func (m *Mask) Label(x, y int) int {
	return m.Labels[y*m.Width+x]
}

// edge connects two pixel indices with a color-distance weight.
type edge struct {
	a, b int
	w    float64
}

// Segment partitions the image held in p into color-uniform regions.
//
// Parameters:
//   - p: Color planes with values in [0, 255]; channels are rescaled to unit
//     range internally so Settings.Scale keeps its conventional meaning.
//   - s: Segmentation settings. See Settings for the semantics of each field.
//
// Returns:
//   - *Mask: Dense per-pixel labels, consecutive from 0.
//   - error: Non-nil only for invalid settings.
//
// An empty image (zero width or height) yields an empty mask with Count 0,
// not an error.
func Segment(p *imaging.Planes, s Settings) (*Mask, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	width, height := p.Width, p.Height
	if width == 0 || height == 0 {
		return &Mask{Width: width, Height: height, Count: 0, Labels: []int{}}, nil
	}

	// Smooth each channel on the unit range.
	var smooth [3][]float64
	for c := 0; c < 3; c++ {
		unit := make([]float64, len(p.Ch[c]))
		for i, v := range p.Ch[c] {
			unit[i] = v / 255.0
		}
		smooth[c] = gaussianSmooth(unit, width, height, s.Sigma)
	}

	edges := buildEdges(smooth, width, height)
	sort.Slice(edges, func(i, j int) bool { return edges[i].w < edges[j].w })

	ds := newDisjointSet(width * height)

	// Adaptive threshold per component root: max internal edge + scale/|C|.
	// A singleton has no internal edges, so its threshold starts at scale.
	threshold := make([]float64, width*height)
	for i := range threshold {
		threshold[i] = s.Scale
	}

	for _, e := range edges {
		ra, rb := ds.find(e.a), ds.find(e.b)
		if ra == rb {
			continue
		}
		if e.w <= threshold[ra] && e.w <= threshold[rb] {
			r := ds.union(ra, rb)
			threshold[r] = e.w + s.Scale/float64(ds.size[r])
		}
	}

	// Merge away components below the size floor. Edges are still in
	// ascending weight order, so small components join their most similar
	// neighbor first.
	if s.MinSize > 0 {
		for _, e := range edges {
			ra, rb := ds.find(e.a), ds.find(e.b)
			if ra != rb && (ds.size[ra] < s.MinSize || ds.size[rb] < s.MinSize) {
				ds.union(ra, rb)
			}
		}
	}

	// Relabel roots consecutively in raster order of first occurrence.
	labels := make([]int, width*height)
	ids := make(map[int]int)
	next := 0
	for i := range labels {
		root := ds.find(i)
		id, ok := ids[root]
		if !ok {
			id = next
			ids[root] = id
			next++
		}
		labels[i] = id
	}

	return &Mask{Width: width, Height: height, Count: next, Labels: labels}, nil
}

// buildEdges connects each pixel to its right, lower, and both lower-diagonal
// neighbors, covering the full 8-neighborhood without duplicates. Weights are
// Euclidean distances across the three smoothed channels.
func buildEdges(smooth [3][]float64, width, height int) []edge {
	edges := make([]edge, 0, 4*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if x+1 < width {
				edges = append(edges, edge{i, i + 1, colorDist(smooth, i, i+1)})
			}
			if y+1 < height {
				edges = append(edges, edge{i, i + width, colorDist(smooth, i, i+width)})
			}
			if x+1 < width && y+1 < height {
				edges = append(edges, edge{i, i + width + 1, colorDist(smooth, i, i+width+1)})
			}
			if x > 0 && y+1 < height {
				edges = append(edges, edge{i, i + width - 1, colorDist(smooth, i, i+width-1)})
			}
		}
	}
	return edges
}

func colorDist(smooth [3][]float64, a, b int) float64 {
	var sum float64
	for c := 0; c < 3; c++ {
		d := smooth[c][a] - smooth[c][b]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// gaussianSmooth applies a separable Gaussian blur to a single plane.
// Border samples clamp to the nearest edge pixel. Sigma 0 returns a copy.
func gaussianSmooth(plane []float64, width, height int, sigma float64) []float64 {
	if sigma == 0 {
		out := make([]float64, len(plane))
		copy(out, plane)
		return out
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	// Horizontal pass
	tmp := make([]float64, len(plane))
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var sum float64
			for k, kv := range kernel {
				px := clamp(x+k-radius, 0, width-1)
				sum += plane[row+px] * kv
			}
			tmp[row+x] = sum
		}
	}

	// Vertical pass
	out := make([]float64, len(plane))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for k, kv := range kernel {
				py := clamp(y+k-radius, 0, height-1)
				sum += tmp[py*width+x] * kv
			}
			out[y*width+x] = sum
		}
	}
	return out
}

// gaussianKernel builds a normalized 1-D kernel truncated at four standard
// deviations, matching the common image-processing default.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// disjointSet is a union-find structure with path compression and union by
// size, tracking component sizes for the threshold function.
type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
		ds.size[i] = 1
	}
	return ds
}

func (ds *disjointSet) find(i int) int {
	for ds.parent[i] != i {
		ds.parent[i] = ds.parent[ds.parent[i]]
		i = ds.parent[i]
	}
	return i
}

// union joins the components rooted at ra and rb and returns the new root.
func (ds *disjointSet) union(ra, rb int) int {
	if ds.size[ra] < ds.size[rb] {
		ra, rb = rb, ra
	}
	ds.parent[rb] = ra
	ds.size[ra] += ds.size[rb]
	return ra
}
