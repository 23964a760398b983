package regions

import (
	"gonum.org/v1/gonum/floats"

	"selective-search/internal/imaging"
)

// Histogram geometry. Color values span [0, 255] in 25 bins per channel,
// texture values span [0, 1] in 10 bins per channel; three channels each.
const (
	colorBins    = 25
	colorRange   = 255.0
	textureBins  = 10
	textureRange = 1.0
)

// histogram bins samples into equal-width bins over [0, hi].
//
// Binning is left-inclusive with the top edge folded into the last bin, and
// samples outside [0, hi] are dropped silently, so a returned histogram may
// sum to less than len(samples).
func histogram(samples []float64, bins int, hi float64) []float64 {
	h := make([]float64, bins)
	width := hi / float64(bins)
	for _, v := range samples {
		if v < 0 || v > hi {
			continue
		}
		idx := int(v / width)
		if idx >= bins {
			idx = bins - 1
		}
		h[idx]++
	}
	return h
}

// channelHistogram builds the concatenated per-channel histogram of a
// region's pixels, normalized by the pixel count.
//
// The result has bins*3 values in channel order. A region with no pixels
// yields the zero vector rather than dividing by zero.
func channelHistogram(p *imaging.Planes, pixels []int, bins int, hi float64) []float64 {
	hist := make([]float64, 0, 3*bins)
	samples := make([]float64, len(pixels))
	for c := 0; c < 3; c++ {
		for i, idx := range pixels {
			samples[i] = p.Ch[c][idx]
		}
		hist = append(hist, histogram(samples, bins, hi)...)
	}
	if len(pixels) > 0 {
		floats.Scale(1/float64(len(pixels)), hist)
	}
	return hist
}

// weightedAverage returns (wa*a + wb*b) / (wa + wb) element-wise.
func weightedAverage(a, b []float64, wa, wb float64) []float64 {
	out := make([]float64, len(a))
	floats.AddScaled(out, wa, a)
	floats.AddScaled(out, wb, b)
	floats.Scale(1/(wa+wb), out)
	return out
}
