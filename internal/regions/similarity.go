package regions

// histIntersection sums the element-wise minima of two histograms. For
// L1-normalized histograms the result lies in [0, 1], reaching 1 only for
// identical distributions.
func histIntersection(a, b []float64) float64 {
	var sum float64
	for i, av := range a {
		if bv := b[i]; bv < av {
			sum += bv
		} else {
			sum += av
		}
	}
	return sum
}

// simColour scores color similarity as the intersection of the color
// histograms.
func simColour(a, b *Region) float64 {
	return histIntersection(a.ColorHist, b.ColorHist)
}

// simTexture scores texture similarity as the intersection of the texture
// histograms.
func simTexture(a, b *Region) float64 {
	return histIntersection(a.TextureHist, b.TextureHist)
}

// simSize rewards merging small regions early: 1 minus the fraction of the
// image the pair covers. Can go negative when the pair outweighs the image.
func simSize(a, b *Region, imsize float64) float64 {
	return 1.0 - float64(a.Size+b.Size)/imsize
}

// simFill rewards pairs that fill their joint bounding box: 1 minus the
// fraction of the image taken by the box area not covered by either region.
func simFill(a, b *Region, imsize float64) float64 {
	bbox := a.BBox.Union(b.BBox)
	return 1.0 - float64(bbox.Area()-a.Size-b.Size)/imsize
}

// Similarity scores a candidate merge as the unweighted sum of the color,
// texture, size and fill terms. Higher is more similar; the value is not
// clamped and may be negative.
func Similarity(a, b *Region, imsize float64) float64 {
	return simColour(a, b) + simTexture(a, b) + simSize(a, b, imsize) + simFill(a, b, imsize)
}
