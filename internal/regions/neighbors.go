package regions

// Pair is an unordered region pair with A < B.
type Pair struct {
	A, B int
}

// isNeighbor reports whether b's bounding box touches a's: true when any of
// b's four corners lies strictly inside a's box. The test runs one way only,
// which misses exact edge contact, full containment and cross-shaped
// overlap; see the package documentation for why that behavior is kept.
func isNeighbor(a, b *Region) bool {
	return a.BBox.containsCorner(b.BBox.MinX, b.BBox.MinY) ||
		a.BBox.containsCorner(b.BBox.MaxX, b.BBox.MaxY) ||
		a.BBox.containsCorner(b.BBox.MinX, b.BBox.MaxY) ||
		a.BBox.containsCorner(b.BBox.MaxX, b.BBox.MinY)
}

// Neighbors enumerates the neighbor pairs of the table in ascending id
// order: pair (i, j) with i < j appears when region j neighbors region i.
// The scan is quadratic in the region count.
func (t *Table) Neighbors() []Pair {
	var pairs []Pair
	for i := 0; i < len(t.Regions)-1; i++ {
		for j := i + 1; j < len(t.Regions); j++ {
			if isNeighbor(t.Regions[i], t.Regions[j]) {
				pairs = append(pairs, Pair{A: i, B: j})
			}
		}
	}
	return pairs
}
