package regions

// Edge is a scored candidate merge between two regions, A < B.
type Edge struct {
	A, B  int
	Score float64
}

// edgeHeap is a max-heap of candidate merges for container/heap. Ties on
// score resolve toward the smallest id pair so selection order is a total
// order, independent of insertion order.
type edgeHeap []Edge

func (h edgeHeap) Len() int { return len(h) }

func (h edgeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	if h[i].A != h[j].A {
		return h[i].A < h[j].A
	}
	return h[i].B < h[j].B
}

func (h edgeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *edgeHeap) Push(x interface{}) {
	*h = append(*h, x.(Edge))
}

func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
