package regions

import (
	"container/heap"
	"sort"
)

// MergeConfig controls the agglomeration loop.
type MergeConfig struct {
	// MaxRegionSize caps bounding-box area. A merged region whose box
	// exceeds the cap is frozen: it remains a proposal but never grows
	// further. With RegionPop set, primitive regions over the cap are
	// dropped before merging starts.
	MaxRegionSize int

	// RegionPop enables the pre-merge drop of oversized primitive regions.
	RegionPop bool
}

// MergeStats summarizes one agglomeration run.
type MergeStats struct {
	Initial int // primitive regions entering the loop
	Popped  int // regions dropped by the region-pop filter
	Edges   int // candidate pairs ever scored
	Merges  int // merges performed
	Frozen  int // merged regions frozen by the size cap
}

// Merge runs the greedy agglomeration over the table in place.
//
// Each iteration retires the highest-scored live pair: both members are
// consumed, their merged region is appended under the next id, every edge
// touching either member is dropped, and fresh scored edges connect the
// merged region to the union of its parents' surviving neighbors. The loop
// ends when no live pairs remain; at that point every non-consumed region is
// a proposal.
//
// # Edge Bookkeeping
//
// Candidate pairs live in a max-heap with lazy invalidation. Ids are never
// reused and a merged region's edges are created exactly once, so an
// unordered pair can enter the heap at most once and its score never goes
// stale; an adjacency index records which pairs are still live, and popped
// entries that are no longer live are skipped. Selection is O(log E)
// amortized rather than a linear rescan per merge.
//
// Ties on score resolve toward the smallest (A, B) id pair, making the merge
// sequence a pure function of the input table.
func Merge(t *Table, cfg MergeConfig) MergeStats {
	stats := MergeStats{Initial: len(t.Regions)}
	imsize := float64(t.ImageSize())

	if cfg.RegionPop {
		for _, r := range t.Regions {
			if r.BBoxArea > cfg.MaxRegionSize {
				r.excluded = true
				stats.Popped++
			}
		}
	}

	adj := make(map[int]map[int]bool, len(t.Regions))
	h := &edgeHeap{}

	push := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		heap.Push(h, Edge{A: a, B: b, Score: Similarity(t.Regions[a], t.Regions[b], imsize)})
		if adj[a] == nil {
			adj[a] = make(map[int]bool)
		}
		if adj[b] == nil {
			adj[b] = make(map[int]bool)
		}
		adj[a][b] = true
		adj[b][a] = true
		stats.Edges++
	}

	unlink := func(id int) {
		for n := range adj[id] {
			delete(adj[n], id)
		}
		delete(adj, id)
	}

	for _, p := range t.Neighbors() {
		if t.Regions[p.A].excluded || t.Regions[p.B].excluded {
			continue
		}
		push(p.A, p.B)
	}

	for h.Len() > 0 {
		e := heap.Pop(h).(Edge)
		if !adj[e.A][e.B] {
			continue
		}

		a, b := t.Regions[e.A], t.Regions[e.B]
		merged := mergeRegions(a, b, len(t.Regions))
		a.consumed = true
		b.consumed = true
		t.Regions = append(t.Regions, merged)
		stats.Merges++

		// Surviving neighbors of either parent, deduplicated, captured
		// before the parents' edges are dropped.
		neighbors := make([]int, 0, len(adj[e.A])+len(adj[e.B]))
		for n := range adj[e.A] {
			if n != e.B {
				neighbors = append(neighbors, n)
			}
		}
		for n := range adj[e.B] {
			if n != e.A && !adj[e.A][n] {
				neighbors = append(neighbors, n)
			}
		}

		unlink(e.A)
		unlink(e.B)

		// An oversized merge result freezes: still a proposal, no
		// new edges.
		if merged.BBoxArea > cfg.MaxRegionSize {
			stats.Frozen++
			continue
		}

		sort.Ints(neighbors)
		for _, n := range neighbors {
			push(n, merged.ID)
		}
	}

	return stats
}
