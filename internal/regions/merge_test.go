package regions

import (
	"testing"

	"selective-search/internal/imaging"
)

const noCap = 1 << 30

// pairRegions builds the standard two overlapping test regions in a 10x10
// image: distinct colors, identical texture.
func pairRegions() (*Table, *Region, *Region) {
	r0 := &Region{
		ID:          0,
		BBox:        Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4},
		OrigBBox:    Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4},
		Size:        10,
		BBoxArea:    16,
		ColorHist:   []float64{1, 0},
		TextureHist: []float64{0.5, 0.5},
		Labels:      []int{0},
	}
	r1 := &Region{
		ID:          1,
		BBox:        Rect{MinX: 3, MinY: 3, MaxX: 8, MaxY: 8},
		OrigBBox:    Rect{MinX: 3, MinY: 3, MaxX: 8, MaxY: 8},
		Size:        12,
		BBoxArea:    25,
		ColorHist:   []float64{0, 1},
		TextureHist: []float64{0.5, 0.5},
		Labels:      []int{1},
	}
	return &Table{Width: 10, Height: 10, Regions: []*Region{r0, r1}}, r0, r1
}

func TestMerge_TwoRegions(t *testing.T) {
	table, r0, r1 := pairRegions()

	stats := Merge(table, MergeConfig{MaxRegionSize: noCap})

	if stats.Initial != 2 || stats.Edges != 1 || stats.Merges != 1 || stats.Frozen != 0 || stats.Popped != 0 {
		t.Errorf("stats: got %+v", stats)
	}
	if len(table.Regions) != 3 {
		t.Fatalf("table size: got %d, want 3", len(table.Regions))
	}

	if !r0.Consumed() || !r1.Consumed() {
		t.Error("parents should be consumed")
	}

	m := table.Regions[2]
	if m.Consumed() {
		t.Error("merged region should be live")
	}
	if m.ID != 2 {
		t.Errorf("merged id: got %d, want 2", m.ID)
	}
	if m.Size != 22 {
		t.Errorf("merged size: got %d, want 22", m.Size)
	}
	if want := (Rect{MinX: 0, MinY: 0, MaxX: 8, MaxY: 8}); m.BBox != want {
		t.Errorf("merged bbox: got %+v, want %+v", m.BBox, want)
	}
	if m.BBoxArea != 64 {
		t.Errorf("merged bbox area: got %d, want 64", m.BBoxArea)
	}
	if !near(m.ColorHist[0], 10.0/22.0) || !near(m.ColorHist[1], 12.0/22.0) {
		t.Errorf("merged color hist: got %v", m.ColorHist)
	}
	if len(m.Labels) != 2 || m.Labels[0] != 0 || m.Labels[1] != 1 {
		t.Errorf("merged labels: got %v, want [0 1]", m.Labels)
	}

	proposals := table.Proposals()
	if len(proposals) != 1 {
		t.Fatalf("proposals: got %d, want 1", len(proposals))
	}
	p := proposals[0]
	if p.X != 0 || p.Y != 0 || p.Width != 8 || p.Height != 8 || p.Size != 22 || p.BBoxArea != 64 {
		t.Errorf("proposal: got %+v", p)
	}
}

// chainRegions builds three regions where 0-1 and 1-2 neighbor but 0-2 do
// not, with identical appearance so scores tie and ids break the tie.
func chainRegions() *Table {
	mk := func(id, minX, minY int) *Region {
		box := Rect{MinX: minX, MinY: minY, MaxX: minX + 5, MaxY: minY + 5}
		return &Region{
			ID:          id,
			BBox:        box,
			OrigBBox:    box,
			Size:        8,
			BBoxArea:    box.Area(),
			ColorHist:   []float64{1, 0},
			TextureHist: []float64{1, 0},
			Labels:      []int{id},
		}
	}
	return &Table{
		Width:   14,
		Height:  14,
		Regions: []*Region{mk(0, 0, 0), mk(1, 3, 3), mk(2, 7, 7)},
	}
}

func TestMerge_ChainCollapsesToOne(t *testing.T) {
	table := chainRegions()

	stats := Merge(table, MergeConfig{MaxRegionSize: noCap})

	if stats.Merges != 2 {
		t.Errorf("merges: got %d, want 2", stats.Merges)
	}
	proposals := table.Proposals()
	if len(proposals) != 1 {
		t.Fatalf("proposals: got %d, want 1", len(proposals))
	}
	p := proposals[0]
	if p.Size != 24 {
		t.Errorf("final size: got %d, want 24", p.Size)
	}
	if len(p.Labels) != 3 {
		t.Errorf("final labels: got %v, want three labels", p.Labels)
	}

	// Ids stay aligned with table positions throughout.
	for i, r := range table.Regions {
		if r.ID != i {
			t.Errorf("region at %d has id %d", i, r.ID)
		}
	}
}

func TestMerge_TieBreaksTowardLowestIds(t *testing.T) {
	// Two identical, far-apart pairs: (0,1) and (2,3) score the same, so
	// the id order decides which merges first.
	mk := func(id, minX int) *Region {
		box := Rect{MinX: minX, MinY: 0, MaxX: minX + 5, MaxY: 5}
		if id%2 == 1 {
			box = Rect{MinX: minX + 3, MinY: 3, MaxX: minX + 8, MaxY: 8}
		}
		return &Region{
			ID:          id,
			BBox:        box,
			OrigBBox:    box,
			Size:        8,
			BBoxArea:    box.Area(),
			ColorHist:   []float64{1, 0},
			TextureHist: []float64{1, 0},
			Labels:      []int{id},
		}
	}
	table := &Table{
		Width:   30,
		Height:  10,
		Regions: []*Region{mk(0, 0), mk(1, 0), mk(2, 20), mk(3, 20)},
	}

	stats := Merge(table, MergeConfig{MaxRegionSize: noCap})

	if stats.Merges != 2 {
		t.Fatalf("merges: got %d, want 2", stats.Merges)
	}
	first := table.Regions[4]
	if len(first.Labels) != 2 || first.Labels[0] != 0 || first.Labels[1] != 1 {
		t.Errorf("first merge: got labels %v, want [0 1]", first.Labels)
	}
	second := table.Regions[5]
	if len(second.Labels) != 2 || second.Labels[0] != 2 || second.Labels[1] != 3 {
		t.Errorf("second merge: got labels %v, want [2 3]", second.Labels)
	}
}

func TestMerge_FreezeStopsGrowth(t *testing.T) {
	table := chainRegions()

	// Any merge produces a 64-area box; the cap freezes it immediately.
	stats := Merge(table, MergeConfig{MaxRegionSize: 50})

	if stats.Merges != 1 || stats.Frozen != 1 {
		t.Errorf("stats: got %+v, want one frozen merge", stats)
	}

	proposals := table.Proposals()
	if len(proposals) != 2 {
		t.Fatalf("proposals: got %d, want 2 (frozen merge and the stranded region)", len(proposals))
	}

	// Ties broke toward (0,1), so the frozen region holds labels 0 and 1
	// and region 2 is left unmerged.
	frozen := table.Regions[3]
	if len(frozen.Labels) != 2 || frozen.Labels[0] != 0 || frozen.Labels[1] != 1 {
		t.Errorf("frozen labels: got %v, want [0 1]", frozen.Labels)
	}
	if frozen.BBoxArea <= 50 {
		t.Errorf("frozen area: got %d, want > 50", frozen.BBoxArea)
	}
	if table.Regions[2].Consumed() {
		t.Error("stranded region should stay live")
	}
}

// popTable builds one oversized region neighboring a small mergeable pair.
func popTable() *Table {
	big := &Region{
		ID:          0,
		BBox:        Rect{MinX: 0, MinY: 0, MaxX: 9, MaxY: 9},
		OrigBBox:    Rect{MinX: 1, MinY: 1, MaxX: 8, MaxY: 8},
		Size:        10,
		BBoxArea:    81,
		ColorHist:   []float64{1, 0},
		TextureHist: []float64{1, 0},
		Labels:      []int{0},
	}
	mk := func(id, minX, minY int) *Region {
		box := Rect{MinX: minX, MinY: minY, MaxX: minX + 4, MaxY: minY + 4}
		return &Region{
			ID:          id,
			BBox:        box,
			OrigBBox:    box,
			Size:        8,
			BBoxArea:    box.Area(),
			ColorHist:   []float64{1, 0},
			TextureHist: []float64{1, 0},
			Labels:      []int{id},
		}
	}
	return &Table{
		Width:   20,
		Height:  10,
		Regions: []*Region{big, mk(1, 8, 1), mk(2, 11, 4)},
	}
}

func TestMerge_RegionPop(t *testing.T) {
	table := popTable()

	stats := Merge(table, MergeConfig{MaxRegionSize: 50, RegionPop: true})

	if stats.Popped != 1 {
		t.Fatalf("popped: got %d, want 1", stats.Popped)
	}
	if !table.Regions[0].Excluded() {
		t.Error("oversized region should be excluded")
	}
	if table.Regions[0].Consumed() {
		t.Error("excluded region must never be consumed")
	}
	if stats.Merges != 1 {
		t.Errorf("merges: got %d, want 1 (excluded region takes no edges)", stats.Merges)
	}

	proposals := table.Proposals()
	if len(proposals) != 1 {
		t.Fatalf("proposals: got %d, want 1", len(proposals))
	}
	if proposals[0].Size != 16 {
		t.Errorf("surviving size: got %d, want 16", proposals[0].Size)
	}

	excluded := table.ExcludedProposals()
	if len(excluded) != 1 {
		t.Fatalf("excluded: got %d, want 1", len(excluded))
	}
	// Excluded regions report their original, unexpanded box.
	e := excluded[0]
	if e.X != 1 || e.Y != 1 || e.Width != 7 || e.Height != 7 {
		t.Errorf("excluded rect: got %+v, want the tight 1,1,7,7 box", e)
	}
	if e.Size != 10 {
		t.Errorf("excluded size: got %d, want 10", e.Size)
	}
}

func TestMerge_RegionPopDisabled(t *testing.T) {
	table := popTable()

	stats := Merge(table, MergeConfig{MaxRegionSize: 50, RegionPop: false})

	if stats.Popped != 0 {
		t.Errorf("popped: got %d, want 0", stats.Popped)
	}
	if len(table.ExcludedProposals()) != 0 {
		t.Error("no regions should be excluded without the filter")
	}
	if table.Regions[0].Excluded() {
		t.Error("oversized region should stay live without the filter")
	}
}

func TestMerge_EmptyAndSingle(t *testing.T) {
	empty := &Table{Width: 10, Height: 10}
	stats := Merge(empty, MergeConfig{MaxRegionSize: noCap})
	if stats.Merges != 0 || stats.Edges != 0 || len(empty.Proposals()) != 0 {
		t.Errorf("empty table: got %+v with %d proposals", stats, len(empty.Proposals()))
	}

	single := &Table{Width: 10, Height: 10, Regions: []*Region{
		regionWithBox(0, Rect{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}),
	}}
	single.Regions[0].Size = 25
	stats = Merge(single, MergeConfig{MaxRegionSize: noCap})
	if stats.Merges != 0 {
		t.Errorf("single region: got %d merges, want 0", stats.Merges)
	}
	if got := single.Proposals(); len(got) != 1 || got[0].Size != 25 {
		t.Errorf("single region proposals: got %+v", got)
	}
}

func TestMerge_EndToEndConservation(t *testing.T) {
	// Four 3x3 quadrants in a 6x6 image. With border 1 only the diagonal
	// pairs pass the corner test, so the run ends with two regions.
	mask := maskFromGrid(6, 6, []int{
		0, 0, 0, 1, 1, 1,
		0, 0, 0, 1, 1, 1,
		0, 0, 0, 1, 1, 1,
		2, 2, 2, 3, 3, 3,
		2, 2, 2, 3, 3, 3,
		2, 2, 2, 3, 3, 3,
	})
	color := imaging.NewPlanes(6, 6)
	tex := uniformPlanes(6, 6, 0.5)
	for i, label := range mask.Labels {
		v := 100.0
		if label == 1 || label == 2 {
			v = 200.0
		}
		for c := 0; c < 3; c++ {
			color.Ch[c][i] = v
		}
	}

	table, err := FromMask(mask, color, tex)
	if err != nil {
		t.Fatalf("FromMask failed: %v", err)
	}
	table.ExpandAll(1)

	stats := Merge(table, MergeConfig{MaxRegionSize: noCap})

	if stats.Merges != 2 {
		t.Errorf("merges: got %d, want 2", stats.Merges)
	}
	proposals := table.Proposals()
	if len(proposals) != 2 {
		t.Fatalf("proposals: got %d, want 2", len(proposals))
	}

	// Pixel accounting holds across the whole run.
	total := 0
	for _, p := range proposals {
		total += p.Size
	}
	for _, p := range table.ExcludedProposals() {
		total += p.Size
	}
	if total != table.ImageSize() {
		t.Errorf("size conservation: proposals cover %d px, image has %d", total, table.ImageSize())
	}

	// Each primitive label appears in exactly one surviving region.
	seen := map[int]int{}
	for _, p := range proposals {
		for _, l := range p.Labels {
			seen[l]++
		}
	}
	for l := 0; l < 4; l++ {
		if seen[l] != 1 {
			t.Errorf("label %d appears %d times in survivors, want exactly once", l, seen[l])
		}
	}

	// The tie between the two diagonal pairs breaks toward (0,3).
	if first := table.Regions[4]; len(first.Labels) != 2 || first.Labels[0] != 0 || first.Labels[1] != 3 {
		t.Errorf("first merge labels: got %v, want [0 3]", first.Labels)
	}
}
