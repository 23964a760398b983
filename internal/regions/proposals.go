package regions

// Proposal is one candidate object region in output form.
type Proposal struct {
	// X, Y, Width, Height describe the proposal rectangle in pixel
	// coordinates, derived from the region's bounding box.
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// Size is the region's pixel count.
	Size int `json:"size"`

	// BBoxArea is the rectangle area.
	BBoxArea int `json:"bbox_area"`

	// Labels lists the primitive segment labels the region covers.
	Labels []int `json:"labels"`
}

func toProposal(r *Region, box Rect) Proposal {
	return Proposal{
		X:        box.MinX,
		Y:        box.MinY,
		Width:    box.Width(),
		Height:   box.Height(),
		Size:     r.Size,
		BBoxArea: box.Area(),
		Labels:   r.Labels,
	}
}

// Proposals lists every region that survived merging: all regions never
// consumed by a merge and not dropped by the region-pop filter, primitive
// and merged alike, in ascending id order. Rectangles come from the
// expanded bounding boxes.
func (t *Table) Proposals() []Proposal {
	var out []Proposal
	for _, r := range t.Regions {
		if r.consumed || r.excluded {
			continue
		}
		out = append(out, toProposal(r, r.BBox))
	}
	return out
}

// ExcludedProposals lists the regions dropped by the region-pop filter, in
// ascending id order. Their rectangles come from the original tight
// bounding boxes, before border expansion.
func (t *Table) ExcludedProposals() []Proposal {
	var out []Proposal
	for _, r := range t.Regions {
		if !r.excluded {
			continue
		}
		out = append(out, toProposal(r, r.OrigBBox))
	}
	return out
}
