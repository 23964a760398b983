package regions

// Rect is an axis-aligned bounding box in pixel coordinates.
//
// Min and Max are corner coordinates with origin at the top-left; X grows
// rightward and Y grows downward. During extraction Max holds the largest
// pixel coordinate seen, and expansion may push Max up to the image
// dimension itself.
type Rect struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Area returns the box area (MaxX-MinX)*(MaxY-MinY).
func (r Rect) Area() int {
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}

// Width returns MaxX-MinX.
func (r Rect) Width() int {
	return r.MaxX - r.MinX
}

// Height returns MaxY-MinY.
func (r Rect) Height() int {
	return r.MaxY - r.MinY
}

// Union returns the smallest box covering both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: min(r.MinX, other.MinX),
		MinY: min(r.MinY, other.MinY),
		MaxX: max(r.MaxX, other.MaxX),
		MaxY: max(r.MaxY, other.MaxY),
	}
}

// Expand grows the box by border on every side, clipping to
// [0, width] x [0, height].
func (r Rect) Expand(border, width, height int) Rect {
	return Rect{
		MinX: max(r.MinX-border, 0),
		MinY: max(r.MinY-border, 0),
		MaxX: min(r.MaxX+border, width),
		MaxY: min(r.MaxY+border, height),
	}
}

// containsCorner reports whether the point (x, y) lies strictly inside r.
func (r Rect) containsCorner(x, y int) bool {
	return r.MinX < x && x < r.MaxX && r.MinY < y && y < r.MaxY
}
