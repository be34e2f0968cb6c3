package engine

// Rect is an axis-aligned integer rectangle in corner form. Max is exclusive.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// XYWH builds a Rect from a position and size.
func XYWH(x, y, w, h int) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

func (r Rect) Width() int  { return r.MaxX - r.MinX }
func (r Rect) Height() int { return r.MaxY - r.MinY }

// Contains returns true if r fully contains other. Equal rects contain each other.
func (r Rect) Contains(other Rect) bool {
	return r.MinX <= other.MinX && r.MinY <= other.MinY &&
		r.MaxX >= other.MaxX && r.MaxY >= other.MaxY
}

// NoIntersection returns true if the rects share no area. Touching edges do
// not intersect.
func (r Rect) NoIntersection(other Rect) bool {
	return r.MinX >= other.MaxX || r.MaxX <= other.MinX ||
		r.MinY >= other.MaxY || r.MaxY <= other.MinY
}

// Intersects is the negation of NoIntersection.
func (r Rect) Intersects(other Rect) bool {
	return !r.NoIntersection(other)
}
