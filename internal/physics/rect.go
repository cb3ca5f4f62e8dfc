package physics

// Rect is an axis-aligned rectangle. Min is the top-left corner and Max the
// bottom-right corner (y grows downwards, as on screen).
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// NewRect creates a rectangle from its edges.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{Min: Vec2{X: left, Y: top}, Max: Vec2{X: right, Y: bottom}}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the middle point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Vec2) bool {
	return r.SpansX(p.X) && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// SpansX reports whether x lies within the horizontal extent, edges included.
func (r Rect) SpansX(x float64) bool {
	return x >= r.Min.X && x <= r.Max.X
}

// Inside reports whether r lies entirely within outer.
func (r Rect) Inside(outer Rect) bool {
	return r.Min.X >= outer.Min.X && r.Min.Y >= outer.Min.Y &&
		r.Max.X <= outer.Max.X && r.Max.Y <= outer.Max.Y
}

// ClampPoint moves p to the closest point inside the rectangle.
func (r Rect) ClampPoint(p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, r.Min.X, r.Max.X),
		Y: Clamp(p.Y, r.Min.Y, r.Max.Y),
	}
}
