package geometry

import "math"

// Layout constants shared by renderers and the interaction layer.
const (
	// ArrowLength is the horizontal gap between an owner's right edge and
	// its default attribute column, and the length of the attribute stem.
	ArrowLength = 60.0

	// AttributeSpacing is the vertical distance between default attribute slots.
	AttributeSpacing = 60.0

	// ComponentOffset is the horizontal distance from a composite attribute
	// marker to its component markers.
	ComponentOffset = 60.0

	// ComponentSpacing is the vertical distance between component markers.
	ComponentSpacing = 40.0
)

// Point is an absolute canvas position.
type Point struct {
	X, Y float64
}

// Vec is a displacement between two points.
type Vec struct {
	X, Y float64
}

// Add returns p translated by v.
func (p Point) Add(v Vec) Point { return Point{p.X + v.X, p.Y + v.Y} }

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vec { return Vec{p.X - q.X, p.Y - q.Y} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Rect is an axis-aligned box given by its top-left corner and size.
// A relationship's diamond is the rhombus inscribed in its Rect.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Union returns the smallest Rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.Right(), o.Right())
	maxY := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Inset grows r by d on every side (shrinks it when d is negative).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Bounds returns the union of rects and false when rects is empty.
func Bounds(rects ...Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	b := rects[0]
	for _, r := range rects[1:] {
		b = b.Union(r)
	}
	return b, true
}

// CenteredAt returns a Rect of the given size whose center is c.
func CenteredAt(c Point, width, height float64) Rect {
	return Rect{X: c.X - width/2, Y: c.Y - height/2, Width: width, Height: height}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 { return a.Sub(b).Len() }

// RectContains reports whether p lies within r, edges included.
func RectContains(r Rect, p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// DiamondContains reports whether p lies within the rhombus inscribed in r,
// edges included. A degenerate box contains nothing.
func DiamondContains(r Rect, p Point) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	c := r.Center()
	dx := math.Abs(p.X-c.X) / (r.Width / 2)
	dy := math.Abs(p.Y-c.Y) / (r.Height / 2)
	return dx+dy <= 1
}

// ClosestPointOnRect projects the ray from r's center toward target onto
// r's boundary. An axis with no displacement does not limit the scale.
// A target at the center yields the center.
func ClosestPointOnRect(r Rect, target Point) Point {
	c := r.Center()
	d := target.Sub(c)
	if d.IsZero() {
		return c
	}
	scaleX, scaleY := math.Inf(1), math.Inf(1)
	if d.X != 0 {
		scaleX = (r.Width / 2) / math.Abs(d.X)
	}
	if d.Y != 0 {
		scaleY = (r.Height / 2) / math.Abs(d.Y)
	}
	return c.Add(d.Scale(math.Min(scaleX, scaleY)))
}

// ClosestPointOnDiamond projects the ray from the center of the rhombus
// inscribed in r toward target onto the rhombus boundary.
// A target at the center yields the center.
func ClosestPointOnDiamond(r Rect, target Point) Point {
	c := r.Center()
	d := target.Sub(c)
	if d.IsZero() {
		return c
	}
	hw, hh := r.Width/2, r.Height/2
	k := 1 / (math.Abs(d.X)/hw + math.Abs(d.Y)/hh)
	return c.Add(d.Scale(k))
}
