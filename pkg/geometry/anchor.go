package geometry

// DefaultAttributeSlot returns the computed position of the index-th of
// total attributes owned by the shape in owner. Slots form a vertical
// column ArrowLength units right of the owner, AttributeSpacing apart and
// centered on the owner's vertical midpoint.
func DefaultAttributeSlot(owner Rect, index, total int) Point {
	c := owner.Center()
	startY := c.Y - float64(total-1)*AttributeSpacing/2
	return Point{
		X: owner.Right() + ArrowLength,
		Y: startY + float64(index)*AttributeSpacing,
	}
}

// ResolveAttributePosition returns where an attribute is drawn: the owner's
// center plus offset when hasOffset is set, otherwise its default slot.
func ResolveAttributePosition(owner Rect, offset Vec, hasOffset bool, index, total int) Point {
	if hasOffset {
		return owner.Center().Add(offset)
	}
	return DefaultAttributeSlot(owner, index, total)
}

// OrbitReposition applies a drag delta to an attribute and returns its new
// offset from the owner's center. Only the angle changes: the result is
// rescaled onto the circle whose radius is the attribute's distance from
// the center before the drag. When that distance is zero the radius falls
// back to half the owner's width plus ArrowLength.
func OrbitReposition(owner Rect, offset Vec, hasOffset bool, index, total int, delta Vec) Vec {
	c := owner.Center()
	current := ResolveAttributePosition(owner, offset, hasOffset, index, total)

	radius := current.Sub(c).Len()
	if radius == 0 {
		radius = owner.Width/2 + ArrowLength
	}

	d := current.Add(delta).Sub(c)
	n := d.Len()
	if n == 0 {
		return Vec{X: radius}
	}
	return d.Scale(radius / n)
}

// ComponentSlot returns the position of the index-th of total components
// of a composite attribute drawn at parent.
func ComponentSlot(parent Point, index, total int) Point {
	startY := parent.Y - float64(total-1)*ComponentSpacing/2
	return Point{
		X: parent.X + ComponentOffset,
		Y: startY + float64(index)*ComponentSpacing,
	}
}

// Shape selects the boundary used when projecting onto an owner.
type Shape int

const (
	// ShapeRect is an entity box.
	ShapeRect Shape = iota
	// ShapeDiamond is a relationship rhombus.
	ShapeDiamond
)

// BoundaryPoint projects target onto the boundary of owner drawn as shape.
func BoundaryPoint(owner Rect, shape Shape, target Point) Point {
	if shape == ShapeDiamond {
		return ClosestPointOnDiamond(owner, target)
	}
	return ClosestPointOnRect(owner, target)
}

// AttributeLink returns the stem drawn from an owner to an attribute marker.
// The stem starts on the owner's boundary, at the projection of the point
// ArrowLength before the marker along the center-to-marker direction, and
// ends at the marker.
func AttributeLink(owner Rect, shape Shape, marker Point) (from, to Point) {
	c := owner.Center()
	d := marker.Sub(c)
	dir := Vec{X: 1}
	if n := d.Len(); n > 0 {
		dir = d.Scale(1 / n)
	}
	start := marker.Add(dir.Scale(-ArrowLength))
	return BoundaryPoint(owner, shape, start), marker
}
