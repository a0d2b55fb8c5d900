// Package geometry provides the shape math behind ER diagram editing:
// containment tests, boundary projection, and attribute anchor placement.
//
// # Overview
//
// Every function in this package works on plain numeric descriptors
// ([Point], [Vec], [Rect]) and never on diagram identifiers. The same
// functions are used by the interaction layer (to decide what a pointer
// refers to), by renderers (to draw connectors that stop at a shape's edge),
// and by structural transforms (to compute centers and midpoints).
//
// # Shapes
//
// Entities are rectangles and relationships are the rhombus inscribed in
// their bounding box. [RectContains] and [DiamondContains] answer hit tests;
// both are inclusive, so a point exactly on an edge is contained.
//
// [ClosestPointOnRect] and [ClosestPointOnDiamond] project the ray from a
// shape's center toward a target onto the shape's boundary. Connector lines
// terminate there instead of at the center.
//
// # Attribute Anchors
//
// Attributes orbit their owner. Unless the user dragged one, an attribute
// sits in a default slot computed by [DefaultAttributeSlot]: a vertical
// column 60 units to the right of the owner, spaced 60 units apart and
// centered on the owner's vertical midpoint.
//
// A dragged attribute stores an offset from the owner's center.
// [ResolveAttributePosition] picks between the two, and [OrbitReposition]
// turns a drag delta into a new offset that keeps the attribute's distance
// from the owner fixed:
//
//	owner := geometry.Rect{X: 0, Y: 0, Width: 140, Height: 70}
//	slot := geometry.DefaultAttributeSlot(owner, 0, 1) // (200, 35)
//	off := geometry.OrbitReposition(owner, geometry.Vec{}, false, 0, 1, geometry.Vec{Y: 50})
//	// off has the same length as slot - owner.Center()
//
// Components of a composite attribute hang off their parent marker at
// [ComponentSlot] and are never dragged on their own.
package geometry
