// Package scene resolves a diagram into the absolute geometry a renderer or
// an interaction surface needs: shape boxes, attribute marker positions,
// stem endpoints and connector endpoints.
//
// Renderers draw a [Scene] instead of re-deriving layout rules, so the PNG
// exporter, the Graphviz exporter and the interactive editor all agree on
// where an attribute sits and where a connector ends.
package scene

import (
	"github.com/matzehuels/erdiagram/pkg/geometry"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// Marker radii used for drawing and for the scene bounds.
const (
	AttributeRadius = 20.0
	ComponentRadius = 12.0
)

// OwnerKind tells which kind of shape owns an attribute.
type OwnerKind int

const (
	OwnerEntity OwnerKind = iota
	OwnerRelationship
)

// Scene is the resolved geometry of one diagram.
type Scene struct {
	Entities      []EntityShape
	Relationships []RelationshipShape
	Notes         []NoteShape
	Connectors    []Connector
}

// EntityShape is an entity box and its attribute markers.
type EntityShape struct {
	ID         string
	Name       string
	Box        geometry.Rect
	Weak       bool
	Attributes []Marker
}

// RelationshipShape is a relationship diamond (inscribed in Box) and its
// attribute markers.
type RelationshipShape struct {
	ID         string
	Name       string
	Box        geometry.Rect
	Attributes []Marker
}

// NoteShape is a free-text box.
type NoteShape struct {
	ID   string
	Text string
	Box  geometry.Rect
}

// Marker is a resolved attribute.
type Marker struct {
	AttributeID  string
	OwnerID      string
	Owner        OwnerKind
	Index        int
	Name         string
	Type         model.AttributeType
	PrimaryKey   bool
	Multiplicity string
	Center       geometry.Point
	// LinkFrom is where the stem leaves the owner's boundary; the stem
	// ends at Center.
	LinkFrom   geometry.Point
	Components []ComponentMarker
}

// ComponentMarker is one part of a composite attribute.
type ComponentMarker struct {
	ID     string
	Name   string
	Center geometry.Point
}

// Connector is the line between a relationship and one participant.
type Connector struct {
	RelationshipID string
	EntityID       string
	Cardinality    model.Cardinality
	// From lies on the relationship diamond, To on the entity box.
	From, To geometry.Point
	// Label is the cardinality label position, halfway between the centers.
	Label geometry.Point
}

// Build resolves d. Connections to missing entities produce no connector.
func Build(d model.Diagram) Scene {
	s := Scene{
		Entities:      make([]EntityShape, 0, len(d.Entities)),
		Relationships: make([]RelationshipShape, 0, len(d.Relationships)),
		Notes:         make([]NoteShape, 0, len(d.Notes)),
	}

	entityBoxes := make(map[string]geometry.Rect, len(d.Entities))
	for _, e := range d.Entities {
		box := e.Bounds()
		entityBoxes[e.ID] = box
		s.Entities = append(s.Entities, EntityShape{
			ID:         e.ID,
			Name:       e.Name,
			Box:        box,
			Weak:       e.IsWeak,
			Attributes: markers(e.ID, OwnerEntity, box, geometry.ShapeRect, e.Attributes),
		})
	}

	for _, r := range d.Relationships {
		box := r.Bounds()
		s.Relationships = append(s.Relationships, RelationshipShape{
			ID:         r.ID,
			Name:       r.Name,
			Box:        box,
			Attributes: markers(r.ID, OwnerRelationship, box, geometry.ShapeDiamond, r.Attributes),
		})

		rc := box.Center()
		for _, c := range r.Connections {
			ebox, ok := entityBoxes[c.EntityID]
			if !ok {
				continue
			}
			ec := ebox.Center()
			s.Connectors = append(s.Connectors, Connector{
				RelationshipID: r.ID,
				EntityID:       c.EntityID,
				Cardinality:    c.Cardinality,
				From:           geometry.ClosestPointOnDiamond(box, ec),
				To:             geometry.ClosestPointOnRect(ebox, rc),
				Label:          geometry.Midpoint(rc, ec),
			})
		}
	}

	for _, n := range d.Notes {
		s.Notes = append(s.Notes, NoteShape{ID: n.ID, Text: n.Text, Box: n.Bounds()})
	}
	return s
}

func markers(ownerID string, kind OwnerKind, box geometry.Rect, shape geometry.Shape, attrs []model.Attribute) []Marker {
	out := make([]Marker, len(attrs))
	for i, a := range attrs {
		off, set := a.Offset.Vec()
		center := geometry.ResolveAttributePosition(box, off, set, i, len(attrs))
		from, _ := geometry.AttributeLink(box, shape, center)

		m := Marker{
			AttributeID:  a.ID,
			OwnerID:      ownerID,
			Owner:        kind,
			Index:        i,
			Name:         a.Name,
			Type:         a.Type,
			PrimaryKey:   a.IsPrimaryKey,
			Multiplicity: a.Multiplicity,
			Center:       center,
			LinkFrom:     from,
		}
		if a.Type == model.Composite {
			for j, c := range a.Components {
				m.Components = append(m.Components, ComponentMarker{
					ID:     c.ID,
					Name:   c.Name,
					Center: geometry.ComponentSlot(center, j, len(a.Components)),
				})
			}
		}
		out[i] = m
	}
	return out
}

// Bounds returns the smallest box containing every shape and marker, and
// false for an empty scene.
func (s Scene) Bounds() (geometry.Rect, bool) {
	var rects []geometry.Rect
	addMarkers := func(ms []Marker) {
		for _, m := range ms {
			rects = append(rects, geometry.CenteredAt(m.Center, 2*AttributeRadius, 2*AttributeRadius))
			for _, c := range m.Components {
				rects = append(rects, geometry.CenteredAt(c.Center, 2*ComponentRadius, 2*ComponentRadius))
			}
		}
	}
	for _, e := range s.Entities {
		rects = append(rects, e.Box)
		addMarkers(e.Attributes)
	}
	for _, r := range s.Relationships {
		rects = append(rects, r.Box)
		addMarkers(r.Attributes)
	}
	for _, n := range s.Notes {
		rects = append(rects, n.Box)
	}
	return geometry.Bounds(rects...)
}
