// Package transform rewrites diagrams.
//
// [AssociativeEntity] replaces a many-to-many relationship with an
// associative entity linked to each former participant by its own binary
// relationship. The function is pure: it returns a new diagram and never
// modifies its input, so callers decide how the rewrite is recorded (the
// editor records it as one undoable step).
package transform

import (
	"github.com/matzehuels/erdiagram/pkg/geometry"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// FallbackDistance is the horizontal offset from the relationship center
// used in place of a participant that is missing from the diagram.
const FallbackDistance = 200.0

// Eligible reports whether the relationship relID can be converted: it must
// exist and have exactly two connections, both many-flavored.
func Eligible(d model.Diagram, relID string) bool {
	r, ok := d.Relationship(relID)
	return ok && eligible(r)
}

func eligible(r model.Relationship) bool {
	if len(r.Connections) != 2 {
		return false
	}
	for _, c := range r.Connections {
		if !c.Cardinality.IsMany() {
			return false
		}
	}
	return true
}

// AssociativeEntity converts the relationship relID into an associative
// entity. newID supplies the ids of the new entity and of the two new
// relationships, in that order.
//
// The new entity is centered on the relationship, inherits its name,
// attributes and documentation, and is appended to the entity list. For
// each former connection a relationship of default size is centered on the
// midpoint between the participant and the old center, connected to the new
// entity as ONE_ONE and to the participant with the original cardinality.
// A missing participant is placed FallbackDistance left (first connection)
// or right (second connection) of the old center. The two relationships
// take the old relationship's place in the list.
//
// When relID is not [Eligible], d is returned unchanged with false.
func AssociativeEntity(d model.Diagram, relID string, newID func() string) (model.Diagram, bool) {
	idx := d.RelationshipIndex(relID)
	if idx < 0 || !eligible(d.Relationships[idx]) {
		return d, false
	}

	out := d.Clone()
	rel := out.Relationships[idx]
	c := rel.Center()

	assoc := model.NewEntity(newID(), rel.Name, c.X-model.EntityWidth/2, c.Y-model.EntityHeight/2)
	assoc.Attributes = rel.Attributes
	assoc.Documentation = rel.Documentation

	fallback := [2]float64{-FallbackDistance, FallbackDistance}
	links := make([]model.Relationship, 0, 2)
	for i, conn := range rel.Connections {
		target := geometry.Point{X: c.X + fallback[i], Y: c.Y}
		name := rel.Name
		if e, ok := out.Entity(conn.EntityID); ok {
			target = e.Center()
			name = rel.Name + " " + e.Name
		}
		m := geometry.Midpoint(target, c)
		link := model.NewRelationship(newID(), name, m.X-model.RelationshipWidth/2, m.Y-model.RelationshipHeight/2)
		link.Connections = []model.Connection{
			{EntityID: assoc.ID, Cardinality: model.OneOne},
			{EntityID: conn.EntityID, Cardinality: conn.Cardinality},
		}
		links = append(links, link)
	}

	rels := make([]model.Relationship, 0, len(out.Relationships)+1)
	rels = append(rels, out.Relationships[:idx]...)
	rels = append(rels, links...)
	rels = append(rels, out.Relationships[idx+1:]...)
	out.Relationships = rels
	out.Entities = append(out.Entities, assoc)
	return out, true
}
