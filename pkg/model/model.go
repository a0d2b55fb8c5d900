package model

import (
	"slices"

	"github.com/matzehuels/erdiagram/pkg/geometry"
)

// Default element sizes.
const (
	EntityWidth        = 140.0
	EntityHeight       = 70.0
	RelationshipWidth  = 120.0
	RelationshipHeight = 120.0
	NoteWidth          = 210.0
	NoteHeight         = 155.0
)

// DefaultDiagramName names diagrams created without an explicit name.
const DefaultDiagramName = "Untitled Diagram"

// Entity is a rectangle-rendered node representing a real-world object type.
type Entity struct {
	ID            string
	Name          string
	X, Y          float64
	Width, Height float64
	Attributes    []Attribute
	Documentation string
	IsWeak        bool
}

// NewEntity returns an entity of default size at (x, y).
func NewEntity(id, name string, x, y float64) Entity {
	return Entity{ID: id, Name: name, X: x, Y: y, Width: EntityWidth, Height: EntityHeight}
}

// Bounds returns the entity's box.
func (e Entity) Bounds() geometry.Rect {
	return geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Center returns the midpoint of the entity's box.
func (e Entity) Center() geometry.Point { return e.Bounds().Center() }

// Clone returns a deep copy of e.
func (e Entity) Clone() Entity {
	e.Attributes = cloneAttributes(e.Attributes)
	return e
}

// Relationship is a diamond-rendered node associating entities.
type Relationship struct {
	ID            string
	Name          string
	X, Y          float64
	Width, Height float64
	Attributes    []Attribute
	Connections   []Connection
	Documentation string
}

// NewRelationship returns a relationship of default size at (x, y).
func NewRelationship(id, name string, x, y float64) Relationship {
	return Relationship{ID: id, Name: name, X: x, Y: y, Width: RelationshipWidth, Height: RelationshipHeight}
}

// Bounds returns the bounding box of the relationship's diamond.
func (r Relationship) Bounds() geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Center returns the midpoint of the relationship's box.
func (r Relationship) Center() geometry.Point { return r.Bounds().Center() }

// Connection returns the connection to entityID and whether it exists.
func (r Relationship) Connection(entityID string) (Connection, bool) {
	for _, c := range r.Connections {
		if c.EntityID == entityID {
			return c, true
		}
	}
	return Connection{}, false
}

// Connects reports whether r has a connection to entityID.
func (r Relationship) Connects(entityID string) bool {
	_, ok := r.Connection(entityID)
	return ok
}

// Clone returns a deep copy of r.
func (r Relationship) Clone() Relationship {
	r.Attributes = cloneAttributes(r.Attributes)
	r.Connections = slices.Clone(r.Connections)
	return r
}

// Connection links a relationship to one participating entity.
type Connection struct {
	EntityID    string
	Cardinality Cardinality
}

// Note is a free-text annotation.
type Note struct {
	ID            string
	Text          string
	X, Y          float64
	Width, Height float64
}

// NewNote returns a note of default size at (x, y).
func NewNote(id, text string, x, y float64) Note {
	return Note{ID: id, Text: text, X: x, Y: y, Width: NoteWidth, Height: NoteHeight}
}

// Bounds returns the note's box.
func (n Note) Bounds() geometry.Rect {
	return geometry.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}
