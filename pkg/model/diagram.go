package model

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

var (
	// ErrEmptyID is returned by [Diagram.Validate] when an element has no id.
	ErrEmptyID = errors.New("element ID must not be empty")

	// ErrDuplicateEntityID is returned by [Diagram.Validate] when two
	// entities share an id.
	ErrDuplicateEntityID = errors.New("duplicate entity ID")

	// ErrDuplicateRelationshipID is returned by [Diagram.Validate] when two
	// relationships share an id.
	ErrDuplicateRelationshipID = errors.New("duplicate relationship ID")

	// ErrDuplicateConnection is returned by [Diagram.Validate] when a
	// relationship connects to the same entity more than once.
	ErrDuplicateConnection = errors.New("duplicate connection target")

	// ErrUnknownCardinality is returned by [Diagram.Validate] for a
	// connection whose cardinality is not one of [Cardinalities].
	ErrUnknownCardinality = errors.New("unknown cardinality")

	// ErrUnknownAttributeType is returned by [Diagram.Validate] for an
	// attribute whose type is not one of [AttributeTypes].
	ErrUnknownAttributeType = errors.New("unknown attribute type")
)

// Diagram is the aggregate root of an ER diagram.
type Diagram struct {
	Name          string
	Entities      []Entity
	Relationships []Relationship
	Notes         []Note
	Documentation string
}

// New returns an empty diagram. An empty name selects DefaultDiagramName.
func New(name string) Diagram {
	if name == "" {
		name = DefaultDiagramName
	}
	return Diagram{Name: name}
}

// Clone returns a deep copy of d that shares no slices with d.
func (d Diagram) Clone() Diagram {
	out := d
	if d.Entities != nil {
		out.Entities = make([]Entity, len(d.Entities))
		for i, e := range d.Entities {
			out.Entities[i] = e.Clone()
		}
	}
	if d.Relationships != nil {
		out.Relationships = make([]Relationship, len(d.Relationships))
		for i, r := range d.Relationships {
			out.Relationships[i] = r.Clone()
		}
	}
	out.Notes = slices.Clone(d.Notes)
	return out
}

// Equal reports whether d and o hold the same elements with the same field
// values. Nil and empty lists compare equal.
func (d Diagram) Equal(o Diagram) bool {
	return reflect.DeepEqual(normalize(d), normalize(o))
}

// normalize maps empty lists to nil so Equal ignores the difference.
func normalize(d Diagram) Diagram {
	d = d.Clone()
	d.Entities = nilIfEmpty(d.Entities)
	for i := range d.Entities {
		d.Entities[i].Attributes = normalizeAttributes(d.Entities[i].Attributes)
	}
	d.Relationships = nilIfEmpty(d.Relationships)
	for i := range d.Relationships {
		d.Relationships[i].Attributes = normalizeAttributes(d.Relationships[i].Attributes)
		d.Relationships[i].Connections = nilIfEmpty(d.Relationships[i].Connections)
	}
	d.Notes = nilIfEmpty(d.Notes)
	return d
}

func normalizeAttributes(attrs []Attribute) []Attribute {
	attrs = nilIfEmpty(attrs)
	for i := range attrs {
		attrs[i].Components = normalizeAttributes(attrs[i].Components)
	}
	return attrs
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}

// Entity returns the entity with the given id and true, or false if absent.
func (d Diagram) Entity(id string) (Entity, bool) {
	if i := d.EntityIndex(id); i >= 0 {
		return d.Entities[i], true
	}
	return Entity{}, false
}

// EntityIndex returns the position of the entity with the given id, or -1.
func (d Diagram) EntityIndex(id string) int {
	return slices.IndexFunc(d.Entities, func(e Entity) bool { return e.ID == id })
}

// Relationship returns the relationship with the given id and true, or
// false if absent.
func (d Diagram) Relationship(id string) (Relationship, bool) {
	if i := d.RelationshipIndex(id); i >= 0 {
		return d.Relationships[i], true
	}
	return Relationship{}, false
}

// RelationshipIndex returns the position of the relationship with the
// given id, or -1.
func (d Diagram) RelationshipIndex(id string) int {
	return slices.IndexFunc(d.Relationships, func(r Relationship) bool { return r.ID == id })
}

// Note returns the note with the given id and true, or false if absent.
func (d Diagram) Note(id string) (Note, bool) {
	i := slices.IndexFunc(d.Notes, func(n Note) bool { return n.ID == id })
	if i < 0 {
		return Note{}, false
	}
	return d.Notes[i], true
}

// Validate checks the structural invariants and returns the first
// violation, wrapped with the offending element's id.
//
// Connections to entities that are not in the diagram are allowed.
func (d Diagram) Validate() error {
	entityIDs := make(map[string]struct{}, len(d.Entities))
	for _, e := range d.Entities {
		if e.ID == "" {
			return fmt.Errorf("entity %q: %w", e.Name, ErrEmptyID)
		}
		if _, dup := entityIDs[e.ID]; dup {
			return fmt.Errorf("entity %s: %w", e.ID, ErrDuplicateEntityID)
		}
		entityIDs[e.ID] = struct{}{}
		if err := validateAttributes(e.Attributes); err != nil {
			return fmt.Errorf("entity %s: %w", e.ID, err)
		}
	}

	relIDs := make(map[string]struct{}, len(d.Relationships))
	for _, r := range d.Relationships {
		if r.ID == "" {
			return fmt.Errorf("relationship %q: %w", r.Name, ErrEmptyID)
		}
		if _, dup := relIDs[r.ID]; dup {
			return fmt.Errorf("relationship %s: %w", r.ID, ErrDuplicateRelationshipID)
		}
		relIDs[r.ID] = struct{}{}

		targets := make(map[string]struct{}, len(r.Connections))
		for _, c := range r.Connections {
			if _, dup := targets[c.EntityID]; dup {
				return fmt.Errorf("relationship %s -> %s: %w", r.ID, c.EntityID, ErrDuplicateConnection)
			}
			targets[c.EntityID] = struct{}{}
			if !c.Cardinality.Valid() {
				return fmt.Errorf("relationship %s -> %s: %w: %q", r.ID, c.EntityID, ErrUnknownCardinality, c.Cardinality)
			}
		}
		if err := validateAttributes(r.Attributes); err != nil {
			return fmt.Errorf("relationship %s: %w", r.ID, err)
		}
	}
	return nil
}

func validateAttributes(attrs []Attribute) error {
	for _, a := range attrs {
		if !a.Type.Valid() {
			return fmt.Errorf("attribute %s: %w: %q", a.ID, ErrUnknownAttributeType, a.Type)
		}
		if err := validateAttributes(a.Components); err != nil {
			return err
		}
	}
	return nil
}
