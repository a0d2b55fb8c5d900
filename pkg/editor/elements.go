package editor

import (
	"slices"

	"github.com/matzehuels/erdiagram/pkg/geometry"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/transform"
)

// AddEntity appends an entity of default size with its top-left corner at
// pos and returns its id.
func (e *Editor) AddEntity(pos geometry.Point, name string) string {
	e.snapshot()
	id := e.newID()
	e.diagram.Entities = append(e.diagram.Entities, model.NewEntity(id, name, pos.X, pos.Y))
	e.changed("add_entity", true)
	return id
}

// AddRelationship appends a relationship of default size with its
// top-left corner at pos and returns its id.
func (e *Editor) AddRelationship(pos geometry.Point, name string) string {
	e.snapshot()
	id := e.newID()
	e.diagram.Relationships = append(e.diagram.Relationships, model.NewRelationship(id, name, pos.X, pos.Y))
	e.changed("add_relationship", true)
	return id
}

// UpdateEntity replaces the entity id with fn applied to a copy of it.
// An undo step is recorded and the diagram is marked modified even when no
// entity has that id.
func (e *Editor) UpdateEntity(id string, fn func(model.Entity) model.Entity) {
	e.snapshot()
	e.applyEntity(id, fn)
	e.changed("update_entity", true)
}

// UpdateEntityQuiet is UpdateEntity without an undo step, for continuous
// changes such as dragging.
func (e *Editor) UpdateEntityQuiet(id string, fn func(model.Entity) model.Entity) {
	rekeyed := e.applyEntity(id, fn)
	e.changed("move_entity", rekeyed)
}

// applyEntity reports whether fn changed the entity's ID.
func (e *Editor) applyEntity(id string, fn func(model.Entity) model.Entity) bool {
	i, ok := e.entityAt(id)
	if !ok {
		return false
	}
	e.diagram.Entities[i] = fn(e.diagram.Entities[i].Clone())
	return e.diagram.Entities[i].ID != id
}

// UpdateRelationship replaces the relationship id with fn applied to a
// copy of it. An undo step is recorded and the diagram is marked modified
// even when no relationship has that id.
func (e *Editor) UpdateRelationship(id string, fn func(model.Relationship) model.Relationship) {
	e.snapshot()
	e.applyRelationship(id, fn)
	e.changed("update_relationship", true)
}

// UpdateRelationshipQuiet is UpdateRelationship without an undo step.
func (e *Editor) UpdateRelationshipQuiet(id string, fn func(model.Relationship) model.Relationship) {
	rekeyed := e.applyRelationship(id, fn)
	e.changed("move_relationship", rekeyed)
}

func (e *Editor) applyRelationship(id string, fn func(model.Relationship) model.Relationship) bool {
	i, ok := e.relationshipAt(id)
	if !ok {
		return false
	}
	e.diagram.Relationships[i] = fn(e.diagram.Relationships[i].Clone())
	return e.diagram.Relationships[i].ID != id
}

// BeginDrag records an undo step for a gesture whose intermediate updates
// use the quiet variants.
func (e *Editor) BeginDrag() {
	e.snapshot()
	e.logger.Debug("drag started")
}

// DeleteEntity removes the entity id and every connection to it.
func (e *Editor) DeleteEntity(id string) {
	e.snapshot()
	e.diagram.Entities = slices.DeleteFunc(e.diagram.Entities, func(en model.Entity) bool { return en.ID == id })
	for i := range e.diagram.Relationships {
		r := &e.diagram.Relationships[i]
		r.Connections = slices.DeleteFunc(r.Connections, func(c model.Connection) bool { return c.EntityID == id })
	}
	if sel, ok := e.selection.Entity(); ok && sel == id {
		e.selection = Selection{}
	}
	e.changed("delete_entity", true)
}

// DeleteRelationship removes the relationship id.
func (e *Editor) DeleteRelationship(id string) {
	e.snapshot()
	e.diagram.Relationships = slices.DeleteFunc(e.diagram.Relationships, func(r model.Relationship) bool { return r.ID == id })
	if sel, ok := e.selection.Relationship(); ok && sel == id {
		e.selection = Selection{}
	}
	e.changed("delete_relationship", true)
}

// AddConnection connects the relationship relID to entityID. It does
// nothing when the relationship already connects to entityID.
func (e *Editor) AddConnection(relID, entityID string, c model.Cardinality) {
	if i, ok := e.relationshipAt(relID); ok && e.diagram.Relationships[i].Connects(entityID) {
		e.logger.Debug("duplicate connection ignored", "relationship", relID, "entity", entityID)
		return
	}
	e.UpdateRelationship(relID, func(r model.Relationship) model.Relationship {
		r.Connections = append(r.Connections, model.Connection{EntityID: entityID, Cardinality: c})
		return r
	})
}

// UpdateConnection replaces the connection to oldEntityID with one to
// newEntityID. It does nothing when the target changes to an entity the
// relationship already connects to.
func (e *Editor) UpdateConnection(relID, oldEntityID, newEntityID string, c model.Cardinality) {
	if i, ok := e.relationshipAt(relID); ok && newEntityID != oldEntityID && e.diagram.Relationships[i].Connects(newEntityID) {
		e.logger.Debug("conflicting connection ignored", "relationship", relID, "entity", newEntityID)
		return
	}
	e.UpdateRelationship(relID, func(r model.Relationship) model.Relationship {
		for i, conn := range r.Connections {
			if conn.EntityID == oldEntityID {
				r.Connections[i] = model.Connection{EntityID: newEntityID, Cardinality: c}
			}
		}
		return r
	})
}

// DeleteConnection removes the connection from relID to entityID, if any.
func (e *Editor) DeleteConnection(relID, entityID string) {
	e.UpdateRelationship(relID, func(r model.Relationship) model.Relationship {
		r.Connections = slices.DeleteFunc(r.Connections, func(c model.Connection) bool { return c.EntityID == entityID })
		return r
	})
}

// ConvertToAssociativeEntity replaces a many-to-many relationship with an
// associative entity as one undoable step and clears a relationship
// selection. It reports false and changes nothing when the relationship is
// not eligible.
func (e *Editor) ConvertToAssociativeEntity(relID string) bool {
	next, ok := transform.AssociativeEntity(e.diagram, relID, e.newID)
	if !ok {
		e.logger.Debug("relationship not eligible for conversion", "relationship", relID)
		return false
	}
	e.snapshot()
	e.diagram = next
	if _, ok := e.selection.Relationship(); ok {
		e.selection = Selection{}
	}
	e.changed("convert_associative", true)
	return true
}

// AddNote appends a note of default size at pos and returns its id.
func (e *Editor) AddNote(pos geometry.Point, text string) string {
	e.snapshot()
	id := e.newID()
	e.diagram.Notes = append(e.diagram.Notes, model.NewNote(id, text, pos.X, pos.Y))
	e.changed("add_note", false)
	return id
}

// UpdateNote replaces the note id with fn applied to it. Like UpdateEntity
// it records an undo step and marks the diagram modified even when no note
// matches.
func (e *Editor) UpdateNote(id string, fn func(model.Note) model.Note) {
	e.snapshot()
	e.applyNote(id, fn)
	e.changed("update_note", false)
}

// UpdateNoteQuiet is UpdateNote without an undo step.
func (e *Editor) UpdateNoteQuiet(id string, fn func(model.Note) model.Note) {
	e.applyNote(id, fn)
	e.changed("move_note", false)
}

func (e *Editor) applyNote(id string, fn func(model.Note) model.Note) {
	for i, n := range e.diagram.Notes {
		if n.ID == id {
			e.diagram.Notes[i] = fn(n)
			return
		}
	}
}

// DeleteNote removes the note id.
func (e *Editor) DeleteNote(id string) {
	e.snapshot()
	e.diagram.Notes = slices.DeleteFunc(e.diagram.Notes, func(n model.Note) bool { return n.ID == id })
	e.changed("delete_note", false)
}
