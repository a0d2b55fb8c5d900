package editor

import (
	"slices"

	"github.com/matzehuels/erdiagram/pkg/model"
)

// AddAttributeToEntity appends a to the entity's attributes and returns
// the attribute id, generating one when a.ID is empty.
func (e *Editor) AddAttributeToEntity(entityID string, a model.Attribute) string {
	a = e.withID(a)
	e.UpdateEntity(entityID, func(en model.Entity) model.Entity {
		en.Attributes = append(en.Attributes, a)
		return en
	})
	return a.ID
}

// UpdateAttributeOnEntity replaces the entity's attribute attrID with a.
func (e *Editor) UpdateAttributeOnEntity(entityID, attrID string, a model.Attribute) {
	e.UpdateEntity(entityID, func(en model.Entity) model.Entity {
		en.Attributes = replaceAttribute(en.Attributes, attrID, a)
		return en
	})
}

// DeleteAttributeFromEntity removes the entity's attribute attrID.
func (e *Editor) DeleteAttributeFromEntity(entityID, attrID string) {
	e.UpdateEntity(entityID, func(en model.Entity) model.Entity {
		en.Attributes = deleteAttribute(en.Attributes, attrID)
		return en
	})
}

// AddAttributeToRelationship appends a to the relationship's attributes
// and returns the attribute id, generating one when a.ID is empty.
func (e *Editor) AddAttributeToRelationship(relID string, a model.Attribute) string {
	a = e.withID(a)
	e.UpdateRelationship(relID, func(r model.Relationship) model.Relationship {
		r.Attributes = append(r.Attributes, a)
		return r
	})
	return a.ID
}

// UpdateAttributeOnRelationship replaces the relationship's attribute
// attrID with a.
func (e *Editor) UpdateAttributeOnRelationship(relID, attrID string, a model.Attribute) {
	e.UpdateRelationship(relID, func(r model.Relationship) model.Relationship {
		r.Attributes = replaceAttribute(r.Attributes, attrID, a)
		return r
	})
}

// DeleteAttributeFromRelationship removes the relationship's attribute
// attrID.
func (e *Editor) DeleteAttributeFromRelationship(relID, attrID string) {
	e.UpdateRelationship(relID, func(r model.Relationship) model.Relationship {
		r.Attributes = deleteAttribute(r.Attributes, attrID)
		return r
	})
}

func (e *Editor) withID(a model.Attribute) model.Attribute {
	a = a.Clone()
	if a.ID == "" {
		a.ID = e.newID()
	}
	return a
}

func replaceAttribute(attrs []model.Attribute, id string, a model.Attribute) []model.Attribute {
	for i := range attrs {
		if attrs[i].ID == id {
			attrs[i] = a.Clone()
		}
	}
	return attrs
}

func deleteAttribute(attrs []model.Attribute, id string) []model.Attribute {
	return slices.DeleteFunc(attrs, func(a model.Attribute) bool { return a.ID == id })
}
