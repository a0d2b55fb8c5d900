// Package model defines the Entity-Relationship diagram schema.
//
// # Overview
//
// A [Diagram] is the aggregate root: a name, documentation and three lists
// of elements placed on an unbounded canvas:
//
//   - [Entity]: a rectangle (default 140×70) representing a real-world
//     object type. Entities may be weak.
//   - [Relationship]: the rhombus inscribed in its box (default 120×120),
//     carrying one [Connection] per participating entity.
//   - [Note]: free text (default 210×155), independent of everything else.
//
// Entities and relationships own an ordered list of [Attribute] values.
//
// # Values, not objects
//
// Every type in this package is a plain value. The editor never mutates a
// diagram in place; it produces a new value and keeps the previous one as
// an undo snapshot. [Diagram.Clone] returns a deep copy whose slices share
// no backing arrays with the original, so snapshots stay independent.
//
// # Invariants
//
// Entity and relationship ids are unique within a diagram. A relationship
// holds at most one connection per entity id. Attribute and note ids only
// need to be unique within their container.
//
// The attribute type rules (KEY implies a primary key, COMPOSITE implies
// not) are applied where the type is chosen, by [Attribute.WithType] and
// [Attribute.Finalize]. Constructing an Attribute literal bypasses them.
//
// None of this is checked on construction. [Diagram.Validate] checks the
// structural invariants on demand and is used when importing documents.
//
// # Attribute offsets
//
// An attribute is drawn either at a computed default slot or at an explicit
// offset from its owner's center. The choice is modelled by [Offset.Set]
// rather than by treating (0,0) as "unset", so an attribute dragged onto
// its owner's center keeps that position.
package model
