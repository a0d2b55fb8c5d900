package model

import (
	"slices"

	"github.com/matzehuels/erdiagram/pkg/geometry"
)

// Cardinality is the participation constraint of a connection.
type Cardinality string

const (
	One      Cardinality = "ONE"
	ZeroOne  Cardinality = "ZERO_ONE"
	OneOne   Cardinality = "ONE_ONE"
	Many     Cardinality = "MANY"
	ZeroMany Cardinality = "ZERO_MANY"
	OneMany  Cardinality = "ONE_MANY"
)

// Cardinalities lists every cardinality in display order.
var Cardinalities = []Cardinality{One, ZeroOne, OneOne, Many, ZeroMany, OneMany}

var cardinalityLabels = map[Cardinality]string{
	One:      "1",
	ZeroOne:  "(0,1)",
	OneOne:   "(1,1)",
	Many:     "N",
	ZeroMany: "(0,N)",
	OneMany:  "(1,N)",
}

// Label returns the text drawn next to a connector, e.g. "(1,N)".
func (c Cardinality) Label() string { return cardinalityLabels[c] }

// Valid reports whether c is one of the known cardinalities.
func (c Cardinality) Valid() bool {
	_, ok := cardinalityLabels[c]
	return ok
}

// IsMany reports whether c allows many participants.
func (c Cardinality) IsMany() bool {
	return c == Many || c == ZeroMany || c == OneMany
}

// AttributeType classifies an attribute.
type AttributeType string

const (
	Normal      AttributeType = "NORMAL"
	Key         AttributeType = "KEY"
	Multivalued AttributeType = "MULTIVALUED"
	Derived     AttributeType = "DERIVED"
	Composite   AttributeType = "COMPOSITE"
)

// AttributeTypes lists every attribute type.
var AttributeTypes = []AttributeType{Normal, Key, Multivalued, Derived, Composite}

// Valid reports whether t is one of the known attribute types.
func (t AttributeType) Valid() bool { return slices.Contains(AttributeTypes, t) }

// Offset is an optional displacement of an attribute marker from its
// owner's center. When Set is false the marker uses its default slot.
type Offset struct {
	X, Y float64
	Set  bool
}

// At returns a set offset of (x, y).
func At(x, y float64) Offset { return Offset{X: x, Y: y, Set: true} }

// Vec returns the displacement and whether it is set.
func (o Offset) Vec() (geometry.Vec, bool) {
	return geometry.Vec{X: o.X, Y: o.Y}, o.Set
}

// Attribute is a property of an entity or relationship.
type Attribute struct {
	ID           string
	Name         string
	Type         AttributeType
	Offset       Offset
	IsPrimaryKey bool
	// Components holds the parts of a COMPOSITE attribute.
	Components []Attribute
	// Multiplicity is free text for MULTIVALUED attributes, e.g. "1..3".
	Multiplicity string
}

// NewAttribute returns an attribute of type t with the type rules applied.
func NewAttribute(id, name string, t AttributeType) Attribute {
	return Attribute{ID: id, Name: name}.WithType(t)
}

// WithType returns a copy of a with its type set to t. Choosing KEY marks
// the attribute as primary key; choosing COMPOSITE clears the mark.
func (a Attribute) WithType(t AttributeType) Attribute {
	a.Type = t
	switch t {
	case Key:
		a.IsPrimaryKey = true
	case Composite:
		a.IsPrimaryKey = false
	}
	return a
}

// Finalize returns a copy of a ready to be stored: KEY attributes are
// primary keys, components survive only on COMPOSITE attributes and
// multiplicity only on MULTIVALUED ones.
func (a Attribute) Finalize() Attribute {
	a.IsPrimaryKey = a.Type == Key || a.IsPrimaryKey
	if a.Type == Composite {
		a.IsPrimaryKey = false
	} else {
		a.Components = nil
	}
	if a.Type != Multivalued {
		a.Multiplicity = ""
	}
	return a
}

// Clone returns a deep copy of a.
func (a Attribute) Clone() Attribute {
	a.Components = cloneAttributes(a.Components)
	return a
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = a.Clone()
	}
	return out
}
