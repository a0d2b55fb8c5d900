package scene

import "github.com/matzehuels/erdiagram/pkg/geometry"

// AttributeHitRadius is how close a pointer must be to an attribute marker
// to grab it.
const AttributeHitRadius = 30.0

// HitKind identifies what a point landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitEntity
	HitRelationship
	HitAttribute
	HitNote
)

// Hit is the result of a hit test. For attributes, ID is the attribute id
// and OwnerID/Owner identify its owning shape.
type Hit struct {
	Kind    HitKind
	ID      string
	OwnerID string
	Owner   OwnerKind
}

// HitAttribute returns the first attribute marker within radius of p.
// Entity attributes are tested before relationship attributes.
func (s Scene) HitAttribute(p geometry.Point, radius float64) (Hit, bool) {
	for _, e := range s.Entities {
		if h, ok := hitMarkers(e.Attributes, p, radius); ok {
			return h, true
		}
	}
	for _, r := range s.Relationships {
		if h, ok := hitMarkers(r.Attributes, p, radius); ok {
			return h, true
		}
	}
	return Hit{}, false
}

func hitMarkers(ms []Marker, p geometry.Point, radius float64) (Hit, bool) {
	for _, m := range ms {
		if geometry.Distance(p, m.Center) <= radius {
			return Hit{Kind: HitAttribute, ID: m.AttributeID, OwnerID: m.OwnerID, Owner: m.Owner}, true
		}
	}
	return Hit{}, false
}

// HitEntity returns the first entity whose box contains p.
func (s Scene) HitEntity(p geometry.Point) (Hit, bool) {
	for _, e := range s.Entities {
		if geometry.RectContains(e.Box, p) {
			return Hit{Kind: HitEntity, ID: e.ID}, true
		}
	}
	return Hit{}, false
}

// HitRelationship returns the first relationship whose diamond contains p.
func (s Scene) HitRelationship(p geometry.Point) (Hit, bool) {
	for _, r := range s.Relationships {
		if geometry.DiamondContains(r.Box, p) {
			return Hit{Kind: HitRelationship, ID: r.ID}, true
		}
	}
	return Hit{}, false
}

// HitNote returns the first note whose box contains p.
func (s Scene) HitNote(p geometry.Point) (Hit, bool) {
	for _, n := range s.Notes {
		if geometry.RectContains(n.Box, p) {
			return Hit{Kind: HitNote, ID: n.ID}, true
		}
	}
	return Hit{}, false
}

// HitTest returns what a tap at p selects: a relationship diamond wins over
// an entity box; notes are tested last.
func (s Scene) HitTest(p geometry.Point) Hit {
	if h, ok := s.HitRelationship(p); ok {
		return h
	}
	if h, ok := s.HitEntity(p); ok {
		return h
	}
	if h, ok := s.HitNote(p); ok {
		return h
	}
	return Hit{}
}
