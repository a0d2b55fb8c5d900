package editor

import (
	"github.com/matzehuels/erdiagram/pkg/geometry"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/scene"
)

// DragThreshold is the screen distance a gesture must travel before Drag
// moves anything. Shorter gestures count as clicks.
const DragThreshold = 5.0

// DragTarget is what a drag gesture moves. The zero value moves nothing.
type DragTarget = scene.Hit

// Tap handles a click at the screen point p. In ToolSelect it selects the
// relationship or entity under the point, relationships first, and clears
// the selection over empty canvas. In ToolEntity and ToolRelationship it
// creates an element centered on the point and returns to ToolSelect.
func (e *Editor) Tap(p geometry.Point) {
	c := e.ScreenToCanvas(p)
	switch e.tool {
	case ToolEntity:
		e.AddEntity(geometry.Point{X: c.X - model.EntityWidth/2, Y: c.Y - model.EntityHeight/2}, e.entityName)
		e.SetTool(ToolSelect)
	case ToolRelationship:
		e.AddRelationship(geometry.Point{X: c.X - model.RelationshipWidth/2, Y: c.Y - model.RelationshipHeight/2}, e.relationshipName)
		e.SetTool(ToolSelect)
	default:
		s := scene.Build(e.diagram)
		if h, ok := s.HitRelationship(c); ok {
			e.SelectRelationship(h.ID)
		} else if h, ok := s.HitEntity(c); ok {
			e.SelectEntity(h.ID)
		} else {
			e.ClearSelection()
		}
	}
}

// StartDrag begins a drag gesture at the screen point p and returns what
// it grabbed: an attribute marker within scene.AttributeHitRadius, else an
// entity, a relationship or a note under the point. Grabbed entities and
// relationships become selected. One undo step is recorded when something
// is grabbed.
func (e *Editor) StartDrag(p geometry.Point) DragTarget {
	c := e.ScreenToCanvas(p)
	s := scene.Build(e.diagram)

	var t DragTarget
	if h, ok := s.HitAttribute(c, scene.AttributeHitRadius); ok {
		t = h
	} else if h, ok := s.HitEntity(c); ok {
		t = h
		e.SelectEntity(h.ID)
	} else if h, ok := s.HitRelationship(c); ok {
		t = h
		e.SelectRelationship(h.ID)
	} else if h, ok := s.HitNote(c); ok {
		t = h
	} else {
		return DragTarget{}
	}
	e.dragTravel = 0
	e.BeginDrag()
	return t
}

// Drag moves t by a screen delta. Shapes translate by delta/zoom;
// attribute markers orbit their owner keeping their distance from it.
// Deltas are ignored until the gesture begun by StartDrag has travelled
// more than DragThreshold. No undo step is recorded.
func (e *Editor) Drag(t DragTarget, screenDelta geometry.Vec) {
	e.dragTravel += screenDelta.Len()
	if e.dragTravel <= DragThreshold {
		return
	}
	d := screenDelta.Scale(1 / e.zoom)
	switch t.Kind {
	case scene.HitEntity:
		e.UpdateEntityQuiet(t.ID, func(en model.Entity) model.Entity {
			en.X += d.X
			en.Y += d.Y
			return en
		})
	case scene.HitRelationship:
		e.UpdateRelationshipQuiet(t.ID, func(r model.Relationship) model.Relationship {
			r.X += d.X
			r.Y += d.Y
			return r
		})
	case scene.HitNote:
		e.UpdateNoteQuiet(t.ID, func(n model.Note) model.Note {
			n.X += d.X
			n.Y += d.Y
			return n
		})
	case scene.HitAttribute:
		if t.Owner == scene.OwnerRelationship {
			e.UpdateRelationshipQuiet(t.OwnerID, func(r model.Relationship) model.Relationship {
				orbit(r.Bounds(), r.Attributes, t.ID, d)
				return r
			})
			return
		}
		e.UpdateEntityQuiet(t.OwnerID, func(en model.Entity) model.Entity {
			orbit(en.Bounds(), en.Attributes, t.ID, d)
			return en
		})
	}
}

// orbit moves the attribute id in attrs around owner by delta.
func orbit(owner geometry.Rect, attrs []model.Attribute, id string, delta geometry.Vec) {
	for i := range attrs {
		if attrs[i].ID != id {
			continue
		}
		off, set := attrs[i].Offset.Vec()
		v := geometry.OrbitReposition(owner, off, set, i, len(attrs), delta)
		attrs[i].Offset = model.At(v.X, v.Y)
		return
	}
}

// DeleteSelection deletes the selected entity or relationship.
func (e *Editor) DeleteSelection() {
	switch e.selection.Kind {
	case SelectionEntity:
		e.DeleteEntity(e.selection.ID)
	case SelectionRelationship:
		e.DeleteRelationship(e.selection.ID)
	}
}
