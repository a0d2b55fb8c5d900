package io

import "github.com/matzehuels/erdiagram/pkg/model"

type document struct {
	Name          string         `json:"name"`
	Entities      []entity       `json:"entities"`
	Relationships []relationship `json:"relationships"`
	Notes         []note         `json:"notes"`
	Documentation string         `json:"documentation"`
}

type entity struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Width         *float64    `json:"width"`
	Height        *float64    `json:"height"`
	Attributes    []attribute `json:"attributes"`
	Documentation string      `json:"documentation"`
	IsWeak        bool        `json:"isWeak"`
}

type relationship struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	X             float64      `json:"x"`
	Y             float64      `json:"y"`
	Width         *float64     `json:"width"`
	Height        *float64     `json:"height"`
	Attributes    []attribute  `json:"attributes"`
	Connections   []connection `json:"connections"`
	Documentation string       `json:"documentation"`
}

type connection struct {
	EntityID    string            `json:"entityId"`
	Cardinality model.Cardinality `json:"cardinality"`
}

type attribute struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Type         model.AttributeType `json:"type"`
	X            float64             `json:"x"`
	Y            float64             `json:"y"`
	IsPrimaryKey bool                `json:"isPrimaryKey"`
	Components   []attribute         `json:"components"`
	Multiplicity string              `json:"multiplicity"`
}

type note struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

func ptr[T any](v T) *T { return &v }

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func fromModel(d model.Diagram) document {
	doc := document{
		Name:          d.Name,
		Entities:      make([]entity, len(d.Entities)),
		Relationships: make([]relationship, len(d.Relationships)),
		Notes:         make([]note, len(d.Notes)),
		Documentation: d.Documentation,
	}
	for i, e := range d.Entities {
		doc.Entities[i] = entity{
			ID: e.ID, Name: e.Name, X: e.X, Y: e.Y,
			Width: ptr(e.Width), Height: ptr(e.Height),
			Attributes:    attributesFromModel(e.Attributes),
			Documentation: e.Documentation,
			IsWeak:        e.IsWeak,
		}
	}
	for i, r := range d.Relationships {
		conns := make([]connection, len(r.Connections))
		for j, c := range r.Connections {
			conns[j] = connection{EntityID: c.EntityID, Cardinality: c.Cardinality}
		}
		doc.Relationships[i] = relationship{
			ID: r.ID, Name: r.Name, X: r.X, Y: r.Y,
			Width: ptr(r.Width), Height: ptr(r.Height),
			Attributes:    attributesFromModel(r.Attributes),
			Connections:   conns,
			Documentation: r.Documentation,
		}
	}
	for i, n := range d.Notes {
		doc.Notes[i] = note{ID: n.ID, Text: n.Text, X: n.X, Y: n.Y, Width: ptr(n.Width), Height: ptr(n.Height)}
	}
	return doc
}

func attributesFromModel(attrs []model.Attribute) []attribute {
	out := make([]attribute, len(attrs))
	for i, a := range attrs {
		out[i] = attribute{
			ID: a.ID, Name: a.Name, Type: a.Type,
			X: a.Offset.X, Y: a.Offset.Y,
			IsPrimaryKey: a.IsPrimaryKey,
			Components:   attributesFromModel(a.Components),
			Multiplicity: a.Multiplicity,
		}
		if !a.Offset.Set {
			// An unset offset is written as (0, 0).
			out[i].X, out[i].Y = 0, 0
		}
	}
	return out
}

func (doc document) toModel() model.Diagram {
	d := model.Diagram{Name: doc.Name, Documentation: doc.Documentation}
	if d.Name == "" {
		d.Name = model.DefaultDiagramName
	}
	for _, e := range doc.Entities {
		d.Entities = append(d.Entities, model.Entity{
			ID: e.ID, Name: e.Name, X: e.X, Y: e.Y,
			Width:         orDefault(e.Width, model.EntityWidth),
			Height:        orDefault(e.Height, model.EntityHeight),
			Attributes:    attributesToModel(e.Attributes),
			Documentation: e.Documentation,
			IsWeak:        e.IsWeak,
		})
	}
	for _, r := range doc.Relationships {
		rel := model.Relationship{
			ID: r.ID, Name: r.Name, X: r.X, Y: r.Y,
			Width:         orDefault(r.Width, model.RelationshipWidth),
			Height:        orDefault(r.Height, model.RelationshipHeight),
			Attributes:    attributesToModel(r.Attributes),
			Documentation: r.Documentation,
		}
		for _, c := range r.Connections {
			rel.Connections = append(rel.Connections, model.Connection{EntityID: c.EntityID, Cardinality: c.Cardinality})
		}
		d.Relationships = append(d.Relationships, rel)
	}
	for _, n := range doc.Notes {
		d.Notes = append(d.Notes, model.Note{
			ID: n.ID, Text: n.Text, X: n.X, Y: n.Y,
			Width:  orDefault(n.Width, model.NoteWidth),
			Height: orDefault(n.Height, model.NoteHeight),
		})
	}
	return d
}

func attributesToModel(attrs []attribute) []model.Attribute {
	var out []model.Attribute
	for _, a := range attrs {
		ma := model.Attribute{
			ID: a.ID, Name: a.Name, Type: a.Type,
			IsPrimaryKey: a.IsPrimaryKey,
			Components:   attributesToModel(a.Components),
			Multiplicity: a.Multiplicity,
		}
		if a.Type == "" {
			ma.Type = model.Normal
		}
		// (0, 0) is indistinguishable from "no offset" in the document.
		if a.X != 0 || a.Y != 0 {
			ma.Offset = model.At(a.X, a.Y)
		}
		out = append(out, ma)
	}
	return out
}
