package scene

import (
	"testing"

	"github.com/matzehuels/erdiagram/pkg/geometry"
	"github.com/matzehuels/erdiagram/pkg/model"
)

func testDiagram() model.Diagram {
	person := model.NewEntity("e1", "Person", 0, 0)
	person.Attributes = []model.Attribute{
		{ID: "a1", Name: "address", Type: model.Composite, Components: []model.Attribute{
			model.NewAttribute("c1", "street", model.Normal),
			model.NewAttribute("c2", "city", model.Normal),
		}},
	}
	car := model.NewEntity("e2", "Car", 300, 125)
	owns := model.NewRelationship("r1", "Owns", 150, 100)
	owns.Connections = []model.Connection{
		{EntityID: "e2", Cardinality: model.Many},
		{EntityID: "gone", Cardinality: model.One},
	}

	d := model.New("test")
	d.Entities = []model.Entity{person, car}
	d.Relationships = []model.Relationship{owns}
	d.Notes = []model.Note{model.NewNote("n1", "todo", 1000, 1000)}
	return d
}

func TestBuild_Markers(t *testing.T) {
	s := Build(testDiagram())

	if len(s.Entities) != 2 || len(s.Relationships) != 1 || len(s.Notes) != 1 {
		t.Fatalf("Build() shapes = %d/%d/%d, want 2/1/1", len(s.Entities), len(s.Relationships), len(s.Notes))
	}

	m := s.Entities[0].Attributes[0]
	if m.Center != (geometry.Point{X: 200, Y: 35}) {
		t.Errorf("marker center = %v, want (200, 35)", m.Center)
	}
	if m.LinkFrom != (geometry.Point{X: 140, Y: 35}) {
		t.Errorf("marker LinkFrom = %v, want (140, 35)", m.LinkFrom)
	}
	if m.OwnerID != "e1" || m.Owner != OwnerEntity {
		t.Errorf("marker owner = %s/%v, want e1/entity", m.OwnerID, m.Owner)
	}

	want := []geometry.Point{{X: 260, Y: 15}, {X: 260, Y: 55}}
	if len(m.Components) != len(want) {
		t.Fatalf("components = %d, want %d", len(m.Components), len(want))
	}
	for i, c := range m.Components {
		if c.Center != want[i] {
			t.Errorf("component %d center = %v, want %v", i, c.Center, want[i])
		}
	}
}

func TestBuild_OffsetOverride(t *testing.T) {
	d := testDiagram()
	d.Entities[0].Attributes[0].Offset = model.At(0, -100)

	m := Build(d).Entities[0].Attributes[0]
	if m.Center != (geometry.Point{X: 70, Y: -65}) {
		t.Errorf("marker center = %v, want (70, -65)", m.Center)
	}
}

func TestBuild_Connectors(t *testing.T) {
	s := Build(testDiagram())

	if len(s.Connectors) != 1 {
		t.Fatalf("connectors = %d, want 1 (dangling target skipped)", len(s.Connectors))
	}
	c := s.Connectors[0]
	if c.From != (geometry.Point{X: 270, Y: 160}) {
		t.Errorf("From = %v, want (270, 160)", c.From)
	}
	if c.To != (geometry.Point{X: 300, Y: 160}) {
		t.Errorf("To = %v, want (300, 160)", c.To)
	}
	if c.Label != (geometry.Point{X: 290, Y: 160}) {
		t.Errorf("Label = %v, want (290, 160)", c.Label)
	}
	if c.Cardinality != model.Many {
		t.Errorf("Cardinality = %v, want %v", c.Cardinality, model.Many)
	}
}

func TestBounds(t *testing.T) {
	if _, ok := Build(model.New("")).Bounds(); ok {
		t.Error("empty scene reported bounds")
	}

	d := model.New("")
	e := model.NewEntity("e", "E", 0, 0)
	e.Attributes = []model.Attribute{model.NewAttribute("a", "id", model.Key)}
	d.Entities = []model.Entity{e}

	got, ok := Build(d).Bounds()
	want := geometry.Rect{X: 0, Y: 0, Width: 220, Height: 70}
	if !ok || got != want {
		t.Errorf("Bounds() = %v, %v; want %v, true", got, ok, want)
	}
}

func TestHitTest(t *testing.T) {
	s := Build(testDiagram())

	tests := []struct {
		name string
		p    geometry.Point
		kind HitKind
		id   string
	}{
		{"entity edge", geometry.Point{X: 140, Y: 35}, HitEntity, "e1"},
		{"relationship center", geometry.Point{X: 210, Y: 160}, HitRelationship, "r1"},
		{"diamond corner", geometry.Point{X: 150, Y: 100}, HitNone, ""},
		{"diamond over entity", geometry.Point{X: 305, Y: 160}, HitEntity, "e2"},
		{"note", geometry.Point{X: 1100, Y: 1100}, HitNote, "n1"},
		{"empty", geometry.Point{X: -500, Y: -500}, HitNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := s.HitTest(tt.p)
			if h.Kind != tt.kind || h.ID != tt.id {
				t.Errorf("HitTest(%v) = %v/%q, want %v/%q", tt.p, h.Kind, h.ID, tt.kind, tt.id)
			}
		})
	}
}

func TestHitTest_RelationshipWins(t *testing.T) {
	d := model.New("")
	d.Entities = []model.Entity{model.NewEntity("e", "E", 0, 0)}
	d.Relationships = []model.Relationship{model.NewRelationship("r", "R", 0, 0)}

	if h := Build(d).HitTest(geometry.Point{X: 60, Y: 60}); h.Kind != HitRelationship {
		t.Errorf("HitTest() = %v, want relationship", h.Kind)
	}
}

func TestHitAttribute(t *testing.T) {
	s := Build(testDiagram())

	h, ok := s.HitAttribute(geometry.Point{X: 200, Y: 60}, AttributeHitRadius)
	if !ok || h.ID != "a1" || h.OwnerID != "e1" {
		t.Errorf("HitAttribute() = %+v, %v; want a1 on e1", h, ok)
	}
	if _, ok := s.HitAttribute(geometry.Point{X: 200, Y: 70}, AttributeHitRadius); ok {
		t.Error("HitAttribute() outside radius reported a hit")
	}
}
