package io

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/erdiagram/pkg/errors"
	"github.com/matzehuels/erdiagram/pkg/model"
)

func school() model.Diagram {
	student := model.NewEntity("student", "Student", 0, 0)
	student.Documentation = "enrolled people"
	student.Attributes = []model.Attribute{
		model.NewAttribute("a1", "id", model.Key),
		{ID: "a2", Name: "address", Type: model.Composite, Offset: model.At(-40, 90), Components: []model.Attribute{
			model.NewAttribute("c1", "street", model.Normal),
			model.NewAttribute("c2", "city", model.Normal),
		}},
		{ID: "a3", Name: "phone", Type: model.Multivalued, Multiplicity: "1..3"},
	}
	course := model.NewEntity("course", "Course", 300, 0)
	course.IsWeak = true

	enrolls := model.NewRelationship("enrolls", "Enrolls", 150, 100)
	enrolls.Attributes = []model.Attribute{model.NewAttribute("a4", "grade", model.Derived)}
	enrolls.Connections = []model.Connection{
		{EntityID: "student", Cardinality: model.OneMany},
		{EntityID: "course", Cardinality: model.ZeroMany},
	}

	d := model.New("School")
	d.Documentation = "v1"
	d.Entities = []model.Entity{student, course}
	d.Relationships = []model.Relationship{enrolls}
	d.Notes = []model.Note{model.NewNote("n1", "check cardinalities", 600, 0)}
	return d
}

func TestRoundTrip(t *testing.T) {
	d := school()
	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Equal(d) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, d)
	}
}

func TestWriteJSON_FieldNames(t *testing.T) {
	data, err := Marshal(school())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	for _, key := range []string{
		`"name": "School"`, `"entities"`, `"relationships"`, `"notes"`,
		`"isWeak": true`, `"isPrimaryKey": true`, `"entityId": "student"`,
		`"cardinality": "ONE_MANY"`, `"type": "MULTIVALUED"`, `"multiplicity": "1..3"`,
		`"components"`, `"width": 140`, `"text": "check cardinalities"`,
	} {
		if !strings.Contains(s, key) {
			t.Errorf("output missing %s", key)
		}
	}
	if !strings.Contains(s, "\n  \"entities\"") {
		t.Error("output should be indented with two spaces")
	}
}

func TestWriteJSON_NoNulls(t *testing.T) {
	data, err := Marshal(school())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	if strings.Contains(s, "null") {
		t.Errorf("output contains null:\n%s", s)
	}
	if !strings.Contains(s, `"multiplicity": ""`) {
		t.Error(`attributes without a multiplicity should be written as ""`)
	}

	// documents written with a null multiplicity still load
	const doc = `{"name": "x", "entities": [{"id": "e", "name": "E", "x": 0, "y": 0,
		"attributes": [{"id": "a", "name": "id", "type": "KEY", "multiplicity": null}]}],
		"relationships": [], "notes": [], "documentation": ""}`
	d, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m := d.Entities[0].Attributes[0].Multiplicity; m != "" {
		t.Errorf("multiplicity = %q, want empty", m)
	}
}

func TestReadJSON_Defaults(t *testing.T) {
	const doc = `{
	  "name": "Legacy",
	  "theme": "dark",
	  "entities": [{"id": "e", "name": "E", "x": 1, "y": 2,
	    "attributes": [{"id": "a", "name": "n", "type": "NORMAL", "x": 0, "y": 0, "isPrimaryKey": false}]}],
	  "relationships": [{"id": "r", "name": "R", "x": 3, "y": 4}],
	  "notes": [{"id": "n", "text": "t", "x": 5, "y": 6}]
	}`
	d, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if e := d.Entities[0]; e.Width != model.EntityWidth || e.Height != model.EntityHeight {
		t.Errorf("entity size = %vx%v, want defaults", e.Width, e.Height)
	}
	if r := d.Relationships[0]; r.Width != model.RelationshipWidth || r.Height != model.RelationshipHeight {
		t.Errorf("relationship size = %vx%v, want defaults", r.Width, r.Height)
	}
	if n := d.Notes[0]; n.Width != model.NoteWidth || n.Height != model.NoteHeight {
		t.Errorf("note size = %vx%v, want defaults", n.Width, n.Height)
	}
	if d.Entities[0].Attributes[0].Offset.Set {
		t.Error("a (0, 0) attribute offset should decode as unset")
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		code     errors.Code
		sentinel error
	}{
		{"malformed", `{"name": `, errors.ErrCodeInvalidFormat, nil},
		{"wrong type", `{"entities": 3}`, errors.ErrCodeInvalidFormat, nil},
		{"duplicate entity", `{"entities": [{"id": "a"}, {"id": "a"}]}`, errors.ErrCodeInvalidDiagram, model.ErrDuplicateEntityID},
		{"unknown cardinality", `{"relationships": [{"id": "r", "connections": [{"entityId": "a", "cardinality": "SOME"}]}]}`,
			errors.ErrCodeInvalidDiagram, model.ErrUnknownCardinality},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want code %v", err, tt.code)
			}
			if tt.sentinel != nil && !stderrors.Is(err, tt.sentinel) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "school.json")
	if err := ExportJSON(school(), path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if !got.Equal(school()) {
		t.Error("ImportJSON() did not return the exported diagram")
	}
}

func TestImportJSON_Missing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("ImportJSON() error should wrap os.ErrNotExist")
	}
}

func TestExportJSON_Unwritable(t *testing.T) {
	err := ExportJSON(school(), filepath.Join(t.TempDir(), "missing", "dir", "x.json"))
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("ExportJSON() error = %v, want %v", err, errors.ErrCodeIO)
	}
}
