// Package pkg provides the core libraries for erdiagram, an editor for
// entity-relationship diagrams in Chen notation.
//
// # Overview
//
// A diagram holds entities (rectangles), relationships (diamonds) that
// connect entities with a cardinality on each connection, attributes drawn
// as markers around their owner, and free-floating notes. The pkg directory
// is organized into three areas:
//
//  1. Domain - [model], [geometry], [scene], [transform], [editor]
//  2. Edges - [io], [store], [render]
//  3. Support - [cache], [config], [errors], [fonts], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	JSON document / store
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [editor] package (mutations, selection, undo/redo, view)
//	         ↓
//	    [scene] package (resolved geometry + hit testing)
//	         ↓
//	    [render] packages (PNG canvas, Graphviz DOT/SVG)
//
// # Quick Start
//
// Build a diagram and convert its many-to-many relationship:
//
//	import (
//	    "github.com/matzehuels/erdiagram/pkg/editor"
//	    "github.com/matzehuels/erdiagram/pkg/geometry"
//	    "github.com/matzehuels/erdiagram/pkg/io"
//	    "github.com/matzehuels/erdiagram/pkg/model"
//	)
//
//	ed := editor.New()
//	student := ed.AddEntity(geometry.Point{X: 0, Y: 0}, "Student")
//	course := ed.AddEntity(geometry.Point{X: 300, Y: 0}, "Course")
//	enrolls := ed.AddRelationship(geometry.Point{X: 150, Y: 100}, "Enrolls")
//	ed.AddConnection(enrolls, student, model.OneMany)
//	ed.AddConnection(enrolls, course, model.Many)
//	ed.ConvertToAssociativeEntity(enrolls)
//
//	err := io.ExportJSON(ed.Diagram(), "school.json")
//
// # Main Packages
//
// ## Domain
//
// [model] - Diagram value types, default sizes, cardinalities, attribute
// types and document validation.
//
// [geometry] - Points, rectangles and the rectangle/diamond boundary and
// attribute slot math shared by rendering and hit testing.
//
// [scene] - The resolved geometry of a diagram: shape boxes, attribute
// markers, connectors with cardinality labels, and hit testing.
//
// [transform] - The associative-entity transform.
//
// [editor] - The editing engine. One Editor owns a diagram with its
// selection, tool mode, view transform and bounded undo history.
//
// ## Edges
//
// [io] - JSON import and export.
//
// [store] - Shared diagram storage in a directory, Redis or MongoDB.
//
// [render] - PNG rasterization of the canvas and Graphviz export.
//
// ## Support
//
// [cache] - Content-addressed cache for rendered artifacts.
//
// [config] - TOML configuration.
//
// [errors] - Structured error codes used at the edges.
//
// [observability] - Hooks for metrics and tracing.
//
// [model]: github.com/matzehuels/erdiagram/pkg/model
// [geometry]: github.com/matzehuels/erdiagram/pkg/geometry
// [scene]: github.com/matzehuels/erdiagram/pkg/scene
// [transform]: github.com/matzehuels/erdiagram/pkg/transform
// [editor]: github.com/matzehuels/erdiagram/pkg/editor
// [io]: github.com/matzehuels/erdiagram/pkg/io
// [store]: github.com/matzehuels/erdiagram/pkg/store
// [render]: github.com/matzehuels/erdiagram/pkg/render
// [cache]: github.com/matzehuels/erdiagram/pkg/cache
// [config]: github.com/matzehuels/erdiagram/pkg/config
// [errors]: github.com/matzehuels/erdiagram/pkg/errors
// [fonts]: github.com/matzehuels/erdiagram/pkg/fonts
// [observability]: github.com/matzehuels/erdiagram/pkg/observability
// [buildinfo]: github.com/matzehuels/erdiagram/pkg/buildinfo
package pkg
