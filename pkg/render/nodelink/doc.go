// Package nodelink exports ER diagrams as Graphviz graphs in Chen notation.
//
// # Overview
//
// Where the raster package draws a diagram exactly as the user arranged
// it, this package hands the structure to Graphviz and lets it choose the
// layout. That is useful for documentation builds and for diagrams whose
// canvas positions were never tidied up.
//
// # Usage
//
// Convert a diagram to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Notation
//
// The [ToDOT] function produces an undirected graph:
//
//   - Entities are boxes; weak entities have a double border.
//   - Relationships are diamonds, linked to their participants by edges
//     labelled with the cardinality, e.g. "(1,N)".
//   - Attributes are ellipses linked to their owner. Key attributes are
//     underlined, multivalued attributes have a double border, derived
//     attributes a dashed one. Components of a composite attribute hang
//     off the composite's ellipse.
//
// Node names are prefixed by kind ("e:", "r:", "a:") so that an entity and
// a relationship sharing an id stay distinct.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
