// Package render groups the diagram exporters.
//
// # Overview
//
// Two renderers share the geometry and the model:
//
//   - [raster] draws the diagram as arranged on the canvas and encodes a
//     PNG, using positions from the scene package.
//   - [nodelink] converts the diagram to a Graphviz graph in Chen notation
//     and renders SVG, letting Graphviz choose the layout.
//
//	png, err := raster.RenderPNG(d, raster.Options{Scale: 2})
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// Both report to the render hooks of the observability package.
//
// [raster]: github.com/matzehuels/erdiagram/pkg/render/raster
// [nodelink]: github.com/matzehuels/erdiagram/pkg/render/nodelink
package render
