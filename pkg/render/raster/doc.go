// Package raster draws ER diagrams as PNG images in Chen notation.
//
// # Usage
//
//	png, err := raster.RenderPNG(d, raster.Options{Scale: 2})
//
// or stream to a writer:
//
//	err := raster.WritePNG(d, f, raster.Options{})
//
// # Layout
//
// Nothing is laid out here. Positions come from [scene.Build], the same
// geometry the interactive editor hit-tests against, so an exported image
// matches what the user arranged on the canvas.
//
// The canvas covers [scene.Scene.Bounds] plus Padding (150 units by
// default) on every side and is never smaller than 800×600 units. Scale
// multiplies the pixel size; 2 produces a high-DPI image.
//
// # Notation
//
//   - Entities are rectangles; weak entities get a double border.
//   - Relationships are diamonds.
//   - Attributes are circles linked to their owner. Key attributes have a
//     thick border and an underlined name, multivalued attributes a double
//     circle, derived attributes a dashed circle. Composite attributes
//     fan out into smaller component circles.
//   - Connectors carry their cardinality label halfway between the
//     relationship and the entity.
//   - Notes are filled boxes with word-wrapped text.
//
// Text uses the Go Regular font from [fonts], so no system fonts are
// needed.
//
// [scene.Build]: github.com/matzehuels/erdiagram/pkg/scene.Build
// [scene.Scene.Bounds]: github.com/matzehuels/erdiagram/pkg/scene.Scene.Bounds
// [fonts]: github.com/matzehuels/erdiagram/pkg/fonts
package raster
