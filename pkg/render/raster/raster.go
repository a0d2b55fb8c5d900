package raster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/erdiagram/pkg/fonts"
	"github.com/matzehuels/erdiagram/pkg/geometry"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/observability"
	"github.com/matzehuels/erdiagram/pkg/scene"
)

// Canvas defaults, in diagram units.
const (
	DefaultPadding = 150.0
	MinWidth       = 800.0
	MinHeight      = 600.0
)

// Options configures PNG rendering.
type Options struct {
	// Scale multiplies the pixel size. Zero means 1.
	Scale float64
	// Padding is added around the diagram bounds. Zero means DefaultPadding.
	Padding float64
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	return o
}

// Canvas returns the diagram-space rectangle that a render of s covers.
func Canvas(s scene.Scene, opts Options) geometry.Rect {
	opts = opts.withDefaults()
	b, ok := s.Bounds()
	if !ok {
		return geometry.Rect{Width: MinWidth, Height: MinHeight}
	}
	b = b.Inset(opts.Padding)
	b.Width = math.Max(b.Width, MinWidth)
	b.Height = math.Max(b.Height, MinHeight)
	return b
}

// RenderPNG draws d and returns the encoded PNG.
func RenderPNG(d model.Diagram, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(d, &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG draws d and writes the encoded PNG to w.
func WritePNG(d model.Diagram, w io.Writer, opts Options) error {
	ctx := context.Background()
	start := time.Now()
	elements := len(d.Entities) + len(d.Relationships) + len(d.Notes)
	observability.Render().OnRenderStart(ctx, "png", elements)

	cw := &countingWriter{w: w}
	err := writePNG(d, cw, opts.withDefaults())
	observability.Render().OnRenderComplete(ctx, "png", cw.n, time.Since(start), err)
	return err
}

func writePNG(d model.Diagram, w io.Writer, opts Options) error {
	s := scene.Build(d)
	area := Canvas(s, opts)

	p, err := newPainter(area, opts.Scale)
	if err != nil {
		return err
	}
	defer p.close()

	p.paint(s)
	if err := p.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += n
	return n, err
}

// Font sizes in diagram units.
const (
	nameSize  = 15.0
	attrSize  = 13.0
	labelSize = 11.0
)

// faces holds the font faces at the output scale.
type faces struct {
	name, attr, label font.Face
}

func newFaces(scale float64) (faces, error) {
	var f faces
	var err error
	if f.name, err = fonts.Face(nameSize * scale); err != nil {
		return f, fmt.Errorf("load font: %w", err)
	}
	if f.attr, err = fonts.Face(attrSize * scale); err != nil {
		return f, fmt.Errorf("load font: %w", err)
	}
	if f.label, err = fonts.Face(labelSize * scale); err != nil {
		return f, fmt.Errorf("load font: %w", err)
	}
	return f, nil
}

func (f faces) close() {
	for _, face := range []font.Face{f.name, f.attr, f.label} {
		if face != nil {
			face.Close()
		}
	}
}

// newContext allocates the pixel canvas for area at scale.
func newContext(area geometry.Rect, scale float64) *gg.Context {
	w := int(math.Ceil(area.Width * scale))
	h := int(math.Ceil(area.Height * scale))
	return gg.NewContext(w, h)
}
