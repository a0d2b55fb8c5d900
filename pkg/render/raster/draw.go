package raster

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/erdiagram/pkg/geometry"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/scene"
)

var (
	ink          = color.RGBA{0x21, 0x21, 0x21, 0xff}
	stemColor    = color.RGBA{0x21, 0x21, 0x21, 0x66}
	entityFill   = color.RGBA{0xe3, 0xf2, 0xfd, 0xff}
	entityLine   = color.RGBA{0x19, 0x76, 0xd2, 0xff}
	relFill      = color.RGBA{0xfc, 0xe4, 0xec, 0xff}
	relLine      = color.RGBA{0xc2, 0x18, 0x5b, 0xff}
	markerFill   = color.White
	keyColor     = color.RGBA{0xf5, 0x7c, 0x00, 0xff}
	compColor    = color.RGBA{0x7b, 0x1f, 0xa2, 0xff}
	noteFill     = color.RGBA{0xff, 0xf9, 0xc4, 0xff}
	noteLine     = color.RGBA{0xf9, 0xa8, 0x25, 0xff}
	labelBgColor = color.RGBA{0xff, 0xff, 0xff, 0xe6}
)

// painter maps diagram coordinates to pixels. gg does not scale glyphs
// with the transform matrix, so coordinates are mapped by hand and faces
// are loaded at the output size.
type painter struct {
	dc     *gg.Context
	origin geometry.Point
	scale  float64
	faces  faces
}

func newPainter(area geometry.Rect, scale float64) (*painter, error) {
	f, err := newFaces(scale)
	if err != nil {
		f.close()
		return nil, err
	}
	return &painter{
		dc:     newContext(area, scale),
		origin: geometry.Point{X: area.X, Y: area.Y},
		scale:  scale,
		faces:  f,
	}, nil
}

func (p *painter) close() { p.faces.close() }

func (p *painter) xy(pt geometry.Point) (float64, float64) {
	return (pt.X - p.origin.X) * p.scale, (pt.Y - p.origin.Y) * p.scale
}

func (p *painter) px(v float64) float64 { return v * p.scale }

func (p *painter) paint(s scene.Scene) {
	p.dc.SetColor(color.White)
	p.dc.Clear()

	for _, c := range s.Connectors {
		p.connector(c)
	}
	for _, e := range s.Entities {
		p.stems(e.Attributes)
	}
	for _, r := range s.Relationships {
		p.stems(r.Attributes)
	}
	for _, e := range s.Entities {
		p.entity(e)
	}
	for _, r := range s.Relationships {
		p.relationship(r)
	}
	for _, c := range s.Connectors {
		p.cardinality(c)
	}
	for _, e := range s.Entities {
		p.markers(e.Attributes)
	}
	for _, r := range s.Relationships {
		p.markers(r.Attributes)
	}
	for _, n := range s.Notes {
		p.note(n)
	}
}

func (p *painter) line(a, b geometry.Point, c color.Color, width float64) {
	x1, y1 := p.xy(a)
	x2, y2 := p.xy(b)
	p.dc.SetColor(c)
	p.dc.SetLineWidth(p.px(width))
	p.dc.DrawLine(x1, y1, x2, y2)
	p.dc.Stroke()
}

func (p *painter) rect(r geometry.Rect) {
	x, y := p.xy(geometry.Point{X: r.X, Y: r.Y})
	p.dc.DrawRectangle(x, y, p.px(r.Width), p.px(r.Height))
}

func (p *painter) diamond(r geometry.Rect) {
	c := r.Center()
	for i, pt := range []geometry.Point{
		{X: c.X, Y: r.Y},
		{X: r.Right(), Y: c.Y},
		{X: c.X, Y: r.Bottom()},
		{X: r.X, Y: c.Y},
	} {
		x, y := p.xy(pt)
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
	p.dc.ClosePath()
}

func (p *painter) fillStroke(fill, stroke color.Color, width float64) {
	p.dc.SetColor(fill)
	p.dc.FillPreserve()
	p.dc.SetColor(stroke)
	p.dc.SetLineWidth(p.px(width))
	p.dc.Stroke()
}

func (p *painter) centered(s string, at geometry.Point, c color.Color) {
	x, y := p.xy(at)
	p.dc.SetColor(c)
	p.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

func (p *painter) connector(c scene.Connector) {
	p.line(c.From, c.To, ink, 2)
}

func (p *painter) cardinality(c scene.Connector) {
	text := c.Cardinality.Label()
	if text == "" {
		return
	}
	p.dc.SetFontFace(p.faces.label)
	w, h := p.dc.MeasureString(text)
	x, y := p.xy(c.Label)
	p.dc.SetColor(labelBgColor)
	p.dc.DrawRoundedRectangle(x-w/2-p.px(4), y-h/2-p.px(3), w+p.px(8), h+p.px(6), p.px(3))
	p.dc.Fill()
	p.centered(text, c.Label, ink)
}

func (p *painter) entity(e scene.EntityShape) {
	p.rect(e.Box)
	p.fillStroke(entityFill, entityLine, 2)
	if e.Weak {
		p.rect(e.Box.Inset(-5))
		p.dc.SetColor(entityLine)
		p.dc.SetLineWidth(p.px(1.5))
		p.dc.Stroke()
	}
	p.dc.SetFontFace(p.faces.name)
	p.centered(e.Name, e.Box.Center(), ink)
}

func (p *painter) relationship(r scene.RelationshipShape) {
	p.diamond(r.Box)
	p.fillStroke(relFill, relLine, 2)
	p.dc.SetFontFace(p.faces.name)
	p.centered(r.Name, r.Box.Center(), ink)
}

func (p *painter) stems(ms []scene.Marker) {
	for _, m := range ms {
		p.line(m.LinkFrom, m.Center, stemColor, 1.5)
		for _, c := range m.Components {
			p.line(m.Center, c.Center, stemColor, 1.2)
		}
	}
}

func (p *painter) circle(center geometry.Point, radius float64) {
	x, y := p.xy(center)
	p.dc.DrawCircle(x, y, p.px(radius))
}

func (p *painter) markers(ms []scene.Marker) {
	for _, m := range ms {
		p.marker(m)
	}
}

func (p *painter) marker(m scene.Marker) {
	const r = scene.AttributeRadius
	stroke, width := color.Color(ink), 2.5
	switch {
	case m.Type == model.Composite:
		stroke = compColor
	case m.PrimaryKey || m.Type == model.Key:
		stroke, width = keyColor, 3.5
	}

	p.circle(m.Center, r)
	p.dc.SetColor(markerFill)
	p.dc.FillPreserve()
	p.dc.SetColor(stroke)
	p.dc.SetLineWidth(p.px(width))
	if m.Type == model.Derived {
		p.dc.SetDash(p.px(8), p.px(4))
	}
	p.dc.Stroke()
	p.dc.SetDash()

	if m.Type == model.Multivalued || m.Type == model.Composite {
		p.circle(m.Center, r-5)
		p.dc.SetColor(stroke)
		p.dc.SetLineWidth(p.px(2))
		p.dc.Stroke()
	}

	p.markerLabel(m, stroke)

	for _, c := range m.Components {
		p.circle(c.Center, scene.ComponentRadius)
		p.fillStroke(markerFill, compColor, 2)
		p.dc.SetFontFace(p.faces.label)
		x, y := p.xy(c.Center)
		p.dc.SetColor(compColor)
		p.dc.DrawStringAnchored(c.Name, x+p.px(scene.ComponentRadius+6), y, 0, 0.5)
	}
}

// markerLabel writes the attribute name right of the circle, underlined
// for keys, with the multiplicity of multivalued attributes below it.
func (p *painter) markerLabel(m scene.Marker, c color.Color) {
	if m.Type != model.Composite && !m.PrimaryKey && m.Type != model.Key {
		c = ink
	}
	p.dc.SetFontFace(p.faces.attr)
	x, y := p.xy(m.Center)
	x += p.px(scene.AttributeRadius + 10)
	w, h := p.dc.MeasureString(m.Name)

	p.dc.SetColor(labelBgColor)
	p.dc.DrawRoundedRectangle(x-p.px(5), y-h/2-p.px(2), w+p.px(10), h+p.px(4), p.px(4))
	p.dc.Fill()

	p.dc.SetColor(c)
	p.dc.DrawStringAnchored(m.Name, x, y, 0, 0.5)
	if m.PrimaryKey || m.Type == model.Key {
		uy := y + h/2 + p.px(1)
		p.dc.SetLineWidth(p.px(1.2))
		p.dc.DrawLine(x, uy, x+w, uy)
		p.dc.Stroke()
	}

	if m.Type == model.Multivalued && m.Multiplicity != "" {
		p.dc.SetFontFace(p.faces.label)
		p.dc.SetColor(ink)
		p.dc.DrawStringAnchored(m.Multiplicity, x, y+h+p.px(4), 0, 0.5)
	}
}

func (p *painter) note(n scene.NoteShape) {
	p.rect(n.Box)
	p.fillStroke(noteFill, noteLine, 1.5)

	const pad = 10.0
	p.dc.SetFontFace(p.faces.attr)
	x, y := p.xy(geometry.Point{X: n.Box.X + pad, Y: n.Box.Y + pad})
	maxW := p.px(n.Box.Width - 2*pad)
	lineH := p.dc.FontHeight() * 1.3
	bottom := y + p.px(n.Box.Height-2*pad)

	p.dc.SetColor(ink)
	for _, line := range p.dc.WordWrap(n.Text, maxW) {
		if y+lineH > bottom+0.5 {
			break
		}
		p.dc.DrawStringAnchored(line, x, y, 0, 1)
		y += lineH
	}
}
