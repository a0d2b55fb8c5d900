package editor

import (
	"math"

	"github.com/matzehuels/erdiagram/pkg/geometry"
)

// Zoom limits and the factor applied by ZoomIn and ZoomOut.
const (
	MinZoom    = 0.25
	MaxZoom    = 3.0
	ZoomFactor = 1.2
)

// Zoom returns the canvas scale.
func (e *Editor) Zoom() float64 { return e.zoom }

// Pan returns the screen offset of the canvas origin.
func (e *Editor) Pan() geometry.Vec { return e.pan }

// ZoomIn scales the canvas up by ZoomFactor, up to MaxZoom.
func (e *Editor) ZoomIn() { e.SetZoom(e.zoom * ZoomFactor) }

// ZoomOut scales the canvas down by ZoomFactor, down to MinZoom.
func (e *Editor) ZoomOut() { e.SetZoom(e.zoom / ZoomFactor) }

// SetZoom sets the canvas scale, clamped to [MinZoom, MaxZoom].
func (e *Editor) SetZoom(z float64) {
	z = math.Max(MinZoom, math.Min(MaxZoom, z))
	if z == e.zoom {
		return
	}
	e.zoom = z
	e.notify(ChangeView)
}

// PanBy moves the canvas by delta screen units.
func (e *Editor) PanBy(delta geometry.Vec) {
	if delta.IsZero() {
		return
	}
	e.pan = geometry.Vec{X: e.pan.X + delta.X, Y: e.pan.Y + delta.Y}
	e.notify(ChangeView)
}

// ResetView restores zoom 1 and no pan.
func (e *Editor) ResetView() {
	e.zoom = 1
	e.pan = geometry.Vec{}
	e.notify(ChangeView)
}

// ScreenToCanvas maps a screen point to canvas coordinates.
func (e *Editor) ScreenToCanvas(p geometry.Point) geometry.Point {
	return geometry.Point{X: (p.X - e.pan.X) / e.zoom, Y: (p.Y - e.pan.Y) / e.zoom}
}
