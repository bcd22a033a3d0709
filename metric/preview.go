package metric

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PreviewRenderer renders a static orthographic projection of the computed
// field: vertices as weighted dots, edge curves colored by kind, and the
// surface as a wireframe of theta rings and meridians. It consumes an
// engine snapshot only, never the live engine state.
type PreviewRenderer struct {
	Snapshot Snapshot
	Surface  *SurfaceMesh // optional; nil skips the wireframe

	Yaw, Pitch    float64           // view rotation in radians, applied before projection
	Scale         float64           // world units → canvas mm
	Padding       float64           // padding in world units
	LabelVertices bool              // draw vertex indices on the raster output
	Resolution    canvas.Resolution // PNG resolution
}

// NewPreviewRenderer creates a preview renderer with default view settings
func NewPreviewRenderer(snap Snapshot, surface *SurfaceMesh) *PreviewRenderer {
	return &PreviewRenderer{
		Snapshot:      snap,
		Surface:       surface,
		Yaw:           math.Pi / 6,
		Pitch:         math.Pi / 8,
		Scale:         10.0,
		Padding:       1.0,
		LabelVertices: true,
		Resolution:    canvas.DPI(150),
	}
}

var (
	quadraticColor = color.NRGBA{R: 41, G: 98, B: 255, A: 255}   // near edges
	mobiusColor    = color.NRGBA{R: 255, G: 111, B: 0, A: 255}   // far edges
	vertexColor    = color.NRGBA{R: 33, G: 33, B: 33, A: 255}    //
	surfaceColor   = color.NRGBA{R: 180, G: 180, B: 180, A: 255} // wireframe
)

// nrgbaToRGBA converts color.NRGBA to color.RGBA by premultiplying alpha.
// The canvas library expects premultiplied RGBA; handing it a straight-alpha
// color with R/G/B above A produces out-of-gamut CSS color values.
func nrgbaToRGBA(c color.NRGBA) color.RGBA {
	if c.A == 0 {
		return color.RGBA{}
	}
	if c.A == 255 {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

// project rotates a world point by yaw (around the world Y axis) then pitch
// (around X) and drops the depth axis.
func (r *PreviewRenderer) project(v Vec3) orb.Point {
	cy, sy := math.Cos(r.Yaw), math.Sin(r.Yaw)
	x := v.X*cy + v.Z*sy
	z := -v.X*sy + v.Z*cy

	cp, sp := math.Cos(r.Pitch), math.Sin(r.Pitch)
	y := v.Y*cp - z*sp

	return orb.Point{x, y}
}

// curveLine projects one curve to a 2D line string
func (r *PreviewRenderer) curveLine(c Curve) orb.LineString {
	ls := make(orb.LineString, len(c))
	for i, pt := range c {
		ls[i] = r.project(pt)
	}
	return ls
}

// surfaceLines projects the surface grid into wireframe line strings:
// every theta ring, and a meridian every eighth of the phi range.
func (r *PreviewRenderer) surfaceLines() []orb.LineString {
	if r.Surface == nil || len(r.Surface.Positions) == 0 {
		return nil
	}
	cols := r.Surface.PhiRes + 1
	rows := r.Surface.ThetaRes + 1

	var lines []orb.LineString
	for i := 0; i < rows; i++ {
		ring := make(orb.LineString, cols)
		for j := 0; j < cols; j++ {
			ring[j] = r.project(r.Surface.Positions[i*cols+j])
		}
		lines = append(lines, ring)
	}

	meridianStep := r.Surface.PhiRes / 8
	if meridianStep < 1 {
		meridianStep = 1
	}
	for j := 0; j < cols; j += meridianStep {
		meridian := make(orb.LineString, rows)
		for i := 0; i < rows; i++ {
			meridian[i] = r.project(r.Surface.Positions[i*cols+j])
		}
		lines = append(lines, meridian)
	}
	return lines
}

// worldBound accumulates the 2D bound of everything that will be drawn
func (r *PreviewRenderer) worldBound() orb.Bound {
	bound := orb.Bound{Min: orb.Point{math.MaxFloat64, math.MaxFloat64}, Max: orb.Point{-math.MaxFloat64, -math.MaxFloat64}}
	extend := func(p orb.Point) {
		bound = bound.Extend(p)
	}

	for _, v := range r.Snapshot.Vertices {
		extend(r.project(v.Position))
	}
	for _, c := range r.Snapshot.Curves {
		for _, pt := range c {
			extend(r.project(pt))
		}
	}
	for _, ls := range r.surfaceLines() {
		for _, pt := range ls {
			extend(pt)
		}
	}

	if bound.Min[0] > bound.Max[0] {
		// Nothing to draw; use a unit bound so the canvas stays valid.
		return orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{1, 1}}
	}
	return bound
}

// canvasRenderer is the subset both the svg and rasterizer backends implement
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// canvasSize returns the bound plus the drawing dimensions in canvas mm
func (r *PreviewRenderer) canvasSize() (orb.Bound, float64, float64) {
	bound := r.worldBound()
	width := (bound.Max[0] - bound.Min[0] + 2*r.Padding) * r.Scale
	height := (bound.Max[1] - bound.Min[1] + 2*r.Padding) * r.Scale
	return bound, width, height
}

// RenderToSVG writes the preview as an SVG document
func (r *PreviewRenderer) RenderToSVG(w io.Writer) error {
	bound, width, height := r.canvasSize()

	svgRenderer := svg.New(w, width, height, nil)
	r.renderToCanvas(svgRenderer, bound, width, height)
	if err := svgRenderer.Close(); err != nil {
		return fmt.Errorf("closing SVG renderer: %w", err)
	}
	return nil
}

// RenderToPNG writes the preview as a PNG image, with optional vertex
// index labels drawn directly on the raster.
func (r *PreviewRenderer) RenderToPNG(w io.Writer) error {
	bound, width, height := r.canvasSize()

	rast := rasterizer.New(width, height, r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast, bound, width, height)

	if r.LabelVertices {
		r.drawLabels(rast, bound, height)
	}

	return png.Encode(w, rast)
}

// renderToCanvas draws the shared vector content for both backends
func (r *PreviewRenderer) renderToCanvas(renderer canvasRenderer, bound orb.Bound, width, height float64) {
	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	renderer.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	toCanvas := func(p orb.Point) (float64, float64) {
		return (p[0] - bound.Min[0] + r.Padding) * r.Scale, (p[1] - bound.Min[1] + r.Padding) * r.Scale
	}
	strokePath := func(ls orb.LineString, style canvas.Style) {
		if len(ls) < 2 {
			return
		}
		cp := &canvas.Path{}
		for i, pt := range ls {
			cx, cy := toCanvas(pt)
			if i == 0 {
				cp.MoveTo(cx, cy)
			} else {
				cp.LineTo(cx, cy)
			}
		}
		renderer.RenderPath(cp, style, canvas.Identity)
	}

	// Surface wireframe first, underneath everything else.
	surfaceStyle := canvas.DefaultStyle
	surfaceStyle.Fill = canvas.Paint{Color: canvas.Transparent}
	surfaceStyle.Stroke = canvas.Paint{Color: nrgbaToRGBA(surfaceColor)}
	surfaceStyle.StrokeWidth = 0.2
	for _, ls := range r.surfaceLines() {
		strokePath(ls, surfaceStyle)
	}

	// Edge curves, colored by kind.
	opacity := clamp(r.Snapshot.Params.LineOpacity, 0, 1)
	for k, c := range r.Snapshot.Curves {
		edgeColor := quadraticColor
		if r.Snapshot.Edges[k].Kind == EdgeMobius {
			edgeColor = mobiusColor
		}
		edgeColor.A = uint8(opacity * 255)

		curveStyle := canvas.DefaultStyle
		curveStyle.Fill = canvas.Paint{Color: canvas.Transparent}
		curveStyle.Stroke = canvas.Paint{Color: nrgbaToRGBA(edgeColor)}
		curveStyle.StrokeWidth = 0.5
		strokePath(r.curveLine(c), curveStyle)
	}

	// Vertices on top, sized by weight.
	pointStyle := canvas.DefaultStyle
	pointStyle.Fill = canvas.Paint{Color: nrgbaToRGBA(vertexColor)}
	pointStyle.Stroke = canvas.Paint{Color: canvas.Transparent}
	for _, v := range r.Snapshot.Vertices {
		cx, cy := toCanvas(r.project(v.Position))
		radius := math.Max(r.Snapshot.Params.PointSize*v.Weight*r.Scale, 0.4)
		dot := canvas.Circle(radius).Translate(cx, cy)
		renderer.RenderPath(dot, pointStyle, canvas.Identity)
	}
}

// drawLabels writes vertex indices next to each projected vertex on the
// raster image. Canvas coordinates are y-up; image pixels are y-down.
func (r *PreviewRenderer) drawLabels(img draw.Image, bound orb.Bound, height float64) {
	dpmm := r.Resolution.DPMM()
	for i, v := range r.Snapshot.Vertices {
		p := r.project(v.Position)
		cx := (p[0] - bound.Min[0] + r.Padding) * r.Scale
		cy := (p[1] - bound.Min[1] + r.Padding) * r.Scale

		px := int(cx*dpmm) + 4
		py := int((height - cy) * dpmm)
		drawText(img, px, py, fmt.Sprintf("%d", i), color.RGBA{0, 0, 0, 255})
	}
}

// drawText renders text onto an image at the specified position
func drawText(img draw.Image, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
