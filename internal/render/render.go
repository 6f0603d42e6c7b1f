// Package render rasterizes annotation models onto RGBA images. All
// drawing goes through integer pixel primitives; shapes carry document
// coordinates and a View maps them to pixels, so the same renderer serves
// the interactive overlay and flattened export.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/pagemark/internal/engine"
	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/wrap"
)

// Renderer draws models, drafts and selection chrome.
type Renderer struct {
	fonts *wrap.FaceMeasurer
	logos map[string]image.Image
}

// Option modifies a Renderer during creation.
type Option func(*Renderer)

// WithFonts sets the font backend. It should be the same measurer the
// engine wraps text with, so painted line breaks match the hit geometry.
func WithFonts(m *wrap.FaceMeasurer) Option { return func(r *Renderer) { r.fonts = m } }

// WithLogos registers named logo images referenced by stamps.
func WithLogos(logos map[string]image.Image) Option {
	return func(r *Renderer) { r.logos = logos }
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, o := range opts {
		o(r)
	}
	if r.fonts == nil {
		r.fonts = wrap.Default()
	}
	return r
}

// DrawPage paints the page raster scaled into place.
func (rd *Renderer) DrawPage(dst *image.RGBA, page image.Image, v View, pageSize geom.Size) {
	if page == nil {
		return
	}
	target := v.Rect(geom.R(0, 0, pageSize.W, pageSize.H))
	xdraw.ApproxBiLinear.Scale(dst, target, page, page.Bounds(), draw.Over, nil)
}

// Draw paints every annotation in the model. Within a kind, creation order
// is paint order; kinds layer in the fixed order freehand strokes first
// through stamps last, matching hit-test priority in reverse.
func (rd *Renderer) Draw(dst *image.RGBA, m *shape.Model, v View) {
	for _, f := range m.Freehands {
		rd.drawFreehand(dst, f, v)
	}
	for _, s := range m.Rects {
		rd.drawRect(dst, s, v)
	}
	for _, c := range m.Circles {
		rd.drawCircle(dst, c, v)
	}
	for _, a := range m.Arrows {
		rd.drawArrow(dst, a, v)
	}
	for _, t := range m.Texts {
		rd.drawTextShape(dst, t, v)
	}
	for _, c := range m.Callouts {
		rd.drawCallout(dst, c, v)
	}
	for _, c := range m.Clouds {
		rd.drawCloud(dst, c, v)
	}
	for _, s := range m.Stamps {
		rd.drawStamp(dst, s, v)
	}
}

func (rd *Renderer) drawFreehand(dst *image.RGBA, f shape.Freehand, v View) {
	if len(f.Points) == 0 {
		return
	}
	area := v.Rect(f.Bounds()).Inset(-v.Px(f.StrokeWidth) - 1)
	withOpacity(dst, area, f.Opacity, func(layer *image.RGBA) {
		thick := v.Px(f.StrokeWidth)
		prev := v.Pt(f.Points[0])
		if len(f.Points) == 1 {
			setThickPixel(layer, prev.X, prev.Y, thick, f.Color)
			return
		}
		for _, p := range f.Points[1:] {
			cur := v.Pt(p)
			drawLine(layer, prev.X, prev.Y, cur.X, cur.Y, f.Color, thick)
			prev = cur
		}
	})
}

func (rd *Renderer) drawRect(dst *image.RGBA, s shape.Rect, v View) {
	r := v.Rect(s.Bounds())
	area := r.Inset(-v.Px(s.StrokeWidth) - 1)
	withOpacity(dst, area, s.Opacity, func(layer *image.RGBA) {
		drawRectOutline(layer, r, s.Color, v.Px(s.StrokeWidth))
	})
}

func (rd *Renderer) drawCircle(dst *image.RGBA, c shape.Circle, v View) {
	center := v.Pt(geom.Pt(c.X, c.Y))
	r := v.Px(c.R)
	area := v.Rect(c.Bounds()).Inset(-v.Px(c.StrokeWidth) - 1)
	withOpacity(dst, area, c.Opacity, func(layer *image.RGBA) {
		drawCircleOutline(layer, center.X, center.Y, r, c.Color, v.Px(c.StrokeWidth))
	})
}

func (rd *Renderer) drawArrow(dst *image.RGBA, a shape.Arrow, v View) {
	p1 := v.Pt(geom.Pt(a.X1, a.Y1))
	p2 := v.Pt(geom.Pt(a.X2, a.Y2))
	area := v.Rect(a.Bounds()).Inset(-v.Px(a.StrokeWidth) - 16)
	withOpacity(dst, area, a.Opacity, func(layer *image.RGBA) {
		drawArrowLine(layer, p1.X, p1.Y, p2.X, p2.Y, a.Color, v.Px(a.StrokeWidth))
	})
}

// DrawDraft paints the in-progress shape. Box-like drafts show as dashed
// previews; stroke drafts paint like their committed form.
func (rd *Renderer) DrawDraft(dst *image.RGBA, d *engine.Draft, v View) {
	if d == nil {
		return
	}
	switch d.Kind {
	case shape.KindFreehand:
		rd.drawFreehand(dst, d.Freehand, v)
	case shape.KindRect:
		rd.drawRect(dst, d.Rect, v)
	case shape.KindCircle:
		rd.drawCircle(dst, d.Circle, v)
	case shape.KindArrow:
		rd.drawArrow(dst, d.Arrow, v)
	case shape.KindText:
		DrawDashedRect(dst, v.Rect(d.Text.Bounds()), 4, 1, d.Text.Color, color.White)
	case shape.KindCallout:
		anchor := v.Pt(geom.Pt(d.Callout.AnchorX, d.Callout.AnchorY))
		tail := v.Pt(geom.Pt(d.Callout.X, d.Callout.Y))
		drawArrowLine(dst, tail.X, tail.Y, anchor.X, anchor.Y, d.Callout.Color, v.Px(d.Callout.StrokeWidth))
	case shape.KindCloud:
		rd.drawCloud(dst, d.Cloud, v)
	case shape.KindStamp:
		DrawDashedRect(dst, v.Rect(d.Stamp.Bounds()), 4, 1, d.Stamp.Color, color.White)
	}
}

// handleSize is the painted selection handle square, in pixels.
const handleSize = 8

// DrawSelection paints the dashed outline and the eight resize handles
// around the selected shape's bounds. Arrows get endpoint handles instead.
func (rd *Renderer) DrawSelection(dst *image.RGBA, m *shape.Model, kind shape.Kind, index int, v View) {
	if kind == shape.KindArrow {
		if index < 0 || index >= len(m.Arrows) {
			return
		}
		a := m.Arrows[index]
		drawHandleSquare(dst, v.Pt(geom.Pt(a.X1, a.Y1)))
		drawHandleSquare(dst, v.Pt(geom.Pt(a.X2, a.Y2)))
		return
	}
	b, ok := m.Bounds(kind, index)
	if !ok {
		return
	}
	r := v.Rect(b)
	DrawDashedRect(dst, r, 4, 1, color.White, color.Black)
	if kind == shape.KindFreehand {
		return
	}
	for _, hp := range engine.HandlePoints(b) {
		drawHandleSquare(dst, v.Pt(hp))
	}
}

func drawHandleSquare(dst *image.RGBA, p image.Point) {
	hs := handleSize / 2
	r := image.Rect(p.X-hs, p.Y-hs, p.X+hs, p.Y+hs)
	draw.Draw(dst, r, &image.Uniform{color.White}, image.Point{}, draw.Src)
	drawRectOutline(dst, r, color.Black, 1)
}
