// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggsvg renders gg layout tables as SVG.
//
// The drawing model is one layout point per SVG pixel; callers pick
// the output size and the flexible rows and columns of the layout
// table absorb the difference.
package ggsvg

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ajstarks/svgo"

	"github.com/aclements/go-ggplot/gg"
)

// Render builds and renders plot p as a width by height SVG image
// written to w.
func Render(w io.Writer, p *gg.Plot, width, height int) error {
	res, err := gg.Build(p)
	if err != nil {
		return err
	}
	lt, err := gg.Render(res)
	if err != nil {
		return err
	}
	return WriteSVG(w, lt, width, height)
}

// WriteSVG writes layout table lt to w as a width by height SVG
// image.
func WriteSVG(w io.Writer, lt *gg.LayoutTable, width, height int) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height, `font-family="Helvetica,Arial,sans-serif"`)

	xs, ys := lt.Resolve(float64(width), float64(height))
	p := &painter{canvas: canvas}
	for _, cell := range lt.Cells {
		if cell.Grob == nil {
			continue
		}
		r := rect{
			x0: xs[cell.Col],
			y0: ys[cell.Row],
			x1: xs[cell.Col+cell.ColSpan],
			y1: ys[cell.Row+cell.RowSpan],
		}
		// Panel contents are clipped to the panel: position
		// adjustments and range expansion keep most geometry
		// inside, but paths and bars may legitimately cross
		// the panel edge.
		if strings.HasPrefix(cell.Name, "panel") {
			p.clipped(r, cell.Grob)
		} else {
			p.draw(cell.Grob, r)
		}
	}

	canvas.End()
	return ew.err
}

// errWriter remembers the first write error so drawing code does not
// have to check every write.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return len(b), nil
	}
	n, err := ew.w.Write(b)
	ew.err = err
	return n, nil
}

// A rect is a cell rectangle in SVG pixels. y0 is the top edge.
type rect struct {
	x0, y0, x1, y1 float64
}

// x and y convert grob coordinates, which are normalized with the
// origin at the bottom left, to SVG pixels.
func (r rect) x(nx float64) float64 { return r.x0 + nx*(r.x1-r.x0) }
func (r rect) y(ny float64) float64 { return r.y1 - ny*(r.y1-r.y0) }

type painter struct {
	canvas *svg.SVG
	nclip  int
}

// clipped draws g clipped to r.
func (p *painter) clipped(r rect, g gg.Grob) {
	p.nclip++
	id := fmt.Sprintf("clip%d", p.nclip)
	p.canvas.ClipPath(`id="` + id + `"`)
	p.canvas.Rect(ri(r.x0), ri(r.y0), ri(r.x1-r.x0), ri(r.y1-r.y0))
	p.canvas.ClipEnd()
	p.canvas.Group(`clip-path="url(#` + id + `)"`)
	p.draw(g, r)
	p.canvas.Gend()
}

func (p *painter) draw(g gg.Grob, r rect) {
	switch g := g.(type) {
	case *gg.GTree:
		for _, kid := range g.Kids {
			p.draw(kid, r)
		}

	case *gg.GBox:
		p.drawBox(g, r)

	case *gg.GPoints:
		p.drawPoints(g, r)

	case *gg.GPath:
		p.strokePath(pathData(g.X, g.Y, r, false), g.Style)

	case *gg.GSegments:
		var d []byte
		for i := range g.X0 {
			if !finite(g.X0[i]) || !finite(g.Y0[i]) || !finite(g.X1[i]) || !finite(g.Y1[i]) {
				continue
			}
			d = append(d, 'M')
			d = appendPt(d, r.x(g.X0[i]), r.y(g.Y0[i]))
			d = append(d, 'L')
			d = appendPt(d, r.x(g.X1[i]), r.y(g.Y1[i]))
		}
		p.strokePath(d, g.Style)

	case *gg.GRects:
		for i := range g.X0 {
			if !finite(g.X0[i]) || !finite(g.Y0[i]) || !finite(g.X1[i]) || !finite(g.Y1[i]) {
				continue
			}
			style := cssPaint("fill", g.Fill[i])
			if g.StrokeWidth > 0 && g.Stroke != nil {
				style += ";" + cssPaint("stroke", g.Stroke) + fmt.Sprintf(";stroke-width:%.6g", g.StrokeWidth)
			}
			x0, y0 := r.x(g.X0[i]), r.y(g.Y1[i])
			x1, y1 := r.x(g.X1[i]), r.y(g.Y0[i])
			p.canvas.Rect(ri(x0), ri(y0), ri(x1-x0), ri(y1-y0), style)
		}

	case *gg.GPolygon:
		d := pathData(g.X, g.Y, r, true)
		if len(d) == 0 {
			return
		}
		style := cssPaint("fill", g.Fill)
		if g.StrokeWidth > 0 && g.Stroke != nil {
			style += ";" + cssPaint("stroke", g.Stroke) + fmt.Sprintf(";stroke-width:%.6g", g.StrokeWidth)
		} else {
			style += ";stroke:none"
		}
		p.canvas.Path(string(d), style)

	case *gg.GText:
		p.drawText(g, r)
	}
}

func (p *painter) drawBox(g *gg.GBox, r rect) {
	// The box keeps its intrinsic size; the cell-relative
	// alignment places the leftover space.
	bw, bh := g.W, g.H
	x0 := r.x0 + g.HAlign*(r.x1-r.x0-bw)
	y1 := r.y1 - g.VAlign*(r.y1-r.y0-bh)
	box := rect{x0: x0, y0: y1 - bh, x1: x0 + bw, y1: y1}
	for _, kid := range g.Kids {
		sub := rect{
			x0: box.x(kid.X0),
			y0: box.y(kid.Y1),
			x1: box.x(kid.X1),
			y1: box.y(kid.Y0),
		}
		p.draw(kid.Grob, sub)
	}
}

func (p *painter) drawPoints(g *gg.GPoints, r rect) {
	for i := range g.X {
		if !finite(g.X[i]) || !finite(g.Y[i]) {
			continue
		}
		x, y := r.x(g.X[i]), r.y(g.Y[i])
		size := 1.5
		if g.Size != nil {
			size = g.Size[i]
		}
		var c color.Color = color.Black
		if g.Color != nil {
			c = g.Color[i]
		}
		style := cssPaint("fill", c)
		if g.Alpha != nil && g.Alpha[i] < 1 {
			style += fmt.Sprintf(";opacity:%.6g", g.Alpha[i])
		}
		shape := gg.ShapeCircle
		if g.Shape != nil {
			shape = g.Shape[i]
		}
		p.drawMarker(shape, x, y, size, style)
	}
}

// drawMarker draws one point marker of the given shape. size is the
// marker radius in pixels.
func (p *painter) drawMarker(shape int, x, y, size float64, style string) {
	switch shape {
	case gg.ShapeSquare:
		p.canvas.Rect(ri(x-size), ri(y-size), ri(2*size), ri(2*size), style)
	case gg.ShapeTriangle:
		d := []byte{'M'}
		d = appendPt(d, x, y-size)
		d = append(d, 'L')
		d = appendPt(d, x+size, y+size)
		d = append(d, 'L')
		d = appendPt(d, x-size, y+size)
		d = append(d, 'Z')
		p.canvas.Path(string(d), style)
	case gg.ShapeDiamond:
		d := []byte{'M'}
		d = appendPt(d, x, y-size)
		d = append(d, 'L')
		d = appendPt(d, x+size, y)
		d = append(d, 'L')
		d = appendPt(d, x, y+size)
		d = append(d, 'L')
		d = appendPt(d, x-size, y)
		d = append(d, 'Z')
		p.canvas.Path(string(d), style)
	case gg.ShapePlus:
		p.crossMarker(x, y, size, 0, style)
	case gg.ShapeCross:
		p.crossMarker(x, y, size*math.Sqrt2/2, 1, style)
	default:
		p.canvas.Circle(ri(x), ri(y), ri(size), style)
	}
}

// crossMarker draws a plus (diag=0) or an x (diag=1) of half-extent
// size. The marker is stroked with the fill paint.
func (p *painter) crossMarker(x, y, size float64, diag int, style string) {
	style = strings.Replace(style, "fill:", "stroke:", 1) + ";fill:none;stroke-width:1.5"
	var d []byte
	if diag == 0 {
		d = append(d, 'M')
		d = appendPt(d, x-size, y)
		d = append(d, 'L')
		d = appendPt(d, x+size, y)
		d = append(d, 'M')
		d = appendPt(d, x, y-size)
		d = append(d, 'L')
		d = appendPt(d, x, y+size)
	} else {
		d = append(d, 'M')
		d = appendPt(d, x-size, y-size)
		d = append(d, 'L')
		d = appendPt(d, x+size, y+size)
		d = append(d, 'M')
		d = appendPt(d, x-size, y+size)
		d = append(d, 'L')
		d = appendPt(d, x+size, y-size)
	}
	p.canvas.Path(string(d), style)
}

func (p *painter) drawText(g *gg.GText, r rect) {
	anchor := "start"
	switch g.Style.Anchor {
	case gg.AnchorMiddle:
		anchor = "middle"
	case gg.AnchorEnd:
		anchor = "end"
	}
	for i := range g.X {
		if g.Text[i] == "" {
			continue
		}
		x, y := r.x(g.X[i]), r.y(g.Y[i])
		attrs := fmt.Sprintf(`text-anchor="%s" font-size="%.6gpx" %s`,
			anchor, g.Style.Size, cssAttr("fill", g.Style.Color))
		if g.Style.VCenter {
			attrs += ` dy="0.32em"`
		}
		if g.Style.Rotate != 0 {
			// Grob rotation is counterclockwise; SVG's is
			// clockwise.
			attrs += fmt.Sprintf(` transform="rotate(%.6g %d %d)"`, -g.Style.Rotate, ri(x), ri(y))
		}
		p.canvas.Text(ri(x), ri(y), g.Text[i], attrs)
	}
}

// strokePath strokes path data d with the given line style, with no
// fill.
func (p *painter) strokePath(d []byte, style gg.LineStyle) {
	if len(d) == 0 {
		return
	}
	css := cssPaint("stroke", style.Color) + ";fill:none" +
		fmt.Sprintf(";stroke-width:%.6g", style.Width)
	if dash := dashArray(style.Type, style.Width); dash != "" {
		css += ";stroke-dasharray:" + dash
	}
	p.canvas.Path(string(d), css)
}

// dashArray returns the stroke-dasharray for a line type. Patterns
// scale with the line width.
func dashArray(lineType int, width float64) string {
	var pat []float64
	switch lineType {
	case gg.LineDashed:
		pat = []float64{4, 4}
	case gg.LineDotted:
		pat = []float64{1, 3}
	case gg.LineDotDash:
		pat = []float64{1, 3, 4, 3}
	case gg.LineLongDash:
		pat = []float64{7, 3}
	case gg.LineTwoDash:
		pat = []float64{2, 2, 6, 2}
	default:
		return ""
	}
	if width <= 0 {
		width = 1
	}
	parts := make([]string, len(pat))
	for i, v := range pat {
		parts[i] = strconv.FormatFloat(v*width, 'g', 6, 64)
	}
	return strings.Join(parts, ",")
}

// pathData builds SVG path data through the given points. A
// non-finite point breaks the path into subpaths; closed appends a
// close command to each subpath.
func pathData(xs, ys []float64, r rect, closed bool) []byte {
	var d []byte
	inLine := false
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			if inLine && closed {
				d = append(d, 'Z')
			}
			inLine = false
			continue
		}
		if !inLine {
			d = append(d, 'M')
			inLine = true
		} else {
			d = append(d, 'L')
		}
		d = appendPt(d, r.x(xs[i]), r.y(ys[i]))
	}
	if inLine && closed {
		d = append(d, 'Z')
	}
	return d
}

func appendPt(d []byte, x, y float64) []byte {
	d = strconv.AppendFloat(d, x, 'g', 6, 64)
	d = append(d, ' ')
	d = strconv.AppendFloat(d, y, 'g', 6, 64)
	return d
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ri(v float64) int {
	return int(math.Round(v))
}

// cssPaint returns a CSS fragment painting property prop with color c.
func cssPaint(prop string, c color.Color) string {
	hex, opacity := cssColor(c)
	if hex == "" {
		return prop + ":none"
	}
	css := prop + ":" + hex
	if opacity != "" {
		// SVG 1.1 has no rgba() colors, so alpha goes in
		// fill-opacity/stroke-opacity.
		css += ";" + prop + "-opacity:" + opacity
	}
	return css
}

// cssAttr is like cssPaint, but in XML attribute syntax.
func cssAttr(prop string, c color.Color) string {
	hex, opacity := cssColor(c)
	if hex == "" {
		return prop + `="none"`
	}
	attr := fmt.Sprintf("%s=%q", prop, hex)
	if opacity != "" {
		attr += fmt.Sprintf(" %s-opacity=%q", prop, opacity)
	}
	return attr
}

// cssColor returns the hex form of c and, if c is translucent, its
// opacity. It returns "" for a fully transparent color. A nil color
// is black.
func cssColor(c color.Color) (hex, opacity string) {
	if c == nil {
		c = color.Black
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "", ""
	}
	if a != 0xffff {
		// Undo alpha pre-multiplication.
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	r, g, b = r>>8, g>>8, b>>8
	if r>>4 == r&0xf && g>>4 == g&0xf && b>>4 == b&0xf {
		hex = fmt.Sprintf("#%x%x%x", r>>4, g>>4, b>>4)
	} else {
		hex = fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	if a != 0xffff {
		opacity = fmt.Sprintf("%.6g", float64(a)/0xffff)
	}
	return
}
