// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"image/color"
	"math"

	"github.com/aclements/go-ggplot/table"
)

// GeomBar draws a bar for each row, centered on x and reaching from
// 0 to y. Before position adjustment it derives the xmin, xmax, ymin
// and ymax columns, so stacking and dodging operate on bar extents.
//
// The "width" parameter sets the bar width in x units; the default
// is 90% of the smallest gap between distinct x values.
type GeomBar struct {
	GeomBase
}

func (GeomBar) RequiredAes() []string { return []string{"x", "y"} }

func (GeomBar) DefaultAes() Aes {
	return Aes{
		"fill":  Const{color.Gray{0x59}},
		"alpha": Const{1.0},
	}
}

// Bars are axis-aligned rectangles; they do not curve with the
// coordinate system.
func (GeomBar) LinearCoordOnly() bool { return true }

func (GeomBar) SetupParams(t *table.Table, p Params) (Params, error) {
	if p.Has("width") {
		if _, err := p.Float64("width", 0); err != nil {
			return nil, err
		}
		return p, nil
	}
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}
	return p.With("width", resolution(x)*0.9), nil
}

func (GeomBar) SetupData(t *table.Table, p Params) (*table.Table, error) {
	if t.Has("xmin") && t.Has("xmax") && t.Has("ymin") && t.Has("ymax") {
		return t, nil
	}
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}
	y, err := posCol(t, "y")
	if err != nil {
		return nil, err
	}
	w, err := p.Float64("width", 0.9)
	if err != nil {
		return nil, err
	}

	xmin := make([]float64, len(x))
	xmax := make([]float64, len(x))
	ymin := make([]float64, len(y))
	ymax := make([]float64, len(y))
	for i := range x {
		xmin[i], xmax[i] = x[i]-w/2, x[i]+w/2
		ymin[i], ymax[i] = math.Min(y[i], 0), math.Max(y[i], 0)
	}
	return table.NewBuilder(t).
		Add("xmin", xmin).Add("xmax", xmax).
		Add("ymin", ymin).Add("ymax", ymax).
		Done(), nil
}

func (g GeomBar) DrawPanel(t *table.Table, p Params, coord Coord, r *PanelRanges) (Grob, error) {
	xmin, err := posCol(t, "xmin")
	if err != nil {
		return nil, err
	}
	xmax, err := posCol(t, "xmax")
	if err != nil {
		return nil, err
	}
	ymin, err := posCol(t, "ymin")
	if err != nil {
		return nil, err
	}
	ymax, err := posCol(t, "ymax")
	if err != nil {
		return nil, err
	}

	fill := colorCol(t, "fill", color.Gray{0x59})
	alpha := floatCol(t, "alpha", 1)

	// Keep only rows with a complete rectangle.
	var rows []int
	for i := range xmin {
		if isFinite(xmin[i]) && isFinite(xmax[i]) && isFinite(ymin[i]) && isFinite(ymax[i]) {
			rows = append(rows, i)
		}
	}

	rects := &GRects{}
	x0, y0 := coord.Transform(pick(xmin, rows), pick(ymin, rows), r)
	x1, y1 := coord.Transform(pick(xmax, rows), pick(ymax, rows), r)
	rects.X0, rects.Y0, rects.X1, rects.Y1 = x0, y0, x1, y1
	rects.Fill = make([]color.Color, len(rows))
	for i, row := range rows {
		rects.Fill[i] = applyAlpha(fill[row], alpha[row])
	}
	if t.Has("color") {
		rects.Stroke = colorAt(t, "color", 0, color.Black)
		rects.StrokeWidth = floatAt(t, "size", 0, 0.5)
	}
	return rects, nil
}

func (g GeomBar) DrawKey(key *table.Table, p Params, size float64) (Grob, error) {
	fill := applyAlpha(colorAt(key, "fill", 0, color.Gray{0x59}), floatAt(key, "alpha", 0, 1))
	rects := &GRects{
		X0:   []float64{0.1},
		Y0:   []float64{0.1},
		X1:   []float64{0.9},
		Y1:   []float64{0.9},
		Fill: []color.Color{fill},
	}
	if key.Has("color") {
		rects.Stroke = colorAt(key, "color", 0, color.Black)
		rects.StrokeWidth = floatAt(key, "size", 0, 0.5)
	}
	return rects, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// pick returns the values of xs at the given rows.
func pick(xs []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = xs[r]
	}
	return out
}
