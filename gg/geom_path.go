// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"image/color"
	"math"

	"github.com/aclements/go-ggplot/table"
)

// GeomPath draws an open polyline through the points of each group
// in row order. Color, size (the line width in points), linetype and
// alpha style the whole line from its first row.
type GeomPath struct {
	GeomBase
}

func (GeomPath) RequiredAes() []string { return []string{"x", "y"} }

func (GeomPath) DefaultAes() Aes {
	return Aes{
		"color":    Const{color.Black},
		"size":     Const{0.5},
		"linetype": Const{LineSolid},
		"alpha":    Const{1.0},
	}
}

func (g GeomPath) DrawPanel(t *table.Table, p Params, coord Coord, r *PanelRanges) (Grob, error) {
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}
	y, err := posCol(t, "y")
	if err != nil {
		return nil, err
	}
	n := 0
	for i := range x {
		if !math.IsNaN(x[i]) && !math.IsNaN(y[i]) {
			n++
		}
	}
	if n < 2 {
		Warning.Printf("cannot draw path through %d point(s); ignoring", n)
		return Tree("path"), nil
	}
	nx, ny := coord.Transform(x, y, r)
	return &GPath{
		X:     nx,
		Y:     ny,
		Style: g.style(t, 0),
	}, nil
}

// style builds the line style from row i of t.
func (GeomPath) style(t *table.Table, i int) LineStyle {
	c := colorAt(t, "color", i, color.Black)
	return LineStyle{
		Color: applyAlpha(c, floatAt(t, "alpha", i, 1)),
		Width: floatAt(t, "size", i, 0.5),
		Type:  intAt(t, "linetype", i, LineSolid),
	}
}

func (g GeomPath) DrawKey(key *table.Table, p Params, size float64) (Grob, error) {
	return &GPath{
		X:     []float64{0.1, 0.9},
		Y:     []float64{0.5, 0.5},
		Style: g.style(key, 0),
	}, nil
}

// GeomLine draws a line through the points of each group in x
// order. It is GeomPath over x-sorted data.
type GeomLine struct {
	GeomPath
}

func (g GeomLine) DrawPanel(t *table.Table, p Params, coord Coord, r *PanelRanges) (Grob, error) {
	return g.GeomPath.DrawPanel(t.SortBy("x"), p, coord, r)
}
