// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"image/color"

	"github.com/aclements/go-ggplot/table"
)

// GeomPoint draws a marker at each (x, y). It styles markers from
// the color, size, shape and alpha aesthetics.
type GeomPoint struct {
	GeomBase
}

func (GeomPoint) RequiredAes() []string { return []string{"x", "y"} }

func (GeomPoint) DefaultAes() Aes {
	return Aes{
		"color": Const{color.Black},
		"size":  Const{1.5},
		"shape": Const{ShapeCircle},
		"alpha": Const{1.0},
	}
}

func (g GeomPoint) DrawPanel(t *table.Table, p Params, coord Coord, r *PanelRanges) (Grob, error) {
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}
	y, err := posCol(t, "y")
	if err != nil {
		return nil, err
	}
	nx, ny := coord.Transform(x, y, r)
	return &GPoints{
		X:     nx,
		Y:     ny,
		Shape: intCol(t, "shape", ShapeCircle),
		Color: colorCol(t, "color", color.Black),
		Size:  floatCol(t, "size", 1.5),
		Alpha: floatCol(t, "alpha", 1),
	}, nil
}

func (g GeomPoint) DrawKey(key *table.Table, p Params, size float64) (Grob, error) {
	return &GPoints{
		X:     []float64{0.5},
		Y:     []float64{0.5},
		Shape: intCol(key, "shape", ShapeCircle),
		Color: colorCol(key, "color", color.Black),
		Size:  floatCol(key, "size", 1.5),
		Alpha: floatCol(key, "alpha", 1),
	}, nil
}
