// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-ggplot/table"
)

func TestPosCol(t *testing.T) {
	tab := new(table.Builder).
		Add("x", []int{1, 2}).
		Add("c", []string{"a", "b"}).
		Done()
	got, err := posCol(tab, "x")
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 2}; !de(want, got) {
		t.Errorf("want %v; got %v", want, got)
	}
	_, err = posCol(tab, "c")
	if err == nil || err.Error() != `aesthetic "c": want a numeric column; got []string` {
		t.Errorf("want column type error; got %v", err)
	}
}

func TestStyleCols(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	tab := new(table.Builder).
		Add("x", []float64{1, 2}).
		Add("color", []color.Color{red, nil}).
		Add("label", []string{"a", "b"}).
		AddConst("fill", red).
		Done()

	// A nil color falls back to the default.
	if want := []color.Color{red, color.Black}; !de(want, colorCol(tab, "color", color.Black)) {
		t.Errorf("want %v; got %v", want, colorCol(tab, "color", color.Black))
	}
	// Constant columns materialize with the constant's concrete
	// type.
	if want := []color.Color{red, red}; !de(want, colorCol(tab, "fill", color.Black)) {
		t.Errorf("want %v; got %v", want, colorCol(tab, "fill", color.Black))
	}
	// Absent or mistyped columns fall back entirely.
	if want := []color.Color{color.Black, color.Black}; !de(want, colorCol(tab, "nope", color.Black)) {
		t.Errorf("want %v; got %v", want, colorCol(tab, "nope", color.Black))
	}
	if want := []color.Color{color.Black, color.Black}; !de(want, colorCol(tab, "label", color.Black)) {
		t.Errorf("want %v; got %v", want, colorCol(tab, "label", color.Black))
	}

	if want := []float64{1, 2}; !de(want, floatCol(tab, "x", 9)) {
		t.Errorf("want %v; got %v", want, floatCol(tab, "x", 9))
	}
	if want := []float64{9, 9}; !de(want, floatCol(tab, "label", 9)) {
		t.Errorf("want %v; got %v", want, floatCol(tab, "label", 9))
	}

	if want := []int{1, 2}; !de(want, intCol(tab, "x", 9)) {
		t.Errorf("want %v; got %v", want, intCol(tab, "x", 9))
	}
	if want := []int{9, 9}; !de(want, intCol(tab, "label", 9)) {
		t.Errorf("want %v; got %v", want, intCol(tab, "label", 9))
	}
	if got := floatAt(tab, "x", 1, 0); got != 2 {
		t.Errorf("want 2; got %v", got)
	}
	if got := colorAt(tab, "color", 0, color.Black); got != color.Color(red) {
		t.Errorf("want %v; got %v", red, got)
	}
}

func TestApplyAlpha(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	if got := applyAlpha(red, 1); got != color.Color(red) {
		t.Errorf("want %v; got %v", red, got)
	}
	if got := applyAlpha(red, math.NaN()); got != color.Color(red) {
		t.Errorf("want %v; got %v", red, got)
	}
	if want := (color.RGBA64{0x7fff, 0x7fff, 0x7fff, 0x7fff}); applyAlpha(color.White, 0.5) != color.Color(want) {
		t.Errorf("want %v; got %v", want, applyAlpha(color.White, 0.5))
	}
	if want := (color.RGBA64{}); applyAlpha(color.White, -3) != color.Color(want) {
		t.Errorf("want %v; got %v", want, applyAlpha(color.White, -3))
	}
}

func TestResolution(t *testing.T) {
	tests := []struct {
		xs   []float64
		want float64
	}{
		{[]float64{0, 0, 1, 1}, 1},
		{[]float64{3, 1, 2}, 1},
		{[]float64{1, 2.5, 2}, 0.5},
		{[]float64{0, math.NaN(), 10}, 10},
		{[]float64{1, 1}, 1},
		{nil, 1},
	}
	for _, test := range tests {
		if got := resolution(test.xs); got != test.want {
			t.Errorf("resolution(%v): want %v; got %v", test.xs, test.want, got)
		}
	}
}

func TestGeomPoint(t *testing.T) {
	g := GeomPoint{}
	if want := []string{"x", "y"}; !de(want, g.RequiredAes()) {
		t.Errorf("want %v; got %v", want, g.RequiredAes())
	}
	if g.LinearCoordOnly() {
		t.Errorf("points draw under any coordinate system")
	}

	tab := new(table.Builder).
		Add("x", []float64{0, 0.5, 1}).
		Add("y", []float64{0, 1, 0.25}).
		Done()
	r := &PanelRanges{X: [2]float64{0, 1}, Y: [2]float64{0, 2}}
	grob, err := g.DrawPanel(tab, nil, CoordCartesian{}, r)
	if err != nil {
		t.Fatal(err)
	}
	want := &GPoints{
		X:     []float64{0, 0.5, 1},
		Y:     []float64{0, 0.5, 0.125},
		Shape: []int{ShapeCircle, ShapeCircle, ShapeCircle},
		Color: []color.Color{color.Black, color.Black, color.Black},
		Size:  []float64{1.5, 1.5, 1.5},
		Alpha: []float64{1, 1, 1},
	}
	if !de(want, grob) {
		t.Errorf("want %+v; got %+v", want, grob)
	}

	red := color.RGBA{0xff, 0, 0, 0xff}
	key := new(table.Builder).
		Add("color", []color.Color{red}).
		Add("shape", []int{ShapeCross}).
		Done()
	grob, err = g.DrawKey(key, nil, 17)
	if err != nil {
		t.Fatal(err)
	}
	kw := &GPoints{
		X:     []float64{0.5},
		Y:     []float64{0.5},
		Shape: []int{ShapeCross},
		Color: []color.Color{red},
		Size:  []float64{1.5},
		Alpha: []float64{1},
	}
	if !de(kw, grob) {
		t.Errorf("want %+v; got %+v", kw, grob)
	}
}

func TestGeomBarSetup(t *testing.T) {
	g := GeomBar{}
	if !g.LinearCoordOnly() {
		t.Errorf("bars require linear coordinates")
	}

	tab := new(table.Builder).
		Add("x", []float64{0, 2, 3}).
		Add("y", []float64{1, 2, 3}).
		Done()
	p, err := g.SetupParams(tab, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := p.Float64("width", 0); w != 0.9 {
		t.Errorf("want width 0.9; got %v", w)
	}
	p, err = g.SetupParams(tab, Params{"width": 2.0})
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := p.Float64("width", 0); w != 2 {
		t.Errorf("want width 2; got %v", w)
	}
	if _, err := g.SetupParams(tab, Params{"width": "wide"}); err == nil {
		t.Errorf("want parameter type error; got nil")
	}

	got, err := g.SetupData(tab, Params{"width": 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{-0.5, 1.5, 2.5}; !de(want, got.MustColumn("xmin")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("xmin"))
	}
	if want := []float64{0.5, 2.5, 3.5}; !de(want, got.MustColumn("xmax")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("xmax"))
	}
	// Bars reach from 0 to y, in either direction.
	neg := new(table.Builder).
		Add("x", []float64{0}).
		Add("y", []float64{-2}).
		Done()
	got, err = g.SetupData(neg, Params{"width": 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{-2}; !de(want, got.MustColumn("ymin")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("ymin"))
	}
	if want := []float64{0}; !de(want, got.MustColumn("ymax")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("ymax"))
	}

	// A table that already has its extents passes through.
	full := new(table.Builder).
		Add("xmin", []float64{0}).Add("xmax", []float64{1}).
		Add("ymin", []float64{0}).Add("ymax", []float64{1}).
		Done()
	got, err = g.SetupData(full, nil)
	if err != nil || got != full {
		t.Errorf("want the input table; got %v, %v", got, err)
	}
}

func TestGeomBarDraw(t *testing.T) {
	g := GeomBar{}
	tab := new(table.Builder).
		Add("xmin", []float64{0, math.NaN()}).
		Add("xmax", []float64{1, 2}).
		Add("ymin", []float64{0, 0}).
		Add("ymax", []float64{2, 2}).
		Done()
	r := &PanelRanges{X: [2]float64{0, 1}, Y: [2]float64{0, 2}}
	grob, err := g.DrawPanel(tab, nil, CoordCartesian{}, r)
	if err != nil {
		t.Fatal(err)
	}
	// The incomplete rectangle is dropped.
	want := &GRects{
		X0:   []float64{0},
		Y0:   []float64{0},
		X1:   []float64{1},
		Y1:   []float64{1},
		Fill: []color.Color{color.Gray{0x59}},
	}
	if !de(want, grob) {
		t.Errorf("want %+v; got %+v", want, grob)
	}

	// A mapped color aesthetic strokes the bars.
	red := color.RGBA{0xff, 0, 0, 0xff}
	tab = new(table.Builder).
		Add("xmin", []float64{0}).Add("xmax", []float64{1}).
		Add("ymin", []float64{0}).Add("ymax", []float64{2}).
		AddConst("color", red).
		Done()
	grob, err = g.DrawPanel(tab, nil, CoordCartesian{}, r)
	if err != nil {
		t.Fatal(err)
	}
	rects := grob.(*GRects)
	if rects.Stroke != color.Color(red) {
		t.Errorf("want stroke %v; got %v", red, rects.Stroke)
	}
	if rects.StrokeWidth != 0.5 {
		t.Errorf("want stroke width 0.5; got %v", rects.StrokeWidth)
	}
}

func TestGeomPath(t *testing.T) {
	g := GeomPath{}
	tab := new(table.Builder).
		Add("x", []float64{0, 1}).
		Add("y", []float64{0, 1}).
		Done()
	r := &PanelRanges{X: [2]float64{0, 1}, Y: [2]float64{0, 1}}
	grob, err := g.DrawPanel(tab, nil, CoordCartesian{}, r)
	if err != nil {
		t.Fatal(err)
	}
	want := &GPath{
		X:     []float64{0, 1},
		Y:     []float64{0, 1},
		Style: LineStyle{Color: color.Black, Width: 0.5, Type: LineSolid},
	}
	if !de(want, grob) {
		t.Errorf("want %+v; got %+v", want, grob)
	}
}

func TestGeomPathDegenerate(t *testing.T) {
	var buf bytes.Buffer
	old := Warning.Writer()
	Warning.SetOutput(&buf)
	defer Warning.SetOutput(old)

	g := GeomPath{}
	tab := new(table.Builder).
		Add("x", []float64{0, math.NaN()}).
		Add("y", []float64{0, 1}).
		Done()
	r := &PanelRanges{X: [2]float64{0, 1}, Y: [2]float64{0, 1}}
	grob, err := g.DrawPanel(tab, nil, CoordCartesian{}, r)
	if err != nil {
		t.Fatal(err)
	}
	tree, ok := grob.(*GTree)
	if !ok || len(tree.Kids) != 0 {
		t.Errorf("want an empty tree; got %+v", grob)
	}
	if want := "cannot draw path through 1 point(s)"; !strings.Contains(buf.String(), want) {
		t.Errorf("want warning %q; got %q", want, buf.String())
	}
}

func TestGeomLine(t *testing.T) {
	g := GeomLine{}
	tab := new(table.Builder).
		Add("x", []float64{1, 0}).
		Add("y", []float64{10, 20}).
		Done()
	r := &PanelRanges{X: [2]float64{0, 1}, Y: [2]float64{0, 20}}
	grob, err := g.DrawPanel(tab, nil, CoordCartesian{}, r)
	if err != nil {
		t.Fatal(err)
	}
	// Lines connect points in x order, not row order.
	path := grob.(*GPath)
	if want := []float64{0, 1}; !de(want, path.X) {
		t.Errorf("want %v; got %v", want, path.X)
	}
	if want := []float64{1, 0.5}; !de(want, path.Y) {
		t.Errorf("want %v; got %v", want, path.Y)
	}
}
