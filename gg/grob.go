// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import "image/color"

// A Grob is a graphical primitive or a named tree of primitives.
//
// Grob coordinates are normalized to the cell the grob is drawn in:
// (0, 0) is the bottom left corner and (1, 1) the top right corner.
// Lengths that must not change with the output size, such as line
// widths, point sizes and font sizes, are in points.
type Grob interface {
	grob()
}

// A GTree is a named ordered list of grobs, drawn in order.
type GTree struct {
	Name string
	Kids []Grob
}

func (*GTree) grob() {}

// Tree returns a GTree named name with the given children.
func Tree(name string, kids ...Grob) *GTree {
	return &GTree{Name: name, Kids: kids}
}

// Add appends kids to the tree and returns t.
func (t *GTree) Add(kids ...Grob) *GTree {
	t.Kids = append(t.Kids, kids...)
	return t
}

// Point shapes.
const (
	ShapeCircle = iota
	ShapeSquare
	ShapeTriangle
	ShapeDiamond
	ShapePlus
	ShapeCross
	NumShapes
)

// Line types. A line type selects a dash pattern; patterns are
// expressed by the drawing backend in multiples of the line width.
const (
	LineSolid = iota
	LineDashed
	LineDotted
	LineDotDash
	LineLongDash
	LineTwoDash
	NumLineTypes
)

// GPoints draws a marker at each (X[i], Y[i]). Shape, Color, Size
// and Alpha give per-point styling; Size is the marker radius in
// points and Alpha multiplies the color's opacity.
type GPoints struct {
	X, Y  []float64
	Shape []int
	Color []color.Color
	Size  []float64
	Alpha []float64
}

func (*GPoints) grob() {}

// A LineStyle describes how a line is stroked. Width is in points.
// Type selects the dash pattern.
type LineStyle struct {
	Color color.Color
	Width float64
	Type  int
}

// GPath draws an open polyline through the given points in order.
type GPath struct {
	X, Y  []float64
	Style LineStyle
}

func (*GPath) grob() {}

// GSegments draws independent line segments from (X0[i], Y0[i]) to
// (X1[i], Y1[i]).
type GSegments struct {
	X0, Y0, X1, Y1 []float64
	Style          LineStyle
}

func (*GSegments) grob() {}

// GRects draws axis-aligned rectangles with corners (X0[i], Y0[i])
// and (X1[i], Y1[i]), filled with Fill[i] and outlined with Stroke
// if StrokeWidth > 0.
type GRects struct {
	X0, Y0, X1, Y1 []float64
	Fill           []color.Color
	Stroke         color.Color
	StrokeWidth    float64
}

func (*GRects) grob() {}

// GPolygon draws a single closed, filled polygon.
type GPolygon struct {
	X, Y        []float64
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

func (*GPolygon) grob() {}

// Text anchoring relative to the text position.
const (
	AnchorStart = iota
	AnchorMiddle
	AnchorEnd
)

// A TextStyle describes how text is drawn. Size is the font size in
// points. Rotate is a counterclockwise rotation in degrees about the
// text position. If VCenter is set, text is centered vertically on
// its Y coordinate instead of treating Y as the baseline; axis and
// legend labels use this because their cell heights are not known
// until the backend draws them.
type TextStyle struct {
	Color   color.Color
	Size    float64
	Anchor  int
	Rotate  float64
	VCenter bool
}

// GText draws Text[i] at (X[i], Y[i]). The Y coordinate gives the
// text baseline.
type GText struct {
	X, Y  []float64
	Text  []string
	Style TextStyle
}

func (*GText) grob() {}

// A GBox is a grob with an intrinsic size. The box is W by H points,
// placed in its cell by HAlign and VAlign (0 aligns to the left or
// bottom edge, 1 to the right or top edge). Each kid occupies a
// normalized sub-rectangle of the box and its grob's coordinates are
// normalized to that sub-rectangle.
//
// Legends use boxes so their content keeps its size no matter how
// large the enclosing cell is.
type GBox struct {
	W, H           float64
	HAlign, VAlign float64
	Kids           []GBoxKid
}

// A GBoxKid is one positioned child of a GBox.
type GBoxKid struct {
	X0, Y0, X1, Y1 float64
	Grob           Grob
}

func (*GBox) grob() {}

// Add places grob g in the box sub-rectangle with corners (x0, y0)
// and (x1, y1) and returns b.
func (b *GBox) Add(x0, y0, x1, y1 float64, g Grob) *GBox {
	b.Kids = append(b.Kids, GBoxKid{x0, y0, x1, y1, g})
	return b
}
