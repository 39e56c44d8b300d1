// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggsvg

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-ggplot/gg"
	"github.com/aclements/go-ggplot/table"
)

func TestRender(t *testing.T) {
	tab := new(table.Builder).
		Add("x", []float64{1, 2, 3, 4}).
		Add("y", []float64{10, 20, 15, 30}).
		Add("c", []string{"a", "b", "a", "b"}).
		Done()
	p := gg.NewPlot(tab)
	p.Title = "response by load"
	p.Aes = gg.Aes{"x": gg.Col("x"), "y": gg.Col("y"), "color": gg.Col("c")}
	p.Add(
		&gg.Layer{Geom: gg.GeomLine{}},
		&gg.Layer{Geom: gg.GeomPoint{}},
	)

	var buf bytes.Buffer
	if err := Render(&buf, p, 400, 300); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("want an svg document; got %.80q...", out)
	}
	if !strings.Contains(out, `width="400"`) || !strings.Contains(out, `height="300"`) {
		t.Errorf("want the requested output size in the svg element")
	}
	// The panel's geometry is clipped to the panel cell.
	if !strings.Contains(out, "<clipPath") || !strings.Contains(out, "clip-path=") {
		t.Errorf("want the panel contents clipped")
	}
	// Points draw as circles, the line as a path, text for the
	// title, axis labels and legend.
	if !strings.Contains(out, "<circle") {
		t.Errorf("want circle markers in the output")
	}
	if !strings.Contains(out, "<path") {
		t.Errorf("want a line path in the output")
	}
	if !strings.Contains(out, ">response by load</text>") {
		t.Errorf("want the plot title in the output")
	}
	for _, label := range []string{"a", "b"} {
		if !strings.Contains(out, ">"+label+"</text>") {
			t.Errorf("want legend label %q in the output", label)
		}
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, gg.NewPlot(nil), 100, 100); err == nil {
		t.Fatalf("want an error for a plot with no layers")
	}
}

func TestWriteSVGBare(t *testing.T) {
	lt := new(gg.LayoutTable)
	lt.Widths = []gg.Track{{Flex: 1}}
	lt.Heights = []gg.Track{{Flex: 1}}
	lt.Add("panel-0-0", 0, 0, 1, 1, &gg.GPoints{
		X: []float64{0.5},
		Y: []float64{0.5},
	})
	lt.Add("empty", 0, 0, 1, 1, nil)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, lt, 100, 100); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	// A single point at the middle of a 100x100 panel, at the
	// default size and color.
	if !strings.Contains(out, `cx="50"`) || !strings.Contains(out, `cy="50"`) {
		t.Errorf("want the marker at the panel center; got %q", out)
	}
	if !strings.Contains(out, "fill:#000") {
		t.Errorf("want the default black fill; got %q", out)
	}
}

func TestCSSColor(t *testing.T) {
	tests := []struct {
		c       color.Color
		hex, op string
	}{
		{nil, "#000", ""},
		{color.White, "#fff", ""},
		{color.RGBA{0x12, 0x34, 0x56, 0xff}, "#123456", ""},
		{color.Transparent, "", ""},
		// Premultiplied half-alpha red.
		{color.RGBA{0x80, 0, 0, 0x80}, "#f00", "0.501961"},
	}
	for _, test := range tests {
		hex, op := cssColor(test.c)
		if hex != test.hex || op != test.op {
			t.Errorf("cssColor(%v): want (%q, %q); got (%q, %q)",
				test.c, test.hex, test.op, hex, op)
		}
	}
}

func TestCSSPaint(t *testing.T) {
	if got := cssPaint("fill", color.Black); got != "fill:#000" {
		t.Errorf("want %q; got %q", "fill:#000", got)
	}
	if got := cssPaint("stroke", color.Transparent); got != "stroke:none" {
		t.Errorf("want %q; got %q", "stroke:none", got)
	}
	got := cssPaint("fill", color.RGBA{0x80, 0, 0, 0x80})
	if want := "fill:#f00;fill-opacity:0.501961"; got != want {
		t.Errorf("want %q; got %q", want, got)
	}
}

func TestDashArray(t *testing.T) {
	if got := dashArray(gg.LineSolid, 1); got != "" {
		t.Errorf("want no dash array for solid lines; got %q", got)
	}
	if got := dashArray(gg.LineDashed, 1); got != "4,4" {
		t.Errorf("want %q; got %q", "4,4", got)
	}
	// Patterns scale with the line width; zero width counts as 1.
	if got := dashArray(gg.LineDashed, 2); got != "8,8" {
		t.Errorf("want %q; got %q", "8,8", got)
	}
	if got := dashArray(gg.LineDotDash, 0); got != "1,3,4,3" {
		t.Errorf("want %q; got %q", "1,3,4,3", got)
	}
}

func TestPathData(t *testing.T) {
	r := rect{x0: 0, y0: 0, x1: 10, y1: 10}
	nan := math.NaN()

	d := string(pathData([]float64{0, 1}, []float64{0, 1}, r, false))
	if want := "M0 10L10 0"; d != want {
		t.Errorf("want %q; got %q", want, d)
	}

	// A non-finite point splits the path into subpaths.
	d = string(pathData([]float64{0, 0.5, nan, 1}, []float64{0, 0.5, 0, 1}, r, false))
	if got := strings.Count(d, "M"); got != 2 {
		t.Errorf("want 2 subpaths; got %d in %q", got, d)
	}

	// Closed paths close every subpath.
	d = string(pathData([]float64{0, 0.5, nan, 1, 0.5}, []float64{0, 0.5, 0, 1, 0}, r, true))
	if got := strings.Count(d, "Z"); got != 2 {
		t.Errorf("want 2 closed subpaths; got %d in %q", got, d)
	}

	if d := pathData(nil, nil, r, true); len(d) != 0 {
		t.Errorf("want no path data for no points; got %q", d)
	}
}
