// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"reflect"
	"testing"

	"github.com/aclements/go-ggplot/table"
)

func colorPlot() *Plot {
	tab := new(table.Builder).
		Add("x", []float64{1, 2, 3}).
		Add("y", []float64{10, 20, 30}).
		Add("c", []string{"a", "b", "a"}).
		Done()
	return NewPlot(tab).Add(&Layer{
		Geom: GeomPoint{},
		Aes:  Aes{"x": Col("x"), "y": Col("y"), "color": Col("c")},
	})
}

func TestBuildLegends(t *testing.T) {
	res := mustBuild(t, colorPlot())
	legends := buildLegends(res)
	if len(legends) != 1 {
		t.Fatalf("want 1 legend; got %d", len(legends))
	}
	leg := legends[0]
	if leg.title != "c" {
		t.Errorf("want title %q; got %q", "c", leg.title)
	}
	if want := []string{"a", "b"}; !de(want, leg.labels) {
		t.Errorf("want labels %v; got %v", want, leg.labels)
	}
	if len(leg.values["color"]) != 2 {
		t.Errorf("want 2 color values; got %v", leg.values["color"])
	}
	if len(leg.layers) != 1 {
		t.Errorf("want 1 contributing layer; got %d", len(leg.layers))
	}
}

func TestBuildLegendsMergeAesthetics(t *testing.T) {
	// One column mapped to two aesthetics merges into one legend
	// whose keys carry both.
	tab := new(table.Builder).
		Add("x", []float64{1, 2}).
		Add("y", []float64{10, 20}).
		Add("c", []string{"a", "b"}).
		Done()
	p := NewPlot(tab).Add(&Layer{
		Geom: GeomPoint{},
		Aes:  Aes{"x": Col("x"), "y": Col("y"), "color": Col("c"), "shape": Col("c")},
	})
	res := mustBuild(t, p)
	legends := buildLegends(res)
	if len(legends) != 1 {
		t.Fatalf("want 1 merged legend; got %d", len(legends))
	}
	leg := legends[0]
	if len(leg.values["color"]) != 2 || len(leg.values["shape"]) != 2 {
		t.Errorf("want merged color and shape values; got %v", leg.values)
	}
}

func TestBuildLegendsSeparate(t *testing.T) {
	// Different columns keep separate legends.
	tab := new(table.Builder).
		Add("x", []float64{1, 2}).
		Add("y", []float64{10, 20}).
		Add("c", []string{"a", "b"}).
		Add("d", []string{"u", "v"}).
		Done()
	p := NewPlot(tab).Add(&Layer{
		Geom: GeomPoint{},
		Aes:  Aes{"x": Col("x"), "y": Col("y"), "color": Col("c"), "shape": Col("d")},
	})
	res := mustBuild(t, p)
	if legends := buildLegends(res); len(legends) != 2 {
		t.Fatalf("want 2 legends; got %d", len(legends))
	}
}

func TestBuildLegendsGuideNone(t *testing.T) {
	p := colorPlot().SetScale(&DiscreteColorScale{Aes: "color", Guide: GuideNone})
	res := mustBuild(t, p)
	if legends := buildLegends(res); len(legends) != 0 {
		t.Fatalf("want no legends with GuideNone; got %d", len(legends))
	}
}

func TestLegendTwoLayers(t *testing.T) {
	// Two layers sharing one aesthetic mapping contribute to one
	// merged legend: each key stacks a glyph from every layer.
	tab := new(table.Builder).
		Add("x", []float64{1, 2, 3, 4}).
		Add("y", []float64{10, 20, 30, 40}).
		Add("c", []string{"a", "b", "a", "b"}).
		Done()
	p := NewPlot(tab)
	p.Aes = Aes{"x": Col("x"), "y": Col("y"), "color": Col("c")}
	p.Add(
		&Layer{Geom: GeomPath{}},
		&Layer{Geom: GeomPoint{}},
	)
	res := mustBuild(t, p)

	legends := buildLegends(res)
	if len(legends) != 1 {
		t.Fatalf("want 1 legend; got %d", len(legends))
	}
	leg := legends[0]
	if len(leg.layers) != 2 {
		t.Fatalf("want 2 contributing layers; got %d", len(leg.layers))
	}
	if leg.layers[0].index != 0 || leg.layers[1].index != 1 {
		t.Errorf("want contributing layers in layer order")
	}

	box, err := drawLegends(legends, DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	// Key glyph trees carry one subtree per layer: a path under a
	// point for each of the two keys.
	var keys []*GTree
	for _, kid := range box.Kids {
		if g, ok := kid.Grob.(*GTree); ok {
			keys = append(keys, g)
		}
	}
	if len(keys) != 2 {
		t.Fatalf("want 2 key glyph trees; got %d", len(keys))
	}
	for _, key := range keys {
		if len(key.Kids) != 2 {
			t.Fatalf("want glyphs from both layers; got %d", len(key.Kids))
		}
		if _, ok := key.Kids[0].(*GPath); !ok {
			t.Errorf("want the path layer's glyph first; got %T", key.Kids[0])
		}
		if _, ok := key.Kids[1].(*GPoints); !ok {
			t.Errorf("want the point layer's glyph second; got %T", key.Kids[1])
		}
	}
}

func TestLegendLayerOptOut(t *testing.T) {
	tab := new(table.Builder).
		Add("x", []float64{1, 2}).
		Add("y", []float64{10, 20}).
		Add("c", []string{"a", "b"}).
		Done()
	p := NewPlot(tab)
	p.Aes = Aes{"x": Col("x"), "y": Col("y"), "color": Col("c")}
	p.Add(
		&Layer{Geom: GeomPath{}, ShowLegend: LegendNever},
		&Layer{Geom: GeomPoint{}},
	)
	res := mustBuild(t, p)
	legends := buildLegends(res)
	if len(legends) != 1 {
		t.Fatalf("want 1 legend; got %d", len(legends))
	}
	if len(legends[0].layers) != 1 || legends[0].layers[0].index != 1 {
		t.Errorf("want only the point layer to contribute")
	}
}

func TestKeyTable(t *testing.T) {
	res := mustBuild(t, colorPlot())
	legends := buildLegends(res)
	if len(legends) != 1 {
		t.Fatalf("want 1 legend; got %d", len(legends))
	}
	leg := legends[0]

	key := keyTable(leg, 0, leg.layers[0])
	if key.Len() != 1 {
		t.Fatalf("want a single-row key table; got %d rows", key.Len())
	}
	// The key carries the merged aesthetic value...
	c := reflect.ValueOf(key.MustColumn("color")).Index(0).Interface()
	if c != leg.values["color"][0] {
		t.Errorf("want the key's color value; got %v", c)
	}
	// ...plus the layer's constant aesthetics, so glyphs match the
	// drawn geometry.
	for _, name := range []string{"size", "shape", "alpha"} {
		if !key.Has(name) {
			t.Errorf("want constant aesthetic %q in the key table", name)
		}
	}
	// Data columns don't leak into the key.
	if key.Has("x") || key.Has("y") {
		t.Errorf("want no positional columns in the key table")
	}
}

func TestAesLabel(t *testing.T) {
	res := mustBuild(t, colorPlot())
	if got := aesLabel(res.layers, "color"); got != "c" {
		t.Errorf("want %q; got %q", "c", got)
	}
	if got := aesLabel(res.layers, "linetype"); got != "" {
		t.Errorf("want no label for an unmapped family; got %q", got)
	}
}

func TestUnionLayers(t *testing.T) {
	a := &builtLayer{index: 0}
	b := &builtLayer{index: 1}
	got := unionLayers([]*builtLayer{b}, []*builtLayer{a, b})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("want the union in layer order")
	}
}
