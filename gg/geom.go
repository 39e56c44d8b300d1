// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-ggplot/table"
)

// A Geom is a geometric encoding: it converts a table of mapped
// aesthetic values into graphical primitives.
//
// Geoms are stateless values: all per-render state flows through the
// layer parameters and the tables. GeomBase implements the optional
// parts of the interface and is meant for embedding.
type Geom interface {
	// RequiredAes returns the aesthetics the geom cannot draw
	// without. A build fails if a layer's resolved table cannot
	// satisfy them.
	RequiredAes() []string

	// DefaultAes returns constant mappings that are merged into
	// the resolved table for aesthetics the layer leaves
	// unmapped.
	DefaultAes() Aes

	// SetupParams fills in or rewrites layer parameters from the
	// layer's table, returning the parameters to use downstream.
	// The input map is never modified.
	SetupParams(t *table.Table, p Params) (Params, error)

	// SetupData derives the geom's positional extent columns,
	// such as xmin and xmax, before position adjustment runs.
	SetupData(t *table.Table, p Params) (*table.Table, error)

	// LinearCoordOnly reports whether the geom draws correctly
	// only under linear coordinate systems. Under a non-linear
	// Coord such geoms still draw, degraded, after a warning.
	LinearCoordOnly() bool

	// DrawPanel converts one (panel, group) partition of the
	// layer's resolved table into a primitive subtree.
	DrawPanel(t *table.Table, p Params, coord Coord, r *PanelRanges) (Grob, error)

	// DrawKey draws one legend key. key is a single-row table
	// holding the key's aesthetic values and size is the key area
	// in points.
	DrawKey(key *table.Table, p Params, size float64) (Grob, error)
}

// GeomBase provides the optional parts of Geom as no-ops. It is
// meant for embedding.
type GeomBase struct{}

func (GeomBase) DefaultAes() Aes { return nil }

func (GeomBase) SetupParams(_ *table.Table, p Params) (Params, error) { return p, nil }

func (GeomBase) SetupData(t *table.Table, _ Params) (*table.Table, error) { return t, nil }

func (GeomBase) LinearCoordOnly() bool { return false }

// posCol returns positional column aes of t as floats.
func posCol(t *table.Table, aes string) ([]float64, error) {
	fs, err := toFloats(t.MustColumn(aes))
	if err != nil {
		return nil, fmt.Errorf("aesthetic %q: %v", aes, err)
	}
	return fs, nil
}

// The *Col helpers read a per-row styling column, falling back to a
// default when the column is absent or a value has the wrong type.
// They go through reflection because constant columns materialize
// with the concrete type of the constant.

func colorCol(t *table.Table, aes string, def color.Color) []color.Color {
	out := make([]color.Color, t.Len())
	if !t.Has(aes) {
		for i := range out {
			out[i] = def
		}
		return out
	}
	rv := reflect.ValueOf(t.MustColumn(aes))
	for i := range out {
		if c, ok := rv.Index(i).Interface().(color.Color); ok && c != nil {
			out[i] = c
		} else {
			out[i] = def
		}
	}
	return out
}

func floatCol(t *table.Table, aes string, def float64) []float64 {
	if t.Has(aes) {
		if fs, err := toFloats(t.MustColumn(aes)); err == nil {
			return fs
		}
	}
	out := make([]float64, t.Len())
	for i := range out {
		out[i] = def
	}
	return out
}

func intCol(t *table.Table, aes string, def int) []int {
	out := make([]int, t.Len())
	if !t.Has(aes) {
		for i := range out {
			out[i] = def
		}
		return out
	}
	rv := reflect.ValueOf(t.MustColumn(aes))
	for i := range out {
		v := rv.Index(i)
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[i] = int(v.Int())
		case reflect.Float32, reflect.Float64:
			out[i] = int(v.Float())
		default:
			out[i] = def
		}
	}
	return out
}

func colorAt(t *table.Table, aes string, i int, def color.Color) color.Color {
	return colorCol(t, aes, def)[i]
}

func floatAt(t *table.Table, aes string, i int, def float64) float64 {
	return floatCol(t, aes, def)[i]
}

func intAt(t *table.Table, aes string, i int, def int) int {
	return intCol(t, aes, def)[i]
}

// applyAlpha scales the opacity of c by alpha.
func applyAlpha(c color.Color, alpha float64) color.Color {
	if alpha >= 1 || math.IsNaN(alpha) {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	// RGBA is alpha-premultiplied, so all channels scale.
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}

// resolution returns the smallest gap between distinct values of xs,
// or 1 if there are fewer than two distinct finite values. Bar-like
// geoms size their default width from it.
func resolution(xs []float64) float64 {
	var sorted []float64
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			sorted = append(sorted, x)
		}
	}
	sort.Float64s(sorted)
	res := math.Inf(1)
	for i := 1; i < len(sorted); i++ {
		if d := sorted[i] - sorted[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}
