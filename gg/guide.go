// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/aclements/go-gg/generic/slice"

	"github.com/aclements/go-ggplot/table"
)

// A legend is one merged legend block: a title, key labels, and the
// mapped aesthetic value each contributing scale assigns to each
// key.
type legend struct {
	title  string
	labels []string

	// values maps each merged aesthetic family to its per-key
	// mapped values.
	values map[string][]interface{}

	// layers draw glyphs into the keys, in layer order.
	layers []*builtLayer
}

// buildLegends collects one legend per legend-capable trained scale
// and merges legends that share a title and labels, so a single data
// column mapped to two aesthetics shows as one legend whose keys
// carry both aesthetics.
func buildLegends(res *BuildResult) []*legend {
	var legends []*legend
outer:
	for _, fam := range res.Scales.Families() {
		ls, ok := res.Scales.Get(fam).(LegendScaler)
		if !ok || !ls.ShowGuide() {
			continue
		}
		labels, values := ls.LegendKeys()
		if len(labels) == 0 {
			continue
		}

		title := ls.Title()
		if title == "" {
			title = aesLabel(res.layers, fam)
		}
		leg := &legend{
			title:  title,
			labels: labels,
			values: map[string][]interface{}{fam: values},
			layers: legendLayers(res.layers, fam),
		}

		for _, prev := range legends {
			if prev.title == leg.title && sameStrings(prev.labels, leg.labels) {
				prev.values[fam] = values
				prev.layers = unionLayers(prev.layers, leg.layers)
				continue outer
			}
		}
		legends = append(legends, leg)
	}
	return legends
}

// legendLayers returns the layers that contribute key glyphs for
// aesthetic family fam: layers with a mapped aesthetic of that
// family, unless the layer opts out, plus layers that opt in
// unconditionally.
func legendLayers(layers []*builtLayer, fam string) []*builtLayer {
	var out []*builtLayer
	for _, bl := range layers {
		switch bl.layer.ShowLegend {
		case LegendNever:
			continue
		case LegendAlways:
			out = append(out, bl)
			continue
		}
		for _, name := range bl.table.Columns() {
			if scaledAes(name) && aesFamily(name) == fam {
				out = append(out, bl)
				break
			}
		}
	}
	return out
}

// unionLayers merges two contributing-layer lists, keeping layer
// order.
func unionLayers(a, b []*builtLayer) []*builtLayer {
	seen := make(map[int]bool)
	out := append([]*builtLayer(nil), a...)
	for _, bl := range a {
		seen[bl.index] = true
	}
	for _, bl := range b {
		if !seen[bl.index] {
			out = append(out, bl)
			seen[bl.index] = true
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

// aesLabel derives a label for an aesthetic family from the
// expressions mapped to it: the distinct expression strings across
// all layers, joined by newlines.
func aesLabel(layers []*builtLayer, fam string) string {
	var labels []string
	for _, bl := range layers {
		for _, name := range bl.aes.names() {
			if !scaledAes(name) || aesFamily(name) != fam {
				continue
			}
			labels = append(labels, bl.aes[name].String())
		}
	}
	if len(labels) == 0 {
		return ""
	}
	return strings.Join(slice.Nub(labels).([]string), "\n")
}

// keyTable builds the one-row table a geom draws legend key k from:
// the merged aesthetic values of the key, plus every constant
// aesthetic column of the layer so parameter overrides and geom
// defaults show up in the key glyph.
func keyTable(leg *legend, k int, bl *builtLayer) *table.Table {
	b := new(table.Builder)

	fams := make([]string, 0, len(leg.values))
	for f := range leg.values {
		fams = append(fams, f)
	}
	sort.Strings(fams)
	for _, f := range fams {
		v := leg.values[f][k]
		s := reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(v)), 1, 1)
		s.Index(0).Set(reflect.ValueOf(v))
		b.Add(f, s.Interface())
	}

	for _, name := range bl.table.Columns() {
		if b.Has(name) || !scaledAes(name) {
			continue
		}
		if cv, ok := bl.table.Const(name); ok {
			b.AddConst(name, cv)
		}
	}
	return b.Done()
}

// drawLegends lays the legends out as one fixed-size box: each
// legend is a title above rows of key glyph plus label, and legends
// stack vertically.
func drawLegends(legends []*legend, th *Theme) (*GBox, error) {
	const keyGap = 2  // between key box and label
	const rowGap = 2  // between key rows
	const legGap = 11 // between legends

	pad := th.Margin
	titleH := lineHeight(th.LegendTitleSize) + 4
	rowH := th.LegendKeySize
	if lh := lineHeight(th.LegendTextSize); lh > rowH {
		rowH = lh
	}
	rowH += rowGap

	// Measure.
	w, h := 0.0, 0.0
	for i, leg := range legends {
		if i > 0 {
			h += legGap
		}
		h += titleH + float64(len(leg.labels))*rowH
		lw := th.LegendKeySize + keyGap + maxTextWidth(leg.labels, th.LegendTextSize)
		if tw := textWidth(leg.title, th.LegendTitleSize); tw > lw {
			lw = tw
		}
		if lw > w {
			w = lw
		}
	}
	box := &GBox{W: w + 2*pad, H: h + 2*pad}

	// Place. top tracks the running offset from the top edge of
	// the box in points; sub converts a rectangle in those terms
	// to the box's bottom-up normalized coordinates.
	top := pad
	sub := func(x0, y0, x1, y1 float64) (nx0, ny0, nx1, ny1 float64) {
		return x0 / box.W, 1 - y1/box.H, x1 / box.W, 1 - y0/box.H
	}
	for i, leg := range legends {
		if i > 0 {
			top += legGap
		}

		_, descent := textHeight(th.LegendTitleSize)
		x0, y0, x1, y1 := sub(pad, top, box.W-pad, top+titleH)
		box.Add(x0, y0, x1, y1, &GText{
			X:    []float64{0},
			Y:    []float64{descent / titleH},
			Text: []string{leg.title},
			Style: TextStyle{
				Color:  th.TextColor,
				Size:   th.LegendTitleSize,
				Anchor: AnchorStart,
			},
		})
		top += titleH

		for k, label := range leg.labels {
			// Key glyphs, one subtree per contributing
			// layer, in layer order.
			glyphs := Tree(fmt.Sprintf("key-%d", k))
			for _, bl := range leg.layers {
				g, err := bl.geom.DrawKey(keyTable(leg, k, bl), bl.params, th.LegendKeySize)
				if err != nil {
					return nil, fmt.Errorf("layer %d: legend key %q: %v", bl.index, label, err)
				}
				if g != nil {
					glyphs.Add(g)
				}
			}
			keyTop := top + (rowH-rowGap-th.LegendKeySize)/2
			x0, y0, x1, y1 = sub(pad, keyTop, pad+th.LegendKeySize, keyTop+th.LegendKeySize)
			box.Add(x0, y0, x1, y1, glyphs)

			x0, y0, x1, y1 = sub(pad+th.LegendKeySize+keyGap, top, box.W-pad, top+rowH-rowGap)
			box.Add(x0, y0, x1, y1, &GText{
				X:    []float64{0},
				Y:    []float64{0.5},
				Text: []string{label},
				Style: TextStyle{
					Color:   th.TextColor,
					Size:    th.LegendTextSize,
					Anchor:  AnchorStart,
					VCenter: true,
				},
			})
			top += rowH
		}
	}
	return box, nil
}
