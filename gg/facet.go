// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/generic/slice"

	"github.com/aclements/go-ggplot/table"
)

// Bookkeeping columns of the panel table produced by ComputeLayout.
// The panel column itself is ColPanel.
const (
	colPanelRow = "panel-row"
	colPanelCol = "panel-col"
	colScaleX   = "scale-x"
	colScaleY   = "scale-y"
)

// A Facet splits a plot into panels. The faceting strategy decides
// how many panels there are, which panel each data row belongs to,
// and how the panels are labeled and arranged.
//
// Facets are stateless values. Their trained product is the panel
// table: one row per panel with the columns ColPanel (the 1-based
// panel ID), panel-row and panel-col (the 0-based grid position),
// scale-x and scale-y (the indexes of the position scales the panel
// uses), plus the faceting columns with the panel's values.
type Facet interface {
	// ComputeLayout inspects the layers' data tables and returns
	// the panel table.
	ComputeLayout(data []*table.Table) (*table.Table, error)

	// AssignPanels appends the ColPanel column to a layer table.
	// Rows of a table that lacks some or all of the faceting
	// columns are repeated in every panel they match, in panel
	// order; otherwise rows keep their original order.
	AssignPanels(t *table.Table, layout *table.Table) (*table.Table, error)

	// Strips returns the labels of the strips drawn above and to
	// the right of the given panel. "" means no strip.
	Strips(layout *table.Table, panel int) (top, right string)

	// FinishData adjusts a layer's resolved table after every
	// other build stage has run.
	FinishData(t *table.Table, layout *table.Table) (*table.Table, error)
}

// FacetNull is the default faceting: a single panel holding all
// data.
type FacetNull struct{}

func (FacetNull) ComputeLayout(data []*table.Table) (*table.Table, error) {
	return new(table.Builder).
		Add(ColPanel, []int{1}).
		Add(colPanelRow, []int{0}).
		Add(colPanelCol, []int{0}).
		Add(colScaleX, []int{0}).
		Add(colScaleY, []int{0}).
		Done(), nil
}

func (FacetNull) AssignPanels(t *table.Table, layout *table.Table) (*table.Table, error) {
	return table.NewBuilder(t).AddConst(ColPanel, 1).Done(), nil
}

func (FacetNull) Strips(layout *table.Table, panel int) (top, right string) {
	return "", ""
}

func (FacetNull) FinishData(t *table.Table, layout *table.Table) (*table.Table, error) {
	return t, nil
}

// FacetWrap facets by the values of one column and wraps the panels
// into a grid.
type FacetWrap struct {
	// Col is the data column to facet by.
	Col string

	// Rows and Cols fix the panel grid dimensions. If both are 0
	// the grid is near-square; if one is 0 it is derived from the
	// other and the number of panels.
	Rows, Cols int

	// FreeX and FreeY give every panel its own x or y scale
	// instead of sharing one across all panels.
	FreeX, FreeY bool

	// Labeler formats a faceting value as its strip label. If it
	// is nil, values are formatted with %v.
	Labeler func(v interface{}) string
}

func (f FacetWrap) ComputeLayout(data []*table.Table) (*table.Table, error) {
	vals, err := facetLevels(data, f.Col)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(vals)
	n := rv.Len()
	_, cols := wrapDims(n, f.Rows, f.Cols)

	ids := make([]int, n)
	prow, pcol := make([]int, n), make([]int, n)
	sx, sy := make([]int, n), make([]int, n)
	for i := 0; i < n; i++ {
		ids[i] = i + 1
		prow[i], pcol[i] = i/cols, i%cols
		if f.FreeX {
			sx[i] = i
		}
		if f.FreeY {
			sy[i] = i
		}
	}
	return new(table.Builder).
		Add(ColPanel, ids).
		Add(colPanelRow, prow).
		Add(colPanelCol, pcol).
		Add(colScaleX, sx).
		Add(colScaleY, sy).
		Add(f.Col, vals).
		Done(), nil
}

func (f FacetWrap) AssignPanels(t *table.Table, layout *table.Table) (*table.Table, error) {
	return assignByMatch(t, layout, []string{f.Col})
}

func (f FacetWrap) Strips(layout *table.Table, panel int) (top, right string) {
	return facetLabel(layout, f.Col, panel, f.Labeler), ""
}

func (f FacetWrap) FinishData(t *table.Table, layout *table.Table) (*table.Table, error) {
	return t, nil
}

// wrapDims computes the panel grid dimensions for n panels.
func wrapDims(n, rows, cols int) (r, c int) {
	switch {
	case rows > 0 && cols > 0:
		return rows, cols
	case cols > 0:
		return (n + cols - 1) / cols, cols
	case rows > 0:
		return rows, (n + rows - 1) / rows
	}
	c = int(math.Ceil(math.Sqrt(float64(n))))
	if c < 1 {
		c = 1
	}
	return (n + c - 1) / c, c
}

// FacetGrid facets by up to two columns: the values of Row define
// the panel rows and the values of Col the panel columns. Either may
// be empty for a single row or column.
type FacetGrid struct {
	// Row and Col are the data columns to facet by.
	Row, Col string

	// FreeX gives every panel column its own x scale; FreeY gives
	// every panel row its own y scale.
	FreeX, FreeY bool

	// Labeler formats a faceting value as its strip label. If it
	// is nil, values are formatted with %v.
	Labeler func(v interface{}) string
}

func (f FacetGrid) ComputeLayout(data []*table.Table) (*table.Table, error) {
	if f.Row == "" && f.Col == "" {
		return nil, fmt.Errorf("facet grid has no faceting columns")
	}
	nr, nc := 1, 1
	var rowVals, colVals table.Slice
	var err error
	if f.Row != "" {
		if rowVals, err = facetLevels(data, f.Row); err != nil {
			return nil, err
		}
		nr = reflect.ValueOf(rowVals).Len()
	}
	if f.Col != "" {
		if colVals, err = facetLevels(data, f.Col); err != nil {
			return nil, err
		}
		nc = reflect.ValueOf(colVals).Len()
	}

	n := nr * nc
	ids := make([]int, n)
	prow, pcol := make([]int, n), make([]int, n)
	sx, sy := make([]int, n), make([]int, n)
	rowIdx, colIdx := make([]int, n), make([]int, n)
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			i := r*nc + c
			ids[i] = i + 1
			prow[i], pcol[i] = r, c
			if f.FreeX {
				sx[i] = c
			}
			if f.FreeY {
				sy[i] = r
			}
			rowIdx[i], colIdx[i] = r, c
		}
	}

	b := new(table.Builder).
		Add(ColPanel, ids).
		Add(colPanelRow, prow).
		Add(colPanelCol, pcol).
		Add(colScaleX, sx).
		Add(colScaleY, sy)
	if f.Row != "" {
		b.Add(f.Row, slice.Select(rowVals, rowIdx))
	}
	if f.Col != "" {
		b.Add(f.Col, slice.Select(colVals, colIdx))
	}
	return b.Done(), nil
}

func (f FacetGrid) vars() []string {
	var vars []string
	if f.Row != "" {
		vars = append(vars, f.Row)
	}
	if f.Col != "" {
		vars = append(vars, f.Col)
	}
	return vars
}

func (f FacetGrid) AssignPanels(t *table.Table, layout *table.Table) (*table.Table, error) {
	return assignByMatch(t, layout, f.vars())
}

func (f FacetGrid) Strips(layout *table.Table, panel int) (top, right string) {
	i := panelIndex(layout, panel)
	if i < 0 {
		return "", ""
	}
	prow := layout.MustColumn(colPanelRow).([]int)
	pcol := layout.MustColumn(colPanelCol).([]int)
	nc := 0
	for _, c := range pcol {
		if c+1 > nc {
			nc = c + 1
		}
	}
	// Column labels go above the top panel row; row labels to the
	// right of the last panel column.
	if f.Col != "" && prow[i] == 0 {
		top = facetLabel(layout, f.Col, panel, f.Labeler)
	}
	if f.Row != "" && pcol[i] == nc-1 {
		right = facetLabel(layout, f.Row, panel, f.Labeler)
	}
	return top, right
}

func (f FacetGrid) FinishData(t *table.Table, layout *table.Table) (*table.Table, error) {
	return t, nil
}

// facetLevels collects the sorted distinct values of column col
// across the data tables that have it.
func facetLevels(data []*table.Table, col string) (table.Slice, error) {
	var all []slice.T
	for _, t := range data {
		if t.Has(col) {
			all = append(all, slice.T(t.MustColumn(col)))
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("faceting column %q is in no layer's data", col)
	}
	vals := slice.NubAppend(all...)
	if slice.CanSort(vals) {
		slice.Sort(vals)
	}
	return vals, nil
}

// facetLabel returns the strip label of the given panel's value of
// column col.
func facetLabel(layout *table.Table, col string, panel int, labeler func(interface{}) string) string {
	i := panelIndex(layout, panel)
	if i < 0 || !layout.Has(col) {
		return ""
	}
	v := reflect.ValueOf(layout.MustColumn(col)).Index(i).Interface()
	if labeler != nil {
		return labeler(v)
	}
	return fmt.Sprintf("%v", v)
}

// panelIndex returns the row index of panel in the panel table, or
// -1.
func panelIndex(layout *table.Table, panel int) int {
	for i, id := range layout.MustColumn(ColPanel).([]int) {
		if id == panel {
			return i
		}
	}
	return -1
}

// assignByMatch appends the ColPanel column to t by matching the
// values of the faceting columns vars against the panel table. A
// table that carries every faceting column gets exactly one panel
// per row and keeps its row order. A table missing some or all of
// them has its rows repeated in every panel they match, in panel
// order.
func assignByMatch(t, layout *table.Table, vars []string) (*table.Table, error) {
	var present, absent []string
	for _, v := range vars {
		if t.Has(v) {
			present = append(present, v)
		} else {
			absent = append(absent, v)
		}
	}

	ids := layout.MustColumn(ColPanel).([]int)
	if len(absent) == 0 {
		// Full match: assign each row its unique panel.
		index := make(map[string]int)
		for i := range ids {
			index[matchKey(layout, present, i)] = ids[i]
		}
		col := make([]int, t.Len())
		for i := range col {
			key := matchKey(t, present, i)
			id, ok := index[key]
			if !ok {
				return nil, fmt.Errorf("row %d has faceting values not in the panel layout", i)
			}
			col[i] = id
		}
		return table.NewBuilder(t).Add(ColPanel, col).Done(), nil
	}

	// Partial or no match: repeat matching rows in each panel.
	parts := make([]*table.Table, 0, len(ids))
	for i, id := range ids {
		want := matchKey(layout, present, i)
		var rows []int
		for j := 0; j < t.Len(); j++ {
			if matchKey(t, present, j) == want {
				rows = append(rows, j)
			}
		}
		part := t.SelectRows(rows)
		parts = append(parts, table.NewBuilder(part).AddConst(ColPanel, id).Done())
	}
	return table.Concat(parts...), nil
}

// matchKey builds a comparison key from row i of the named columns
// of t. An empty column list yields the empty key, which matches
// everything.
func matchKey(t *table.Table, cols []string, i int) string {
	var sb strings.Builder
	for _, c := range cols {
		fmt.Fprintf(&sb, "%v\x00", reflect.ValueOf(t.MustColumn(c)).Index(i).Interface())
	}
	return sb.String()
}

// A Layout is the trained faceting and coordinate state of one
// build: the panel table, the panel grid dimensions, and the
// position scales every panel maps through.
type Layout struct {
	Facet Facet
	Coord Coord

	// Panels is the facet's panel table.
	Panels *table.Table

	// Rows and Cols are the dimensions of the panel grid.
	Rows, Cols int

	// XScales and YScales are the trained position scales,
	// indexed by the scale-x and scale-y columns of Panels. They
	// have one element each unless the facet requested free
	// scales.
	XScales, YScales []PositionScaler

	ids    []int
	prow   []int
	pcol   []int
	scalex []int
	scaley []int
}

// newLayout validates the panel table and wraps it in a Layout.
func newLayout(f Facet, c Coord, panels *table.Table) (*Layout, error) {
	ly := &Layout{Facet: f, Coord: c, Panels: panels}
	for _, col := range []struct {
		name string
		dst  *[]int
	}{
		{ColPanel, &ly.ids},
		{colPanelRow, &ly.prow},
		{colPanelCol, &ly.pcol},
		{colScaleX, &ly.scalex},
		{colScaleY, &ly.scaley},
	} {
		if !panels.Has(col.name) {
			return nil, fmt.Errorf("panel table has no %q column", col.name)
		}
		v, ok := panels.MustColumn(col.name).([]int)
		if !ok {
			return nil, fmt.Errorf("panel table column %q must be []int; got %T", col.name, panels.MustColumn(col.name))
		}
		*col.dst = v
	}
	if len(ly.ids) == 0 {
		return nil, fmt.Errorf("panel table has no panels")
	}
	for _, r := range ly.prow {
		if r+1 > ly.Rows {
			ly.Rows = r + 1
		}
	}
	for _, c := range ly.pcol {
		if c+1 > ly.Cols {
			ly.Cols = c + 1
		}
	}
	return ly, nil
}

// NPanels returns the number of panels.
func (ly *Layout) NPanels() int { return len(ly.ids) }

// PanelIDs returns the panel IDs in panel table order.
func (ly *Layout) PanelIDs() []int { return ly.ids }

func (ly *Layout) panelIndex(panel int) int {
	for i, id := range ly.ids {
		if id == panel {
			return i
		}
	}
	panic(fmt.Sprintf("gg: unknown panel %d", panel))
}

// PanelPos returns the 0-based grid position of a panel.
func (ly *Layout) PanelPos(panel int) (row, col int) {
	i := ly.panelIndex(panel)
	return ly.prow[i], ly.pcol[i]
}

// PanelAt returns the ID of the panel at the given grid position,
// or 0 if the position is empty.
func (ly *Layout) PanelAt(row, col int) int {
	for i, id := range ly.ids {
		if ly.prow[i] == row && ly.pcol[i] == col {
			return id
		}
	}
	return 0
}

// ScaleX returns the x scale of a panel.
func (ly *Layout) ScaleX(panel int) PositionScaler {
	return ly.XScales[ly.scalex[ly.panelIndex(panel)]]
}

// ScaleY returns the y scale of a panel.
func (ly *Layout) ScaleY(panel int) PositionScaler {
	return ly.YScales[ly.scaley[ly.panelIndex(panel)]]
}

// nScales returns how many x and y scales the layout needs.
func (ly *Layout) nScales() (nx, ny int) {
	nx, ny = 1, 1
	for i := range ly.ids {
		if ly.scalex[i]+1 > nx {
			nx = ly.scalex[i] + 1
		}
		if ly.scaley[i]+1 > ny {
			ny = ly.scaley[i] + 1
		}
	}
	return nx, ny
}

// Ranges returns the panel's expanded position ranges.
func (ly *Layout) Ranges(panel int) *PanelRanges {
	return &PanelRanges{
		X: expandScale(ly.ScaleX(panel)),
		Y: expandScale(ly.ScaleY(panel)),
	}
}

func expandScale(s PositionScaler) [2]float64 {
	lo, hi := s.Limits()
	mult, add := s.Expansion()
	return expandRange(lo, hi, mult, add)
}

// expandRange widens [lo, hi] by the multiplicative and additive
// expansion. A degenerate range widens by half a unit to each side
// so a panel never collapses.
func expandRange(lo, hi, mult, add float64) [2]float64 {
	span := hi - lo
	d := span*mult + add
	if span <= 0 && d <= 0 {
		d = 0.5
	}
	return [2]float64{lo - d, hi + d}
}
