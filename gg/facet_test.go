// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"testing"

	"github.com/aclements/go-ggplot/table"
)

func TestFacetNull(t *testing.T) {
	layout, err := FacetNull{}.ComputeLayout(nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1}; !de(want, layout.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(ColPanel))
	}
	for _, col := range []string{colPanelRow, colPanelCol, colScaleX, colScaleY} {
		if want := []int{0}; !de(want, layout.MustColumn(col)) {
			t.Errorf("%s: want %v; got %v", col, want, layout.MustColumn(col))
		}
	}

	data := new(table.Builder).Add("v", []float64{1, 2}).Done()
	got, err := FacetNull{}.AssignPanels(data, layout)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := got.Const(ColPanel); !ok || v != 1 {
		t.Errorf("want constant panel 1; got %v, %v", v, ok)
	}
	if top, right := (FacetNull{}).Strips(layout, 1); top != "" || right != "" {
		t.Errorf("want no strips; got %q, %q", top, right)
	}
}

func TestWrapDims(t *testing.T) {
	tests := []struct {
		n, rows, cols int
		r, c          int
	}{
		{1, 0, 0, 1, 1},
		{4, 0, 0, 2, 2},
		{5, 0, 0, 2, 3},
		{6, 0, 2, 3, 2},
		{6, 2, 0, 2, 3},
		{7, 3, 3, 3, 3},
		{0, 0, 0, 0, 1},
	}
	for _, test := range tests {
		r, c := wrapDims(test.n, test.rows, test.cols)
		if r != test.r || c != test.c {
			t.Errorf("wrapDims(%d, %d, %d): want (%d, %d); got (%d, %d)",
				test.n, test.rows, test.cols, test.r, test.c, r, c)
		}
	}
}

func TestFacetWrap(t *testing.T) {
	withF := new(table.Builder).
		Add("f", []string{"b", "a", "b"}).
		Add("v", []float64{1, 2, 3}).
		Done()
	noF := new(table.Builder).Add("v", []float64{9}).Done()

	f := FacetWrap{Col: "f", FreeY: true}
	layout, err := f.ComputeLayout([]*table.Table{withF, noF})
	if err != nil {
		t.Fatal(err)
	}
	// Levels sort into panel order regardless of appearance
	// order.
	if want := []string{"a", "b"}; !de(want, layout.MustColumn("f")) {
		t.Errorf("want %v; got %v", want, layout.MustColumn("f"))
	}
	if want := []int{1, 2}; !de(want, layout.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(ColPanel))
	}
	if want := []int{0, 0}; !de(want, layout.MustColumn(colPanelRow)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colPanelRow))
	}
	if want := []int{0, 1}; !de(want, layout.MustColumn(colPanelCol)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colPanelCol))
	}
	if want := []int{0, 0}; !de(want, layout.MustColumn(colScaleX)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colScaleX))
	}
	if want := []int{0, 1}; !de(want, layout.MustColumn(colScaleY)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colScaleY))
	}

	// A table with the faceting column keeps its row order.
	got, err := f.AssignPanels(withF, layout)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{2, 1, 2}; !de(want, got.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, got.MustColumn(ColPanel))
	}
	if want := []float64{1, 2, 3}; !de(want, got.MustColumn("v")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("v"))
	}

	// A table without it is repeated in every panel.
	got, err = f.AssignPanels(noF, layout)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2}; !de(want, got.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, got.MustColumn(ColPanel))
	}
	if want := []float64{9, 9}; !de(want, got.MustColumn("v")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("v"))
	}

	if top, right := f.Strips(layout, 2); top != "b" || right != "" {
		t.Errorf(`want strips "b", ""; got %q, %q`, top, right)
	}
	f.Labeler = func(v interface{}) string { return fmt.Sprintf("f=%v", v) }
	if top, _ := f.Strips(layout, 1); top != "f=a" {
		t.Errorf(`want strip "f=a"; got %q`, top)
	}

	// Values missing from the layout cannot be assigned.
	stray := new(table.Builder).Add("f", []string{"z"}).Done()
	_, err = f.AssignPanels(stray, layout)
	if err == nil || err.Error() != "row 0 has faceting values not in the panel layout" {
		t.Errorf("want layout mismatch error; got %v", err)
	}
}

func TestFacetLevelsMissing(t *testing.T) {
	data := new(table.Builder).Add("v", []float64{1}).Done()
	_, err := FacetWrap{Col: "f"}.ComputeLayout([]*table.Table{data})
	if err == nil || err.Error() != `faceting column "f" is in no layer's data` {
		t.Errorf("want missing column error; got %v", err)
	}
}

func TestFacetGrid(t *testing.T) {
	data := new(table.Builder).
		Add("r", []string{"q", "p", "q"}).
		Add("c", []string{"v", "u", "u"}).
		Done()

	f := FacetGrid{Row: "r", Col: "c", FreeX: true, FreeY: true}
	layout, err := f.ComputeLayout([]*table.Table{data})
	if err != nil {
		t.Fatal(err)
	}
	// Panels are numbered row-major over the level grid.
	if want := []int{1, 2, 3, 4}; !de(want, layout.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(ColPanel))
	}
	if want := []int{0, 0, 1, 1}; !de(want, layout.MustColumn(colPanelRow)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colPanelRow))
	}
	if want := []int{0, 1, 0, 1}; !de(want, layout.MustColumn(colPanelCol)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colPanelCol))
	}
	if want := []string{"p", "p", "q", "q"}; !de(want, layout.MustColumn("r")) {
		t.Errorf("want %v; got %v", want, layout.MustColumn("r"))
	}
	if want := []string{"u", "v", "u", "v"}; !de(want, layout.MustColumn("c")) {
		t.Errorf("want %v; got %v", want, layout.MustColumn("c"))
	}
	// Free x scales go per panel column, free y scales per panel
	// row.
	if want := []int{0, 1, 0, 1}; !de(want, layout.MustColumn(colScaleX)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colScaleX))
	}
	if want := []int{0, 0, 1, 1}; !de(want, layout.MustColumn(colScaleY)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colScaleY))
	}

	got, err := f.AssignPanels(data, layout)
	if err != nil {
		t.Fatal(err)
	}
	// (q,v)=4, (p,u)=1, (q,u)=3.
	if want := []int{4, 1, 3}; !de(want, got.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, got.MustColumn(ColPanel))
	}

	// A table with only the row column is repeated across the
	// panel columns it matches.
	rowsOnly := new(table.Builder).
		Add("r", []string{"p"}).
		Add("v", []float64{7}).
		Done()
	got, err = f.AssignPanels(rowsOnly, layout)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2}; !de(want, got.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, got.MustColumn(ColPanel))
	}
	if want := []float64{7, 7}; !de(want, got.MustColumn("v")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("v"))
	}

	// Column labels sit above the first row; row labels right of
	// the last column.
	strips := [][2]string{{"u", ""}, {"v", "p"}, {"", ""}, {"", "q"}}
	for i, want := range strips {
		top, right := f.Strips(layout, i+1)
		if top != want[0] || right != want[1] {
			t.Errorf("panel %d: want strips %q, %q; got %q, %q", i+1, want[0], want[1], top, right)
		}
	}
}

func TestFacetGridSingleAxis(t *testing.T) {
	data := new(table.Builder).Add("r", []string{"p", "q"}).Done()
	f := FacetGrid{Row: "r"}
	layout, err := f.ComputeLayout([]*table.Table{data})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2}; !de(want, layout.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(ColPanel))
	}
	if want := []int{0, 1}; !de(want, layout.MustColumn(colPanelRow)) {
		t.Errorf("want %v; got %v", want, layout.MustColumn(colPanelRow))
	}
	// A single panel column puts every row label on its panel.
	if top, right := f.Strips(layout, 1); top != "" || right != "p" {
		t.Errorf(`want strips "", "p"; got %q, %q`, top, right)
	}

	_, err = FacetGrid{}.ComputeLayout([]*table.Table{data})
	if err == nil || err.Error() != "facet grid has no faceting columns" {
		t.Errorf("want no faceting columns error; got %v", err)
	}
}

func TestLayout(t *testing.T) {
	panels := new(table.Builder).
		Add(ColPanel, []int{1, 2}).
		Add(colPanelRow, []int{0, 0}).
		Add(colPanelCol, []int{0, 1}).
		Add(colScaleX, []int{0, 0}).
		Add(colScaleY, []int{0, 1}).
		Done()
	ly, err := newLayout(FacetNull{}, CoordCartesian{}, panels)
	if err != nil {
		t.Fatal(err)
	}
	if ly.Rows != 1 || ly.Cols != 2 {
		t.Errorf("want 1x2 grid; got %dx%d", ly.Rows, ly.Cols)
	}
	if ly.NPanels() != 2 {
		t.Errorf("want 2 panels; got %d", ly.NPanels())
	}
	if want := []int{1, 2}; !de(want, ly.PanelIDs()) {
		t.Errorf("want %v; got %v", want, ly.PanelIDs())
	}
	if row, col := ly.PanelPos(2); row != 0 || col != 1 {
		t.Errorf("want (0, 1); got (%d, %d)", row, col)
	}
	if got := ly.PanelAt(0, 1); got != 2 {
		t.Errorf("want panel 2; got %d", got)
	}
	if got := ly.PanelAt(5, 5); got != 0 {
		t.Errorf("want 0 for an empty cell; got %d", got)
	}
	if nx, ny := ly.nScales(); nx != 1 || ny != 2 {
		t.Errorf("want 1 x scale and 2 y scales; got %d, %d", nx, ny)
	}

	sx := &ContinuousScale{Aes: "x"}
	sx.Train([]float64{0, 10})
	sy1 := &DiscreteScale{Aes: "y"}
	sy1.Train([]string{"a", "b", "c"})
	sy2 := &ContinuousScale{Aes: "y"}
	ly.XScales = []PositionScaler{sx}
	ly.YScales = []PositionScaler{sy1, sy2}
	if got := ly.ScaleY(1); got != PositionScaler(sy1) {
		t.Errorf("want %v; got %v", sy1, got)
	}
	if got := ly.ScaleY(2); got != PositionScaler(sy2) {
		t.Errorf("want %v; got %v", sy2, got)
	}
	r := ly.Ranges(1)
	if want := expandRange(0, 10, 0.05, 0); r.X != want {
		t.Errorf("want x range %v; got %v", want, r.X)
	}
	if want := expandRange(1, 3, 0, 0.6); r.Y != want {
		t.Errorf("want y range %v; got %v", want, r.Y)
	}

	shouldPanic(t, "unknown panel 99", func() { ly.PanelPos(99) })
}

func TestNewLayoutErrors(t *testing.T) {
	missing := new(table.Builder).
		Add(ColPanel, []int{1}).
		Add(colPanelRow, []int{0}).
		Add(colPanelCol, []int{0}).
		Add(colScaleX, []int{0}).
		Done()
	_, err := newLayout(FacetNull{}, CoordCartesian{}, missing)
	if err == nil || err.Error() != `panel table has no "scale-y" column` {
		t.Errorf("want missing column error; got %v", err)
	}

	badType := new(table.Builder).
		Add(ColPanel, []float64{1}).
		Add(colPanelRow, []int{0}).
		Add(colPanelCol, []int{0}).
		Add(colScaleX, []int{0}).
		Add(colScaleY, []int{0}).
		Done()
	_, err = newLayout(FacetNull{}, CoordCartesian{}, badType)
	if err == nil || err.Error() != `panel table column "panel" must be []int; got []float64` {
		t.Errorf("want column type error; got %v", err)
	}

	empty := new(table.Builder).
		Add(ColPanel, []int{}).
		Add(colPanelRow, []int{}).
		Add(colPanelCol, []int{}).
		Add(colScaleX, []int{}).
		Add(colScaleY, []int{}).
		Done()
	_, err = newLayout(FacetNull{}, CoordCartesian{}, empty)
	if err == nil || err.Error() != "panel table has no panels" {
		t.Errorf("want no panels error; got %v", err)
	}
}

func TestExpandRange(t *testing.T) {
	if want := [2]float64{-0.5, 10.5}; expandRange(0, 10, 0.05, 0) != want {
		t.Errorf("want %v; got %v", want, expandRange(0, 10, 0.05, 0))
	}
	if want := [2]float64{0.4, 3.6}; expandRange(1, 3, 0, 0.6) != want {
		t.Errorf("want %v; got %v", want, expandRange(1, 3, 0, 0.6))
	}
	// A degenerate span widens by half a unit.
	if want := [2]float64{4.5, 5.5}; expandRange(5, 5, 0.05, 0) != want {
		t.Errorf("want %v; got %v", want, expandRange(5, 5, 0.05, 0))
	}
	// An explicit additive expansion applies even to a degenerate
	// span.
	if want := [2]float64{4, 6}; expandRange(5, 5, 0, 1) != want {
		t.Errorf("want %v; got %v", want, expandRange(5, 5, 0, 1))
	}
}
