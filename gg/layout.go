// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

// A Track is one row or column of a LayoutTable. Its extent is Pt
// points plus a share of the leftover space proportional to Flex.
type Track struct {
	Pt   float64
	Flex float64
}

// A Cell is one named entry of a LayoutTable, spanning RowSpan rows
// and ColSpan columns starting at (Row, Col).
type Cell struct {
	Name             string
	Row, Col         int
	RowSpan, ColSpan int
	Grob             Grob
}

// A LayoutTable is the rendered form of a plot: a grid of named
// cells holding graphical primitives, with fixed and flexible rows
// and columns. Row 0 is the top of the plot and column 0 the left
// edge.
//
// The table is resolution independent. A drawing backend picks an
// output size, calls Resolve to place the tracks, and draws each
// cell's grob into its rectangle, in cell order.
type LayoutTable struct {
	Widths  []Track
	Heights []Track
	Cells   []Cell
}

// Add places grob g in the named cell at (row, col), spanning
// rowSpan rows and colSpan columns.
func (lt *LayoutTable) Add(name string, row, col, rowSpan, colSpan int, g Grob) {
	lt.Cells = append(lt.Cells, Cell{name, row, col, rowSpan, colSpan, g})
}

// Cell returns the first cell with the given name, or nil.
func (lt *LayoutTable) Cell(name string) *Cell {
	for i := range lt.Cells {
		if lt.Cells[i].Name == name {
			return &lt.Cells[i]
		}
	}
	return nil
}

// Resolve assigns positions to the table's tracks for a width by
// height output, both in points. It returns the column boundaries
// xs, from the left edge, and the row boundaries ys, from the top:
// column c covers [xs[c], xs[c+1]] and row r covers [ys[r],
// ys[r+1]].
func (lt *LayoutTable) Resolve(width, height float64) (xs, ys []float64) {
	return resolveTracks(lt.Widths, width), resolveTracks(lt.Heights, height)
}

// resolveTracks places tracks along total points: every track gets
// its fixed extent and the flexible tracks split what remains in
// proportion to their flex. If the fixed extents alone exceed the
// total, the flexible tracks collapse to zero rather than going
// negative.
func resolveTracks(tracks []Track, total float64) []float64 {
	sumPt, sumFlex := 0.0, 0.0
	for _, tr := range tracks {
		sumPt += tr.Pt
		sumFlex += tr.Flex
	}
	avail := total - sumPt
	if avail < 0 {
		avail = 0
	}

	out := make([]float64, len(tracks)+1)
	pos := 0.0
	for i, tr := range tracks {
		out[i] = pos
		pos += tr.Pt
		if sumFlex > 0 {
			pos += avail * tr.Flex / sumFlex
		}
	}
	out[len(tracks)] = pos
	return out
}
