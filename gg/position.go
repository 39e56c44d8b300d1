// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-ggplot/table"
)

// A Position resolves overlapping geometry. It runs after the geom
// has derived its extent columns and operates purely on mapped
// positional columns: data in, data out. Overlap is resolved within
// each panel independently.
//
// Positions are stateless values.
type Position interface {
	// SetupData validates or adjusts the layer's table before
	// the adjustment runs.
	SetupData(t *table.Table, p Params) (*table.Table, error)

	// ComputeLayer applies the adjustment to the layer's table.
	ComputeLayer(t *table.Table, p Params) (*table.Table, error)
}

// PositionIdentity leaves positions alone. It is the default
// position adjustment.
type PositionIdentity struct{}

func (PositionIdentity) SetupData(t *table.Table, _ Params) (*table.Table, error) {
	return t, nil
}

func (PositionIdentity) ComputeLayer(t *table.Table, _ Params) (*table.Table, error) {
	return t, nil
}

// posKey identifies a stacking or dodging site: rows of one panel
// that share an x position.
type posKey struct {
	panel int
	x     float64
}

// PositionStack stacks overlapping rows on top of each other: at
// each x of a panel, the y extents of the rows accumulate. The first
// row at an x ends up on top, so stacking order follows group order.
type PositionStack struct{}

func (PositionStack) SetupData(t *table.Table, _ Params) (*table.Table, error) {
	if !t.Has("y") && !t.Has("ymax") {
		return nil, fmt.Errorf("stacking requires a y or ymax column")
	}
	return t, nil
}

func (PositionStack) ComputeLayer(t *table.Table, _ Params) (*table.Table, error) {
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}
	panels := intCol(t, ColPanel, 0)

	// Heights come from the bar extents when present, otherwise
	// from y itself.
	var heights []float64
	extents := t.Has("ymin") && t.Has("ymax")
	if extents {
		ymin, err := posCol(t, "ymin")
		if err != nil {
			return nil, err
		}
		ymax, err := posCol(t, "ymax")
		if err != nil {
			return nil, err
		}
		heights = make([]float64, len(ymin))
		for i := range heights {
			heights[i] = ymax[i] - ymin[i]
		}
	} else {
		if heights, err = posCol(t, "y"); err != nil {
			return nil, err
		}
	}

	newMin := make([]float64, t.Len())
	newMax := make([]float64, t.Len())

	// Gather the rows of each stacking site in row order. A
	// non-finite x belongs to no site and its row stays missing;
	// it must not reach the map, where a NaN key can be stored but
	// never found again.
	sites := make(map[posKey][]int)
	var order []posKey
	for i := range x {
		if !isFinite(x[i]) {
			newMin[i], newMax[i] = math.NaN(), math.NaN()
			continue
		}
		k := posKey{panels[i], x[i]}
		if _, ok := sites[k]; !ok {
			order = append(order, k)
		}
		sites[k] = append(sites[k], i)
	}

	for _, k := range order {
		// Accumulate bottom-up through the site's rows in
		// reverse, leaving the first row on top.
		cum := 0.0
		rows := sites[k]
		for j := len(rows) - 1; j >= 0; j-- {
			i := rows[j]
			h := heights[i]
			if !isFinite(h) {
				newMin[i], newMax[i] = h, h
				continue
			}
			newMin[i] = cum
			cum += h
			newMax[i] = cum
		}
	}

	b := table.NewBuilder(t)
	if extents {
		b.Add("ymin", newMin).Add("ymax", newMax)
	}
	if t.Has("y") {
		b.Add("y", newMax)
	}
	return b.Done(), nil
}

// PositionDodge places overlapping rows side by side: at each x of a
// panel, every group of the layer gets its own slot within the
// site's width.
//
// The "width" parameter sets the total site width in x units; the
// default is 90% of the smallest gap between distinct x values.
type PositionDodge struct{}

func (PositionDodge) SetupData(t *table.Table, _ Params) (*table.Table, error) {
	return t, nil
}

func (PositionDodge) ComputeLayer(t *table.Table, p Params) (*table.Table, error) {
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}
	w, err := p.Float64("width", 0)
	if err != nil {
		return nil, err
	}
	if w <= 0 {
		w = resolution(x) * 0.9
	}

	// Every group of the layer gets a slot, so bars are the same
	// width at every site.
	groups := intCol(t, ColGroup, NoGroup)
	distinct := map[int]bool{}
	for _, g := range groups {
		distinct[g] = true
	}
	slots := make([]int, 0, len(distinct))
	for g := range distinct {
		slots = append(slots, g)
	}
	sort.Ints(slots)
	slot := make(map[int]int, len(slots))
	for i, g := range slots {
		slot[g] = i
	}
	n := float64(len(slots))

	newX := make([]float64, t.Len())
	for i := range x {
		newX[i] = x[i] - w/2 + (float64(slot[groups[i]])+0.5)*w/n
	}

	b := table.NewBuilder(t).Add("x", newX)
	if t.Has("xmin") && t.Has("xmax") {
		xmin, err := posCol(t, "xmin")
		if err != nil {
			return nil, err
		}
		xmax, err := posCol(t, "xmax")
		if err != nil {
			return nil, err
		}
		nmin := make([]float64, len(xmin))
		nmax := make([]float64, len(xmax))
		for i := range xmin {
			// Shrink the extent to the slot and recenter.
			half := (xmax[i] - xmin[i]) / (2 * n)
			nmin[i] = newX[i] - half
			nmax[i] = newX[i] + half
		}
		b.Add("xmin", nmin).Add("xmax", nmax)
	}
	return b.Done(), nil
}
