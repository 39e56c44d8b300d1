// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"

	"github.com/aclements/go-ggplot/table"
)

// StatBin divides the x range into equal-width bins and counts the
// rows in each. It produces one row per bin with the columns x (the
// bin midpoint), count and density, and maps y to the count by
// default.
//
// Parameters: "bins" is the number of bins over the layer's x range
// (default 30); "width" overrides it with a fixed bin width; and
// "origin" places the left edge of the first bin. SetupParams
// rewrites "bins" into concrete "width" and "origin" values derived
// from the whole layer, so every (panel, group) partition bins
// identically. The shared "width" parameter also sizes GeomBar bars
// to exactly one bin.
type StatBin struct {
	StatBase
}

func (StatBin) DefaultAes() Aes {
	return Aes{"y": AfterStat("count")}
}

func (StatBin) SetupParams(t *table.Table, p Params) (Params, error) {
	width, err := p.Float64("width", 0)
	if err != nil {
		return nil, err
	}
	bins, err := p.Int("bins", 0)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		x, err := posCol(t, "x")
		if err != nil {
			return nil, err
		}
		lo, hi := finiteBounds(x)
		if bins <= 0 {
			bins = 30
			Warning.Printf(`binning into 30 bins; set the "bins" or "width" parameter to pick a better value`)
		}
		width = (hi - lo) / float64(bins)
		if width <= 0 {
			width = 1
		}
		p = p.With("width", width)
		if !p.Has("origin") {
			p = p.With("origin", lo)
		}
	}
	if !p.Has("origin") {
		x, err := posCol(t, "x")
		if err != nil {
			return nil, err
		}
		lo, _ := finiteBounds(x)
		p = p.With("origin", lo)
	}
	return p, nil
}

func (StatBin) ComputeGroup(t *table.Table, p Params) (*table.Table, error) {
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}
	width, err := p.Float64("width", 0)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, fmt.Errorf(`bin width %v must be positive`, width)
	}
	origin, err := p.Float64("origin", 0)
	if err != nil {
		return nil, err
	}

	var counts []int
	total := 0
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		// Bins are right-closed: a value on a bin edge belongs to
		// the bin to its left, except at the origin itself.
		d := (v - origin) / width
		b := int(math.Ceil(d)) - 1
		if d == 0 {
			b = 0
		}
		if b < 0 {
			// Below the origin.
			continue
		}
		for len(counts) <= b {
			counts = append(counts, 0)
		}
		counts[b]++
		total++
	}

	mids := make([]float64, len(counts))
	density := make([]float64, len(counts))
	for i := range counts {
		mids[i] = origin + (float64(i)+0.5)*width
		if total > 0 {
			density[i] = float64(counts[i]) / (float64(total) * width)
		}
	}
	return new(table.Builder).
		Add("x", mids).
		Add("count", counts).
		Add("density", density).
		Done(), nil
}

// finiteBounds returns the finite min and max of xs, or (0, 1) if
// there are none.
func finiteBounds(xs []float64) (lo, hi float64) {
	found := false
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !found {
			lo, hi, found = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if !found {
		return 0, 1
	}
	return lo, hi
}
