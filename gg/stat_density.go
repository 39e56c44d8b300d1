// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/aclements/go-ggplot/table"
)

// StatDensity estimates the probability density of x by kernel
// density estimation, producing one row per sample point with the
// columns x and density. It maps y to the density by default.
//
// Parameters: "bw" fixes the kernel bandwidth (the default is
// Scott's estimate from the data); "n" is the number of sample
// points (default 200).
type StatDensity struct {
	StatBase
}

func (StatDensity) DefaultAes() Aes {
	return Aes{"y": AfterStat("density")}
}

func (StatDensity) ComputeGroup(t *table.Table, p Params) (*table.Table, error) {
	n, err := p.Int("n", 200)
	if err != nil {
		return nil, err
	}
	bw, err := p.Float64("bw", 0)
	if err != nil {
		return nil, err
	}
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}

	var xs []float64
	for _, v := range x {
		if isFinite(v) {
			xs = append(xs, v)
		}
	}
	empty := func() *table.Table {
		return new(table.Builder).Add("x", []float64{}).Add("density", []float64{}).Done()
	}
	if len(xs) < 2 {
		Warning.Printf("cannot estimate density of %d point(s); ignoring", len(xs))
		return empty(), nil
	}

	kde := stats.KDE{Sample: stats.Sample{Xs: xs}, Bandwidth: bw}
	if kde.Bandwidth == 0 {
		kde.Bandwidth = stats.BandwidthScott(kde.Sample)
	}

	// Widen the domain so the density tails off instead of
	// stopping at the extreme samples.
	min, max := kde.Sample.Bounds()
	min, max = min-3*kde.Bandwidth, max+3*kde.Bandwidth

	ss := vec.Linspace(min, max, n)
	return new(table.Builder).
		Add("x", ss).
		Add("density", vec.Map(kde.PDF, ss)).
		Done(), nil
}
