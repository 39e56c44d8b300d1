// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/vec"

	"github.com/aclements/go-ggplot/table"
)

// StatSmooth fits a least squares polynomial to (x, y) and samples
// it over the x range, producing one row per sample point with the
// columns x and y. Pair it with GeomLine for a trend line.
//
// Parameters: "degree" is the degree of the fit polynomial (default
// 1, a straight line); "n" is the number of sample points (default
// 80).
type StatSmooth struct {
	StatBase
}

func (StatSmooth) ComputeGroup(t *table.Table, p Params) (*table.Table, error) {
	degree, err := p.Int("degree", 1)
	if err != nil {
		return nil, err
	}
	if degree < 1 {
		degree = 1
	}
	n, err := p.Int("n", 80)
	if err != nil {
		return nil, err
	}
	x, err := posCol(t, "x")
	if err != nil {
		return nil, err
	}
	y, err := posCol(t, "y")
	if err != nil {
		return nil, err
	}

	var xs, ys []float64
	for i := range x {
		if isFinite(x[i]) && isFinite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	if len(xs) <= degree {
		Warning.Printf("cannot fit a degree %d polynomial to %d point(s); ignoring", degree, len(xs))
		return new(table.Builder).Add("x", []float64{}).Add("y", []float64{}).Done(), nil
	}

	r := fit.PolynomialRegression(xs, ys, nil, degree)
	lo, hi := finiteBounds(xs)
	ss := vec.Linspace(lo, hi, n)
	return new(table.Builder).
		Add("x", ss).
		Add("y", vec.Map(r.F, ss)).
		Done(), nil
}
