// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"math"

	"github.com/aclements/go-ggplot/table"
)

// PanelRanges are the final mapped-space ranges of one panel, after
// scale expansion. Geoms and coordinate systems use them to place
// mapped positions inside the panel.
type PanelRanges struct {
	X, Y [2]float64
}

// normTo maps v from [rng[0], rng[1]] to [0, 1].
func normTo(v float64, rng [2]float64) float64 {
	span := rng[1] - rng[0]
	if span <= 0 {
		return 0.5
	}
	return (v - rng[0]) / span
}

// An AxisInfo gives the tick positions along one panel edge in
// normalized panel coordinates, with their labels.
type AxisInfo struct {
	Pos    []float64
	Labels []string
}

// A Coord is a coordinate system. It places mapped positions inside
// a panel and determines how panel axes are labeled.
//
// Coordinate systems are stateless values; the same Coord may be
// shared by concurrent builds.
type Coord interface {
	// IsLinear reports whether straight lines between mapped
	// positions remain straight in the panel. Geoms that only
	// draw correctly under linear coordinates degrade, with a
	// warning, under a non-linear Coord.
	IsLinear() bool

	// Transform maps mapped-space positions into normalized panel
	// coordinates, where (0, 0) is the bottom left corner of the
	// panel and (1, 1) the top right.
	Transform(x, y []float64, r *PanelRanges) (nx, ny []float64)

	// RenderAxis computes the axis along one side of a panel:
	// 'b' for the bottom edge and 'l' for the left edge. The
	// scales are the panel's x and y scales; which of them labels
	// the requested side is up to the coordinate system.
	RenderAxis(side byte, sx, sy PositionScaler, r *PanelRanges) AxisInfo
}

// A CoordSetup is a coordinate system that adjusts layer data before
// panels are assigned.
type CoordSetup interface {
	Coord
	SetupData(t *table.Table) (*table.Table, error)
}

// CoordCartesian is the default coordinate system: x runs
// horizontally, y vertically, both linearly.
type CoordCartesian struct{}

func (CoordCartesian) IsLinear() bool { return true }

func (CoordCartesian) Transform(x, y []float64, r *PanelRanges) (nx, ny []float64) {
	nx = make([]float64, len(x))
	ny = make([]float64, len(y))
	for i := range x {
		nx[i] = normTo(x[i], r.X)
	}
	for i := range y {
		ny[i] = normTo(y[i], r.Y)
	}
	return nx, ny
}

func (CoordCartesian) RenderAxis(side byte, sx, sy PositionScaler, r *PanelRanges) AxisInfo {
	sc, rng := sx, r.X
	if side == 'l' {
		sc, rng = sy, r.Y
	}
	breaks, labels := sc.Breaks(), sc.Labels()
	var ax AxisInfo
	for i, b := range breaks {
		t := normTo(b, rng)
		if t < 0 || t > 1 {
			continue
		}
		ax.Pos = append(ax.Pos, t)
		if i < len(labels) {
			ax.Labels = append(ax.Labels, labels[i])
		} else {
			ax.Labels = append(ax.Labels, "")
		}
	}
	return ax
}

// CoordFlip swaps the axes: x runs vertically and y horizontally.
// It borrows CoordCartesian for the actual placement.
type CoordFlip struct{}

func (CoordFlip) IsLinear() bool { return true }

// flip swaps the x and y ranges.
func (CoordFlip) flip(r *PanelRanges) *PanelRanges {
	return &PanelRanges{X: r.Y, Y: r.X}
}

func (f CoordFlip) Transform(x, y []float64, r *PanelRanges) (nx, ny []float64) {
	return CoordCartesian{}.Transform(y, x, f.flip(r))
}

func (f CoordFlip) RenderAxis(side byte, sx, sy PositionScaler, r *PanelRanges) AxisInfo {
	return CoordCartesian{}.RenderAxis(side, sy, sx, f.flip(r))
}

// CoordPolar maps x to an angle, clockwise from 12 o'clock, and y to
// a radius from the panel center. It is not linear: geoms that
// declare correctness only under linear coordinates draw degraded
// under CoordPolar, and panel edges carry no position breaks except
// the radius ticks on the left edge.
type CoordPolar struct{}

// maxRadius is the radius of a full-range value in normalized panel
// coordinates, leaving a margin inside the panel.
const maxRadius = 0.4

func (CoordPolar) IsLinear() bool { return false }

func (CoordPolar) Transform(x, y []float64, r *PanelRanges) (nx, ny []float64) {
	nx = make([]float64, len(x))
	ny = make([]float64, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			nx[i], ny[i] = math.NaN(), math.NaN()
			continue
		}
		theta := 2 * math.Pi * normTo(x[i], r.X)
		rad := maxRadius * normTo(y[i], r.Y)
		nx[i] = 0.5 + rad*math.Sin(theta)
		ny[i] = 0.5 + rad*math.Cos(theta)
	}
	return nx, ny
}

func (CoordPolar) RenderAxis(side byte, sx, sy PositionScaler, r *PanelRanges) AxisInfo {
	if side != 'l' {
		return AxisInfo{}
	}
	// Radius ticks, from the center upward.
	breaks, labels := sy.Breaks(), sy.Labels()
	var ax AxisInfo
	for i, b := range breaks {
		t := normTo(b, r.Y)
		if t < 0 || t > 1 {
			continue
		}
		ax.Pos = append(ax.Pos, 0.5+maxRadius*t)
		if i < len(labels) {
			ax.Labels = append(ax.Labels, labels[i])
		} else {
			ax.Labels = append(ax.Labels, "")
		}
	}
	return ax
}
