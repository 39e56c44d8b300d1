// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"

	"github.com/aclements/go-ggplot/table"
)

// Legend participation of a layer.
const (
	// LegendAuto contributes legend keys for every aesthetic the
	// layer maps.
	LegendAuto = iota

	// LegendAlways contributes keys to every legend, mapped or
	// not.
	LegendAlways

	// LegendNever keeps the layer out of all legends.
	LegendNever
)

// A Layer combines data, aesthetic mappings, a statistical
// transformation, a geometric encoding and a position adjustment.
// Layers draw in the order they appear in Plot.Layers: later layers
// draw on top of earlier ones.
//
// The only required field is Geom. Everything else has a default: the
// data and aesthetic mappings are inherited from the plot, the
// statistic defaults to StatIdentity, and the position adjustment to
// PositionIdentity.
type Layer struct {
	// Data is the layer's own data table. If Data is nil the layer
	// uses the plot's data, possibly derived through DataFn.
	Data *table.Table

	// DataFn derives the layer's data from the plot's data. It is
	// consulted only when Data is nil.
	DataFn func(*table.Table) (*table.Table, error)

	// Aes maps aesthetics for this layer. Mappings the layer does
	// not provide are inherited from the plot unless NoInheritAes
	// is set.
	Aes Aes

	// Stat transforms the layer's data before it is encoded. A nil
	// Stat is StatIdentity.
	Stat Stat

	// Geom encodes the layer's data as graphical primitives.
	Geom Geom

	// Position resolves overlapping geometry after the statistic
	// has run. A nil Position is PositionIdentity.
	Position Position

	// Params holds parameters for the layer's statistic, geom and
	// position adjustment, such as "bins" or "width". A parameter
	// named after an aesthetic sets that aesthetic to a fixed,
	// unscaled value when it is not mapped.
	//
	// Components may rewrite parameters during a build; the
	// Layer's own map is never modified.
	Params Params

	// NoInheritAes stops the layer from inheriting the plot's
	// aesthetic mappings.
	NoInheritAes bool

	// ShowLegend is one of LegendAuto, LegendAlways or
	// LegendNever.
	ShowLegend int

	// NaRM removes rows with missing values silently. By default
	// removed rows are counted in a warning.
	NaRM bool
}

// resolveData returns the data table the layer should be built from,
// given the plot's default table.
func (l *Layer) resolveData(def *table.Table) (*table.Table, error) {
	switch {
	case l.Data != nil:
		return l.Data, nil
	case l.DataFn != nil:
		t, err := l.DataFn(def)
		if err != nil {
			return nil, fmt.Errorf("data function: %v", err)
		}
		if t == nil {
			return nil, fmt.Errorf("data function returned no table")
		}
		return t, nil
	}
	return def, nil
}

// resolveAes returns the layer's effective aesthetic mappings: the
// layer's own mappings, filled in from the plot unless inheritance is
// off, and then from the statistic's defaults.
func (l *Layer) resolveAes(plot Aes, stat Stat) Aes {
	a := l.Aes
	if !l.NoInheritAes {
		a = a.merge(plot)
	} else if a == nil {
		a = Aes{}
	}
	return a.merge(stat.DefaultAes())
}

// stat returns the layer's statistic, defaulted.
func (l *Layer) stat() Stat {
	if l.Stat == nil {
		return StatIdentity{}
	}
	return l.Stat
}

// position returns the layer's position adjustment, defaulted.
func (l *Layer) position() Position {
	if l.Position == nil {
		return PositionIdentity{}
	}
	return l.Position
}
