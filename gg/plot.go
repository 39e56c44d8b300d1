// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"log"
	"os"

	"github.com/aclements/go-ggplot/table"
)

// Warning is a logger for reporting conditions that don't prevent
// production of a plot, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[ggplot] ", log.Lshortfile)

// Names of the row identifier columns that every intermediate table
// carries. The panel column assigns each row to a facet panel. The
// group column assigns each row to a group within its layer; group
// NoGroup means the layer forms a single unpartitioned group.
const (
	ColPanel = "panel"
	ColGroup = "group"
)

// NoGroup is the group ID of rows that belong to no particular
// group.
const NoGroup = -1

// A Plot describes a layered plot. The zero value of most fields
// selects a reasonable default: a nil Facet means a single panel, a
// nil Coord means Cartesian coordinates, a nil Theme means
// DefaultTheme(), and a nil Scales means all scales are inferred
// from the data.
//
// A Plot is purely a description. Build interprets it; neither Build
// nor Render modifies the Plot, so a Plot may be built any number of
// times and shared between goroutines.
type Plot struct {
	// Data is the default data table for layers that don't
	// provide their own.
	Data *table.Table

	// Aes maps aesthetics to data expressions. Layers inherit
	// these mappings unless they opt out.
	Aes Aes

	// Layers are the layers of the plot, drawn in order.
	Layers []*Layer

	// Scales overrides the default scale for particular
	// aesthetics.
	Scales *Scales

	// Facet splits the data into panels.
	Facet Facet

	// Coord places mapped positions inside each panel.
	Coord Coord

	// Theme controls presentation details such as fonts, colors
	// and legend placement.
	Theme *Theme

	// Title, Subtitle, Caption and Tag annotate the whole plot.
	// Empty strings are omitted from the output.
	Title    string
	Subtitle string
	Caption  string
	Tag      string

	// XLabel and YLabel override the default axis titles, which
	// are derived from the aesthetic mappings.
	XLabel, YLabel string
}

// NewPlot returns a new Plot with default data table data.
func NewPlot(data *table.Table) *Plot {
	return &Plot{Data: data}
}

// Add appends layers to the plot and returns p to permit method
// chaining.
func (p *Plot) Add(layers ...*Layer) *Plot {
	p.Layers = append(p.Layers, layers...)
	return p
}

// SetScale sets the scale for the aesthetic family of s, replacing
// any previous scale for that family, and returns p.
func (p *Plot) SetScale(s Scaler) *Plot {
	if p.Scales == nil {
		p.Scales = NewScales()
	}
	p.Scales.Set(s)
	return p
}

// validate checks the parts of the plot description that must be
// well-formed before the build starts.
func (p *Plot) validate() error {
	if len(p.Layers) == 0 {
		return fmt.Errorf("plot has no layers")
	}
	for i, l := range p.Layers {
		if l == nil {
			return fmt.Errorf("layer %d is nil", i)
		}
		if l.Geom == nil {
			return fmt.Errorf("layer %d has no geom", i)
		}
		if l.Data == nil && p.Data == nil {
			return fmt.Errorf("layer %d has no data", i)
		}
	}
	return nil
}
