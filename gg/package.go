// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gg builds layered, faceted plots from declarative
// descriptions.
//
// A plot is described by a Plot value: a data table, a set of
// aesthetic mappings from data columns to visual properties, and a
// list of layers, each combining a statistical transformation (Stat),
// a geometric representation (Geom), and a position adjustment
// (Position). Scales translate data values into aesthetic values,
// facets split the data into panels, and a coordinate system places
// mapped points inside each panel.
//
// Build evaluates the description into concrete per-layer data
// tables and trained scales. Render turns the result of Build into a
// layout table of named cells holding trees of graphical primitives,
// which a drawing backend can paint at any size.
//
// All intermediate data flows through table.Table values. Every
// intermediate table carries a "panel" column and a "group" column
// identifying the facet panel and the group each row belongs to;
// components transform the remaining columns but must preserve these
// two.
//
// Components are stateless values: a Geom, Stat, Position, Facet or
// Coord carries only its configuration and may be shared between
// plots and between concurrent builds. Scales are the one stateful
// component family, so Build clones every scale before training it.
package gg
