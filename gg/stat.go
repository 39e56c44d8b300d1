// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import "github.com/aclements/go-ggplot/table"

// A Stat is a statistical transformation: it replaces a layer's
// table with a derived one after aesthetic evaluation and before the
// geom encodes it.
//
// ComputeGroup receives one (panel, group) partition at a time. The
// build reattaches the partition's panel and group as leading
// constant columns of the result and concatenates the results in
// partition order, so a Stat itself never needs to carry those
// columns. All partitions of a layer must produce the same set of
// output columns.
//
// Stats are stateless values; per-build state flows through the
// layer parameters, which SetupParams may rewrite. StatBase
// implements the optional parts of the interface and is meant for
// embedding.
type Stat interface {
	// SetupParams fills in or rewrites layer parameters from the
	// whole layer's table, before partitioning. Parameters that
	// must agree across partitions, such as bin geometry, are
	// derived here. The input map is never modified.
	SetupParams(t *table.Table, p Params) (Params, error)

	// SetupData adjusts the layer's table once, before
	// partitioning.
	SetupData(t *table.Table, p Params) (*table.Table, error)

	// ComputeGroup transforms one (panel, group) partition.
	ComputeGroup(t *table.Table, p Params) (*table.Table, error)

	// FinishLayer adjusts the layer's resolved table at the end
	// of the build, after scales have mapped every aesthetic.
	FinishLayer(t *table.Table, p Params) (*table.Table, error)

	// DefaultAes returns mappings merged in for aesthetics the
	// layer leaves unmapped, typically deferred references to the
	// stat's output columns.
	DefaultAes() Aes
}

// A TableStat is a Stat that computes a whole layer at once instead
// of per (panel, group) partition. Its output must reproduce
// per-partition semantics: it carries the ColPanel and ColGroup
// columns itself, ordered by ascending (panel, group).
type TableStat interface {
	Stat

	// ComputeTable transforms the layer's whole table.
	ComputeTable(t *table.Table, p Params) (*table.Table, error)
}

// StatBase provides the optional parts of Stat as no-ops. It is
// meant for embedding.
type StatBase struct{}

func (StatBase) SetupParams(_ *table.Table, p Params) (Params, error) { return p, nil }

func (StatBase) SetupData(t *table.Table, _ Params) (*table.Table, error) { return t, nil }

func (StatBase) FinishLayer(t *table.Table, _ Params) (*table.Table, error) { return t, nil }

func (StatBase) DefaultAes() Aes { return nil }

// StatIdentity passes the layer's table through unchanged. It is the
// default statistic.
type StatIdentity struct {
	StatBase
}

func (StatIdentity) ComputeGroup(t *table.Table, _ Params) (*table.Table, error) {
	return t, nil
}

// ComputeTable lets the identity skip partitioning, keeping the
// layer's original row order.
func (StatIdentity) ComputeTable(t *table.Table, _ Params) (*table.Table, error) {
	return t, nil
}
