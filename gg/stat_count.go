// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"github.com/aclements/go-ggplot/table"
)

// StatCount counts the rows at each distinct x, producing one row
// per distinct x with the columns x and count. It maps y to the
// count by default, which is what a bar chart of case counts needs.
type StatCount struct {
	StatBase
}

func (StatCount) DefaultAes() Aes {
	return Aes{"y": AfterStat("count")}
}

func (StatCount) ComputeGroup(t *table.Table, _ Params) (*table.Table, error) {
	parts := t.PartitionBy("x")
	xs := make([]float64, len(parts))
	counts := make([]int, len(parts))
	for i, part := range parts {
		x, err := posCol(part, "x")
		if err != nil {
			return nil, err
		}
		xs[i] = x[0]
		counts[i] = part.Len()
	}
	return new(table.Builder).Add("x", xs).Add("count", counts).Done(), nil
}

// ComputeTable counts every (panel, group, x) combination in one
// pass. The result is the same as counting each (panel, group)
// partition separately: PartitionBy orders partitions by ascending
// combination, which nests ascending x within ascending
// (panel, group).
func (s StatCount) ComputeTable(t *table.Table, _ Params) (*table.Table, error) {
	parts := t.PartitionBy(ColPanel, ColGroup, "x")
	panels := make([]int, len(parts))
	groups := make([]int, len(parts))
	xs := make([]float64, len(parts))
	counts := make([]int, len(parts))
	for i, part := range parts {
		panels[i] = intAt(part, ColPanel, 0, 0)
		groups[i] = intAt(part, ColGroup, 0, 0)
		x, err := posCol(part, "x")
		if err != nil {
			return nil, err
		}
		xs[i] = x[0]
		counts[i] = part.Len()
	}
	return new(table.Builder).
		Add(ColPanel, panels).
		Add(ColGroup, groups).
		Add("x", xs).
		Add("count", counts).
		Done(), nil
}
