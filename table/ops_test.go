// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"math"
	"testing"
)

func TestSelectRows(t *testing.T) {
	tab := new(Builder).
		Add("x", []int{10, 20, 30}).
		AddConst("g", "a").
		Done()

	got := tab.SelectRows([]int{2, 0, 0})
	if want := []int{30, 10, 10}; !de(want, got.Column("x")) {
		t.Errorf("want %v; got %v", want, got.Column("x"))
	}
	if v, ok := got.Const("g"); !ok || v != "a" {
		t.Errorf("want constant g=a; got %v, %v", v, ok)
	}
	if got.Len() != 3 {
		t.Errorf("want 3 rows; got %v", got.Len())
	}

	empty := tab.SelectRows([]int{})
	if empty.Len() != 0 {
		t.Errorf("want 0 rows; got %v", empty.Len())
	}
}

func TestConcat(t *testing.T) {
	t1 := new(Builder).Add("x", []int{1, 2}).AddConst("g", 1).Done()
	t2 := new(Builder).Add("x", []int{3}).AddConst("g", 1).Done()
	t3 := new(Builder).Add("x", []int{4}).AddConst("g", 2).Done()

	got := Concat(t1, t2)
	if want := []int{1, 2, 3}; !de(want, got.Column("x")) {
		t.Errorf("want %v; got %v", want, got.Column("x"))
	}
	// g is the same constant in both tables, so it stays constant.
	if v, ok := got.Const("g"); !ok || v != 1 {
		t.Errorf("want constant g=1; got %v, %v", v, ok)
	}

	// Differing constants materialize.
	got = Concat(t1, t3)
	if _, ok := got.Const("g"); ok {
		t.Errorf("g should not be constant")
	}
	if want := []int{1, 1, 2}; !de(want, got.Column("g")) {
		t.Errorf("want %v; got %v", want, got.Column("g"))
	}

	if got := Concat(); got.Len() != 0 {
		t.Errorf("want empty table; got %v rows", got.Len())
	}

	shouldPanic(t, "different columns", func() {
		Concat(t1, new(Builder).Add("y", []int{1}).Done())
	})
}

func TestSortBy(t *testing.T) {
	tab := new(Builder).
		Add("a", []string{"b", "a", "b", "a"}).
		Add("b", []int{2, 3, 1, 0}).
		Done()

	got := tab.SortBy("a")
	// The sort must be stable.
	if want := []int{3, 0, 2, 1}; !de(want, got.Column("b")) {
		t.Errorf("want %v; got %v", want, got.Column("b"))
	}

	got = tab.SortBy("a", "b")
	if want := []int{0, 3, 1, 2}; !de(want, got.Column("b")) {
		t.Errorf("want %v; got %v", want, got.Column("b"))
	}

	shouldPanic(t, `unknown column "c"`, func() {
		tab.SortBy("c")
	})
}

func TestSortByNaN(t *testing.T) {
	tab := new(Builder).
		Add("x", []float64{math.NaN(), 1, 3, 2}).
		Add("i", []int{0, 1, 2, 3}).
		Done()
	got := tab.SortBy("x")
	if want := []int{1, 3, 2, 0}; !de(want, got.Column("i")) {
		t.Errorf("want %v; got %v", want, got.Column("i"))
	}
}

func TestPartitionBy(t *testing.T) {
	tab := new(Builder).
		Add("panel", []int{2, 1, 2, 1, 1}).
		Add("group", []int{1, 2, 1, 1, 2}).
		Add("x", []float64{10, 20, 30, 40, 50}).
		Done()

	parts := tab.PartitionBy("panel", "group")
	if want := 3; len(parts) != want {
		t.Fatalf("want %v partitions; got %v", want, len(parts))
	}

	// Partitions are ordered by ascending (panel, group) and rows
	// keep their original relative order within each partition.
	wants := []struct {
		panel, group int
		x            []float64
	}{
		{1, 1, []float64{40}},
		{1, 2, []float64{20, 50}},
		{2, 1, []float64{10, 30}},
	}
	for i, want := range wants {
		p := parts[i]
		if g := p.Column("panel").([]int)[0]; g != want.panel {
			t.Errorf("partition %d: want panel %v; got %v", i, want.panel, g)
		}
		if g := p.Column("group").([]int)[0]; g != want.group {
			t.Errorf("partition %d: want group %v; got %v", i, want.group, g)
		}
		if !de(want.x, p.Column("x")) {
			t.Errorf("partition %d: want %v; got %v", i, want.x, p.Column("x"))
		}
	}

	if parts := new(Builder).Add("x", []int{}).Done().PartitionBy("x"); parts != nil {
		t.Errorf("want no partitions; got %v", len(parts))
	}
}
