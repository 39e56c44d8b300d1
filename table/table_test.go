// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"
	"regexp"
	"testing"
)

func de(x, y interface{}) bool {
	return reflect.DeepEqual(x, y)
}

func shouldPanic(t *testing.T, re string, f func()) {
	t.Helper()
	r := regexp.MustCompile(re)
	defer func() {
		err := recover()
		if err == nil {
			t.Fatalf("want panic matching %q; got no panic", re)
		} else if !r.MatchString(fmt.Sprintf("%s", err)) {
			t.Fatalf("want panic matching %q; got %s", re, err)
		}
	}()
	f()
}

func TestBuilder(t *testing.T) {
	tab := new(Builder).Add("x", []int{1, 2, 3}).Add("y", []string{"a", "b", "c"}).Done()
	if want := 3; tab.Len() != want {
		t.Errorf("want %v rows; got %v", want, tab.Len())
	}
	if want := []string{"x", "y"}; !de(want, tab.Columns()) {
		t.Errorf("want %v; got %v", want, tab.Columns())
	}
	if want := []int{1, 2, 3}; !de(want, tab.Column("x")) {
		t.Errorf("want %v; got %v", want, tab.Column("x"))
	}
	if !tab.Has("x") || tab.Has("z") {
		t.Errorf("Has is wrong: x %v, z %v", tab.Has("x"), tab.Has("z"))
	}
	if c := tab.Column("z"); c != nil {
		t.Errorf("want nil; got %v", c)
	}
}

func TestBuilderReplaceKeepsPosition(t *testing.T) {
	tab := new(Builder).
		Add("x", []int{1, 2}).
		Add("y", []int{3, 4}).
		Add("x", []int{5, 6}).
		Done()
	if want := []string{"x", "y"}; !de(want, tab.Columns()) {
		t.Errorf("want %v; got %v", want, tab.Columns())
	}
	if want := []int{5, 6}; !de(want, tab.Column("x")) {
		t.Errorf("want %v; got %v", want, tab.Column("x"))
	}
}

func TestBuilderRemove(t *testing.T) {
	tab := new(Builder).
		Add("x", []int{1, 2}).
		Add("y", []int{3, 4}).
		Add("x", nil).
		Done()
	if want := []string{"y"}; !de(want, tab.Columns()) {
		t.Errorf("want %v; got %v", want, tab.Columns())
	}
	// Removing an unknown column is a no-op.
	tab = NewBuilder(tab).Add("z", nil).Done()
	if want := []string{"y"}; !de(want, tab.Columns()) {
		t.Errorf("want %v; got %v", want, tab.Columns())
	}
}

func TestBuilderPanics(t *testing.T) {
	shouldPanic(t, `column "x" is not a slice`, func() {
		new(Builder).Add("x", 42)
	})
	shouldPanic(t, `column "y" has 1 elements, but table has 2 rows`, func() {
		new(Builder).Add("x", []int{1, 2}).Add("y", []int{1})
	})
	shouldPanic(t, `unknown column "z"`, func() {
		tab := new(Builder).Add("x", []int{1}).Done()
		tab.MustColumn("z")
	})
}

func TestNewBuilder(t *testing.T) {
	tab := new(Builder).Add("x", []int{1, 2}).AddConst("c", "k").Done()
	tab2 := NewBuilder(tab).Add("y", []float64{3, 4}).Done()

	// The original must be unaffected.
	if want := []string{"x", "c"}; !de(want, tab.Columns()) {
		t.Errorf("want %v; got %v", want, tab.Columns())
	}
	if want := []string{"x", "c", "y"}; !de(want, tab2.Columns()) {
		t.Errorf("want %v; got %v", want, tab2.Columns())
	}
	if v, ok := tab2.Const("c"); !ok || v != "k" {
		t.Errorf("want k, true; got %v, %v", v, ok)
	}
}

func TestConstColumns(t *testing.T) {
	tab := new(Builder).Add("x", []int{1, 2, 3}).AddConst("w", 1.5).Done()
	if v, ok := tab.Const("w"); !ok || v != 1.5 {
		t.Errorf("want 1.5, true; got %v, %v", v, ok)
	}
	if _, ok := tab.Const("x"); ok {
		t.Errorf("Const(x) should not be ok")
	}
	if want := []float64{1.5, 1.5, 1.5}; !de(want, tab.Column("w")) {
		t.Errorf("want %v; got %v", want, tab.Column("w"))
	}

	// Replacing a constant column with data keeps its position.
	tab2 := NewBuilder(tab).Add("w", []float64{1, 2, 3}).Done()
	if want := []string{"x", "w"}; !de(want, tab2.Columns()) {
		t.Errorf("want %v; got %v", want, tab2.Columns())
	}
	if _, ok := tab2.Const("w"); ok {
		t.Errorf("Const(w) should not be ok after Add")
	}

	// A table with only constant columns has no rows.
	tab3 := new(Builder).AddConst("k", "v").Done()
	if tab3.Len() != 0 {
		t.Errorf("want 0 rows; got %v", tab3.Len())
	}
	if want := []string{}; !de(want, tab3.Column("k")) {
		t.Errorf("want %v; got %v", want, tab3.Column("k"))
	}
}

func TestEmptyTable(t *testing.T) {
	tab := new(Builder).Done()
	if tab.Len() != 0 {
		t.Errorf("want 0 rows; got %v", tab.Len())
	}
	if len(tab.Columns()) != 0 {
		t.Errorf("want no columns; got %v", tab.Columns())
	}

	// Zero-length columns are allowed.
	tab = new(Builder).Add("x", []int{}).Done()
	if tab.Len() != 0 {
		t.Errorf("want 0 rows; got %v", tab.Len())
	}
	if !tab.Has("x") {
		t.Errorf("table should have column x")
	}
}
