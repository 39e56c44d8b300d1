// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-ggplot/table"
)

func TestStatIdentity(t *testing.T) {
	tab := new(table.Builder).Add("x", []float64{1, 2}).Done()
	got, err := StatIdentity{}.ComputeGroup(tab, nil)
	if err != nil || got != tab {
		t.Errorf("want the input table; got %v, %v", got, err)
	}
	got, err = StatIdentity{}.ComputeTable(tab, nil)
	if err != nil || got != tab {
		t.Errorf("want the input table; got %v, %v", got, err)
	}
	if aes := (StatIdentity{}).DefaultAes(); aes != nil {
		t.Errorf("want no default aes; got %v", aes)
	}
}

func TestStatCount(t *testing.T) {
	if want := (Aes{"y": AfterStat("count")}); !de(want, StatCount{}.DefaultAes()) {
		t.Errorf("want %v; got %v", want, StatCount{}.DefaultAes())
	}

	tab := new(table.Builder).Add("x", []float64{2, 1, 2, 1, 1}).Done()
	got, err := StatCount{}.ComputeGroup(tab, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 2}; !de(want, got.MustColumn("x")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("x"))
	}
	if want := []int{3, 2}; !de(want, got.MustColumn("count")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("count"))
	}

	_, err = StatCount{}.ComputeGroup(new(table.Builder).Add("x", []string{"a"}).Done(), nil)
	if err == nil {
		t.Errorf("want error for unmapped x; got nil")
	}
}

func TestStatCountTable(t *testing.T) {
	tab := new(table.Builder).
		Add(ColPanel, []int{1, 2, 1, 1}).
		Add(ColGroup, []int{1, 1, 2, 1}).
		Add("x", []float64{3, 7, 3, 3}).
		Done()
	got, err := StatCount{}.ComputeTable(tab, nil)
	if err != nil {
		t.Fatal(err)
	}
	// One row per (panel, group, x) combination, in ascending
	// order.
	if want := []int{1, 1, 2}; !de(want, got.MustColumn(ColPanel)) {
		t.Errorf("want %v; got %v", want, got.MustColumn(ColPanel))
	}
	if want := []int{1, 2, 1}; !de(want, got.MustColumn(ColGroup)) {
		t.Errorf("want %v; got %v", want, got.MustColumn(ColGroup))
	}
	if want := []float64{3, 3, 7}; !de(want, got.MustColumn("x")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("x"))
	}
	if want := []int{2, 1, 1}; !de(want, got.MustColumn("count")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("count"))
	}
}

func TestStatBinSetupParams(t *testing.T) {
	tab := new(table.Builder).Add("x", []float64{0, 1, 5}).Done()

	// An explicit width is kept; the origin defaults to the left
	// edge of the data.
	p := Params{"width": 2.0}
	p2, err := StatBin{}.SetupParams(tab, p)
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := p2.Float64("width", 0); w != 2 {
		t.Errorf("want width 2; got %v", w)
	}
	if o, _ := p2.Float64("origin", -1); o != 0 {
		t.Errorf("want origin 0; got %v", o)
	}
	if p.Has("origin") {
		t.Errorf("SetupParams must not modify the input map")
	}

	// An explicit bin count divides the data range.
	var buf bytes.Buffer
	old := Warning.Writer()
	Warning.SetOutput(&buf)
	defer Warning.SetOutput(old)

	tab = new(table.Builder).Add("x", []float64{0, 8}).Done()
	p2, err = StatBin{}.SetupParams(tab, Params{"bins": 4})
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := p2.Float64("width", 0); w != 2 {
		t.Errorf("want width 2; got %v", w)
	}
	if buf.Len() != 0 {
		t.Errorf("want no warning; got %q", buf.String())
	}

	// Without bins or width, 30 bins with a warning.
	tab = new(table.Builder).Add("x", []float64{0, 10}).Done()
	p2, err = StatBin{}.SetupParams(tab, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := p2.Float64("width", 0); w != 10.0/30 {
		t.Errorf("want width %v; got %v", 10.0/30, w)
	}
	if want := "binning into 30 bins"; !strings.Contains(buf.String(), want) {
		t.Errorf("want warning %q; got %q", want, buf.String())
	}
}

func TestStatBinCompute(t *testing.T) {
	tab := new(table.Builder).
		Add("x", []float64{0, 0.5, 1, 1.5, 2, 3, math.NaN(), math.Inf(1)}).
		Done()
	p := Params{"width": 1.0, "origin": 0.0}
	got, err := StatBin{}.ComputeGroup(tab, p)
	if err != nil {
		t.Fatal(err)
	}
	// Bins are right-closed: 1 falls in the first bin, and the
	// origin itself does too.
	if want := []float64{0.5, 1.5, 2.5}; !de(want, got.MustColumn("x")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("x"))
	}
	if want := []int{3, 2, 1}; !de(want, got.MustColumn("count")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("count"))
	}
	if want := []float64{3.0 / 6, 2.0 / 6, 1.0 / 6}; !de(want, got.MustColumn("density")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("density"))
	}

	// Values below the origin are dropped.
	tab = new(table.Builder).Add("x", []float64{0.5, 1, 2}).Done()
	got, err = StatBin{}.ComputeGroup(tab, Params{"width": 1.0, "origin": 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1.5}; !de(want, got.MustColumn("x")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("x"))
	}
	if want := []int{2}; !de(want, got.MustColumn("count")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("count"))
	}
	if want := []float64{1}; !de(want, got.MustColumn("density")) {
		t.Errorf("want %v; got %v", want, got.MustColumn("density"))
	}

	_, err = StatBin{}.ComputeGroup(tab, Params{"width": -1.0})
	if err == nil || err.Error() != "bin width -1 must be positive" {
		t.Errorf("want width error; got %v", err)
	}
}

func TestFiniteBounds(t *testing.T) {
	if lo, hi := finiteBounds([]float64{3, 1, 2}); lo != 1 || hi != 3 {
		t.Errorf("want (1, 3); got (%v, %v)", lo, hi)
	}
	if lo, hi := finiteBounds([]float64{math.NaN(), 5, math.Inf(-1)}); lo != 5 || hi != 5 {
		t.Errorf("want (5, 5); got (%v, %v)", lo, hi)
	}
	if lo, hi := finiteBounds(nil); lo != 0 || hi != 1 {
		t.Errorf("want (0, 1); got (%v, %v)", lo, hi)
	}
}
