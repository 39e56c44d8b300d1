// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
)

// SelectRows returns a new table containing the rows of t at the
// given indexes, in the given order. An index may appear more than
// once. Constant columns remain constant in the result.
func (t *Table) SelectRows(rows []int) *Table {
	b := new(Builder)
	for _, name := range t.colNames {
		if cv, ok := t.consts[name]; ok {
			b.AddConst(name, cv)
			continue
		}
		b.Add(name, slice.Select(t.cols[name], rows))
	}
	return b.Done()
}

// Concat returns the row-wise concatenation of tables ts. All tables
// must have the same set of columns; the result's columns are in the
// order of the first table. A column that is constant with the same
// value in every table remains constant in the result; otherwise it
// is materialized.
//
// Concat of no tables returns an empty table.
func Concat(ts ...*Table) *Table {
	if len(ts) == 0 {
		return new(Builder).Done()
	}
	if len(ts) == 1 {
		return ts[0]
	}

	first := ts[0]
	for _, t := range ts[1:] {
		if len(t.colNames) != len(first.colNames) {
			panic("table: tables have different columns")
		}
		for _, name := range first.colNames {
			if !t.has(name) {
				panic(fmt.Sprintf("table: tables have different columns: missing %q", name))
			}
		}
	}

	b := new(Builder)
	for _, name := range first.colNames {
		// Keep the column constant if it is the same constant
		// everywhere.
		cv, isConst := first.consts[name]
		for _, t := range ts[1:] {
			if !isConst {
				break
			}
			cv2, ok := t.consts[name]
			if !ok || !reflect.DeepEqual(cv, cv2) {
				isConst = false
			}
		}
		if isConst {
			b.AddConst(name, cv)
			continue
		}

		cols := make([]slice.T, len(ts))
		for i, t := range ts {
			cols[i] = t.MustColumn(name)
		}
		b.Add(name, slice.Concat(cols...))
	}
	return b.Done()
}

// SortBy returns a new table with the rows of t sorted by the named
// columns, with the first column being the primary key. The sort is
// stable: rows that compare equal keep their relative order.
//
// Float columns sort NaN values after all other values.
func (t *Table) SortBy(cols ...string) *Table {
	cmps := make([]func(i, j int) int, len(cols))
	for i, col := range cols {
		cmps[i] = colCompare(t.MustColumn(col))
	}

	perm := rowPerm(t.len)
	sort.SliceStable(perm, func(i, j int) bool {
		for _, cmp := range cmps {
			if c := cmp(perm[i], perm[j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return t.SelectRows(perm)
}

// PartitionBy partitions the rows of t by the values of the named
// columns. It returns one table per distinct combination of values,
// ordered by ascending combination. Within each partition, rows keep
// the relative order they had in t.
//
// PartitionBy of an empty table returns no partitions.
func (t *Table) PartitionBy(cols ...string) []*Table {
	cmps := make([]func(i, j int) int, len(cols))
	for i, col := range cols {
		cmps[i] = colCompare(t.MustColumn(col))
	}
	if t.len == 0 {
		return nil
	}

	rowCmp := func(i, j int) int {
		for _, cmp := range cmps {
			if c := cmp(i, j); c != 0 {
				return c
			}
		}
		return 0
	}

	perm := rowPerm(t.len)
	sort.SliceStable(perm, func(i, j int) bool {
		return rowCmp(perm[i], perm[j]) < 0
	})

	var parts []*Table
	start := 0
	for i := 1; i <= len(perm); i++ {
		if i == len(perm) || rowCmp(perm[start], perm[i]) != 0 {
			parts = append(parts, t.SelectRows(perm[start:i]))
			start = i
		}
	}
	return parts
}

func rowPerm(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// colCompare returns a three-way comparison function over the indexes
// of column col. Values of types without a natural order are compared
// by their formatted representation.
func colCompare(col Slice) func(i, j int) int {
	rv := reflect.ValueOf(col)
	switch rv.Type().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(i, j int) int {
			a, b := rv.Index(i).Int(), rv.Index(j).Int()
			return cmpOrder(a < b, a > b)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(i, j int) int {
			a, b := rv.Index(i).Uint(), rv.Index(j).Uint()
			return cmpOrder(a < b, a > b)
		}
	case reflect.Float32, reflect.Float64:
		return func(i, j int) int {
			a, b := rv.Index(i).Float(), rv.Index(j).Float()
			// NaNs order after everything and equal each
			// other so partitioning is well-defined.
			an, bn := math.IsNaN(a), math.IsNaN(b)
			switch {
			case an && bn:
				return 0
			case an:
				return 1
			case bn:
				return -1
			}
			return cmpOrder(a < b, a > b)
		}
	case reflect.String:
		return func(i, j int) int {
			a, b := rv.Index(i).String(), rv.Index(j).String()
			return cmpOrder(a < b, a > b)
		}
	case reflect.Bool:
		return func(i, j int) int {
			a, b := rv.Index(i).Bool(), rv.Index(j).Bool()
			return cmpOrder(!a && b, a && !b)
		}
	}
	return func(i, j int) int {
		a := fmt.Sprintf("%v", rv.Index(i).Interface())
		b := fmt.Sprintf("%v", rv.Index(j).Interface())
		return cmpOrder(a < b, a > b)
	}
}

func cmpOrder(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}
