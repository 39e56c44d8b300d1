// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table implements ordered, immutable data tables.
//
// A Table is a set of named columns of equal length. Each column is a
// Go slice, so columns may have any element type. Tables are
// immutable: operations on a Table produce new Tables that share
// column data with the original.
//
// Tables are constructed with a Builder, which accumulates columns
// and produces an immutable Table:
//
//	tab := new(table.Builder).Add("x", []float64{1, 2}).Add("y", []string{"a", "b"}).Done()
//
// A column may also be a constant, which logically has the same value
// in every row but is stored as a single value. Constant columns
// materialize into regular slices when accessed with Column.
package table

import (
	"fmt"
	"reflect"
)

// A Slice is a Go slice value.
//
// This is primarily for documentation. There is no way to statically
// enforce this in Go; however, functions that expect a Slice will
// panic if passed a non-slice value.
type Slice interface{}

// A Table is an immutable, ordered collection of named columns.
type Table struct {
	cols     map[string]Slice
	consts   map[string]interface{}
	colNames []string
	len      int
}

// A Builder constructs a Table. The zero value of Builder is an empty
// table.
type Builder struct {
	t Table
}

// NewBuilder returns a new Builder initialized with the columns of
// table t. If t is nil, the Builder starts empty.
func NewBuilder(t *Table) *Builder {
	b := new(Builder)
	if t == nil {
		return b
	}
	b.t.len = t.len
	b.t.colNames = append([]string(nil), t.colNames...)
	b.t.cols = make(map[string]Slice, len(t.cols))
	for k, v := range t.cols {
		b.t.cols[k] = v
	}
	b.t.consts = make(map[string]interface{}, len(t.consts))
	for k, v := range t.consts {
		b.t.consts[k] = v
	}
	return b
}

func (b *Builder) init() {
	if b.t.cols == nil {
		b.t.cols = make(map[string]Slice)
		b.t.consts = make(map[string]interface{})
	}
}

// Add adds a column named name to table b with data, and returns b to
// permit method chaining. If b already has a column with this name,
// Add replaces its data but keeps its position; otherwise the column
// is appended.
//
// If data is nil, Add removes column name from the table.
//
// Add panics if data is not a slice or if its length differs from the
// length of the other columns in the table.
func (b *Builder) Add(name string, data Slice) *Builder {
	b.init()

	if data == nil {
		// Remove the column.
		if !b.t.has(name) {
			return b
		}
		delete(b.t.cols, name)
		delete(b.t.consts, name)
		for i, n := range b.t.colNames {
			if n == name {
				b.t.colNames = append(b.t.colNames[:i:i], b.t.colNames[i+1:]...)
				break
			}
		}
		return b
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		panic(fmt.Sprintf("table: column %q is not a slice (type %T)", name, data))
	}
	if b.anySlice() && rv.Len() != b.t.len {
		panic(fmt.Sprintf("table: column %q has %d elements, but table has %d rows", name, rv.Len(), b.t.len))
	}

	if !b.t.has(name) {
		b.t.colNames = append(b.t.colNames, name)
	}
	delete(b.t.consts, name)
	b.t.cols[name] = data
	b.t.len = rv.Len()
	return b
}

// AddConst adds a constant column named name to table b and returns
// b. A constant column has the value val in every row of the table.
// val must not be nil.
//
// Like Add, AddConst replaces the data of an existing column named
// name, but keeps its position.
func (b *Builder) AddConst(name string, val interface{}) *Builder {
	b.init()
	if val == nil {
		panic(fmt.Sprintf("table: constant column %q must not be nil", name))
	}
	if !b.t.has(name) {
		b.t.colNames = append(b.t.colNames, name)
	}
	delete(b.t.cols, name)
	b.t.consts[name] = val
	return b
}

// Has returns whether table b has a column named name.
func (b *Builder) Has(name string) bool {
	return b.t.has(name)
}

// anySlice returns whether b has at least one non-constant column.
// Only non-constant columns pin the length of the table.
func (b *Builder) anySlice() bool {
	return len(b.t.cols) > 0
}

// Done returns the constructed Table and resets b.
func (b *Builder) Done() *Table {
	b.init()
	t := b.t
	b.t = Table{}
	if len(t.cols) == 0 {
		t.len = 0
	}
	return &t
}

func (t *Table) has(name string) bool {
	if t.cols == nil {
		return false
	}
	_, ok1 := t.cols[name]
	_, ok2 := t.consts[name]
	return ok1 || ok2
}

// Len returns the number of rows in table t.
func (t *Table) Len() int {
	return t.len
}

// Columns returns the names of the columns of table t, in the order
// they were added.
func (t *Table) Columns() []string {
	return append([]string(nil), t.colNames...)
}

// Has returns whether table t has a column named name.
func (t *Table) Has(name string) bool {
	return t.has(name)
}

// Column returns the data of the column named name, or nil if there
// is no such column. If the column is a constant column, Column
// materializes it as a slice of t.Len() copies of its value.
func (t *Table) Column(name string) Slice {
	if c, ok := t.cols[name]; ok {
		return c
	}
	if cv, ok := t.consts[name]; ok {
		rv := reflect.ValueOf(cv)
		s := reflect.MakeSlice(reflect.SliceOf(rv.Type()), t.len, t.len)
		for i := 0; i < t.len; i++ {
			s.Index(i).Set(rv)
		}
		return s.Interface()
	}
	return nil
}

// MustColumn is like Column, but panics if there is no column named
// name.
func (t *Table) MustColumn(name string) Slice {
	if c := t.Column(name); c != nil {
		return c
	}
	panic(fmt.Sprintf("table: unknown column %q", name))
}

// Const returns the value of the constant column named name. If there
// is no such column, or if it is not a constant column, Const returns
// nil, false.
func (t *Table) Const(name string) (val interface{}, ok bool) {
	val, ok = t.consts[name]
	return
}
