// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/aclements/go-ggplot/table"
)

// Aes maps aesthetic names such as "x", "y", "color" or "fill" to
// the expressions that produce their values.
//
// The special mapping "group" overrides the derived grouping of a
// layer. If it is absent, rows are grouped by the interaction of all
// discrete aesthetics (except "label").
type Aes map[string]Expr

// Clone returns a copy of a.
func (a Aes) Clone() Aes {
	n := make(Aes, len(a))
	for k, v := range a {
		n[k] = v
	}
	return n
}

// merge returns a copy of a with mappings from b added for
// aesthetics that a does not map.
func (a Aes) merge(b Aes) Aes {
	n := a.Clone()
	for k, v := range b {
		if _, ok := n[k]; !ok {
			n[k] = v
		}
	}
	return n
}

// names returns the mapped aesthetic names in sorted order.
func (a Aes) names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// An Expr produces a column of aesthetic values from a data table.
//
// An expression is evaluated in one of two phases. Ordinary
// expressions are evaluated against a layer's input data, before the
// layer's statistical transformation runs. Deferred expressions are
// evaluated against the output of the statistical transformation,
// so they can refer to computed columns such as a bin count.
type Expr interface {
	// Refs returns the names of the columns the expression reads.
	Refs() []string

	// Deferred reports whether the expression is evaluated
	// against the output of the layer's stat rather than against
	// its input data.
	Deferred() bool

	// Eval evaluates the expression over t. The result must be a
	// slice of length t.Len().
	Eval(t *table.Table) (table.Slice, error)

	// String returns a short label for the expression, used for
	// default axis and legend titles.
	String() string
}

// A Col is an Expr that references the named column.
type Col string

func (c Col) Refs() []string { return []string{string(c)} }
func (c Col) Deferred() bool { return false }
func (c Col) String() string { return string(c) }

func (c Col) Eval(t *table.Table) (table.Slice, error) {
	v := t.Column(string(c))
	if v == nil {
		return nil, fmt.Errorf("unknown column %q", string(c))
	}
	return v, nil
}

// An AfterStat is an Expr that references a column computed by the
// layer's stat.
type AfterStat string

func (c AfterStat) Refs() []string { return []string{string(c)} }
func (c AfterStat) Deferred() bool { return true }
func (c AfterStat) String() string { return string(c) }

func (c AfterStat) Eval(t *table.Table) (table.Slice, error) {
	v := t.Column(string(c))
	if v == nil {
		return nil, fmt.Errorf("unknown column %q", string(c))
	}
	return v, nil
}

// A Const is an Expr with the same value in every row. The value is
// given in data space and is still mapped by the aesthetic's scale;
// to bypass scaling, set an IdentityScale for the aesthetic.
type Const struct {
	Value interface{}
}

func (c Const) Refs() []string { return nil }
func (c Const) Deferred() bool { return false }
func (c Const) String() string { return fmt.Sprintf("%v", c.Value) }

func (c Const) Eval(t *table.Table) (table.Slice, error) {
	if c.Value == nil {
		return nil, fmt.Errorf("constant mapping must not be nil")
	}
	rv := reflect.ValueOf(c.Value)
	s := reflect.MakeSlice(reflect.SliceOf(rv.Type()), t.Len(), t.Len())
	for i := 0; i < t.Len(); i++ {
		s.Index(i).Set(rv)
	}
	return s.Interface(), nil
}

// A Fn is a computed Expr. F receives the table being evaluated and
// must return a column of the table's length. Cols declares the
// columns F reads so their presence can be checked before
// evaluation. If AfterStat is set, the expression is evaluated
// against the output of the layer's stat.
type Fn struct {
	// Label is the name used for default axis and legend titles.
	Label string

	// Cols are the columns F reads.
	Cols []string

	// AfterStat defers evaluation until after the layer's stat.
	AfterStat bool

	// F computes the column.
	F func(t *table.Table) (table.Slice, error)
}

func (f Fn) Refs() []string { return f.Cols }
func (f Fn) Deferred() bool { return f.AfterStat }

func (f Fn) String() string {
	if f.Label != "" {
		return f.Label
	}
	return "f(" + strings.Join(f.Cols, ", ") + ")"
}

func (f Fn) Eval(t *table.Table) (table.Slice, error) {
	v, err := f.F(t)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("computed mapping %s returned %T; want a slice", f, v)
	}
	if rv.Len() != t.Len() {
		return nil, fmt.Errorf("computed mapping %s returned %d values for %d rows", f, rv.Len(), t.Len())
	}
	return v, nil
}

// checkRefs verifies that every column referenced by the expressions
// of a in the given phase exists in t. It reports all missing
// columns at once.
func checkRefs(a Aes, t *table.Table, deferred bool) error {
	var missing []string
	seen := make(map[string]bool)
	for _, name := range a.names() {
		expr := a[name]
		if expr.Deferred() != deferred {
			continue
		}
		for _, ref := range expr.Refs() {
			if !t.Has(ref) && !seen[ref] {
				missing = append(missing, ref)
				seen[ref] = true
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("unknown columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// evalAes evaluates the non-deferred mappings of a over the layer
// data t and returns a fresh table whose columns are the panel
// column, the evaluated aesthetics, and the derived group column.
func evalAes(a Aes, t *table.Table) (*table.Table, error) {
	if err := checkRefs(a, t, false); err != nil {
		return nil, err
	}

	b := new(table.Builder)
	carryColumn(b, t, ColPanel)

	var explicitGroup table.Slice
	for _, name := range a.names() {
		expr := a[name]
		if expr.Deferred() {
			continue
		}
		v, err := expr.Eval(t)
		if err != nil {
			return nil, fmt.Errorf("aesthetic %q: %v", name, err)
		}
		if name == ColGroup {
			explicitGroup = v
			continue
		}
		b.Add(name, v)
	}

	return addGroup(b.Done(), explicitGroup), nil
}

// addGroup appends the group column to t. If explicit is non-nil,
// groups are the distinct values of explicit; otherwise they are the
// interaction of all discrete aesthetic columns, position aesthetics
// first. Group IDs count from 1 in the order of the sorted distinct
// interaction keys, so they are stable across builds regardless of
// row order, and group order — which drives partition order and
// therefore stacking — follows position before styling.
func addGroup(t *table.Table, explicit table.Slice) *table.Table {
	var cols []table.Slice
	if explicit != nil {
		cols = []table.Slice{explicit}
	} else {
		var names []string
		for _, name := range t.Columns() {
			if name == ColPanel || name == "label" {
				continue
			}
			if isDiscrete(t.Column(name)) {
				names = append(names, name)
			}
		}
		sort.SliceStable(names, func(i, j int) bool {
			pi := positionFamily(aesFamily(names[i]))
			pj := positionFamily(aesFamily(names[j]))
			if pi != pj {
				return pi
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			cols = append(cols, t.Column(name))
		}
	}

	if len(cols) == 0 {
		return table.NewBuilder(t).AddConst(ColGroup, NoGroup).Done()
	}
	return table.NewBuilder(t).Add(ColGroup, groupIDs(t.Len(), cols)).Done()
}

// groupIDs assigns a group ID to each of n rows from the interaction
// of the values in cols. IDs are 1-based and ordered by the sorted
// interaction keys.
func groupIDs(n int, cols []table.Slice) []int {
	keys := make([]string, n)
	var sb strings.Builder
	rvs := make([]reflect.Value, len(cols))
	for i, c := range cols {
		rvs[i] = reflect.ValueOf(c)
	}
	for i := 0; i < n; i++ {
		sb.Reset()
		for _, rv := range rvs {
			fmt.Fprintf(&sb, "%v\x00", rv.Index(i).Interface())
		}
		keys[i] = sb.String()
	}

	distinct := make([]string, 0, len(keys))
	seen := make(map[string]int)
	for _, k := range keys {
		if _, ok := seen[k]; !ok {
			seen[k] = 0
			distinct = append(distinct, k)
		}
	}
	sort.Strings(distinct)
	for i, k := range distinct {
		seen[k] = i + 1
	}

	ids := make([]int, n)
	for i, k := range keys {
		ids[i] = seen[k]
	}
	return ids
}

// isDiscrete reports whether column values are discrete levels
// rather than continuous quantities.
func isDiscrete(col table.Slice) bool {
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.String, reflect.Bool:
		return true
	}
	return false
}

// carryColumn copies the named column, if present, from src to b,
// keeping constant columns constant.
func carryColumn(b *table.Builder, src *table.Table, name string) {
	if !src.Has(name) {
		return
	}
	if cv, ok := src.Const(name); ok {
		b.AddConst(name, cv)
		return
	}
	b.Add(name, src.Column(name))
}
