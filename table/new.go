// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"
	"strconv"
)

// TableFromStructs converts a slice of structs to a Table where each
// exported field of the struct type becomes a column. Embedded struct
// fields are flattened into the columns of the embedded type.
//
// TableFromStructs panics if ss is not a slice of structs.
func TableFromStructs(ss Slice) *Table {
	rv := reflect.ValueOf(ss)
	if rv.Kind() != reflect.Slice {
		panic(fmt.Sprintf("table: TableFromStructs requires a slice of structs; got %T", ss))
	}
	et := rv.Type().Elem()
	if et.Kind() != reflect.Struct {
		panic(fmt.Sprintf("table: TableFromStructs requires a slice of structs; got %T", ss))
	}

	b := new(Builder)
	var addFields func(fieldPath []int, t reflect.Type)
	addFields = func(fieldPath []int, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" && !(f.Anonymous && f.Type.Kind() == reflect.Struct) {
				// Unexported. An embedded unexported struct
				// still promotes its exported fields.
				continue
			}
			path := append(append([]int(nil), fieldPath...), i)
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				addFields(path, f.Type)
				continue
			}
			col := reflect.MakeSlice(reflect.SliceOf(f.Type), rv.Len(), rv.Len())
			for j := 0; j < rv.Len(); j++ {
				col.Index(j).Set(rv.Index(j).FieldByIndex(path))
			}
			b.Add(f.Name, col.Interface())
		}
	}
	addFields(nil, et)
	return b.Done()
}

// TableFromStrings converts a [][]string to a Table. This is intended
// for processing external data, such as parsed CSV files. Column i of
// the table is named colNames[i] and contains rows[j][i] for each j.
//
// If coerce is true, TableFromStrings attempts to convert each column
// to an []int or a []float64 if every value in that column parses as
// one. Otherwise the column remains an []string.
//
// TableFromStrings panics if any row has a different number of fields
// than colNames.
func TableFromStrings(colNames []string, rows [][]string, coerce bool) *Table {
	for j, row := range rows {
		if len(row) != len(colNames) {
			panic(fmt.Sprintf("table: row %d has %d fields; want %d", j, len(row), len(colNames)))
		}
	}

	b := new(Builder)
	for i, name := range colNames {
		col := make([]string, len(rows))
		for j, row := range rows {
			col[j] = row[i]
		}

		var colData Slice = col
		if coerce && len(col) > 0 {
			colData = coerceColumn(col)
		}
		b.Add(name, colData)
	}
	return b.Done()
}

func coerceColumn(col []string) Slice {
	// Try []int.
	ints := make([]int, len(col))
	ok := true
	for i, s := range col {
		v, err := strconv.Atoi(s)
		if err != nil {
			ok = false
			break
		}
		ints[i] = v
	}
	if ok {
		return ints
	}

	// Try []float64.
	floats := make([]float64, len(col))
	ok = true
	for i, s := range col {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			ok = false
			break
		}
		floats[i] = v
	}
	if ok {
		return floats
	}

	return col
}
