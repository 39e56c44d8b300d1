// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
)

// Fprint prints t to w. It formats the table as columns separated by
// two spaces, with numeric columns right aligned and all other
// columns left aligned.
//
// formats, if given, must have one fmt-style format string per
// column, which overrides the default "%v" formatting of that
// column's values.
func Fprint(w io.Writer, t *Table, formats ...string) error {
	cols := t.Columns()
	if len(formats) != 0 && len(formats) != len(cols) {
		return fmt.Errorf("table: got %d formats; want 0 or %d", len(formats), len(cols))
	}

	// Format cells.
	rows := make([][]string, t.Len()+1)
	rows[0] = cols
	right := make([]bool, len(cols))
	for i, name := range cols {
		format := "%v"
		if len(formats) != 0 {
			format = formats[i]
		}
		cv := reflect.ValueOf(t.MustColumn(name))
		right[i] = isNumericKind(cv.Type().Elem().Kind())
		for j := 0; j < t.Len(); j++ {
			if rows[j+1] == nil {
				rows[j+1] = make([]string, len(cols))
			}
			rows[j+1][i] = fmt.Sprintf(format, cv.Index(j).Interface())
		}
	}

	// Compute column widths.
	widths := make([]int, len(cols))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Print.
	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			if right[i] {
				sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
				sb.WriteString(cell)
			} else {
				sb.WriteString(cell)
				if i < len(row)-1 {
					sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
				}
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// Print prints t to standard output like Fprint.
func Print(t *Table, formats ...string) error {
	return Fprint(os.Stdout, t, formats...)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
