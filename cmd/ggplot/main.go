// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ggplot renders a declarative plot specification as SVG.
//
// ggplot reads a plot specification in TOML format and tabular data
// in CSV format, builds the plot, and writes an SVG image. The CSV
// file's first record names the columns; columns whose values all
// parse as numbers become numeric.
//
// A minimal specification is one layer:
//
//	[aes]
//	x = "displ"
//	y = "hwy"
//	color = "class"
//
//	[[layer]]
//	geom = "point"
//
// A layer's aes table maps aesthetics to column names, or to
// statistic outputs written "stat(name)". Fixed, unscaled aesthetics
// and statistic options go in the layer's params table. The top
// level of the specification sets titles and the default data file;
// the facet, coord, theme and scales tables configure those parts of
// the plot. Paths in the specification are relative to the
// specification file.
//
// The data file given on the command line overrides the
// specification's data file. The path "-" reads standard input.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/aclements/go-ggplot/gg"
	"github.com/aclements/go-ggplot/ggsvg"
	"github.com/aclements/go-ggplot/table"
)

func main() {
	log.SetPrefix("ggplot: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
		flagWidth      = flag.Int("width", 800, "output width in `pixels`")
		flagHeight     = flag.Int("height", 600, "output height in `pixels`")
		flagTable      = flag.Bool("table", false, "output the built layer tables instead of a plot")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] spec.toml [data.csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	spec, err := readSpec(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if flag.NArg() == 2 {
		spec.Data = flag.Arg(1)
	}

	p, err := spec.Plot(readCSV)
	if err != nil {
		log.Fatal(err)
	}

	// Prepare for output.
	f := os.Stdout
	if *flagOut != "" {
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	// Output tables.
	if *flagTable {
		res, err := gg.Build(p)
		if err != nil {
			log.Fatal(err)
		}
		for i, t := range res.Tables {
			fmt.Fprintf(f, "# layer %d\n", i)
			if err := table.Fprint(f, t); err != nil {
				log.Fatal(err)
			}
		}
		return
	}

	// Render plot.
	if err := ggsvg.Render(f, p, *flagWidth, *flagHeight); err != nil {
		log.Fatal(err)
	}
}

// readCSV reads the CSV file at path into a table. Path "-" reads
// standard input. The first record gives the column names.
func readCSV(path string) (*table.Table, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: no header record", path)
	}
	return table.TableFromStrings(recs[0], recs[1:], true), nil
}
