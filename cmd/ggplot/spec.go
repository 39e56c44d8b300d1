// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aclements/go-ggplot/gg"
	"github.com/aclements/go-ggplot/table"
)

// A plotSpec is the TOML form of a plot description.
type plotSpec struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	Caption  string `toml:"caption"`
	Tag      string `toml:"tag"`
	XLabel   string `toml:"xlabel"`
	YLabel   string `toml:"ylabel"`

	// Data is the default data file. Layers may name their own.
	Data string `toml:"data"`

	Aes    map[string]string    `toml:"aes"`
	Layer  []layerSpec          `toml:"layer"`
	Facet  *facetSpec           `toml:"facet"`
	Coord  string               `toml:"coord"`
	Theme  *themeSpec           `toml:"theme"`
	Scales map[string]scaleSpec `toml:"scales"`

	dir string
}

type layerSpec struct {
	Geom       string                 `toml:"geom"`
	Stat       string                 `toml:"stat"`
	Position   string                 `toml:"position"`
	Data       string                 `toml:"data"`
	Aes        map[string]string      `toml:"aes"`
	Params     map[string]interface{} `toml:"params"`
	NoInherit  bool                   `toml:"no_inherit"`
	ShowLegend string                 `toml:"show_legend"`
	NaRM       bool                   `toml:"na_rm"`
}

type facetSpec struct {
	Wrap  string `toml:"wrap"`
	Row   string `toml:"row"`
	Col   string `toml:"col"`
	Rows  int    `toml:"rows"`
	Cols  int    `toml:"cols"`
	FreeX bool   `toml:"free_x"`
	FreeY bool   `toml:"free_y"`
}

type themeSpec struct {
	Legend string `toml:"legend"`
}

type scaleSpec struct {
	Discrete bool      `toml:"discrete"`
	Identity bool      `toml:"identity"`
	Name     string    `toml:"name"`
	Trans    string    `toml:"trans"`
	Limits   []float64 `toml:"limits"`
	Breaks   []float64 `toml:"breaks"`
	Labels   []string  `toml:"labels"`
	Expand   []float64 `toml:"expand"`
	OOB      string    `toml:"oob"`
	Colors   []string  `toml:"colors"`
	Range    []float64 `toml:"range"`
	Guide    string    `toml:"guide"`
}

// readSpec reads and parses the plot specification at path.
func readSpec(path string) (*plotSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec := &plotSpec{dir: filepath.Dir(path)}
	if err := toml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if len(spec.Layer) == 0 {
		return nil, fmt.Errorf("%s: specification has no layers", path)
	}
	return spec, nil
}

// path resolves a data path in the specification. Relative paths are
// relative to the specification file, except "-", which names
// standard input.
func (s *plotSpec) path(p string) string {
	if p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.dir, p)
}

// Plot converts the specification into a plot, loading data files
// with load.
func (s *plotSpec) Plot(load func(path string) (*table.Table, error)) (*gg.Plot, error) {
	p := &gg.Plot{
		Title:    s.Title,
		Subtitle: s.Subtitle,
		Caption:  s.Caption,
		Tag:      s.Tag,
		XLabel:   s.XLabel,
		YLabel:   s.YLabel,
		Aes:      specAes(s.Aes),
	}

	if s.Data != "" {
		t, err := load(s.path(s.Data))
		if err != nil {
			return nil, err
		}
		p.Data = t
	}

	for i, ls := range s.Layer {
		l, err := s.layer(ls, load)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %v", i, err)
		}
		p.Add(l)
	}

	if s.Facet != nil {
		f, err := s.Facet.facet()
		if err != nil {
			return nil, err
		}
		p.Facet = f
	}

	switch s.Coord {
	case "", "cartesian":
	case "flip":
		p.Coord = gg.CoordFlip{}
	case "polar":
		p.Coord = gg.CoordPolar{}
	default:
		return nil, fmt.Errorf("unknown coord %q", s.Coord)
	}

	if s.Theme != nil {
		th, err := s.Theme.theme()
		if err != nil {
			return nil, err
		}
		p.Theme = th
	}

	for fam, ss := range s.Scales {
		sc, err := ss.scaler(fam)
		if err != nil {
			return nil, fmt.Errorf("scale %q: %v", fam, err)
		}
		p.SetScale(sc)
	}

	return p, nil
}

func (s *plotSpec) layer(ls layerSpec, load func(string) (*table.Table, error)) (*gg.Layer, error) {
	l := &gg.Layer{
		Aes:          specAes(ls.Aes),
		NoInheritAes: ls.NoInherit,
		NaRM:         ls.NaRM,
	}

	if ls.Data != "" {
		t, err := load(s.path(ls.Data))
		if err != nil {
			return nil, err
		}
		l.Data = t
	}

	switch ls.Geom {
	case "point":
		l.Geom = gg.GeomPoint{}
	case "line":
		l.Geom = gg.GeomLine{}
	case "path":
		l.Geom = gg.GeomPath{}
	case "bar":
		l.Geom = gg.GeomBar{}
	case "":
		return nil, fmt.Errorf("layer has no geom")
	default:
		return nil, fmt.Errorf("unknown geom %q", ls.Geom)
	}

	switch ls.Stat {
	case "", "identity":
	case "count":
		l.Stat = gg.StatCount{}
	case "bin":
		l.Stat = gg.StatBin{}
	case "density":
		l.Stat = gg.StatDensity{}
	case "smooth":
		l.Stat = gg.StatSmooth{}
	default:
		return nil, fmt.Errorf("unknown stat %q", ls.Stat)
	}

	switch ls.Position {
	case "", "identity":
	case "stack":
		l.Position = gg.PositionStack{}
	case "dodge":
		l.Position = gg.PositionDodge{}
	default:
		return nil, fmt.Errorf("unknown position %q", ls.Position)
	}

	switch ls.ShowLegend {
	case "", "auto":
	case "always":
		l.ShowLegend = gg.LegendAlways
	case "never":
		l.ShowLegend = gg.LegendNever
	default:
		return nil, fmt.Errorf("unknown show_legend %q", ls.ShowLegend)
	}

	if len(ls.Params) > 0 {
		params := make(gg.Params, len(ls.Params))
		for k, v := range ls.Params {
			nv, err := paramValue(k, v)
			if err != nil {
				return nil, err
			}
			params[k] = nv
		}
		l.Params = params
	}

	return l, nil
}

// specAes converts an aes table to aesthetic mappings. A value of
// the form "stat(name)" refers to a statistic output column; any
// other value names a data column.
func specAes(m map[string]string) gg.Aes {
	if len(m) == 0 {
		return nil
	}
	aes := make(gg.Aes, len(m))
	for k, v := range m {
		if strings.HasPrefix(v, "stat(") && strings.HasSuffix(v, ")") {
			aes[k] = gg.AfterStat(v[len("stat(") : len(v)-1])
		} else {
			aes[k] = gg.Col(v)
		}
	}
	return aes
}

// paramValue converts a TOML parameter value to the form the plot
// components expect. TOML integers arrive as int64; parameters that
// set fixed aesthetics are parsed from their specification syntax.
func paramValue(key string, v interface{}) (interface{}, error) {
	if n, ok := v.(int64); ok {
		return int(n), nil
	}
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	switch key {
	case "color", "fill":
		c, err := parseColor(s)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %v", key, err)
		}
		return c, nil
	case "shape":
		sh, ok := shapeNames[s]
		if !ok {
			return nil, fmt.Errorf("parameter %q: unknown shape %q", key, s)
		}
		return sh, nil
	case "linetype":
		lt, ok := linetypeNames[s]
		if !ok {
			return nil, fmt.Errorf("parameter %q: unknown linetype %q", key, s)
		}
		return lt, nil
	}
	return v, nil
}

var shapeNames = map[string]int{
	"circle":   gg.ShapeCircle,
	"square":   gg.ShapeSquare,
	"triangle": gg.ShapeTriangle,
	"diamond":  gg.ShapeDiamond,
	"plus":     gg.ShapePlus,
	"cross":    gg.ShapeCross,
}

var linetypeNames = map[string]int{
	"solid":    gg.LineSolid,
	"dashed":   gg.LineDashed,
	"dotted":   gg.LineDotted,
	"dotdash":  gg.LineDotDash,
	"longdash": gg.LineLongDash,
	"twodash":  gg.LineTwoDash,
}

func (f *facetSpec) facet() (gg.Facet, error) {
	if f.Wrap != "" {
		if f.Row != "" || f.Col != "" {
			return nil, fmt.Errorf("facet cannot set both wrap and row/col")
		}
		return gg.FacetWrap{
			Col:   f.Wrap,
			Rows:  f.Rows,
			Cols:  f.Cols,
			FreeX: f.FreeX,
			FreeY: f.FreeY,
		}, nil
	}
	if f.Row == "" && f.Col == "" {
		return nil, fmt.Errorf("facet needs wrap, row or col")
	}
	return gg.FacetGrid{
		Row:   f.Row,
		Col:   f.Col,
		FreeX: f.FreeX,
		FreeY: f.FreeY,
	}, nil
}

func (t *themeSpec) theme() (*gg.Theme, error) {
	th := gg.DefaultTheme()
	switch t.Legend {
	case "", "right":
	case "left":
		th.LegendPosition = gg.LegendLeft
	case "top":
		th.LegendPosition = gg.LegendTop
	case "bottom":
		th.LegendPosition = gg.LegendBottom
	case "none":
		th.LegendPosition = gg.LegendNone
	default:
		return nil, fmt.Errorf("unknown legend position %q", t.Legend)
	}
	return th, nil
}

// scaler converts a scale table to a scale for aesthetic family fam.
func (ss *scaleSpec) scaler(fam string) (gg.Scaler, error) {
	guide := gg.GuideAuto
	switch ss.Guide {
	case "", "auto":
	case "none":
		guide = gg.GuideNone
	default:
		return nil, fmt.Errorf("unknown guide %q", ss.Guide)
	}

	limits, err := pair(ss.Limits, "limits")
	if err != nil {
		return nil, err
	}
	expand, err := pair(ss.Expand, "expand")
	if err != nil {
		return nil, err
	}

	if ss.Identity {
		return &gg.IdentityScale{Aes: fam, ScaleName: ss.Name}, nil
	}

	switch fam {
	case "x", "y":
		if ss.Discrete {
			return &gg.DiscreteScale{Aes: fam, ScaleName: ss.Name, Expand: expand}, nil
		}
		sc := &gg.ContinuousScale{
			Aes:            fam,
			ScaleName:      ss.Name,
			FixedLimits:    limits,
			BreaksOverride: ss.Breaks,
			LabelsOverride: ss.Labels,
			Expand:         expand,
		}
		if ss.Trans != "" {
			tr, ok := gg.TransByName(ss.Trans)
			if !ok {
				return nil, fmt.Errorf("unknown trans %q", ss.Trans)
			}
			sc.Trans = tr
		}
		switch ss.OOB {
		case "", "censor":
		case "squish":
			sc.OOB = gg.OOBSquish
		case "keep":
			sc.OOB = gg.OOBKeep
		default:
			return nil, fmt.Errorf("unknown oob %q", ss.OOB)
		}
		return sc, nil

	case "color", "fill":
		colors, err := parseColors(ss.Colors)
		if err != nil {
			return nil, err
		}
		if ss.Discrete || len(colors) > 0 {
			return &gg.DiscreteColorScale{Aes: fam, ScaleName: ss.Name, Colors: colors, Guide: guide}, nil
		}
		return &gg.ContinuousColorScale{Aes: fam, ScaleName: ss.Name, Limits: limits, Guide: guide}, nil

	case "size":
		sc := &gg.SizeScale{Aes: fam, ScaleName: ss.Name, Limits: limits, Guide: guide}
		if r, err := pair(ss.Range, "range"); err != nil {
			return nil, err
		} else if r != nil {
			sc.Range = *r
		}
		return sc, nil

	case "alpha":
		sc := &gg.AlphaScale{Aes: fam, ScaleName: ss.Name, Guide: guide}
		if r, err := pair(ss.Range, "range"); err != nil {
			return nil, err
		} else if r != nil {
			sc.Range = *r
		}
		return sc, nil

	case "shape":
		return &gg.ShapeScale{Aes: fam, ScaleName: ss.Name, Guide: guide}, nil

	case "linetype":
		return &gg.LinetypeScale{Aes: fam, ScaleName: ss.Name, Guide: guide}, nil
	}
	return nil, fmt.Errorf("unknown aesthetic family %q", fam)
}

func pair(vs []float64, what string) (*[2]float64, error) {
	switch len(vs) {
	case 0:
		return nil, nil
	case 2:
		return &[2]float64{vs[0], vs[1]}, nil
	}
	return nil, fmt.Errorf("%s must have two values; got %d", what, len(vs))
}

var colorNames = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xe4, 0x1a, 0x1c, 0xff},
	"blue":    {0x37, 0x7e, 0xb8, 0xff},
	"green":   {0x4d, 0xaf, 0x4a, 0xff},
	"purple":  {0x98, 0x4e, 0xa3, 0xff},
	"orange":  {0xff, 0x7f, 0x00, 0xff},
	"yellow":  {0xff, 0xff, 0x33, 0xff},
	"brown":   {0xa6, 0x56, 0x28, 0xff},
	"pink":    {0xf7, 0x81, 0xbf, 0xff},
	"grey":    {0x99, 0x99, 0x99, 0xff},
	"gray":    {0x99, 0x99, 0x99, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
}

// parseColor parses a color name or a #rgb, #rrggbb or #rrggbbaa hex
// color.
func parseColor(s string) (color.Color, error) {
	if c, ok := colorNames[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown color %q", s)
	}
	hex := s[1:]
	var c color.NRGBA
	c.A = 0xff
	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("bad color %q", s)
		}
		c.R = uint8((v >> 8 & 0xf) * 0x11)
		c.G = uint8((v >> 4 & 0xf) * 0x11)
		c.B = uint8((v & 0xf) * 0x11)
	case 6, 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad color %q", s)
		}
		if len(hex) == 8 {
			c.A = uint8(v)
			v >>= 8
		}
		c.R = uint8(v >> 16)
		c.G = uint8(v >> 8)
		c.B = uint8(v)
	default:
		return nil, fmt.Errorf("bad color %q", s)
	}
	return c, nil
}

func parseColors(ss []string) ([]color.Color, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	cs := make([]color.Color, len(ss))
	for i, s := range ss {
		c, err := parseColor(s)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return cs, nil
}
