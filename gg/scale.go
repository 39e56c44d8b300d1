// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/palette"
	mscale "github.com/aclements/go-moremath/scale"

	"github.com/aclements/go-ggplot/table"
)

// A Scaler translates data values into aesthetic values. Scales are
// the only stateful component family: training accumulates the data
// domain, so Build clones every scale before training it and a
// trained scale belongs to a single build.
type Scaler interface {
	// Aesthetic returns the primary aesthetic family this scale
	// applies to, such as "x" or "color".
	Aesthetic() string

	// Title returns the scale's guide title, or "" to derive the
	// title from the aesthetic mapping.
	Title() string

	// IsDiscrete reports whether the scale's domain is a set of
	// levels rather than a continuous range.
	IsDiscrete() bool

	// Trained reports whether the scale has seen any data.
	Trained() bool

	// Train extends the scale's domain with the given values.
	Train(vals table.Slice)

	// Reset clears the continuous part of the scale's domain.
	// Discrete levels survive a Reset so retraining on mapped
	// values cannot forget them.
	Reset()

	// MapVals maps a column of data values to aesthetic values.
	MapVals(vals table.Slice) (table.Slice, error)

	// Breaks returns the positions of the scale's breaks in
	// aesthetic space.
	Breaks() []float64

	// Labels returns the labels of the scale's breaks.
	Labels() []string

	// Clone returns an untrained copy of the scale's
	// configuration.
	Clone() Scaler
}

// A PositionScaler is a Scaler that can be used for the "x" and "y"
// aesthetic families. Position scales map into a continuous mapped
// space shared by all position aesthetics of the family, and are
// retrained on mapped values after stats and position adjustments
// have run.
type PositionScaler interface {
	Scaler

	// TrainMapped extends the scale's continuous range with
	// already-mapped values.
	TrainMapped(vals []float64)

	// Limits returns the scale's limits in mapped space, before
	// expansion.
	Limits() (lo, hi float64)

	// Expansion returns the multiplicative and additive range
	// expansion applied to panel ranges.
	Expansion() (mult, add float64)
}

// A LegendScaler is a Scaler that can be presented as a legend.
type LegendScaler interface {
	Scaler

	// LegendKeys returns one label and one mapped aesthetic value
	// per legend key.
	LegendKeys() (labels []string, values []interface{})

	// ShowGuide reports whether the scale wants a legend at all.
	ShowGuide() bool
}

// Guide modes for scales that can be presented as legends.
const (
	GuideAuto = iota
	GuideNone
)

// A Trans is an invertible transformation of a continuous domain.
// The forward transformation is applied to data before scale
// training; the inverse recovers data values for break labels.
type Trans struct {
	Name string
	Fwd  func(float64) float64
	Inv  func(float64) float64
}

var (
	// TransIdentity leaves values alone.
	TransIdentity = Trans{"identity", func(x float64) float64 { return x }, func(x float64) float64 { return x }}

	// TransLog10 transforms to the base-10 logarithm.
	// Non-positive values become missing.
	TransLog10 = Trans{"log10", math.Log10, func(x float64) float64 { return math.Pow(10, x) }}

	// TransSqrt transforms to the square root. Negative values
	// become missing.
	TransSqrt = Trans{"sqrt", math.Sqrt, func(x float64) float64 { return x * x }}

	// TransReverse flips the direction of an axis.
	TransReverse = Trans{"reverse", func(x float64) float64 { return -x }, func(x float64) float64 { return -x }}
)

func (t Trans) defined() bool { return t.Fwd != nil }

// transByName maps transformation names to Trans values.
var transByName = map[string]Trans{
	"identity": TransIdentity,
	"log10":    TransLog10,
	"sqrt":     TransSqrt,
	"reverse":  TransReverse,
}

// TransByName returns the named transformation.
func TransByName(name string) (Trans, bool) {
	t, ok := transByName[name]
	return t, ok
}

// An OOB policy decides what happens to a value outside the scale
// limits [lo, hi]. Returning NaN marks the value as missing.
type OOB func(v, lo, hi float64) float64

// OOBCensor replaces out-of-bounds values with missing.
func OOBCensor(v, lo, hi float64) float64 {
	if v < lo || v > hi {
		return math.NaN()
	}
	return v
}

// OOBSquish clamps out-of-bounds values to the nearest limit.
func OOBSquish(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// OOBKeep passes values through unchanged.
func OOBKeep(v, lo, hi float64) float64 {
	return v
}

// Scales is a set of scales, at most one per aesthetic family.
type Scales struct {
	m map[string]Scaler
}

// NewScales returns an empty scale set.
func NewScales() *Scales {
	return &Scales{m: make(map[string]Scaler)}
}

// Set adds scale sc to the set, replacing any existing scale for the
// same aesthetic family.
func (s *Scales) Set(sc Scaler) {
	if sc.Aesthetic() == "" {
		panic("gg: scale has no aesthetic")
	}
	if s.m == nil {
		s.m = make(map[string]Scaler)
	}
	s.m[aesFamily(sc.Aesthetic())] = sc
}

// Get returns the scale for the family of aesthetic aes, or nil.
func (s *Scales) Get(aes string) Scaler {
	if s == nil || s.m == nil {
		return nil
	}
	return s.m[aesFamily(aes)]
}

// Families returns the aesthetic families with a scale, sorted.
func (s *Scales) Families() []string {
	if s == nil {
		return nil
	}
	fams := make([]string, 0, len(s.m))
	for f := range s.m {
		fams = append(fams, f)
	}
	sort.Strings(fams)
	return fams
}

// Clone returns a scale set with untrained clones of every scale.
func (s *Scales) Clone() *Scales {
	n := NewScales()
	if s == nil {
		return n
	}
	for f, sc := range s.m {
		n.m[f] = sc.Clone()
	}
	return n
}

// aesFamilies maps derived position aesthetics to their family.
// Aesthetics not listed here are their own family.
var aesFamilies = map[string]string{
	"xmin":       "x",
	"xmax":       "x",
	"xend":       "x",
	"xintercept": "x",
	"ymin":       "y",
	"ymax":       "y",
	"yend":       "y",
	"yintercept": "y",
}

// aesFamily returns the aesthetic family of aes. All aesthetics of
// one family share a scale; for example, "xmin" is mapped by the "x"
// scale.
func aesFamily(aes string) string {
	if f, ok := aesFamilies[aes]; ok {
		return f
	}
	return aes
}

// positionFamily reports whether fam is one of the position
// families.
func positionFamily(fam string) bool {
	return fam == "x" || fam == "y"
}

// scaledAes reports whether values of aesthetic aes pass through a
// scale. The group assignment and text labels are never scaled.
func scaledAes(aes string) bool {
	switch aes {
	case ColGroup, ColPanel, "label":
		return false
	}
	return true
}

// inferScale returns a default scale for aesthetic aes with the
// given column of data, or an error if values of the column's type
// cannot be mapped to aes.
func inferScale(aes string, col table.Slice) (Scaler, error) {
	fam := aesFamily(aes)
	discrete := isDiscrete(col)
	switch fam {
	case "x", "y":
		if discrete {
			return &DiscreteScale{Aes: fam}, nil
		}
		return &ContinuousScale{Aes: fam}, nil
	case "color", "fill":
		if discrete {
			return &DiscreteColorScale{Aes: fam}, nil
		}
		return &ContinuousColorScale{Aes: fam}, nil
	case "size":
		if discrete {
			return nil, fmt.Errorf("discrete values cannot be mapped to size")
		}
		return &SizeScale{Aes: fam}, nil
	case "alpha":
		if discrete {
			return nil, fmt.Errorf("discrete values cannot be mapped to alpha")
		}
		return &AlphaScale{Aes: fam}, nil
	case "shape":
		if !discrete {
			return nil, fmt.Errorf("continuous values cannot be mapped to shape")
		}
		return &ShapeScale{Aes: fam}, nil
	case "linetype":
		if !discrete {
			return nil, fmt.Errorf("continuous values cannot be mapped to linetype")
		}
		return &LinetypeScale{Aes: fam}, nil
	}
	return &IdentityScale{Aes: fam}, nil
}

// toFloats converts a numeric column to []float64. It returns an
// error for non-numeric columns.
func toFloats(vals table.Slice) ([]float64, error) {
	rv := reflect.ValueOf(vals)
	if rv.Kind() != reflect.Slice || !isNumericKind(rv.Type().Elem().Kind()) {
		return nil, fmt.Errorf("want a numeric column; got %T", vals)
	}
	var fs []float64
	slice.Convert(&fs, vals)
	return fs, nil
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

// continuousBreaks computes at most max break positions covering
// [lo, hi].
func continuousBreaks(lo, hi float64, max int) []float64 {
	if !(hi > lo) {
		return []float64{lo}
	}
	ls := mscale.Linear{Min: lo, Max: hi}
	major, _ := ls.Ticks(mscale.TickOptions{Max: max})
	return major
}

// formatFloats formats break values for labels.
func formatFloats(vals []float64) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%.6g", v)
	}
	return out
}

// A ContinuousScale maps a continuous numeric domain to a position.
// It is the default scale for numeric "x" and "y" data.
type ContinuousScale struct {
	// Aes is the aesthetic family, "x" or "y".
	Aes string

	// ScaleName overrides the axis title.
	ScaleName string

	// Trans transforms data values before training and mapping.
	// The zero Trans is the identity.
	Trans Trans

	// FixedLimits fixes the scale's limits in data space. Values
	// outside the limits are subject to the OOB policy.
	FixedLimits *[2]float64

	// OOB is the out-of-bounds policy. If nil, values outside
	// explicit FixedLimits are censored; without explicit
	// FixedLimits all values are in bounds and the policy does
	// not apply.
	OOB OOB

	// BreaksOverride and LabelsOverride fix the scale's breaks,
	// in data space, and their labels.
	BreaksOverride []float64
	LabelsOverride []string

	// Expand overrides the default range expansion of 5%,
	// as {multiplicative, additive}.
	Expand *[2]float64

	min, max float64
	trained  bool
}

func (s *ContinuousScale) Aesthetic() string { return s.Aes }
func (s *ContinuousScale) Title() string     { return s.ScaleName }
func (s *ContinuousScale) IsDiscrete() bool  { return false }
func (s *ContinuousScale) Trained() bool     { return s.trained }

func (s *ContinuousScale) trans() Trans {
	if s.Trans.defined() {
		return s.Trans
	}
	return TransIdentity
}

func (s *ContinuousScale) include(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if !s.trained {
		s.min, s.max, s.trained = v, v, true
		return
	}
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
}

// Train extends the scale's range. vals must be a numeric column in
// transformed data space.
func (s *ContinuousScale) Train(vals table.Slice) {
	fs, err := toFloats(vals)
	if err != nil {
		panic(fmt.Sprintf("gg: cannot train continuous scale %q on %T", s.Aes, vals))
	}
	for _, v := range fs {
		s.include(v)
	}
}

func (s *ContinuousScale) TrainMapped(vals []float64) {
	for _, v := range vals {
		s.include(v)
	}
}

func (s *ContinuousScale) Reset() {
	s.trained = false
	s.min, s.max = 0, 0
}

// transform applies the scale's transformation to a numeric column.
func (s *ContinuousScale) transform(vals table.Slice) ([]float64, error) {
	fs, err := toFloats(vals)
	if err != nil {
		return nil, err
	}
	tr := s.trans()
	out := make([]float64, len(fs))
	for i, v := range fs {
		out[i] = tr.Fwd(v)
	}
	return out, nil
}

func (s *ContinuousScale) limits() (lo, hi float64) {
	if s.FixedLimits != nil {
		tr := s.trans()
		lo, hi = tr.Fwd(s.FixedLimits[0]), tr.Fwd(s.FixedLimits[1])
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi
	}
	if !s.trained {
		return 0, 1
	}
	return s.min, s.max
}

func (s *ContinuousScale) oob() OOB {
	if s.OOB != nil {
		return s.OOB
	}
	if s.FixedLimits != nil {
		return OOBCensor
	}
	return OOBKeep
}

func (s *ContinuousScale) MapVals(vals table.Slice) (table.Slice, error) {
	fs, err := toFloats(vals)
	if err != nil {
		return nil, err
	}
	lo, hi := s.limits()
	oob := s.oob()
	out := make([]float64, len(fs))
	for i, v := range fs {
		out[i] = oob(v, lo, hi)
	}
	return out, nil
}

func (s *ContinuousScale) Limits() (lo, hi float64) {
	return s.limits()
}

func (s *ContinuousScale) Expansion() (mult, add float64) {
	if s.Expand != nil {
		return s.Expand[0], s.Expand[1]
	}
	return 0.05, 0
}

func (s *ContinuousScale) Breaks() []float64 {
	if s.BreaksOverride != nil {
		tr := s.trans()
		out := make([]float64, len(s.BreaksOverride))
		for i, b := range s.BreaksOverride {
			out[i] = tr.Fwd(b)
		}
		return out
	}
	lo, hi := s.limits()
	return continuousBreaks(lo, hi, 5)
}

func (s *ContinuousScale) Labels() []string {
	if s.LabelsOverride != nil {
		return append([]string(nil), s.LabelsOverride...)
	}
	breaks := s.Breaks()
	tr := s.trans()
	vals := make([]float64, len(breaks))
	for i, b := range breaks {
		vals[i] = tr.Inv(b)
	}
	return formatFloats(vals)
}

func (s *ContinuousScale) Clone() Scaler {
	n := *s
	n.trained = false
	n.min, n.max = 0, 0
	return &n
}

// domain accumulates the distinct values of a discrete scale. It is
// meant for embedding: it implements the domain half of a discrete
// Scaler.
type domain struct {
	allData []slice.T
	ordered table.Slice
	index   map[interface{}]int
}

func (d *domain) Train(vals table.Slice) {
	d.allData = append(d.allData, slice.T(vals))
	d.ordered, d.index = nil, nil
}

func (d *domain) Trained() bool {
	return len(d.allData) > 0
}

// makeIndex computes the sorted level set and level index.
func (d *domain) makeIndex() {
	if d.index != nil {
		return
	}
	d.index = make(map[interface{}]int)
	if len(d.allData) == 0 {
		return
	}
	d.ordered = slice.NubAppend(d.allData...)
	slice.Sort(d.ordered)
	ov := reflect.ValueOf(d.ordered)
	for i, n := 0, ov.Len(); i < n; i++ {
		d.index[ov.Index(i).Interface()] = i
	}
}

func (d *domain) NLevels() int {
	d.makeIndex()
	return len(d.index)
}

func (d *domain) lookup(v interface{}) (int, bool) {
	d.makeIndex()
	i, ok := d.index[v]
	return i, ok
}

func (d *domain) levelLabels() []string {
	d.makeIndex()
	if d.ordered == nil {
		return nil
	}
	ov := reflect.ValueOf(d.ordered)
	labels := make([]string, ov.Len())
	for i := range labels {
		labels[i] = fmt.Sprintf("%v", ov.Index(i).Interface())
	}
	return labels
}

// A DiscreteScale maps a set of levels to the integer positions
// 1 through N, in sorted level order. It is the default scale for
// string and bool "x" and "y" data.
type DiscreteScale struct {
	domain

	// Aes is the aesthetic family, "x" or "y".
	Aes string

	// ScaleName overrides the axis title.
	ScaleName string

	// Expand overrides the default additive range expansion of
	// 0.6 units, as {multiplicative, additive}.
	Expand *[2]float64

	cmin, cmax float64
	ctrained   bool
}

func (s *DiscreteScale) Aesthetic() string { return s.Aes }
func (s *DiscreteScale) Title() string     { return s.ScaleName }
func (s *DiscreteScale) IsDiscrete() bool  { return true }

// Reset clears the continuous range accumulated from mapped values
// but keeps the level set.
func (s *DiscreteScale) Reset() {
	s.ctrained = false
	s.cmin, s.cmax = 0, 0
}

func (s *DiscreteScale) TrainMapped(vals []float64) {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !s.ctrained {
			s.cmin, s.cmax, s.ctrained = v, v, true
			continue
		}
		if v < s.cmin {
			s.cmin = v
		}
		if v > s.cmax {
			s.cmax = v
		}
	}
}

// MapVals maps levels to their 1-based position in the sorted level
// set. Unknown levels map to missing. A float64 column passes
// through unchanged: its values are already in mapped space.
func (s *DiscreteScale) MapVals(vals table.Slice) (table.Slice, error) {
	rv := reflect.ValueOf(vals)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("want a column; got %T", vals)
	}
	if isNumericKind(rv.Type().Elem().Kind()) {
		return toFloats(vals)
	}
	out := make([]float64, rv.Len())
	for i := range out {
		if l, ok := s.lookup(rv.Index(i).Interface()); ok {
			out[i] = float64(l + 1)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

func (s *DiscreteScale) Limits() (lo, hi float64) {
	n := s.NLevels()
	if n == 0 {
		lo, hi = 0, 1
	} else {
		lo, hi = 1, float64(n)
	}
	if s.ctrained {
		lo, hi = math.Min(lo, s.cmin), math.Max(hi, s.cmax)
	}
	return lo, hi
}

func (s *DiscreteScale) Expansion() (mult, add float64) {
	if s.Expand != nil {
		return s.Expand[0], s.Expand[1]
	}
	return 0, 0.6
}

func (s *DiscreteScale) Breaks() []float64 {
	n := s.NLevels()
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func (s *DiscreteScale) Labels() []string {
	return s.levelLabels()
}

func (s *DiscreteScale) Clone() Scaler {
	return &DiscreteScale{Aes: s.Aes, ScaleName: s.ScaleName, Expand: s.Expand}
}

// A BinnedScale maps a continuous domain onto discrete bins: every
// value maps to the midpoint of its bin. Breaks fall on the bin
// edges.
type BinnedScale struct {
	// Aes is the aesthetic family, "x" or "y".
	Aes string

	// ScaleName overrides the axis title.
	ScaleName string

	// Bins is the number of bins to divide the data range into.
	// If it is 0, 10 bins are used.
	Bins int

	// Width overrides Bins with a fixed bin width.
	Width float64

	// Expand overrides the default range expansion of 5%.
	Expand *[2]float64

	min, max float64
	trained  bool
}

func (s *BinnedScale) Aesthetic() string { return s.Aes }
func (s *BinnedScale) Title() string     { return s.ScaleName }
func (s *BinnedScale) IsDiscrete() bool  { return false }
func (s *BinnedScale) Trained() bool     { return s.trained }

func (s *BinnedScale) include(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if !s.trained {
		s.min, s.max, s.trained = v, v, true
		return
	}
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
}

func (s *BinnedScale) Train(vals table.Slice) {
	fs, err := toFloats(vals)
	if err != nil {
		panic(fmt.Sprintf("gg: cannot train binned scale %q on %T", s.Aes, vals))
	}
	for _, v := range fs {
		s.include(v)
	}
}

func (s *BinnedScale) TrainMapped(vals []float64) {
	for _, v := range vals {
		s.include(v)
	}
}

func (s *BinnedScale) Reset() {
	// Bin geometry derives from the initial training range, which
	// must survive retraining on midpoints.
}

// bins returns the bin origin, width and count for the trained
// range.
func (s *BinnedScale) bins() (origin, width float64, n int) {
	span := s.max - s.min
	width = s.Width
	if width <= 0 {
		bins := s.Bins
		if bins <= 0 {
			bins = 10
		}
		width = span / float64(bins)
	}
	if width <= 0 {
		// Degenerate range: one unit-width bin around the data.
		return s.min - 0.5, 1, 1
	}
	n = int(math.Ceil(span / width))
	if n < 1 {
		n = 1
	}
	return s.min, width, n
}

func (s *BinnedScale) MapVals(vals table.Slice) (table.Slice, error) {
	fs, err := toFloats(vals)
	if err != nil {
		return nil, err
	}
	origin, width, n := s.bins()
	out := make([]float64, len(fs))
	for i, v := range fs {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		b := int(math.Floor((v - origin) / width))
		if b < 0 {
			b = 0
		}
		if b >= n {
			b = n - 1
		}
		out[i] = origin + (float64(b)+0.5)*width
	}
	return out, nil
}

func (s *BinnedScale) Limits() (lo, hi float64) {
	if !s.trained {
		return 0, 1
	}
	origin, width, n := s.bins()
	return origin, origin + float64(n)*width
}

func (s *BinnedScale) Expansion() (mult, add float64) {
	if s.Expand != nil {
		return s.Expand[0], s.Expand[1]
	}
	return 0.05, 0
}

func (s *BinnedScale) Breaks() []float64 {
	if !s.trained {
		return nil
	}
	origin, width, n := s.bins()
	out := make([]float64, n+1)
	for i := range out {
		out[i] = origin + float64(i)*width
	}
	return out
}

func (s *BinnedScale) Labels() []string {
	return formatFloats(s.Breaks())
}

func (s *BinnedScale) Clone() Scaler {
	n := *s
	n.trained = false
	n.min, n.max = 0, 0
	return &n
}

// grey50 is the color of values that cannot be mapped.
var grey50 = color.Gray{0x7f}

// A ContinuousColorScale maps a continuous domain to colors through
// a continuous palette.
type ContinuousColorScale struct {
	// Aes is the aesthetic family, "color" or "fill".
	Aes string

	// ScaleName overrides the legend title.
	ScaleName string

	// Palette maps [0, 1] to colors. If nil, the viridis palette
	// is used.
	Palette palette.Continuous

	// Limits fixes the scale's limits. Values outside the limits
	// are subject to the OOB policy.
	Limits *[2]float64

	// OOB is the out-of-bounds policy; the default censors.
	// Censored values draw in the NA color.
	OOB OOB

	// NA is the color of missing values. If nil, mid grey.
	NA color.Color

	// Guide is GuideAuto or GuideNone.
	Guide int

	min, max float64
	trained  bool
}

func (s *ContinuousColorScale) Aesthetic() string { return s.Aes }
func (s *ContinuousColorScale) Title() string     { return s.ScaleName }
func (s *ContinuousColorScale) IsDiscrete() bool  { return false }
func (s *ContinuousColorScale) Trained() bool     { return s.trained }
func (s *ContinuousColorScale) ShowGuide() bool   { return s.Guide != GuideNone }

func (s *ContinuousColorScale) pal() palette.Continuous {
	if s.Palette != nil {
		return s.Palette
	}
	return palette.Viridis
}

func (s *ContinuousColorScale) na() color.Color {
	if s.NA != nil {
		return s.NA
	}
	return grey50
}

func (s *ContinuousColorScale) include(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if !s.trained {
		s.min, s.max, s.trained = v, v, true
		return
	}
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
}

func (s *ContinuousColorScale) Train(vals table.Slice) {
	fs, err := toFloats(vals)
	if err != nil {
		panic(fmt.Sprintf("gg: cannot train continuous color scale on %T", vals))
	}
	for _, v := range fs {
		s.include(v)
	}
}

func (s *ContinuousColorScale) Reset() {
	s.trained = false
	s.min, s.max = 0, 0
}

func (s *ContinuousColorScale) limits() (lo, hi float64) {
	if s.Limits != nil {
		return s.Limits[0], s.Limits[1]
	}
	if !s.trained {
		return 0, 1
	}
	return s.min, s.max
}

func (s *ContinuousColorScale) MapVals(vals table.Slice) (table.Slice, error) {
	fs, err := toFloats(vals)
	if err != nil {
		return nil, err
	}
	lo, hi := s.limits()
	oob := s.OOB
	if oob == nil {
		oob = OOBCensor
	}
	pal, na := s.pal(), s.na()
	out := make([]color.Color, len(fs))
	for i, v := range fs {
		v = oob(v, lo, hi)
		if math.IsNaN(v) {
			out[i] = na
			continue
		}
		t := 0.0
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		out[i] = pal.Map(math.Max(0, math.Min(1, t)))
	}
	return out, nil
}

func (s *ContinuousColorScale) Breaks() []float64 {
	lo, hi := s.limits()
	breaks := continuousBreaks(lo, hi, 5)
	out := breaks[:0]
	for _, b := range breaks {
		if lo <= b && b <= hi {
			out = append(out, b)
		}
	}
	return out
}

func (s *ContinuousColorScale) Labels() []string {
	return formatFloats(s.Breaks())
}

func (s *ContinuousColorScale) LegendKeys() (labels []string, values []interface{}) {
	breaks := s.Breaks()
	colors, err := s.MapVals(breaks)
	if err != nil {
		return nil, nil
	}
	cs := colors.([]color.Color)
	values = make([]interface{}, len(cs))
	for i, c := range cs {
		values[i] = c
	}
	return s.Labels(), values
}

func (s *ContinuousColorScale) Clone() Scaler {
	n := *s
	n.trained = false
	n.min, n.max = 0, 0
	return &n
}

// A DiscreteColorScale maps levels to colors. With no explicit
// palette, levels get evenly spaced hues; an explicit palette is
// cycled if there are more levels than colors.
type DiscreteColorScale struct {
	domain

	// Aes is the aesthetic family, "color" or "fill".
	Aes string

	// ScaleName overrides the legend title.
	ScaleName string

	// Colors is the palette. If nil, evenly spaced hues are
	// generated for the observed levels.
	Colors []color.Color

	// NA is the color of unknown levels. If nil, mid grey.
	NA color.Color

	// Guide is GuideAuto or GuideNone.
	Guide int
}

func (s *DiscreteColorScale) Aesthetic() string { return s.Aes }
func (s *DiscreteColorScale) Title() string     { return s.ScaleName }
func (s *DiscreteColorScale) IsDiscrete() bool  { return true }
func (s *DiscreteColorScale) ShowGuide() bool   { return s.Guide != GuideNone }

func (s *DiscreteColorScale) Reset() {}

func (s *DiscreteColorScale) colorFor(i, n int) color.Color {
	if len(s.Colors) > 0 {
		return s.Colors[i%len(s.Colors)]
	}
	return hueColor(i, n)
}

func (s *DiscreteColorScale) MapVals(vals table.Slice) (table.Slice, error) {
	rv := reflect.ValueOf(vals)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("want a column; got %T", vals)
	}
	na := s.NA
	if na == nil {
		na = grey50
	}
	n := s.NLevels()
	out := make([]color.Color, rv.Len())
	for i := range out {
		if l, ok := s.lookup(rv.Index(i).Interface()); ok {
			out[i] = s.colorFor(l, n)
		} else {
			out[i] = na
		}
	}
	return out, nil
}

func (s *DiscreteColorScale) Breaks() []float64 { return nil }

func (s *DiscreteColorScale) Labels() []string {
	return s.levelLabels()
}

func (s *DiscreteColorScale) LegendKeys() (labels []string, values []interface{}) {
	n := s.NLevels()
	values = make([]interface{}, n)
	for i := 0; i < n; i++ {
		values[i] = s.colorFor(i, n)
	}
	return s.levelLabels(), values
}

func (s *DiscreteColorScale) Clone() Scaler {
	return &DiscreteColorScale{Aes: s.Aes, ScaleName: s.ScaleName, Colors: s.Colors, NA: s.NA, Guide: s.Guide}
}

// hueColor returns the ith of n evenly spaced hues.
func hueColor(i, n int) color.Color {
	if n <= 0 {
		n = 1
	}
	h := math.Mod(15+360*float64(i)/float64(n), 360)
	return hsvColor(h, 0.55, 0.8)
}

// hsvColor converts an HSV triple (h in degrees) to an RGBA color.
func hsvColor(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

// A SizeScale maps a continuous domain to point sizes so that marker
// area is proportional to the normalized value.
type SizeScale struct {
	// Aes is the aesthetic family, "size".
	Aes string

	// ScaleName overrides the legend title.
	ScaleName string

	// Range is the output size range in points. The zero value
	// means {1, 6}.
	Range [2]float64

	// Limits fixes the scale's limits.
	Limits *[2]float64

	// Guide is GuideAuto or GuideNone.
	Guide int

	min, max float64
	trained  bool
}

func (s *SizeScale) Aesthetic() string { return s.Aes }
func (s *SizeScale) Title() string     { return s.ScaleName }
func (s *SizeScale) IsDiscrete() bool  { return false }
func (s *SizeScale) Trained() bool     { return s.trained }
func (s *SizeScale) ShowGuide() bool   { return s.Guide != GuideNone }

func (s *SizeScale) rng() (lo, hi float64) {
	if s.Range == [2]float64{} {
		return 1, 6
	}
	return s.Range[0], s.Range[1]
}

func (s *SizeScale) Train(vals table.Slice) {
	fs, err := toFloats(vals)
	if err != nil {
		panic(fmt.Sprintf("gg: cannot train size scale on %T", vals))
	}
	for _, v := range fs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !s.trained {
			s.min, s.max, s.trained = v, v, true
			continue
		}
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
}

func (s *SizeScale) Reset() {
	s.trained = false
	s.min, s.max = 0, 0
}

func (s *SizeScale) limits() (lo, hi float64) {
	if s.Limits != nil {
		return s.Limits[0], s.Limits[1]
	}
	if !s.trained {
		return 0, 1
	}
	return s.min, s.max
}

// mapOne maps a single value to a size in points.
func (s *SizeScale) mapOne(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	lo, hi := s.limits()
	t := 0.5
	if hi > lo {
		t = math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	}
	rlo, rhi := s.rng()
	return math.Sqrt(rlo*rlo + t*(rhi*rhi-rlo*rlo))
}

func (s *SizeScale) MapVals(vals table.Slice) (table.Slice, error) {
	fs, err := toFloats(vals)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(fs))
	for i, v := range fs {
		out[i] = s.mapOne(v)
	}
	return out, nil
}

func (s *SizeScale) Breaks() []float64 {
	lo, hi := s.limits()
	breaks := continuousBreaks(lo, hi, 4)
	out := breaks[:0]
	for _, b := range breaks {
		if lo <= b && b <= hi {
			out = append(out, b)
		}
	}
	return out
}

func (s *SizeScale) Labels() []string {
	return formatFloats(s.Breaks())
}

func (s *SizeScale) LegendKeys() (labels []string, values []interface{}) {
	breaks := s.Breaks()
	values = make([]interface{}, len(breaks))
	for i, b := range breaks {
		values[i] = s.mapOne(b)
	}
	return s.Labels(), values
}

func (s *SizeScale) Clone() Scaler {
	n := *s
	n.trained = false
	n.min, n.max = 0, 0
	return &n
}

// An AlphaScale maps a continuous domain linearly to opacity.
type AlphaScale struct {
	// Aes is the aesthetic family, "alpha".
	Aes string

	// ScaleName overrides the legend title.
	ScaleName string

	// Range is the output opacity range. The zero value means
	// {0.1, 1}.
	Range [2]float64

	// Guide is GuideAuto or GuideNone.
	Guide int

	min, max float64
	trained  bool
}

func (s *AlphaScale) Aesthetic() string { return s.Aes }
func (s *AlphaScale) Title() string     { return s.ScaleName }
func (s *AlphaScale) IsDiscrete() bool  { return false }
func (s *AlphaScale) Trained() bool     { return s.trained }
func (s *AlphaScale) ShowGuide() bool   { return s.Guide != GuideNone }

func (s *AlphaScale) rng() (lo, hi float64) {
	if s.Range == [2]float64{} {
		return 0.1, 1
	}
	return s.Range[0], s.Range[1]
}

func (s *AlphaScale) Train(vals table.Slice) {
	fs, err := toFloats(vals)
	if err != nil {
		panic(fmt.Sprintf("gg: cannot train alpha scale on %T", vals))
	}
	for _, v := range fs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !s.trained {
			s.min, s.max, s.trained = v, v, true
			continue
		}
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
}

func (s *AlphaScale) Reset() {
	s.trained = false
	s.min, s.max = 0, 0
}

func (s *AlphaScale) mapOne(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	t := 0.5
	if s.trained && s.max > s.min {
		t = math.Max(0, math.Min(1, (v-s.min)/(s.max-s.min)))
	}
	lo, hi := s.rng()
	return lo + t*(hi-lo)
}

func (s *AlphaScale) MapVals(vals table.Slice) (table.Slice, error) {
	fs, err := toFloats(vals)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(fs))
	for i, v := range fs {
		out[i] = s.mapOne(v)
	}
	return out, nil
}

func (s *AlphaScale) Breaks() []float64 {
	if !s.trained {
		return nil
	}
	breaks := continuousBreaks(s.min, s.max, 4)
	out := breaks[:0]
	for _, b := range breaks {
		if s.min <= b && b <= s.max {
			out = append(out, b)
		}
	}
	return out
}

func (s *AlphaScale) Labels() []string {
	return formatFloats(s.Breaks())
}

func (s *AlphaScale) LegendKeys() (labels []string, values []interface{}) {
	breaks := s.Breaks()
	values = make([]interface{}, len(breaks))
	for i, b := range breaks {
		values[i] = s.mapOne(b)
	}
	return s.Labels(), values
}

func (s *AlphaScale) Clone() Scaler {
	n := *s
	n.trained = false
	n.min, n.max = 0, 0
	return &n
}

// A ShapeScale maps levels to point shapes. With more levels than
// shapes, shapes repeat and a warning is logged.
type ShapeScale struct {
	domain

	// Aes is the aesthetic family, "shape".
	Aes string

	// ScaleName overrides the legend title.
	ScaleName string

	// Shapes is the shape order. If nil, the default order is
	// used.
	Shapes []int

	// Guide is GuideAuto or GuideNone.
	Guide int

	warned bool
}

var defaultShapes = []int{ShapeCircle, ShapeTriangle, ShapeSquare, ShapePlus, ShapeCross, ShapeDiamond}

func (s *ShapeScale) Aesthetic() string { return s.Aes }
func (s *ShapeScale) Title() string     { return s.ScaleName }
func (s *ShapeScale) IsDiscrete() bool  { return true }
func (s *ShapeScale) ShowGuide() bool   { return s.Guide != GuideNone }
func (s *ShapeScale) Reset()            {}

func (s *ShapeScale) shapes() []int {
	if len(s.Shapes) > 0 {
		return s.Shapes
	}
	return defaultShapes
}

func (s *ShapeScale) shapeFor(i int) int {
	sh := s.shapes()
	if i >= len(sh) && !s.warned {
		Warning.Printf("%d levels exceed the %d available shapes; shapes will repeat", s.NLevels(), len(sh))
		s.warned = true
	}
	return sh[i%len(sh)]
}

func (s *ShapeScale) MapVals(vals table.Slice) (table.Slice, error) {
	rv := reflect.ValueOf(vals)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("want a column; got %T", vals)
	}
	out := make([]int, rv.Len())
	for i := range out {
		if l, ok := s.lookup(rv.Index(i).Interface()); ok {
			out[i] = s.shapeFor(l)
		} else {
			out[i] = ShapeCircle
		}
	}
	return out, nil
}

func (s *ShapeScale) Breaks() []float64 { return nil }

func (s *ShapeScale) Labels() []string {
	return s.levelLabels()
}

func (s *ShapeScale) LegendKeys() (labels []string, values []interface{}) {
	n := s.NLevels()
	values = make([]interface{}, n)
	for i := 0; i < n; i++ {
		values[i] = s.shapeFor(i)
	}
	return s.levelLabels(), values
}

func (s *ShapeScale) Clone() Scaler {
	return &ShapeScale{Aes: s.Aes, ScaleName: s.ScaleName, Shapes: s.Shapes, Guide: s.Guide}
}

// A LinetypeScale maps levels to line types. With more levels than
// line types, types repeat.
type LinetypeScale struct {
	domain

	// Aes is the aesthetic family, "linetype".
	Aes string

	// ScaleName overrides the legend title.
	ScaleName string

	// Guide is GuideAuto or GuideNone.
	Guide int
}

var defaultLineTypes = []int{LineSolid, LineDashed, LineDotted, LineDotDash, LineLongDash, LineTwoDash}

func (s *LinetypeScale) Aesthetic() string { return s.Aes }
func (s *LinetypeScale) Title() string     { return s.ScaleName }
func (s *LinetypeScale) IsDiscrete() bool  { return true }
func (s *LinetypeScale) ShowGuide() bool   { return s.Guide != GuideNone }
func (s *LinetypeScale) Reset()            {}

func (s *LinetypeScale) MapVals(vals table.Slice) (table.Slice, error) {
	rv := reflect.ValueOf(vals)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("want a column; got %T", vals)
	}
	out := make([]int, rv.Len())
	for i := range out {
		if l, ok := s.lookup(rv.Index(i).Interface()); ok {
			out[i] = defaultLineTypes[l%len(defaultLineTypes)]
		} else {
			out[i] = LineSolid
		}
	}
	return out, nil
}

func (s *LinetypeScale) Breaks() []float64 { return nil }

func (s *LinetypeScale) Labels() []string {
	return s.levelLabels()
}

func (s *LinetypeScale) LegendKeys() (labels []string, values []interface{}) {
	n := s.NLevels()
	values = make([]interface{}, n)
	for i := 0; i < n; i++ {
		values[i] = defaultLineTypes[i%len(defaultLineTypes)]
	}
	return s.levelLabels(), values
}

func (s *LinetypeScale) Clone() Scaler {
	return &LinetypeScale{Aes: s.Aes, ScaleName: s.ScaleName, Guide: s.Guide}
}

// An IdentityScale passes values through unmapped. It is the default
// for aesthetics without a standard scale and can be set explicitly
// to bypass scaling.
type IdentityScale struct {
	// Aes is the aesthetic family.
	Aes string

	// ScaleName overrides the guide title.
	ScaleName string
}

func (s *IdentityScale) Aesthetic() string { return s.Aes }
func (s *IdentityScale) Title() string     { return s.ScaleName }
func (s *IdentityScale) IsDiscrete() bool  { return false }
func (s *IdentityScale) Trained() bool     { return true }
func (s *IdentityScale) Train(table.Slice) {}
func (s *IdentityScale) Reset()            {}

func (s *IdentityScale) MapVals(vals table.Slice) (table.Slice, error) {
	return vals, nil
}

func (s *IdentityScale) Breaks() []float64 { return nil }
func (s *IdentityScale) Labels() []string  { return nil }

func (s *IdentityScale) Clone() Scaler {
	n := *s
	return &n
}
