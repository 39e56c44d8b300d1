// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"

	"github.com/aclements/go-ggplot/table"
)

// A BuildResult is the outcome of building a plot: one finalized
// table per layer, the trained layout and scales, and per-layer
// diagnostics. It has everything Render needs and nothing it has to
// recompute, so a result can be rendered any number of times.
type BuildResult struct {
	// Tables holds the finalized layer tables, in layer order.
	// Every table carries the panel and group columns plus one
	// column per aesthetic, all in mapped aesthetic space.
	Tables []*table.Table

	// Layout is the trained facet and coordinate layout.
	Layout *Layout

	// Scales is the trained scale set.
	Scales *Scales

	// Plot is the plot this result was built from. Build does not
	// modify it.
	Plot *Plot

	// Diag reports what the build did to the data.
	Diag Diag

	layers []*builtLayer
}

// builtLayer is the per-layer state threaded through the build:
// the layer's resolved components, its rewritten parameters, and its
// table as of the current stage.
type builtLayer struct {
	layer  *Layer
	index  int
	stat   Stat
	geom   Geom
	pos    Position
	aes    Aes
	params Params
	table  *table.Table
}

type build struct {
	plot   *Plot
	facet  Facet
	coord  Coord
	scales *Scales
	layout *Layout
	layers []*builtLayer
	diag   Diag
}

// Build runs the build pipeline over plot p: it resolves each
// layer's data, assigns panels, evaluates aesthetic mappings, maps
// the data through the scales, applies statistics and position
// adjustments, and finalizes the layer tables.
//
// Build leaves p unchanged. Scales are cloned before training, so
// building the same plot twice yields the same result.
func Build(p *Plot) (*BuildResult, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	b := &build{plot: p}
	for _, stage := range []func() error{
		b.resolveData,
		b.assignPanels,
		b.evalLayerAes,
		b.transformData,
		b.mapPositions,
		b.applyStats,
		b.evalDeferredAes,
		b.setupGeoms,
		b.adjustPositions,
		b.retrainPositions,
		b.mapOther,
		b.finalize,
	} {
		if err := stage(); err != nil {
			return nil, err
		}
	}

	res := &BuildResult{
		Layout: b.layout,
		Scales: b.scales,
		Plot:   b.plot,
		Diag:   b.diag,
		layers: b.layers,
	}
	for _, bl := range b.layers {
		res.Tables = append(res.Tables, bl.table)
	}
	return res, nil
}

// resolveData resolves each layer's data source and sets up the
// per-layer build state.
func (b *build) resolveData() error {
	b.scales = b.plot.Scales.Clone()
	b.facet = b.plot.Facet
	if b.facet == nil {
		b.facet = FacetNull{}
	}
	b.coord = b.plot.Coord
	if b.coord == nil {
		b.coord = CoordCartesian{}
	}
	for i, l := range b.plot.Layers {
		t, err := l.resolveData(b.plot.Data)
		if err != nil {
			return fmt.Errorf("layer %d: %v", i, err)
		}
		b.layers = append(b.layers, &builtLayer{
			layer:  l,
			index:  i,
			stat:   l.stat(),
			geom:   l.Geom,
			pos:    l.position(),
			params: l.Params.Clone(),
			table:  t,
		})
	}
	return nil
}

// assignPanels computes the facet layout over all layers and tags
// every row with its panel.
func (b *build) assignPanels() error {
	if cs, ok := b.coord.(CoordSetup); ok {
		for _, bl := range b.layers {
			t, err := cs.SetupData(bl.table)
			if err != nil {
				return fmt.Errorf("layer %d: %v", bl.index, err)
			}
			bl.table = t
		}
	}

	datas := make([]*table.Table, len(b.layers))
	for i, bl := range b.layers {
		datas[i] = bl.table
	}
	panels, err := b.facet.ComputeLayout(datas)
	if err != nil {
		return err
	}
	if b.layout, err = newLayout(b.facet, b.coord, panels); err != nil {
		return err
	}

	for _, bl := range b.layers {
		t, err := b.facet.AssignPanels(bl.table, panels)
		if err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		bl.table = t
	}
	return nil
}

// evalLayerAes evaluates each layer's non-deferred aesthetic
// mappings, derives the group column, and infers scales for the new
// aesthetic columns.
func (b *build) evalLayerAes() error {
	for _, bl := range b.layers {
		bl.aes = bl.layer.resolveAes(b.plot.Aes, bl.stat)
		t, err := evalAes(bl.aes, bl.table)
		if err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		bl.table = t
	}
	return b.inferScales()
}

// inferScales gives every scaled aesthetic column without a scale a
// default scale inferred from its values.
func (b *build) inferScales() error {
	for _, bl := range b.layers {
		for _, name := range bl.table.Columns() {
			if !scaledAes(name) || b.scales.Get(name) != nil {
				continue
			}
			sc, err := inferScale(name, bl.table.Column(name))
			if err != nil {
				return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, name, err)
			}
			b.scales.Set(sc)
		}
	}
	return nil
}

// transformData applies continuous scale transformations to the
// data.
func (b *build) transformData() error {
	for _, bl := range b.layers {
		if err := b.transformLayer(bl, nil); err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
	}
	return nil
}

// transformLayer transforms bl's scaled columns, or just the named
// ones if only is non-nil. Values the transformation sends to
// infinity become missing.
func (b *build) transformLayer(bl *builtLayer, only map[string]bool) error {
	bt := table.NewBuilder(bl.table)
	changed := false
	for _, name := range bl.table.Columns() {
		if only != nil && !only[name] {
			continue
		}
		if !scaledAes(name) {
			continue
		}
		cs, ok := b.scales.Get(name).(*ContinuousScale)
		if !ok || !cs.Trans.defined() {
			continue
		}
		vals, err := cs.transform(bl.table.Column(name))
		if err != nil {
			return fmt.Errorf("aesthetic %q: %v", name, err)
		}
		for i, v := range vals {
			if math.IsInf(v, 0) {
				vals[i] = math.NaN()
			}
		}
		bt.Add(name, vals)
		changed = true
	}
	if changed {
		bl.table = bt.Done()
	}
	return nil
}

// makeScales clones the base scale of a position family into n
// per-layout instances.
func (b *build) makeScales(fam string, n int) ([]PositionScaler, error) {
	base := b.scales.Get(fam)
	out := make([]PositionScaler, n)
	for i := range out {
		if base == nil {
			out[i] = &ContinuousScale{Aes: fam}
			continue
		}
		ps, ok := base.Clone().(PositionScaler)
		if !ok {
			return nil, fmt.Errorf("%T cannot scale the %q aesthetic family", base, fam)
		}
		out[i] = ps
	}
	return out, nil
}

// famScales returns the layout's scale instances for a position
// family and the map from panel ID to instance index.
func (b *build) famScales(fam string) ([]PositionScaler, map[int]int) {
	ly := b.layout
	idx := make(map[int]int, len(ly.ids))
	if fam == "x" {
		for i, id := range ly.ids {
			idx[id] = ly.scalex[i]
		}
		return ly.XScales, idx
	}
	for i, id := range ly.ids {
		idx[id] = ly.scaley[i]
	}
	return ly.YScales, idx
}

// familyCols returns the scaled columns of t in aesthetic family
// fam.
func familyCols(t *table.Table, fam string) []string {
	var cols []string
	for _, name := range t.Columns() {
		if scaledAes(name) && aesFamily(name) == fam {
			cols = append(cols, name)
		}
	}
	return cols
}

// scaleRowSets groups t's row indices by the scale instance their
// panel maps through.
func scaleRowSets(t *table.Table, idx map[int]int, n int) [][]int {
	sets := make([][]int, n)
	for i, p := range intCol(t, ColPanel, 1) {
		sets[idx[p]] = append(sets[idx[p]], i)
	}
	return sets
}

// checkContinuousData verifies that col can train continuous scale
// sc, so that mixing discrete data into a continuous aesthetic
// reports which column is at fault instead of panicking.
func checkContinuousData(sc Scaler, col table.Slice) error {
	if sc.IsDiscrete() {
		return nil
	}
	if _, ok := sc.(*IdentityScale); ok {
		return nil
	}
	_, err := toFloats(col)
	return err
}

// mapPositions creates the per-layout position scale instances,
// trains them on every layer, and maps all position columns into
// mapped space. Training runs over all layers before any mapping so
// a discrete scale's level set is complete when positions are
// assigned.
func (b *build) mapPositions() error {
	nx, ny := b.layout.nScales()
	var err error
	if b.layout.XScales, err = b.makeScales("x", nx); err != nil {
		return err
	}
	if b.layout.YScales, err = b.makeScales("y", ny); err != nil {
		return err
	}
	// The scale set reports the first instance as the family's
	// trained scale.
	b.scales.Set(b.layout.XScales[0])
	b.scales.Set(b.layout.YScales[0])

	for _, bl := range b.layers {
		for _, fam := range []string{"x", "y"} {
			insts, idx := b.famScales(fam)
			cols := familyCols(bl.table, fam)
			if len(cols) == 0 {
				continue
			}
			for si, rows := range scaleRowSets(bl.table, idx, len(insts)) {
				if len(rows) == 0 {
					continue
				}
				for _, c := range cols {
					sub := slice.Select(bl.table.Column(c), rows)
					if err := checkContinuousData(insts[si], sub); err != nil {
						return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, c, err)
					}
					insts[si].Train(sub)
				}
			}
		}
	}

	for _, bl := range b.layers {
		if err := b.mapLayerPositions(bl); err != nil {
			return err
		}
	}
	return nil
}

// mapLayerPositions maps every position column of bl through its
// panel's scale instance, preserving row order.
func (b *build) mapLayerPositions(bl *builtLayer) error {
	bt := table.NewBuilder(bl.table)
	changed := false
	for _, fam := range []string{"x", "y"} {
		insts, idx := b.famScales(fam)
		cols := familyCols(bl.table, fam)
		if len(cols) == 0 {
			continue
		}
		sets := scaleRowSets(bl.table, idx, len(insts))
		for _, c := range cols {
			out := make([]float64, bl.table.Len())
			for si, rows := range sets {
				if len(rows) == 0 {
					continue
				}
				sub := slice.Select(bl.table.Column(c), rows)
				mapped, err := insts[si].MapVals(sub)
				if err != nil {
					return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, c, err)
				}
				fs, err := toFloats(mapped)
				if err != nil {
					return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, c, err)
				}
				for j, r := range rows {
					out[r] = fs[j]
				}
			}
			bt.Add(c, out)
			changed = true
		}
	}
	if changed {
		bl.table = bt.Done()
	}
	return nil
}

// applyStats runs each layer's statistic.
func (b *build) applyStats() error {
	for _, bl := range b.layers {
		var err error
		if bl.params, err = bl.stat.SetupParams(bl.table, bl.params); err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		t, err := bl.stat.SetupData(bl.table, bl.params)
		if err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		if t, err = applyStat(bl.stat, t, bl.params); err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		bl.table = t
	}
	return nil
}

// applyStat runs stat over each (panel, group) subset of t and
// concatenates the results in partition order, with the subset's
// panel and group reattached as leading constant columns. Every
// subset must produce the same column set.
func applyStat(stat Stat, t *table.Table, p Params) (*table.Table, error) {
	if ts, ok := stat.(TableStat); ok {
		return ts.ComputeTable(t, p)
	}
	if t.Len() == 0 {
		return t, nil
	}

	parts := t.PartitionBy(ColPanel, ColGroup)
	outs := make([]*table.Table, 0, len(parts))
	var want []string
	for _, part := range parts {
		panel := intAt(part, ColPanel, 0, 1)
		group := intAt(part, ColGroup, 0, NoGroup)
		out, err := stat.ComputeGroup(part, p)
		if err != nil {
			return nil, err
		}

		ob := new(table.Builder)
		ob.AddConst(ColPanel, panel).AddConst(ColGroup, group)
		for _, name := range out.Columns() {
			if name == ColPanel || name == ColGroup {
				continue
			}
			carryColumn(ob, out, name)
		}
		out = ob.Done()

		if want == nil {
			want = out.Columns()
		} else if !sameStrings(want, out.Columns()) {
			return nil, fmt.Errorf("stat %T returned mismatched columns: %v and %v", stat, want, out.Columns())
		}
		outs = append(outs, out)
	}
	return table.Concat(outs...), nil
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// evalDeferredAes evaluates the aesthetic mappings that refer to
// statistic output. Deferred position columns still pass through the
// scale transformation.
func (b *build) evalDeferredAes() error {
	for _, bl := range b.layers {
		deferred := make(map[string]bool)
		for _, name := range bl.aes.names() {
			if bl.aes[name].Deferred() {
				deferred[name] = true
			}
		}
		if len(deferred) == 0 {
			continue
		}

		if err := checkRefs(bl.aes, bl.table, true); err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		bt := table.NewBuilder(bl.table)
		for _, name := range bl.aes.names() {
			if !deferred[name] {
				continue
			}
			v, err := bl.aes[name].Eval(bl.table)
			if err != nil {
				return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, name, err)
			}
			bt.Add(name, v)
		}
		bl.table = bt.Done()

		if err := b.transformLayer(bl, deferred); err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
	}
	return nil
}

// setupGeoms checks each layer's required aesthetics and lets the
// geom rewrite its parameters and derive extent columns.
func (b *build) setupGeoms() error {
	for _, bl := range b.layers {
		for _, req := range bl.geom.RequiredAes() {
			if !bl.table.Has(req) {
				return fmt.Errorf("layer %d: geom %T requires aesthetic %q", bl.index, bl.geom, req)
			}
		}
		var err error
		if bl.params, err = bl.geom.SetupParams(bl.table, bl.params); err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		t, err := bl.geom.SetupData(bl.table, bl.params)
		if err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		bl.table = t
	}
	return nil
}

// adjustPositions runs each layer's position adjustment.
func (b *build) adjustPositions() error {
	for _, bl := range b.layers {
		t, err := bl.pos.SetupData(bl.table, bl.params)
		if err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		if t, err = bl.pos.ComputeLayer(t, bl.params); err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		bl.table = t
	}
	return nil
}

// retrainPositions resets every position scale and retrains it on
// the mapped columns, so statistic and position output extends the
// panel ranges, then remaps so out-of-bounds handling applies to the
// final values. Discrete levels survive the reset.
func (b *build) retrainPositions() error {
	for _, sc := range b.layout.XScales {
		sc.Reset()
	}
	for _, sc := range b.layout.YScales {
		sc.Reset()
	}

	for _, bl := range b.layers {
		for _, fam := range []string{"x", "y"} {
			insts, idx := b.famScales(fam)
			cols := familyCols(bl.table, fam)
			if len(cols) == 0 {
				continue
			}
			for si, rows := range scaleRowSets(bl.table, idx, len(insts)) {
				if len(rows) == 0 {
					continue
				}
				for _, c := range cols {
					fs, err := toFloats(slice.Select(bl.table.Column(c), rows))
					if err != nil {
						return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, c, err)
					}
					insts[si].TrainMapped(fs)
				}
			}
		}
	}

	for _, bl := range b.layers {
		if err := b.mapLayerPositions(bl); err != nil {
			return err
		}
	}
	return nil
}

// mapOther trains and maps the non-positional scales and fills
// unmapped aesthetics from layer parameters and geom defaults.
func (b *build) mapOther() error {
	// Aesthetics mapped from statistic output may still need
	// scales.
	if err := b.inferScales(); err != nil {
		return err
	}

	for _, bl := range b.layers {
		for _, name := range bl.table.Columns() {
			if !otherScaled(name) {
				continue
			}
			sc := b.scales.Get(name)
			col := bl.table.Column(name)
			if err := checkContinuousData(sc, col); err != nil {
				return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, name, err)
			}
			sc.Train(col)
		}
	}

	for _, bl := range b.layers {
		bt := table.NewBuilder(bl.table)
		changed := false
		for _, name := range bl.table.Columns() {
			if !otherScaled(name) {
				continue
			}
			mapped, err := b.scales.Get(name).MapVals(bl.table.Column(name))
			if err != nil {
				return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, name, err)
			}
			bt.Add(name, mapped)
			changed = true
		}

		// An unmapped aesthetic takes its value from the layer
		// parameter of the same name, if any, and otherwise
		// from the geom's default.
		defaults := bl.geom.DefaultAes()
		for _, name := range defaults.names() {
			if bl.table.Has(name) {
				continue
			}
			if v, ok := bl.params[name]; ok {
				bt.AddConst(name, v)
				changed = true
				continue
			}
			if c, ok := defaults[name].(Const); ok {
				bt.AddConst(name, c.Value)
			} else {
				v, err := defaults[name].Eval(bl.table)
				if err != nil {
					return fmt.Errorf("layer %d: aesthetic %q: %v", bl.index, name, err)
				}
				bt.Add(name, v)
			}
			changed = true
		}
		if changed {
			bl.table = bt.Done()
		}
	}
	return nil
}

// otherScaled reports whether aesthetic aes maps through a
// non-positional scale.
func otherScaled(aes string) bool {
	return scaledAes(aes) && !positionFamily(aesFamily(aes))
}

// finalize gives the statistic and the facet a last look at each
// layer and removes rows that still miss a required aesthetic.
func (b *build) finalize() error {
	b.diag.Removed = make([]int, len(b.layers))
	for _, bl := range b.layers {
		t, err := bl.stat.FinishLayer(bl.table, bl.params)
		if err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}
		if t, err = b.facet.FinishData(t, b.layout.Panels); err != nil {
			return fmt.Errorf("layer %d: %v", bl.index, err)
		}

		var rvs []reflect.Value
		for _, name := range bl.geom.RequiredAes() {
			if t.Has(name) {
				rvs = append(rvs, reflect.ValueOf(t.Column(name)))
			}
		}
		var keep []int
		removed := 0
		for i := 0; i < t.Len(); i++ {
			miss := false
			for _, rv := range rvs {
				if isMissing(rv.Index(i).Interface()) {
					miss = true
					break
				}
			}
			if miss {
				removed++
			} else {
				keep = append(keep, i)
			}
		}
		if removed > 0 {
			t = t.SelectRows(keep)
			b.diag.Removed[bl.index] = removed
			if !bl.layer.NaRM {
				Warning.Printf("layer %d: removed %d rows containing missing values", bl.index, removed)
			}
		}
		bl.table = t
	}
	return nil
}

// isMissing reports whether v is a missing value.
func isMissing(v interface{}) bool {
	switch v := v.(type) {
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case nil:
		return true
	}
	return false
}
