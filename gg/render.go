// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"image/color"
	"strings"
)

// Render turns a build result into a layout table: panels with their
// grid lines and layer primitives, axes, facet strips, legends and
// titles, each in a named cell. The result is resolution
// independent; a drawing backend such as ggsvg turns it into output.
func Render(res *BuildResult) (*LayoutTable, error) {
	th := res.Plot.Theme
	if th == nil {
		th = DefaultTheme()
	}
	r := &render{res: res, ly: res.Layout, th: th}
	return r.run()
}

// render accumulates the track lists and index maps of the output
// grid. Track indices are -1 where a track is absent.
type render struct {
	res *BuildResult
	ly  *Layout
	th  *Theme
	lt  *LayoutTable

	grobs     map[int]*GTree // per-panel layer primitives
	stripTop  map[int]string
	stripRt   map[int]string
	legendBox *GBox

	rowOf      []int // panel row -> track
	axisRowOf  []int
	stripRowOf []int
	colOf      []int // panel col -> track
	axisColOf  []int
	stripCol   int
	guideRow   int
	guideCol   int

	rTag, rTitle, rSubtitle, rXLab, rCaption int
	cYLab                                    int

	xlabText, ylabText string
}

func (r *render) run() (*LayoutTable, error) {
	if err := r.layerGrobs(); err != nil {
		return nil, err
	}
	if err := r.makeLegends(); err != nil {
		return nil, err
	}
	r.strips()
	r.makeTracks()
	r.fill()
	return r.lt, nil
}

// layerGrobs draws every layer into per-panel primitive trees, one
// subtree per (panel, group) subset, layers in order.
func (r *render) layerGrobs() error {
	r.grobs = make(map[int]*GTree)
	for _, id := range r.ly.PanelIDs() {
		r.grobs[id] = Tree("data")
	}
	coord := r.ly.Coord
	for _, bl := range r.res.layers {
		if bl.geom.LinearCoordOnly() && !coord.IsLinear() {
			Warning.Printf("layer %d: %T requires linear coordinates; results under %T may be incorrect", bl.index, bl.geom, coord)
		}
		if bl.table.Len() == 0 {
			continue
		}
		for _, part := range bl.table.PartitionBy(ColPanel, ColGroup) {
			panel := intAt(part, ColPanel, 0, 1)
			tree, ok := r.grobs[panel]
			if !ok {
				return fmt.Errorf("layer %d: data in unknown panel %d", bl.index, panel)
			}
			g, err := bl.geom.DrawPanel(part, bl.params, coord, r.ly.Ranges(panel))
			if err != nil {
				return fmt.Errorf("layer %d: %v", bl.index, err)
			}
			if g != nil {
				tree.Add(g)
			}
		}
	}
	return nil
}

func (r *render) makeLegends() error {
	if r.th.LegendPosition == LegendNone {
		return nil
	}
	legends := buildLegends(r.res)
	if len(legends) == 0 {
		return nil
	}
	var err error
	r.legendBox, err = drawLegends(legends, r.th)
	return err
}

func (r *render) strips() {
	r.stripTop = make(map[int]string)
	r.stripRt = make(map[int]string)
	for _, id := range r.ly.PanelIDs() {
		top, right := r.ly.Facet.Strips(r.ly.Panels, id)
		r.stripTop[id] = top
		r.stripRt[id] = right
	}
}

// showAxisX reports whether the panel at grid position (pr, pc)
// draws a bottom axis: it is the bottommost panel of its column, or
// the panel below it maps through a different x scale.
func (r *render) showAxisX(pr, pc int) bool {
	p := r.ly.PanelAt(pr, pc)
	if p == 0 {
		return false
	}
	for q := pr + 1; q < r.ly.Rows; q++ {
		if below := r.ly.PanelAt(q, pc); below != 0 {
			return r.ly.scalex[r.ly.panelIndex(p)] != r.ly.scalex[r.ly.panelIndex(below)]
		}
	}
	return true
}

// showAxisY is showAxisX for the left axis.
func (r *render) showAxisY(pr, pc int) bool {
	p := r.ly.PanelAt(pr, pc)
	if p == 0 {
		return false
	}
	for q := pc - 1; q >= 0; q-- {
		if left := r.ly.PanelAt(pr, q); left != 0 {
			return r.ly.scaley[r.ly.panelIndex(p)] != r.ly.scaley[r.ly.panelIndex(left)]
		}
	}
	return true
}

func (r *render) axisInfo(side byte, panel int) AxisInfo {
	return r.ly.Coord.RenderAxis(side, r.ly.ScaleX(panel), r.ly.ScaleY(panel), r.ly.Ranges(panel))
}

// axisTitle returns the title of a position axis: the plot's
// override, the scale's name, or a label derived from the mapped
// expressions.
func (r *render) axisTitle(fam string) string {
	override, insts := r.res.Plot.XLabel, r.ly.XScales
	if fam == "y" {
		override, insts = r.res.Plot.YLabel, r.ly.YScales
	}
	if override != "" {
		return override
	}
	if t := insts[0].Title(); t != "" {
		return t
	}
	return aesLabel(r.res.layers, fam)
}

// textBlockH returns the height of a block of text lines plus
// padding.
func textBlockH(s string, size float64) float64 {
	n := strings.Count(s, "\n") + 1
	return float64(n)*lineHeight(size) + 4
}

// makeTracks lays out the grid's rows and columns and records where
// everything goes.
func (r *render) makeTracks() {
	th, ly := r.th, r.ly
	p := r.res.Plot
	r.lt = new(LayoutTable)

	xlab, ylab := r.axisTitle("x"), r.axisTitle("y")
	if _, ok := ly.Coord.(CoordFlip); ok {
		xlab, ylab = ylab, xlab
	}
	r.xlabText, r.ylabText = xlab, ylab

	axisBH := th.TickLength + 2 + lineHeight(th.AxisTextSize)
	stripH := lineHeight(th.StripTextSize) + 4

	// Rows, top to bottom.
	var hs []Track
	row := func(tr Track) int {
		hs = append(hs, tr)
		return len(hs) - 1
	}
	r.rTag, r.rTitle, r.rSubtitle, r.guideRow = -1, -1, -1, -1
	row(Track{Pt: th.Margin})
	if p.Tag != "" {
		r.rTag = row(Track{Pt: textBlockH(p.Tag, th.TagSize)})
	}
	if p.Title != "" {
		r.rTitle = row(Track{Pt: textBlockH(p.Title, th.TitleSize)})
	}
	if p.Subtitle != "" {
		r.rSubtitle = row(Track{Pt: textBlockH(p.Subtitle, th.SubtitleSize)})
	}
	if r.legendBox != nil && th.LegendPosition == LegendTop {
		r.guideRow = row(Track{Pt: r.legendBox.H})
		row(Track{Pt: th.Margin})
	}
	r.rowOf = make([]int, ly.Rows)
	r.axisRowOf = make([]int, ly.Rows)
	r.stripRowOf = make([]int, ly.Rows)
	for pr := 0; pr < ly.Rows; pr++ {
		if pr > 0 {
			row(Track{Pt: th.PanelSpacing})
		}
		r.stripRowOf[pr] = -1
		for pc := 0; pc < ly.Cols; pc++ {
			if id := ly.PanelAt(pr, pc); id != 0 && r.stripTop[id] != "" {
				r.stripRowOf[pr] = row(Track{Pt: stripH})
				break
			}
		}
		r.rowOf[pr] = row(Track{Flex: 1})
		r.axisRowOf[pr] = -1
		for pc := 0; pc < ly.Cols; pc++ {
			if r.showAxisX(pr, pc) {
				r.axisRowOf[pr] = row(Track{Pt: axisBH})
				break
			}
		}
	}
	r.rXLab, r.rCaption = -1, -1
	if xlab != "" {
		r.rXLab = row(Track{Pt: textBlockH(xlab, th.AxisTitleSize)})
	}
	if r.legendBox != nil && th.LegendPosition == LegendBottom {
		row(Track{Pt: th.Margin})
		r.guideRow = row(Track{Pt: r.legendBox.H})
	}
	if p.Caption != "" {
		r.rCaption = row(Track{Pt: textBlockH(p.Caption, th.CaptionSize)})
	}
	row(Track{Pt: th.Margin})

	// Columns, left to right.
	var ws []Track
	col := func(tr Track) int {
		ws = append(ws, tr)
		return len(ws) - 1
	}
	r.cYLab, r.guideCol, r.stripCol = -1, -1, -1
	col(Track{Pt: th.Margin})
	if r.legendBox != nil && th.LegendPosition == LegendLeft {
		r.guideCol = col(Track{Pt: r.legendBox.W})
		col(Track{Pt: th.Margin})
	}
	if ylab != "" {
		r.cYLab = col(Track{Pt: lineHeight(th.AxisTitleSize) + 4})
	}
	r.colOf = make([]int, ly.Cols)
	r.axisColOf = make([]int, ly.Cols)
	for pc := 0; pc < ly.Cols; pc++ {
		if pc > 0 {
			col(Track{Pt: th.PanelSpacing})
		}
		r.axisColOf[pc] = -1
		w := 0.0
		for pr := 0; pr < ly.Rows; pr++ {
			if !r.showAxisY(pr, pc) {
				continue
			}
			ax := r.axisInfo('l', ly.PanelAt(pr, pc))
			if lw := maxTextWidth(ax.Labels, th.AxisTextSize); lw > w {
				w = lw
			}
		}
		if w > 0 {
			r.axisColOf[pc] = col(Track{Pt: w + th.TickLength + 4})
		}
		r.colOf[pc] = col(Track{Flex: 1})
	}
	for _, id := range ly.PanelIDs() {
		if r.stripRt[id] != "" {
			r.stripCol = col(Track{Pt: stripH})
			break
		}
	}
	if r.legendBox != nil && th.LegendPosition == LegendRight {
		col(Track{Pt: th.Margin})
		r.guideCol = col(Track{Pt: r.legendBox.W})
	}
	col(Track{Pt: th.Margin})

	r.lt.Heights = hs
	r.lt.Widths = ws
}

// fill populates the grid's cells.
func (r *render) fill() {
	th, ly, lt := r.th, r.ly, r.lt
	p := r.res.Plot
	ncols, nrows := len(lt.Widths), len(lt.Heights)

	lt.Add("background", 0, 0, nrows, ncols, &GRects{
		X0: []float64{0}, Y0: []float64{0}, X1: []float64{1}, Y1: []float64{1},
		Fill: []color.Color{th.PlotBG},
	})

	// The panel block, for cells that center on the panels.
	firstPC, lastPC := r.colOf[0], r.colOf[ly.Cols-1]
	firstPR, lastPR := r.rowOf[0], r.rowOf[ly.Rows-1]
	if r.axisRowOf[ly.Rows-1] >= 0 {
		lastPR = r.axisRowOf[ly.Rows-1]
	}

	if r.rTag >= 0 {
		lt.Add("tag", r.rTag, 1, 1, ncols-2,
			textBlock(p.Tag, th.TagSize, th.TextColor, AnchorStart, 0))
	}
	if r.rTitle >= 0 {
		lt.Add("title", r.rTitle, 1, 1, ncols-2,
			textBlock(p.Title, th.TitleSize, th.TextColor, AnchorStart, 0))
	}
	if r.rSubtitle >= 0 {
		lt.Add("subtitle", r.rSubtitle, 1, 1, ncols-2,
			textBlock(p.Subtitle, th.SubtitleSize, th.TextColor, AnchorStart, 0))
	}
	if r.rCaption >= 0 {
		lt.Add("caption", r.rCaption, 1, 1, ncols-2,
			textBlock(p.Caption, th.CaptionSize, th.TextColor, AnchorEnd, 1))
	}
	if r.rXLab >= 0 {
		lt.Add("lab-x", r.rXLab, firstPC, 1, lastPC-firstPC+1,
			textBlock(r.xlabText, th.AxisTitleSize, th.TextColor, AnchorMiddle, 0.5))
	}
	if r.cYLab >= 0 {
		lt.Add("lab-y", firstPR, r.cYLab, lastPR-firstPR+1, 1,
			rotatedLabel(r.ylabText, th.AxisTitleSize, th.TextColor))
	}

	for pr := 0; pr < ly.Rows; pr++ {
		for pc := 0; pc < ly.Cols; pc++ {
			id := ly.PanelAt(pr, pc)
			if id == 0 {
				continue
			}
			r.fillPanel(id, pr, pc)
		}
	}

	if r.stripCol >= 0 {
		for pr := 0; pr < ly.Rows; pr++ {
			for pc := ly.Cols - 1; pc >= 0; pc-- {
				id := ly.PanelAt(pr, pc)
				if id == 0 || r.stripRt[id] == "" {
					continue
				}
				lt.Add(fmt.Sprintf("strip-r-%d", pr), r.rowOf[pr], r.stripCol, 1, 1,
					stripGrob(r.stripRt[id], th, -90))
				break
			}
		}
	}

	if r.legendBox != nil {
		switch th.LegendPosition {
		case LegendRight:
			r.legendBox.HAlign, r.legendBox.VAlign = 0, 0.5
			lt.Add("guide-box", firstPR, r.guideCol, lastPR-firstPR+1, 1, r.legendBox)
		case LegendLeft:
			r.legendBox.HAlign, r.legendBox.VAlign = 1, 0.5
			lt.Add("guide-box", firstPR, r.guideCol, lastPR-firstPR+1, 1, r.legendBox)
		case LegendTop, LegendBottom:
			r.legendBox.HAlign, r.legendBox.VAlign = 0.5, 0.5
			lt.Add("guide-box", r.guideRow, firstPC, 1, lastPC-firstPC+1, r.legendBox)
		}
	}
}

// fillPanel adds the cells of one panel: its strip, the panel
// itself with background, grid lines and layer primitives, and its
// axes.
func (r *render) fillPanel(id, pr, pc int) {
	th, ly, lt := r.th, r.ly, r.lt
	rng := ly.Ranges(id)
	coord := ly.Coord

	if sr := r.stripRowOf[pr]; sr >= 0 && r.stripTop[id] != "" {
		lt.Add(fmt.Sprintf("strip-t-%d-%d", pr, pc), sr, r.colOf[pc], 1, 1,
			stripGrob(r.stripTop[id], th, 0))
	}

	panel := Tree(fmt.Sprintf("panel-%d-%d", pr, pc))
	panel.Add(&GRects{
		X0: []float64{0}, Y0: []float64{0}, X1: []float64{1}, Y1: []float64{1},
		Fill: []color.Color{th.PanelBG},
	})
	minor := LineStyle{Color: th.GridColor, Width: th.GridWidth * 0.5, Type: LineSolid}
	major := LineStyle{Color: th.GridColor, Width: th.GridWidth, Type: LineSolid}
	xbr := inRange(ly.ScaleX(id).Breaks(), rng.X)
	ybr := inRange(ly.ScaleY(id).Breaks(), rng.Y)
	for _, v := range inRange(midpoints(xbr), rng.X) {
		panel.Add(coordLine(coord, rng, true, v, minor))
	}
	for _, v := range inRange(midpoints(ybr), rng.Y) {
		panel.Add(coordLine(coord, rng, false, v, minor))
	}
	for _, v := range xbr {
		panel.Add(coordLine(coord, rng, true, v, major))
	}
	for _, v := range ybr {
		panel.Add(coordLine(coord, rng, false, v, major))
	}
	panel.Add(r.grobs[id])
	lt.Add(panel.Name, r.rowOf[pr], r.colOf[pc], 1, 1, panel)

	if r.axisRowOf[pr] >= 0 && r.showAxisX(pr, pc) {
		h := th.TickLength + 2 + lineHeight(th.AxisTextSize)
		ascent, _ := textHeight(th.AxisTextSize)
		ax := r.axisInfo('b', id)
		g := Tree(fmt.Sprintf("axis-b-%d-%d", pr, pc))
		if len(ax.Pos) > 0 {
			ticks := &GSegments{Style: LineStyle{Color: th.AxisTickColor, Width: th.GridWidth, Type: LineSolid}}
			for _, pos := range ax.Pos {
				ticks.X0 = append(ticks.X0, pos)
				ticks.X1 = append(ticks.X1, pos)
				ticks.Y0 = append(ticks.Y0, 1)
				ticks.Y1 = append(ticks.Y1, 1-th.TickLength/h)
			}
			text := &GText{Style: TextStyle{Color: th.TextColor, Size: th.AxisTextSize, Anchor: AnchorMiddle}}
			for i, pos := range ax.Pos {
				text.X = append(text.X, pos)
				text.Y = append(text.Y, 1-(th.TickLength+2+ascent)/h)
				text.Text = append(text.Text, ax.Labels[i])
			}
			g.Add(ticks, text)
		}
		lt.Add(g.Name, r.axisRowOf[pr], r.colOf[pc], 1, 1, g)
	}

	if r.axisColOf[pc] >= 0 && r.showAxisY(pr, pc) {
		w := lt.Widths[r.axisColOf[pc]].Pt
		ax := r.axisInfo('l', id)
		g := Tree(fmt.Sprintf("axis-l-%d-%d", pr, pc))
		if len(ax.Pos) > 0 {
			ticks := &GSegments{Style: LineStyle{Color: th.AxisTickColor, Width: th.GridWidth, Type: LineSolid}}
			for _, pos := range ax.Pos {
				ticks.X0 = append(ticks.X0, 1-th.TickLength/w)
				ticks.X1 = append(ticks.X1, 1)
				ticks.Y0 = append(ticks.Y0, pos)
				ticks.Y1 = append(ticks.Y1, pos)
			}
			text := &GText{Style: TextStyle{Color: th.TextColor, Size: th.AxisTextSize, Anchor: AnchorEnd, VCenter: true}}
			for _, pos := range ax.Pos {
				text.X = append(text.X, 1-(th.TickLength+2)/w)
				text.Y = append(text.Y, pos)
			}
			text.Text = append(text.Text, ax.Labels...)
			g.Add(ticks, text)
		}
		lt.Add(g.Name, r.rowOf[pr], r.axisColOf[pc], 1, 1, g)
	}
}

// textBlock renders a block of text lines into a cell sized by
// textBlockH. anchorX is the normalized x position matching the
// anchor.
func textBlock(s string, size float64, col color.Color, anchor int, anchorX float64) Grob {
	lines := strings.Split(s, "\n")
	h := textBlockH(s, size)
	lh := lineHeight(size)
	ascent, _ := textHeight(size)
	g := &GText{Style: TextStyle{Color: col, Size: size, Anchor: anchor}}
	for i, line := range lines {
		g.X = append(g.X, anchorX)
		g.Y = append(g.Y, 1-(2+float64(i)*lh+ascent)/h)
		g.Text = append(g.Text, line)
	}
	return g
}

// rotatedLabel renders a y axis title reading bottom to top.
// Multiple lines are folded into one.
func rotatedLabel(s string, size float64, col color.Color) Grob {
	s = strings.Join(strings.Split(s, "\n"), " / ")
	w := textBlockH(s, size)
	ascent, descent := textHeight(size)
	return &GText{
		X:    []float64{0.5 + (ascent - descent) / 2 / w},
		Y:    []float64{0.5},
		Text: []string{s},
		Style: TextStyle{
			Color:  col,
			Size:   size,
			Anchor: AnchorMiddle,
			Rotate: 90,
		},
	}
}

// stripGrob renders a facet strip: a background with a centered
// label, rotated for right-edge strips.
func stripGrob(label string, th *Theme, rotate float64) Grob {
	g := Tree("strip")
	g.Add(&GRects{
		X0: []float64{0}, Y0: []float64{0}, X1: []float64{1}, Y1: []float64{1},
		Fill: []color.Color{th.StripBG},
	})
	ascent, descent := textHeight(th.StripTextSize)
	style := TextStyle{Color: th.TextColor, Size: th.StripTextSize, Anchor: AnchorMiddle, Rotate: rotate}
	x, y := 0.5, 0.5
	w := lineHeight(th.StripTextSize) + 4
	if rotate == 0 {
		style.VCenter = true
	} else {
		// Rotation moves the baseline offset to the x axis.
		x = 0.5 - (ascent-descent)/2/w
	}
	g.Add(&GText{X: []float64{x}, Y: []float64{y}, Text: []string{label}, Style: style})
	return g
}

// inRange filters break positions to the expanded panel range.
func inRange(breaks []float64, rng [2]float64) []float64 {
	var out []float64
	for _, b := range breaks {
		if b >= rng[0] && b <= rng[1] {
			out = append(out, b)
		}
	}
	return out
}

// midpoints returns the positions halfway between consecutive
// breaks, extended half a step past the first and last break.
func midpoints(breaks []float64) []float64 {
	if len(breaks) < 2 {
		return nil
	}
	var out []float64
	out = append(out, breaks[0]-(breaks[1]-breaks[0])/2)
	for i := 1; i < len(breaks); i++ {
		out = append(out, (breaks[i-1]+breaks[i])/2)
	}
	n := len(breaks)
	out = append(out, breaks[n-1]+(breaks[n-1]-breaks[n-2])/2)
	return out
}

// coordLine samples a line of constant x (vertical) or constant y
// through the panel and transforms it into panel coordinates. Under
// a linear coordinate system two samples suffice; non-linear systems
// get a smooth curve.
func coordLine(coord Coord, r *PanelRanges, vertical bool, v float64, style LineStyle) Grob {
	n := 2
	if !coord.IsLinear() {
		n = 49
	}
	xs, ys := make([]float64, n), make([]float64, n)
	for i := range xs {
		t := float64(i) / float64(n-1)
		if vertical {
			xs[i] = v
			ys[i] = r.Y[0] + t*(r.Y[1]-r.Y[0])
		} else {
			xs[i] = r.X[0] + t*(r.X[1]-r.X[0])
			ys[i] = v
		}
	}
	nx, ny := coord.Transform(xs, ys, r)
	return &GPath{X: nx, Y: ny, Style: style}
}
