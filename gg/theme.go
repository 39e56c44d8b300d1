// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import "image/color"

// Legend placement.
const (
	LegendRight = iota
	LegendLeft
	LegendTop
	LegendBottom
	LegendNone
)

// A Theme controls the presentation details of a plot that are not
// derived from the data: fonts, background colors, spacing and
// legend placement. All sizes are in points.
//
// Use DefaultTheme to obtain a fully populated theme and modify it;
// the zero Theme is not useful.
type Theme struct {
	BaseFontSize float64

	TitleSize       float64
	SubtitleSize    float64
	CaptionSize     float64
	TagSize         float64
	AxisTitleSize   float64
	AxisTextSize    float64
	StripTextSize   float64
	LegendTitleSize float64
	LegendTextSize  float64

	TextColor     color.Color
	PanelBG       color.Color
	GridColor     color.Color
	GridWidth     float64
	StripBG       color.Color
	PlotBG        color.Color
	AxisTickColor color.Color

	LegendPosition int
	LegendKeySize  float64

	Margin       float64
	PanelSpacing float64
	TickLength   float64
}

// DefaultTheme returns the default theme: grey panels with white
// grid lines and the legend on the right.
func DefaultTheme() *Theme {
	const base = 11.0
	return &Theme{
		BaseFontSize: base,

		TitleSize:       base * 1.2,
		SubtitleSize:    base,
		CaptionSize:     base * 0.8,
		TagSize:         base * 1.2,
		AxisTitleSize:   base,
		AxisTextSize:    base * 0.8,
		StripTextSize:   base * 0.8,
		LegendTitleSize: base,
		LegendTextSize:  base * 0.8,

		TextColor:     color.Gray{0x1e},
		PanelBG:       color.Gray{0xeb},
		GridColor:     color.White,
		GridWidth:     0.75,
		StripBG:       color.Gray{0xd9},
		PlotBG:        color.White,
		AxisTickColor: color.Gray{0x33},

		LegendPosition: LegendRight,
		LegendKeySize:  17,

		Margin:       5.5,
		PanelSpacing: 5.5,
		TickLength:   2.75,
	}
}

// Clone returns a copy of t.
func (t *Theme) Clone() *Theme {
	n := *t
	return &n
}
