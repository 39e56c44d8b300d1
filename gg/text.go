// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text measurement for layout sizing. Cell sizes must be computed
// before the drawing backend is involved, so measurement uses a
// fixed reference face and scales its metrics to the requested size.
// Backends draw with their own fonts; the layout leaves enough slack
// that small metric differences do not matter.

var measureFace = basicfont.Face7x13

// measureFaceSize is the nominal size of measureFace in points.
const measureFaceSize = 13

// textWidth returns the width of s in points at font size size.
func textWidth(s string, size float64) float64 {
	adv := font.MeasureString(measureFace, s)
	return fixedToFloat(adv) * size / measureFaceSize
}

// textHeight returns the ascent and descent in points of a line of
// text at font size size.
func textHeight(size float64) (ascent, descent float64) {
	m := measureFace.Metrics()
	scale := size / measureFaceSize
	return fixedToFloat(m.Ascent) * scale, fixedToFloat(m.Descent) * scale
}

// lineHeight returns the total height in points of a line of text at
// font size size.
func lineHeight(size float64) float64 {
	a, d := textHeight(size)
	return a + d
}

// maxTextWidth returns the widest of ss in points at font size size.
func maxTextWidth(ss []string, size float64) float64 {
	w := 0.0
	for _, s := range ss {
		if sw := textWidth(s, size); sw > w {
			w = sw
		}
	}
	return w
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
