// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

// Diag reports per-layer diagnostics from a build.
type Diag struct {
	// Removed counts, for each layer, the rows dropped because a
	// required aesthetic was missing after mapping.
	Removed []int
}
