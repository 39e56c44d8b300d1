// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import "fmt"

// Params carries per-layer configuration for stats, geoms and
// position adjustments. Components read parameters by key; a
// component that rewrites parameters (for example, a stat that turns
// a bin count into a bin width) must return a modified clone and
// leave its argument alone, so that building a plot twice sees the
// same parameters both times.
type Params map[string]interface{}

// Clone returns a copy of p. Clone of nil returns an empty Params.
func (p Params) Clone() Params {
	n := make(Params, len(p))
	for k, v := range p {
		n[k] = v
	}
	return n
}

// With returns a copy of p with key set to val.
func (p Params) With(key string, val interface{}) Params {
	n := p.Clone()
	n[key] = val
	return n
}

// Has returns whether p has a value for key.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Float64 returns the float64 parameter key, or def if it is unset.
// An int value is accepted and converted.
func (p Params) Float64(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("parameter %q must be a float64; got %T", key, v)
}

// Int returns the int parameter key, or def if it is unset.
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch v := v.(type) {
	case int:
		return v, nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("parameter %q must be an int; got %v (%T)", key, v, v)
}

// Bool returns the bool parameter key, or def if it is unset.
func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("parameter %q must be a bool; got %T", key, v)
}

// String returns the string parameter key, or def if it is unset.
func (p Params) String(key string, def string) (string, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("parameter %q must be a string; got %T", key, v)
}
