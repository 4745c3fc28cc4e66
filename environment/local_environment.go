// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package environment implements a cell's per-tick local environment
// (§3: overlaps seen this tick plus light intensity) and the cross-cell
// and per-cell Influence implementations of §4.6/§6 (wall collisions,
// pair collisions, bond forces, bond-angle forces, simple per-cell
// forces, sunlight, universal overlap).
package environment

import "github.com/fgamador/evo-sim/shapes"

// LocalEnvironment is a cell's scratch record of what touched it this
// tick: every overlap recorded by an influence, plus the light intensity
// at its position. Reset to empty at the end of the cell's tick.
type LocalEnvironment struct {
	overlaps       []shapes.Overlap
	lightIntensity float64
}

// AddOverlap records one more overlap seen this tick.
func (e *LocalEnvironment) AddOverlap(o shapes.Overlap) {
	e.overlaps = append(e.overlaps, o)
}

// Overlaps returns the overlaps recorded this tick.
func (e *LocalEnvironment) Overlaps() []shapes.Overlap {
	return e.overlaps
}

// AddLightIntensity accumulates light intensity at the cell's position;
// in practice a single Sunlight influence sets this once per tick.
func (e *LocalEnvironment) AddLightIntensity(intensity float64) {
	e.lightIntensity += intensity
}

// LightIntensity returns the light intensity recorded this tick.
func (e *LocalEnvironment) LightIntensity() float64 {
	return e.lightIntensity
}

// Clear empties the overlap list and zeroes light intensity, ready for
// the next tick.
func (e *LocalEnvironment) Clear() {
	e.overlaps = e.overlaps[:0]
	e.lightIntensity = 0
}
