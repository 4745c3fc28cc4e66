// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import "github.com/fgamador/evo-sim/quantities"

// Cloud is a drifting region of some diffuse substance (e.g. nutrients):
// it grows each tick by the configured resize factor and thins as it
// grows, until it dissipates below the configured minimum concentration.
// Clouds do not collide with cells or exert forces in this core — purely
// a background resize/dissipate pass, exposed read-only via the world's
// view.
type Cloud struct {
	Position      quantities.Vec2
	Radius        quantities.Length
	Concentration quantities.Fraction
}

// NewCloud builds a cloud at full concentration.
func NewCloud(position quantities.Vec2, radius quantities.Length) Cloud {
	return Cloud{Position: position, Radius: radius, Concentration: 1}
}

// tick grows the cloud's radius by resizeFactor and thins its
// concentration by the inverse square of that growth (the same
// substance over a larger area: if the area doubles, concentration
// halves), reporting
// whether the cloud is still above the minimum concentration.
func (c *Cloud) tick(params CloudParameters) (stillAlive bool) {
	c.Radius = quantities.Length(float64(c.Radius) * params.ResizeFactor)
	c.Concentration = quantities.Fraction(float64(c.Concentration) / (params.ResizeFactor * params.ResizeFactor))
	return c.Concentration >= params.MinimumConcentration
}

// CloudField is the collection of clouds the world ticks alongside
// cells.
type CloudField struct {
	clouds []Cloud
}

// Add appends a cloud to the field.
func (f *CloudField) Add(c Cloud) {
	f.clouds = append(f.clouds, c)
}

// Clouds returns the live clouds, read-only.
func (f *CloudField) Clouds() []Cloud {
	return f.clouds
}

// tick grows/thins every cloud, dropping any that dissipated.
func (f *CloudField) tick(params CloudParameters) {
	kept := f.clouds[:0]
	for i := range f.clouds {
		c := f.clouds[i]
		if c.tick(params) {
			kept = append(kept, c)
		}
	}
	f.clouds = kept
}
