// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package world implements §4.6/§4.7: the world's owned graph, the
// ordered influence list it applies every tick, structural reconciliation
// (donation/budding/bond-removal/dead-cell-removal), the drifting cloud
// field, and the §6 external interface (construction, tick, user actions,
// read-only view).
package world

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/fgamador/evo-sim/quantities"
)

// CloudParameters governs the drifting cloud field's per-tick behavior.
type CloudParameters struct {
	ResizeFactor         float64
	MinimumConcentration quantities.Fraction
}

// DefaultCloudParameters grows clouds by 1% a tick and dissipates them
// once they thin below 1% concentration.
var DefaultCloudParameters = CloudParameters{
	ResizeFactor:         1.01,
	MinimumConcentration: 0.01,
}

func (p CloudParameters) validate() {
	if p.ResizeFactor <= 0 {
		chk.Panic("world: CloudParameters.ResizeFactor must be > 0, got %v", p.ResizeFactor)
	}
	if p.MinimumConcentration < 0 || p.MinimumConcentration > 1 {
		chk.Panic("world: CloudParameters.MinimumConcentration must be in [0,1], got %v", p.MinimumConcentration)
	}
}

// Parameters is the world's configuration record (§6).
type Parameters struct {
	CloudParams CloudParameters
	// SpawnLayerArea is the per-layer area a budded child's layers start
	// at (§4.7's "configured per-layer spawn area").
	SpawnLayerArea quantities.Area
}

// DefaultParameters matches spec.md's default-per-layer spawn area of
// 10π and the default cloud behavior above.
func DefaultParameters() Parameters {
	return Parameters{
		CloudParams:    DefaultCloudParameters,
		SpawnLayerArea: quantities.Area(10 * math.Pi),
	}
}

// Validate runs at world-construction time (§6); invalid values are a
// fatal configuration error.
func (p Parameters) Validate() error {
	p.CloudParams.validate()
	if p.SpawnLayerArea <= 0 {
		chk.Panic("world: Parameters.SpawnLayerArea must be > 0, got %v", p.SpawnLayerArea)
	}
	return nil
}
