// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package biology implements §4.5's cell layer and cell: the layer
// brain state machine (Living/Dead), the four layer specialties
// (Null/Thruster/Photo/Bonding), and the cell that owns a layer stack,
// Newtonian state, local environment, control program, energy, and
// bond-request buffer, orchestrating the per-tick pipeline.
package biology

import (
	"github.com/fgamador/evo-sim/graph"
	"github.com/fgamador/evo-sim/quantities"
)

// MaxBonds is MAX_BONDS: the number of bond-request slots a cell
// carries, matching graph.MaxSlots (the number of bond slots a graph
// node carries).
const MaxBonds = graph.MaxSlots

// BondRequest is one cell's per-slot request for this tick: whether to
// keep the bond occupying the slot, and (if budding or donating) the
// angle and energy to do it with.
type BondRequest struct {
	RetainBond    bool
	BuddingAngle  quantities.Angle
	DonationEnergy quantities.BioEnergy
}

// NoBondRequest is the canonical zero/no-op bond request.
var NoBondRequest = BondRequest{}

// CellLayerChanges is the accumulated health/area delta for one layer,
// produced by a tick's automatic and requested changes.
type CellLayerChanges struct {
	Health float64
	Area   quantities.Area
}

// CellChanges accumulates one cell's pending state changes across a
// tick: energy delta, the committed thrust for next tick, per-layer
// changes, and the bond-request buffer returned to the world.
type CellChanges struct {
	Energy       quantities.BioEnergyDelta
	Thrust       quantities.Vec2
	Layers       []CellLayerChanges
	BondRequests [MaxBonds]BondRequest
}

// NewCellChanges returns a zeroed CellChanges sized for numLayers
// layers.
func NewCellChanges(numLayers int) CellChanges {
	return CellChanges{Layers: make([]CellLayerChanges, numLayers)}
}
