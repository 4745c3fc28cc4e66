// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"math"
	"math/rand"

	"github.com/fgamador/evo-sim/quantities"
)

// CellControl is the open contract (§9: embedders may add new
// implementations) between a cell and the program driving it: given a
// pre-tick snapshot, produce the requests to act on this tick, and
// produce a control program for a budded offspring.
type CellControl interface {
	Run(snapshot CellStateSnapshot) []Request
	Spawn(childRandSeed int64) CellControl
}

// LayerStateSnapshot is one layer's pre-tick state, as seen by a control
// program.
type LayerStateSnapshot struct {
	Area   quantities.Area
	Mass   quantities.Mass
	Health quantities.Health
}

// CellStateSnapshot is the pre-tick cell state passed to
// CellControl.Run: §4.5 step 1's snapshot (radius, area, mass, center,
// velocity, energy, bond-0-exists) plus a per-layer snapshot of
// area/mass/health.
type CellStateSnapshot struct {
	Radius      quantities.Length
	Area        quantities.Area
	Mass        quantities.Mass
	Center      quantities.Vec2
	Velocity    quantities.Vec2
	Energy      quantities.BioEnergy
	Bond0Exists bool
	Layers      []LayerStateSnapshot
}

// ZeroCellStateSnapshot is the canonical zero-value snapshot, useful as a
// placeholder in tests.
var ZeroCellStateSnapshot = CellStateSnapshot{}

// NullControl never requests anything. Spawn produces another
// NullControl: the simplest possible CellControl.
type NullControl struct{}

func (NullControl) Run(CellStateSnapshot) []Request           { return nil }
func (NullControl) Spawn(int64) CellControl                   { return NullControl{} }

// ContinuousRequestsControl replays the same fixed list of requests every
// tick, forever. Useful for tests and for scripted scenarios.
type ContinuousRequestsControl struct {
	Requests []Request
}

func NewContinuousRequestsControl(requests []Request) *ContinuousRequestsControl {
	return &ContinuousRequestsControl{Requests: requests}
}

func (c *ContinuousRequestsControl) Run(CellStateSnapshot) []Request {
	out := make([]Request, len(c.Requests))
	copy(out, c.Requests)
	return out
}

func (c *ContinuousRequestsControl) Spawn(int64) CellControl {
	return NewContinuousRequestsControl(c.Requests)
}

// ContinuousResizeControl requests the same resize amount on one layer
// every tick (channel 1, the resize channel).
type ContinuousResizeControl struct {
	LayerIndex   int
	ResizeAmount quantities.Area
}

func NewContinuousResizeControl(layerIndex int, resizeAmount quantities.Area) *ContinuousResizeControl {
	return &ContinuousResizeControl{LayerIndex: layerIndex, ResizeAmount: resizeAmount}
}

func (c *ContinuousResizeControl) Run(CellStateSnapshot) []Request {
	return []Request{NewRequest(c.LayerIndex, 1, 0, float64(c.ResizeAmount))}
}

func (c *ContinuousResizeControl) Spawn(int64) CellControl {
	return NewContinuousResizeControl(c.LayerIndex, c.ResizeAmount)
}

// SimpleThrusterControl requests the same constant force from a thruster
// layer every tick (channels 2 and 3: force x, force y).
type SimpleThrusterControl struct {
	ThrusterLayerIndex int
	Force              quantities.Vec2
}

func NewSimpleThrusterControl(thrusterLayerIndex int, force quantities.Vec2) *SimpleThrusterControl {
	return &SimpleThrusterControl{ThrusterLayerIndex: thrusterLayerIndex, Force: force}
}

func (c *SimpleThrusterControl) Run(CellStateSnapshot) []Request {
	return []Request{
		NewRequest(c.ThrusterLayerIndex, 2, 0, c.Force.X),
		NewRequest(c.ThrusterLayerIndex, 3, 0, c.Force.Y),
	}
}

func (c *SimpleThrusterControl) Spawn(int64) CellControl {
	return NewSimpleThrusterControl(c.ThrusterLayerIndex, c.Force)
}

// RandomBuddingControl is a small stochastic control used for budding
// demos: each tick it requests a bonding layer retain a bond at a random
// angle, donating a fixed amount of energy, seeded from a parent-
// propagated value so a given initial world plus tick count replays
// deterministically (§9's non-determinism note).
type RandomBuddingControl struct {
	BondingLayerIndex int
	Slot              int
	DonationEnergy    quantities.BioEnergy
	rng               *rand.Rand
}

func NewRandomBuddingControl(bondingLayerIndex, slot int, donationEnergy quantities.BioEnergy, seed int64) *RandomBuddingControl {
	return &RandomBuddingControl{
		BondingLayerIndex: bondingLayerIndex,
		Slot:              slot,
		DonationEnergy:    donationEnergy,
		rng:               rand.New(rand.NewSource(seed)),
	}
}

func (c *RandomBuddingControl) Run(snapshot CellStateSnapshot) []Request {
	angle := c.rng.Float64() * 2 * math.Pi
	return []Request{
		NewRequest(c.BondingLayerIndex, 2, c.Slot, 1),
		NewRequest(c.BondingLayerIndex, 3, c.Slot, angle),
		NewRequest(c.BondingLayerIndex, 4, c.Slot, float64(c.DonationEnergy)),
	}
}

func (c *RandomBuddingControl) Spawn(childRandSeed int64) CellControl {
	return NewRandomBuddingControl(c.BondingLayerIndex, c.Slot, c.DonationEnergy, childRandSeed)
}
