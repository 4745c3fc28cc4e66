// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biology

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/fgamador/evo-sim/body"
	"github.com/fgamador/evo-sim/control"
	"github.com/fgamador/evo-sim/environment"
	"github.com/fgamador/evo-sim/graph"
	"github.com/fgamador/evo-sim/quantities"
)

// Cell is §4.5's cell: a stack of layers (innermost first), Newtonian
// body state, a per-tick local environment, a control program, stored
// energy, and the bond-slot handles the graph arena addresses it by.
type Cell struct {
	handle           graph.NodeHandle
	slots            [graph.MaxSlots]graph.EdgeHandle
	occupied         [graph.MaxSlots]bool
	radius           quantities.Length
	state            body.State
	env              environment.LocalEnvironment
	layers           []*CellLayer
	control          control.CellControl
	energy           quantities.BioEnergy
	thrust           quantities.Vec2
	donationReceived quantities.BioEnergy
	selected         bool
}

// NewCell builds a living cell from the given layer stack (innermost
// first). A cell must have at least one layer.
func NewCell(position, velocity quantities.Vec2, layers []*CellLayer, ctrl control.CellControl) *Cell {
	if len(layers) == 0 {
		chk.Panic("biology: NewCell requires at least one layer")
	}
	c := &Cell{layers: layers, control: ctrl}
	c.radius = updateLayerOuterRadii(layers)
	c.state = body.NewState(calcMass(layers), position, velocity)
	return c
}

// graph.Node implementation.

func (c *Cell) Handle() graph.NodeHandle      { return c.handle }
func (c *Cell) SetHandle(h graph.NodeHandle)  { c.handle = h }

func (c *Cell) SlotHandle(slot int) (graph.EdgeHandle, bool) {
	return c.slots[slot], c.occupied[slot]
}

func (c *Cell) SetSlotHandle(slot int, h graph.EdgeHandle) {
	c.slots[slot] = h
	c.occupied[slot] = true
}

func (c *Cell) ClearSlotHandle(slot int) {
	c.occupied[slot] = false
}

// shapes.Circle implementation.

func (c *Cell) Center() quantities.Vec2  { return c.state.Position }
func (c *Cell) Radius() quantities.Length { return c.radius }

// environment.Cell implementation.

func (c *Cell) Mass() quantities.Mass                      { return c.state.Mass }
func (c *Cell) Velocity() quantities.Vec2                  { return c.state.Velocity }
func (c *Cell) ForceAccumulator() *body.Accumulator        { return &c.state.Forces }
func (c *Cell) Environment() *environment.LocalEnvironment { return &c.env }

// Position is an alias for Center, read more naturally outside a
// shapes.Circle context.
func (c *Cell) Position() quantities.Vec2 { return c.state.Position }

// IsAlive reports whether any layer is still alive.
func (c *Cell) IsAlive() bool {
	for _, l := range c.layers {
		if l.IsAlive() {
			return true
		}
	}
	return false
}

// IsSelected reports whether this cell is flagged for diagnostic force
// recording (§6's SelectCellToggle).
func (c *Cell) IsSelected() bool { return c.selected }

// SetSelected toggles diagnostic force-contribution recording.
func (c *Cell) SetSelected(selected bool) {
	c.selected = selected
	c.state.Forces.SetRecording(selected)
}

// Energy returns the cell's stored energy.
func (c *Cell) Energy() quantities.BioEnergy { return c.energy }

// AddEnergy adds delta (signed) to the cell's stored energy, e.g. a
// bond donation received from a neighbor.
func (c *Cell) AddEnergy(delta quantities.BioEnergy) {
	c.energy += delta
}

// DonationReceived returns the bond-donation energy credited to this
// cell this tick, for diagnostics. It resets to 0 every tick.
func (c *Cell) DonationReceived() quantities.BioEnergy { return c.donationReceived }

// RecordDonationReceived credits delta to the cell's stored energy and
// records it as this tick's received donation for diagnostics.
func (c *Cell) RecordDonationReceived(delta quantities.BioEnergy) {
	c.AddEnergy(delta)
	c.donationReceived += delta
}

// HasBond reports whether slot carries a live bond.
func (c *Cell) HasBond(slot int) bool { return c.occupied[slot] }

// BondHandle returns the edge handle occupying slot, if any.
func (c *Cell) BondHandle(slot int) (graph.EdgeHandle, bool) {
	return c.slots[slot], c.occupied[slot]
}

// Layers returns the cell's layer stack, innermost first.
func (c *Cell) Layers() []*CellLayer { return c.layers }

// SetInitialPosition overrides the cell's position, used by scenario
// setup before the first tick.
func (c *Cell) SetInitialPosition(p quantities.Vec2) { c.state.Position = p }

// SetInitialVelocity overrides the cell's velocity, used by scenario
// setup before the first tick.
func (c *Cell) SetInitialVelocity(v quantities.Vec2) { c.state.Velocity = v }

// SetInitialEnergy overrides the cell's stored energy, used by scenario
// setup before the first tick.
func (c *Cell) SetInitialEnergy(e quantities.BioEnergy) { c.energy = e }

// Tick runs the cell's full per-tick pipeline (§4.5 steps 1-5) and
// returns its bond-slot requests for the world to reconcile.
func (c *Cell) Tick() [MaxBonds]BondRequest {
	changes := NewCellChanges(len(c.layers))
	c.calculateAutomaticChanges(&changes)
	c.calculateRequestedChanges(&changes)
	c.applyChanges(&changes)
	c.clearEnvironment()
	return changes.BondRequests
}

// calculateAutomaticChanges runs each layer's automatic step (entropic
// and overlap damage, photosynthesis) and applies the thrust committed
// by the previous tick as a non-dominant force. applyChanges replaces
// that thrust every tick with the thrust committed this tick, which is
// zero when no living thruster layer executed a request.
func (c *Cell) calculateAutomaticChanges(changes *CellChanges) {
	for _, l := range c.layers {
		l.CalculateAutomaticChanges(&c.env, changes)
	}
	c.state.Forces.AddNonDominantForce(c.thrust, "thrust")
}

func (c *Cell) calculateRequestedChanges(changes *CellChanges) {
	budgeted := c.budgetedControlRequests()
	c.executeControlRequests(budgeted, changes)
}

func (c *Cell) budgetedControlRequests() []control.BudgetedRequest {
	snapshot := c.stateSnapshot()
	requests := c.control.Run(snapshot)
	costed := make([]control.CostedRequest, len(requests))
	for i, req := range requests {
		costed[i] = c.layers[req.ID.LayerIndex].CostControlRequest(req)
	}
	return control.Budget(c.energy, costed)
}

func (c *Cell) executeControlRequests(budgeted []control.BudgetedRequest, changes *CellChanges) {
	for _, req := range budgeted {
		c.layers[req.ID.LayerIndex].ExecuteControlRequest(req, changes, req.ID.LayerIndex)
	}
}

func (c *Cell) stateSnapshot() control.CellStateSnapshot {
	layers := make([]control.LayerStateSnapshot, len(c.layers))
	for i, l := range c.layers {
		layers[i] = control.LayerStateSnapshot{
			Area:   l.Area(),
			Mass:   l.Mass(),
			Health: quantities.Health(l.Health()),
		}
	}
	return control.CellStateSnapshot{
		Radius:      c.radius,
		Area:        quantities.Area(math.Pi * float64(c.radius) * float64(c.radius)),
		Mass:        c.state.Mass,
		Center:      c.state.Position,
		Velocity:    c.state.Velocity,
		Energy:      c.energy,
		Bond0Exists: c.occupied[0],
		Layers:      layers,
	}
}

// applyChanges folds the tick's accumulated changes into durable state:
// integrates the Newtonian body, banks the net energy delta, commits
// the new thrust, and resizes/heals each layer.
func (c *Cell) applyChanges(changes *CellChanges) {
	c.state.ExertForcesForOneTick()
	c.state.MoveForOneTick()

	c.energy = quantities.BioEnergy(float64(c.energy) + float64(changes.Energy))
	c.thrust = changes.Thrust

	for i, l := range c.layers {
		l.ApplyChanges(changes.Layers[i])
	}

	c.radius = updateLayerOuterRadii(c.layers)
	c.state.Mass = calcMass(c.layers)
}

func (c *Cell) clearEnvironment() {
	c.env.Clear()
	c.state.Forces.Clear()
	c.donationReceived = 0
}

// updateLayerOuterRadii recomputes each layer's outer radius from the
// one inside it (innermost first) and returns the outermost radius.
func updateLayerOuterRadii(layers []*CellLayer) quantities.Length {
	var inner quantities.Length
	for _, l := range layers {
		l.UpdateOuterRadius(inner)
		inner = l.OuterRadius()
	}
	return inner
}

func calcMass(layers []*CellLayer) quantities.Mass {
	var total quantities.Mass
	for _, l := range layers {
		total += l.Mass()
	}
	return total
}

// Spawn returns a freshly budded copy of the cell: each layer spawned
// at layerArea, no bonds, zero position/velocity (the caller places
// it), and a control program seeded for independent randomness.
func (c *Cell) Spawn(layerArea quantities.Area, childRandSeed int64) *Cell {
	childLayers := make([]*CellLayer, len(c.layers))
	for i, l := range c.layers {
		childLayers[i] = l.Spawn(layerArea)
	}
	return NewCell(quantities.Zero2, quantities.Zero2, childLayers, c.control.Spawn(childRandSeed))
}

// CreateAndPlaceChild buds a child of layerArea per layer, places it
// just outside the parent along buddingAngle, matches the parent's
// velocity, and funds it with donationEnergy.
func (c *Cell) CreateAndPlaceChild(buddingAngle quantities.Angle, donationEnergy quantities.BioEnergy, layerArea quantities.Area, childRandSeed int64) *Cell {
	child := c.Spawn(layerArea, childRandSeed)
	offset := quantities.PolarVec2(float64(c.radius+child.radius), buddingAngle)
	child.state.Position = c.state.Position.Add(offset)
	child.state.Velocity = c.state.Velocity
	child.energy = donationEnergy
	return child
}
