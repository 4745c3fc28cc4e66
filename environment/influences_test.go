// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package environment_test

import (
	"math"
	"testing"

	"github.com/fgamador/evo-sim/body"
	"github.com/fgamador/evo-sim/bond"
	"github.com/fgamador/evo-sim/environment"
	"github.com/fgamador/evo-sim/graph"
	"github.com/fgamador/evo-sim/quantities"
)

type fakeCell struct {
	handle  graph.NodeHandle
	slots   [graph.MaxSlots]graph.EdgeHandle
	occ     [graph.MaxSlots]bool
	center  quantities.Vec2
	radius  quantities.Length
	mass    quantities.Mass
	velocity quantities.Vec2
	forces  body.Accumulator
	env     environment.LocalEnvironment
}

func (c *fakeCell) Handle() graph.NodeHandle     { return c.handle }
func (c *fakeCell) SetHandle(h graph.NodeHandle) { c.handle = h }
func (c *fakeCell) SlotHandle(slot int) (graph.EdgeHandle, bool) {
	return c.slots[slot], c.occ[slot]
}
func (c *fakeCell) SetSlotHandle(slot int, h graph.EdgeHandle) {
	c.slots[slot] = h
	c.occ[slot] = true
}
func (c *fakeCell) ClearSlotHandle(slot int) { c.occ[slot] = false }

func (c *fakeCell) Center() quantities.Vec2  { return c.center }
func (c *fakeCell) Radius() quantities.Length { return c.radius }
func (c *fakeCell) Mass() quantities.Mass     { return c.mass }
func (c *fakeCell) Velocity() quantities.Vec2 { return c.velocity }

func (c *fakeCell) ForceAccumulator() *body.Accumulator      { return &c.forces }
func (c *fakeCell) Environment() *environment.LocalEnvironment { return &c.env }

var _ environment.Cell = (*fakeCell)(nil)

// TestWallCollisionsBouncesOffWall covers spec.md scenario (a): a cell
// moving into a wall gets an outward force that stops or reverses it.
func TestWallCollisionsBouncesOffWall(t *testing.T) {
	g := graph.New[*fakeCell, *bond.Bond, *bond.AngleGusset]()
	c := &fakeCell{center: quantities.NewVec2(0.5, 0), radius: 1, mass: 1, velocity: quantities.NewVec2(-1, 0)}
	g.AddNode(c)

	wc := environment.NewWallCollisions[*fakeCell, *bond.Bond, *bond.AngleGusset](quantities.Zero2, quantities.NewVec2(10, 10))
	wc.Apply(g)

	net := c.forces.NetForce()
	if net.X <= 0 {
		t.Fatalf("expected outward (+x) force from the low wall, got %v", net)
	}
}

// TestPairCollisionsHeadOnElastic covers spec.md scenario (b): two
// identical cells approaching head-on exchange velocities' worth of
// force and push apart.
func TestPairCollisionsHeadOnElastic(t *testing.T) {
	g := graph.New[*fakeCell, *bond.Bond, *bond.AngleGusset]()
	c1 := &fakeCell{center: quantities.NewVec2(-0.5, 0), radius: 1, mass: 1, velocity: quantities.NewVec2(1, 0)}
	c2 := &fakeCell{center: quantities.NewVec2(0.5, 0), radius: 1, mass: 1, velocity: quantities.NewVec2(-1, 0)}
	g.AddNode(c1)
	g.AddNode(c2)

	pc := environment.NewPairCollisions[*fakeCell, *bond.Bond, *bond.AngleGusset]()
	pc.Apply(g)

	f1 := c1.forces.NetForce()
	f2 := c2.forces.NetForce()
	if f1.X >= 0 {
		t.Fatalf("expected cell1 pushed back in -x, got %v", f1)
	}
	if math.Abs(float64(f1.X+f2.X)) > 1e-9 {
		t.Fatalf("expected equal and opposite forces, got %v and %v", f1, f2)
	}
}

func TestBondForcesAppliesEqualAndOppositeToBondedCells(t *testing.T) {
	g := graph.New[*fakeCell, *bond.Bond, *bond.AngleGusset]()
	c1 := &fakeCell{center: quantities.NewVec2(-2, 0), radius: 1, mass: 1}
	c2 := &fakeCell{center: quantities.NewVec2(2, 0), radius: 1, mass: 1}
	h1 := g.AddNode(c1)
	h2 := g.AddNode(c2)
	b := bond.New(h1, h2)
	if _, err := g.AddEdge(b, 0, 0); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	bf := environment.NewBondForces[*fakeCell, *bond.Bond, *bond.AngleGusset]()
	bf.Apply(g)

	f1 := c1.forces.NetForce()
	f2 := c2.forces.NetForce()
	if f1.X <= 0 {
		t.Fatalf("expected cell1 pulled toward cell2 (+x), got %v", f1)
	}
	if math.Abs(float64(f1.X+f2.X)) > 1e-9 {
		t.Fatalf("expected equal and opposite bond forces, got %v and %v", f1, f2)
	}
}

func TestSunlightInterpolatesLinearlyAndClampsToZero(t *testing.T) {
	g := graph.New[*fakeCell, *bond.Bond, *bond.AngleGusset]()
	top := &fakeCell{center: quantities.NewVec2(0, 10), radius: 1, mass: 1}
	bottom := &fakeCell{center: quantities.NewVec2(0, 0), radius: 1, mass: 1}
	belowRange := &fakeCell{center: quantities.NewVec2(0, -10), radius: 1, mass: 1}
	g.AddNode(top)
	g.AddNode(bottom)
	g.AddNode(belowRange)

	sun := environment.NewSunlight[*fakeCell, *bond.Bond, *bond.AngleGusset](0, 10, 0, 1)
	sun.Apply(g)

	if top.env.LightIntensity() != 1 {
		t.Fatalf("expected max intensity at top, got %v", top.env.LightIntensity())
	}
	if bottom.env.LightIntensity() != 0 {
		t.Fatalf("expected zero intensity at bottom, got %v", bottom.env.LightIntensity())
	}
	if belowRange.env.LightIntensity() != 0 {
		t.Fatalf("expected intensity clamped to zero below range, got %v", belowRange.env.LightIntensity())
	}
}

func TestDragForceNeverReversesVelocity(t *testing.T) {
	d := environment.DragForce{Viscosity: 1000}
	c := &fakeCell{mass: 1, radius: 1, velocity: quantities.NewVec2(2, 0)}
	f := d.CalcForce(c)

	var s body.State
	s.Mass = 1
	s.Velocity = c.velocity
	s.Forces.SetNetForceIfStronger(f)
	s.ExertForcesForOneTick()

	if s.Velocity.X < 0 {
		t.Fatalf("drag overshot and reversed velocity, got %v", s.Velocity)
	}
}

func TestWeightAndBuoyancyOpposeAlongY(t *testing.T) {
	c := &fakeCell{mass: 1, radius: 1}
	w := environment.WeightForce{Gravity: -9.8}
	b := environment.BuoyancyForce{Gravity: -9.8, FluidDensity: 1}

	wf := w.CalcForce(c)
	bf := b.CalcForce(c)
	if wf.Y >= 0 {
		t.Fatalf("expected weight to act downward, got %v", wf)
	}
	if bf.Y <= 0 {
		t.Fatalf("expected buoyancy to act upward, got %v", bf)
	}
}
