// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package environment

import (
	"math"

	"github.com/fgamador/evo-sim/body"
	"github.com/fgamador/evo-sim/bond"
	"github.com/fgamador/evo-sim/graph"
	"github.com/fgamador/evo-sim/quantities"
	"github.com/fgamador/evo-sim/shapes"
)

// Cell is the subset of a cell graph node an Influence needs: its shape
// and Newtonian state, its force accumulator, and its local environment.
type Cell interface {
	graph.Node
	shapes.Circle
	Mass() quantities.Mass
	Velocity() quantities.Vec2
	ForceAccumulator() *body.Accumulator
	Environment() *LocalEnvironment
}

// GussetEdge is the meta-edge capability BondAngleForces needs beyond
// graph.MetaEdge: the gusset's own desired angle.
type GussetEdge interface {
	graph.MetaEdge
	Angle() quantities.Angle
}

// Influence is §4.6 step 1's cross-cell/per-cell force contributor: wall
// collisions, pair collisions, bond forces, bond-angle forces, plus
// whatever per-cell and world forces (sunlight, universal overlap,
// weight/buoyancy/drag/constant) a world configures.
type Influence[C Cell, E graph.Edge, ME GussetEdge] interface {
	Apply(g *graph.Graph[C, E, ME])
}

// WallCollisions bounces cells off the world's perimeter.
type WallCollisions[C Cell, E graph.Edge, ME GussetEdge] struct {
	MinCorner, MaxCorner quantities.Vec2
}

func NewWallCollisions[C Cell, E graph.Edge, ME GussetEdge](minCorner, maxCorner quantities.Vec2) *WallCollisions[C, E, ME] {
	return &WallCollisions[C, E, ME]{MinCorner: minCorner, MaxCorner: maxCorner}
}

func (w *WallCollisions[C, E, ME]) Apply(g *graph.Graph[C, E, ME]) {
	for _, cell := range g.Nodes() {
		overlap, ok := shapes.WallOverlap(cell, w.MinCorner, w.MaxCorner)
		if !ok {
			continue
		}
		cell.Environment().AddOverlap(overlap)
		force := wallCollisionForce(cell.Mass(), cell.Velocity(), overlap.Incursion.Neg())
		cell.ForceAccumulator().SetNetForceIfStronger(force)
	}
}

func wallCollisionForce(mass quantities.Mass, velocity, incursion quantities.Vec2) quantities.Vec2 {
	return quantities.NewVec2(
		axisCollisionForce(mass, velocity.X, incursion.X),
		axisCollisionForce(mass, velocity.Y, incursion.Y),
	)
}

// axisCollisionForce kills the incoming velocity and adds enough
// outward velocity to escape within one tick, whichever correction is
// larger.
func axisCollisionForce(mass quantities.Mass, velocity, incursion float64) float64 {
	var vStar float64
	switch {
	case incursion > 0:
		vStar = math.Max(velocity, incursion)
	case incursion < 0:
		vStar = math.Min(velocity, incursion)
	default:
		vStar = -velocity
	}
	return -float64(mass) * (velocity + vStar)
}

// PairCollisions resolves cell-cell overlaps found by the sweep.
type PairCollisions[C Cell, E graph.Edge, ME GussetEdge] struct{}

func NewPairCollisions[C Cell, E graph.Edge, ME GussetEdge]() *PairCollisions[C, E, ME] {
	return &PairCollisions[C, E, ME]{}
}

func (p *PairCollisions[C, E, ME]) Apply(g *graph.Graph[C, E, ME]) {
	results := shapes.FindPairOverlaps(g.Nodes(), func(a, b C) bool { return g.HaveEdge(a, b) })
	for _, r := range results {
		force1 := pairCollisionForce(r.Item1, r.Overlap1, r.Item2)
		r.Item1.Environment().AddOverlap(r.Overlap1)
		r.Item2.Environment().AddOverlap(r.Overlap2)
		r.Item1.ForceAccumulator().SetNetForceIfStronger(force1)
		r.Item2.ForceAccumulator().SetNetForceIfStronger(force1.Neg())
	}
}

func pairCollisionForce(cell1 Cell, overlap1 shapes.Overlap, cell2 Cell) quantities.Vec2 {
	if overlap1.Incursion.IsZero() {
		return quantities.Zero2
	}
	elastic := elasticCollisionForce(cell1.Mass(), cell2.Mass(), cell1.Velocity().Sub(cell2.Velocity()), cell1.Center().Sub(cell2.Center()))
	overlapForce := overlapClearingForce(cell1.Mass(), cell2.Mass(), overlap1.Incursion)
	if overlapForce.Magnitude() > elastic.Magnitude() {
		return overlapForce
	}
	return elastic
}

// elasticCollisionForce is the angle-free two-body elastic collision
// formula from Wikipedia's "Elastic collision" page, expressed as the
// impulse-free force that produces the post-collision velocity of cell1.
func elasticCollisionForce(mass1, mass2 quantities.Mass, relativeVelocity1, relativePosition1 quantities.Vec2) quantities.Vec2 {
	reducedMass := float64(mass1*mass2) / float64(mass1+mass2)
	return relativeVelocity1.ProjectOnto(relativePosition1).Scale(-2 * reducedMass)
}

func overlapClearingForce(mass1, mass2 quantities.Mass, incursion quantities.Vec2) quantities.Vec2 {
	reducedMass := float64(mass1*mass2) / float64(mass1+mass2)
	return incursion.Scale(reducedMass)
}

// BondForces applies the spring-like bond force between every bonded
// pair.
type BondForces[C Cell, E graph.Edge, ME GussetEdge] struct{}

func NewBondForces[C Cell, E graph.Edge, ME GussetEdge]() *BondForces[C, E, ME] {
	return &BondForces[C, E, ME]{}
}

func (bf *BondForces[C, E, ME]) Apply(g *graph.Graph[C, E, ME]) {
	for _, edge := range g.Edges() {
		cell1, err := g.Node(edge.Node1Handle())
		if err != nil {
			continue
		}
		cell2, err := g.Node(edge.Node2Handle())
		if err != nil {
			continue
		}
		bond.Force(cell1, cell2, cell1.ForceAccumulator(), cell2.ForceAccumulator())
	}
}

// BondAngleForces applies the torque-derived tangential forces at every
// gusseted hinge.
type BondAngleForces[C Cell, E graph.Edge, ME GussetEdge] struct{}

func NewBondAngleForces[C Cell, E graph.Edge, ME GussetEdge]() *BondAngleForces[C, E, ME] {
	return &BondAngleForces[C, E, ME]{}
}

func (baf *BondAngleForces[C, E, ME]) Apply(g *graph.Graph[C, E, ME]) {
	for _, gusset := range g.MetaEdges() {
		bond1, err := g.Edge(gusset.Bond1Handle())
		if err != nil {
			continue
		}
		bond2, err := g.Edge(gusset.Bond2Handle())
		if err != nil {
			continue
		}
		hingeCell, err := g.Node(bond1.Node2Handle())
		if err != nil {
			continue
		}
		point1Cell, err := g.Node(bond1.Node1Handle())
		if err != nil {
			continue
		}
		point2Cell, err := g.Node(bond2.Node2Handle())
		if err != nil {
			continue
		}
		force1, force2 := bond.GussetForces(hingeCell.Center(), point1Cell.Center(), point2Cell.Center(), gusset.Angle())
		point1Cell.ForceAccumulator().AddNonDominantForce(force1, "gusset")
		point2Cell.ForceAccumulator().AddNonDominantForce(force2, "gusset")
	}
}

// SimpleForce computes a non-dominant per-cell force from a single
// cell's own state; plugged into SimpleForceInfluence to build weight,
// buoyancy, drag, and constant forces.
type SimpleForce interface {
	CalcForce(cell Cell) quantities.Vec2
	Label() string
}

// SimpleForceInfluence applies a SimpleForce to every cell, independent
// of any other cell (§6: weight, buoyancy, drag, constant).
type SimpleForceInfluence[C Cell, E graph.Edge, ME GussetEdge] struct {
	force SimpleForce
}

func NewSimpleForceInfluence[C Cell, E graph.Edge, ME GussetEdge](force SimpleForce) *SimpleForceInfluence[C, E, ME] {
	return &SimpleForceInfluence[C, E, ME]{force: force}
}

func (s *SimpleForceInfluence[C, E, ME]) Apply(g *graph.Graph[C, E, ME]) {
	for _, cell := range g.Nodes() {
		cell.ForceAccumulator().AddNonDominantForce(s.force.CalcForce(cell), s.force.Label())
	}
}

// ConstantForce applies the same force to every cell regardless of its
// state (e.g. wind).
type ConstantForce struct {
	Force quantities.Vec2
}

func (c ConstantForce) CalcForce(Cell) quantities.Vec2 { return c.Force }
func (c ConstantForce) Label() string                  { return "constant" }

// WeightForce is mass × gravity, acting straight down (negative y).
type WeightForce struct {
	Gravity float64
}

func (w WeightForce) CalcForce(cell Cell) quantities.Vec2 {
	return quantities.NewVec2(0, float64(cell.Mass())*w.Gravity)
}

func (w WeightForce) Label() string { return "weight" }

// BuoyancyForce is the upward force of the fluid a cell displaces,
// opposing gravity.
type BuoyancyForce struct {
	Gravity      float64
	FluidDensity quantities.Density
}

func (b BuoyancyForce) CalcForce(cell Cell) quantities.Vec2 {
	area := math.Pi * float64(cell.Radius()) * float64(cell.Radius())
	displacedMass := area * float64(b.FluidDensity)
	return quantities.NewVec2(0, -displacedMass*b.Gravity)
}

func (b BuoyancyForce) Label() string { return "buoyancy" }

// DragForce opposes a cell's velocity, scaled by viscosity and radius,
// but never reverses it (the drag that would stop the cell this tick is
// the ceiling).
type DragForce struct {
	Viscosity float64
}

func (d DragForce) CalcForce(cell Cell) quantities.Vec2 {
	return quantities.NewVec2(
		d.calcDrag(cell.Mass(), cell.Radius(), cell.Velocity().X),
		d.calcDrag(cell.Mass(), cell.Radius(), cell.Velocity().Y),
	)
}

func (d DragForce) Label() string { return "drag" }

func (d DragForce) calcDrag(mass quantities.Mass, radius quantities.Length, velocity float64) float64 {
	instantaneous := d.Viscosity * float64(radius) * velocity * velocity
	stopping := float64(mass) * math.Abs(velocity)
	abs := math.Min(instantaneous, stopping)
	return -math.Copysign(abs, velocity)
}

// UniversalOverlap records the same overlap on every cell every tick,
// useful for scenario scripts that want a constant background overlap
// without a colliding partner.
type UniversalOverlap[C Cell, E graph.Edge, ME GussetEdge] struct {
	Overlap shapes.Overlap
}

func NewUniversalOverlap[C Cell, E graph.Edge, ME GussetEdge](overlap shapes.Overlap) *UniversalOverlap[C, E, ME] {
	return &UniversalOverlap[C, E, ME]{Overlap: overlap}
}

func (u *UniversalOverlap[C, E, ME]) Apply(g *graph.Graph[C, E, ME]) {
	for _, cell := range g.Nodes() {
		cell.Environment().AddOverlap(u.Overlap)
	}
}

// Sunlight sets each cell's light intensity as a linear function of its
// y position, clamped to non-negative.
type Sunlight[C Cell, E graph.Edge, ME GussetEdge] struct {
	slope, intercept float64
}

// NewSunlight builds a Sunlight influence that is minIntensity at minY
// and maxIntensity at maxY.
func NewSunlight[C Cell, E graph.Edge, ME GussetEdge](minY, maxY, minIntensity, maxIntensity float64) *Sunlight[C, E, ME] {
	slope := (maxIntensity - minIntensity) / (maxY - minY)
	return &Sunlight[C, E, ME]{slope: slope, intercept: maxIntensity - slope*maxY}
}

func (s *Sunlight[C, E, ME]) calcLightIntensity(y float64) float64 {
	return math.Max(s.slope*y+s.intercept, 0)
}

func (s *Sunlight[C, E, ME]) Apply(g *graph.Graph[C, E, ME]) {
	for _, cell := range g.Nodes() {
		cell.Environment().AddLightIntensity(s.calcLightIntensity(cell.Center().Y))
	}
}
