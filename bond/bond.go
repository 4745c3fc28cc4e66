// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bond implements §4.4: bond strain, the bond force (velocity-
// clearing plus strain-clearing), and the gusset torque between two bonds
// sharing a node.
package bond

import (
	"math"

	"github.com/fgamador/evo-sim/body"
	"github.com/fgamador/evo-sim/graph"
	"github.com/fgamador/evo-sim/quantities"
	"github.com/fgamador/evo-sim/shapes"
)

// Bond is a spring-like graph edge between two distinct cells.
type Bond struct {
	handle       graph.EdgeHandle
	node1, node2 graph.NodeHandle
}

// New builds a Bond between two distinct node handles. Self-bonds are a
// scenario-construction programming error.
func New(node1, node2 graph.NodeHandle) *Bond {
	if node1 == node2 {
		panic("bond: cannot bond a node to itself")
	}
	return &Bond{node1: node1, node2: node2}
}

func (b *Bond) Handle() graph.EdgeHandle       { return b.handle }
func (b *Bond) SetHandle(h graph.EdgeHandle)   { b.handle = h }
func (b *Bond) Node1Handle() graph.NodeHandle  { return b.node1 }
func (b *Bond) Node2Handle() graph.NodeHandle  { return b.node2 }

// ReplaceNodeHandle implements graph.Edge: it updates whichever endpoint
// matches old to new, used when the graph swap-removes a node.
func (b *Bond) ReplaceNodeHandle(old, new graph.NodeHandle) {
	if b.node1 == old {
		b.node1 = new
	}
	if b.node2 == old {
		b.node2 = new
	}
}

// Joins reports whether this bond connects n1 and n2 (in either order).
func (b *Bond) Joins(n1, n2 graph.NodeHandle) bool {
	return (b.node1 == n1 && b.node2 == n2) || (b.node1 == n2 && b.node2 == n1)
}

// Strain computes the bond strain between two circles: zero when centers
// coincide (no direction to strain along).
func Strain(c1, c2 shapes.Circle) quantities.Vec2 {
	offset := c1.Center().Sub(c2.Center())
	sep := offset.Magnitude()
	if sep == 0 {
		return quantities.Zero2
	}
	justTouching := float64(c1.Radius() + c2.Radius())
	overlapMag := justTouching - sep
	return offset.Scale(overlapMag / sep)
}

// Body is the subset of a cell a bond force acts on.
type Body interface {
	shapes.Circle
	Mass() quantities.Mass
	Velocity() quantities.Vec2
}

// Force computes the force on body1 from its bond to body2, and applies
// the equal-and-opposite force to body2. Both terms use
// set-net-force-if-stronger so the bond stays stiff without blowing up
// when combined with softer forces like drag.
func Force(body1, body2 Body, forces1, forces2 *body.Accumulator) {
	f1 := velocityClearingForce(body1, body2).Add(strainClearingForce(body1, body2))
	forces1.SetNetForceIfStronger(f1)
	forces2.SetNetForceIfStronger(f1.Neg())
}

func velocityClearingForce(body1, body2 Body) quantities.Vec2 {
	totalMass := float64(body1.Mass() + body2.Mass())
	vCM := body1.Velocity().Scale(float64(body1.Mass())).
		Add(body2.Velocity().Scale(float64(body2.Mass()))).
		Scale(1 / totalMass)
	relVelocity := body1.Velocity().Sub(vCM)
	axis := body1.Center().Sub(body2.Center())
	proj := relVelocity.ProjectOnto(axis)
	return proj.Scale(-float64(body1.Mass()))
}

func strainClearingForce(body1, body2 Body) quantities.Vec2 {
	strain := Strain(body1, body2)
	reducedMass := float64(body1.Mass()*body2.Mass()) / float64(body1.Mass()+body2.Mass())
	return strain.Scale(reducedMass)
}

// AngleGusset is a meta-edge linking two bonds that share an endpoint
// (bond1's node2 == bond2's node1), specifying the desired counterclockwise
// angle from bond1 to bond2 at the shared hinge.
type AngleGusset struct {
	bond1, bond2 graph.EdgeHandle
	angle        quantities.Angle
}

const gussetSpringConstant = 1.0

// NewAngleGusset builds a gusset between two bonds that must share an
// endpoint: bond1.Node2Handle() == bond2.Node1Handle().
func NewAngleGusset(bond1, bond2 *Bond, angle quantities.Angle) *AngleGusset {
	if bond1.Handle() == bond2.Handle() {
		panic("bond: cannot gusset a bond to itself")
	}
	if bond1.Node2Handle() != bond2.Node1Handle() {
		panic("bond: gusseted bonds must share an endpoint (bond1.node2 == bond2.node1)")
	}
	return &AngleGusset{bond1: bond1.Handle(), bond2: bond2.Handle(), angle: angle}
}

func (g *AngleGusset) Bond1Handle() graph.EdgeHandle { return g.bond1 }
func (g *AngleGusset) Bond2Handle() graph.EdgeHandle { return g.bond2 }

func (g *AngleGusset) ReplaceBondHandle(old, new graph.EdgeHandle) {
	if g.bond1 == old {
		g.bond1 = new
	}
	if g.bond2 == old {
		g.bond2 = new
	}
}

func (g *AngleGusset) ReferencesBond(h graph.EdgeHandle) bool {
	return g.bond1 == h || g.bond2 == h
}

// Angle returns the gusset's desired counterclockwise angle.
func (g *AngleGusset) Angle() quantities.Angle { return g.angle }

// GussetForces computes the tangential forces the gusset applies to its
// two outer points (node1 of bond1, node2 of bond2), given their
// positions relative to the shared hinge (node0). Added as additive (not
// dominant) forces by the caller.
func GussetForces(hinge, point1, point2 quantities.Vec2, desired quantities.Angle) (force1, force2 quantities.Vec2) {
	actual := bondAngle(hinge, point1, point2)
	deflection := quantities.Deflection(actual - desired)
	torque := -float64(deflection) * gussetSpringConstant

	t1 := tangentialForce(hinge, point1, torque)
	force1 = forceFromTangential(hinge, point1, t1)

	t2 := tangentialForce(hinge, point2, -torque)
	force2 = forceFromTangential(hinge, point2, t2)
	return force1, force2
}

// bondAngle returns the counterclockwise angle from (hinge→point1) to
// (hinge→point2), normalized to [0, 2π).
func bondAngle(hinge, point1, point2 quantities.Vec2) quantities.Angle {
	angle1 := point1.Sub(hinge).Angle()
	angle2 := point2.Sub(hinge).Angle()
	return quantities.NormalizeAngle(angle2 - angle1)
}

func tangentialForce(hinge, point quantities.Vec2, torque float64) float64 {
	radius := point.Sub(hinge).Magnitude()
	return -torque / radius
}

func forceFromTangential(hinge, point quantities.Vec2, tangential float64) quantities.Vec2 {
	var sign float64 = 1
	if tangential < 0 {
		sign = -1
	}
	forceAngle := point.Sub(hinge).Angle() + quantities.Angle(sign*math.Pi/2)
	mag := math.Abs(tangential)
	return quantities.PolarVec2(mag, forceAngle)
}
