// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package body implements the Newtonian half of §4.2: mass/position/
// velocity state plus a force accumulator with a dominant and an additive
// bucket. Integration is semi-implicit Euler with Δt = 1: forces are
// applied first (as an impulse), then the resulting velocity moves the
// position.
package body

import "github.com/fgamador/evo-sim/quantities"

// State is a Newtonian body's mass/position/velocity plus its
// per-tick force accumulator.
type State struct {
	Mass     quantities.Mass
	Position quantities.Vec2
	Velocity quantities.Vec2
	Forces   Accumulator
}

// NewState builds a State with a cleared force accumulator.
func NewState(mass quantities.Mass, position, velocity quantities.Vec2) State {
	return State{Mass: mass, Position: position, Velocity: velocity}
}

// Kick adds impulse/mass to the velocity.
func (s *State) Kick(impulse quantities.Vec2) {
	s.Velocity = s.Velocity.Add(impulse.Scale(1 / float64(s.Mass)))
}

// ExertForcesForOneTick applies the accumulated net force as an impulse
// over one tick (Δt = 1). Must run before MoveForOneTick so that a force
// set this tick affects this tick's displacement.
func (s *State) ExertForcesForOneTick() {
	s.Kick(s.Forces.NetForce())
}

// MoveForOneTick adds velocity × 1 tick to position.
func (s *State) MoveForOneTick() {
	s.Position = s.Position.Add(s.Velocity)
}

// contribution is one named additive force, kept only while recording is
// enabled (a selected cell, per §6's SelectCellToggle note).
type contribution struct {
	Label string
	Force quantities.Vec2
}

// Accumulator is §4.2's force accumulator: a per-axis dominant force plus
// a sum of additive, labeled forces. The split exists because hard
// constraints (bonds) should replace rather than sum with softer,
// same-direction contributions (drag), while weight/buoyancy/thrust must
// genuinely add.
type Accumulator struct {
	dominant   quantities.Vec2
	additive   quantities.Vec2
	recording  bool
	contribs   []contribution
}

// SetNetForceIfStronger compares f against the current dominant force
// independently per axis, keeping whichever candidate has larger
// magnitude on that axis.
func (a *Accumulator) SetNetForceIfStronger(f quantities.Vec2) {
	a.dominant = quantities.NewVec2(
		stronger(f.X, a.dominant.X),
		stronger(f.Y, a.dominant.Y),
	)
}

func stronger(candidate, current float64) float64 {
	if absF(candidate) > absF(current) {
		return candidate
	}
	return current
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// AddNonDominantForce adds f to the additive bucket, recording it under
// label if this accumulator is currently recording contributions.
func (a *Accumulator) AddNonDominantForce(f quantities.Vec2, label string) {
	a.additive = a.additive.Add(f)
	if a.recording {
		a.contribs = append(a.contribs, contribution{Label: label, Force: f})
	}
}

// NetForce returns the per-axis dominant force plus the sum of additive
// forces.
func (a *Accumulator) NetForce() quantities.Vec2 {
	return a.dominant.Add(a.additive)
}

// Clear resets both buckets and the contribution log to zero.
func (a *Accumulator) Clear() {
	a.dominant = quantities.Zero2
	a.additive = quantities.Zero2
	a.contribs = a.contribs[:0]
}

// SetRecording enables or disables contribution recording (toggled by a
// cell's selected flag for diagnostics).
func (a *Accumulator) SetRecording(on bool) {
	a.recording = on
	if !on {
		a.contribs = nil
	}
}

// Contributions returns the labeled additive forces recorded this tick;
// empty unless SetRecording(true) was called.
func (a *Accumulator) Contributions() map[string]quantities.Vec2 {
	out := make(map[string]quantities.Vec2, len(a.contribs))
	for _, c := range a.contribs {
		out[c.Label] = out[c.Label].Add(c.Force)
	}
	return out
}
