// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body_test

import (
	"testing"

	"github.com/fgamador/evo-sim/body"
	"github.com/fgamador/evo-sim/quantities"
)

func TestCoasting(t *testing.T) {
	s := body.NewState(2.0, quantities.NewVec2(-1, 1.5), quantities.NewVec2(1, 2))
	s.MoveForOneTick()
	if s.Position != quantities.NewVec2(0, 3.5) {
		t.Fatalf("got %v", s.Position)
	}
	if s.Velocity != quantities.NewVec2(1, 2) {
		t.Fatalf("got %v", s.Velocity)
	}
}

func TestKicked(t *testing.T) {
	s := body.NewState(2.0, quantities.NewVec2(-1, 2), quantities.NewVec2(1, -1))
	s.Kick(quantities.NewVec2(0.5, 0.5))
	if s.Velocity != quantities.NewVec2(1.25, -0.75) {
		t.Fatalf("got %v", s.Velocity)
	}
}

func TestExertForcesForOneTick(t *testing.T) {
	s := body.NewState(1.0, quantities.NewVec2(1, 1), quantities.NewVec2(1, 1))
	s.Forces.AddNonDominantForce(quantities.NewVec2(1, 1), "test")
	s.ExertForcesForOneTick()
	if s.Velocity != quantities.NewVec2(2, 2) {
		t.Fatalf("got %v", s.Velocity)
	}
}

func TestForcesAppliedBeforeMove(t *testing.T) {
	s := body.NewState(1.0, quantities.NewVec2(0, 0), quantities.NewVec2(0, 0))
	s.Forces.AddNonDominantForce(quantities.NewVec2(1, 0), "push")
	s.ExertForcesForOneTick()
	s.MoveForOneTick()
	if s.Position != quantities.NewVec2(1, 0) {
		t.Fatalf("force set this tick should move this tick, got %v", s.Position)
	}
}

func TestDominantForceWinsByAxisMagnitude(t *testing.T) {
	var a body.Accumulator
	a.SetNetForceIfStronger(quantities.NewVec2(1, -5))
	a.SetNetForceIfStronger(quantities.NewVec2(3, -1))
	if a.NetForce() != quantities.NewVec2(3, -5) {
		t.Fatalf("got %v", a.NetForce())
	}
}

func TestAdditiveForcesSum(t *testing.T) {
	var a body.Accumulator
	a.AddNonDominantForce(quantities.NewVec2(1, 1), "weight")
	a.AddNonDominantForce(quantities.NewVec2(0.5, -0.5), "drag")
	if a.NetForce() != quantities.NewVec2(1.5, 0.5) {
		t.Fatalf("got %v", a.NetForce())
	}
}

func TestNetForceIsDominantPlusAdditive(t *testing.T) {
	var a body.Accumulator
	a.SetNetForceIfStronger(quantities.NewVec2(10, 0))
	a.AddNonDominantForce(quantities.NewVec2(1, 1), "weight")
	if a.NetForce() != quantities.NewVec2(11, 1) {
		t.Fatalf("got %v", a.NetForce())
	}
}

func TestClearResetsBothBuckets(t *testing.T) {
	var a body.Accumulator
	a.SetNetForceIfStronger(quantities.NewVec2(10, 0))
	a.AddNonDominantForce(quantities.NewVec2(1, 1), "weight")
	a.Clear()
	if a.NetForce() != quantities.Zero2 {
		t.Fatalf("got %v", a.NetForce())
	}
}

func TestContributionsOnlyRecordedWhenEnabled(t *testing.T) {
	var a body.Accumulator
	a.AddNonDominantForce(quantities.NewVec2(1, 1), "weight")
	if len(a.Contributions()) != 0 {
		t.Fatal("expected no contributions recorded by default")
	}
	a.SetRecording(true)
	a.AddNonDominantForce(quantities.NewVec2(2, 0), "drag")
	contribs := a.Contributions()
	if contribs["drag"] != quantities.NewVec2(2, 0) {
		t.Fatalf("got %+v", contribs)
	}
}
