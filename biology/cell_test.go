// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biology_test

import (
	"math"
	"testing"

	"github.com/fgamador/evo-sim/biology"
	"github.com/fgamador/evo-sim/control"
	"github.com/fgamador/evo-sim/quantities"
)

func TestNewCellPanicsWithoutLayers(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for zero-layer cell")
		}
	}()
	biology.NewCell(quantities.Zero2, quantities.Zero2, nil, control.NullControl{})
}

func TestNewCellSumsLayerMasses(t *testing.T) {
	inner := biology.NewCellLayer(quantities.Area(math.Pi), 1, biology.ColorGreen, biology.NewNullSpecialty())
	outer := biology.NewCellLayer(quantities.Area(3*math.Pi), 2, biology.ColorWhite, biology.NewNullSpecialty())
	c := biology.NewCell(quantities.Zero2, quantities.Zero2, []*biology.CellLayer{inner, outer}, control.NullControl{})
	if got, want := c.Mass(), inner.Mass()+outer.Mass(); got != want {
		t.Fatalf("mass: got %v, want %v", got, want)
	}
	// outer radius = sqrt(total area / pi) = sqrt(4) = 2
	if got, want := c.Radius(), quantities.Length(2); math.Abs(float64(got-want)) > 1e-9 {
		t.Fatalf("radius: got %v, want %v", got, want)
	}
}

func TestTickPhotosynthesisAddsEnergyWithNoRequests(t *testing.T) {
	// spec.md scenario (d): a photosynthesizing layer in light, no control
	// requests, should gain energy and stay put absent other forces.
	photo := biology.NewCellLayer(quantities.Area(1), 1, biology.ColorGreen, biology.NewPhotoSpecialty(0.25))
	c := biology.NewCell(quantities.Zero2, quantities.Zero2, []*biology.CellLayer{photo}, control.NullControl{})
	c.Environment().AddLightIntensity(2.0)

	c.Tick()

	if got, want := c.Energy(), quantities.BioEnergy(0.25*2.0*1.0); got != want {
		t.Fatalf("energy: got %v, want %v", got, want)
	}
	if c.Center() != quantities.Zero2 {
		t.Fatalf("expected cell to stay put, got %v", c.Center())
	}
}

func TestTickBudgetShortfallScalesDownHealing(t *testing.T) {
	// spec.md scenario (e): a low-energy cell asking to heal more than it
	// can afford gets a proportionally scaled grant, never going negative.
	l := biology.NewCellLayer(quantities.Area(1), 1, biology.ColorGreen, biology.NewNullSpecialty()).
		WithHealthParameters(biology.LayerHealthParameters{HealingEnergyDelta: -2}).
		WithHealth(0.5)
	ctrl := control.NewContinuousRequestsControl([]control.Request{biology.HealingRequest(0, 0.5)})
	c := biology.NewCell(quantities.Zero2, quantities.Zero2, []*biology.CellLayer{l}, ctrl)
	c.SetInitialEnergy(0.5)

	c.Tick()

	// cost = 0.5 * 2 = 1 energy for full request; only 0.5 available, so
	// budget = 0.5/1 = 0.5, granting half the requested healing.
	if got, want := l.Health(), 0.75; math.Abs(got-want) > 1e-9 {
		t.Fatalf("health: got %v, want %v", got, want)
	}
	if c.Energy() < 0 {
		t.Fatalf("energy must never go negative, got %v", c.Energy())
	}
}

func TestCreateAndPlaceChildPositionsOutsideParent(t *testing.T) {
	l := biology.NewCellLayer(quantities.Area(4*math.Pi), 1, biology.ColorWhite, biology.NewBondingSpecialty())
	parent := biology.NewCell(quantities.NewVec2(10, 0), quantities.NewVec2(1, 2), []*biology.CellLayer{l}, control.NullControl{})

	child := parent.CreateAndPlaceChild(0, 5, quantities.Area(math.Pi), 99)

	wantDist := float64(parent.Radius() + child.Radius())
	gotDist := child.Center().Sub(parent.Center()).Magnitude()
	if math.Abs(gotDist-wantDist) > 1e-9 {
		t.Fatalf("child distance: got %v, want %v", gotDist, wantDist)
	}
	if child.Velocity() != parent.Velocity() {
		t.Fatalf("expected child velocity to match parent, got %v", child.Velocity())
	}
	if child.Energy() != 5 {
		t.Fatalf("expected child energy 5, got %v", child.Energy())
	}
}
