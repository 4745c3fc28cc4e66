// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biology_test

import (
	"math"
	"testing"

	"github.com/fgamador/evo-sim/biology"
	"github.com/fgamador/evo-sim/control"
	"github.com/fgamador/evo-sim/environment"
	"github.com/fgamador/evo-sim/quantities"
)

func TestNewCellLayerComputesMassAndOuterRadius(t *testing.T) {
	l := biology.NewCellLayer(quantities.Area(4*math.Pi), 2, biology.ColorGreen, biology.NewNullSpecialty())
	if got, want := l.Mass(), quantities.Mass(8*math.Pi); math.Abs(float64(got-want)) > 1e-9 {
		t.Fatalf("mass: got %v, want %v", got, want)
	}
	if got, want := l.OuterRadius(), quantities.Length(2); math.Abs(float64(got-want)) > 1e-9 {
		t.Fatalf("outer radius: got %v, want %v", got, want)
	}
}

func TestDamageKillsLayerAtZeroHealth(t *testing.T) {
	l := biology.NewCellLayer(1, 1, biology.ColorGreen, biology.NewNullSpecialty())
	l.Damage(1.0)
	if l.IsAlive() {
		t.Fatal("expected layer dead at health 0")
	}
	if l.Health() != 0 {
		t.Fatalf("expected health 0, got %v", l.Health())
	}
}

func TestDeadLayerIgnoresFurtherDamage(t *testing.T) {
	l := biology.NewCellLayer(1, 1, biology.ColorGreen, biology.NewNullSpecialty()).Dead()
	l.Damage(0.5)
	if l.Health() != 0 {
		t.Fatalf("expected dead layer to stay at 0, got %v", l.Health())
	}
}

func TestDeadLayerPricesEverythingFree(t *testing.T) {
	l := biology.NewCellLayer(1, 1, biology.ColorGreen, biology.NewNullSpecialty()).Dead()
	req := biology.ResizeRequest(0, 5)
	costed := l.CostControlRequest(req)
	if costed.EnergyDelta != 0 || costed.AllowedValue != 5 {
		t.Fatalf("expected free grant of requested value, got %+v", costed)
	}
}

func TestResizeRequestBoundedByMaxGrowthRate(t *testing.T) {
	l := biology.NewCellLayer(quantities.Area(10), 1, biology.ColorGreen, biology.NewNullSpecialty()).
		WithResizeParameters(biology.LayerResizeParameters{MaxGrowthRate: 0.1, MaxShrinkageRate: 1})
	costed := l.CostControlRequest(biology.ResizeRequest(0, 5))
	if costed.AllowedValue != 1 {
		t.Fatalf("expected growth capped at 10%% of area (1), got %v", costed.AllowedValue)
	}
}

func TestExecuteResizeRequestGrowsAreaAndMass(t *testing.T) {
	l := biology.NewCellLayer(quantities.Area(10), 2, biology.ColorGreen, biology.NewNullSpecialty())
	req := control.BudgetedRequest{
		ID:             control.RequestID{LayerIndex: 0, ChannelIndex: biology.ResizeChannelIndex},
		RequestedValue: 5,
		AllowedValue:   5,
		Budget:         1,
	}
	changes := biology.NewCellChanges(1)
	l.ExecuteControlRequest(req, &changes, 0)
	l.ApplyChanges(changes.Layers[0])
	if got, want := l.Area(), quantities.Area(15); got != want {
		t.Fatalf("area: got %v, want %v", got, want)
	}
	if got, want := l.Mass(), quantities.Mass(30); got != want {
		t.Fatalf("mass: got %v, want %v", got, want)
	}
}

func TestDecayShrinksAreaByRatePerTick(t *testing.T) {
	l := biology.NewCellLayer(quantities.Area(100), 1, biology.ColorGreen, biology.NewNullSpecialty()).
		WithResizeParameters(biology.LayerResizeParameters{MaxGrowthRate: math.Inf(1), MaxShrinkageRate: 1, DecayRate: 0.1})
	var env environment.LocalEnvironment
	changes := biology.NewCellChanges(1)
	l.CalculateAutomaticChanges(&env, &changes)
	if got, want := l.Area(), quantities.Area(90); got != want {
		t.Fatalf("area after one tick of decay: got %v, want %v", got, want)
	}
}

func TestDecayStopsAtMinimumIntactThickness(t *testing.T) {
	l := biology.NewCellLayer(quantities.Area(100), 1, biology.ColorGreen, biology.NewNullSpecialty()).
		WithResizeParameters(biology.LayerResizeParameters{MaxGrowthRate: math.Inf(1), MaxShrinkageRate: 1, DecayRate: 0.5, MinimumIntactThickness: 0.9})
	var env environment.LocalEnvironment
	changes := biology.NewCellChanges(1)
	for i := 0; i < 5; i++ {
		l.CalculateAutomaticChanges(&env, &changes)
	}
	if got, want := l.Area(), quantities.Area(90); got != want {
		t.Fatalf("area floored at 90%% of initial: got %v, want %v", got, want)
	}
}

func TestZeroDecayRateNeverShrinksArea(t *testing.T) {
	l := biology.NewCellLayer(quantities.Area(100), 1, biology.ColorGreen, biology.NewNullSpecialty())
	var env environment.LocalEnvironment
	changes := biology.NewCellChanges(1)
	l.CalculateAutomaticChanges(&env, &changes)
	if l.Area() != 100 {
		t.Fatalf("expected default (zero) decay rate to leave area unchanged, got %v", l.Area())
	}
}

func TestPhotoLayerGeneratesEnergyFromLight(t *testing.T) {
	l := biology.NewCellLayer(quantities.Area(2), 1, biology.ColorGreen, biology.NewPhotoSpecialty(0.5))
	var env environment.LocalEnvironment
	env.AddLightIntensity(1.0)
	changes := biology.NewCellChanges(1)
	l.CalculateAutomaticChanges(&env, &changes)
	if got, want := changes.Energy, quantities.BioEnergyDelta(1.0*0.5*1.0*2); got != want {
		t.Fatalf("energy: got %v, want %v", got, want)
	}
}

func TestThrusterLayerWritesCommittedThrust(t *testing.T) {
	l := biology.NewCellLayer(1, 1, biology.ColorWhite, biology.NewThrusterSpecialty())
	req := control.BudgetedRequest{
		ID:             control.RequestID{LayerIndex: 0, ChannelIndex: biology.ThrusterForceXChannelIndex},
		RequestedValue: 3,
		AllowedValue:   3,
		Budget:         1,
	}
	changes := biology.NewCellChanges(1)
	l.ExecuteControlRequest(req, &changes, 0)
	if got, want := changes.Thrust, quantities.NewVec2(3, 0); got != want {
		t.Fatalf("thrust: got %v, want %v", got, want)
	}
}

func TestBondingLayerWritesBondRequestSlot(t *testing.T) {
	l := biology.NewCellLayer(1, 1, biology.ColorWhite, biology.NewBondingSpecialty())
	changes := biology.NewCellChanges(1)

	retain := control.BudgetedRequest{
		ID:             control.RequestID{LayerIndex: 0, ChannelIndex: biology.BondingRetainChannelIndex, ValueIndex: 2},
		RequestedValue: 1,
		AllowedValue:   1,
		Budget:         1,
	}
	l.ExecuteControlRequest(retain, &changes, 0)
	if !changes.BondRequests[2].RetainBond {
		t.Fatal("expected retain bond true in slot 2")
	}

	donate := control.BudgetedRequest{
		ID:             control.RequestID{LayerIndex: 0, ChannelIndex: biology.BondingDonationEnergyChannelIndex, ValueIndex: 2},
		RequestedValue: 4,
		AllowedValue:   4,
		EnergyDelta:    -4,
		Budget:         1,
	}
	l.ExecuteControlRequest(donate, &changes, 0)
	if changes.BondRequests[2].DonationEnergy != 4 {
		t.Fatalf("expected donation energy 4, got %v", changes.BondRequests[2].DonationEnergy)
	}
	if changes.Energy != -4 {
		t.Fatalf("expected energy delta -4, got %v", changes.Energy)
	}
}
