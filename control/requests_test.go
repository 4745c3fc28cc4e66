// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control_test

import (
	"testing"

	"github.com/fgamador/evo-sim/control"
	"github.com/fgamador/evo-sim/quantities"
)

func TestBudgetUnderShortfall(t *testing.T) {
	// spec.md scenario (e): energy=1, one request yields +1, one costs -2.
	requests := []control.CostedRequest{
		control.UnlimitedRequest(control.NewRequest(0, 1, 0, 1), 1),
		control.UnlimitedRequest(control.NewRequest(0, 0, 0, -1), -2),
	}
	budgeted := control.Budget(1, requests)

	if budgeted[0].Budget != 1 {
		t.Fatalf("non-negative request should get budget 1, got %v", budgeted[0].Budget)
	}
	if budgeted[1].Budget != 1 {
		t.Fatalf("expected budget min(1, (1+1)/2)=1, got %v", budgeted[1].Budget)
	}

	net := control.NetEnergyDelta(requests, budgeted)
	if net != 1-2 {
		t.Fatalf("got %v", net)
	}
}

func TestBudgetScalesDownWhenExpenseExceedsIncome(t *testing.T) {
	requests := []control.CostedRequest{
		control.UnlimitedRequest(control.NewRequest(0, 0, 0, -1), -4),
	}
	budgeted := control.Budget(1, requests)
	want := quantities.Fraction(0.25)
	if budgeted[0].Budget != want {
		t.Fatalf("expected budget %v, got %v", want, budgeted[0].Budget)
	}
}

func TestBudgetNeverExceedsOne(t *testing.T) {
	requests := []control.CostedRequest{
		control.UnlimitedRequest(control.NewRequest(0, 0, 0, -1), -1),
	}
	budgeted := control.Budget(10, requests)
	if budgeted[0].Budget != 1 {
		t.Fatalf("got %v", budgeted[0].Budget)
	}
}

func TestNullControlRequestsNothing(t *testing.T) {
	var c control.NullControl
	if got := c.Run(control.ZeroCellStateSnapshot); got != nil {
		t.Fatalf("got %v", got)
	}
}

func TestSimpleThrusterControlRequestsForceChannels(t *testing.T) {
	c := control.NewSimpleThrusterControl(2, quantities.NewVec2(1.5, -2.5))
	got := c.Run(control.ZeroCellStateSnapshot)
	want := []control.Request{
		control.NewRequest(2, 2, 0, 1.5),
		control.NewRequest(2, 3, 0, -2.5),
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v", got)
	}
}
