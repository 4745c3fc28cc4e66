// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quantities_test

import (
	"math"
	"testing"

	"github.com/fgamador/evo-sim/quantities"
)

func TestNormalizeAngleWrapsIntoRange(t *testing.T) {
	cases := []struct {
		in   quantities.Angle
		want float64
	}{
		{0, 0},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		got := float64(quantities.NormalizeAngle(c.in))
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v): got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClampHealthAndFraction(t *testing.T) {
	if got := quantities.ClampHealth(-1); got != 0 {
		t.Errorf("ClampHealth(-1): got %v, want 0", got)
	}
	if got := quantities.ClampHealth(2); got != 1 {
		t.Errorf("ClampHealth(2): got %v, want 1", got)
	}
	if got := quantities.ClampFraction(0.5); got != 0.5 {
		t.Errorf("ClampFraction(0.5): got %v, want 0.5", got)
	}
}

func TestVec2ProjectOntoZeroVectorIsZero(t *testing.T) {
	v := quantities.NewVec2(3, 4)
	if got := v.ProjectOnto(quantities.Zero2); got != quantities.Zero2 {
		t.Fatalf("expected zero projection onto zero vector, got %v", got)
	}
}

func TestVec2ProjectOntoAxis(t *testing.T) {
	v := quantities.NewVec2(3, 4)
	axis := quantities.NewVec2(1, 0)
	got := v.ProjectOnto(axis)
	want := quantities.NewVec2(3, 0)
	if got != want {
		t.Fatalf("ProjectOnto: got %v, want %v", got, want)
	}
}

func TestPolarVec2RoundTripsThroughAngle(t *testing.T) {
	v := quantities.PolarVec2(2, math.Pi/4)
	if math.Abs(v.Magnitude()-2) > 1e-9 {
		t.Fatalf("expected magnitude 2, got %v", v.Magnitude())
	}
	if math.Abs(float64(v.Angle())-math.Pi/4) > 1e-9 {
		t.Fatalf("expected angle pi/4, got %v", v.Angle())
	}
}
