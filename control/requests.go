// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package control implements §4.5's request → costed-request →
// budgeted-request pipeline, the CellControl contract, and a handful of
// constant/deterministic control implementations (§4.8).
package control

import (
	"fmt"

	"github.com/fgamador/evo-sim/quantities"
)

// RequestID names one writable dimension of a layer: which layer, which
// channel (0 = heal, 1 = resize, specialty-defined ≥ 2), which value
// within that channel.
type RequestID struct {
	LayerIndex, ChannelIndex, ValueIndex int
}

func (id RequestID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.LayerIndex, id.ChannelIndex, id.ValueIndex)
}

// Request is one unit of control output: "I'd like channel X on layer Y
// to move toward value Z."
type Request struct {
	ID             RequestID
	RequestedValue float64
}

// NullRequest is the canonical zero/no-op request, used as a default
// value when building fixed-size per-layer channel tables.
var NullRequest = Request{}

// NewRequest builds a Request addressed by (layerIndex, channelIndex,
// valueIndex).
func NewRequest(layerIndex, channelIndex, valueIndex int, requestedValue float64) Request {
	return Request{ID: RequestID{layerIndex, channelIndex, valueIndex}, RequestedValue: requestedValue}
}

// CostedRequest is a Request after the owning layer has computed what it
// would actually cost: allowedValue is what would happen if fully funded,
// energyDelta is its price (negative = consumes energy, positive = yields
// it).
type CostedRequest struct {
	ID             RequestID
	RequestedValue float64
	AllowedValue   float64
	EnergyDelta    quantities.BioEnergyDelta
}

// NullCostedRequest is the canonical zero/no-op costed request.
var NullCostedRequest = CostedRequest{}

// FreeRequest costs nothing and is granted in full — used by dead layers
// and no-op specialty channels.
func FreeRequest(req Request) CostedRequest {
	return UnlimitedRequest(req, 0)
}

// UnlimitedRequest is granted in full at the given energy price.
func UnlimitedRequest(req Request, energyDelta quantities.BioEnergyDelta) CostedRequest {
	return CostedRequest{ID: req.ID, RequestedValue: req.RequestedValue, AllowedValue: req.RequestedValue, EnergyDelta: energyDelta}
}

// LimitedRequest is granted only up to allowedValue (e.g. growth/shrink
// bounded by a max rate), at the given energy price for that allowed
// amount.
func LimitedRequest(req Request, allowedValue float64, energyDelta quantities.BioEnergyDelta) CostedRequest {
	return CostedRequest{ID: req.ID, RequestedValue: req.RequestedValue, AllowedValue: allowedValue, EnergyDelta: energyDelta}
}

// BudgetedRequest is a CostedRequest after the cell-wide energy budget
// (§4.5 step 3c) has scaled it: Budget ∈ [0,1], and non-negative-delta
// requests always receive a budget of 1.
type BudgetedRequest struct {
	ID             RequestID
	RequestedValue float64
	AllowedValue   float64
	EnergyDelta    quantities.BioEnergyDelta
	Budget         quantities.Fraction
}

// BudgetedValue is AllowedValue scaled by Budget.
func (r BudgetedRequest) BudgetedValue() float64 {
	return float64(r.Budget) * r.AllowedValue
}

// BudgetedEnergyDelta is EnergyDelta scaled by Budget.
func (r BudgetedRequest) BudgetedEnergyDelta() quantities.BioEnergyDelta {
	return r.EnergyDelta * quantities.BioEnergyDelta(r.Budget)
}

// Budget turns a set of costed requests into budgeted requests per §4.5
// step 3c: it sums income/expense (the positive/|negative| energy
// deltas), computes budget = min(1, (startEnergy + income) / expense),
// and returns each request with its budget. Each negative-delta request
// receives budget; each non-negative receives 1.
func Budget(startEnergy quantities.BioEnergy, requests []CostedRequest) []BudgetedRequest {
	var income, expense quantities.BioEnergyDelta
	for _, r := range requests {
		if r.EnergyDelta >= 0 {
			income += r.EnergyDelta
		} else {
			expense += -r.EnergyDelta
		}
	}

	budget := quantities.Fraction(1)
	if expense > 0 {
		budget = quantities.ClampFraction(quantities.Fraction((float64(startEnergy) + float64(income)) / float64(expense)))
	}

	out := make([]BudgetedRequest, len(requests))
	for i, r := range requests {
		b := quantities.Fraction(1)
		if r.EnergyDelta < 0 {
			b = budget
		}
		out[i] = BudgetedRequest{
			ID:             r.ID,
			RequestedValue: r.RequestedValue,
			AllowedValue:   r.AllowedValue,
			EnergyDelta:    r.EnergyDelta,
			Budget:         b,
		}
	}
	return out
}

// NetEnergyDelta sums each budgeted request's energy delta, scaled by its
// own budget.
func NetEnergyDelta(costed []CostedRequest, budgeted []BudgetedRequest) quantities.BioEnergyDelta {
	var total quantities.BioEnergyDelta
	for i := range budgeted {
		total += budgeted[i].BudgetedEnergyDelta()
	}
	return total
}
