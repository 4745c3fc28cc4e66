// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biology

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/fgamador/evo-sim/control"
	"github.com/fgamador/evo-sim/environment"
	"github.com/fgamador/evo-sim/quantities"
	"github.com/fgamador/evo-sim/shapes"
)

// Color is a layer's tissue tag, purely descriptive (used by a renderer,
// never read by the core).
type Color int

const (
	ColorGreen Color = iota
	ColorWhite
	ColorYellow
)

// LayerHealthParameters governs a layer's passive health drain and
// healing cost. All three fields must be ≤ 0 (healing consumes energy;
// damage only ever removes health).
type LayerHealthParameters struct {
	HealingEnergyDelta        quantities.BioEnergyDelta
	EntropicDamageHealthDelta float64
	OverlapDamageHealthDelta  float64
}

// DefaultLayerHealthParameters takes no passive damage and heals for
// free — the zero value, named for readability at call sites.
var DefaultLayerHealthParameters = LayerHealthParameters{}

func (p LayerHealthParameters) validate() {
	if p.HealingEnergyDelta > 0 {
		chk.Panic("biology: LayerHealthParameters.HealingEnergyDelta must be <= 0, got %v", p.HealingEnergyDelta)
	}
	if p.EntropicDamageHealthDelta > 0 {
		chk.Panic("biology: LayerHealthParameters.EntropicDamageHealthDelta must be <= 0, got %v", p.EntropicDamageHealthDelta)
	}
	if p.OverlapDamageHealthDelta > 0 {
		chk.Panic("biology: LayerHealthParameters.OverlapDamageHealthDelta must be <= 0, got %v", p.OverlapDamageHealthDelta)
	}
}

// LayerResizeParameters bounds how fast a layer may grow or shrink, what
// that costs, and its passive decay: DecayRate is the fraction of its
// current area a layer sheds every tick with no control input at all,
// and MinimumIntactThickness is the floor — expressed as a fraction of
// the layer's area at spawn time — below which decay stops rather than
// eroding the layer to nothing.
type LayerResizeParameters struct {
	GrowthEnergyDelta      quantities.BioEnergyDelta
	MaxGrowthRate          float64
	ShrinkageEnergyDelta   quantities.BioEnergyDelta
	MaxShrinkageRate       float64
	DecayRate              float64
	MinimumIntactThickness float64
}

// UnlimitedLayerResizeParameters allows unbounded free growth and full
// shrinkage in one tick, with no passive decay.
var UnlimitedLayerResizeParameters = LayerResizeParameters{
	MaxGrowthRate:    math.Inf(1),
	MaxShrinkageRate: 1.0,
}

func (p LayerResizeParameters) validate() {
	if p.GrowthEnergyDelta > 0 {
		chk.Panic("biology: LayerResizeParameters.GrowthEnergyDelta must be <= 0, got %v", p.GrowthEnergyDelta)
	}
	if p.MaxGrowthRate < 0 {
		chk.Panic("biology: LayerResizeParameters.MaxGrowthRate must be >= 0, got %v", p.MaxGrowthRate)
	}
	if p.MaxShrinkageRate < 0 {
		chk.Panic("biology: LayerResizeParameters.MaxShrinkageRate must be >= 0, got %v", p.MaxShrinkageRate)
	}
	if p.DecayRate < 0 || p.DecayRate > 1 {
		chk.Panic("biology: LayerResizeParameters.DecayRate must be in [0,1], got %v", p.DecayRate)
	}
	if p.MinimumIntactThickness < 0 || p.MinimumIntactThickness > 1 {
		chk.Panic("biology: LayerResizeParameters.MinimumIntactThickness must be in [0,1], got %v", p.MinimumIntactThickness)
	}
}

// brainState is the layer brain's tag (§9: "co-locate brain state in
// the layer as a tag plus a set of pure functions keyed on the tag,"
// replacing the source's cell↔layer↔brain back-pointer). Living is the
// initial state; Dead is terminal.
type brainState int

const (
	livingBrain brainState = iota
	deadBrain
)

// SpecialtyKind tags a layer's closed set of behaviors.
type SpecialtyKind int

const (
	SpecialtyNull SpecialtyKind = iota
	SpecialtyThruster
	SpecialtyPhoto
	SpecialtyBonding
)

// Channel indices: 0 and 1 are universal (every layer answers heal and
// resize); 2+ are specialty-defined.
const (
	HealingChannelIndex = 0
	ResizeChannelIndex  = 1

	ThrusterForceXChannelIndex = 2
	ThrusterForceYChannelIndex = 3

	BondingRetainChannelIndex         = 2
	BondingBuddingAngleChannelIndex   = 3
	BondingDonationEnergyChannelIndex = 4
)

// specialty holds whatever per-kind state a layer's specialty needs.
// Thruster remembers its last committed force component (diagnostic
// only — see CellLayer.calculateSpecialtyAutomaticChanges); Photo
// remembers its fixed efficiency.
type specialty struct {
	kind               SpecialtyKind
	thrusterForceX     float64
	thrusterForceY     float64
	photoEfficiency    float64
}

func NewNullSpecialty() specialty     { return specialty{kind: SpecialtyNull} }
func NewThrusterSpecialty() specialty { return specialty{kind: SpecialtyThruster} }
func NewPhotoSpecialty(efficiency float64) specialty {
	return specialty{kind: SpecialtyPhoto, photoEfficiency: efficiency}
}
func NewBondingSpecialty() specialty { return specialty{kind: SpecialtyBonding} }

func (s specialty) spawn() specialty {
	return specialty{kind: s.kind, photoEfficiency: s.photoEfficiency}
}

// CellLayer is one onion-ring of tissue inside a cell: an area/density/
// mass/outer-radius/health record, a brain tag, an immutable parameter
// record, and a specialty.
type CellLayer struct {
	area        quantities.Area
	initialArea quantities.Area
	density     quantities.Density
	mass        quantities.Mass
	outerRadius quantities.Length
	health      float64
	color       Color
	brain       brainState
	healthParams  LayerHealthParameters
	resizeParams  LayerResizeParameters
	specialty     specialty
}

// NewCellLayer builds a living layer at full health. Density must be > 0.
func NewCellLayer(area quantities.Area, density quantities.Density, color Color, sp specialty) *CellLayer {
	if density <= 0 {
		chk.Panic("biology: CellLayer density must be > 0, got %v", density)
	}
	l := &CellLayer{
		area:         area,
		density:      density,
		color:        color,
		brain:        livingBrain,
		health:       1.0,
		healthParams: DefaultLayerHealthParameters,
		resizeParams: UnlimitedLayerResizeParameters,
		specialty:    sp,
	}
	l.initFromArea()
	return l
}

func (l *CellLayer) WithHealthParameters(p LayerHealthParameters) *CellLayer {
	p.validate()
	l.healthParams = p
	return l
}

func (l *CellLayer) WithResizeParameters(p LayerResizeParameters) *CellLayer {
	p.validate()
	l.resizeParams = p
	return l
}

func (l *CellLayer) WithHealth(health float64) *CellLayer {
	if health < 0 {
		chk.Panic("biology: CellLayer health must be >= 0, got %v", health)
	}
	l.health = health
	return l
}

// Dead marks the layer dead from construction (a convenience for
// scenario setup and tests).
func (l *CellLayer) Dead() *CellLayer {
	l.Damage(1.0)
	return l
}

func (l *CellLayer) initFromArea() {
	l.initialArea = l.area
	l.mass = quantities.Mass(float64(l.area) * float64(l.density))
	l.outerRadius = quantities.Length(math.Sqrt(float64(l.area) / math.Pi))
}

// Spawn returns a fresh, living copy of the layer at the given area,
// used when a cell buds a child.
func (l *CellLayer) Spawn(area quantities.Area) *CellLayer {
	copy := *l
	copy.area = area
	copy.health = 1.0
	copy.brain = livingBrain
	copy.specialty = l.specialty.spawn()
	copy.initFromArea()
	return &copy
}

func (l *CellLayer) IsAlive() bool               { return l.health > 0 }
func (l *CellLayer) OuterRadius() quantities.Length { return l.outerRadius }
func (l *CellLayer) Color() Color                { return l.color }
func (l *CellLayer) Health() float64             { return l.health }
func (l *CellLayer) Area() quantities.Area       { return l.area }
func (l *CellLayer) Mass() quantities.Mass       { return l.mass }

// Damage reduces health by healthLoss (which must be >= 0), clamped at
// 0, transitioning the brain to Dead the instant health reaches 0. A
// Dead layer ignores further damage.
func (l *CellLayer) Damage(healthLoss float64) {
	if l.brain == deadBrain {
		return
	}
	if healthLoss < 0 {
		chk.Panic("biology: Damage healthLoss must be >= 0, got %v", healthLoss)
	}
	l.health = math.Max(l.health-healthLoss, 0)
	if l.health == 0 {
		l.brain = deadBrain
	}
}

// UpdateOuterRadius sets the layer's outer radius from the radius of
// whatever is inside it (0 for the innermost layer).
func (l *CellLayer) UpdateOuterRadius(innerRadius quantities.Length) {
	l.outerRadius = quantities.Length(math.Sqrt(float64(innerRadius)*float64(innerRadius) + float64(l.area)/math.Pi))
}

// CalculateAutomaticChanges applies entropic and overlap damage, then
// the specialty's automatic step, returning any energy the specialty
// produced (for diagnostics; photosynthesis already wrote it into
// changes.Energy). Dead layers do nothing and cost nothing.
func (l *CellLayer) CalculateAutomaticChanges(env *environment.LocalEnvironment, changes *CellChanges) quantities.BioEnergy {
	if l.brain == deadBrain {
		return 0
	}
	l.entropicDamage()
	l.overlapDamage(env.Overlaps())
	l.decay()
	return l.calculateSpecialtyAutomaticChanges(env, changes)
}

func (l *CellLayer) entropicDamage() {
	l.Damage(-l.healthParams.EntropicDamageHealthDelta)
}

// decay sheds DecayRate of the layer's current area every tick, down to
// a floor of MinimumIntactThickness of its area at spawn time. A layer
// with DecayRate 0 (the default) never decays.
func (l *CellLayer) decay() {
	if l.resizeParams.DecayRate <= 0 {
		return
	}
	floor := quantities.Area(l.resizeParams.MinimumIntactThickness) * l.initialArea
	if l.area <= floor {
		return
	}
	newArea := l.area - quantities.Area(l.resizeParams.DecayRate)*l.area
	if newArea < floor {
		newArea = floor
	}
	l.area = newArea
	l.mass = quantities.Mass(float64(l.area) * float64(l.density))
}

func (l *CellLayer) overlapDamage(overlaps []shapes.Overlap) {
	var total float64
	for _, o := range overlaps {
		total += l.healthParams.OverlapDamageHealthDelta * o.Magnitude()
	}
	l.Damage(-total)
}

// calculateSpecialtyAutomaticChanges dispatches the specialty's
// automatic step. Only Photo has one that matters at this stage:
// Thruster's committed force is set by ExecuteControlRequest instead
// (the source's equivalent automatic-step force is never actually
// consumed — thrust committed in one tick is applied in the next, and
// each tick's apply step sets it again or clears it).
func (l *CellLayer) calculateSpecialtyAutomaticChanges(env *environment.LocalEnvironment, changes *CellChanges) quantities.BioEnergy {
	if l.specialty.kind != SpecialtyPhoto {
		return 0
	}
	energy := quantities.BioEnergy(env.LightIntensity() * l.specialty.photoEfficiency * l.health * float64(l.area))
	changes.Energy += quantities.BioEnergyDelta(energy)
	return energy
}

// CostControlRequest prices a single control request on this layer.
// Dead layers price everything free.
func (l *CellLayer) CostControlRequest(req control.Request) control.CostedRequest {
	if l.brain == deadBrain {
		return control.FreeRequest(req)
	}
	switch req.ID.ChannelIndex {
	case HealingChannelIndex:
		return l.costRestoreHealth(req)
	case ResizeChannelIndex:
		return l.costResize(req)
	default:
		return l.costSpecialtyRequest(req)
	}
}

func (l *CellLayer) costRestoreHealth(req control.Request) control.CostedRequest {
	delta := float64(l.healthParams.HealingEnergyDelta) * float64(l.area) * req.RequestedValue
	return control.UnlimitedRequest(req, quantities.BioEnergyDelta(delta))
}

func (l *CellLayer) costResize(req control.Request) control.CostedRequest {
	deltaArea := l.boundResizeDeltaArea(req.RequestedValue)
	var perArea quantities.BioEnergyDelta
	if req.RequestedValue >= 0 {
		perArea = l.resizeParams.GrowthEnergyDelta
	} else {
		perArea = -l.resizeParams.ShrinkageEnergyDelta
	}
	return control.LimitedRequest(req, deltaArea, quantities.BioEnergyDelta(deltaArea)*perArea)
}

func (l *CellLayer) boundResizeDeltaArea(requestedDeltaArea float64) float64 {
	if requestedDeltaArea >= 0 {
		maxDelta := l.resizeParams.MaxGrowthRate * float64(l.area)
		return math.Min(requestedDeltaArea, maxDelta)
	}
	minDelta := -l.resizeParams.MaxShrinkageRate * float64(l.area)
	return math.Max(requestedDeltaArea, minDelta)
}

func (l *CellLayer) costSpecialtyRequest(req control.Request) control.CostedRequest {
	switch l.specialty.kind {
	case SpecialtyThruster:
		switch req.ID.ChannelIndex {
		case ThrusterForceXChannelIndex, ThrusterForceYChannelIndex:
			return control.FreeRequest(req)
		}
	case SpecialtyBonding:
		switch req.ID.ChannelIndex {
		case BondingRetainChannelIndex, BondingBuddingAngleChannelIndex:
			return control.FreeRequest(req)
		case BondingDonationEnergyChannelIndex:
			return control.UnlimitedRequest(req, quantities.BioEnergyDelta(-req.RequestedValue))
		}
	}
	chk.Panic("biology: unknown control channel index %d", req.ID.ChannelIndex)
	return control.NullCostedRequest
}

// ExecuteControlRequest applies one budgeted request's effect: health/
// area change for the universal channels, or a specialty-specific
// write (thrust, bond-request fields) otherwise. Dead layers ignore
// everything.
func (l *CellLayer) ExecuteControlRequest(req control.BudgetedRequest, changes *CellChanges, layerIndex int) {
	if l.brain == deadBrain {
		return
	}
	switch req.ID.ChannelIndex {
	case HealingChannelIndex:
		deltaHealth := l.actualDeltaHealth(req.RequestedValue, float64(req.Budget))
		changes.Layers[layerIndex].Health += deltaHealth
		changes.Energy += req.BudgetedEnergyDelta()
	case ResizeChannelIndex:
		deltaArea := l.actualDeltaArea(req.RequestedValue, float64(req.Budget))
		changes.Layers[layerIndex].Area += deltaArea
		changes.Energy += req.BudgetedEnergyDelta()
	default:
		l.executeSpecialtyRequest(req, changes)
	}
}

func (l *CellLayer) actualDeltaHealth(requestedDeltaHealth, budgetedFraction float64) float64 {
	if requestedDeltaHealth < 0 {
		chk.Panic("biology: healing request must be >= 0, got %v", requestedDeltaHealth)
	}
	return math.Min(budgetedFraction*requestedDeltaHealth, 1-l.health)
}

func (l *CellLayer) actualDeltaArea(requestedDeltaArea, budgetedFraction float64) quantities.Area {
	delta := l.health * budgetedFraction * l.boundResizeDeltaArea(requestedDeltaArea)
	return quantities.Area(math.Max(delta, -float64(l.area)))
}

func (l *CellLayer) executeSpecialtyRequest(req control.BudgetedRequest, changes *CellChanges) {
	switch l.specialty.kind {
	case SpecialtyThruster:
		switch req.ID.ChannelIndex {
		case ThrusterForceXChannelIndex:
			l.specialty.thrusterForceX = l.health * float64(req.Budget) * req.RequestedValue
			changes.Thrust = changes.Thrust.Add(quantities.NewVec2(l.specialty.thrusterForceX, 0))
			return
		case ThrusterForceYChannelIndex:
			l.specialty.thrusterForceY = l.health * float64(req.Budget) * req.RequestedValue
			changes.Thrust = changes.Thrust.Add(quantities.NewVec2(0, l.specialty.thrusterForceY))
			return
		}
	case SpecialtyBonding:
		slot := req.ID.ValueIndex
		br := &changes.BondRequests[slot]
		switch req.ID.ChannelIndex {
		case BondingRetainChannelIndex:
			br.RetainBond = req.RequestedValue > 0
			return
		case BondingBuddingAngleChannelIndex:
			br.BuddingAngle = quantities.Angle(req.RequestedValue)
			return
		case BondingDonationEnergyChannelIndex:
			br.DonationEnergy = quantities.BioEnergy(l.health * float64(req.Budget) * req.RequestedValue)
			changes.Energy += req.BudgetedEnergyDelta()
			return
		}
	}
	chk.Panic("biology: unknown control channel index %d", req.ID.ChannelIndex)
}

// ApplyChanges folds one tick's accumulated health and area deltas into
// the layer's state.
func (l *CellLayer) ApplyChanges(c CellLayerChanges) {
	l.health += c.Health
	l.area += c.Area
	l.mass = quantities.Mass(float64(l.area) * float64(l.density))
}

func HealingRequest(layerIndex int, deltaHealth float64) control.Request {
	return control.NewRequest(layerIndex, HealingChannelIndex, 0, deltaHealth)
}

func ResizeRequest(layerIndex int, deltaArea quantities.Area) control.Request {
	return control.NewRequest(layerIndex, ResizeChannelIndex, 0, float64(deltaArea))
}

func ThrusterForceXRequest(layerIndex int, value float64) control.Request {
	return control.NewRequest(layerIndex, ThrusterForceXChannelIndex, 0, value)
}

func ThrusterForceYRequest(layerIndex int, value float64) control.Request {
	return control.NewRequest(layerIndex, ThrusterForceYChannelIndex, 0, value)
}

func BondingRetainBondRequest(layerIndex, bondIndex int, flag bool) control.Request {
	value := 0.0
	if flag {
		value = 1.0
	}
	return control.NewRequest(layerIndex, BondingRetainChannelIndex, bondIndex, value)
}

func BondingBuddingAngleRequest(layerIndex, bondIndex int, angle quantities.Angle) control.Request {
	return control.NewRequest(layerIndex, BondingBuddingAngleChannelIndex, bondIndex, float64(angle))
}

func BondingDonationEnergyRequest(layerIndex, bondIndex int, energy quantities.BioEnergy) control.Request {
	return control.NewRequest(layerIndex, BondingDonationEnergyChannelIndex, bondIndex, float64(energy))
}
