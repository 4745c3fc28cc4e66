// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"math/rand"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/fgamador/evo-sim/biology"
	"github.com/fgamador/evo-sim/bond"
	"github.com/fgamador/evo-sim/environment"
	"github.com/fgamador/evo-sim/graph"
	"github.com/fgamador/evo-sim/quantities"
)

// Influence is the world's own instantiation of environment.Influence,
// fixed to cells/bonds/gussets.
type Influence = environment.Influence[*biology.Cell, *bond.Bond, *bond.AngleGusset]

// BondSpec wires an initial bond between two cells by index into the
// cells slice passed to New, at the given slots.
type BondSpec struct {
	CellIndex1, CellIndex2 int
	Slot1, Slot2           int
}

// GussetSpec wires an initial gusset between two bonds by index into the
// bonds created from the BondSpec slice passed to New.
type GussetSpec struct {
	BondIndex1, BondIndex2 int
	Angle                  quantities.Angle
}

// World owns the cell/bond/gusset graph exclusively (§5): all mutation
// happens inside Tick or UserAction, never concurrently, and a tick runs
// to completion before anything observes the result.
type World struct {
	graph      *graph.Graph[*biology.Cell, *bond.Bond, *bond.AngleGusset]
	influences []Influence
	params     Parameters
	clouds     CloudField
	minCorner  quantities.Vec2
	maxCorner  quantities.Vec2
	rng        *rand.Rand

	playing     bool
	fastForward bool
	exited      bool
}

// New builds a world with the given bounds, parameters, influence list
// (applied in order every tick) and initial cells, wired together by the
// given bond/gusset specs. Invalid wiring (bad index, slot collision) is
// a fatal configuration error.
func New(minCorner, maxCorner quantities.Vec2, params Parameters, influences []Influence, cells []*biology.Cell, bonds []BondSpec, gussets []GussetSpec, seed int64) *World {
	if err := params.Validate(); err != nil {
		chk.Panic("world: invalid parameters: %v", err)
	}

	w := &World{
		graph:      graph.New[*biology.Cell, *bond.Bond, *bond.AngleGusset](),
		influences: influences,
		params:     params,
		minCorner:  minCorner,
		maxCorner:  maxCorner,
		rng:        rand.New(rand.NewSource(seed)),
		playing:    true,
	}

	handles := make([]graph.NodeHandle, len(cells))
	for i, c := range cells {
		handles[i] = w.graph.AddNode(c)
	}

	bondHandles := make([]graph.EdgeHandle, len(bonds))
	for i, bs := range bonds {
		b := bond.New(handles[bs.CellIndex1], handles[bs.CellIndex2])
		h, err := w.graph.AddEdge(b, bs.Slot1, bs.Slot2)
		if err != nil {
			chk.Panic("world: bond spec %d: %v", i, err)
		}
		bondHandles[i] = h
	}

	for i, gs := range gussets {
		b1, err := w.graph.Edge(bondHandles[gs.BondIndex1])
		if err != nil {
			chk.Panic("world: gusset spec %d: %v", i, err)
		}
		b2, err := w.graph.Edge(bondHandles[gs.BondIndex2])
		if err != nil {
			chk.Panic("world: gusset spec %d: %v", i, err)
		}
		gusset := bond.NewAngleGusset(b1, b2, gs.Angle)
		if err := w.graph.AddMetaEdge(gusset); err != nil {
			chk.Panic("world: gusset spec %d: %v", i, err)
		}
	}

	return w
}

// AddCloud appends a cloud to the world's cloud field.
func (w *World) AddCloud(c Cloud) {
	w.clouds.Add(c)
}

// MinCorner and MaxCorner return the world's fixed bounds.
func (w *World) MinCorner() quantities.Vec2 { return w.minCorner }
func (w *World) MaxCorner() quantities.Vec2 { return w.maxCorner }

// Cells returns the live cells, read-only (§6).
func (w *World) Cells() []*biology.Cell { return w.graph.Nodes() }

// Bonds returns the live bonds, read-only (§6).
func (w *World) Bonds() []*bond.Bond { return w.graph.Edges() }

// Clouds returns the live clouds, read-only.
func (w *World) Clouds() []Cloud { return w.clouds.Clouds() }

// Exited reports whether a user action requested the world stop.
func (w *World) Exited() bool { return w.exited }

// Tick runs one full tick (§4.6): apply influences, tick every cell,
// reconcile structural changes, tick the cloud field. A tick runs to
// completion; nothing observes a partially reconciled graph.
func (w *World) Tick() {
	for _, inf := range w.influences {
		inf.Apply(w.graph)
	}

	cells := w.graph.Nodes()
	bondRequests := make([][biology.MaxBonds]biology.BondRequest, len(cells))
	for i, c := range cells {
		bondRequests[i] = c.Tick()
	}

	w.reconcile(cells, bondRequests)
	w.clouds.tick(w.params.CloudParams)
}

type donation struct {
	recipient graph.NodeHandle
	amount    quantities.BioEnergy
}

type childSpawn struct {
	parent       *biology.Cell
	parentHandle graph.NodeHandle
	parentSlot   int
	buddingAngle quantities.Angle
	donation     quantities.BioEnergy
}

// reconcile implements §4.6 steps 3-6: a read-only pass over each
// cell's bond requests decides what donations/children/removals to
// queue, all against the pre-reconciliation snapshot of bond
// occupancy; then the queued actions apply in strict phase order so no
// step observes a partially-updated graph.
func (w *World) reconcile(cells []*biology.Cell, bondRequests [][biology.MaxBonds]biology.BondRequest) {
	var donations []donation
	var children []childSpawn
	removeBondSet := make(map[graph.EdgeHandle]bool)
	var removeCells []graph.NodeHandle

	for i, cell := range cells {
		if !cell.IsAlive() {
			removeCells = append(removeCells, cell.Handle())
		}

		for slot := 0; slot < biology.MaxBonds; slot++ {
			req := bondRequests[i][slot]
			edgeHandle, occupied := cell.SlotHandle(slot)

			if req.RetainBond {
				if req.DonationEnergy <= 0 {
					continue
				}
				if occupied {
					peer, ok := w.peerAcross(edgeHandle, cell.Handle())
					if ok {
						donations = append(donations, donation{recipient: peer, amount: req.DonationEnergy})
					}
				} else {
					children = append(children, childSpawn{
						parent:       cell,
						parentHandle: cell.Handle(),
						parentSlot:   slot,
						buddingAngle: req.BuddingAngle,
						donation:     req.DonationEnergy,
					})
				}
			} else if occupied {
				removeBondSet[edgeHandle] = true
			}
		}
	}

	w.applyDonations(donations)
	w.addChildren(children)
	w.removeBondsAndCells(removeBondSet, removeCells)
}

// peerAcross resolves the other endpoint of the edge at h, relative to
// this cell's handle.
func (w *World) peerAcross(h graph.EdgeHandle, self graph.NodeHandle) (graph.NodeHandle, bool) {
	e, err := w.graph.Edge(h)
	if err != nil {
		return graph.NodeHandle{}, false
	}
	switch {
	case e.Node1Handle() == self:
		return e.Node2Handle(), true
	case e.Node2Handle() == self:
		return e.Node1Handle(), true
	default:
		return graph.NodeHandle{}, false
	}
}

// applyDonations credits each recipient's received energy (step 4).
// A recipient handle invalidated earlier this tick by another donation
// (impossible: donations never remove nodes) always resolves.
func (w *World) applyDonations(donations []donation) {
	for _, d := range donations {
		recipient, err := w.graph.Node(d.recipient)
		if err != nil {
			continue
		}
		recipient.RecordDonationReceived(d.amount)
	}
}

// addChildren buds each queued child: spawns it, places it, adds it to
// the graph, and bonds it to its parent at (parentSlot, slot 0) (step 5).
func (w *World) addChildren(children []childSpawn) {
	for _, spec := range children {
		childSeed := w.rng.Int63()
		child := spec.parent.CreateAndPlaceChild(spec.buddingAngle, spec.donation, w.params.SpawnLayerArea, childSeed)
		childHandle := w.graph.AddNode(child)
		b := bond.New(spec.parentHandle, childHandle)
		if _, err := w.graph.AddEdge(b, spec.parentSlot, 0); err != nil {
			chk.Panic("world: budding produced an unwireable bond: %v", err)
		}
	}
}

// removeBondsAndCells removes queued bonds then queued dead cells, both
// sorted ascending by handle index as RemoveEdges/RemoveNodes require
// (step 6).
func (w *World) removeBondsAndCells(removeBondSet map[graph.EdgeHandle]bool, removeCells []graph.NodeHandle) {
	bondHandles := make([]graph.EdgeHandle, 0, len(removeBondSet))
	for h := range removeBondSet {
		bondHandles = append(bondHandles, h)
	}
	sort.Slice(bondHandles, func(i, j int) bool { return bondHandles[i].Index() < bondHandles[j].Index() })
	if err := w.graph.RemoveEdges(bondHandles); err != nil {
		chk.Panic("world: failed to remove bonds: %v", err)
	}

	sort.Slice(removeCells, func(i, j int) bool { return removeCells[i].Index() < removeCells[j].Index() })
	if err := w.graph.RemoveNodes(removeCells); err != nil {
		chk.Panic("world: failed to remove dead cells: %v", err)
	}
}

// UserAction is an event from a renderer (§6).
type UserAction struct {
	Kind UserActionKind
	X, Y float64
}

// UserActionKind tags UserAction's closed set of variants.
type UserActionKind int

const (
	DebugPrint UserActionKind = iota
	Exit
	FastForwardToggle
	PlayToggle
	SelectCellToggle
	SingleTick
)

// HandleUserAction dispatches one renderer event.
func (w *World) HandleUserAction(a UserAction) {
	switch a.Kind {
	case DebugPrint:
		w.debugPrint()
	case Exit:
		w.exited = true
	case FastForwardToggle:
		w.fastForward = !w.fastForward
	case PlayToggle:
		w.playing = !w.playing
	case SelectCellToggle:
		w.toggleSelection(a.X, a.Y)
	case SingleTick:
		w.Tick()
	default:
		chk.Panic("world: unknown user action kind %d", a.Kind)
	}
}

// toggleSelection flips the selected flag of the topmost cell (last in
// arena order) whose disk contains (x, y).
func (w *World) toggleSelection(x, y float64) {
	cells := w.graph.Nodes()
	for i := len(cells) - 1; i >= 0; i-- {
		c := cells[i]
		offset := quantities.NewVec2(x, y).Sub(c.Center())
		if offset.Magnitude() <= float64(c.Radius()) {
			c.SetSelected(!c.IsSelected())
			return
		}
	}
}

func (w *World) debugPrint() {
	io.Pf("world: %d cells, %d bonds, %d clouds\n", len(w.graph.Nodes()), len(w.graph.Edges()), len(w.clouds.Clouds()))
	for _, c := range w.graph.Nodes() {
		io.Pf("  cell %v: pos=%v vel=%v energy=%.3f donation_received=%.3f alive=%v\n", c.Handle(), c.Center(), c.Velocity(), c.Energy(), c.DonationReceived(), c.IsAlive())
	}
}

// IsPlaying and IsFastForward report the renderer-facing play state.
func (w *World) IsPlaying() bool     { return w.playing }
func (w *World) IsFastForward() bool { return w.fastForward }
