// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Graph is a contiguous arena of nodes, edges and meta-edges, keyed by
// stable handles that carry an index. Removal is swap-with-last, so
// handles are invalidated by any mutation; the graph fixes up every
// remaining reference via the Edge/MetaEdge callbacks as it swaps.
//
// N, E and ME are always pointer types (e.g. *biology.Cell, *bond.Bond,
// *bond.AngleGusset) so the arena can mutate payloads in place.
type Graph[N Node, E Edge, ME MetaEdge] struct {
	nodes     []N
	edges     []E
	metaEdges []ME
}

// New returns an empty Graph.
func New[N Node, E Edge, ME MetaEdge]() *Graph[N, E, ME] {
	return &Graph[N, E, ME]{}
}

// AddNode appends node to the arena and assigns it a fresh handle.
func (g *Graph[N, E, ME]) AddNode(node N) NodeHandle {
	h := NodeHandle{index: len(g.nodes)}
	node.SetHandle(h)
	g.nodes = append(g.nodes, node)
	return h
}

// AddEdge appends edge to the arena, wiring it into slotOnNode1 of
// edge.Node1Handle() and slotOnNode2 of edge.Node2Handle(). Fails if the
// endpoints coincide or either named slot is already occupied.
func (g *Graph[N, E, ME]) AddEdge(edge E, slotOnNode1, slotOnNode2 int) (EdgeHandle, error) {
	n1h, n2h := edge.Node1Handle(), edge.Node2Handle()
	if n1h == n2h {
		return EdgeHandle{}, ErrEdgeJoinsSameNode
	}
	n1, err := g.nodePtr(n1h)
	if err != nil {
		return EdgeHandle{}, err
	}
	n2, err := g.nodePtr(n2h)
	if err != nil {
		return EdgeHandle{}, err
	}
	if _, occupied := n1.SlotHandle(slotOnNode1); occupied {
		return EdgeHandle{}, ErrEdgeSlotOccupied
	}
	if _, occupied := n2.SlotHandle(slotOnNode2); occupied {
		return EdgeHandle{}, ErrEdgeSlotOccupied
	}

	h := EdgeHandle{index: len(g.edges)}
	edge.SetHandle(h)
	g.edges = append(g.edges, edge)
	n1.SetSlotHandle(slotOnNode1, h)
	n2.SetSlotHandle(slotOnNode2, h)
	return h, nil
}

// AddMetaEdge appends a meta-edge linking two bonds that must share an
// endpoint.
func (g *Graph[N, E, ME]) AddMetaEdge(me ME) error {
	b1, err := g.Edge(me.Bond1Handle())
	if err != nil {
		return err
	}
	b2, err := g.Edge(me.Bond2Handle())
	if err != nil {
		return err
	}
	if !shareEndpoint(b1, b2) {
		return ErrGussetBondsDisjoint
	}
	g.metaEdges = append(g.metaEdges, me)
	return nil
}

func shareEndpoint(a, b Edge) bool {
	return a.Node1Handle() == b.Node1Handle() || a.Node1Handle() == b.Node2Handle() ||
		a.Node2Handle() == b.Node1Handle() || a.Node2Handle() == b.Node2Handle()
}

// Node returns the node at h.
func (g *Graph[N, E, ME]) Node(h NodeHandle) (N, error) {
	return g.nodePtr(h)
}

func (g *Graph[N, E, ME]) nodePtr(h NodeHandle) (N, error) {
	var zero N
	if h.index < 0 || h.index >= len(g.nodes) {
		return zero, ErrUnknownHandle
	}
	return g.nodes[h.index], nil
}

// Edge returns the edge at h.
func (g *Graph[N, E, ME]) Edge(h EdgeHandle) (E, error) {
	var zero E
	if h.index < 0 || h.index >= len(g.edges) {
		return zero, ErrUnknownHandle
	}
	return g.edges[h.index], nil
}

// Nodes returns the live nodes, in arena order.
func (g *Graph[N, E, ME]) Nodes() []N { return g.nodes }

// Edges returns the live edges, in arena order.
func (g *Graph[N, E, ME]) Edges() []E { return g.edges }

// MetaEdges returns the live meta-edges, in arena order.
func (g *Graph[N, E, ME]) MetaEdges() []ME { return g.metaEdges }

// WithTwoNodes grants f simultaneous access to two distinct nodes. Since
// nodes are pointer-typed, the arena need not split a slice to guarantee
// disjointness — it only has to guarantee the caller didn't pass the same
// handle twice, which is a programming error, not a recoverable one.
func (g *Graph[N, E, ME]) WithTwoNodes(h1, h2 NodeHandle, f func(n1, n2 N)) error {
	mustDistinctNodes(h1, h2)
	n1, err := g.nodePtr(h1)
	if err != nil {
		return err
	}
	n2, err := g.nodePtr(h2)
	if err != nil {
		return err
	}
	f(n1, n2)
	return nil
}

// HaveEdge reports whether n1 and n2 are joined by a live bond.
func (g *Graph[N, E, ME]) HaveEdge(n1, n2 N) bool {
	for slot := 0; slot < MaxSlots; slot++ {
		eh, ok := n1.SlotHandle(slot)
		if !ok {
			continue
		}
		e, err := g.Edge(eh)
		if err != nil {
			continue
		}
		if e.Joins(n1.Handle(), n2.Handle()) {
			return true
		}
	}
	return false
}

// RemoveNodes removes the nodes at handles, which must be sorted
// ascending by index. Removal is swap-with-last; every bond that
// referenced a moved node has its endpoint handle fixed up. Handles in
// handles (and any handle to the former last node) must not be used
// again after this call.
func (g *Graph[N, E, ME]) RemoveNodes(handles []NodeHandle) error {
	if !sort.SliceIsSorted(handles, func(i, j int) bool { return handles[i].index < handles[j].index }) {
		chk.Panic("graph: RemoveNodes handles must be sorted ascending")
	}
	for i := len(handles) - 1; i >= 0; i-- {
		if err := g.removeNode(handles[i]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph[N, E, ME]) removeNode(h NodeHandle) error {
	node, err := g.nodePtr(h)
	if err != nil {
		return err
	}

	var edgeHandles []EdgeHandle
	for slot := 0; slot < MaxSlots; slot++ {
		if eh, ok := node.SlotHandle(slot); ok {
			edgeHandles = append(edgeHandles, eh)
		}
	}
	sort.Slice(edgeHandles, func(i, j int) bool { return edgeHandles[i].index < edgeHandles[j].index })
	if err := g.RemoveEdges(edgeHandles); err != nil {
		return err
	}

	last := len(g.nodes) - 1
	g.nodes[h.index] = g.nodes[last]
	g.nodes = g.nodes[:last]
	if h.index < len(g.nodes) {
		moved := g.nodes[h.index]
		oldHandle := NodeHandle{index: last}
		moved.SetHandle(h)
		g.fixSwappedNodeEdges(moved, oldHandle, h)
	}
	return nil
}

func (g *Graph[N, E, ME]) fixSwappedNodeEdges(node N, oldHandle, newHandle NodeHandle) {
	for slot := 0; slot < MaxSlots; slot++ {
		eh, ok := node.SlotHandle(slot)
		if !ok {
			continue
		}
		e, err := g.Edge(eh)
		if err != nil {
			continue
		}
		e.ReplaceNodeHandle(oldHandle, newHandle)
	}
}

// RemoveEdges removes the edges at handles, which must be sorted
// ascending by index. Any meta-edge that referenced a removed edge is
// itself removed (a deleted bond implicitly invalidates any gusset that
// references it, per the reconciliation rule in §4.6); any meta-edge that
// referenced a merely-renumbered edge has its bond handle fixed up.
func (g *Graph[N, E, ME]) RemoveEdges(handles []EdgeHandle) error {
	if !sort.SliceIsSorted(handles, func(i, j int) bool { return handles[i].index < handles[j].index }) {
		chk.Panic("graph: RemoveEdges handles must be sorted ascending")
	}
	for i := len(handles) - 1; i >= 0; i-- {
		if err := g.removeEdge(handles[i]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph[N, E, ME]) removeEdge(h EdgeHandle) error {
	edge, err := g.Edge(h)
	if err != nil {
		return err
	}

	g.pruneMetaEdgesReferencing(h)

	if n1, err := g.nodePtr(edge.Node1Handle()); err == nil {
		clearMatchingSlot(n1, h)
	}
	if n2, err := g.nodePtr(edge.Node2Handle()); err == nil {
		clearMatchingSlot(n2, h)
	}

	last := len(g.edges) - 1
	g.edges[h.index] = g.edges[last]
	g.edges = g.edges[:last]
	if h.index < len(g.edges) {
		moved := g.edges[h.index]
		oldHandle := EdgeHandle{index: last}
		moved.SetHandle(h)
		g.fixSwappedEdgeReferences(moved, oldHandle, h)
	}
	return nil
}

func clearMatchingSlot(n Node, eh EdgeHandle) {
	for slot := 0; slot < MaxSlots; slot++ {
		if got, ok := n.SlotHandle(slot); ok && got == eh {
			n.ClearSlotHandle(slot)
		}
	}
}

func (g *Graph[N, E, ME]) fixSwappedEdgeReferences(edge E, oldHandle, newHandle EdgeHandle) {
	if n1, err := g.nodePtr(edge.Node1Handle()); err == nil {
		replaceMatchingSlot(n1, oldHandle, newHandle)
	}
	if n2, err := g.nodePtr(edge.Node2Handle()); err == nil {
		replaceMatchingSlot(n2, oldHandle, newHandle)
	}
	for _, me := range g.metaEdges {
		me.ReplaceBondHandle(oldHandle, newHandle)
	}
}

func replaceMatchingSlot(n Node, oldHandle, newHandle EdgeHandle) {
	for slot := 0; slot < MaxSlots; slot++ {
		if got, ok := n.SlotHandle(slot); ok && got == oldHandle {
			n.SetSlotHandle(slot, newHandle)
		}
	}
}

func (g *Graph[N, E, ME]) pruneMetaEdgesReferencing(h EdgeHandle) {
	kept := g.metaEdges[:0]
	for _, me := range g.metaEdges {
		if me.ReferencesBond(h) {
			continue
		}
		kept = append(kept, me)
	}
	g.metaEdges = kept
}
