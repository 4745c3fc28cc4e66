// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph implements §4.1: an arena of nodes keyed by stable
// handles, an arena of edges keyed by handles, and a list of meta-edges
// (edges between edges, used for bond-angle gussets). Handles are lookup
// keys, not owning references: they can be invalidated by any structural
// edit and must never be retained across one.
package graph

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// MaxSlots is MAX_BONDS: the number of bond positions a node carries.
const MaxSlots = 8

// NodeHandle indexes a live slot in a Graph's node arena.
type NodeHandle struct{ index int }

// NewNodeHandle wraps a raw arena index. Exposed for embedders that
// reconstruct handles from a saved index (e.g. scenario setup).
func NewNodeHandle(index int) NodeHandle { return NodeHandle{index} }

// Index returns the raw arena index.
func (h NodeHandle) Index() int { return h.index }

func (h NodeHandle) String() string { return fmt.Sprintf("#%d", h.index) }

// EdgeHandle indexes a live slot in a Graph's edge arena.
type EdgeHandle struct{ index int }

// NewEdgeHandle wraps a raw arena index.
func NewEdgeHandle(index int) EdgeHandle { return EdgeHandle{index} }

// Index returns the raw arena index.
func (h EdgeHandle) Index() int { return h.index }

func (h EdgeHandle) String() string { return fmt.Sprintf("#%d", h.index) }

// Node is implemented by node payload types (always via a pointer
// receiver, so the graph can mutate nodes in place) to expose their
// handle and bond-slot array to the graph.
type Node interface {
	Handle() NodeHandle
	SetHandle(NodeHandle)
	SlotHandle(slot int) (EdgeHandle, bool)
	SetSlotHandle(slot int, h EdgeHandle)
	ClearSlotHandle(slot int)
}

// Edge is implemented by edge payload types.
type Edge interface {
	Handle() EdgeHandle
	SetHandle(EdgeHandle)
	Node1Handle() NodeHandle
	Node2Handle() NodeHandle
	ReplaceNodeHandle(old, new NodeHandle)
	Joins(n1, n2 NodeHandle) bool
}

// MetaEdge is implemented by meta-edge payload types (bond-angle
// gussets): a meta-edge references two edges by handle.
type MetaEdge interface {
	Bond1Handle() EdgeHandle
	Bond2Handle() EdgeHandle
	ReplaceBondHandle(old, new EdgeHandle)
	ReferencesBond(h EdgeHandle) bool
}

func mustDistinctNodes(h1, h2 NodeHandle) {
	if h1 == h2 {
		chk.Panic("graph: WithTwoNodes called with the same handle twice: %v", h1)
	}
}
