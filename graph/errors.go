// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "errors"

// Errors returned by Graph operations. These are recoverable, caller-
// facing conditions (a stale handle, a bad scenario wiring), so they come
// back as plain errors rather than panics — unlike the programming-error
// panics in handle.go and elsewhere in the core.
var (
	// ErrUnknownHandle is returned when a handle does not index a live slot.
	ErrUnknownHandle = errors.New("graph: unknown handle")

	// ErrEdgeSlotOccupied is returned by AddEdge when the named slot on an
	// endpoint already holds a bond.
	ErrEdgeSlotOccupied = errors.New("graph: edge slot already occupied")

	// ErrEdgeJoinsSameNode is returned by AddEdge when both endpoints are
	// the same node.
	ErrEdgeJoinsSameNode = errors.New("graph: edge cannot join a node to itself")

	// ErrGussetBondsDisjoint is returned by AddMetaEdge when the two
	// gusseted bonds do not share an endpoint.
	ErrGussetBondsDisjoint = errors.New("graph: gusset bonds do not share a node")
)
