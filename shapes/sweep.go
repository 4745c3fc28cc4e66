// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import "sort"

// PairOverlapResult holds the two items of an overlapping pair (Item1
// has the lower MinX) together with the overlap as seen from each.
type PairOverlapResult[T any] struct {
	Item1, Item2 T
	Overlap1     Overlap // as seen from Item1
	Overlap2     Overlap // as seen from Item2 (== Overlap1.Neg())
}

// FindPairOverlaps sweeps a copy of items sorted ascending by MinX: for
// each i, scan j > i until MinX(items[j]) >= MaxX(items[i]) (the sweep
// predicate that makes this cheaper than the naive O(n²) pair check),
// skipping any pair already joined (per alreadyJoined) and any pair
// whose bounding boxes/circles don't actually overlap. items itself is
// left untouched — callers (e.g. a graph's live node arena) rely on
// their slice's order and indices surviving this call unchanged.
func FindPairOverlaps[T Circle](items []T, alreadyJoined func(a, b T) bool) []PairOverlapResult[T] {
	items = append([]T(nil), items...)
	sort.Slice(items, func(i, j int) bool { return MinX(items[i]) < MinX(items[j]) })

	var results []PairOverlapResult[T]
	for i := 0; i < len(items); i++ {
		maxXi := MaxX(items[i])
		for j := i + 1; j < len(items); j++ {
			if MinX(items[j]) >= maxXi {
				break
			}
			if alreadyJoined(items[i], items[j]) {
				continue
			}
			overlap, ok := PairOverlap(items[i], items[j])
			if !ok {
				continue
			}
			results = append(results, PairOverlapResult[T]{
				Item1: items[i], Item2: items[j],
				Overlap1: overlap, Overlap2: overlap.Neg(),
			})
		}
	}
	return results
}
