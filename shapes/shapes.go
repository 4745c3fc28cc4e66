// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shapes implements §4.3's circle primitive, bounding-box
// derivation, wall overlap, and the sweep-by-min-x pair-overlap finder.
package shapes

import (
	"math"

	"github.com/fgamador/evo-sim/quantities"
)

// Circle is anything with a center and a radius: a cell, given its outer
// radius.
type Circle interface {
	Center() quantities.Vec2
	Radius() quantities.Length
}

// BoundingBox is the axis-aligned box enclosing a Circle.
type BoundingBox struct {
	MinCorner, MaxCorner quantities.Vec2
}

// ToBoundingBox derives c's bounding box from its center and radius.
func ToBoundingBox(c Circle) BoundingBox {
	r := float64(c.Radius())
	return BoundingBox{
		MinCorner: quantities.NewVec2(c.Center().X-r, c.Center().Y-r),
		MaxCorner: quantities.NewVec2(c.Center().X+r, c.Center().Y+r),
	}
}

// MinX returns c's bounding box's minimum x, the sweep key used by
// FindPairOverlaps.
func MinX(c Circle) float64 {
	return c.Center().X - float64(c.Radius())
}

// MaxX returns c's bounding box's maximum x.
func MaxX(c Circle) float64 {
	return c.Center().X + float64(c.Radius())
}

// Overlap is an incursion vector plus the width of the contact (the
// smaller of the two radii for a pair overlap, or the cell's own radius
// for a wall overlap).
type Overlap struct {
	Incursion quantities.Vec2
	Width     float64
}

// Neg returns the overlap as seen from the other side of the contact.
func (o Overlap) Neg() Overlap {
	return Overlap{Incursion: o.Incursion.Neg(), Width: o.Width}
}

// Magnitude returns the incursion vector's length.
func (o Overlap) Magnitude() float64 {
	return o.Incursion.Magnitude()
}

// WallOverlap computes c's incursion past the walls bounded by minCorner
// and maxCorner, if any. Per axis: incursion = max(0, minWall − boxMin) +
// min(0, maxWall − boxMax).
func WallOverlap(c Circle, minCorner, maxCorner quantities.Vec2) (Overlap, bool) {
	box := ToBoundingBox(c)
	minIncursion := minCorner.Sub(box.MinCorner).Max(quantities.Zero2)
	maxIncursion := maxCorner.Sub(box.MaxCorner).Min(quantities.Zero2)
	incursion := minIncursion.Add(maxIncursion)
	if incursion.IsZero() {
		return Overlap{}, false
	}
	return Overlap{Incursion: incursion, Width: float64(c.Radius())}, true
}

// PairOverlap computes the overlap between two circles, if their disks
// actually intersect. Centers exactly coincident produce no overlap:
// there is no direction to separate them in.
func PairOverlap(c1, c2 Circle) (Overlap, bool) {
	xOffset := c1.Center().X - c2.Center().X
	yOffset := c1.Center().Y - c2.Center().Y
	justTouching := float64(c1.Radius()) + float64(c2.Radius())

	if absF(xOffset) >= justTouching || absF(yOffset) >= justTouching {
		return Overlap{}, false
	}

	centerSepSqr := xOffset*xOffset + yOffset*yOffset
	if centerSepSqr >= justTouching*justTouching || centerSepSqr == 0 {
		return Overlap{}, false
	}

	centerSep := math.Sqrt(centerSepSqr)
	overlapMag := justTouching - centerSep
	incursion := quantities.NewVec2(
		(xOffset/centerSep)*overlapMag,
		(yOffset/centerSep)*overlapMag,
	)
	width := float64(c1.Radius())
	if float64(c2.Radius()) < width {
		width = float64(c2.Radius())
	}
	return Overlap{Incursion: incursion, Width: width}, true
}

func absF(v float64) float64 {
	return math.Abs(v)
}
