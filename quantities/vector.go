// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quantities

import (
	"fmt"
	"math"
)

// Vec2 is a 2D value: position, displacement, velocity, acceleration,
// delta-v, impulse or force, depending on context. Keeping one underlying
// representation (rather than a distinct type per use) mirrors the
// original's Value2D and avoids a combinatorial explosion of near-identical
// vector types; callers name the quantity through the field/parameter name.
type Vec2 struct {
	X, Y float64
}

// Zero2 is the zero vector.
var Zero2 = Vec2{0, 0}

// NewVec2 builds a Vec2 from components.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// PolarVec2 builds a Vec2 of the given magnitude at the given angle
// (counterclockwise from the positive x-axis).
func PolarVec2(magnitude float64, angle Angle) Vec2 {
	return Vec2{
		X: magnitude * math.Cos(float64(angle)),
		Y: magnitude * math.Sin(float64(angle)),
	}
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Max returns the component-wise max of v and w.
func (v Vec2) Max(w Vec2) Vec2 {
	return Vec2{math.Max(v.X, w.X), math.Max(v.Y, w.Y)}
}

// Min returns the component-wise min of v and w.
func (v Vec2) Min(w Vec2) Vec2 {
	return Vec2{math.Min(v.X, w.X), math.Min(v.Y, w.Y)}
}

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// DotSqr returns v's squared magnitude (v·v).
func (v Vec2) DotSqr() float64 {
	return v.Dot(v)
}

// Magnitude returns |v|.
func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// ProjectOnto returns the projection of v onto w; zero if w is the zero
// vector (no direction to project onto).
func (v Vec2) ProjectOnto(w Vec2) Vec2 {
	sqr := w.DotSqr()
	if sqr == 0 {
		return Zero2
	}
	return w.Scale(v.Dot(w) / sqr)
}

// Angle returns v's angle from the positive x-axis, normalized to [0, 2π).
func (v Vec2) Angle() Angle {
	return NormalizeAngle(Angle(math.Atan2(v.Y, v.X)))
}

// IsZero reports whether v is exactly the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}
