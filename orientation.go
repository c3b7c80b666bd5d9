package qbloch

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the orientation that leaves the marker on the north pole.
var Identity = quat.Number{Real: 1}

// NorthPole is the Bloch-sphere point of |0⟩.
var NorthPole = r3.Vec{Z: 1}

// AxisAngle builds the unit quaternion rotating by angle radians about axis.
func AxisAngle(axis r3.Vec, angle float64) quat.Number {
	u := r3.Unit(axis)
	s := math.Sin(angle / 2)

	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: s * u.X,
		Jmag: s * u.Y,
		Kmag: s * u.Z,
	}
}

// RotatePoint returns q·p·q*, with p raised to a pure quaternion.
func RotatePoint(q quat.Number, p r3.Vec) r3.Vec {
	pp := quat.Mul(quat.Mul(q, quat.Number{Imag: p.X, Jmag: p.Y, Kmag: p.Z}), quat.Conj(q))
	return r3.Vec{X: pp.Imag, Y: pp.Jmag, Z: pp.Kmag}
}

// Normalize scales q to unit length. The zero quaternion maps to Identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return Identity
	}
	return quat.Scale(1/n, q)
}

/*
Slerp interpolates between unit quaternions a and b at fraction t.

Unlike the usual shortest-arc variant it never negates b when the dot product
is negative. Gate angles are at most π, so a and b are never more than a
quarter turn apart in quaternion space, and keeping the sign means a π
rotation sweeps in the gate's own direction instead of whichever way rounding
happens to pick.
*/
func Slerp(a, b quat.Number, t float64) quat.Number {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	dot = math.Max(-1, math.Min(1, dot))

	theta := math.Acos(dot)
	sin := math.Sin(theta)

	if sin < 1e-9 {
		lerp := quat.Add(quat.Scale(1-t, a), quat.Scale(t, b))
		if quat.Abs(lerp) == 0 {
			return a
		}
		return Normalize(lerp)
	}

	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin

	return quat.Add(quat.Scale(wa, a), quat.Scale(wb, b))
}

// QuatEqual compares quaternions component-wise within tol.
func QuatEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) <= tol &&
		math.Abs(a.Imag-b.Imag) <= tol &&
		math.Abs(a.Jmag-b.Jmag) <= tol &&
		math.Abs(a.Kmag-b.Kmag) <= tol
}

// VecEqual compares vectors component-wise within tol.
func VecEqual(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}
