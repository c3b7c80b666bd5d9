package qbloch

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

/*
Qubit is the state vector α|0⟩ + β|1⟩. It is a value: applying a gate returns
a new Qubit and never mutates the receiver.

No renormalization happens after a gate. The gate set is unitary so the norm
stays at 1 up to floating error, which stays well inside 1e-9 for the gate
sequences a visualizer produces.
*/
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

// Ket0 is the |0⟩ state every view starts from.
var Ket0 = Qubit{alpha: 1, beta: 0}

// Ket1 is the |1⟩ state.
var Ket1 = Qubit{alpha: 0, beta: 1}

// NewQubit builds a state from raw amplitudes. The caller owns normalization.
func NewQubit(alpha, beta complex128) Qubit {
	return Qubit{alpha: alpha, beta: beta}
}

// MulVec2 is the matrix–vector product m·q.
func MulVec2(m Matrix, q Qubit) Qubit {
	return Qubit{
		alpha: Add(Mul(m[0][0], q.alpha), Mul(m[0][1], q.beta)),
		beta:  Add(Mul(m[1][0], q.alpha), Mul(m[1][1], q.beta)),
	}
}

// Apply returns the state after g.
func (q Qubit) Apply(g Gate) Qubit {
	return MulVec2(g.Matrix(), q)
}

func (q Qubit) Alpha() complex128 { return q.alpha }
func (q Qubit) Beta() complex128  { return q.beta }

// Norm returns |α|²+|β|².
func (q Qubit) Norm() float64 {
	a, b := Magnitude(q.alpha), Magnitude(q.beta)
	return a*a + b*b
}

// Probabilities returns the measurement probabilities of |0⟩ and |1⟩.
func (q Qubit) Probabilities() (p0, p1 float64) {
	a, b := Magnitude(q.alpha), Magnitude(q.beta)
	return a * a, b * b
}

/*
BlochVector maps the state onto the unit sphere:

	x = 2·Re(ᾱβ), y = 2·Im(ᾱβ), z = |α|² − |β|²

Global phase drops out, so states that differ only by phase share a point.
*/
func (q Qubit) BlochVector() r3.Vec {
	cross := Mul(Conj(q.alpha), q.beta)
	p0, p1 := q.Probabilities()
	return r3.Vec{
		X: 2 * real(cross),
		Y: 2 * imag(cross),
		Z: p0 - p1,
	}
}

// Equal compares amplitudes component-wise within tol.
func (q Qubit) Equal(other Qubit, tol float64) bool {
	return cmplx.Abs(q.alpha-other.alpha) <= tol && cmplx.Abs(q.beta-other.beta) <= tol
}

// Normalized rescales the state to unit norm. Nothing in the gate path calls it.
func (q Qubit) Normalized() Qubit {
	n := math.Sqrt(q.Norm())
	if n == 0 {
		return Ket0
	}
	scale := complex(1/n, 0)
	return Qubit{alpha: q.alpha * scale, beta: q.beta * scale}
}

// LaTeX renders the state as a column vector for display.
func (q Qubit) LaTeX() string {
	return fmt.Sprintf(
		`\begin{bmatrix} %s \\ %s \end{bmatrix}`,
		FormatComplex(q.alpha),
		FormatComplex(q.beta),
	)
}

func (q Qubit) String() string {
	return fmt.Sprintf("(%s)|0⟩ + (%s)|1⟩", FormatComplex(q.alpha), FormatComplex(q.beta))
}

// Histogram counts measurement outcomes in the computational basis.
type Histogram struct {
	Zero  int
	One   int
	Shots int

	p0, p1 float64
}

/*
Sample simulates shots measurements of the state without collapsing it. Each
shot walks the cumulative probabilities and picks the first basis state whose
running total reaches the random draw.
*/
func (q Qubit) Sample(rng *rand.Rand, shots int) Histogram {
	p0, p1 := q.Probabilities()
	h := Histogram{Shots: shots, p0: p0, p1: p1}

	total := p0 + p1
	if total == 0 || shots <= 0 {
		return h
	}

	for range shots {
		if rng.Float64()*total <= p0 {
			h.Zero++
			continue
		}
		h.One++
	}

	return h
}

// Estimates returns the expected counts for the histogram's shot total.
func (h Histogram) Estimates() (zero, one float64) {
	return h.p0 * float64(h.Shots), h.p1 * float64(h.Shots)
}
