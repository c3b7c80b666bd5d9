package qbloch

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Matrix is a 2×2 complex matrix in row-major order.
type Matrix [2][2]complex128

// Gate identifies one of the supported single-qubit gates.
type Gate uint8

const (
	GateX Gate = iota
	GateY
	GateZ
	GateS
	GateT
	GateH
)

// Gates lists every supported gate in display order.
var Gates = []Gate{GateX, GateY, GateZ, GateS, GateT, GateH}

var (
	matrixX = Matrix{
		{0, 1},
		{1, 0},
	}
	matrixY = Matrix{
		{0, -1i},
		{1i, 0},
	}
	matrixZ = Matrix{
		{1, 0},
		{0, -1},
	}
	matrixS = Matrix{
		{1, 0},
		{0, 1i},
	}
	matrixT = Matrix{
		{1, 0},
		{0, cmplx.Exp(complex(0, math.Pi/4))},
	}
	matrixH = Matrix{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}

	// hadamardAxis sits halfway between X and Z.
	hadamardAxis = r3.Unit(r3.Vec{X: 1, Z: 1})
)

/*
ParseGate turns a caller-supplied name into a Gate. This is the only place a
free-form string enters the system, so it is also the only place that can
fail: everything downstream switches over the closed Gate set.
*/
func ParseGate(name string) (Gate, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "X":
		return GateX, nil
	case "Y":
		return GateY, nil
	case "Z":
		return GateZ, nil
	case "S":
		return GateS, nil
	case "T":
		return GateT, nil
	case "H":
		return GateH, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}

func (g Gate) String() string {
	switch g {
	case GateX:
		return "X"
	case GateY:
		return "Y"
	case GateZ:
		return "Z"
	case GateS:
		return "S"
	case GateT:
		return "T"
	case GateH:
		return "H"
	}
	return fmt.Sprintf("Gate(%d)", uint8(g))
}

// Matrix returns the gate's unitary.
func (g Gate) Matrix() Matrix {
	switch g {
	case GateX:
		return matrixX
	case GateY:
		return matrixY
	case GateZ:
		return matrixZ
	case GateS:
		return matrixS
	case GateT:
		return matrixT
	case GateH:
		return matrixH
	}
	panic(fmt.Sprintf("qbloch: matrix for invalid %v", g))
}

// Axis returns the lab-frame Bloch-sphere axis the gate rotates about.
func (g Gate) Axis() r3.Vec {
	switch g {
	case GateX:
		return r3.Vec{X: 1}
	case GateY:
		return r3.Vec{Y: 1}
	case GateZ, GateS, GateT:
		return r3.Vec{Z: 1}
	case GateH:
		return hadamardAxis
	}
	panic(fmt.Sprintf("qbloch: axis for invalid %v", g))
}

// Angle returns the rotation angle about Axis, in radians.
func (g Gate) Angle() float64 {
	switch g {
	case GateX, GateY, GateZ, GateH:
		return math.Pi
	case GateS:
		return math.Pi / 2
	case GateT:
		return math.Pi / 4
	}
	panic(fmt.Sprintf("qbloch: angle for invalid %v", g))
}

/*
AppliedGate is one request to apply a gate. Seq is assigned by the Animator
and is what the rotation engine uses to tell two back-to-back requests for the
same gate apart.
*/
type AppliedGate struct {
	Seq  uint64
	Gate Gate
}

func (ag AppliedGate) Axis() r3.Vec   { return ag.Gate.Axis() }
func (ag AppliedGate) Angle() float64 { return ag.Gate.Angle() }
