package qbloch

import (
	"math"
	"math/cmplx"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

// DisplayPrecision is the number of decimals kept when formatting amplitudes.
const DisplayPrecision = 4

/*
Add, Sub, Mul and Conj are the scalar operations the state algebra is built
from. Go's complex128 is already an immutable (re, im) value, so these are
thin and exist mostly to give the gate code a readable vocabulary.
*/
func Add(a, b complex128) complex128 { return a + b }

func Sub(a, b complex128) complex128 { return a - b }

func Mul(a, b complex128) complex128 { return a * b }

func Conj(c complex128) complex128 { return cmplx.Conj(c) }

// Magnitude returns sqrt(re²+im²).
func Magnitude(c complex128) float64 {
	return cmplx.Abs(c)
}

/*
Argument returns atan2(im, re) in the half-open range (-π, π]. The negative
real axis with a negative-zero imaginary part would otherwise come back as -π.
*/
func Argument(c complex128) float64 {
	arg := math.Atan2(imag(c), real(c))
	if arg <= -math.Pi {
		return math.Pi
	}
	return arg
}

/*
FormatComplex renders c as "a + bi" for display, eliding zero terms and
writing a unit imaginary part as a bare "i". Components are rounded to
DisplayPrecision first, so values that only differ from zero by floating
noise are dropped.
*/
func FormatComplex(c complex128) string {
	re := scalar.Round(real(c), DisplayPrecision)
	im := scalar.Round(imag(c), DisplayPrecision)

	switch {
	case re == 0 && im == 0:
		return "0"
	case im == 0:
		return formatReal(re)
	case re == 0:
		return formatImag(im)
	}

	sign := " + "
	if im < 0 {
		sign = " - "
		im = -im
	}

	return formatReal(re) + sign + formatImag(im)
}

// FormatExponential renders c in polar form, r e^{iθ}.
func FormatExponential(c complex128) string {
	r := scalar.Round(Magnitude(c), DisplayPrecision)
	if r == 0 {
		return "0"
	}

	theta := scalar.Round(Argument(c), DisplayPrecision)
	if theta == 0 {
		return formatReal(r)
	}

	prefix := formatReal(r) + " "
	if r == 1 {
		prefix = ""
	}

	return prefix + "e^{" + formatReal(theta) + "i}"
}

func formatReal(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func formatImag(x float64) string {
	switch x {
	case 1:
		return "i"
	case -1:
		return "-i"
	}
	return formatReal(x) + "i"
}
