package qbloch

import "errors"

var (
	// ErrUnknownGate is returned when a gate name is not one of X, Y, Z, S, T, H.
	ErrUnknownGate = errors.New("unknown gate")

	ErrInvalidConfig = errors.New("invalid config")
)
