package qbloch

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultPathResolution is the number of steps a rotation path is cut into.
const DefaultPathResolution = 64

/*
MarkerHandle indexes a marker in a renderer-owned table. The engine never holds
the marker itself, only whether one exists for a keyframe.
*/
type MarkerHandle int

// NoMarker means the renderer has not drawn anything for a keyframe yet.
const NoMarker MarkerHandle = -1

// Keyframe is one discrete step of a rotation path.
type Keyframe struct {
	T           float64
	Orientation quat.Number
	Point       r3.Vec
	Marker      MarkerHandle
}

// Rendered reports whether a marker exists for the keyframe.
func (k Keyframe) Rendered() bool {
	return k.Marker != NoMarker
}

/*
Rotation is the answer to "where is the marker at progress t of this gate".
Reached counts the leading keyframes with T ≤ Progress; Path[:Reached] is the
part of the path already swept.
*/
type Rotation struct {
	Gate        AppliedGate
	Progress    float64
	Orientation quat.Number
	Point       r3.Vec
	Path        []Keyframe
	Reached     int
}

type rotationPath struct {
	gate      AppliedGate
	from      quat.Number
	to        quat.Number
	keyframes []Keyframe
}

/*
Engine turns applied gates into orientation paths on the unit sphere. It knows
nothing about wall-clock time; callers hand it a progress fraction.

Rotations are composed in the lab frame: the target of a gate is the gate's
axis-angle rotation left-multiplied onto the current orientation, so gate axes
stay fixed no matter what came before.

Engine is not safe for concurrent use; the Animator that owns it serializes
access.
*/
type Engine struct {
	resolution int
	current    quat.Number
	active     *rotationPath
}

// NewEngine returns an engine at Identity. A resolution below 1 uses the default.
func NewEngine(resolution int) *Engine {
	if resolution < 1 {
		resolution = DefaultPathResolution
	}

	return &Engine{
		resolution: resolution,
		current:    Identity,
	}
}

// Current returns the last committed orientation.
func (e *Engine) Current() quat.Number {
	return e.current
}

// Point returns the marker position for the committed orientation.
func (e *Engine) Point() r3.Vec {
	return RotatePoint(e.current, NorthPole)
}

// Resolution returns the number of steps per path.
func (e *Engine) Resolution() int {
	return e.resolution
}

/*
RotationAt returns the orientation at progress t through g, clamped to [0,1].

The first call for a gate sequence number builds its path starting from the
committed orientation. t == 0 yields exactly that start, t == 1 yields exactly
the target and commits it as the base for the next gate.
*/
func (e *Engine) RotationAt(g AppliedGate, t float64) Rotation {
	t = math.Max(0, math.Min(1, t))
	path := e.pathFor(g)

	var orientation quat.Number
	switch t {
	case 0:
		orientation = path.from
	case 1:
		orientation = path.to
		e.current = path.to
	default:
		orientation = Slerp(path.from, path.to, t)
	}

	reached := int(math.Floor(t*float64(e.resolution))) + 1
	if reached > len(path.keyframes) {
		reached = len(path.keyframes)
	}

	keyframes := make([]Keyframe, len(path.keyframes))
	copy(keyframes, path.keyframes)

	return Rotation{
		Gate:        g,
		Progress:    t,
		Orientation: orientation,
		Point:       RotatePoint(orientation, NorthPole),
		Path:        keyframes,
		Reached:     reached,
	}
}

/*
MarkRendered records the renderer's handle for keyframe index of the in-flight
path of g. It returns false when g is no longer in flight or index is out of
range, which happens when a reset lands between two frames.
*/
func (e *Engine) MarkRendered(g AppliedGate, index int, handle MarkerHandle) bool {
	if e.active == nil || e.active.gate.Seq != g.Seq {
		return false
	}
	if index < 0 || index >= len(e.active.keyframes) {
		return false
	}

	e.active.keyframes[index].Marker = handle
	return true
}

// Reset returns to Identity and forgets the in-flight path.
func (e *Engine) Reset() {
	e.current = Identity
	e.active = nil
}

func (e *Engine) pathFor(g AppliedGate) *rotationPath {
	if e.active != nil && e.active.gate.Seq == g.Seq {
		return e.active
	}

	from := e.current
	to := quat.Mul(AxisAngle(g.Axis(), g.Angle()), from)

	keyframes := make([]Keyframe, e.resolution+1)
	for i := range keyframes {
		t := float64(i) / float64(e.resolution)

		var orientation quat.Number
		switch i {
		case 0:
			orientation = from
		case e.resolution:
			orientation = to
		default:
			orientation = Slerp(from, to, t)
		}

		keyframes[i] = Keyframe{
			T:           t,
			Orientation: orientation,
			Point:       RotatePoint(orientation, NorthPole),
			Marker:      NoMarker,
		}
	}

	e.active = &rotationPath{
		gate:      g,
		from:      from,
		to:        to,
		keyframes: keyframes,
	}

	return e.active
}
