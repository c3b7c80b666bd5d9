package qbloch

import (
	"sync"
	"time"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// AnimatorState is either Idle or Running.
type AnimatorState int

const (
	Idle AnimatorState = iota
	Running
)

func (s AnimatorState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// TrailPoint is a visited position with its recency weight, 1 being newest.
type TrailPoint struct {
	Point  r3.Vec
	Marker MarkerHandle
	Weight float64
}

// Marker pairs a renderer handle with where it was placed.
type Marker struct {
	Handle MarkerHandle
	Point  r3.Vec
}

/*
Frame is what the Animator publishes on every tick. Trail is the whole trail
re-weighted for this frame; NewMarkers lists only the markers created during
it. Cleared frames are sent by renderers that fan frames out, on reset.
*/
type Frame struct {
	Gate        AppliedGate
	Progress    float64
	Orientation quat.Number
	Point       r3.Vec
	Trail       []TrailPoint
	NewMarkers  []Marker
	Complete    bool
	Queued      int
	Cleared     bool
}

/*
Renderer owns every drawable object. The Animator asks it to place markers and
tells it what to show, and calls it while holding its own lock, so a Renderer
must never call back into the Animator. AddMarker must return a handle other
than NoMarker.
*/
type Renderer interface {
	AddMarker(point r3.Vec) MarkerHandle
	Render(frame Frame)
	Clear()
}

type activeGate struct {
	gate  AppliedGate
	start time.Time
}

/*
Animator is a single-consumer queue of applied gates driven by frame
callbacks. While Running it requests one frame at a time from its Scheduler;
each frame advances the active gate by wall-clock time and publishes the
result. Once the queue drains it goes Idle and stops requesting frames.

Queue and Reset are safe from any goroutine. Frames never run concurrently
with each other or with those calls.
*/
type Animator struct {
	mu sync.Mutex

	config    *Config
	clock     Clock
	scheduler Scheduler
	renderer  Renderer
	engine    *Engine
	metrics   *Metrics
	easing    Easing
	fade      Easing

	state      AnimatorState
	pending    []AppliedGate
	active     *activeGate
	trail      []TrailPoint
	seq        uint64
	generation uint64
}

/*
NewAnimator wires an animator. A nil config uses NewConfig, a nil clock the
system clock, a nil scheduler a ManualScheduler, a nil renderer discards
output and nil metrics are created fresh.
*/
func NewAnimator(config *Config, clock Clock, scheduler Scheduler, renderer Renderer, metrics *Metrics) *Animator {
	if config == nil {
		config = NewConfig()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if scheduler == nil {
		scheduler = NewManualScheduler()
	}
	if renderer == nil {
		renderer = &discardRenderer{}
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	return &Animator{
		config:    config,
		clock:     clock,
		scheduler: scheduler,
		renderer:  renderer,
		engine:    NewEngine(config.PathResolution),
		metrics:   metrics,
		easing:    EaseInOutCubic,
		fade:      EaseOutQuad,
		state:     Idle,
	}
}

/*
Queue appends g behind any pending gates. From Idle it switches to Running
and requests the first frame; otherwise the gate waits its turn.
*/
func (a *Animator) Queue(g Gate) AppliedGate {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.seq++
	applied := AppliedGate{Seq: a.seq, Gate: g}
	a.pending = append(a.pending, applied)
	a.metrics.recordQueued()

	if a.state == Idle {
		a.state = Running
		a.requestFrame(a.generation)
	}

	return applied
}

/*
Reset drops pending and in-flight work, clears the trail and returns the
engine to its start orientation. A frame callback that was already requested
still fires but sees a newer generation and does nothing.
*/
func (a *Animator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = nil
	a.active = nil
	a.trail = nil
	a.engine.Reset()
	a.state = Idle
	a.generation++

	a.renderer.Clear()
	a.metrics.recordReset()
}

func (a *Animator) State() AnimatorState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Pending returns the number of gates waiting behind the active one.
func (a *Animator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Active returns the gate currently animating, if any.
func (a *Animator) Active() (AppliedGate, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active == nil {
		return AppliedGate{}, false
	}
	return a.active.gate, true
}

// Trail returns a copy of the visited positions, oldest first.
func (a *Animator) Trail() []TrailPoint {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.copyTrail()
}

// Orientation returns the engine's committed orientation.
func (a *Animator) Orientation() quat.Number {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Current()
}

func (a *Animator) requestFrame(generation uint64) {
	a.scheduler.RequestFrame(func() {
		a.frame(generation)
	})
}

func (a *Animator) frame(generation uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if generation != a.generation || a.state != Running {
		return
	}

	if a.advance() {
		a.requestFrame(generation)
	}
}

// advance runs one frame and reports whether another is needed. Callers hold mu.
func (a *Animator) advance() bool {
	if a.active == nil {
		if len(a.pending) == 0 {
			a.goIdle()
			return false
		}

		next := a.pending[0]
		a.pending = a.pending[1:]
		a.active = &activeGate{gate: next, start: a.clock.Now()}
		errnie.Info("qbloch: animating %v #%d", next.Gate, next.Seq)
	}

	elapsed := a.clock.Now().Sub(a.active.start)
	x := float64(elapsed) / float64(a.config.RotationDuration)

	t := 1.0
	if x < 1 {
		t = a.easing(x)
	}

	rotation := a.engine.RotationAt(a.active.gate, t)

	var created []Marker
	for i := 1; i < rotation.Reached; i++ {
		keyframe := rotation.Path[i]
		if keyframe.Rendered() {
			continue
		}

		handle := a.renderer.AddMarker(keyframe.Point)
		a.engine.MarkRendered(rotation.Gate, i, handle)
		a.trail = append(a.trail, TrailPoint{Point: keyframe.Point, Marker: handle})
		created = append(created, Marker{Handle: handle, Point: keyframe.Point})
	}

	a.weighTrail()

	complete := t >= 1
	a.renderer.Render(Frame{
		Gate:        rotation.Gate,
		Progress:    t,
		Orientation: rotation.Orientation,
		Point:       rotation.Point,
		Trail:       a.copyTrail(),
		NewMarkers:  created,
		Complete:    complete,
		Queued:      len(a.pending),
	})
	a.metrics.recordFrame()

	if !complete {
		return true
	}

	errnie.Info("qbloch: completed %v #%d after %v", rotation.Gate.Gate, rotation.Gate.Seq, elapsed)
	a.metrics.recordCompleted(elapsed)
	a.active = nil

	if len(a.pending) == 0 {
		a.goIdle()
		return false
	}

	return true
}

func (a *Animator) goIdle() {
	a.state = Idle
	errnie.Info("qbloch: animation queue drained")
}

// weighTrail fades entries by their position, oldest faintest.
func (a *Animator) weighTrail() {
	n := float64(len(a.trail))
	for i := range a.trail {
		a.trail[i].Weight = a.fade(float64(i+1) / n)
	}
}

func (a *Animator) copyTrail() []TrailPoint {
	out := make([]TrailPoint, len(a.trail))
	copy(out, a.trail)
	return out
}

// discardRenderer hands out handles so keyframes still count as visited.
type discardRenderer struct {
	next MarkerHandle
}

func (d *discardRenderer) AddMarker(r3.Vec) MarkerHandle {
	handle := d.next
	d.next++
	return handle
}

func (d *discardRenderer) Render(Frame) {}
func (d *discardRenderer) Clear()       { d.next = 0 }
