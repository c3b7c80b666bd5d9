package qbloch

import (
	"math/rand/v2"
	"sync"

	"github.com/theapemachine/errnie"
)

// ViewOption configures a View.
type ViewOption func(*View)

func WithConfig(config *Config) ViewOption {
	return func(v *View) {
		v.config = config
	}
}

func WithClock(clock Clock) ViewOption {
	return func(v *View) {
		v.clock = clock
	}
}

func WithScheduler(scheduler Scheduler) ViewOption {
	return func(v *View) {
		v.scheduler = scheduler
	}
}

func WithRenderer(renderer Renderer) ViewOption {
	return func(v *View) {
		v.renderer = renderer
	}
}

func WithDiagnostics(diagnostics Diagnostics) ViewOption {
	return func(v *View) {
		v.diagnostics = diagnostics
	}
}

/*
View is one Bloch-sphere instance: its qubit, its animation queue, the names
of the gates applied so far and its display options. Nothing is shared between
views, so a host can create and drop them freely.
*/
type View struct {
	mu sync.Mutex

	config      *Config
	clock       Clock
	scheduler   Scheduler
	renderer    Renderer
	diagnostics Diagnostics

	qubit         Qubit
	history       []string
	showEstimates bool
	animator      *Animator
	metrics       *Metrics
}

// NewView creates a view at |0⟩. Unset options fall back to the Animator's defaults.
func NewView(opts ...ViewOption) *View {
	v := &View{
		qubit:   Ket0,
		metrics: NewMetrics(),
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.config == nil {
		v.config = NewConfig()
	}
	if v.diagnostics == nil {
		v.diagnostics = LogDiagnostics{}
	}

	v.showEstimates = v.config.ShowEstimates
	v.animator = NewAnimator(v.config, v.clock, v.scheduler, v.renderer, v.metrics)

	errnie.Info("qbloch: view created, rotation %v, resolution %d", v.config.RotationDuration, v.config.PathResolution)
	return v
}

/*
Apply updates the state with the named gate and queues its animation. An
unknown name is reported once to the view's Diagnostics and returned; the
state, history and queue are left exactly as they were.
*/
func (v *View) Apply(name string) error {
	gate, err := ParseGate(name)
	if err != nil {
		v.diagnostics.Report(err)
		v.metrics.recordRejected()
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.qubit = v.qubit.Apply(gate)
	v.history = append(v.history, gate.String())
	v.animator.Queue(gate)

	return nil
}

// Reset returns the view to |0⟩ with no history, no trail and an idle queue.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.qubit = Ket0
	v.history = nil
	v.animator.Reset()

	errnie.Info("qbloch: view reset")
}

// State returns the current qubit.
func (v *View) State() Qubit {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.qubit
}

// History returns the applied gate names in order.
func (v *View) History() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]string, len(v.history))
	copy(out, v.history)
	return out
}

func (v *View) Animator() *Animator {
	return v.animator
}

func (v *View) Metrics() *Metrics {
	return v.metrics
}

func (v *View) SetShowEstimates(show bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showEstimates = show
}

/*
Estimates samples the current state for the configured number of shots. It
reports false when estimates are switched off for this view.
*/
func (v *View) Estimates(rng *rand.Rand) (Histogram, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.showEstimates {
		return Histogram{}, false
	}
	return v.qubit.Sample(rng, v.config.Shots), true
}
