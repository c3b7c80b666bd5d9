package qbloch

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

func TestView(t *testing.T) {
	Convey("Given a view with recorded diagnostics", t, func() {
		clock := NewManualClock(epoch)
		scheduler := NewManualScheduler()
		renderer := newRecordingRenderer()
		diagnostics := &DiagnosticRecorder{}

		view := NewView(
			WithClock(clock),
			WithScheduler(scheduler),
			WithRenderer(renderer),
			WithDiagnostics(diagnostics),
		)

		So(view.State().Equal(Ket0, 0), ShouldBeTrue)
		So(view.History(), ShouldBeEmpty)

		Convey("When applying a known gate", func() {
			So(view.Apply("H"), ShouldBeNil)

			Convey("The state should update immediately and the gate should be queued", func() {
				invSqrt2 := complex(1/math.Sqrt2, 0)
				So(view.State().Equal(NewQubit(invSqrt2, invSqrt2), tolerance), ShouldBeTrue)
				So(view.History(), ShouldResemble, []string{"H"})
				So(view.Animator().State(), ShouldEqual, Running)
				So(view.Animator().Pending(), ShouldEqual, 1)
				So(diagnostics.Reports(), ShouldBeEmpty)
			})
		})

		Convey("When applying an unknown gate mid-animation", func() {
			So(view.Apply("x"), ShouldBeNil)
			scheduler.Step()
			clock.Advance(300 * time.Millisecond)
			scheduler.Step()
			So(view.Apply("t"), ShouldBeNil)

			state := view.State()
			history := view.History()
			trail := view.Animator().Trail()
			pending := view.Animator().Pending()

			err := view.Apply("CNOT")

			Convey("It should be rejected with exactly one diagnostic and nothing else", func() {
				So(errors.Is(err, ErrUnknownGate), ShouldBeTrue)
				So(len(diagnostics.Reports()), ShouldEqual, 1)
				So(errors.Is(diagnostics.Reports()[0], ErrUnknownGate), ShouldBeTrue)

				So(view.State().Equal(state, 0), ShouldBeTrue)
				So(view.History(), ShouldResemble, history)
				So(view.Animator().Trail(), ShouldResemble, trail)
				So(view.Animator().Pending(), ShouldEqual, pending)
				So(view.Metrics().ExportMetrics()["gates_rejected"], ShouldEqual, int64(1))
			})
		})

		Convey("When a long sequence has finished animating", func() {
			names := []string{"H", "T", "S", "Y", "H", "T", "X", "Z", "H", "S"}
			for _, name := range names {
				So(view.Apply(name), ShouldBeNil)
			}
			runFrames(clock, scheduler, 40*time.Millisecond, 10000)

			Reset(func() {
				if t.Failed() {
					t.Log(spew.Sdump(view.State(), view.History()))
				}
			})

			Convey("The sphere marker should match the state's Bloch vector", func() {
				point := RotatePoint(view.Animator().Orientation(), NorthPole)
				So(VecEqual(point, view.State().BlochVector(), tolerance), ShouldBeTrue)
				So(view.State().Norm(), ShouldAlmostEqual, 1.0, tolerance)
				So(view.History(), ShouldResemble, names)
				So(view.Animator().State(), ShouldEqual, Idle)
			})

			Convey("Reset should return everything to the start", func() {
				view.Reset()

				So(view.State().Equal(Ket0, 0), ShouldBeTrue)
				So(view.History(), ShouldBeEmpty)
				So(view.Animator().Trail(), ShouldBeEmpty)
				So(view.Animator().State(), ShouldEqual, Idle)
				So(view.Animator().Pending(), ShouldEqual, 0)
				So(QuatEqual(view.Animator().Orientation(), Identity, 0), ShouldBeTrue)
			})
		})

		Convey("When estimates are requested", func() {
			rng := rand.New(rand.NewPCG(3, 4))

			Convey("They should be off by default", func() {
				_, ok := view.Estimates(rng)
				So(ok, ShouldBeFalse)
			})

			Convey("They should sample the configured shots once enabled", func() {
				view.SetShowEstimates(true)
				So(view.Apply("X"), ShouldBeNil)

				histogram, ok := view.Estimates(rng)
				So(ok, ShouldBeTrue)
				So(histogram.Shots, ShouldEqual, DefaultShots)
				So(histogram.One, ShouldEqual, DefaultShots)
			})
		})
	})
}
