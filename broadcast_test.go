package qbloch

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBroadcaster(t *testing.T) {
	Convey("Given a broadcaster with two subscribers", t, func() {
		broadcaster := NewBroadcaster()
		all := broadcaster.Subscribe("all", 128, nil)
		completed := broadcaster.Subscribe("completed", 8, CompletedOnly)

		Reset(func() {
			broadcaster.Close()
		})

		So(broadcaster.GetMetrics().ActiveSubscribers, ShouldEqual, 2)

		Convey("Marker handles should be sequential and restart on Clear", func() {
			So(broadcaster.AddMarker(r3.Vec{}), ShouldEqual, MarkerHandle(0))
			So(broadcaster.AddMarker(r3.Vec{}), ShouldEqual, MarkerHandle(1))

			broadcaster.Clear()
			So(broadcaster.AddMarker(r3.Vec{}), ShouldEqual, MarkerHandle(0))

			cleared := <-all
			So(cleared.Cleared, ShouldBeTrue)
			So((<-completed).Cleared, ShouldBeTrue)
		})

		Convey("When driven by an animator", func() {
			clock := NewManualClock(epoch)
			scheduler := NewManualScheduler()
			animator := NewAnimator(NewConfig(), clock, scheduler, broadcaster, nil)

			animator.Queue(GateX)
			animator.Queue(GateH)
			frames := runFrames(clock, scheduler, 100*time.Millisecond, 1000)

			Convey("Every frame should reach the unfiltered subscriber", func() {
				So(len(all), ShouldEqual, frames)

				markers := 0
				for i := 0; i < frames; i++ {
					markers += len((<-all).NewMarkers)
				}
				So(markers, ShouldEqual, 2*DefaultPathResolution)
			})

			Convey("The filtered subscriber should only see completions", func() {
				So(len(completed), ShouldEqual, 2)
				So((<-completed).Gate.Gate, ShouldEqual, GateX)
				So((<-completed).Gate.Gate, ShouldEqual, GateH)
			})
		})

		Convey("A full subscriber should drop frames instead of blocking", func() {
			slow := broadcaster.Subscribe("slow", 1, nil)

			broadcaster.Render(Frame{Progress: 0.1})
			broadcaster.Render(Frame{Progress: 0.2})

			So(len(slow), ShouldEqual, 1)
			So((<-slow).Progress, ShouldEqual, 0.1)
			So(broadcaster.GetMetrics().FramesDropped, ShouldEqual, int64(1))
		})

		Convey("Unsubscribe should close only that channel", func() {
			broadcaster.Unsubscribe("completed")

			_, open := <-completed
			So(open, ShouldBeFalse)
			So(broadcaster.GetMetrics().ActiveSubscribers, ShouldEqual, 1)
		})

		Convey("Close should close every channel and refuse new subscribers", func() {
			broadcaster.Close()

			_, open := <-all
			So(open, ShouldBeFalse)

			_, open = <-broadcaster.Subscribe("late", 1, nil)
			So(open, ShouldBeFalse)

			broadcaster.Render(Frame{})
		})
	})
}
