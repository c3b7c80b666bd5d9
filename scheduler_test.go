package qbloch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestManualScheduler(t *testing.T) {
	Convey("Given a manual scheduler", t, func() {
		scheduler := NewManualScheduler()
		runs := 0

		var again func()
		again = func() {
			runs++
			scheduler.RequestFrame(again)
		}
		scheduler.RequestFrame(again)

		Convey("A callback that requests another frame should wait for the next Step", func() {
			So(scheduler.Step(), ShouldEqual, 1)
			So(runs, ShouldEqual, 1)
			So(scheduler.Pending(), ShouldEqual, 1)

			So(scheduler.Step(), ShouldEqual, 1)
			So(runs, ShouldEqual, 2)
		})
	})
}

func TestTickerScheduler(t *testing.T) {
	Convey("Given a ticker scheduler", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		scheduler := NewTickerScheduler(ctx, time.Millisecond)

		Reset(func() {
			cancel()
		})

		Convey("It should run requested frames serially until cancelled", func() {
			var runs atomic.Int32
			done := make(chan struct{})

			var frame func()
			frame = func() {
				if runs.Add(1) == 3 {
					close(done)
					return
				}
				scheduler.RequestFrame(frame)
			}
			scheduler.RequestFrame(frame)

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("frames never ran")
			}
			So(runs.Load(), ShouldEqual, int32(3))

			cancel()
			select {
			case <-scheduler.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("frame loop did not exit")
			}
		})
	})
}
