package qbloch

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

const tolerance = 1e-9

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type recordingRenderer struct {
	mu      sync.Mutex
	frames  []Frame
	markers map[MarkerHandle]r3.Vec
	next    MarkerHandle
	clears  int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{markers: make(map[MarkerHandle]r3.Vec)}
}

func (r *recordingRenderer) AddMarker(p r3.Vec) MarkerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := r.next
	r.next++
	r.markers[handle] = p
	return handle
}

func (r *recordingRenderer) Render(frame Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

func (r *recordingRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = make(map[MarkerHandle]r3.Vec)
	r.clears++
}

func (r *recordingRenderer) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

/*
runFrames steps the scheduler, advancing the clock by step after every frame,
until nothing is pending or limit frames have run. It returns the number of
frames stepped.
*/
func runFrames(clock *ManualClock, scheduler *ManualScheduler, step time.Duration, limit int) int {
	frames := 0
	for scheduler.Pending() > 0 && frames < limit {
		scheduler.Step()
		clock.Advance(step)
		frames++
	}
	return frames
}
