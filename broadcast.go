package qbloch

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

/*
FrameFilter decides whether a subscriber wants a frame. Filters see every
frame, including Cleared ones.
*/
type FrameFilter func(Frame) bool

// CompletedOnly passes gate-completion and clear frames only.
func CompletedOnly(f Frame) bool {
	return f.Complete || f.Cleared
}

/*
Broadcaster is a Renderer that fans frames out to subscriber channels, for
hosts that draw on another goroutine or draw more than one surface. It hands
out marker handles itself; subscribers learn about them through
Frame.NewMarkers and build their own handle tables.

Sends never block the animation: a subscriber whose buffer is full misses the
frame and the drop is counted.
*/
type Broadcaster struct {
	mu sync.RWMutex

	subscribers map[string]chan Frame
	filters     map[string]FrameFilter
	nextMarker  MarkerHandle
	metrics     *BroadcastMetrics
	closed      bool
}

// BroadcastMetrics tracks delivery to subscribers.
type BroadcastMetrics struct {
	FramesSent        int64
	FramesDropped     int64
	ActiveSubscribers int
	LastBroadcastTime time.Time
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan Frame),
		filters:     make(map[string]FrameFilter),
		metrics:     &BroadcastMetrics{},
	}
}

/*
Subscribe registers a channel with the given buffer. An optional filter limits
which frames are delivered. Subscribing an existing id replaces it.
*/
func (b *Broadcaster) Subscribe(subscriberID string, bufferSize int, filter FrameFilter) <-chan Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Frame)
		close(ch)
		return ch
	}

	if old, exists := b.subscribers[subscriberID]; exists {
		close(old)
		b.metrics.ActiveSubscribers--
	}

	ch := make(chan Frame, bufferSize)
	b.subscribers[subscriberID] = ch
	if filter != nil {
		b.filters[subscriberID] = filter
	} else {
		delete(b.filters, subscriberID)
	}

	b.metrics.ActiveSubscribers++
	return ch
}

// Unsubscribe closes and forgets a subscriber.
func (b *Broadcaster) Unsubscribe(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, exists := b.subscribers[subscriberID]; exists {
		close(ch)
		delete(b.subscribers, subscriberID)
		delete(b.filters, subscriberID)
		b.metrics.ActiveSubscribers--
	}
}

func (b *Broadcaster) AddMarker(r3.Vec) MarkerHandle {
	b.mu.Lock()
	defer b.mu.Unlock()

	handle := b.nextMarker
	b.nextMarker++
	return handle
}

func (b *Broadcaster) Render(frame Frame) {
	b.send(frame)
}

// Clear restarts handle numbering and tells subscribers to drop their markers.
func (b *Broadcaster) Clear() {
	b.mu.Lock()
	b.nextMarker = 0
	b.mu.Unlock()

	b.send(Frame{Cleared: true})
}

func (b *Broadcaster) send(frame Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.metrics.LastBroadcastTime = time.Now()

	for id, ch := range b.subscribers {
		if filter, ok := b.filters[id]; ok && !filter(frame) {
			continue
		}

		select {
		case ch <- frame:
			b.metrics.FramesSent++
		default:
			b.metrics.FramesDropped++
		}
	}
}

func (b *Broadcaster) GetMetrics() BroadcastMetrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return *b.metrics
}

// Close closes every subscriber channel. Later frames are discarded.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		close(ch)
	}

	b.subscribers = nil
	b.filters = nil
	b.metrics.ActiveSubscribers = 0
	b.closed = true
}
