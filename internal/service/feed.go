package service

import "sync"

// subBuffer is the per-subscriber channel capacity. When a subscriber lags
// past it, the oldest queued value is dropped so the newest always lands.
const subBuffer = 8

// Feed is a broadcast cell with replay-of-one semantics: new subscribers
// immediately receive the most recently published value. There is one writer
// per feed; delivery order per subscriber follows publish order, except that
// a slow subscriber may miss intermediate values (never the latest).
type Feed[T any] struct {
	mu     sync.Mutex
	subs   map[int]chan T
	nextID int
	latest T
	seeded bool
	closed bool
}

// NewFeed creates an empty feed.
func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]chan T)}
}

// Publish broadcasts v to all subscribers and records it for replay.
// Publishing to a closed feed is a no-op.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	f.latest = v
	f.seeded = true

	for _, ch := range f.subs {
		send(ch, v)
	}
}

// Subscribe registers a new subscriber. If the feed has a value, it is
// delivered first. Subscribing to a closed feed returns an already-closed
// subscription.
func (f *Feed[T]) Subscribe() *Subscription[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan T, subBuffer)
	if f.seeded {
		ch <- f.latest
	}
	if f.closed {
		close(ch)
		return &Subscription[T]{C: ch, cancel: func() {}}
	}

	id := f.nextID
	f.nextID++
	f.subs[id] = ch

	return &Subscription[T]{
		C: ch,
		cancel: func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if _, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(ch)
			}
		},
	}
}

// Close completes every subscription. No deliveries happen afterwards.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true

	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}

// send delivers v without blocking the publisher: when the subscriber's
// buffer is full the oldest queued value gives way to the new one.
func send[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscription is a live attachment to a Feed. Values arrive on C; the
// channel closes when the subscription is cancelled or the feed closes.
type Subscription[T any] struct {
	C      chan T
	cancel func()
}

// Cancel detaches the subscription and closes C.
func (s *Subscription[T]) Cancel() {
	s.cancel()
}
