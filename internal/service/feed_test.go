package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed while expecting a value")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
		panic("unreachable")
	}
}

func assertNoValue[T any](t *testing.T, ch chan T) {
	t.Helper()
	select {
	case v, ok := <-ch:
		if ok {
			t.Fatalf("unexpected value: %v", v)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFeedReplaysLatestToNewSubscribers(t *testing.T) {
	f := NewFeed[int]()
	f.Publish(1)
	f.Publish(2)

	sub := f.Subscribe()
	assert.Equal(t, 2, recv(t, sub.C))
}

func TestFeedBroadcasts(t *testing.T) {
	f := NewFeed[string]()
	a := f.Subscribe()
	b := f.Subscribe()

	f.Publish("x")
	assert.Equal(t, "x", recv(t, a.C))
	assert.Equal(t, "x", recv(t, b.C))
}

func TestFeedEmptyDeliversNothing(t *testing.T) {
	f := NewFeed[int]()
	sub := f.Subscribe()
	assertNoValue(t, sub.C)
}

func TestFeedSlowSubscriberStillSeesLatest(t *testing.T) {
	f := NewFeed[int]()
	sub := f.Subscribe()

	// Overflow the subscriber buffer; intermediate values may drop but the
	// last published value must come through.
	last := 0
	for i := 1; i <= subBuffer*3; i++ {
		f.Publish(i)
		last = i
	}

	got := recv(t, sub.C)
	for {
		select {
		case v := <-sub.C:
			got = v
		default:
			assert.Equal(t, last, got)
			return
		}
	}
}

func TestFeedCloseCompletesSubscriptions(t *testing.T) {
	f := NewFeed[int]()
	sub := f.Subscribe()
	f.Close()

	_, ok := <-sub.C
	assert.False(t, ok)

	// Publishing after close is a no-op, not a panic.
	f.Publish(1)

	// Subscribing after close yields a completed subscription.
	after := f.Subscribe()
	_, ok = <-after.C
	assert.False(t, ok)
}

func TestFeedSubscribeAfterCloseStillReplays(t *testing.T) {
	f := NewFeed[int]()
	f.Publish(7)
	f.Close()

	sub := f.Subscribe()
	assert.Equal(t, 7, recv(t, sub.C))
	_, ok := <-sub.C
	assert.False(t, ok)
}

func TestSubscriptionCancel(t *testing.T) {
	f := NewFeed[int]()
	sub := f.Subscribe()
	sub.Cancel()

	f.Publish(1)
	_, ok := <-sub.C
	assert.False(t, ok)

	// Double cancel is safe.
	sub.Cancel()
}
