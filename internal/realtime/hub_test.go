package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func receiveEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubPublishRouting(t *testing.T) {
	hub := NewHub()

	aliceCh, cancelAlice := hub.Subscribe("alice")
	defer cancelAlice()
	bobCh, cancelBob := hub.Subscribe("bob")
	defer cancelBob()

	hub.Changed("alice", ResourceTodos)

	ev := receiveEvent(t, aliceCh)
	assert.Equal(t, EventChanged, ev.Type)
	assert.Equal(t, ResourceTodos, ev.Resource)

	// Bob gets nothing
	select {
	case ev := <-bobCh:
		t.Fatalf("unexpected event for bob: %+v", ev)
	default:
	}
}

func TestHubMultipleSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe("alice")
	defer cancel1()
	ch2, cancel2 := hub.Subscribe("alice")
	defer cancel2()

	hub.Changed("alice", ResourceFriends)

	assert.Equal(t, ResourceFriends, receiveEvent(t, ch1).Resource)
	assert.Equal(t, ResourceFriends, receiveEvent(t, ch2).Resource)
}

func TestHubCancel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("alice")
	cancel()

	// The channel is closed and later publishes are dropped
	_, open := <-ch
	assert.False(t, open)

	hub.Changed("alice", ResourceTodos)

	// Cancelling twice is fine
	cancel()
}

func TestHubFullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("alice")
	defer cancel()

	// Overflow the subscriber buffer; publishes past capacity are dropped
	for i := 0; i < 100; i++ {
		hub.Changed("alice", ResourceExpenses)
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Equal(t, cap(ch), received)
			return
		}
	}
}

func TestNilHub(t *testing.T) {
	var hub *Hub

	// Publishing on a nil hub is a no-op
	hub.Changed("alice", ResourceTodos)
}
