package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	h := NewHub()
	ch1, cancel1 := h.Subscribe()
	ch2, cancel2 := h.Subscribe()
	defer cancel1()
	defer cancel2()

	h.Publish(Event{Event: "checkin.created", Data: "EMP0001"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "checkin.created", ev.Event)
		default:
			t.Fatal("expected buffered event")
		}
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	t.Parallel()

	h := NewHub()
	_, cancel := h.Subscribe()
	require.Equal(t, 1, h.SubscriberCount())

	cancel()
	assert.Equal(t, 0, h.SubscriberCount())

	// Double cleanup must be safe.
	cancel()
	assert.Equal(t, 0, h.SubscriberCount())
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	t.Parallel()

	h := NewHub()
	_, cancel := h.Subscribe()
	defer cancel()

	// More events than the channel buffer; Publish must not block.
	for i := 0; i < 100; i++ {
		h.Publish(Event{Event: "checkin.created"})
	}
}
