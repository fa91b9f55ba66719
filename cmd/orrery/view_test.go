package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPump(ctx context.Context, poll func() tcell.Event, events chan<- tcell.Event) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		pumpEvents(ctx, poll, events)
	}()
	return done
}

func TestPumpEventsForwardsUntilNil(t *testing.T) {
	queue := []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
	}
	poll := func() tcell.Event {
		if len(queue) == 0 {
			return nil
		}
		ev := queue[0]
		queue = queue[1:]
		return ev
	}

	events := make(chan tcell.Event, 4)
	done := runPump(context.Background(), poll, events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after a nil event")
	}

	require.Len(t, events, 2)
	first := (<-events).(*tcell.EventKey)
	assert.Equal(t, 'j', first.Rune())
	second := (<-events).(*tcell.EventKey)
	assert.Equal(t, tcell.KeyEnter, second.Key())
}

func TestPumpEventsStopsWhenConsumerGone(t *testing.T) {
	poll := func() tcell.Event {
		return tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone)
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tcell.Event, 1)
	done := runPump(ctx, poll, events)

	// Channel fills and nobody drains it
	require.Eventually(t, func() bool { return len(events) == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump stayed blocked on a full channel after cancellation")
	}
}
