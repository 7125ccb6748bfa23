package handlers

import (
	"fmt"
	"testing"
	"time"
)

func TestEventBus_PublishReachesSubscribers(t *testing.T) {
	eb := NewEventBus()
	ch := eb.Subscribe()
	defer eb.Unsubscribe(ch)

	eb.Publish(Event{Type: "player_join", Text: "Anna joined the lobby"})

	select {
	case ev := <-ch:
		if ev.Type != "player_join" {
			t.Errorf("got event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event never arrived")
	}
}

func TestEventBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	eb := NewEventBus()
	ch := eb.Subscribe()
	defer eb.Unsubscribe(ch)

	// Overfill the buffer; Publish must drop rather than block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			eb.Publish(Event{Type: "game", Text: fmt.Sprintf("event %d", i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestEventBus_Unsubscribe(t *testing.T) {
	eb := NewEventBus()
	ch := eb.Subscribe()
	eb.Unsubscribe(ch)

	// Publishing after unsubscribe must not panic on the closed channel.
	eb.Publish(Event{Type: "game", Text: "after unsubscribe"})
}

func TestSessionEventsReachBus(t *testing.T) {
	h, router := newTestRouter(t)

	ch := h.eventBus.Subscribe()
	defer h.eventBus.Unsubscribe(ch)

	joinAs(t, router, "tok1", "Anna")

	select {
	case ev := <-ch:
		if ev.Type != "player_join" {
			t.Errorf("expected player_join, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("join produced no event")
	}
}
