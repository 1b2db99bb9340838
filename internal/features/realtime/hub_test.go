package realtime

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPublishReachesSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	id, events := hub.Subscribe()
	defer hub.Unsubscribe(id)

	hub.Publish("grn.updated", map[string]string{"grn_no": "GRN-100"})

	select {
	case ev := <-events:
		if ev.Type != "grn.updated" {
			t.Errorf("Type = %q, want grn.updated", ev.Type)
		}
		if ev.ID == "" {
			t.Error("expected an event id")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.buffer = 1
	_, _ = hub.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Publish("grn.updated", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	id, events := hub.Subscribe()
	hub.Unsubscribe(id)
	hub.Unsubscribe(id)

	if _, ok := <-events; ok {
		t.Error("expected closed channel")
	}
	if hub.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", hub.Subscribers())
	}
}
