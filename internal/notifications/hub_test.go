package notifications

import (
	"testing"

	"github.com/google/uuid"
)

// TestHubPublish checks that a subscriber receives a published event.
func TestHubPublish(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	hub.Publish(userID, Event{Type: EventLedgerUpdated})

	select {
	case event := <-ch:
		if event.Type != EventLedgerUpdated {
			t.Fatalf("unexpected event type: %s", event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	default:
		t.Fatal("expected event on channel")
	}
}

// TestHubPublishOtherUser checks that events do not leak across users.
func TestHubPublishOtherUser(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe(uuid.New())
	defer unsubscribe()

	hub.Publish(uuid.New(), Event{Type: EventItineraryReplaced})

	select {
	case event := <-ch:
		t.Fatalf("unexpected event: %+v", event)
	default:
	}
}

// TestHubUnsubscribe checks that unsubscribe closes the channel and drops
// the subscription.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}

	// Publishing after unsubscribe must not panic.
	hub.Publish(userID, Event{Type: EventReservationAdded})
}

// TestHubSlowSubscriber checks that a full buffer never blocks Publish.
func TestHubSlowSubscriber(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	_, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	for i := 0; i < 50; i++ {
		hub.Publish(userID, Event{Type: EventLedgerUpdated})
	}
}
