package handlers

import (
	"testing"

	"github.com/google/uuid"
)

// TestChatGuard checks that only one chat turn per trip can be in flight.
func TestChatGuard(t *testing.T) {
	h := &ChatHandler{inFlight: make(map[uuid.UUID]struct{})}
	tripID := uuid.New()
	otherID := uuid.New()

	if !h.acquire(tripID) {
		t.Fatal("expected first acquire to succeed")
	}
	if h.acquire(tripID) {
		t.Fatal("expected second acquire on same trip to fail")
	}
	if !h.acquire(otherID) {
		t.Fatal("expected acquire on another trip to succeed")
	}

	h.release(tripID)
	if !h.acquire(tripID) {
		t.Fatal("expected acquire after release to succeed")
	}
}
