package actorsys

import (
	"testing"

	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/logger"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := New(&Config{Logger: logger.NewNop()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r
}

func TestSpawnAssignsDistinctIDs(t *testing.T) {
	r := newTestRegistry(t)
	a := r.Spawn()
	b := r.Spawn()
	if a == b {
		t.Fatalf("Spawn() returned duplicate id %d", a)
	}
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
}

func TestMailboxPreservesPerSenderOrder(t *testing.T) {
	mb := newMailbox()
	mb.Send(Message{Selector: "one", SenderID: 1})
	mb.Send(Message{Selector: "two", SenderID: 1})
	mb.Send(Message{Selector: "three", SenderID: 2})

	first, ok := mb.Receive()
	if !ok || first.SenderID != 1 || first.Selector != "one" {
		t.Fatalf("first Receive() = %+v", first)
	}
	second, ok := mb.Receive()
	if !ok || second.SenderID != 2 || second.Selector != "three" {
		t.Fatalf("second Receive() = %+v, want sender 2's message (round-robin)", second)
	}
	third, ok := mb.Receive()
	if !ok || third.SenderID != 1 || third.Selector != "two" {
		t.Fatalf("third Receive() = %+v, want sender 1's remaining message", third)
	}
	if _, ok := mb.Receive(); ok {
		t.Fatalf("Receive() on an empty mailbox reported a message")
	}
}

func TestSendToUnknownActorFails(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.SendToActor(0, 999, "foo", value.NewInteger(0), nil); err == nil {
		t.Fatalf("SendToActor() to an unregistered actor succeeded, want error")
	}
}

func TestDespawnRemovesMailbox(t *testing.T) {
	r := newTestRegistry(t)
	id := r.Spawn()
	r.Despawn(id)
	if _, err := r.Mailbox(id); err == nil {
		t.Fatalf("Mailbox() succeeded after Despawn, want error")
	}
}
