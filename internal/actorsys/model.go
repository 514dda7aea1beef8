// Package actorsys implements the actor registry and per-actor mailboxes
// that back the concurrency model: each actor owns an isolated heap
// domain, and the only way one actor's code can touch another's objects
// is by sending to an ActorProxy, which enqueues onto the target's
// mailbox rather than performing an in-process message lookup (spec.md
// §5).
package actorsys

import (
	"sync"

	"github.com/nilslef/selfrt/internal/value"
	"go.uber.org/zap"
)

// Message is one entry in a mailbox: the selector being sent, the
// arguments, and the sender's actor id (used to enforce FIFO ordering per
// sender-receiver pair, not globally across all senders).
type Message struct {
	Selector   string
	SenderID   uint32
	ReceiverID uint32
	// ReceiverAddress is the target object's address within the
	// receiving actor's own heap.
	ReceiverAddress value.Value
	Args            []value.Value
}

// Mailbox is a single actor's inbox. Messages from the same sender are
// delivered in send order; no ordering is promised across different
// senders (spec.md §5).
type Mailbox struct {
	mu sync.Mutex
	// perSender holds one FIFO queue per sending actor, so one sender's
	// burst of sends cannot get interleaved out of order by the queueing
	// structure itself, while still leaving cross-sender interleaving
	// unspecified as the spec allows.
	perSender map[uint32][]Message
	order     []uint32 // senders with a queue entry, in round-robin order; Receive drops a sender once its queue is found empty.
}

func newMailbox() *Mailbox {
	return &Mailbox{perSender: make(map[uint32][]Message)}
}

// Config configures a Registry.
type Config struct {
	Logger *zap.SugaredLogger
}

// Registry owns every actor's Mailbox, keyed by actor id, and assigns
// fresh actor ids as new actors are spawned.
type Registry struct {
	mu        sync.RWMutex
	mailboxes map[uint32]*Mailbox
	nextID    uint32
	log       *zap.SugaredLogger
}
