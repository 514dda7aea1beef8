package actorsys

import "github.com/nilslef/selfrt/internal/value"

// Send enqueues msg on the mailbox, appending to the sender's own FIFO
// sub-queue. Different senders' queues are independent: spec.md §5 only
// promises ordering within a sender-receiver pair, not a single global
// order across every sender.
func (mb *Mailbox) Send(msg Message) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if _, exists := mb.perSender[msg.SenderID]; !exists {
		mb.order = append(mb.order, msg.SenderID)
	}
	mb.perSender[msg.SenderID] = append(mb.perSender[msg.SenderID], msg)
}

// Receive dequeues and returns the next message to process, selecting
// senders in round-robin order among those with a nonempty queue so no
// single sender can starve the others. It reports false if the mailbox is
// empty.
func (mb *Mailbox) Receive() (Message, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	for len(mb.order) > 0 {
		senderID := mb.order[0]
		queue := mb.perSender[senderID]
		if len(queue) == 0 {
			mb.order = mb.order[1:]
			delete(mb.perSender, senderID)
			continue
		}
		msg := queue[0]
		mb.perSender[senderID] = queue[1:]
		mb.order = append(mb.order[1:], senderID)
		return msg, true
	}
	return Message{}, false
}

// Len reports how many messages, across every sender, are currently
// queued.
func (mb *Mailbox) Len() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	total := 0
	for _, q := range mb.perSender {
		total += len(q)
	}
	return total
}

// SendToActor is the entry point a dereferenced ActorProxy uses: it looks
// up the target actor's Mailbox in the registry and enqueues a message
// addressed to targetAddress (the object the proxy wraps, resolved within
// the target actor's own heap — the sender's heap never touches it
// directly, matching the isolation spec.md §5 requires).
func (r *Registry) SendToActor(senderID, targetActorID uint32, selector string, targetAddress value.Value, args []value.Value) error {
	mb, err := r.Mailbox(targetActorID)
	if err != nil {
		return err
	}
	mb.Send(Message{
		Selector:        selector,
		SenderID:        senderID,
		ReceiverID:      targetActorID,
		ReceiverAddress: targetAddress,
		Args:            args,
	})
	return nil
}
