package object

import "github.com/nilslef/selfrt/internal/value"

// Actor is the object-level face of an isolated heap domain: it records
// which actor owns it, the activation currently running on that actor's
// stack (if any), and the mailbox identifier the actor registry uses to
// route messages to it (spec.md §5). The mailbox's queues themselves live
// in the actorsys package, not here — this struct never holds a channel,
// so it can be copied and forwarded like any other object.
type Actor struct {
	Header
	MailboxID         uint32
	CurrentActivation value.Value
}

// NewActor builds an Actor object for the given actor/mailbox id.
func NewActor(actorID uint32, mapRef value.Value, mailboxID uint32) *Actor {
	return &Actor{
		Header:    NewHeader(KindActor, actorID, Local, mapRef),
		MailboxID: mailboxID,
	}
}

func (a *Actor) Hdr() *Header { return &a.Header }

func (a *Actor) SizeInMemory() int {
	return roundUpWord(headerWordSize + 4 + 8)
}

func (a *Actor) CanFinalize() bool { return false }

func (a *Actor) CloneInto(actorID uint32) Object {
	return &Actor{
		Header:            NewHeader(KindActor, actorID, a.Info.Reachability(), a.Map),
		MailboxID:         a.MailboxID,
		CurrentActivation: a.CurrentActivation,
	}
}

// ActorProxy is the only reference one actor's heap may hold into
// another's (spec.md §5, GLOSSARY "ActorProxy"). Sending a message to the
// object an ActorProxy wraps en­queues on the target mailbox rather than
// performing an in-process message lookup.
type ActorProxy struct {
	Header
	TargetActorID uint32
	// TargetAddress is the wrapped object's address within the target
	// actor's own heap; it is meaningless to dereference directly from any
	// actor other than the target.
	TargetAddress value.Value
}

// NewActorProxy builds an ActorProxy pointing at targetAddress inside
// targetActorID's heap.
func NewActorProxy(ownerActorID uint32, mapRef value.Value, targetActorID uint32, targetAddress value.Value) *ActorProxy {
	return &ActorProxy{
		Header:        NewHeader(KindActorProxy, ownerActorID, Local, mapRef),
		TargetActorID: targetActorID,
		TargetAddress: targetAddress,
	}
}

func (p *ActorProxy) Hdr() *Header { return &p.Header }

func (p *ActorProxy) SizeInMemory() int {
	return roundUpWord(headerWordSize + 4 + 8)
}

func (p *ActorProxy) CanFinalize() bool { return false }

func (p *ActorProxy) CloneInto(actorID uint32) Object {
	return &ActorProxy{
		Header:        NewHeader(KindActorProxy, actorID, p.Info.Reachability(), p.Map),
		TargetActorID: p.TargetActorID,
		TargetAddress: p.TargetAddress,
	}
}
