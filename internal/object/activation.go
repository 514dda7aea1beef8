package object

import "github.com/nilslef/selfrt/internal/value"

// Activation is a method or block invocation record: receiver, sender
// (caller activation, for non-local return targeting), local variable
// slots, and a program counter (spec.md §3.3, GLOSSARY "Activation").
type Activation struct {
	Header
	Receiver value.Value
	Sender   value.Value
	Locals   []value.Value
	PC       int
	// Live reports whether this Activation can still be the target of a
	// non-local return. It is cleared when the Activation returns
	// normally; a Block invoked after that point triggers a runtime error
	// rather than unwinding into reused memory (spec.md §6).
	Live bool
}

// NewActivation builds an Activation object.
func NewActivation(actorID uint32, mapRef, receiver, sender value.Value, localCount int) *Activation {
	return &Activation{
		Header:   NewHeader(KindActivation, actorID, Local, mapRef),
		Receiver: receiver,
		Sender:   sender,
		Locals:   make([]value.Value, localCount),
		Live:     true,
	}
}

func (a *Activation) Hdr() *Header { return &a.Header }

func (a *Activation) SizeInMemory() int {
	return roundUpWord(headerWordSize + 2*8 + len(a.Locals)*8 + 8 + 1)
}

func (a *Activation) CanFinalize() bool { return false }

func (a *Activation) CloneInto(actorID uint32) Object {
	locals := make([]value.Value, len(a.Locals))
	copy(locals, a.Locals)
	return &Activation{
		Header:   NewHeader(KindActivation, actorID, a.Info.Reachability(), a.Map),
		Receiver: a.Receiver,
		Sender:   a.Sender,
		Locals:   locals,
		PC:       a.PC,
		Live:     a.Live,
	}
}
