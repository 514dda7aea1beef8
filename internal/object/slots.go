package object

import "github.com/nilslef/selfrt/internal/value"

// Slots is the general-purpose object variant: a header plus an ordered
// list of slot values, whose names and kinds live in the object's Map
// rather than in the object itself (spec.md §3.3). Every plain Self object
// — including traits objects and user-defined prototypes — is a Slots.
type Slots struct {
	Header
	Values []value.Value
}

// NewSlots builds a Slots object with the given map reference and initial
// slot values, owned by actorID.
func NewSlots(actorID uint32, mapRef value.Value, values []value.Value) *Slots {
	return &Slots{
		Header: NewHeader(KindSlots, actorID, Local, mapRef),
		Values: values,
	}
}

func (s *Slots) Hdr() *Header { return &s.Header }

func (s *Slots) SizeInMemory() int {
	return roundUpWord(headerWordSize + len(s.Values)*8)
}

func (s *Slots) CanFinalize() bool { return false }

func (s *Slots) CloneInto(actorID uint32) Object {
	values := make([]value.Value, len(s.Values))
	copy(values, s.Values)
	return &Slots{
		Header: NewHeader(KindSlots, actorID, s.Info.Reachability(), s.Map),
		Values: values,
	}
}
