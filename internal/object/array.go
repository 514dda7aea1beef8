package object

import "github.com/nilslef/selfrt/internal/value"

// Array is a variable-length, homogeneously-tagged vector of Values
// (spec.md §3.3). Unlike Slots, an Array's length is not dictated by its
// Map; any two Arrays may share a Map while holding different lengths.
type Array struct {
	Header
	Values []value.Value
}

// NewArray builds an Array object of the given initial contents.
func NewArray(actorID uint32, mapRef value.Value, values []value.Value) *Array {
	return &Array{
		Header: NewHeader(KindArray, actorID, Local, mapRef),
		Values: values,
	}
}

func (a *Array) Hdr() *Header { return &a.Header }

func (a *Array) SizeInMemory() int {
	return roundUpWord(headerWordSize + len(a.Values)*8)
}

func (a *Array) CanFinalize() bool { return false }

func (a *Array) CloneInto(actorID uint32) Object {
	values := make([]value.Value, len(a.Values))
	copy(values, a.Values)
	return &Array{
		Header: NewHeader(KindArray, actorID, a.Info.Reachability(), a.Map),
		Values: values,
	}
}
