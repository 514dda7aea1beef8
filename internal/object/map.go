package object

import "github.com/nilslef/selfrt/internal/value"

// SlotKind classifies a single entry in a Map's slot-descriptor table
// (spec.md §4.3).
type SlotKind uint8

const (
	// DataMutable slots hold an assignable Value and implicitly install a
	// matching "name:" assignment selector.
	DataMutable SlotKind = iota
	// DataConstant slots hold a Value that cannot be reassigned.
	DataConstant
	// ParentMutable slots participate in message lookup's parent traversal
	// and may be reassigned.
	ParentMutable
	// ParentConstant slots participate in parent traversal and cannot be
	// reassigned.
	ParentConstant
	// Argument slots exist only inside a Method's or Block's local Map and
	// are bound positionally at invocation time, never looked up by
	// message send.
	Argument
)

func (k SlotKind) String() string {
	switch k {
	case DataMutable:
		return "DataMutable"
	case DataConstant:
		return "DataConstant"
	case ParentMutable:
		return "ParentMutable"
	case ParentConstant:
		return "ParentConstant"
	case Argument:
		return "Argument"
	default:
		return "UnknownSlotKind"
	}
}

// IsParent reports whether slots of this kind participate in message
// lookup's parent-traversal step.
func (k SlotKind) IsParent() bool {
	return k == ParentMutable || k == ParentConstant
}

// IsAssignable reports whether a slot of this kind may be the target of an
// assignment-selector send.
func (k SlotKind) IsAssignable() bool {
	return k == DataMutable || k == ParentMutable
}

// SlotDescriptor is one entry in a Map's ordered slot table: the slot's
// name (held as a ByteArray reference so selectors and print names share
// storage), the precomputed hash of that name used during lookup, the
// slot's kind, and the index into the owning object's Values payload
// where the slot's current Value lives.
type SlotDescriptor struct {
	Name         value.Value // ObjectReference to a ByteArray.
	SelectorHash uint64
	Kind         SlotKind
	Index        int
}

// Map is the shape object describing the slot layout shared by every
// instance created from it (spec.md §3.3, §4.3, GLOSSARY "Map"). Maps are
// not interned: two structurally identical Maps built independently are
// distinct objects (spec.md §9, Open Question — Map identity, resolved per
// the spec's own recommendation; see DESIGN.md).
type Map struct {
	Header
	Slots []SlotDescriptor
}

// NewMap builds a Map object. mapOfMaps is the Value every Map's own
// header.Map field points to; passing the Map's own about-to-be-assigned
// address lets the root Map reference itself, satisfying the map-of-maps
// invariant (spec.md §4.3).
func NewMap(actorID uint32, mapOfMaps value.Value, slots []SlotDescriptor) *Map {
	owned := make([]SlotDescriptor, len(slots))
	copy(owned, slots)
	return &Map{
		Header: NewHeader(KindMap, actorID, Global, mapOfMaps),
		Slots:  owned,
	}
}

func (m *Map) Hdr() *Header { return &m.Header }

func (m *Map) SizeInMemory() int {
	const descriptorSize = 8 + 8 + 1 + 8
	return roundUpWord(headerWordSize + len(m.Slots)*descriptorSize)
}

func (m *Map) CanFinalize() bool { return false }

func (m *Map) CloneInto(actorID uint32) Object {
	slots := make([]SlotDescriptor, len(m.Slots))
	copy(slots, m.Slots)
	return &Map{
		Header: NewHeader(KindMap, actorID, m.Info.Reachability(), m.Map),
		Slots:  slots,
	}
}

// FindSlot returns the index into Slots of the first entry whose selector
// hash matches hash, or (-1, false) if none exists at this shape level
// (parent traversal is the lookup package's concern, not Map's).
func (m *Map) FindSlot(hash uint64) (int, bool) {
	for i := range m.Slots {
		if m.Slots[i].SelectorHash == hash {
			return i, true
		}
	}
	return -1, false
}

// Parents returns the slot descriptors that participate in parent
// traversal, in declaration order, as spec.md §4.6 requires for
// deterministic multiple-inheritance resolution.
func (m *Map) Parents() []SlotDescriptor {
	var parents []SlotDescriptor
	for _, sd := range m.Slots {
		if sd.Kind.IsParent() {
			parents = append(parents, sd)
		}
	}
	return parents
}

// Extend returns a new Map with an additional slot descriptor appended,
// leaving the receiver untouched (spec.md §4.3's shape-transition rule:
// Maps are never mutated in place once installed on an object, a new Map
// is built and the object's header Map field is repointed to it).
func (m *Map) Extend(actorID uint32, sd SlotDescriptor) *Map {
	slots := make([]SlotDescriptor, len(m.Slots)+1)
	copy(slots, m.Slots)
	slots[len(m.Slots)] = sd
	return &Map{
		Header: NewHeader(KindMap, actorID, m.Info.Reachability(), m.Map),
		Slots:  slots,
	}
}
