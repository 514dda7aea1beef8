// Package heap implements the generational, two-space copying heap that
// backs every object allocation in the runtime: a young generation for new
// objects, an old generation objects get promoted into after surviving
// enough collections, allocation tokens that reserve a byte budget up
// front so a multi-object allocation sequence can't be torn in half by a
// collection, and the finalization queue that drains Managed objects'
// cleanup after they become unreachable.
package heap

import (
	"sync"
	"sync/atomic"

	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/options"
	"go.uber.org/zap"
)

// GenerationName identifies one of the heap's two generations.
type GenerationName string

const (
	Young GenerationName = "young"
	Old   GenerationName = "old"
)

// generation is one semispace pair: a live space objects are allocated
// into and read from, and a copy space a collection moves survivors into
// before the two are swapped.
type generation struct {
	name GenerationName

	mu      sync.Mutex
	maxSize uint64
	used    uint64
	objects []object.Object // index i is this generation's slot i; address.Index indexes here.
	ages    []uint32        // parallel to objects: how many collections each slot has survived.

	// reserved counts outstanding allocation tokens against this
	// generation. While nonzero, Collect on this generation is refused:
	// spec.md §4.1 requires a token's reservation to survive any
	// collection that would otherwise run while the token is alive.
	reserved int32

	promotionAge uint32
	collections  uint64
}

// Config configures a Heap. It mirrors the teacher's layered
// Config-struct-plus-constructor idiom: every dependency the Heap needs is
// passed in explicitly rather than reached for globally.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// Heap is the runtime's generational object store. It is the allocation
// and collection authority the object package's variant constructors feed
// into: nothing in this codebase allocates an object.Object without going
// through a Heap's Token.
type Heap struct {
	young *generation
	old   *generation

	log *zap.SugaredLogger

	// finalizeMu guards the finalization queue; finalizable objects found
	// unreachable during a collection are appended here and drained by
	// DrainFinalizers rather than run inline during the collection pause.
	finalizeMu sync.Mutex
	finalize   []object.Object

	// rootMu guards the Tracked root table. Every long-lived value.Value a
	// caller keeps across a potential collection must be registered here:
	// Collect rewrites root entries in place exactly like it rewrites
	// fields inside heap objects, so a Tracked handle always dereferences
	// to a live address.
	rootMu     sync.Mutex
	roots      map[uint64]*value.Value
	nextRootID uint64

	// wellKnownMu guards wellKnown, the registry of built-in traits
	// objects keyed by the VariantKind they back. It lives on Heap rather
	// than on VirtualMachine so internal/lookup can resolve the
	// ByteArray-to-string_traits fallback (spec.md §4.6) without importing
	// internal/vm, which itself imports internal/lookup.
	wellKnownMu sync.RWMutex
	wellKnown   map[object.VariantKind]value.Value

	closed atomic.Bool
}

// Address is an opaque handle to an object's current location: which
// generation it lives in and its slot index within that generation's
// current live space. It is the payload NewObjectReference Values carry.
type Address struct {
	Generation GenerationName
	Index      int
}

// addrBit distinguishes Young (0) from Old (1) addresses packed into a
// value.Value's ObjectReference payload. It sits just above the low 3
// bits, which value.NewObjectReference requires to be clear.
const addrBit = uintptr(1) << 3

// Encode packs a into a value.Value suitable for storing as an object's
// Map field forward-address, a Slots slot value, or any other
// ObjectReference-tagged Value.
func (a Address) Encode() value.Value {
	raw := uintptr(a.Index)<<4 | genBit(a.Generation)
	return value.NewObjectReference(raw)
}

// DecodeAddress unpacks an ObjectReference Value back into an Address.
func DecodeAddress(v value.Value) Address {
	raw := v.Address()
	gen := Young
	if raw&addrBit == addrBit {
		gen = Old
	}
	return Address{Generation: gen, Index: int(raw >> 4)}
}

func genBit(name GenerationName) uintptr {
	if name == Old {
		return addrBit
	}
	return 0
}
