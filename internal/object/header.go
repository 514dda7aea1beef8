// Package object implements the closed registry of object variants that
// make up the Self heap — Slots, Method, Block, Activation, Array,
// ByteArray, Managed, Actor, ActorProxy, Map, and AddrInfo — plus the
// two-word header every one of them begins with, and the polymorphic
// dispatch (CloneInto, SizeInMemory, CanFinalize, Finalize) that treats them
// uniformly. ForwardedObject is not a distinct struct: it is a state the
// header of any other variant transitions into during collection (see
// header.go's ForwardTo).
package object

import (
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/errors"
)

// VariantKind indexes the closed registry of object variants. Adding a
// variant means adding a case to every dispatch switch in this package;
// the registry is deliberately not left open for extension.
type VariantKind uint8

const (
	KindSlots VariantKind = iota
	KindMethod
	KindBlock
	KindActivation
	KindArray
	KindByteArray
	KindManaged
	KindActor
	KindActorProxy
	KindMap
	KindAddrInfo
	KindForwardedObject
	numVariantKinds
)

// String names a VariantKind for logging and error messages.
func (k VariantKind) String() string {
	switch k {
	case KindSlots:
		return "Slots"
	case KindMethod:
		return "Method"
	case KindBlock:
		return "Block"
	case KindActivation:
		return "Activation"
	case KindArray:
		return "Array"
	case KindByteArray:
		return "ByteArray"
	case KindManaged:
		return "Managed"
	case KindActor:
		return "Actor"
	case KindActorProxy:
		return "ActorProxy"
	case KindMap:
		return "Map"
	case KindAddrInfo:
		return "AddrInfo"
	case KindForwardedObject:
		return "ForwardedObject"
	default:
		return "UnknownVariant"
	}
}

// IsValid reports whether k is a member of the closed registry.
func (k VariantKind) IsValid() bool {
	return k < numVariantKinds
}

// Reachability governs cross-actor visibility of an object.
type Reachability uint8

const (
	// Local objects are visible only within their owning actor's heap.
	Local Reachability = iota
	// Global objects may be traced and read by any actor (spec.md §5: the
	// well-known traits objects are Global and immutable after boot).
	Global
)

// ObjectInfo is the object-information bitfield:
// { marker:2, object-type:6, extra:8, actor-id:31, reachability:1, reserved:16 }.
type ObjectInfo uint64

const (
	infoMarkerBits = 2
	infoKindBits   = 6
	infoExtraBits  = 8
	infoActorBits  = 31
	infoReachBits  = 1

	infoMarkerShift = 0
	infoKindShift   = infoMarkerShift + infoMarkerBits
	infoExtraShift  = infoKindShift + infoKindBits
	infoActorShift  = infoExtraShift + infoExtraBits
	infoReachShift  = infoActorShift + infoActorBits

	infoMarkerMask = uint64(1)<<infoMarkerBits - 1
	infoKindMask   = uint64(1)<<infoKindBits - 1
	infoExtraMask  = uint64(1)<<infoExtraBits - 1
	infoActorMask  = uint64(1)<<infoActorBits - 1
	infoReachMask  = uint64(1)<<infoReachBits - 1
)

// NewObjectInfo builds the object-information word for a freshly allocated
// object of the given kind, owned by actorID, with the given reachability.
func NewObjectInfo(kind VariantKind, actorID uint32, reach Reachability) ObjectInfo {
	info := uint64(value.ObjectMarker) << infoMarkerShift
	info |= (uint64(kind) & infoKindMask) << infoKindShift
	info |= (uint64(actorID) & infoActorMask) << infoActorShift
	info |= (uint64(reach) & infoReachMask) << infoReachShift
	return ObjectInfo(info)
}

// Marker returns the low-bit tag, which must equal value.ObjectMarker for
// any word that is genuinely an object-information header word.
func (o ObjectInfo) Marker() value.Tag {
	return value.Tag((uint64(o) >> infoMarkerShift) & infoMarkerMask)
}

// Kind returns the variant this header describes.
func (o ObjectInfo) Kind() VariantKind {
	return VariantKind((uint64(o) >> infoKindShift) & infoKindMask)
}

// Extra returns the per-variant scratch byte.
func (o ObjectInfo) Extra() uint8 {
	return uint8((uint64(o) >> infoExtraShift) & infoExtraMask)
}

// WithExtra returns a copy of o with its scratch byte replaced.
func (o ObjectInfo) WithExtra(extra uint8) ObjectInfo {
	cleared := uint64(o) &^ (infoExtraMask << infoExtraShift)
	return ObjectInfo(cleared | (uint64(extra)&infoExtraMask)<<infoExtraShift)
}

// ActorID returns the actor that owns the object this header describes.
func (o ObjectInfo) ActorID() uint32 {
	return uint32((uint64(o) >> infoActorShift) & infoActorMask)
}

// Reachability returns the object's cross-actor visibility.
func (o ObjectInfo) Reachability() Reachability {
	return Reachability((uint64(o) >> infoReachShift) & infoReachMask)
}

// withKind returns a copy of o with its variant kind replaced, used only
// when a header transitions to ForwardedObject during collection. The
// actor-id is preserved: spec.md §3.6 pins actor-id as immutable across
// forwarding.
func (o ObjectInfo) withKind(kind VariantKind) ObjectInfo {
	cleared := uint64(o) &^ (infoKindMask << infoKindShift)
	return ObjectInfo(cleared | (uint64(kind)&infoKindMask)<<infoKindShift)
}

// Header is the fixed two-word prefix present at the start of every
// non-forwarded object, and reinterpreted in place when an object is
// forwarded (spec.md §3.2, §3.5).
type Header struct {
	Info ObjectInfo
	// Map holds an ObjectReference Value to this object's Map. After
	// forwarding, it holds an ObjectReference Value to the object's new
	// location instead.
	Map value.Value
}

// NewHeader builds a header for a freshly allocated object.
func NewHeader(kind VariantKind, actorID uint32, reach Reachability, mapRef value.Value) Header {
	return Header{Info: NewObjectInfo(kind, actorID, reach), Map: mapRef}
}

// Kind returns the variant this header currently describes. Once
// IsForwarded is true, Kind returns KindForwardedObject.
func (h *Header) Kind() VariantKind {
	return h.Info.Kind()
}

// IsForwarded reports whether this header is a GC tombstone.
func (h *Header) IsForwarded() bool {
	return h.Info.Kind() == KindForwardedObject
}

// CheckMarker validates the invariant that every live header's low bits
// are the ObjectMarker tag (spec.md §8, Invariant 1). A mismatch is an
// InvariantViolation: fatal, and in debug builds a diagnostic panic.
func (h *Header) CheckMarker() error {
	if h.Info.Marker() != value.ObjectMarker {
		return errors.NewMarkerMismatchError(h.Kind().String())
	}
	return nil
}

// ForwardTo overwrites h in place with a ForwardedObject tombstone
// pointing at newAddr, per spec.md §3.5. Forwarding is one-shot: calling
// this on an already-forwarded header is rejected (spec.md §8).
func (h *Header) ForwardTo(newAddr value.Value) error {
	if h.IsForwarded() {
		return errors.NewForwardedDispatchError("<re-forward>")
	}
	h.Info = h.Info.withKind(KindForwardedObject)
	h.Map = newAddr
	return nil
}

// ForwardAddress returns the new location a forwarded header points to.
// Only valid when IsForwarded is true.
func (h *Header) ForwardAddress() value.Value {
	return h.Map
}
