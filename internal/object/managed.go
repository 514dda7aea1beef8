package object

import "github.com/nilslef/selfrt/internal/value"

// Managed wraps a host-side resource — a file descriptor, a socket, an
// intrinsic handle — that must run cleanup when the GC determines it is
// unreachable (spec.md §3.3, GLOSSARY "Managed"). It is the only variant
// for which CanFinalize returns true.
type Managed struct {
	Header
	// Handle is the opaque host resource this object wraps.
	Handle any
	// finalize runs exactly once, when the GC enqueues this object for
	// finalization. A nil finalize means the resource needs no cleanup
	// beyond ordinary memory reclamation.
	finalize  func(any) error
	finalized bool
}

// NewManaged builds a Managed object around handle, with fn run at
// finalization time.
func NewManaged(actorID uint32, mapRef value.Value, handle any, fn func(any) error) *Managed {
	return &Managed{
		Header:   NewHeader(KindManaged, actorID, Local, mapRef),
		Handle:   handle,
		finalize: fn,
	}
}

func (m *Managed) Hdr() *Header { return &m.Header }

func (m *Managed) SizeInMemory() int {
	return roundUpWord(headerWordSize + 8 + 8 + 1)
}

func (m *Managed) CanFinalize() bool { return m.finalize != nil && !m.finalized }

// Finalize runs the wrapped cleanup function once. Subsequent calls are a
// no-op so a Managed object can safely be finalized defensively as well as
// by the GC's own finalization queue.
func (m *Managed) Finalize() error {
	if m.finalized || m.finalize == nil {
		return nil
	}
	m.finalized = true
	return m.finalize(m.Handle)
}

// CloneInto returns a Managed that shares the same handle and finalizer.
// The heap's copying collector calls it on every surviving object,
// Managed included: the clone becomes the object's new identity and the
// old struct becomes a forwarding tombstone, so the handle is moved, not
// duplicated.
func (m *Managed) CloneInto(actorID uint32) Object {
	return &Managed{
		Header:   NewHeader(KindManaged, actorID, m.Info.Reachability(), m.Map),
		Handle:   m.Handle,
		finalize: m.finalize,
	}
}
