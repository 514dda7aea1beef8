package object

import "github.com/nilslef/selfrt/internal/value"

// AddrInfo is an intrinsic wrapper around a host address-info record —
// the result of resolving a hostname/port pair for the networking
// primitives a hosted Self program can call (spec.md §3.3). It carries no
// live OS handle (that belongs to a Managed socket object instead), so it
// needs no finalizer.
type AddrInfo struct {
	Header
	Family  string
	Address string
	Port    int
}

// NewAddrInfo builds an AddrInfo object.
func NewAddrInfo(actorID uint32, mapRef value.Value, family, address string, port int) *AddrInfo {
	return &AddrInfo{
		Header:  NewHeader(KindAddrInfo, actorID, Local, mapRef),
		Family:  family,
		Address: address,
		Port:    port,
	}
}

func (a *AddrInfo) Hdr() *Header { return &a.Header }

func (a *AddrInfo) SizeInMemory() int {
	return roundUpWord(headerWordSize + len(a.Family) + len(a.Address) + 8)
}

func (a *AddrInfo) CanFinalize() bool { return false }

func (a *AddrInfo) CloneInto(actorID uint32) Object {
	return &AddrInfo{
		Header:  NewHeader(KindAddrInfo, actorID, a.Info.Reachability(), a.Map),
		Family:  a.Family,
		Address: a.Address,
		Port:    a.Port,
	}
}
