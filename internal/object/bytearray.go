package object

import "github.com/nilslef/selfrt/internal/value"

// ByteArray is a variable-length vector of raw bytes, used to back Self
// strings and symbols (spec.md §3.3). Byte contents carry no Value tags;
// the GC never scans into a ByteArray's payload.
type ByteArray struct {
	Header
	Bytes []byte
}

// NewByteArray builds a ByteArray object from the given bytes. The slice
// is taken by value-copy so the caller's buffer remains independent.
func NewByteArray(actorID uint32, mapRef value.Value, bytes []byte) *ByteArray {
	owned := make([]byte, len(bytes))
	copy(owned, bytes)
	return &ByteArray{
		Header: NewHeader(KindByteArray, actorID, Local, mapRef),
		Bytes:  owned,
	}
}

func (b *ByteArray) Hdr() *Header { return &b.Header }

func (b *ByteArray) SizeInMemory() int {
	return roundUpWord(headerWordSize + len(b.Bytes))
}

func (b *ByteArray) CanFinalize() bool { return false }

func (b *ByteArray) CloneInto(actorID uint32) Object {
	bytes := make([]byte, len(b.Bytes))
	copy(bytes, b.Bytes)
	return &ByteArray{
		Header: NewHeader(KindByteArray, actorID, b.Info.Reachability(), b.Map),
		Bytes:  bytes,
	}
}
