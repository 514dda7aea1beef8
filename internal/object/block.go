package object

import "github.com/nilslef/selfrt/internal/value"

// Block is a first-class closure: compiled code plus a reference to the
// Activation it was created within, which supplies the lexical scope a
// non-local return unwinds to (spec.md §3.3, GLOSSARY "Block"). A Block
// that escapes its creating Activation's lifetime and is later invoked (or
// whose non-local return fires) after that Activation completed is a
// runtime error, not a crash (spec.md §6, "non-local return").
type Block struct {
	Header
	Code       []byte
	ArgCount   int
	LocalCount int
	// Home is the Value of the Activation this Block closes over.
	Home value.Value
}

// NewBlock builds a Block object.
func NewBlock(actorID uint32, mapRef value.Value, code []byte, argCount, localCount int, home value.Value) *Block {
	owned := make([]byte, len(code))
	copy(owned, code)
	return &Block{
		Header:     NewHeader(KindBlock, actorID, Local, mapRef),
		Code:       owned,
		ArgCount:   argCount,
		LocalCount: localCount,
		Home:       home,
	}
}

func (b *Block) Hdr() *Header { return &b.Header }

func (b *Block) SizeInMemory() int {
	return roundUpWord(headerWordSize + len(b.Code) + 2*8 + 8)
}

func (b *Block) CanFinalize() bool { return false }

func (b *Block) CloneInto(actorID uint32) Object {
	code := make([]byte, len(b.Code))
	copy(code, b.Code)
	return &Block{
		Header:     NewHeader(KindBlock, actorID, b.Info.Reachability(), b.Map),
		Code:       code,
		ArgCount:   b.ArgCount,
		LocalCount: b.LocalCount,
		Home:       b.Home,
	}
}
