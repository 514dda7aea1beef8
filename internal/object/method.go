package object

import "github.com/nilslef/selfrt/internal/value"

// Method is a compiled, named piece of code installed as a data slot's
// value and invoked by message lookup (spec.md §3.3, §4.6). Code is an
// opaque bytecode blob; this package does not interpret it, only stores
// and copies it.
type Method struct {
	Header
	Code       []byte
	ArgCount   int
	LocalCount int
	// Holder is the Value of the object whose Map this method was
	// installed on, used to resolve the statically-enclosing scope for
	// non-local returns.
	Holder value.Value
}

// NewMethod builds a Method object.
func NewMethod(actorID uint32, mapRef value.Value, code []byte, argCount, localCount int, holder value.Value) *Method {
	owned := make([]byte, len(code))
	copy(owned, code)
	return &Method{
		Header:     NewHeader(KindMethod, actorID, Local, mapRef),
		Code:       owned,
		ArgCount:   argCount,
		LocalCount: localCount,
		Holder:     holder,
	}
}

func (m *Method) Hdr() *Header { return &m.Header }

func (m *Method) SizeInMemory() int {
	return roundUpWord(headerWordSize + len(m.Code) + 2*8 + 8)
}

func (m *Method) CanFinalize() bool { return false }

func (m *Method) CloneInto(actorID uint32) Object {
	code := make([]byte, len(m.Code))
	copy(code, m.Code)
	return &Method{
		Header:     NewHeader(KindMethod, actorID, m.Info.Reachability(), m.Map),
		Code:       code,
		ArgCount:   m.ArgCount,
		LocalCount: m.LocalCount,
		Holder:     m.Holder,
	}
}
