package value

import "testing"

func TestIntegerRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 1 << 40, -(1 << 40), 1<<61 - 1, -(1 << 61)}
	for _, n := range cases {
		v := NewInteger(n)
		if !v.IsInteger() {
			t.Fatalf("NewInteger(%d).IsInteger() = false", n)
		}
		if got := v.Int(); got != n {
			t.Errorf("NewInteger(%d).Int() = %d, want %d", n, got, n)
		}
	}
}

func TestFloatRoundTripTruncates(t *testing.T) {
	cases := []float64{0, 1, -1, 3.5, -2.25, 1e10}
	for _, f := range cases {
		v := NewFloat(f)
		if !v.IsFloat() {
			t.Fatalf("NewFloat(%g).IsFloat() = false", f)
		}
		if got := v.Float(); got != f {
			t.Errorf("NewFloat(%g).Float() = %g, want %g (values with zero low mantissa bits round-trip exactly)", f, got, f)
		}
	}
}

func TestObjectReferenceRoundTrip(t *testing.T) {
	addrs := []uintptr{0x1000, 0x7ffff0008000, 8}
	for _, addr := range addrs {
		v := NewObjectReference(addr)
		if !v.IsObjectReference() {
			t.Fatalf("NewObjectReference(0x%x).IsObjectReference() = false", addr)
		}
		if got := v.Address(); got != addr {
			t.Errorf("NewObjectReference(0x%x).Address() = 0x%x", addr, got)
		}
	}
}

func TestTagsAreMutuallyExclusive(t *testing.T) {
	values := []Value{
		NewInteger(42),
		NewFloat(1.5),
		NewObjectReference(0x2000),
	}
	for _, v := range values {
		count := 0
		if v.IsInteger() {
			count++
		}
		if v.IsFloat() {
			count++
		}
		if v.IsObjectReference() {
			count++
		}
		if v.IsObjectMarker() {
			count++
		}
		if count != 1 {
			t.Errorf("Value %v matched %d tag predicates, want exactly 1", v, count)
		}
	}
}

func TestZeroValueIsIntegerZero(t *testing.T) {
	var v Value
	if !v.IsInteger() || v.Int() != 0 {
		t.Errorf("zero Value = %v, want Integer(0)", v)
	}
}
