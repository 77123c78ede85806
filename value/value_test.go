package value

import (
	"math"
	"testing"

	"github.com/wippyai/tensor-runtime/tensor"
)

func TestScalarRoundTrip(t *testing.T) {
	if got := FromBool(true).AsBool(); got != true {
		t.Fatalf("bool round trip: got %t", got)
	}
	if got := FromBool(false).AsBool(); got != false {
		t.Fatalf("bool round trip: got %t", got)
	}
	if got := FromInt(-42).AsInt(); got != -42 {
		t.Fatalf("int round trip: got %d", got)
	}
	if got := FromInt(math.MaxInt64).AsInt(); got != math.MaxInt64 {
		t.Fatalf("int round trip: got %d", got)
	}

	// Bit-exact for doubles, including non-finite values.
	for _, f := range []float64{0, -0.0, 3.5, math.Inf(1), math.SmallestNonzeroFloat64} {
		if got := FromFloat(f).AsFloat(); math.Float64bits(got) != math.Float64bits(f) {
			t.Fatalf("float round trip: %v became %v", f, got)
		}
	}
	nan := FromFloat(math.NaN()).AsFloat()
	if !math.IsNaN(nan) {
		t.Fatalf("NaN round trip: got %v", nan)
	}
}

func TestKinds(t *testing.T) {
	cases := []struct {
		v    Value
		kind Kind
	}{
		{None(), KindNone},
		{FromBool(true), KindBool},
		{FromInt(1), KindInt},
		{FromFloat(1), KindFloat},
	}
	for _, c := range cases {
		if c.v.Kind() != c.kind {
			t.Fatalf("expected kind %s, got %s", c.kind, c.v.Kind())
		}
	}

	var zero Value
	if !zero.IsNone() {
		t.Fatal("zero Value should be none")
	}
}

func TestMismatchedExtractionPanics(t *testing.T) {
	cases := []struct {
		name    string
		extract func()
	}{
		{"bool from int", func() { FromInt(1).AsBool() }},
		{"int from float", func() { FromFloat(1).AsInt() }},
		{"float from bool", func() { FromBool(true).AsFloat() }},
		{"tensor from none", func() { None().AsTensor() }},
		{"int from none", func() { None().AsInt() }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic on mismatched tag")
				}
			}()
			c.extract()
		})
	}
}

func TestNoCoercion(t *testing.T) {
	// An int-tagged 1 must not read as bool or float even though the
	// payload bits would be interpretable.
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic: int payload read as float")
		}
	}()
	FromInt(1).AsFloat()
}

func TestTensorValueOwnership(t *testing.T) {
	h := tensor.FromFloat32s([]int32{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	v := FromTensor(h.Clone())

	// The value holds one reference, h holds another.
	if got := h.Count(); got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}

	v.Release()
	if got := h.Count(); got != 1 {
		t.Fatalf("expected count 1 after value release, got %d", got)
	}
	h.Release()
}

func TestAsTensorReturnsOwningHandle(t *testing.T) {
	v := FromTensor(tensor.FromFloat32s([]int32{2}, []float32{1, 2}))

	a := v.AsTensor()
	b := v.AsTensor()

	// Same underlying object through both handles.
	if a.Get() != b.Get() {
		t.Fatal("expected both extractions to reach the same tensor")
	}
	// Value + two extracted handles.
	if got := a.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}

	a.Release()
	b.Release()

	c := v.AsTensor()
	if got := c.Count(); got != 2 {
		t.Fatalf("expected count 2 (value + fresh handle), got %d", got)
	}
	c.Release()
	v.Release()
}

func TestCopySemantics(t *testing.T) {
	h := tensor.FromFloat32s([]int32{2}, []float32{1, 2})
	tn := h.Get()
	orig := FromTensor(h)

	copies := []Value{orig.Copy(), orig.Copy(), orig.Copy()}

	// Drop the original and two copies; the tensor must survive.
	orig.Release()
	copies[0].Release()
	copies[1].Release()

	probe := copies[2].AsTensor()
	if probe.Get() != tn {
		t.Fatal("surviving copy lost its tensor")
	}
	if got := probe.Count(); got != 2 {
		t.Fatalf("expected count 2 (value + probe), got %d", got)
	}
	probe.Release()

	// Drop the last copy: destroyed exactly once, observable as the data
	// buffer being dropped.
	copies[2].Release()
	if tn.Data() != nil {
		t.Fatal("tensor not destroyed after last value released")
	}
}

func TestScalarCopyAndReleaseAreTrivial(t *testing.T) {
	v := FromInt(7)
	c := v.Copy()
	v.Release()
	if got := c.AsInt(); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	c.Release()
	if !c.IsNone() {
		t.Fatal("released value should reset to none")
	}
}

func TestReleaseAll(t *testing.T) {
	h := tensor.FromFloat32s([]int32{1}, []float32{1})
	tn := h.Get()
	vals := []Value{FromInt(1), FromTensor(h), FromBool(true)}

	ReleaseAll(vals)

	if tn.Data() != nil {
		t.Fatal("expected tensor destroyed by ReleaseAll")
	}
	for i := range vals {
		if !vals[i].IsNone() {
			t.Fatalf("value %d not reset", i)
		}
	}
}
