package value

import (
	"fmt"
	"math"

	"github.com/wippyai/tensor-runtime/ref"
	"github.com/wippyai/tensor-runtime/tensor"
)

// Kind discriminates the state of a Value. It is set at construction and
// never mutated in place.
type Kind int32

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindTensor
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTensor:
		return "tensor"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union over {none, bool, int64, float64, tensor
// reference}. Scalar payloads are packed into one inline word; the tensor
// state holds an owning handle. The zero Value is the none state.
type Value struct {
	tensor ref.Ref[*tensor.Tensor]
	bits   uint64
	kind   Kind
}

// None returns the empty value.
func None() Value { return Value{} }

// FromBool builds a bool-tagged value.
func FromBool(b bool) Value {
	var bits uint64
	if b {
		bits = 1
	}
	return Value{kind: KindBool, bits: bits}
}

// FromInt builds an int-tagged value.
func FromInt(i int64) Value {
	return Value{kind: KindInt, bits: uint64(i)}
}

// FromFloat builds a float-tagged value.
func FromFloat(f float64) Value {
	return Value{kind: KindFloat, bits: math.Float64bits(f)}
}

// FromTensor builds a tensor-tagged value, taking ownership of the handle.
// The caller must not release h afterwards; the value's Release does.
func FromTensor(h ref.Ref[*tensor.Tensor]) Value {
	return Value{kind: KindTensor, tensor: h}
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNone() bool   { return v.kind == KindNone }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsTensor() bool { return v.kind == KindTensor }

// AsBool extracts the bool payload. Panics unless the tag is bool.
func (v Value) AsBool() bool {
	v.require(KindBool)
	return v.bits != 0
}

// AsInt extracts the int payload. Panics unless the tag is int. There is no
// numeric coercion between scalar states.
func (v Value) AsInt() int64 {
	v.require(KindInt)
	return int64(v.bits)
}

// AsFloat extracts the float payload. Panics unless the tag is float.
func (v Value) AsFloat() float64 {
	v.require(KindFloat)
	return math.Float64frombits(v.bits)
}

// AsTensor returns a new owning handle to the held tensor, incrementing its
// count. The value keeps its own reference; the caller releases the returned
// handle independently. Panics unless the tag is tensor.
func (v Value) AsTensor() ref.Ref[*tensor.Tensor] {
	v.require(KindTensor)
	return v.tensor.Clone()
}

// Copy returns a value in the same state; for the tensor state this
// increments the underlying count. Use Copy instead of assignment whenever
// both copies will be released.
func (v Value) Copy() Value {
	if v.kind != KindTensor {
		return v
	}
	return Value{kind: KindTensor, tensor: v.tensor.Clone()}
}

// Release drops the value's ownership, decrementing the tensor count when
// holding one, and resets the value to the none state. Releasing a scalar or
// none value is a no-op on the count. Each Copy must be released exactly
// once.
func (v *Value) Release() {
	if v.kind == KindTensor {
		v.tensor.Release()
	}
	*v = Value{}
}

// ReleaseAll releases every value in vals.
func ReleaseAll(vals []Value) {
	for i := range vals {
		vals[i].Release()
	}
}

// String describes the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("bool(%t)", v.bits != 0)
	case KindInt:
		return fmt.Sprintf("int(%d)", int64(v.bits))
	case KindFloat:
		return fmt.Sprintf("float(%g)", math.Float64frombits(v.bits))
	case KindTensor:
		if t := v.tensor.Get(); t != nil {
			return t.String()
		}
		return "tensor(<empty>)"
	default:
		return "none"
	}
}

func (v Value) require(kind Kind) {
	if v.kind != kind {
		panic(fmt.Sprintf("value: cannot extract %s from %s-tagged value", kind, v.kind))
	}
}
