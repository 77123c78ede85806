package tensor

import "fmt"

// ElementType identifies the scalar type of a tensor's elements.
type ElementType int32

// Supported element types. F32 is the only wired variant; extending the
// runtime to a new element kind means adding a constant here and a case to
// ByteSize.
const (
	F32 ElementType = iota
)

// ByteSize returns the size of one element in bytes.
func (t ElementType) ByteSize() int32 {
	switch t {
	case F32:
		return 4
	default:
		panic(fmt.Sprintf("tensor: unknown element type %d", int32(t)))
	}
}

// String returns a human-readable name for the element type.
func (t ElementType) String() string {
	switch t {
	case F32:
		return "f32"
	default:
		return "unknown"
	}
}
