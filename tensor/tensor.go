package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/tensor-runtime/ref"
)

// Tensor is a dense, contiguous buffer of one element type. The header
// (element type, rank, data) and the extent list live in one object; the
// data bytes are a separate buffer released at teardown. Rank and extents
// never change after construction.
type Tensor struct {
	refCount    atomic.Int32
	elementType ElementType
	// extents has exactly rank entries and is never mutated or resized
	// after construction.
	extents []int32
	data    []byte
}

// Create builds a tensor with the given extents and element type, copying
// data into a freshly allocated buffer, and returns an owning handle with
// count one. data must cover at least ByteSize(elementType, extents) bytes
// and every extent must be non-negative; violating either is a contract
// violation and panics.
func Create(extents []int32, elementType ElementType, data []byte) ref.Ref[*Tensor] {
	return ref.New(CreateRaw(extents, elementType, data))
}

// CreateRaw is Create without the owning handle: the returned tensor has a
// zero count and must be handed to ref.New before use.
func CreateRaw(extents []int32, elementType ElementType, data []byte) *Tensor {
	size := ByteSize(elementType, extents)
	if int32(len(data)) < size {
		panic(fmt.Sprintf("tensor: source data holds %d bytes, need %d", len(data), size))
	}

	t := &Tensor{
		elementType: elementType,
		extents:     make([]int32, len(extents)),
		data:        make([]byte, size),
	}
	copy(t.extents, extents)
	copy(t.data, data[:size])
	return t
}

// FromFloat32s builds an F32 tensor from values, which must cover the product
// of the extents.
func FromFloat32s(extents []int32, values []float32) ref.Ref[*Tensor] {
	data := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), len(values)*4)
	return Create(extents, F32, data)
}

// ByteSize returns elementType's element size times the product of extents.
// Panics on a negative extent.
func ByteSize(elementType ElementType, extents []int32) int32 {
	size := elementType.ByteSize()
	for i, e := range extents {
		if e < 0 {
			panic(fmt.Sprintf("tensor: negative extent %d at dimension %d", e, i))
		}
		size *= e
	}
	return size
}

// RefCount exposes the embedded count to the ref package.
func (t *Tensor) RefCount() *atomic.Int32 { return &t.refCount }

// Destroy releases the data buffer. Called by the last handle's Release.
func (t *Tensor) Destroy() { t.data = nil }

// ElementType returns the scalar type of the elements.
func (t *Tensor) ElementType() ElementType { return t.elementType }

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int32 { return int32(len(t.extents)) }

// Extent returns the size of one dimension. dimension must be in
// [0, Rank()); anything else panics.
func (t *Tensor) Extent(dimension int32) int32 { return t.extents[dimension] }

// Extents returns a copy of the extent list.
func (t *Tensor) Extents() []int32 {
	out := make([]int32, len(t.extents))
	copy(out, t.extents)
	return out
}

// NumElements returns the product of the extents.
func (t *Tensor) NumElements() int32 {
	n := int32(1)
	for _, e := range t.extents {
		n *= e
	}
	return n
}

// DataByteSize returns the number of bytes occupied by the element data.
// Recomputed from element type and extents on every call.
func (t *Tensor) DataByteSize() int32 {
	return ByteSize(t.elementType, t.extents)
}

// Data returns the raw element bytes.
func (t *Tensor) Data() []byte { return t.data }

// Float32s interprets the data as []float32 without copying. Panics if the
// element type is not F32.
func (t *Tensor) Float32s() []float32 {
	if t.elementType != F32 {
		panic(fmt.Sprintf("tensor: element type is %s, not f32", t.elementType))
	}
	if len(t.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.data[0])), t.NumElements())
}

// String describes the tensor's shape for logs and error messages.
func (t *Tensor) String() string {
	return fmt.Sprintf("tensor<%v x %s>", t.extents, t.elementType)
}
