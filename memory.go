package tensorruntime

// Memory is the byte-addressable storage a compiled module exposes to the
// host. Offsets and lengths are in bytes. Read and Write report false when
// the range falls outside the module's memory.
type Memory interface {
	Read(offset, length uint32) ([]byte, bool)
	Write(offset uint32, data []byte) bool
}

// Allocator allocates buffers inside a compiled module's memory. Tensor
// arguments are staged through an Allocator before invocation.
type Allocator interface {
	Alloc(size uint32) (uint32, error)
	Free(ptr uint32)
}
