// Package tensor implements the dense, contiguous buffer type passed across
// the module boundary.
//
// A Tensor is a fixed header (element type, rank, data buffer) plus an
// extent list sized exactly for its rank. Rank, extents, and data buffer are
// immutable after construction; the byte size is always recomputable from
// element type and extents. Tensors embed their own reference count and are
// owned through ref.Ref handles: the data buffer is dropped exactly when the
// last handle releases.
package tensor
