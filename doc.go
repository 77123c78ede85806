// Package tensorruntime provides a minimal, embeddable runtime for invoking
// compiled numerical-computation modules.
//
// The runtime defines how tensor-shaped data and scalar values are
// represented, reference-counted, and passed across a module boundary that is
// identified by a function name and a fixed input/output arity. Tensor
// buffers are owned through explicit reference counting rather than relying
// on the garbage collector: the caller drives every handle copy and release,
// and a buffer is freed exactly when its last handle drops.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	tensor-runtime/      Root package with shared memory interfaces
//	├── ref/             Intrusive atomic reference-count handle (Ref[T])
//	├── tensor/          Dense, contiguous, refcounted tensor buffers
//	├── value/           Tagged value type crossing the call boundary
//	├── runtime/         Module descriptors, metadata queries, invocation
//	├── engine/          wazero-backed loader for compiled wasm modules
//	├── errors/          Structured error types for debugging
//	└── cmd/nrt/         CLI runner for compiled modules
//
// # Quick Start
//
// Load a compiled module and invoke a function:
//
//	eng, err := engine.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	desc, err := eng.Load(ctx, wasmBytes, specs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	meta, err := runtime.GetMetadata(desc, "scale")
//	if err != nil {
//	    log.Fatal(err) // unknown function name
//	}
//
//	inputs := []value.Value{value.FromTensor(tensor.FromFloat32s(extents, data))}
//	outputs := make([]value.Value, meta.NumOutputs)
//	runtime.Invoke(desc, "scale", inputs, outputs)
//
// # Ownership Model
//
// Tensors are shared-ownership objects managed through ref.Ref handles. A
// handle copy (Clone) increments the embedded count; Release decrements it
// and destroys the tensor exactly when the count reaches zero. Values holding
// a tensor participate in the same protocol through value.Value.Copy and
// value.Value.Release. Nothing in the runtime holds back-references, so
// reference cycles cannot form.
//
// # Thread Safety
//
// The runtime starts no goroutines; invocation runs synchronously on the
// caller's thread. Reference counts are single atomic fields and are safe to
// manipulate concurrently from independent handles to the same tensor. Tensor
// data is immutable after creation, so concurrent reads need no locking.
//
// # Error Model
//
// Function-name lookup at metadata time is the one recoverable failure and is
// reported as a structured not-found error. Everything else on the hot path
// (arity violations, tag mismatches, out-of-range extent access, allocation
// failure) is a contract violation and panics rather than returning an error.
// Callers are expected to validate names and arities against GetMetadata
// before invoking.
package tensorruntime
