// Package engine loads compiled numerical modules with wazero and exposes
// them as runtime module descriptors.
//
// Compiled modules are core WebAssembly binaries. Core wasm carries no
// tensor-level type metadata, so each loaded function is described by a
// FuncSpec — the same role WIT text plays for core modules in componentized
// runtimes. The engine validates each spec against the module's actual
// export signatures at load time, then registers an entry point implementing
// the boundary ABI:
//
//   - scalar inputs lower to wasm parameters (bool to i32, int to i64,
//     float to f64)
//   - tensor inputs are staged into guest memory through the module's
//     exported "malloc" and passed as a (pointer, element count) pair
//   - tensor outputs are host-allocated guest buffers appended after the
//     inputs as (pointer, element count) pairs; the function fills them and
//     the engine copies them back out into fresh tensors
//   - at most one scalar output, lifted from the wasm return value
//
// Load-time problems (missing exports, signature mismatches) are recoverable
// structured errors. A trap during invocation is fatal, matching the
// runtime's two-tier error policy.
package engine
