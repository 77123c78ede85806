// Package runtime defines the module boundary: opaque module descriptors,
// per-function metadata queries, and the synchronous invocation entry point.
//
// A ModuleDescriptor maps function names to entry points with a declared
// input and output arity. Descriptors are produced by a loader (see the
// engine package) or registered directly by embedders; the invocation surface
// treats them as opaque.
//
// GetMetadata is the only recoverable operation: querying an unregistered
// name returns a structured not-found error. Invoke is the unchecked hot
// path — passing slices whose lengths disagree with the declared arity is
// undefined behavior by design. InvokeChecked layers explicit validation on
// top for callers that want the safe variant.
package runtime
