// Package value implements the closed tagged value type that crosses the
// invocation boundary.
//
// A Value is in exactly one of five states: none, bool, int, float, or
// tensor reference. The tag is fixed at construction and extraction is
// exact-tag-only; asking a bool-tagged value for its float is a contract
// violation and panics. Scalars live inline in a single payload word with no
// heap allocation.
//
// A Value holding a tensor owns one reference to it. Because Go has no copy
// constructors or destructors, ownership transitions are explicit: Copy
// duplicates the value (incrementing the tensor's count), Release drops it
// (decrementing), and plain assignment is a move after which only one of the
// two copies may be released. AsTensor hands out a fresh owning handle so
// the value and the extracted handle can live side by side.
package value
