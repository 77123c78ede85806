// Package errors defines the structured error types used across the runtime.
//
// Errors carry a Phase (where in processing the failure occurred) and a Kind
// (what category of failure it is), plus optional detail and cause. Two
// errors match under errors.Is when their Phase and Kind agree, which lets
// callers test for e.g. function-not-found without string matching.
//
// Only the load and metadata phases produce recoverable errors. Failures on
// the invocation hot path are contract violations and panic instead of
// returning an Error.
package errors
