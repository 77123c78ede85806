package runtime

import (
	"fmt"
	"sort"

	"github.com/wippyai/tensor-runtime/errors"
	"github.com/wippyai/tensor-runtime/value"
)

// MaxArity is the ceiling on simultaneous input or output slots for one
// function. It keeps the call frame representation simple; the unchecked
// Invoke path relies on callers honoring it.
const MaxArity = 20

// FunctionMetadata is the declared shape of one callable function.
type FunctionMetadata struct {
	NumInputs  int32
	NumOutputs int32
}

// InvokeFunc is a compiled entry point. It reads the input slots and fills
// the output slots in place. Implementations own any references they retain
// beyond the call and must place owning values into outputs.
type InvokeFunc func(inputs []value.Value, outputs []value.Value)

type funcEntry struct {
	fn   InvokeFunc
	meta FunctionMetadata
}

// ModuleDescriptor identifies a compiled unit of callable functions. Callers
// treat it as opaque; only loaders and embedders construct one.
type ModuleDescriptor struct {
	name  string
	funcs map[string]funcEntry
}

// NewDescriptor creates an empty descriptor. name identifies the module in
// logs and errors.
func NewDescriptor(name string) *ModuleDescriptor {
	return &ModuleDescriptor{
		name:  name,
		funcs: make(map[string]funcEntry),
	}
}

// Name returns the module's identifying name.
func (d *ModuleDescriptor) Name() string { return d.name }

// Register adds a function entry. Registration happens at load time, so
// malformed entries are reported as recoverable errors rather than panics.
func (d *ModuleDescriptor) Register(name string, numInputs, numOutputs int32, fn InvokeFunc) error {
	if fn == nil {
		return errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("function %q has no entry point", name))
	}
	if numInputs < 0 || numOutputs < 0 {
		return errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("function %q declares negative arity", name))
	}
	if numInputs > MaxArity || numOutputs > MaxArity {
		return errors.InvalidInput(errors.PhaseLoad,
			fmt.Sprintf("function %q exceeds maximum arity %d", name, MaxArity))
	}
	if _, exists := d.funcs[name]; exists {
		return errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("function %q registered twice", name))
	}

	d.funcs[name] = funcEntry{
		fn:   fn,
		meta: FunctionMetadata{NumInputs: numInputs, NumOutputs: numOutputs},
	}
	return nil
}

// Functions returns the registered function names in sorted order.
func (d *ModuleDescriptor) Functions() []string {
	names := make([]string, 0, len(d.funcs))
	for name := range d.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
