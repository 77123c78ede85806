package runtime

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/tensor-runtime/errors"
	"github.com/wippyai/tensor-runtime/value"
)

// GetMetadata returns the declared arity for functionName. An unregistered
// name is a normal, expected occurrence and comes back as a structured
// not-found error the caller checks before invoking.
func GetMetadata(d *ModuleDescriptor, functionName string) (FunctionMetadata, error) {
	entry, ok := d.funcs[functionName]
	if !ok {
		return FunctionMetadata{}, errors.NotFound(errors.PhaseMetadata, "function", functionName)
	}
	return entry.meta, nil
}

// Invoke resolves functionName and dispatches to compiled code, which reads
// inputs and fills outputs in place.
//
// Precondition: len(inputs) and len(outputs) equal the arities returned by
// GetMetadata, both bounded by MaxArity. The precondition is not checked
// here; violating it is undefined behavior. Use InvokeChecked when the call
// site cannot guarantee it. An unknown name at this point is a contract
// violation (the caller skipped GetMetadata) and panics.
func Invoke(d *ModuleDescriptor, functionName string, inputs, outputs []value.Value) {
	entry, ok := d.funcs[functionName]
	if !ok {
		panic(fmt.Sprintf("runtime: invoke of unknown function %q in module %q", functionName, d.name))
	}

	Logger().Debug("invoke",
		zap.String("module", d.name),
		zap.String("function", functionName),
		zap.Int("inputs", len(inputs)),
		zap.Int("outputs", len(outputs)))

	entry.fn(inputs, outputs)
}

// InvokeChecked validates name and arity against the declared metadata, then
// calls the unchecked core. This is the layered safe variant of Invoke.
func InvokeChecked(d *ModuleDescriptor, functionName string, inputs, outputs []value.Value) error {
	meta, err := GetMetadata(d, functionName)
	if err != nil {
		return err
	}
	if int32(len(inputs)) != meta.NumInputs {
		return errors.ArityMismatch(functionName, "input", meta.NumInputs, int32(len(inputs)))
	}
	if int32(len(outputs)) != meta.NumOutputs {
		return errors.ArityMismatch(functionName, "output", meta.NumOutputs, int32(len(outputs)))
	}

	Invoke(d, functionName, inputs, outputs)
	return nil
}
